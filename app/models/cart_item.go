package models

import "gorm.io/gorm"

// CartItem is one line of a user's cart: a (user, product) pair with a
// positive quantity. Adding the same product again merges into the
// existing line. The whole cart is cleared in the same transaction that
// creates the order, never before.
type CartItem struct {
	gorm.Model
	UserID    uint `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int  `gorm:"not null" json:"quantity"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// LineTotal returns quantity times the product's current price. Only
// meaningful before checkout; orders copy the unit price at purchase.
func (c *CartItem) LineTotal() float64 {
	if c.Product == nil {
		return 0
	}
	return float64(c.Quantity) * c.Product.Price
}
