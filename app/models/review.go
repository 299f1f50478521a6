package models

import "gorm.io/gorm"

// Rating bounds for a review.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a buyer's rating of a product, one per buyer and product.
// The product row carries the rounded average of its reviews so the
// catalogue never aggregates on read.
type Review struct {
	gorm.Model
	ProductID uint   `gorm:"not null;uniqueIndex:idx_reviews_product_user" json:"product_id"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_reviews_product_user" json:"user_id"`
	Rating    int    `gorm:"not null" json:"rating"`
	Content   string `gorm:"size:500;not null" json:"content"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
