package models

import "gorm.io/gorm"

// Product represents a listing in the marketplace catalogue.
//
// Quantity never goes below zero: all decrements go through the
// repository's conditional reserve. IsActive controls visibility in
// browse/search and cart additions; order lines referencing an inactive
// product remain valid historical records.
type Product struct {
	gorm.Model
	SellerID    uint    `gorm:"not null;index" json:"seller_id"`
	Name        string  `gorm:"size:255;not null;index" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null;default:0" json:"price"`
	Quantity    int     `gorm:"not null;default:0" json:"quantity"`
	Category    string  `gorm:"size:100;index" json:"category"`
	Rating      float64 `gorm:"not null;default:0" json:"rating"`
	ImageURL    string  `gorm:"size:500" json:"image_url"`
	IsActive    bool    `gorm:"default:true;index" json:"is_active"`

	Seller *User `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}
