package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/sokoni/app/models"
)

// CartRepository handles database operations for CartItem.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *CartRepository) WithTx(tx *gorm.DB) *CartRepository {
	return &CartRepository{db: tx}
}

// ItemsByUser returns the user's cart lines in insertion order with
// their products preloaded.
func (r *CartRepository) ItemsByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Preload("Product").Where("user_id = ?", userID).
		Order("id").Find(&items).Error
	return items, err
}

// Find returns the cart line for a (user, product) pair, if any.
// The second return is false when no line exists.
func (r *CartRepository) Find(userID, productID uint) (models.CartItem, bool, error) {
	var item models.CartItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return item, false, nil
	}
	return item, err == nil, err
}

// Create persists a new cart line.
func (r *CartRepository) Create(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateQuantity sets the quantity on an existing cart line.
func (r *CartRepository) UpdateQuantity(id uint, qty int) error {
	return r.db.Model(&models.CartItem{}).Where("id = ?", id).
		UpdateColumn("quantity", qty).Error
}

// Delete removes a single cart line belonging to the user.
func (r *CartRepository) Delete(userID, productID uint) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{}).Error
}

// Clear removes every cart line for the user. Called in the same
// transaction that creates the order.
func (r *CartRepository) Clear(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
