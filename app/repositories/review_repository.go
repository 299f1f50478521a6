package repositories

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/sokoni/app/models"
)

// ReviewRepository handles database operations for Review.
type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ReviewRepository) WithTx(tx *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: tx}
}

// Create persists a new review.
func (r *ReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// FindByID looks up a review by primary key.
func (r *ReviewRepository) FindByID(id uint) (models.Review, error) {
	var review models.Review
	err := r.db.First(&review, id).Error
	return review, err
}

// ByProduct returns a product's reviews, newest first.
func (r *ReviewRepository) ByProduct(productID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("User").Where("product_id = ?", productID).
		Order("id desc").Find(&reviews).Error
	return reviews, err
}

// Exists reports whether the user has already reviewed the product.
func (r *ReviewRepository) Exists(userID, productID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

// Delete removes a review permanently. A soft delete would keep the
// unique (product_id, user_id) row in place and block the buyer from
// reviewing the product again.
func (r *ReviewRepository) Delete(id uint) error {
	return r.db.Unscoped().Delete(&models.Review{}, id).Error
}

// AverageRating returns the mean rating across a product's reviews,
// zero when it has none.
func (r *ReviewRepository) AverageRating(productID uint) (float64, error) {
	var avg float64
	err := r.db.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	return avg, err
}
