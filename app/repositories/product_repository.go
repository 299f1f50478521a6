package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/sokoni/app/models"
	"github.com/shashiranjanraj/sokoni/pkg/cache"
	"github.com/shashiranjanraj/sokoni/pkg/metrics"
)

const catalogueCacheKey = "products:active"

// ProductRepository handles database operations for Product, including
// the atomic stock reservation used at checkout.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ProductRepository) WithTx(tx *gorm.DB) *ProductRepository {
	return &ProductRepository{db: tx}
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var p models.Product
	err := r.db.First(&p, id).Error
	return p, err
}

// Create persists a new product and invalidates the catalogue cache.
func (r *ProductRepository) Create(p *models.Product) error {
	if err := r.db.Create(p).Error; err != nil {
		return err
	}
	cache.Del(catalogueCacheKey)
	return nil
}

// Update persists changes to a product and invalidates the catalogue cache.
func (r *ProductRepository) Update(p *models.Product) error {
	if err := r.db.Save(p).Error; err != nil {
		return err
	}
	cache.Del(catalogueCacheKey)
	return nil
}

// ActiveCatalogue returns every active product, cached until the next
// product write.
func (r *ProductRepository) ActiveCatalogue() ([]models.Product, error) {
	var products []models.Product
	if cache.Get(catalogueCacheKey, &products) {
		metrics.CacheHits.Inc()
		return products, nil
	}
	metrics.CacheMisses.Inc()

	err := r.db.Where("is_active = ?", true).Order("id").Find(&products).Error
	if err != nil {
		return nil, err
	}
	cache.Set(catalogueCacheKey, products, cache.DefaultTTL)
	return products, nil
}

// BySeller returns all of a seller's products, active or not.
func (r *ProductRepository) BySeller(sellerID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("seller_id = ?", sellerID).Order("id").Find(&products).Error
	return products, err
}

// IDsBySeller returns the ids of every product owned by the seller.
func (r *ProductRepository) IDsBySeller(sellerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Product{}).Where("seller_id = ?", sellerID).
		Pluck("id", &ids).Error
	return ids, err
}

// Reserve atomically decrements stock for a product. The quantity
// guard runs in the UPDATE itself so two concurrent reservations can
// never drive stock negative. Returns false when stock is insufficient
// or the product does not exist.
func (r *ProductRepository) Reserve(productID uint, qty int) (bool, error) {
	if qty <= 0 {
		return false, fmt.Errorf("reserve: quantity must be positive, got %d", qty)
	}
	res := r.db.Model(&models.Product{}).
		Where("id = ? AND quantity >= ?", productID, qty).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		cache.Del(catalogueCacheKey)
	}
	return res.RowsAffected > 0, nil
}

// Restore returns previously reserved stock to the shelf. Used to roll
// back a failed checkout and when an unshipped order is refunded.
func (r *ProductRepository) Restore(productID uint, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("restore: quantity must be positive, got %d", qty)
	}
	err := r.db.Model(&models.Product{}).Where("id = ?", productID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", qty)).Error
	if err == nil {
		cache.Del(catalogueCacheKey)
	}
	return err
}

// SetRating stores the recomputed review average for a product.
func (r *ProductRepository) SetRating(productID uint, rating float64) error {
	err := r.db.Model(&models.Product{}).Where("id = ?", productID).
		UpdateColumn("rating", rating).Error
	if err == nil {
		cache.Del(catalogueCacheKey)
	}
	return err
}

// SetActiveBySeller flips visibility on every product owned by a
// seller in one statement. Used by the moderation cascade.
func (r *ProductRepository) SetActiveBySeller(sellerID uint, active bool) error {
	err := r.db.Model(&models.Product{}).Where("seller_id = ?", sellerID).
		UpdateColumn("is_active", active).Error
	if err == nil {
		cache.Del(catalogueCacheKey)
	}
	return err
}
