package seeders

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/sokoni/app/models"
	"github.com/shashiranjanraj/sokoni/pkg/auth"
)

func init() {
	Register("admin", SeedAdmin)
	Register("demo", SeedDemo)
}

// SeedAdmin ensures a default admin account exists.
func SeedAdmin(db *gorm.DB) error {
	hashed, err := auth.HashPassword("admin12345")
	if err != nil {
		return err
	}
	admin := models.User{
		Name:     "Administrator",
		Email:    "admin@sokoni.app",
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	return db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error
}

// SeedDemo inserts a seller, a buyer, a courier and a few products for
// local development.
func SeedDemo(db *gorm.DB) error {
	hashed, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}

	users := []models.User{
		{Name: "Amina Seller", Email: "seller@sokoni.app", Password: hashed, Role: models.RoleSeller},
		{Name: "Brian Buyer", Email: "buyer@sokoni.app", Password: hashed, Role: models.RoleBuyer},
		{Name: "Chui Couriers", Email: "courier@sokoni.app", Password: hashed, Role: models.RoleDelivery},
	}
	for i := range users {
		if err := db.Where("email = ?", users[i].Email).FirstOrCreate(&users[i]).Error; err != nil {
			return err
		}
	}

	seller := users[0]
	products := []models.Product{
		{SellerID: seller.ID, Name: "Ceramic mug", Price: 12.50, Quantity: 40, Category: "home", IsActive: true},
		{SellerID: seller.ID, Name: "Woven basket", Price: 28.00, Quantity: 15, Category: "home", IsActive: true},
		{SellerID: seller.ID, Name: "Leather sandals", Price: 45.00, Quantity: 8, Category: "fashion", IsActive: true},
	}
	for i := range products {
		err := db.Where("seller_id = ? AND name = ?", seller.ID, products[i].Name).
			FirstOrCreate(&products[i]).Error
		if err != nil {
			return err
		}
	}

	buyer := users[1]
	review := models.Review{
		ProductID: products[0].ID,
		UserID:    buyer.ID,
		Rating:    5,
		Content:   "Beautiful mug, arrived quickly.",
	}
	err = db.Where("product_id = ? AND user_id = ?", review.ProductID, review.UserID).
		FirstOrCreate(&review).Error
	if err != nil {
		return err
	}
	return db.Model(&models.Product{}).Where("id = ?", products[0].ID).
		UpdateColumn("rating", float64(review.Rating)).Error
}
