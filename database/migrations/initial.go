package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/sokoni/app/models"
	"github.com/shashiranjanraj/sokoni/pkg/migration"
)

func init() {
	migration.Register(migration.Migration{
		Name: "20260301000000_create_users_table",
		Up: func(db *gorm.DB) error {
			return db.AutoMigrate(&models.User{})
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable("users")
		},
	})

	migration.Register(migration.Migration{
		Name: "20260301000001_create_products_table",
		Up: func(db *gorm.DB) error {
			return db.AutoMigrate(&models.Product{})
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable("products")
		},
	})

	migration.Register(migration.Migration{
		Name: "20260301000002_create_cart_items_table",
		Up: func(db *gorm.DB) error {
			return db.AutoMigrate(&models.CartItem{})
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable("cart_items")
		},
	})

	migration.Register(migration.Migration{
		Name: "20260301000003_create_orders_tables",
		Up: func(db *gorm.DB) error {
			return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable("order_items", "orders")
		},
	})

	migration.Register(migration.Migration{
		Name: "20260301000004_create_reports_table",
		Up: func(db *gorm.DB) error {
			return db.AutoMigrate(&models.Report{})
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable("reports")
		},
	})

	migration.Register(migration.Migration{
		Name: "20260301000005_create_notifications_table",
		Up: func(db *gorm.DB) error {
			return db.AutoMigrate(&models.Notification{})
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable("notifications")
		},
	})

	migration.Register(migration.Migration{
		Name: "20260301000006_create_reviews_table",
		Up: func(db *gorm.DB) error {
			return db.AutoMigrate(&models.Review{})
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable("reviews")
		},
	})
}
