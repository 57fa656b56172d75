package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"opsboard/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250301_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.Client{}, &models.Supplier{},
					&models.Unit{}, &models.Pickup{}, &models.Entity{}, &models.Product{})
			},
		},
		{
			ID: "20250301_create_order_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Order{}, &models.OrderItem{})
			},
		},
		{
			ID: "20250302_create_schedule_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Purchase{}, &models.PurchaseItem{},
					&models.Task{}, &models.Reminder{}, &models.Site{}, &models.Refill{})
			},
		},
		{
			ID: "20250315_create_documents",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Document{})
			},
		},
		{
			ID: "20250420_index_schedule_dates",
			Migrate: func(tx *gorm.DB) error {
				// Cursor pagination on tasks/reminders scans by date.
				if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_purchases_day ON purchases (day)").Error; err != nil {
					return err
				}
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_tasks_day ON tasks (day)").Error
			},
		},
	})
	return m.Migrate()
}
