package config

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"opsboard/models"
)

// SeedDefaults creates the default units and the initial admin
// account. It skips anything that already exists, so it is safe to
// run on every startup.
func SeedDefaults(db *gorm.DB) error {
	if err := seedUnits(db); err != nil {
		return err
	}
	return seedAdmin(db)
}

func seedUnits(db *gorm.DB) error {
	defaults := []string{"kg", "g", "l", "piece", "box", "crate"}
	for _, name := range defaults {
		var count int64
		if err := db.Model(&models.Unit{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&models.Unit{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

// seedAdmin creates an admin user from ADMIN_EMAIL/ADMIN_PASSWORD.
// Without those vars the first registered user becomes admin instead.
func seedAdmin(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Seeded admin user %s", email)
	return nil
}
