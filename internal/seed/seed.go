package seed

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/GiorgiUbiria/bookkeeping_system/internal/logger"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	seedPassword = "password123"
	adminEmail   = "admin@books.local"
)

var sampleCategories = []models.Category{
	{Name: "Sales", Type: "INCOME"},
	{Name: "Purchases", Type: "EXPENSE"},
	{Name: "Adjustments", Type: "OTHER"},
}

var sampleBooks = []struct {
	Title  string
	Author string
	Price  string
	Stock  int
}{
	{"The Martian", "Andy Weir", "500.00", 10},
	{"Project Hail Mary", "Andy Weir", "399.00", 10},
	{"Dune", "Frank Herbert", "750.00", 10},
	{"Sapiens: A Brief History", "Yuval Noah Harari", "699.00", 10},
	{"The Midnight Library", "Matt Haig", "587.00", 10},
	{"1984", "George Orwell", "499.00", 10},
	{"Atomic Habits", "James Clear", "399.00", 10},
	{"The Alchemist", "Paulo Coelho", "299.00", 10},
	{"Deep Work", "Cal Newport", "640.00", 10},
	{"The Psychology of Money", "Morgan Housel", "399.00", 10},
}

// Run seeds an admin user, default categories and a small book catalog.
// Safe to call on every startup.
func Run(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		logger.Log.Fatal("seed check failed", zap.Error(err))
	}
	if count > 0 {
		logger.Log.Info("seed already applied, skipping")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Fatal("failed to hash seed password", zap.Error(err))
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		admin := models.User{Name: "Admin", Email: adminEmail, Password: string(hash), Role: "admin"}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		for _, c := range sampleCategories {
			category := c
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
		}

		cash := models.Account{Name: "Cash", Type: "ASSET", Balance: decimal.Zero}
		if err := tx.Create(&cash).Error; err != nil {
			return err
		}

		for _, b := range sampleBooks {
			book := models.Book{
				Title:  b.Title,
				Author: b.Author,
				Price:  decimal.RequireFromString(b.Price),
				Stock:  b.Stock,
			}
			if err := tx.Create(&book).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Log.Fatal("seed failed", zap.Error(err))
	}
	logger.Log.Info("seeded admin user and sample catalog", zap.String("email", adminEmail))
}
