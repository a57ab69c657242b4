package store

import (
	"testing"

	"github.com/GiorgiUbiria/bookkeeping_system/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestAccountDeleteBlockedWhileReferenced(t *testing.T) {
	db := newTestDB(t)

	account := models.Account{Name: "Cash", Type: "ASSET", Balance: decimal.RequireFromString("100")}
	if err := db.Create(&account).Error; err != nil {
		t.Fatalf("create account: %v", err)
	}
	entry := models.Transaction{
		AccountID: account.ID,
		Amount:    decimal.RequireFromString("25"),
		Type:      models.Credit,
		Reference: uuid.New(),
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	if err := db.Unscoped().Delete(&models.Account{}, account.ID).Error; err == nil {
		t.Fatal("deleting a referenced account succeeded")
	}

	var rows int64
	if err := db.Model(&models.Transaction{}).Where("account_id = ?", account.ID).Count(&rows).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Fatalf("ledger rows = %d, want 1", rows)
	}
	if err := db.First(&models.Account{}, account.ID).Error; err != nil {
		t.Fatalf("account row gone after blocked delete: %v", err)
	}
}

func TestTransactionRequiresExistingAccount(t *testing.T) {
	db := newTestDB(t)

	entry := models.Transaction{
		AccountID: 4242,
		Amount:    decimal.RequireFromString("10"),
		Type:      models.Debit,
		Reference: uuid.New(),
	}
	if err := db.Create(&entry).Error; err == nil {
		t.Fatal("transaction referencing a missing account was accepted")
	}
}

func TestOrderDeleteCascadesToItems(t *testing.T) {
	db := newTestDB(t)

	order := models.Order{
		TotalAmount: decimal.RequireFromString("30"),
		Status:      "Pending",
		Items: []models.OrderItem{
			{Quantity: 3, Price: decimal.RequireFromString("10"), Amount: decimal.RequireFromString("30")},
		},
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}

	if err := db.Unscoped().Delete(&models.Order{}, order.ID).Error; err != nil {
		t.Fatalf("delete order: %v", err)
	}

	var items int64
	if err := db.Unscoped().Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&items).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	if items != 0 {
		t.Fatalf("order items survived the delete: %d rows", items)
	}
}
