package store

import (
	"github.com/GiorgiUbiria/bookkeeping_system/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// New opens a postgres-backed handle. The handle is passed explicitly to
// whoever needs it; there is no package-level connection.
func New(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: false,
	}), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Category{},
		&models.Transaction{},
		&models.AuditLog{},
		&models.Book{},
		&models.Order{},
		&models.OrderItem{},
	)
}

// ForUpdate adds a SELECT ... FOR UPDATE row lock on dialects that support
// it. sqlite does not; callers there are serialized by the account keylock,
// which they must hold regardless.
func ForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
