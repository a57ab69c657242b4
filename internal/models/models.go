package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Direction says which way a ledger transaction moves an account balance.
type Direction string

const (
	Credit Direction = "CREDIT"
	Debit  Direction = "DEBIT"
)

// ParseDirection normalizes a caller-supplied direction string once, at the
// boundary. Downstream code only ever sees Credit or Debit.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(strings.ToUpper(s)) {
	case Credit:
		return Credit, true
	case Debit:
		return Debit, true
	}
	return "", false
}

// OptionalID turns a zero id into a NULL reference so optional foreign keys
// stay satisfiable.
func OptionalID(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}

type User struct {
	gorm.Model
	Name     string `gorm:"size:100;not null"`
	Email    string `gorm:"uniqueIndex;size:100;not null"`
	Password string `gorm:"size:255" json:"-"`
	Role     string `gorm:"size:50;default:accountant"`

	Transactions []Transaction `json:"-"`
	Orders       []Order       `json:"-"`
	AuditLogs    []AuditLog    `json:"-"`
}

// Account rows are never deleted while ledger transactions reference them;
// the RESTRICT constraint is the store-level rule that backs this.
type Account struct {
	gorm.Model
	Name    string          `gorm:"size:100;not null"`
	Type    string          `gorm:"size:50;index;not null"`
	Balance decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Transactions []Transaction `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}

type Category struct {
	gorm.Model
	Name string `gorm:"size:100;not null"`
	Type string `gorm:"size:50;not null"`

	Transactions []Transaction `json:"-"`
}

// Transaction is a ledger entry. Rows are immutable once posted; the only
// write after creation is the delete performed by a reversal.
type Transaction struct {
	gorm.Model
	AccountID   uint            `gorm:"index;not null"`
	UserID      *uint           `gorm:"index"`
	CategoryID  *uint           `gorm:"index"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Type        Direction       `gorm:"size:20;not null"`
	Description string          `gorm:"size:255"`
	Reference   uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
}

type AuditLog struct {
	gorm.Model
	UserID    *uint  `gorm:"index"`
	TableName string `gorm:"size:50"`
	Action    string `gorm:"size:50"`
	OldValue  string `gorm:"type:text"`
	NewValue  string `gorm:"type:text"`
}

type Book struct {
	gorm.Model
	Title     string          `gorm:"size:150;not null"`
	Author    string          `gorm:"size:100"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2)"`
	Stock     int             `gorm:"default:0"`
	ImageLink string          `gorm:"size:255"`

	OrderItems []OrderItem `json:"-"`
}

type Order struct {
	gorm.Model
	UserID      *uint           `gorm:"index"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status      string          `gorm:"size:50;default:Pending"`
	Items       []OrderItem     `gorm:"constraint:OnDelete:CASCADE"`
}

// OrderItem pins Price at order-creation time; later catalog price changes
// never touch it.
type OrderItem struct {
	gorm.Model
	OrderID  uint            `gorm:"index;not null"`
	BookID   *uint           `gorm:"index"`
	Quantity int             `gorm:"not null"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Amount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
