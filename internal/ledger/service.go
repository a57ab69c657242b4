package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GiorgiUbiria/bookkeeping_system/internal/events"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/keylock"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/logger"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/models"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service owns every read-modify-write of an account balance. Each operation
// holds the account's keylock for its full span and runs its writes inside a
// single database transaction, so no caller ever observes a balance change
// without its paired ledger row or vice versa.
type Service struct {
	db     *gorm.DB
	locks  *keylock.Registry
	events events.Publisher
}

func NewService(db *gorm.DB, pub events.Publisher) *Service {
	return &Service{
		db:     db,
		locks:  keylock.New(),
		events: pub,
	}
}

// PostInput describes a ledger transaction to be posted.
type PostInput struct {
	AccountID   uint
	UserID      uint
	CategoryID  uint
	Amount      decimal.Decimal
	Direction   models.Direction
	Description string
}

func validate(amount decimal.Decimal, dir models.Direction) error {
	if dir != models.Credit && dir != models.Debit {
		return fmt.Errorf("%w: direction must be CREDIT or DEBIT", ErrInvalidArgument)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
	}
	return nil
}

// applyDelta loads the account under an exclusive row lock, applies the
// signed change and persists the new balance. Caller must already hold the
// account's keylock and run inside a transaction.
func applyDelta(tx *gorm.DB, account *models.Account, accountID uint, amount decimal.Decimal, dir models.Direction) error {
	if err := store.ForUpdate(tx).First(account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	var newBalance decimal.Decimal
	switch dir {
	case models.Credit:
		newBalance = account.Balance.Add(amount)
	case models.Debit:
		newBalance = account.Balance.Sub(amount)
	}
	if newBalance.IsNegative() {
		return ErrInsufficientBalance
	}

	if err := tx.Model(account).Update("balance", newBalance).Error; err != nil {
		return err
	}
	account.Balance = newBalance
	return nil
}

// AdjustBalance credits or debits a single account. No ledger row is
// written; composing the two is PostTransaction's job.
func (s *Service) AdjustBalance(ctx context.Context, accountID uint, amount decimal.Decimal, dir models.Direction) (*models.Account, error) {
	if err := validate(amount, dir); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(accountID)
	defer unlock()

	var account models.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return applyDelta(tx, &account, accountID, amount, dir)
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// PostTransaction applies the balance change and records the ledger row as
// one unit. On any failure neither write survives.
func (s *Service) PostTransaction(ctx context.Context, in PostInput) (*models.Transaction, error) {
	if err := validate(in.Amount, in.Direction); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(in.AccountID)
	defer unlock()

	entry := models.Transaction{
		AccountID:   in.AccountID,
		UserID:      models.OptionalID(in.UserID),
		CategoryID:  models.OptionalID(in.CategoryID),
		Amount:      in.Amount,
		Type:        in.Direction,
		Description: in.Description,
		Reference:   uuid.New(),
	}

	var account models.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := applyDelta(tx, &account, in.AccountID, in.Amount, in.Direction); err != nil {
			return err
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TopicTransactionPosted, events.TransactionPosted{
		TransactionID: entry.ID,
		Reference:     entry.Reference.String(),
		AccountID:     entry.AccountID,
		Amount:        entry.Amount,
		Direction:     string(entry.Type),
		Balance:       account.Balance,
		OccurredAt:    time.Now().UTC(),
	})
	return &entry, nil
}

// ReverseTransaction undoes a posted ledger transaction: the exact inverse
// of its balance change is applied and the row is deleted, atomically.
// Reversing a credit is a decrease, so it can fail with
// ErrInsufficientBalance if the funds were spent since; the entry and
// balance are left untouched in that case.
func (s *Service) ReverseTransaction(ctx context.Context, id uint) error {
	// Unlocked read to learn which account to lock; the entry is re-read
	// under the lock before anything is written.
	var entry models.Transaction
	if err := s.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}

	unlock := s.locks.Lock(entry.AccountID)
	defer unlock()

	var account models.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}

		inverse := models.Debit
		if entry.Type == models.Debit {
			inverse = models.Credit
		}
		if err := applyDelta(tx, &account, entry.AccountID, entry.Amount, inverse); err != nil {
			return err
		}
		// Hard delete: the ledger row disappears rather than being marked
		// reversed.
		return tx.Unscoped().Delete(&models.Transaction{}, entry.ID).Error
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.TopicTransactionReversed, events.TransactionReversed{
		TransactionID: entry.ID,
		Reference:     entry.Reference.String(),
		AccountID:     entry.AccountID,
		Amount:        entry.Amount,
		Direction:     string(entry.Type),
		Balance:       account.Balance,
		OccurredAt:    time.Now().UTC(),
	})
	return nil
}

func (s *Service) publish(ctx context.Context, topic string, event any) {
	if err := s.events.Publish(ctx, topic, event); err != nil {
		logger.Log.Warn("failed to publish event", zap.String("topic", topic), zap.Error(err))
	}
}
