package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/GiorgiUbiria/bookkeeping_system/internal/events"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/ledger"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/logger"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/models"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/orders"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/store"
	"github.com/glebarez/sqlite"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) (*chi.Mux, *gorm.DB) {
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
	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	h := New(db, ledger.NewService(db, events.Noop{}), orders.NewService(db, events.Noop{}))

	r := chi.NewRouter()
	r.Post("/accounts", h.CreateAccount)
	r.Delete("/accounts/{id}", h.DeleteAccount)
	r.Post("/accounts/{id}/balance", h.AdjustBalance)
	r.Post("/transactions", h.CreateTransaction)
	r.Get("/transactions/{id}", h.GetTransaction)
	r.Delete("/transactions/{id}", h.DeleteTransaction)
	r.Post("/orders", h.CreateOrder)
	return r, db
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func seedAccount(t *testing.T, db *gorm.DB, balance string) models.Account {
	t.Helper()

	account := models.Account{Name: "Cash", Type: "ASSET", Balance: decimal.RequireFromString(balance)}
	if err := db.Create(&account).Error; err != nil {
		t.Fatalf("create account: %v", err)
	}
	return account
}

func TestAdjustBalanceHandler(t *testing.T) {
	r, db := newTestRouter(t)
	account := seedAccount(t, db, "100.00")

	rec := doJSON(t, r, http.MethodPost, "/accounts/1/balance", map[string]any{"amount": "50", "type": "credit"})
	if rec.Code != http.StatusOK {
		t.Fatalf("credit status = %d, body %s", rec.Code, rec.Body.String())
	}
	var updated models.Account
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !updated.Balance.Equal(decimal.RequireFromString("150")) {
		t.Fatalf("balance = %s, want 150", updated.Balance)
	}

	rec = doJSON(t, r, http.MethodPost, "/accounts/1/balance", map[string]any{"amount": "500", "type": "DEBIT"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("overdraft status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, r, http.MethodPost, "/accounts/1/balance", map[string]any{"amount": "10", "type": "SIDEWAYS"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad direction status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, r, http.MethodPost, "/accounts/999/balance", map[string]any{"amount": "10", "type": "CREDIT"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing account status = %d, want 404", rec.Code)
	}

	var stored models.Account
	if err := db.First(&stored, account.ID).Error; err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !stored.Balance.Equal(decimal.RequireFromString("150")) {
		t.Fatalf("persisted balance = %s, want 150", stored.Balance)
	}
}

func TestTransactionLifecycleHandler(t *testing.T) {
	r, db := newTestRouter(t)
	seedAccount(t, db, "200.00")

	rec := doJSON(t, r, http.MethodPost, "/transactions", map[string]any{
		"account_id":  1,
		"amount":      "75",
		"type":        "DEBIT",
		"description": "office supplies",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("post status = %d, body %s", rec.Code, rec.Body.String())
	}
	var entry models.Transaction
	if err := json.NewDecoder(rec.Body).Decode(&entry); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doJSON(t, r, http.MethodDelete, "/transactions/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, http.MethodGet, "/transactions/1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after reversal status = %d, want 404", rec.Code)
	}

	var account models.Account
	if err := db.First(&account, entry.AccountID).Error; err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !account.Balance.Equal(decimal.RequireFromString("200")) {
		t.Fatalf("balance after round trip = %s, want 200", account.Balance)
	}

	rec = doJSON(t, r, http.MethodDelete, "/transactions/999", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("reverse missing status = %d, want 404", rec.Code)
	}
}

func TestCreateOrderHandler(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/orders", map[string]any{
		"items": []map[string]any{
			{"quantity": 2, "price": "500"},
			{"quantity": 1, "price": "750"},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var order models.Order
	if err := json.NewDecoder(rec.Body).Decode(&order); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !order.TotalAmount.Equal(decimal.RequireFromString("1750")) {
		t.Fatalf("total = %s, want 1750", order.TotalAmount)
	}
	if len(order.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(order.Items))
	}

	rec = doJSON(t, r, http.MethodPost, "/orders", map[string]any{"items": []map[string]any{}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty order status = %d, want 400", rec.Code)
	}
}

func TestDeleteAccountHandler(t *testing.T) {
	r, db := newTestRouter(t)
	account := seedAccount(t, db, "100.00")

	entry := models.Transaction{
		AccountID: account.ID,
		Amount:    decimal.RequireFromString("10"),
		Type:      models.Credit,
		Reference: uuid.New(),
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	rec := doJSON(t, r, http.MethodDelete, "/accounts/1", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("delete referenced account status = %d, want 409", rec.Code)
	}

	var count int64
	if err := db.Model(&models.Transaction{}).Where("account_id = ?", account.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("ledger rows = %d, want 1", count)
	}

	if err := db.Unscoped().Delete(&models.Transaction{}, entry.ID).Error; err != nil {
		t.Fatalf("remove transaction: %v", err)
	}
	rec = doJSON(t, r, http.MethodDelete, "/accounts/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete unreferenced account status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, http.MethodDelete, "/accounts/1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("delete missing account status = %d, want 404", rec.Code)
	}
}
