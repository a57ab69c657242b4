package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	appmw "github.com/GiorgiUbiria/bookkeeping_system/internal/middleware"

	"github.com/GiorgiUbiria/bookkeeping_system/internal/httputil"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/ledger"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/logger"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TransactionRequest struct {
	AccountID   uint            `json:"account_id"`
	UserID      uint            `json:"user_id"`
	CategoryID  uint            `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	var transactions []models.Transaction
	if err := h.db.WithContext(r.Context()).Order("created_at DESC").Find(&transactions).Error; err != nil {
		logger.Log.Error("failed to fetch transactions", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch transactions")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, transactions)
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	var transaction models.Transaction
	if err := h.db.WithContext(r.Context()).First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "transaction not found")
			return
		}
		logger.Log.Error("failed to fetch transaction", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch transaction")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, transaction)
}

// CreateTransaction posts a ledger transaction: balance change plus entry,
// atomically.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dir, ok := models.ParseDirection(req.Type)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid transaction type")
		return
	}

	userID := req.UserID
	if userID == 0 {
		if authedID, ok := appmw.UserID(r.Context()); ok {
			userID = authedID
		}
	}

	transaction, err := h.ledger.PostTransaction(r.Context(), ledger.PostInput{
		AccountID:   req.AccountID,
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Direction:   dir,
		Description: req.Description,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, transaction)
}

// DeleteTransaction reverses a posted transaction: the inverse balance
// change is applied and the entry removed, atomically.
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := h.ledger.ReverseTransaction(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "transaction deleted and balance updated")
}
