package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GiorgiUbiria/bookkeeping_system/internal/httputil"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/logger"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AccountRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type BalanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type"`
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	var accounts []models.Account
	if err := h.db.WithContext(r.Context()).Order("id").Find(&accounts).Error; err != nil {
		logger.Log.Error("failed to fetch accounts", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch accounts")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, accounts)
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	var account models.Account
	if err := h.db.WithContext(r.Context()).First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "account not found")
			return
		}
		logger.Log.Error("failed to fetch account", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch account")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, account)
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Type == "" {
		httputil.WriteError(w, http.StatusBadRequest, "name and type are required")
		return
	}

	account := models.Account{Name: req.Name, Type: req.Type, Balance: decimal.Zero}
	if err := h.db.WithContext(r.Context()).Create(&account).Error; err != nil {
		logger.Log.Error("failed to create account", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create account")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, account)
}

func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	var req AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var account models.Account
	if err := h.db.WithContext(r.Context()).First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "account not found")
			return
		}
		logger.Log.Error("failed to fetch account", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to update account")
		return
	}

	account.Name = req.Name
	account.Type = req.Type
	if err := h.db.WithContext(r.Context()).Model(&account).Updates(map[string]any{
		"name": account.Name,
		"type": account.Type,
	}).Error; err != nil {
		logger.Log.Error("failed to update account", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to update account")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, account)
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	// An account is never deleted while ledger transactions reference it;
	// the store's RESTRICT constraint backs this check.
	var referenced int64
	if err := h.db.WithContext(r.Context()).Model(&models.Transaction{}).Where("account_id = ?", id).Count(&referenced).Error; err != nil {
		logger.Log.Error("failed to delete account", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to delete account")
		return
	}
	if referenced > 0 {
		httputil.WriteError(w, http.StatusConflict, "account has ledger transactions")
		return
	}

	res := h.db.WithContext(r.Context()).Unscoped().Delete(&models.Account{}, id)
	if res.Error != nil {
		logger.Log.Error("failed to delete account", zap.Error(res.Error))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to delete account")
		return
	}
	if res.RowsAffected == 0 {
		httputil.WriteError(w, http.StatusNotFound, "account not found")
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "account deleted successfully")
}

// AdjustBalance credits or debits one account through the ledger service.
func (h *Handler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	var req BalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dir, ok := models.ParseDirection(req.Type)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid transaction type")
		return
	}

	account, err := h.ledger.AdjustBalance(r.Context(), id, req.Amount, dir)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, account)
}
