package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/GiorgiUbiria/bookkeeping_system/internal/httputil"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/ledger"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/logger"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/orders"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler carries the injected store handle and core services; no handler
// reaches for package-level state.
type Handler struct {
	db     *gorm.DB
	ledger *ledger.Service
	orders *orders.Service
}

func New(db *gorm.DB, ledgerSvc *ledger.Service, orderSvc *orders.Service) *Handler {
	return &Handler{
		db:     db,
		ledger: ledgerSvc,
		orders: orderSvc,
	}
}

func idParam(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound),
		errors.Is(err, ledger.ErrTransactionNotFound),
		errors.Is(err, orders.ErrOrderNotFound),
		errors.Is(err, orders.ErrOrderItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInvalidArgument),
		errors.Is(err, orders.ErrInvalidArgument),
		errors.Is(err, ledger.ErrInsufficientBalance):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError translates a core error into a transport status. Only
// unexpected store failures are logged; domain rejections are the caller's
// problem.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.Log.Error("request failed", zap.Error(err))
		httputil.WriteError(w, code, "internal server error")
		return
	}
	httputil.WriteError(w, code, err.Error())
}
