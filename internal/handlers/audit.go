package handlers

import (
	"errors"
	"net/http"

	"github.com/GiorgiUbiria/bookkeeping_system/internal/httputil"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/logger"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (h *Handler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	var logs []models.AuditLog
	if err := h.db.WithContext(r.Context()).Order("created_at DESC").Find(&logs).Error; err != nil {
		logger.Log.Error("failed to fetch audit logs", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch audit logs")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, logs)
}

func (h *Handler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid audit log id")
		return
	}

	var log models.AuditLog
	if err := h.db.WithContext(r.Context()).First(&log, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "audit log not found")
			return
		}
		logger.Log.Error("failed to fetch audit log", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch audit log")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, log)
}
