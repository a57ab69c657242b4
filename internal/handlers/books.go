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

type BookRequest struct {
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	ImageLink string          `json:"image_link"`
}

func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	var books []models.Book
	if err := h.db.WithContext(r.Context()).Order("id").Find(&books).Error; err != nil {
		logger.Log.Error("failed to fetch books", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch books")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, books)
}

func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid book id")
		return
	}

	var book models.Book
	if err := h.db.WithContext(r.Context()).First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "book not found")
			return
		}
		logger.Log.Error("failed to fetch book", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch book")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, book)
}

func (h *Handler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		httputil.WriteError(w, http.StatusBadRequest, "title is required")
		return
	}

	book := models.Book{
		Title:     req.Title,
		Author:    req.Author,
		Price:     req.Price,
		Stock:     req.Stock,
		ImageLink: req.ImageLink,
	}
	if err := h.db.WithContext(r.Context()).Create(&book).Error; err != nil {
		logger.Log.Error("failed to create book", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create book")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, book)
}

func (h *Handler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid book id")
		return
	}

	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var book models.Book
	if err := h.db.WithContext(r.Context()).First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "book not found")
			return
		}
		logger.Log.Error("failed to fetch book", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to update book")
		return
	}

	if err := h.db.WithContext(r.Context()).Model(&book).Updates(map[string]any{
		"title":      req.Title,
		"author":     req.Author,
		"price":      req.Price,
		"stock":      req.Stock,
		"image_link": req.ImageLink,
	}).Error; err != nil {
		logger.Log.Error("failed to update book", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to update book")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, book)
}

func (h *Handler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid book id")
		return
	}

	res := h.db.WithContext(r.Context()).Unscoped().Delete(&models.Book{}, id)
	if res.Error != nil {
		logger.Log.Error("failed to delete book", zap.Error(res.Error))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to delete book")
		return
	}
	if res.RowsAffected == 0 {
		httputil.WriteError(w, http.StatusNotFound, "book not found")
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "book deleted successfully")
}
