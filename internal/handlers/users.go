package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/GiorgiUbiria/bookkeeping_system/configs"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/httputil"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/logger"
	appmw "github.com/GiorgiUbiria/bookkeeping_system/internal/middleware"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		httputil.WriteError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	var count int64
	if err := h.db.WithContext(r.Context()).Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		logger.Log.Error("failed to check existing user", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create user")
		return
	}
	if count > 0 {
		httputil.WriteError(w, http.StatusConflict, "user with this email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	role := req.Role
	if role == "" {
		role = "accountant"
	}

	user := models.User{Name: req.Name, Email: req.Email, Password: string(hash), Role: role}
	if err := h.db.WithContext(r.Context()).Create(&user).Error; err != nil {
		logger.Log.Error("failed to create user", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create user")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httputil.WriteError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	var user models.User
	if err := h.db.WithContext(r.Context()).Where("email = ?", req.Email).First(&user).Error; err != nil {
		httputil.WriteError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		httputil.WriteError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	claims := jwt.MapClaims{
		"sub": user.ID,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.AppConfig.JWT.SECRET))
	if err != nil {
		logger.Log.Error("failed to sign jwt", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create token")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, LoginResponse{Token: signed})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := appmw.UserID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var user models.User
	if err := h.db.WithContext(r.Context()).First(&user, userID).Error; err != nil {
		httputil.WriteError(w, http.StatusNotFound, "user not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := h.db.WithContext(r.Context()).Order("id").Find(&users).Error; err != nil {
		logger.Log.Error("failed to fetch users", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch users")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var user models.User
	if err := h.db.WithContext(r.Context()).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		logger.Log.Error("failed to fetch user", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var user models.User
	if err := h.db.WithContext(r.Context()).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		logger.Log.Error("failed to fetch user", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	updates := map[string]any{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Role != "" {
		updates["role"] = req.Role
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Log.Error("failed to hash password", zap.Error(err))
			httputil.WriteError(w, http.StatusInternalServerError, "failed to update user")
			return
		}
		updates["password"] = string(hash)
	}

	if err := h.db.WithContext(r.Context()).Model(&user).Updates(updates).Error; err != nil {
		logger.Log.Error("failed to update user", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to update user")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	res := h.db.WithContext(r.Context()).Unscoped().Delete(&models.User{}, id)
	if res.Error != nil {
		logger.Log.Error("failed to delete user", zap.Error(res.Error))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	if res.RowsAffected == 0 {
		httputil.WriteError(w, http.StatusNotFound, "user not found")
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "user deleted successfully")
}
