package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/GiorgiUbiria/bookkeeping_system/internal/httputil"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/orders"
	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	BookID   uint            `json:"book_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type OrderRequest struct {
	UserID uint               `json:"user_id"`
	Status string             `json:"status"`
	Items  []OrderItemRequest `json:"items"`
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	list, err := h.orders.ListOrders(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]orders.LineItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orders.LineItemInput{
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	order, err := h.orders.CreateOrder(r.Context(), orders.CreateInput{
		UserID: req.UserID,
		Status: req.Status,
		Items:  items,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, order)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := h.orders.DeleteOrder(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "order deleted successfully")
}

func (h *Handler) ListOrderItems(w http.ResponseWriter, r *http.Request) {
	orderID, ok := idParam(r, "orderID")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	items, err := h.orders.ListItems(r.Context(), orderID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) UpdateOrderItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid order item id")
		return
	}

	var req OrderItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.orders.UpdateItem(r.Context(), id, req.Quantity, req.Price)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteOrderItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "invalid order item id")
		return
	}

	if err := h.orders.DeleteItem(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "order item deleted successfully")
}
