package routes

import (
	"net/http"

	"github.com/GiorgiUbiria/bookkeeping_system/internal/handlers"
	appmw "github.com/GiorgiUbiria/bookkeeping_system/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

func New(h *handlers.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Works Fine!"))
	})

	r.Post("/api/users", h.RegisterUser)
	r.Post("/api/users/login", h.Login)

	r.Route("/api", func(api chi.Router) {
		api.Use(appmw.Authenticated)

		api.Get("/users/me", h.Me)
		api.Get("/users", h.ListUsers)
		api.Get("/users/{id}", h.GetUser)
		api.Put("/users/{id}", h.UpdateUser)
		api.Delete("/users/{id}", h.DeleteUser)

		api.Route("/accounts", func(ar chi.Router) {
			ar.Get("/", h.ListAccounts)
			ar.Post("/", h.CreateAccount)
			ar.Get("/{id}", h.GetAccount)
			ar.Put("/{id}", h.UpdateAccount)
			ar.Delete("/{id}", h.DeleteAccount)
			ar.Post("/{id}/balance", h.AdjustBalance)
		})

		api.Route("/transactions", func(tr chi.Router) {
			tr.Get("/", h.ListTransactions)
			tr.Post("/", h.CreateTransaction)
			tr.Get("/{id}", h.GetTransaction)
			tr.Delete("/{id}", h.DeleteTransaction)
		})

		api.Route("/orders", func(or chi.Router) {
			or.Get("/", h.ListOrders)
			or.Post("/", h.CreateOrder)
			or.Get("/{id}", h.GetOrder)
			or.Delete("/{id}", h.DeleteOrder)
		})

		api.Route("/order-items", func(oi chi.Router) {
			oi.Get("/order/{orderID}", h.ListOrderItems)
			oi.Put("/{id}", h.UpdateOrderItem)
			oi.Delete("/{id}", h.DeleteOrderItem)
		})

		api.Route("/books", func(br chi.Router) {
			br.Get("/", h.ListBooks)
			br.Post("/", h.CreateBook)
			br.Get("/{id}", h.GetBook)
			br.Put("/{id}", h.UpdateBook)
			br.Delete("/{id}", h.DeleteBook)
		})

		api.Get("/audit", h.ListAuditLogs)
		api.Get("/audit/{id}", h.GetAuditLog)
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
