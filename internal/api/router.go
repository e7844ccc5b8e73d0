package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/QYW-woker/AI-Management-sub000/internal/handlers"
)

// NewRouter 挂载全部路由和中间件
func NewRouter(assistantHandler *handlers.AssistantHandler, recordHandler *handlers.RecordHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(90 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	r.Get("/api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1/assistant", func(r chi.Router) {
		r.Post("/messages", assistantHandler.HandleSendMessage)
		r.Get("/messages", assistantHandler.HandleListMessages)
		r.Delete("/messages", assistantHandler.HandleClearConversation)
		r.Post("/query", assistantHandler.HandleExecuteQuery)
		r.Get("/welcome", assistantHandler.HandleWelcome)
		r.Put("/mode", assistantHandler.HandleSetMode)
	})

	r.Post("/api/v1/transactions", recordHandler.HandleAddTransaction)
	r.Get("/api/v1/transactions", recordHandler.HandleListTransactions)
	r.Post("/api/v1/todos", recordHandler.HandleCreateTodo)
	r.Post("/api/v1/habits/checkin", recordHandler.HandleCheckinHabit)

	return r
}
