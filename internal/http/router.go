package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"nutrichat/internal/handlers"
	"nutrichat/internal/indexer"
	"nutrichat/internal/rag"
	"nutrichat/internal/service"
	"nutrichat/internal/storage"
	"nutrichat/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	RAGEngine     rag.Engine
	Assistant     *service.Assistant
	NutritionRepo storage.NutritionStore
	Pipeline      *indexer.Pipeline
	VectorStore   vectorstore.VectorStore
	Collection    string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	askHandler := handlers.NewAskHandler(deps.RAGEngine)
	recipeHandler := handlers.NewRecipeHandler(deps.Assistant)
	planHandler := handlers.NewPlanHandler(deps.Assistant)
	substituteHandler := handlers.NewSubstituteHandler(deps.Assistant)
	nutritionHandler := handlers.NewNutritionHandler(deps.NutritionRepo)
	indexHandler := handlers.NewIndexHandler(deps.Pipeline)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.Collection)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Route("/v1", func(r chi.Router) {
			r.Method(http.MethodPost, "/ask", askHandler)
			r.Method(http.MethodPost, "/recipe", recipeHandler)
			r.Method(http.MethodPost, "/plan", planHandler)
			r.Method(http.MethodPost, "/substitute", substituteHandler)
			r.Method(http.MethodGet, "/nutrition", nutritionHandler)
			r.Method(http.MethodPost, "/index", indexHandler)
		})
	})

	return r
}
