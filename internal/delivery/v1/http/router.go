package http

import (
	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

// UseCases — зависимости обработчиков.
type UseCases struct {
	Session usecase.SessionUC
	Catalog usecase.CatalogUC
	Cart    usecase.CartUC
	Quiz    usecase.QuizUC
}

func (r *Router) Init(uc *UseCases, sessionCfg *cfg.SessionCfg) {
	r.router.Use(middleware.RealIP, middleware.Recoverer)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerCatalogRoutes(v1, NewCatalogHandler(uc.Catalog, r.logger))

		v1.Group(func(s chi.Router) {
			s.Use(SessionMiddleware(uc.Session, sessionCfg, r.logger))
			registerCartRoutes(s, NewCartHandler(uc.Cart, r.logger))
			registerQuizRoutes(s, NewQuizHandler(uc.Quiz, r.logger))
		})
	})
}

func registerCatalogRoutes(router chi.Router, h *CatalogHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", h.listProducts)
		pr.Get("/{id}", h.getProduct)
	})
	router.Get("/testimonials", h.listTestimonials)
}

func registerCartRoutes(router chi.Router, h *CartHandler) {
	router.Route("/cart", func(c chi.Router) {
		c.Get("/", h.getCart)
		c.Post("/items", h.addItem)
		c.Delete("/items/{id}", h.removeItem)
	})
}

func registerQuizRoutes(router chi.Router, h *QuizHandler) {
	router.Route("/quiz", func(q chi.Router) {
		q.Post("/", h.startQuiz)
		q.Get("/", h.getQuiz)
		q.Delete("/", h.closeQuiz)
		q.Post("/answers", h.answer)
		q.Post("/restart", h.restart)
	})
}
