package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Product *ProductHandler
	Recipe  *RecipeHandler
	Comment *CommentHandler
	Rating  *RatingHandler
}

func NewHandler(h Handlers, jwtSecret []byte) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/register", h.Auth.Register)
			r.Get("/activate", h.Auth.Activate)
			r.Post("/recover", h.Auth.Recover)
			r.Post("/reset", h.Auth.ResetPassword)
		})

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(jwtSecret))

			r.Route("/users", func(r chi.Router) {
				r.Get("/", h.User.GetAll)
				r.Get("/me", h.User.GetMe)
				r.Put("/me", h.User.UpdateMe)
				r.Delete("/me", h.User.DeleteMe)
				r.Get("/{id}", h.User.GetByID)
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.Product.GetAll)
				r.Post("/", h.Product.Create)
				r.Get("/{id}", h.Product.GetByID)
				r.Put("/{id}", h.Product.Update)
				r.Delete("/{id}", h.Product.Delete)
			})

			r.Route("/recipes", func(r chi.Router) {
				r.Get("/", h.Recipe.GetAll)
				r.Post("/", h.Recipe.Create)
				r.Get("/{id}", h.Recipe.GetByID)
				r.Put("/{id}", h.Recipe.Update)
				r.Delete("/{id}", h.Recipe.Delete)
				r.Get("/{id}/comments", h.Comment.GetForRecipe)
				r.Get("/{id}/rating", h.Rating.GetAverage)
				r.Get("/{id}/rating/mine", h.Rating.GetMine)
			})

			r.Route("/comments", func(r chi.Router) {
				r.Post("/", h.Comment.Create)
				r.Put("/{id}", h.Comment.Update)
				r.Delete("/{id}", h.Comment.Delete)
			})

			r.Route("/ratings", func(r chi.Router) {
				r.Post("/", h.Rating.Rate)
			})
		})
	})

	return r
}
