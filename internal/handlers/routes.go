package handlers

import (
	"net/http"

	"ai_learning_tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes は /api/v1 以下のルートを登録する。auth は JWT か開発用ヘッダーのミドルウェア。
func RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler, completion *CompletionHandler, profile *ProfileHandler, admin *AdminHandler) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/levels", profile.GetLevels)

		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Route("/me", func(r chi.Router) {
				r.Get("/", profile.GetMe)
				r.Put("/level", profile.PutMyLevel)
				r.Get("/points", profile.GetMyPoints)
				r.Get("/completions", completion.GetMyCompletions)
			})

			r.Route("/courses/{course_id}", func(r chi.Router) {
				r.Get("/", completion.GetCourse)
				r.Post("/completion", completion.PostCompletion)
				r.Delete("/completion", completion.DeleteCompletion)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Put("/levels", admin.PutLevels)
				r.Post("/users", admin.PostUser)
				r.Post("/users/{user_id}/deactivate", admin.PostDeactivate)
				r.Post("/users/{user_id}/adjustments", admin.PostAdjustment)
				r.Post("/users/{user_id}/recompute", admin.PostRecompute)
				r.Get("/users/{user_id}/reconcile", admin.GetReconcile)
				r.Post("/courses", admin.PostCourse)
			})
		})
	})
}
