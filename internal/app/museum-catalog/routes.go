// Package museumcatalog предоставляет сборку и маршруты основного приложения.
package museumcatalog

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/museum-catalog/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/museum-catalog/internal/http/handlers/auth/register"
	feedbacklist "github.com/magabrotheeeer/museum-catalog/internal/http/handlers/feedback/list"
	"github.com/magabrotheeeer/museum-catalog/internal/http/handlers/feedback/submit"
	"github.com/magabrotheeeer/museum-catalog/internal/http/handlers/museum/bycategory"
	museumcreate "github.com/magabrotheeeer/museum-catalog/internal/http/handlers/museum/create"
	museumlist "github.com/magabrotheeeer/museum-catalog/internal/http/handlers/museum/list"
	museumremove "github.com/magabrotheeeer/museum-catalog/internal/http/handlers/museum/remove"
	museumupdate "github.com/magabrotheeeer/museum-catalog/internal/http/handlers/museum/update"
	userlist "github.com/magabrotheeeer/museum-catalog/internal/http/handlers/user/list"
	"github.com/magabrotheeeer/museum-catalog/internal/http/handlers/user/me"
	userread "github.com/magabrotheeeer/museum-catalog/internal/http/handlers/user/read"
	userremove "github.com/magabrotheeeer/museum-catalog/internal/http/handlers/user/remove"
	userupdate "github.com/magabrotheeeer/museum-catalog/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/museum-catalog/internal/http/middlewarectx"
	customjwt "github.com/magabrotheeeer/museum-catalog/internal/lib/jwt"
	"github.com/magabrotheeeer/museum-catalog/internal/models"
	authservice "github.com/magabrotheeeer/museum-catalog/internal/services/auth"
	feedbackservice "github.com/magabrotheeeer/museum-catalog/internal/services/feedback"
	museumservice "github.com/magabrotheeeer/museum-catalog/internal/services/museum"
	userservice "github.com/magabrotheeeer/museum-catalog/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	authService *authservice.AuthService,
	userService *userservice.UserService,
	feedbackService *feedbackservice.FeedbackService,
	museumService *museumservice.MuseumService,
	jwtMaker customjwt.Maker,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией. Разрешенный набор ролей объявляется
		// явно; сейчас обе роли видят все конечные точки.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, userService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Use(middlewarectx.RequireRoles(logger, models.RoleStandard, models.RolePrivileged))

			r.Get("/me", me.New(logger, userService).ServeHTTP)
			r.Get("/users", userlist.New(logger, userService).ServeHTTP)
			r.Get("/user/{id}", userread.New(logger, userService).ServeHTTP)
			r.Put("/editUser/{id}", userupdate.New(logger, userService).ServeHTTP)
			r.Delete("/deleteUser/{id}", userremove.New(logger, userService).ServeHTTP)

			r.Post("/feedback", submit.New(logger, feedbackService).ServeHTTP)
			r.Get("/getFeedback", feedbacklist.New(logger, feedbackService).ServeHTTP)

			r.Get("/museum", museumlist.New(logger, museumService).ServeHTTP)
			r.Post("/museum", museumcreate.New(logger, museumService).ServeHTTP)
			r.Get("/museum/{category}", bycategory.New(logger, museumService).ServeHTTP)
			r.Post("/museum/{id}", museumupdate.New(logger, museumService).ServeHTTP)
			r.Delete("/museum/{id}", museumremove.New(logger, museumService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
