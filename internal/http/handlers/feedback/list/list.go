// Package list реализует HTTP-обработчик для получения всех отзывов.
//
// Имена авторов разрешаются на чтении: отзыв удаленного пользователя
// возвращается с пустым fullname.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/museum-catalog/internal/http/response"
	"github.com/magabrotheeeer/museum-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/museum-catalog/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	ListAll(ctx context.Context) ([]*models.FeedbackInfo, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.feedback.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	feedbacks, err := h.service.ListAll(r.Context())
	if err != nil {
		log.Error("failed to list feedback", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list feedback"))
		return
	}

	log.Info("success to list feedback", slog.Int("count", len(feedbacks)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"feedbacks": feedbacks,
	}))
}
