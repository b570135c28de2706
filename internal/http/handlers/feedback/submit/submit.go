package submit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/museum-catalog/internal/http/middlewarectx"
	"github.com/magabrotheeeer/museum-catalog/internal/http/response"
	"github.com/magabrotheeeer/museum-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/museum-catalog/internal/models"
	feedbacksvc "github.com/magabrotheeeer/museum-catalog/internal/services/feedback"
)

// Request — входные данные для отправки отзыва.
type Request struct {
	Message string `json:"message" validate:"required"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	Submit(ctx context.Context, userUID, username, message string) (*models.Feedback, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.feedback.submit"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	username, _ := r.Context().Value(middlewarectx.User).(string)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	created, err := h.service.Submit(r.Context(), userUID, username, req.Message)
	if err != nil {
		if errors.Is(err, feedbacksvc.ErrEmptyMessage) {
			log.Error("empty feedback message")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("feedback message is required"))
			return
		}
		log.Error("failed to submit feedback", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not submit feedback"))
		return
	}

	log.Info("feedback submitted", slog.String("uid", created.UID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":      created.UID,
		"message": "feedback submitted successfully",
	}))
}
