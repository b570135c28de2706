// Package bycategory реализует HTTP-обработчик для получения записей категории.
//
// Категория без единой записи отдается как 404: пустая выборка и
// несуществующая категория для клиента неразличимы.
package bycategory

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
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
	ListByCategory(ctx context.Context, category string) ([]*models.Museum, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.museum.bycategory"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	category := chi.URLParam(r, "category")

	entries, err := h.service.ListByCategory(r.Context(), category)
	if err != nil {
		if errors.Is(err, models.ErrMuseumNotFound) {
			log.Error("no entries in category", slog.String("category", category))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("no museum entries in category"))
			return
		}
		log.Error("failed to list museum entries", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list museum entries"))
		return
	}

	infos := make([]models.MuseumInfo, 0, len(entries))
	for _, e := range entries {
		infos = append(infos, e.Info())
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"museums": infos,
	}))
}
