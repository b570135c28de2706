// Package update реализует HTTP-обработчик частичного обновления музейной записи.
//
// Все поля формы необязательны: пустые сохраняют прежние значения.
// Новый файл в поле images заменяет изображение записи.
package update

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/museum-catalog/internal/http/response"
	"github.com/magabrotheeeer/museum-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/museum-catalog/internal/models"
	museumsvc "github.com/magabrotheeeer/museum-catalog/internal/services/museum"
)

const maxUploadSize = 10 << 20

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Update(ctx context.Context, uid, category, title, subtitle string, image *museumsvc.Image) (*models.Museum, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.museum.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}

	uid := chi.URLParam(r, "id")

	image, err := readOptionalImage(r)
	if err != nil {
		log.Error("failed to read image from form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid image file"))
		return
	}

	updated, err := h.service.Update(r.Context(), uid,
		r.FormValue("category"), r.FormValue("title"), r.FormValue("subtitle"), image)
	if err != nil {
		if errors.Is(err, models.ErrMuseumNotFound) {
			log.Error("museum entry not found", slog.String("uid", uid))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("museum entry not found"))
			return
		}
		log.Error("failed to update museum entry", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update museum entry"))
		return
	}

	log.Info("museum entry updated", slog.String("uid", uid))
	render.JSON(w, r, response.StatusOKWithData(updated.Info()))
}

// readOptionalImage извлекает файл из поля images, если он есть.
// Отсутствие файла не является ошибкой.
func readOptionalImage(r *http.Request) (*museumsvc.Image, error) {
	file, header, err := r.FormFile("images")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &museumsvc.Image{Content: content, Filename: header.Filename}, nil
}
