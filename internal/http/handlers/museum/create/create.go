package create

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/museum-catalog/internal/http/response"
	"github.com/magabrotheeeer/museum-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/museum-catalog/internal/models"
	museumsvc "github.com/magabrotheeeer/museum-catalog/internal/services/museum"
)

// maxUploadSize ограничивает размер multipart-запроса.
const maxUploadSize = 10 << 20

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Create(ctx context.Context, category, title, subtitle string, image museumsvc.Image) (*models.Museum, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Создание музейной записи
// @Description Создает запись каталога. Принимает multipart/form-data с полями category, title, subtitle и файлом images.
// @Tags Museum
// @Accept  multipart/form-data
// @Produce  json
// @Param category formData string true "Категория"
// @Param title formData string true "Заголовок"
// @Param subtitle formData string true "Подзаголовок"
// @Param images formData file true "Изображение"
// @Success 201 {object} response.Response "Запись создана"
// @Failure 400 {object} response.ErrorResponse "Не все обязательные поля заполнены"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /museum [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.museum.create"

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

	image, err := readImage(r)
	if err != nil {
		log.Error("failed to read image from form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("image file is required"))
		return
	}

	created, err := h.service.Create(r.Context(),
		r.FormValue("category"), r.FormValue("title"), r.FormValue("subtitle"), image)
	if err != nil {
		if errors.Is(err, museumsvc.ErrMissingFields) {
			log.Error("missing required fields")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("category, title, subtitle and image are required"))
			return
		}
		log.Error("failed to create museum entry", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create museum entry"))
		return
	}

	log.Info("museum entry created", slog.String("uid", created.UID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(created.Info()))
}

// readImage извлекает файл из поля images.
func readImage(r *http.Request) (museumsvc.Image, error) {
	file, header, err := r.FormFile("images")
	if err != nil {
		return museumsvc.Image{}, err
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		return museumsvc.Image{}, err
	}
	return museumsvc.Image{Content: content, Filename: header.Filename}, nil
}
