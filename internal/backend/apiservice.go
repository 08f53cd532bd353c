package backend

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jo-hoe/thumbnorm/internal/backend/database"
	"github.com/jo-hoe/thumbnorm/internal/core"
	"github.com/jo-hoe/thumbnorm/internal/render"
	"github.com/jo-hoe/thumbnorm/internal/thumbnail"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type APIService struct {
	config      *core.ServiceConfig
	coreService *core.CoreService
}

// thumbRequest is bound from the path and query of the thumbnail routes.
// Height must be a positive integer; page is left to the normalizer to coerce.
type thumbRequest struct {
	ID     string `param:"id" validate:"required"`
	Size   string `param:"size" validate:"required"`
	Height string `query:"height"`
	Page   string `query:"page"`
}

type mediaResponse struct {
	*database.MediaRecord
	Description core.Description `json:"description"`
}

func NewAPIService(config *core.ServiceConfig, coreService *core.CoreService) *APIService {
	return &APIService{
		config:      config,
		coreService: coreService,
	}
}

func (s *APIService) SetRoutes(e *echo.Echo) {
	// Set probe route
	e.GET("/probe", func(c echo.Context) error {
		if !s.coreService.IsReady() {
			return c.String(http.StatusServiceUnavailable, "API Service is not ready")
		}
		return c.String(http.StatusOK, "API Service is running")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.POST("/media", s.uploadMediaHandler)
	api.GET("/media", s.listMediaHandler)
	api.GET("/media/:id", s.getMediaHandler)
	api.DELETE("/media/:id", s.deleteMediaHandler)
	api.GET("/media/:id/thumb/:size", s.normalizeThumbHandler)
	api.GET("/media/:id/render/:size", s.renderThumbHandler)
	api.GET("/media/:id/scripted/:size", s.scriptedThumbHandler)
}

func (s *APIService) uploadMediaHandler(ctx echo.Context) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		slog.Error("uploadMediaHandler: failed to get uploaded file",
			"status", http.StatusBadRequest, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "failed to get uploaded file")
	}

	src, err := file.Open()
	if err != nil {
		slog.Error("uploadMediaHandler: failed to open uploaded file",
			"status", http.StatusInternalServerError, "error", err, "filename", file.Filename)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to open uploaded file")
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			slog.Error("uploadMediaHandler: failed to close uploaded file reader", "error", cerr, "filename", file.Filename)
		}
	}()

	data, err := io.ReadAll(src)
	if err != nil {
		slog.Error("uploadMediaHandler: failed to read uploaded file",
			"status", http.StatusInternalServerError, "error", err, "filename", file.Filename)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read uploaded file")
	}

	mustRender, _ := strconv.ParseBool(ctx.FormValue("mustRender"))
	record, err := s.coreService.AddMedia(data, mustRender)
	if err != nil {
		if errors.Is(err, core.ErrUploadTooLarge) {
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, err.Error())
		}
		slog.Warn("uploadMediaHandler: failed to add media",
			"status", http.StatusUnprocessableEntity, "error", err, "filename", file.Filename)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "unsupported or corrupt media")
	}

	return ctx.JSON(http.StatusCreated, s.toResponse(record))
}

func (s *APIService) listMediaHandler(ctx echo.Context) error {
	records, err := s.coreService.GetAllMedia()
	if err != nil {
		slog.Error("listMediaHandler: failed to list media", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list media")
	}
	out := make([]mediaResponse, 0, len(records))
	for _, r := range records {
		out = append(out, s.toResponse(r))
	}
	return ctx.JSON(http.StatusOK, out)
}

func (s *APIService) getMediaHandler(ctx echo.Context) error {
	record, err := s.coreService.GetMedia(ctx.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return ctx.JSON(http.StatusOK, s.toResponse(record))
}

func (s *APIService) deleteMediaHandler(ctx echo.Context) error {
	if err := s.coreService.DeleteMedia(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return mapError(err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *APIService) normalizeThumbHandler(ctx echo.Context) error {
	req, params, err := bindThumbRequest(ctx)
	if err != nil {
		return err
	}
	result, err := s.coreService.NormalizeThumb(req.ID, params)
	if err != nil {
		return mapError(err)
	}
	return ctx.JSON(http.StatusOK, result)
}

func (s *APIService) renderThumbHandler(ctx echo.Context) error {
	req, params, err := bindThumbRequest(ctx)
	if err != nil {
		return err
	}
	out, result, err := s.coreService.RenderThumb(ctx.Request().Context(), req.ID, params)
	if err != nil {
		return mapError(err)
	}
	ctx.Response().Header().Set("X-Thumbnail-Bucket", result.BucketKey)
	return ctx.Blob(http.StatusOK, render.MimePNG, out)
}

func (s *APIService) scriptedThumbHandler(ctx echo.Context) error {
	req, params, err := bindThumbRequest(ctx)
	if err != nil {
		return err
	}
	desc, err := s.coreService.ScriptedThumb(req.ID, params)
	if err != nil {
		return mapError(err)
	}
	if desc == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	return ctx.JSON(http.StatusOK, desc)
}

func (s *APIService) toResponse(record *database.MediaRecord) mediaResponse {
	return mediaResponse{MediaRecord: record, Description: s.coreService.Describe(record)}
}

// bindThumbRequest turns the size path segment ("120px" or "120") and the
// optional height/page query values into a parameter set.
func bindThumbRequest(ctx echo.Context) (*thumbRequest, thumbnail.Params, error) {
	var req thumbRequest
	if err := ctx.Bind(&req); err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid thumbnail request")
	}
	if err := ctx.Validate(&req); err != nil {
		return nil, nil, err
	}

	params, ok := thumbnail.ParseParamString(req.Size)
	if !ok {
		width, err := strconv.Atoi(req.Size)
		if err != nil {
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "size must look like 120px")
		}
		params = thumbnail.Params{thumbnail.ParamWidth: width}
	}
	if req.Height != "" {
		height, err := strconv.Atoi(req.Height)
		if err != nil || !thumbnail.ValidateParam(thumbnail.ParamHeight, height) {
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "height must be a positive integer")
		}
		params[thumbnail.ParamHeight] = height
	}
	if req.Page != "" {
		params[thumbnail.ParamPage] = req.Page
	}
	return &req, params, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, database.ErrMediaNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "media not found")
	case thumbnail.IsRecoverable(err):
		return echo.NewHTTPError(http.StatusBadRequest, "cannot generate thumbnail of this size")
	case errors.Is(err, core.ErrThumbnailTooLarge):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrScriptNotConfigured):
		return echo.NewHTTPError(http.StatusNotImplemented, err.Error())
	default:
		slog.Error("request failed", "error", err, "contract_violation", thumbnail.IsContractViolation(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
