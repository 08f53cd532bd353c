package frontend

import (
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jo-hoe/thumbnorm/internal/core"
	"github.com/jo-hoe/thumbnorm/internal/render"
	"github.com/jo-hoe/thumbnorm/internal/thumbnail"
	"github.com/labstack/echo/v4"
)

const (
	MainPageName = "index.html"
	// galleryWidth is the thumbnail width requested for every gallery entry.
	galleryWidth = 160
)

const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8">
	<title>thumbnorm</title>
	<script src="https://unpkg.com/htmx.org@2.0.4"></script>
</head>
<body>
	<main>
		<form hx-post="/api/media" hx-encoding="multipart/form-data" hx-swap="none"
			hx-on::after-request="htmx.trigger('#media-list', 'refresh')">
			<input type="file" name="file" required>
			<label><input type="checkbox" name="mustRender" value="true"> always render</label>
			<button type="submit">Upload</button>
		</form>
		<div id="media-list" hx-get="/htmx/media" hx-trigger="load, refresh"></div>
	</main>
</body>
</html>`

type FrontendService struct {
	coreService *core.CoreService
	config      *core.ServiceConfig
}

func NewFrontendService(config *core.ServiceConfig, coreService *core.CoreService) *FrontendService {
	return &FrontendService{
		coreService: coreService,
		config:      config,
	}
}

// rootRedirectHandler redirects root path to index.html
func (service *FrontendService) rootRedirectHandler(ctx echo.Context) error {
	return ctx.Redirect(http.StatusMovedPermanently, "/"+MainPageName)
}

func (service *FrontendService) SetRoutes(e *echo.Echo) {
	e.GET("/", service.rootRedirectHandler) // Redirect root to index.html
	e.GET("/"+MainPageName, service.indexHandler)

	e.GET("/htmx/media", service.htmxListMediaHandler)
	e.GET("/htmx/media/:id/thumb", service.htmxThumbnailHandler)
	e.DELETE("/htmx/media/:id", service.htmxDeleteMediaHandler)
}

func (service *FrontendService) indexHandler(ctx echo.Context) error {
	return ctx.HTML(http.StatusOK, indexPage)
}

func (service *FrontendService) htmxListMediaHandler(ctx echo.Context) error {
	listHTML, err := service.buildMediaListHTML(service.timestampNanoStr())
	if err != nil {
		slog.Error("htmxListMediaHandler: failed to list media",
			"status", http.StatusInternalServerError, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to list media")
	}

	// Prevent caching so the latest uploads are always shown
	service.setNoCache(ctx)

	return ctx.HTML(http.StatusOK, listHTML)
}

func (service *FrontendService) htmxThumbnailHandler(ctx echo.Context) error {
	id := ctx.Param("id")
	params := thumbnail.Params{thumbnail.ParamWidth: galleryWidth}

	out, _, err := service.coreService.RenderThumb(ctx.Request().Context(), id, params)
	if err != nil {
		slog.Warn("htmxThumbnailHandler: thumbnail not available",
			"status", http.StatusNotFound, "media_id", id, "error", err)
		return ctx.String(http.StatusNotFound, "Thumbnail not available")
	}
	return ctx.Blob(http.StatusOK, render.MimePNG, out)
}

func (service *FrontendService) htmxDeleteMediaHandler(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := service.coreService.DeleteMedia(ctx.Request().Context(), id); err != nil {
		slog.Error("htmxDeleteMediaHandler: failed to delete media",
			"status", http.StatusInternalServerError, "media_id", id, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to delete media")
	}

	listHTML, err := service.buildMediaListHTML(service.timestampNanoStr())
	if err != nil {
		slog.Error("htmxDeleteMediaHandler: failed to list media after delete",
			"status", http.StatusInternalServerError, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to list media")
	}

	service.setNoCache(ctx)
	return ctx.HTML(http.StatusOK, listHTML)
}

func (service *FrontendService) setNoCache(ctx echo.Context) {
	ctx.Response().Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	ctx.Response().Header().Set("Pragma", "no-cache")
	ctx.Response().Header().Set("Expires", "0")
}

func (service *FrontendService) timestampNanoStr() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

func (service *FrontendService) buildMediaListHTML(ts string) (string, error) {
	records, err := service.coreService.GetAllMedia()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if len(records) == 0 {
		b.WriteString(`<p>No media uploaded yet.</p>`)
		return b.String(), nil
	}

	b.WriteString(`<div class="vertical-list">`)
	for _, record := range records {
		desc := service.coreService.Describe(record)
		id := html.EscapeString(record.ID)
		// descriptions are already HTML-escaped
		b.WriteString(fmt.Sprintf(`<div class="vertical-item" data-id="%s" style="margin-bottom:1rem"><article>
	<img src="/htmx/media/%s/thumb?ts=%s" alt="%s" style="max-width:100%%;height:auto">
	<footer style="display:flex;gap:0.5rem;align-items:center;flex-wrap:wrap">
		<small>%s</small>
		<button hx-delete="/htmx/media/%s" hx-target="#media-list" hx-swap="innerHTML" class="secondary">Delete</button>
	</footer>
</article></div>`, id, id, ts, desc.Short, desc.Long, id))
	}
	b.WriteString(`</div>`)
	return b.String(), nil
}
