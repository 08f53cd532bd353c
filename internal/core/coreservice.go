package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jo-hoe/thumbnorm/internal/backend/cache"
	"github.com/jo-hoe/thumbnorm/internal/backend/database"
	"github.com/jo-hoe/thumbnorm/internal/backend/metrics"
	"github.com/jo-hoe/thumbnorm/internal/media"
	"github.com/jo-hoe/thumbnorm/internal/render"
	"github.com/jo-hoe/thumbnorm/internal/thumbnail"
)

var (
	// ErrUploadTooLarge is returned when an upload exceeds the configured limit.
	ErrUploadTooLarge = errors.New("upload exceeds maximum size")
	// ErrThumbnailTooLarge is returned when a rendering wider than the configured maximum is requested.
	ErrThumbnailTooLarge = errors.New("thumbnail exceeds maximum width")
	// ErrScriptNotConfigured is returned when scripted transforms are requested without a script URL.
	ErrScriptNotConfigured = errors.New("no rendering script configured")
)

type CoreService struct {
	config          *ServiceConfig
	databaseService database.DatabaseService
	cache           cache.ThumbnailCache
	normalizer      *thumbnail.Normalizer
	describer       *media.Describer
}

// ThumbResult is a normalized thumbnail request together with its cache identity.
type ThumbResult struct {
	Params    thumbnail.NormalizedThumbParams `json:"params"`
	Token     string                          `json:"token"`
	BucketKey string                          `json:"bucketKey"`
}

// Description holds the human-readable summaries of a media record.
type Description struct {
	Short      string `json:"short"`
	Long       string `json:"long"`
	Dimensions string `json:"dimensions"`
}

func NewCoreService(config *ServiceConfig) *CoreService {
	databaseService, err := getDatabaseService(config)
	if err != nil {
		slog.Error("failed to initialize database service", "error", err)
		panic(err)
	}
	thumbCache, err := cache.NewCache(config.Redis.Address, config.Redis.Password, config.Redis.DB, config.Redis.TTL)
	if err != nil {
		slog.Error("failed to initialize thumbnail cache", "error", err)
		panic(err)
	}
	return NewCoreServiceWith(config, databaseService, thumbCache)
}

// NewCoreServiceWith wires a CoreService from already constructed collaborators.
func NewCoreServiceWith(config *ServiceConfig, databaseService database.DatabaseService, thumbCache cache.ThumbnailCache) *CoreService {
	return &CoreService{
		config:          config,
		databaseService: databaseService,
		cache:           thumbCache,
		normalizer:      thumbnail.NewNormalizer(slog.Default()),
		describer:       media.NewDescriber(nil),
	}
}

func getDatabaseService(config *ServiceConfig) (database.DatabaseService, error) {
	databaseService, err := database.NewDatabase(config.Database.Type, config.Database.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	slog.Info("database initialized successfully", "type", config.Database.Type)
	return databaseService, nil
}

// AddMedia probes data and stores it as a new media record.
func (service *CoreService) AddMedia(data []byte, mustRender bool) (*database.MediaRecord, error) {
	if limit := service.config.Thumbnail.MaxUploadBytes; limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrUploadTooLarge, len(data), limit)
	}

	probe, err := media.Probe(data)
	if err != nil {
		return nil, fmt.Errorf("failed to probe media: %w", err)
	}

	record := &database.MediaRecord{
		Kind:       string(probe.Kind),
		MimeType:   probe.MimeType,
		Width:      probe.Width,
		Height:     probe.Height,
		PageCount:  probe.PageCount,
		FrameCount: probe.FrameCount,
		Size:       int64(len(data)),
		MustRender: probe.MustRender || mustRender,
		Data:       data,
	}
	if _, err := service.databaseService.CreateMedia(record); err != nil {
		return nil, fmt.Errorf("failed to store media: %w", err)
	}
	record.Data = nil

	slog.Info("media stored",
		"media_id", record.ID,
		"mime_type", record.MimeType,
		"width", record.Width,
		"height", record.Height)
	return record, nil
}

func (service *CoreService) GetMedia(id string) (*database.MediaRecord, error) {
	return service.databaseService.GetMediaByID(id)
}

func (service *CoreService) GetAllMedia() ([]*database.MediaRecord, error) {
	return service.databaseService.GetAllMedia()
}

// DeleteMedia removes the record and drops its cached renderings.
func (service *CoreService) DeleteMedia(ctx context.Context, id string) error {
	if err := service.databaseService.DeleteMedia(id); err != nil {
		return err
	}
	if err := service.cache.DeletePrefix(ctx, "thumb:"+id+":"); err != nil {
		slog.Warn("failed to purge cached thumbnails", "media_id", id, "error", err)
	}
	return nil
}

// Describe returns the summaries of a media record.
func (service *CoreService) Describe(record *database.MediaRecord) Description {
	m := MediaFromRecord(record)
	return Description{
		Short:      service.describer.ShortDesc(m),
		Long:       service.describer.LongDesc(m),
		Dimensions: service.describer.DimensionsString(m),
	}
}

// NormalizeThumb normalizes params against the media record id.
func (service *CoreService) NormalizeThumb(id string, params thumbnail.Params) (*ThumbResult, error) {
	record, err := service.databaseService.GetMediaByID(id)
	if err != nil {
		return nil, err
	}
	return service.normalize(record, params)
}

func (service *CoreService) normalize(record *database.MediaRecord, params thumbnail.Params) (*ThumbResult, error) {
	normalized, err := service.normalizer.NormalizeParams(params, MediaFromRecord(record))
	metrics.RecordNormalize(err)
	if err != nil {
		return nil, err
	}

	exported := normalized.Params()
	token, err := thumbnail.MakeParamString(exported)
	if err != nil {
		return nil, err
	}
	key, err := thumbnail.BucketKey(record.ID, exported)
	if err != nil {
		return nil, err
	}

	return &ThumbResult{Params: normalized, Token: token, BucketKey: key}, nil
}

// RenderThumb returns a PNG rendering for params, served from the cache when possible.
func (service *CoreService) RenderThumb(ctx context.Context, id string, params thumbnail.Params) ([]byte, *ThumbResult, error) {
	record, err := service.databaseService.GetMediaByID(id)
	if err != nil {
		return nil, nil, err
	}
	result, err := service.normalize(record, params)
	if err != nil {
		return nil, nil, err
	}
	if limit := service.config.Thumbnail.MaxWidth; limit > 0 && result.Params.PhysicalWidth > limit {
		return nil, nil, fmt.Errorf("%w: %d > %d", ErrThumbnailTooLarge, result.Params.PhysicalWidth, limit)
	}

	cached, hit, err := service.cache.Get(ctx, result.BucketKey)
	if err != nil {
		slog.Warn("thumbnail cache lookup failed", "key", result.BucketKey, "error", err)
	}
	metrics.RecordRenderCache(hit)
	if hit {
		return cached, result, nil
	}

	data, err := service.databaseService.GetMediaData(id)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	out, err := render.Render(data, record.MimeType, result.Params)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to render thumbnail of %s: %w", id, err)
	}
	metrics.RecordRender(record.MimeType, time.Since(start).Seconds())

	if err := service.cache.Set(ctx, result.BucketKey, out); err != nil {
		slog.Warn("failed to cache thumbnail", "key", result.BucketKey, "error", err)
	}
	return out, result, nil
}

// ScriptedThumb returns the descriptor of a script-rendered thumbnail, or nil
// when the source already satisfies the request.
func (service *CoreService) ScriptedThumb(id string, params thumbnail.Params) (*thumbnail.ThumbnailDescriptor, error) {
	script := service.config.Thumbnail.ScriptURL
	if script == "" {
		return nil, ErrScriptNotConfigured
	}
	record, err := service.databaseService.GetMediaByID(id)
	if err != nil {
		return nil, err
	}
	desc, err := service.normalizer.ScriptedTransform(MediaFromRecord(record), script, params)
	metrics.RecordNormalize(err)
	return desc, err
}

// IsReady reports whether the media store is reachable.
func (service *CoreService) IsReady() bool {
	return service.databaseService != nil && service.databaseService.DoesDatabaseExist()
}

func (service *CoreService) Close() error {
	var errs []error
	if err := service.cache.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close cache: %w", err))
	}
	if err := service.databaseService.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database: %w", err))
	}
	return errors.Join(errs...)
}

// MediaFromRecord materializes the media variant described by record.
func MediaFromRecord(record *database.MediaRecord) media.ThumbnailableMedia {
	switch media.Kind(record.Kind) {
	case media.KindPaged:
		return media.NewUniformPagedDocument(record.MimeType, record.Width, record.Height, record.PageCount, record.Size)
	case media.KindAnimated:
		return &media.AnimatedSequence{
			Mime:        record.MimeType,
			Width:       record.Width,
			Height:      record.Height,
			Frames:      record.FrameCount,
			Bytes:       record.Size,
			ForceRender: record.MustRender,
		}
	default:
		return &media.RasterImage{
			Mime:        record.MimeType,
			Width:       record.Width,
			Height:      record.Height,
			Bytes:       record.Size,
			ForceRender: record.MustRender,
		}
	}
}
