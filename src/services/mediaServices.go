package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/enzococca/pyarchinit-webapp/src/cache"
	"github.com/enzococca/pyarchinit-webapp/src/dtos"
	"github.com/enzococca/pyarchinit-webapp/src/media"
	"github.com/enzococca/pyarchinit-webapp/src/metrics"
	"github.com/enzococca/pyarchinit-webapp/src/models"
	"github.com/enzococca/pyarchinit-webapp/src/storage"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	thumbnailCacheName = "thumbnail"
	fullCacheName      = "full"
)

// Fetcher downloads a file from the remote storage server.
type Fetcher interface {
	Fetch(ctx context.Context, url string, thumbnail bool) (*storage.Payload, error)
}

// Delivery is how a media request is answered: either a redirect to the
// CDN or the proxied bytes.
type Delivery struct {
	RedirectURL string
	Payload     *storage.Payload
}

type MediaService struct {
	db       *gorm.DB
	resolver *media.Resolver
	fetcher  Fetcher
	thumbs   *cache.TTL[*storage.Payload]
	full     *cache.TTL[*storage.Payload]
}

// NewMediaService creates a new instance of MediaService
func NewMediaService(db *gorm.DB, resolver *media.Resolver, fetcher Fetcher, thumbs, full *cache.TTL[*storage.Payload]) *MediaService {
	return &MediaService{db: db, resolver: resolver, fetcher: fetcher, thumbs: thumbs, full: full}
}

func (s *MediaService) toDTO(m models.MediaThumbModel) dtos.MediaDTO {
	category := media.Categorize(stringOr(m.Mediatype, ""), stringOr(m.Filetype, ""),
		stringOr(m.MediaFilename, ""), stringOr(m.Filepath, ""))
	thumbPath := stringOr(m.Filepath, "")
	fullPath := stringOr(m.PathResize, thumbPath)

	return dtos.MediaDTO{
		IdMedia:       m.IdMedia,
		MediaFilename: m.MediaFilename,
		Mediatype:     m.Mediatype,
		Filetype:      m.Filetype,
		MediaCategory: string(category),
		Filepath:      m.Filepath,
		PathResize:    m.PathResize,
		ThumbnailURL:  s.resolver.Resolve(thumbPath, true, category),
		FullURL:       s.resolver.Resolve(fullPath, false, category),
	}
}

func (s *MediaService) toDTOs(records []models.MediaThumbModel) []dtos.MediaDTO {
	out := make([]dtos.MediaDTO, 0, len(records))
	for _, m := range records {
		out = append(out, s.toDTO(m))
	}
	return out
}

// GetMediaForEntity lists the media linked to a record. entityType is
// matched upper-cased (US, INVENTARIO_MATERIALI, POTTERY, ...).
func (s *MediaService) GetMediaForEntity(ctx context.Context, entityType string, id int) ([]dtos.MediaDTO, error) {
	var records []models.MediaThumbModel
	err := s.db.WithContext(ctx).Model(&models.MediaThumbModel{}).
		Select("media_thumb_table.*").
		Joins("JOIN media_to_entity_table l ON l.id_media = media_thumb_table.id_media").
		Where("l.entity_type = ? AND l.id_entity = ?", strings.ToUpper(entityType), id).
		Order(`l."id_mediaToEntity"`).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return s.toDTOs(records), nil
}

// GetMediaList retrieves a window of media, optionally of one media type
func (s *MediaService) GetMediaList(ctx context.Context, params dtos.MediaListParams) (*dtos.MediaListDTO, error) {
	base := func() *gorm.DB {
		return eqFilter(s.db.WithContext(ctx).Model(&models.MediaThumbModel{}), "mediatype", params.Mediatype)
	}
	list := &dtos.MediaListDTO{}
	if err := base().Count(&list.Total).Error; err != nil {
		return nil, err
	}
	var records []models.MediaThumbModel
	if err := base().Order("id_media").Offset(params.Skip).Limit(params.Limit).Find(&records).Error; err != nil {
		return nil, err
	}
	list.Items = s.toDTOs(records)
	return list, nil
}

func (s *MediaService) record(ctx context.Context, id int) (*models.MediaThumbModel, error) {
	var m models.MediaThumbModel
	if err := s.db.WithContext(ctx).Where("id_media = ?", id).Order("id_media_thumb").First(&m).Error; err != nil {
		return nil, notFound(err, "media")
	}
	return &m, nil
}

// GetMedia retrieves one media file's description
func (s *MediaService) GetMedia(ctx context.Context, id int) (*dtos.MediaDTO, error) {
	m, err := s.record(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := s.toDTO(*m)
	return &dto, nil
}

// GetMediaBatch describes several media files in the requested order.
// Unknown ids are skipped.
func (s *MediaService) GetMediaBatch(ctx context.Context, ids []int) ([]dtos.MediaDTO, error) {
	if len(ids) == 0 {
		return []dtos.MediaDTO{}, nil
	}
	var records []models.MediaThumbModel
	if err := s.db.WithContext(ctx).Where("id_media IN ?", ids).Order("id_media_thumb").Find(&records).Error; err != nil {
		return nil, err
	}
	byID := make(map[int]models.MediaThumbModel, len(records))
	for _, r := range records {
		if _, ok := byID[r.IdMedia]; !ok {
			byID[r.IdMedia] = r
		}
	}
	out := make([]dtos.MediaDTO, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		r, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, s.toDTO(r))
	}
	return out, nil
}

// GetStatistics counts media by type and links by entity type
func (s *MediaService) GetStatistics(ctx context.Context) (*dtos.MediaStatisticsDTO, error) {
	stats := &dtos.MediaStatisticsDTO{}
	if err := s.db.WithContext(ctx).Model(&models.MediaThumbModel{}).Count(&stats.TotalMedia).Error; err != nil {
		return nil, err
	}
	var err error
	if stats.ByType, err = countBy(s.db.WithContext(ctx).Model(&models.MediaThumbModel{}), "mediatype", "unknown"); err != nil {
		return nil, err
	}
	if stats.ByEntityType, err = countBy(s.db.WithContext(ctx).Model(&models.MediaToEntityModel{}), "entity_type", "unknown"); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetThumbnail answers a thumbnail request for a media id
func (s *MediaService) GetThumbnail(ctx context.Context, id int) (*Delivery, error) {
	m, err := s.record(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.deliver(ctx, *m, stringOr(m.Filepath, ""), true)
}

// GetFull answers a full-resolution request for a media id. The resized
// rendition is preferred, falling back to the thumbnail path.
func (s *MediaService) GetFull(ctx context.Context, id int) (*Delivery, error) {
	m, err := s.record(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.deliver(ctx, *m, stringOr(m.PathResize, stringOr(m.Filepath, "")), false)
}

func (s *MediaService) deliver(ctx context.Context, m models.MediaThumbModel, path string, thumbnail bool) (*Delivery, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%s path of media %d %w", media.Variant(thumbnail), m.IdMedia, ErrNotFound)
	}
	category := media.Categorize(stringOr(m.Mediatype, ""), stringOr(m.Filetype, ""),
		stringOr(m.MediaFilename, ""), path)
	if s.resolver.CDNEnabled() && category == media.CategoryImage {
		return &Delivery{RedirectURL: s.resolver.Resolve(path, thumbnail, category)}, nil
	}
	payload, err := s.FetchPath(ctx, path, thumbnail)
	if err != nil {
		return nil, err
	}
	return &Delivery{Payload: payload}, nil
}

// FetchPath returns the bytes of a stored file, from cache when fresh.
func (s *MediaService) FetchPath(ctx context.Context, path string, thumbnail bool) (*storage.Payload, error) {
	path = strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "" {
		return nil, fmt.Errorf("media path %w", ErrNotFound)
	}

	c, name := s.full, fullCacheName
	if thumbnail {
		c, name = s.thumbs, thumbnailCacheName
	}
	key := media.Variant(thumbnail) + ":" + path

	if payload, ok := c.Get(key); ok {
		metrics.RecordCacheLookup(name, true)
		return payload, nil
	}
	metrics.RecordCacheLookup(name, false)

	url := s.resolver.DirectURL(path, thumbnail)
	payload, err := s.fetcher.Fetch(ctx, url, thumbnail)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("url", url).Bool("thumbnail", thumbnail).Msg("media fetch failed")
		return nil, err
	}
	c.Set(key, payload)
	return payload, nil
}

// CacheStats reports both media caches.
func (s *MediaService) CacheStats() map[string]cache.Stats {
	return map[string]cache.Stats{
		thumbnailCacheName: s.thumbs.Stats(),
		fullCacheName:      s.full.Stats(),
	}
}

// ClearCaches empties both media caches.
func (s *MediaService) ClearCaches(ctx context.Context) {
	s.thumbs.Clear()
	s.full.Clear()
	log.Ctx(ctx).Info().Msg("media caches cleared")
}
