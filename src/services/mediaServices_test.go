package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/enzococca/pyarchinit-webapp/src/cache"
	"github.com/enzococca/pyarchinit-webapp/src/media"
	"github.com/enzococca/pyarchinit-webapp/src/models"
	"github.com/enzococca/pyarchinit-webapp/src/storage"
)

type fakeFetcher struct {
	mu   sync.Mutex
	urls []string
	err  error
}

func (f *fakeFetcher) Fetch(_ context.Context, url string, thumbnail bool) (*storage.Payload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, url)
	if f.err != nil {
		return nil, f.err
	}
	return &storage.Payload{Data: []byte(url), ContentType: "image/png"}, nil
}

func (f *fakeFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.urls)
}

func newTestMediaService(t *testing.T, cdn bool, fetcher Fetcher) *MediaService {
	t.Helper()
	resolver := media.NewResolver(media.ResolverConfig{
		StorageURL:    "https://storage.example.org",
		PublicBaseURL: "https://api.example.org",
		CDNEnabled:    cdn,
		CDNCloudName:  "demo",
	})
	svc := NewMediaService(newTestDB(t), resolver, fetcher,
		cache.New[*storage.Payload](10, time.Hour), cache.New[*storage.Payload](10, time.Hour))
	seed(t, svc.db,
		&models.MediaThumbModel{IdMedia: 1, Mediatype: ptr("image"), MediaFilename: ptr("US101.jpg"), Filepath: ptr("thumb/US101.jpg"), PathResize: ptr("resize/US101.jpg")},
		&models.MediaThumbModel{IdMedia: 2, MediaFilename: ptr("rilievo.glb"), Filepath: ptr("thumb/rilievo.png")},
		&models.MediaThumbModel{IdMedia: 3, Mediatype: ptr("video"), MediaFilename: ptr("scavo.mp4"), Filepath: ptr("thumb/scavo.jpg"), PathResize: ptr("video/scavo.mp4")},
		&models.MediaThumbModel{IdMedia: 4, Mediatype: ptr("image"), MediaFilename: ptr("vuoto.jpg")},
		&models.MediaToEntityModel{IdEntity: 7, EntityType: ptr("US"), IdMedia: 3},
		&models.MediaToEntityModel{IdEntity: 7, EntityType: ptr("US"), IdMedia: 1},
		&models.MediaToEntityModel{IdEntity: 8, EntityType: ptr("POTTERY"), IdMedia: 2},
	)
	return svc
}

func TestMediaDescriptions(t *testing.T) {
	svc := newTestMediaService(t, false, &fakeFetcher{})
	ctx := context.Background()

	m, err := svc.GetMedia(ctx, 2)
	if err != nil {
		t.Fatalf("GetMedia: %v", err)
	}
	if m.MediaCategory != string(media.Category3D) {
		t.Errorf("category = %q, want 3d", m.MediaCategory)
	}
	if m.FullURL != "https://api.example.org/api/media/file/original/thumb/rilievo.png" {
		t.Errorf("full URL should fall back to the thumbnail path, got %q", m.FullURL)
	}

	linked, err := svc.GetMediaForEntity(ctx, "us", 7)
	if err != nil {
		t.Fatalf("GetMediaForEntity: %v", err)
	}
	if len(linked) != 2 || linked[0].IdMedia != 3 || linked[1].IdMedia != 1 {
		t.Errorf("linked media = %+v", linked)
	}

	batch, err := svc.GetMediaBatch(ctx, []int{3, 99, 1, 3})
	if err != nil {
		t.Fatalf("GetMediaBatch: %v", err)
	}
	if len(batch) != 2 || batch[0].IdMedia != 3 || batch[1].IdMedia != 1 {
		t.Errorf("batch = %+v", batch)
	}

	if _, err := svc.GetMedia(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetMedia(99) error = %v, want ErrNotFound", err)
	}
}

func TestMediaStatistics(t *testing.T) {
	svc := newTestMediaService(t, false, &fakeFetcher{})

	stats, err := svc.GetStatistics(context.Background())
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.TotalMedia != 4 || stats.ByType["image"] != 2 || stats.ByType["unknown"] != 1 {
		t.Errorf("by type = %+v", stats)
	}
	if stats.ByEntityType["US"] != 2 || stats.ByEntityType["POTTERY"] != 1 {
		t.Errorf("by entity type = %v", stats.ByEntityType)
	}
}

func TestThumbnailIsCached(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc := newTestMediaService(t, false, fetcher)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d, err := svc.GetThumbnail(ctx, 1)
		if err != nil {
			t.Fatalf("GetThumbnail: %v", err)
		}
		if d.RedirectURL != "" || d.Payload == nil {
			t.Fatalf("expected proxied bytes, got %+v", d)
		}
	}
	if n := fetcher.calls(); n != 1 {
		t.Errorf("storage fetched %d times, want 1", n)
	}
	if got := fetcher.urls[0]; got != "https://storage.example.org/files/thumbnail/thumb/US101.jpg" {
		t.Errorf("fetched %q", got)
	}

	// The path proxy shares the id route's cache entry.
	if _, err := svc.FetchPath(ctx, "/thumb/US101.jpg", true); err != nil {
		t.Fatalf("FetchPath: %v", err)
	}
	if n := fetcher.calls(); n != 1 {
		t.Errorf("storage fetched %d times after path request, want 1", n)
	}

	stats := svc.CacheStats()
	if stats["thumbnail"].Size != 1 || stats["thumbnail"].Hits != 3 {
		t.Errorf("thumbnail cache stats = %+v", stats["thumbnail"])
	}

	svc.ClearCaches(ctx)
	if _, err := svc.GetThumbnail(ctx, 1); err != nil {
		t.Fatalf("GetThumbnail: %v", err)
	}
	if n := fetcher.calls(); n != 2 {
		t.Errorf("cleared cache should refetch, got %d calls", n)
	}
}

func TestFullPrefersResizedPath(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc := newTestMediaService(t, false, fetcher)

	d, err := svc.GetFull(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetFull: %v", err)
	}
	if !strings.HasSuffix(string(d.Payload.Data), "/files/original/resize/US101.jpg") {
		t.Errorf("fetched %q", d.Payload.Data)
	}
}

func TestCDNRedirectsImagesOnly(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc := newTestMediaService(t, true, fetcher)
	ctx := context.Background()

	d, err := svc.GetThumbnail(ctx, 1)
	if err != nil {
		t.Fatalf("GetThumbnail: %v", err)
	}
	if !strings.HasPrefix(d.RedirectURL, "https://"+media.CDNHost+"/demo/image/fetch/") {
		t.Errorf("image should redirect to the CDN, got %+v", d)
	}

	d, err = svc.GetFull(ctx, 3)
	if err != nil {
		t.Fatalf("GetFull: %v", err)
	}
	if d.RedirectURL != "" || d.Payload == nil {
		t.Errorf("video should be proxied, got %+v", d)
	}
	if n := fetcher.calls(); n != 1 {
		t.Errorf("storage fetched %d times, want 1", n)
	}
}

func TestMediaWithoutPath(t *testing.T) {
	svc := newTestMediaService(t, false, &fakeFetcher{})
	if _, err := svc.GetThumbnail(context.Background(), 4); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUpstreamErrorIsNotCached(t *testing.T) {
	fetcher := &fakeFetcher{err: &storage.UpstreamError{URL: "x", StatusCode: 404}}
	svc := newTestMediaService(t, false, fetcher)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.GetThumbnail(ctx, 1)
		var upstream *storage.UpstreamError
		if !errors.As(err, &upstream) || upstream.StatusCode != 404 {
			t.Fatalf("error = %v, want upstream 404", err)
		}
	}
	if n := fetcher.calls(); n != 2 {
		t.Errorf("failed fetches must not be cached, got %d calls", n)
	}
	if svc.CacheStats()["thumbnail"].Size != 0 {
		t.Error("cache should stay empty")
	}
}
