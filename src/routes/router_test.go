package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/enzococca/pyarchinit-webapp/src/cache"
	"github.com/enzococca/pyarchinit-webapp/src/media"
	"github.com/enzococca/pyarchinit-webapp/src/models"
	"github.com/enzococca/pyarchinit-webapp/src/services"
	"github.com/enzococca/pyarchinit-webapp/src/storage"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "router-test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testServer struct {
	router  *gin.Engine
	db      *gorm.DB
	users   *services.UserService
	storage *httptest.Server
}

func newTestServer(t *testing.T, authEnabled bool) *testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(&models.SiteModel{}, &models.USModel{}, &models.MaterialModel{},
		&models.PotteryModel{}, &models.MediaThumbModel{}, &models.MediaToEntityModel{}, &models.UserModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// Storage server: "missing" paths answer 404, everything else is a PNG.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "missing") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png:" + r.URL.Path))
	}))
	t.Cleanup(upstream.Close)

	resolver := media.NewResolver(media.ResolverConfig{StorageURL: upstream.URL})
	client := storage.NewClientWithHTTPClient(storage.Config{}, upstream.Client())
	sites := services.NewSiteService(db)
	us := services.NewUSService(db, "")
	materials := services.NewMaterialService(db)
	pottery := services.NewPotteryService(db)
	users := services.NewUserService(db, testSecret, time.Hour)

	router := NewRouter(RouterConfig{AuthEnabled: authEnabled, SecretKey: testSecret, CORSOrigins: []string{"*"}, AllowAllOrigins: true}, Services{
		DB:        db,
		AppName:   "test",
		Sites:     sites,
		US:        us,
		Materials: materials,
		Pottery:   pottery,
		Media: services.NewMediaService(db, resolver, client,
			cache.New[*storage.Payload](10, time.Hour), cache.New[*storage.Payload](10, time.Hour)),
		Export: services.NewExportService(sites, us, materials, pottery),
		Users:  users,
	})
	return &testServer{router: router, db: db, users: users, storage: upstream}
}

func (s *testServer) seed(t *testing.T, records ...any) {
	t.Helper()
	for _, r := range records {
		if err := s.db.Create(r).Error; err != nil {
			t.Fatalf("seed %T: %v", r, err)
		}
	}
}

func (s *testServer) do(method, path, token string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, username, role string) string {
	t.Helper()
	if _, err := s.users.CreateUser(t.Context(), models.CreateUserRequest{Username: username, Password: "password", Role: role}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	body, _ := json.Marshal(map[string]string{"username": username, "password": "password"})
	w := s.do(http.MethodPost, "/api/auth/login", "", body)
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body)
	}
	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &token); err != nil {
		t.Fatalf("decode token: %v", err)
	}
	return token.AccessToken
}

func str(s string) *string { return &s }

func TestHealth(t *testing.T) {
	s := newTestServer(t, true)
	w := s.do(http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("health = %d %s", w.Code, w.Body)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("responses should carry a request id")
	}
}

func TestAuthGuardsDataRoutes(t *testing.T) {
	s := newTestServer(t, true)

	if w := s.do(http.MethodGet, "/api/us/", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status %d, want 401", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/us/", "not-a-jwt", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status %d, want 401", w.Code)
	}

	token := s.login(t, "mario", models.RoleUser)
	if w := s.do(http.MethodGet, "/api/us/", token, nil); w.Code != http.StatusOK {
		t.Errorf("valid token: status %d %s", w.Code, w.Body)
	}
	if w := s.do(http.MethodGet, "/api/auth/users", token, nil); w.Code != http.StatusForbidden {
		t.Errorf("non-admin listing users: status %d, want 403", w.Code)
	}
	if w := s.do(http.MethodDelete, "/api/media/cache", token, nil); w.Code != http.StatusForbidden {
		t.Errorf("non-admin clearing cache: status %d, want 403", w.Code)
	}

	w := s.do(http.MethodGet, "/api/auth/me", token, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"username":"mario"`) {
		t.Errorf("me = %d %s", w.Code, w.Body)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Error("password hash must not be serialized")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	s := newTestServer(t, true)
	s.login(t, "anna", models.RoleUser)

	body, _ := json.Marshal(map[string]string{"username": "anna", "password": "wrong"})
	w := s.do(http.MethodPost, "/api/auth/login", "", body)
	if w.Code != http.StatusUnauthorized || w.Header().Get("WWW-Authenticate") != "Bearer" {
		t.Errorf("status %d, WWW-Authenticate %q", w.Code, w.Header().Get("WWW-Authenticate"))
	}
}

func TestAdminManagesUsers(t *testing.T) {
	s := newTestServer(t, true)
	token := s.login(t, "admin", models.RoleAdmin)

	body, _ := json.Marshal(map[string]string{"username": "nuovo", "password": "abcdef"})
	if w := s.do(http.MethodPost, "/api/auth/users", token, body); w.Code != http.StatusCreated {
		t.Fatalf("create user: %d %s", w.Code, w.Body)
	}
	if w := s.do(http.MethodPost, "/api/auth/users", token, body); w.Code != http.StatusConflict {
		t.Errorf("duplicate user: status %d, want 409", w.Code)
	}
	short, _ := json.Marshal(map[string]string{"username": "corto", "password": "abc"})
	if w := s.do(http.MethodPost, "/api/auth/users", token, short); w.Code != http.StatusBadRequest {
		t.Errorf("short password: status %d, want 400", w.Code)
	}
	if w := s.do(http.MethodDelete, "/api/auth/users/1", token, nil); w.Code != http.StatusBadRequest {
		t.Errorf("self delete: status %d, want 400", w.Code)
	}
	if w := s.do(http.MethodDelete, "/api/auth/users/2", token, nil); w.Code != http.StatusNoContent {
		t.Errorf("delete: status %d, want 204", w.Code)
	}
}

func TestDataRoutes(t *testing.T) {
	s := newTestServer(t, false)
	s.seed(t,
		&models.SiteModel{Sito: str("Scavo A")},
		&models.USModel{Sito: str("Scavo A"), Area: str("1"), US: str("101")},
		&models.USModel{Sito: str("Scavo A"), Area: str("1"), US: str("102")},
	)

	tests := []struct {
		name   string
		path   string
		status int
		body   string
	}{
		{"site by name", "/api/sites/by-name/Scavo%20A", http.StatusOK, `"sito":"Scavo A"`},
		{"unknown site", "/api/sites/by-name/Nowhere", http.StatusNotFound, "not found"},
		{"invalid id", "/api/us/abc", http.StatusBadRequest, "Invalid ID"},
		{"unknown id", "/api/us/999", http.StatusNotFound, ""},
		{"by number", "/api/us/by-number/Scavo%20A/1/102", http.StatusOK, `"us":"102"`},
		{"paginated", "/api/us/paginated?page_size=1&page=2", http.StatusOK, `"total_pages":2`},
		{"page zero", "/api/us/paginated?page=0", http.StatusBadRequest, ""},
		{"page size too large", "/api/us/paginated?page_size=101", http.StatusBadRequest, ""},
		{"limit too large", "/api/us/?limit=1001", http.StatusBadRequest, ""},
		{"negative skip", "/api/sites/?skip=-1", http.StatusBadRequest, ""},
		{"empty export", "/api/export/us/excel?sito=Nowhere", http.StatusNotFound, ""},
		{"bad batch id", "/api/media/batch?ids=1,x", http.StatusBadRequest, ""},
		{"unknown media", "/api/media/thumbnail/5", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodGet, tt.path, "", nil)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.status, w.Body)
			}
			if tt.body != "" && !strings.Contains(w.Body.String(), tt.body) {
				t.Errorf("body %s lacks %s", w.Body, tt.body)
			}
		})
	}
}

func TestExportDownload(t *testing.T) {
	s := newTestServer(t, false)
	s.seed(t, &models.USModel{Sito: str("Scavo A"), Area: str("1"), US: str("101")})

	w := s.do(http.MethodGet, "/api/export/us/excel?sito=Scavo%20A", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body)
	}
	disposition := w.Header().Get("Content-Disposition")
	if !strings.HasPrefix(disposition, `attachment; filename="US_Scavo_A_`) || !strings.HasSuffix(disposition, `.xlsx"`) {
		t.Errorf("Content-Disposition = %q", disposition)
	}
	if w.Header().Get("Content-Type") != services.ContentTypeExcel {
		t.Errorf("Content-Type = %q", w.Header().Get("Content-Type"))
	}
}

func TestMediaProxy(t *testing.T) {
	s := newTestServer(t, true)
	s.seed(t,
		&models.MediaThumbModel{IdMedia: 1, MediaFilename: str("a.jpg"), Filepath: str("thumbs/a.jpg")},
		&models.MediaThumbModel{IdMedia: 2, MediaFilename: str("b.jpg"), Filepath: str("thumbs/missing.jpg")},
	)

	// Byte routes need no token.
	w := s.do(http.MethodGet, "/api/media/thumbnail/1", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("thumbnail: %d %s", w.Code, w.Body)
	}
	if w.Header().Get("Content-Type") != "image/png" || w.Header().Get("Cache-Control") != "public, max-age=3600" {
		t.Errorf("headers = %v", w.Header())
	}
	if w.Body.String() != "png:/files/thumbnail/thumbs/a.jpg" {
		t.Errorf("body = %q", w.Body)
	}

	w = s.do(http.MethodGet, "/api/media/file/original/thumbs/a.jpg", "", nil)
	if w.Code != http.StatusOK || w.Body.String() != "png:/files/original/thumbs/a.jpg" {
		t.Errorf("path proxy = %d %q", w.Code, w.Body)
	}

	w = s.do(http.MethodGet, "/api/media/thumbnail/2", "", nil)
	if w.Code != http.StatusBadGateway || !strings.Contains(w.Body.String(), `"upstream_status":404`) {
		t.Errorf("upstream 404 = %d %s", w.Code, w.Body)
	}

	if w := s.do(http.MethodGet, "/api/media/file/medium/a.jpg", "", nil); w.Code != http.StatusBadRequest {
		t.Errorf("unknown variant: status %d, want 400", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/media/1", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("metadata without token: status %d, want 401", w.Code)
	}
}

func TestMetricsReportLiveCacheState(t *testing.T) {
	s := newTestServer(t, true)
	s.seed(t, &models.MediaThumbModel{IdMedia: 1, Filepath: str("a.jpg")})

	if w := s.do(http.MethodGet, "/api/media/thumbnail/1", "", nil); w.Code != http.StatusOK {
		t.Fatalf("thumbnail: %d %s", w.Code, w.Body)
	}
	body := s.do(http.MethodGet, "/metrics", "", nil).Body.String()
	for _, want := range []string{
		`pyarchinit_media_cache_entries{cache="thumbnail"} 1`,
		`pyarchinit_media_cache_entries{cache="full"} 0`,
		`pyarchinit_media_cache_capacity{cache="thumbnail"} 10`,
		`pyarchinit_media_cache_evictions_total{cache="thumbnail"} 0`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}

	admin := s.login(t, "admin", models.RoleAdmin)
	if w := s.do(http.MethodDelete, "/api/media/cache", admin, nil); w.Code != http.StatusOK {
		t.Fatalf("clear cache: %d %s", w.Code, w.Body)
	}
	body = s.do(http.MethodGet, "/metrics", "", nil).Body.String()
	for _, want := range []string{
		`pyarchinit_media_cache_entries{cache="thumbnail"} 0`,
		`pyarchinit_media_cache_evictions_total{cache="thumbnail"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics after clear missing %q", want)
		}
	}
}

func TestStorageUnreachable(t *testing.T) {
	s := newTestServer(t, false)
	s.seed(t, &models.MediaThumbModel{IdMedia: 1, Filepath: str("a.jpg")})
	s.storage.Close()

	w := s.do(http.MethodGet, "/api/media/thumbnail/1", "", nil)
	if w.Code != http.StatusBadGateway || !strings.Contains(w.Body.String(), "unreachable") {
		t.Errorf("status %d %s", w.Code, w.Body)
	}
}
