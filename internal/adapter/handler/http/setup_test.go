package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/clubnautico/club_service/internal/adapter/localstore"
	"github.com/clubnautico/club_service/internal/adapter/postgres"
	"github.com/clubnautico/club_service/internal/adapter/postgres/pgtest"
	"github.com/clubnautico/club_service/internal/adapter/prometheus"
	"github.com/clubnautico/club_service/internal/adapter/redis"
	"github.com/clubnautico/club_service/internal/config"
	"github.com/clubnautico/club_service/internal/core/domain"
	"github.com/clubnautico/club_service/internal/core/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

type fakeStorage struct {
	err error
}

func (s *fakeStorage) Upload(_ context.Context, filename string, content io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	io.Copy(io.Discard, content)
	return "https://cdn.test/" + filename, nil
}

type disabledMailer struct{}

func (disabledMailer) Enabled() bool                                           { return false }
func (disabledMailer) SendPasswordReset(context.Context, string, string) error { return nil }

type serverOptions struct {
	env           string
	policy        domain.ReservationPolicy
	legacyHeaders bool
}

type testServer struct {
	engine     *gin.Engine
	db         *gorm.DB
	tokens     *JWTTokenService
	storage    *fakeStorage
	uploadsDir string
}

func newTestServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()
	if opts.env == "" {
		opts.env = "test"
	}
	if opts.policy == "" {
		opts.policy = domain.PolicyAdvisory
	}

	db := pgtest.NewTestDB(t)
	log := nopLogger{}
	validate := validator.New()

	redisSrv := miniredis.RunT(t)
	redisConn := goredis.NewClient(&goredis.Options{Addr: redisSrv.Addr()})
	t.Cleanup(func() { redisConn.Close() })
	cache := redis.NewRedisAdapter(redisConn)

	uploadsDir := t.TempDir()
	files, err := localstore.NewLocalStore(uploadsDir)
	require.NoError(t, err)

	storage := &fakeStorage{}
	metrics := prometheus.NewPrometheusAdapter()
	tokens := NewJWTTokenService("test-secret", time.Hour, log)

	boatService := services.NewBoatService(postgres.NewBoatRepository(db), log, validate, cache)
	usageService := services.NewUsageService(postgres.NewUsageRepository(db), boatService, log, validate, cache, opts.policy)
	reportService := services.NewReportService(postgres.NewReportRepository(db), boatService, storage, log, validate)
	userService := services.NewUserService(postgres.NewUserRepository(db), disabledMailer{}, log, validate, "https://club.test")
	studentService := services.NewStudentService(postgres.NewStudentRepository(db), log, validate)
	sheetService := services.NewSheetService(postgres.NewSheetRepository(db), postgres.NewStudentRepository(db), postgres.NewUserRepository(db), log, validate)
	announcementService := services.NewAnnouncementService(postgres.NewAnnouncementRepository(db), log, validate)
	eventService := services.NewEventService(postgres.NewEventRepository(db), files, log, validate)

	router, err := NewRouter(
		&config.HTTP{Env: opts.env, AllowedOrigins: "*"},
		&config.Auth{LegacyHeaders: opts.legacyHeaders},
		tokens,
		metrics.Handler(),
		uploadsDir,
		Handlers{
			Boat:    NewBoatHandler(boatService, usageService, log, metrics),
			Usage:   NewUsageHandler(usageService, log, metrics),
			Report:  NewReportHandler(reportService, log, metrics),
			User:    NewUserHandler(userService, tokens, log, metrics, opts.env == "production"),
			Student: NewStudentHandler(studentService, sheetService, log, metrics),
			News:    NewNewsHandler(announcementService, eventService, log, metrics),
		},
	)
	require.NoError(t, err)

	return &testServer{
		engine:     router.Engine(),
		db:         db,
		tokens:     tokens,
		storage:    storage,
		uploadsDir: uploadsDir,
	}
}

func (s *testServer) bearer(t *testing.T, role domain.UserRole) map[string]string {
	t.Helper()
	token, err := s.tokens.IssueToken(&domain.User{ID: uuid.New(), Nombre: "Test", Email: "test@club.test", Role: role})
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func (s *testServer) request(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

type formFile struct {
	field       string
	filename    string
	contentType string
	content     string
}

func (s *testServer) multipart(t *testing.T, method, path string, fields map[string]string, file *formFile, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+file.field+`"; filename="`+file.filename+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte(file.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *testServer) createBoat(t *testing.T, name string) domain.Boat {
	t.Helper()
	w := s.request(t, http.MethodPost, "/api/boats", map[string]string{"name": name, "type": "single"}, s.bearer(t, domain.Admin))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var boat domain.Boat
	decode(t, w, &boat)
	return boat
}
