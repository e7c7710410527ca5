package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/clubnautico/club_service/internal/adapter/postgres"
	"github.com/clubnautico/club_service/internal/adapter/postgres/pgtest"
	"github.com/clubnautico/club_service/internal/core/domain"
	"github.com/clubnautico/club_service/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
	locks map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}, locks: map[string]string{}}
}

func (c *memoryCache) Get(key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	if !ok {
		return nil, ports.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *memoryCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *memoryCache) AcquireLock(_ context.Context, key string, _ time.Duration) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, held := c.locks[key]; held {
		return "", false, nil
	}
	token := uuid.NewString()
	c.locks[key] = token
	return token, true, nil
}

func (c *memoryCache) ReleaseLock(_ context.Context, key, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locks[key] == token {
		delete(c.locks, key)
	}
	return nil
}

type fakeStorage struct {
	url     string
	err     error
	uploads []string
}

func (s *fakeStorage) Upload(_ context.Context, filename string, content io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if _, err := io.ReadAll(content); err != nil {
		return "", err
	}
	s.uploads = append(s.uploads, filename)
	return s.url, nil
}

type fakeFileStore struct {
	saved   []string
	removed []string
	err     error
}

func (f *fakeFileStore) Save(filename string, content io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, filename)
	return "/uploads/" + filename, nil
}

func (f *fakeFileStore) Remove(publicPath string) error {
	f.removed = append(f.removed, publicPath)
	return nil
}

type fakeMailer struct {
	enabled bool
	err     error
	// block waits for the context to expire before returning.
	block bool
	links []string
}

func (m *fakeMailer) Enabled() bool { return m.enabled }

func (m *fakeMailer) SendPasswordReset(ctx context.Context, _ string, resetLink string) error {
	if m.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if m.err != nil {
		return m.err
	}
	m.links = append(m.links, resetLink)
	return nil
}

var errBoom = errors.New("boom")

type fixture struct {
	db       *gorm.DB
	cache    *memoryCache
	storage  *fakeStorage
	files    *fakeFileStore
	mailer   *fakeMailer
	validate *validator.Validate

	boats    *BoatService
	usages   *UsageService
	reports  *ReportService
	users    *UserService
	students *StudentService
	sheets   *SheetService
	events   *EventService
	news     *AnnouncementService
}

func newFixture(t *testing.T, policy domain.ReservationPolicy) *fixture {
	t.Helper()
	db := pgtest.NewTestDB(t)
	f := &fixture{
		db:       db,
		cache:    newMemoryCache(),
		storage:  &fakeStorage{url: "https://cdn.test/foto.jpg"},
		files:    &fakeFileStore{},
		mailer:   &fakeMailer{},
		validate: validator.New(),
	}
	log := nopLogger{}

	f.boats = NewBoatService(postgres.NewBoatRepository(db), log, f.validate, f.cache)
	f.usages = NewUsageService(postgres.NewUsageRepository(db), f.boats, log, f.validate, f.cache, policy)
	f.reports = NewReportService(postgres.NewReportRepository(db), f.boats, f.storage, log, f.validate)
	f.users = NewUserService(postgres.NewUserRepository(db), f.mailer, log, f.validate, "https://club.test/")
	f.students = NewStudentService(postgres.NewStudentRepository(db), log, f.validate)
	f.sheets = NewSheetService(postgres.NewSheetRepository(db), postgres.NewStudentRepository(db), postgres.NewUserRepository(db), log, f.validate)
	f.events = NewEventService(postgres.NewEventRepository(db), f.files, log, f.validate)
	f.news = NewAnnouncementService(postgres.NewAnnouncementRepository(db), log, f.validate)
	return f
}

// setClock pins every service to the instant returned by now.
func (f *fixture) setClock(now func() time.Time) {
	f.boats.now = now
	f.usages.now = now
	f.reports.now = now
	f.users.now = now
	f.students.now = now
	f.sheets.now = now
	f.events.now = now
	f.news.now = now
}

func (f *fixture) createBoat(t *testing.T, name string) *domain.Boat {
	t.Helper()
	boatType := string(domain.BoatSingle)
	boat, err := f.boats.CreateBoat(context.Background(), BoatInput{Name: &name, Type: &boatType})
	require.NoError(t, err)
	return boat
}

func (f *fixture) countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func ptr[T any](v T) *T { return &v }
