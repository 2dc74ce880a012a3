// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/zhuifan/internal/models"
	"github.com/desertthunder/zhuifan/internal/shared"
)

// MockAnimeService is an in-memory test double for [services.AnimeService].
//
// Set the *Err fields to make the matching call fail. Calls records every method invoked, in order.
type MockAnimeService struct {
	mu     sync.Mutex
	Animes []models.Anime
	Today  models.Weekday
	nextID int64
	Calls  []string

	ListErr   error
	TodayErr  error
	GetErr    error
	CreateErr error
	UpdateErr error
	DeleteErr error
}

func (m *MockAnimeService) record(call string) {
	m.Calls = append(m.Calls, call)
}

func (m *MockAnimeService) List(ctx context.Context) ([]models.Anime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("List")
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]models.Anime{}, m.Animes...), nil
}

func (m *MockAnimeService) ListToday(ctx context.Context) (*models.TodayResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ListToday")
	if m.TodayErr != nil {
		return nil, m.TodayErr
	}
	resp := &models.TodayResponse{Today: m.Today, Animes: []models.Anime{}}
	for _, a := range m.Animes {
		if m.Today != "" && a.UpdateDay == m.Today && a.Status == models.StatusWatching {
			resp.Animes = append(resp.Animes, a)
		}
	}
	return resp, nil
}

func (m *MockAnimeService) Get(ctx context.Context, id int64) (*models.Anime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Get")
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, a := range m.Animes {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *MockAnimeService) Create(ctx context.Context, draft models.Draft) (*models.Anime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Create")
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	for _, a := range m.Animes {
		if a.ID > m.nextID {
			m.nextID = a.ID
		}
	}
	m.nextID++
	a := fromDraft(m.nextID, draft)
	m.Animes = append(m.Animes, a)
	return &a, nil
}

func (m *MockAnimeService) Update(ctx context.Context, id int64, draft models.Draft) (*models.Anime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Update")
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	for i, a := range m.Animes {
		if a.ID == id {
			m.Animes[i] = fromDraft(id, draft)
			return &m.Animes[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *MockAnimeService) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Delete")
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i, a := range m.Animes {
		if a.ID == id {
			m.Animes = append(m.Animes[:i], m.Animes[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

// CallLog returns a copy of the recorded calls.
func (m *MockAnimeService) CallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.Calls...)
}

func fromDraft(id int64, d models.Draft) models.Anime {
	status := d.Status
	if status == "" {
		status = models.StatusWatching
	}
	return models.Anime{
		ID:             id,
		Title:          d.Title,
		CurrentEpisode: d.CurrentEpisode,
		TotalEpisodes:  d.TotalEpisodes,
		Platform:       d.Platform,
		PlatformURL:    d.PlatformURL,
		Status:         status,
		Notes:          d.Notes,
		UpdateDay:      d.UpdateDay,
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int { return &n }
