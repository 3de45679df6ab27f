// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/dokusho-app/dokusho/internal/models"
)

// MockManager is a configurable test double for store.Manager. Each method
// delegates to its Fn field when set and returns a benign zero value
// otherwise.
type MockManager struct {
	EnsureProfileFn           func(ctx context.Context, identity models.Identity) (*models.UserProfile, error)
	SaveArticleFn             func(ctx context.Context, identity models.Identity, input models.ArticleInput) error
	ListArticlesFn            func(ctx context.Context, identity models.Identity) ([]*models.SavedArticle, error)
	DeleteArticleFn           func(ctx context.Context, identity models.Identity, articleID string) error
	GetStatsFn                func(ctx context.Context, identity models.Identity) (*models.UserStats, error)
	GetSettingsFn             func(ctx context.Context, identity models.Identity) (*models.UserSettings, error)
	UpdateInterfaceLanguageFn func(ctx context.Context, identity models.Identity, language models.InterfaceLanguage) error

	SavedInputs []models.ArticleInput // Records every SaveArticle input in order
}

func (m *MockManager) EnsureProfile(ctx context.Context, identity models.Identity) (*models.UserProfile, error) {
	if m.EnsureProfileFn != nil {
		return m.EnsureProfileFn(ctx, identity)
	}
	return models.DefaultProfile(identity), nil
}

func (m *MockManager) SaveArticle(ctx context.Context, identity models.Identity, input models.ArticleInput) error {
	if m.SaveArticleFn != nil {
		if err := m.SaveArticleFn(ctx, identity, input); err != nil {
			return err
		}
	}
	m.SavedInputs = append(m.SavedInputs, input)
	return nil
}

func (m *MockManager) ListArticles(ctx context.Context, identity models.Identity) ([]*models.SavedArticle, error) {
	if m.ListArticlesFn != nil {
		return m.ListArticlesFn(ctx, identity)
	}
	return []*models.SavedArticle{}, nil
}

func (m *MockManager) DeleteArticle(ctx context.Context, identity models.Identity, articleID string) error {
	if m.DeleteArticleFn != nil {
		return m.DeleteArticleFn(ctx, identity, articleID)
	}
	return nil
}

func (m *MockManager) GetStats(ctx context.Context, identity models.Identity) (*models.UserStats, error) {
	if m.GetStatsFn != nil {
		return m.GetStatsFn(ctx, identity)
	}
	return models.ZeroStats(), nil
}

func (m *MockManager) GetSettings(ctx context.Context, identity models.Identity) (*models.UserSettings, error) {
	if m.GetSettingsFn != nil {
		return m.GetSettingsFn(ctx, identity)
	}
	return models.DefaultSettings(), nil
}

func (m *MockManager) UpdateInterfaceLanguage(ctx context.Context, identity models.Identity, language models.InterfaceLanguage) error {
	if m.UpdateInterfaceLanguageFn != nil {
		return m.UpdateInterfaceLanguageFn(ctx, identity, language)
	}
	return nil
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

// SequenceRoundTripper replays a fixed series of responses, one per request.
// The final response repeats once the series is exhausted.
type SequenceRoundTripper struct {
	Statuses []int
	Bodies   []string
	Calls    int
}

func (s *SequenceRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	i := s.Calls
	if i >= len(s.Statuses) {
		i = len(s.Statuses) - 1
	}
	s.Calls++

	body := ""
	if i < len(s.Bodies) {
		body = s.Bodies[i]
	}

	return &http.Response{
		StatusCode: s.Statuses[i],
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertFileMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("File should not exist: %s", path)
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

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
