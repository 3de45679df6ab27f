package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dokusho-app/dokusho/internal/i18n"
	"github.com/dokusho-app/dokusho/internal/models"
	"github.com/dokusho-app/dokusho/internal/shared"
	"github.com/dokusho-app/dokusho/internal/store"
	"github.com/dokusho-app/dokusho/internal/tasks"
)

// Generator produces an article for an identity. Satisfied by
// generate.Client; the API runs without one when no key is configured.
type Generator interface {
	Generate(ctx context.Context, identity models.Identity, topic, level string) (*models.ArticleInput, error)
}

// Migrator replays legacy data into the active store. Satisfied by
// [tasks.MigrationEngine].
type Migrator interface {
	RunAll(ctx context.Context, progress chan<- tasks.ProgressUpdate) ([]*tasks.MigrationResult, error)
}

// API serves the JSON endpoints consumed by the web frontend.
// Implements the [Handler] interface for registration with a [Router].
type API struct {
	store     store.Manager
	generator Generator
	migrator  Migrator
	logger    *log.Logger
}

// APIOpts configures an [API]. Store is required; Generator and Migrator may
// be nil, in which case their endpoints report the feature as unavailable.
type APIOpts struct {
	Store     store.Manager
	Generator Generator
	Migrator  Migrator
	Logger    *log.Logger
}

// NewAPI creates the API handler.
func NewAPI(opts APIOpts) *API {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &API{
		store:     opts.Store,
		generator: opts.Generator,
		migrator:  opts.Migrator,
		logger:    logger,
	}
}

// Routes returns the HTTP routes this handler serves.
func (a *API) Routes() []string {
	return []string{
		"/api/health",
		"/api/articles",
		"/api/articles/{id}",
		"/api/stats",
		"/api/settings",
		"/api/migrate",
		"/api/generate",
		"/api/translations/{lang}",
	}
}

// ServeHTTP dispatches to the endpoint implementations by path and method.
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/health":
		a.health(w, r)
	case r.PathValue("id") != "":
		a.articleByID(w, r)
	case r.URL.Path == "/api/articles":
		a.articles(w, r)
	case r.URL.Path == "/api/stats":
		a.stats(w, r)
	case r.URL.Path == "/api/settings":
		a.settings(w, r)
	case r.URL.Path == "/api/migrate":
		a.migrate(w, r)
	case r.URL.Path == "/api/generate":
		a.generate(w, r)
	case r.PathValue("lang") != "":
		a.translations(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// articles handles GET (list) and POST (save) on /api/articles.
func (a *API) articles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		identity, ok := a.identityParam(w, r)
		if !ok {
			return
		}
		articles, err := a.store.ListArticles(r.Context(), identity)
		if err != nil {
			a.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"articles": articleViews(articles)})

	case http.MethodPost:
		var req struct {
			User string              `json:"user"`
			models.ArticleInput
		}
		if !a.decode(w, r, &req) {
			return
		}
		identity, err := models.ParseIdentity(req.User)
		if err != nil {
			a.writeError(w, err)
			return
		}
		if err := a.store.SaveArticle(r.Context(), identity, req.ArticleInput); err != nil {
			a.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]bool{"saved": true})

	default:
		methodNotAllowed(w)
	}
}

// articleByID handles DELETE /api/articles/{id}.
func (a *API) articleByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	identity, ok := a.identityParam(w, r)
	if !ok {
		return
	}
	if err := a.store.DeleteArticle(r.Context(), identity, r.PathValue("id")); err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (a *API) stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	identity, ok := a.identityParam(w, r)
	if !ok {
		return
	}
	stats, err := a.store.GetStats(r.Context(), identity)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// settings handles GET and PUT on /api/settings.
func (a *API) settings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		identity, ok := a.identityParam(w, r)
		if !ok {
			return
		}
		settings, err := a.store.GetSettings(r.Context(), identity)
		if err != nil {
			a.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, settings)

	case http.MethodPut:
		var req struct {
			User     string `json:"user"`
			Language string `json:"interfaceLanguage"`
		}
		if !a.decode(w, r, &req) {
			return
		}
		identity, err := models.ParseIdentity(req.User)
		if err != nil {
			a.writeError(w, err)
			return
		}
		language, err := models.ParseLanguage(req.Language)
		if err != nil {
			a.writeError(w, err)
			return
		}
		if err := a.store.UpdateInterfaceLanguage(r.Context(), identity, language); err != nil {
			a.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, models.UserSettings{InterfaceLanguage: language})

	default:
		methodNotAllowed(w)
	}
}

// migrate handles POST /api/migrate, replaying any legacy data for every
// identity into the active store.
func (a *API) migrate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if a.migrator == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "migration is not configured"})
		return
	}
	results, err := a.migrator.RunAll(r.Context(), nil)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// generate handles POST /api/generate.
func (a *API) generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if a.generator == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "generation is not configured"})
		return
	}
	var req struct {
		User  string `json:"user"`
		Topic string `json:"topic"`
		Level string `json:"level"`
	}
	if !a.decode(w, r, &req) {
		return
	}
	identity, err := models.ParseIdentity(req.User)
	if err != nil {
		a.writeError(w, err)
		return
	}
	input, err := a.generator.Generate(r.Context(), identity, req.Topic, req.Level)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, input)
}

// translations handles GET /api/translations/{lang}, falling back to the
// default catalog for unknown languages.
func (a *API) translations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	language := models.InterfaceLanguage(r.PathValue("lang"))
	writeJSON(w, http.StatusOK, i18n.Lookup(language))
}

// identityParam parses the required "user" query parameter, writing a 400 on
// failure.
func (a *API) identityParam(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	identity, err := models.ParseIdentity(r.URL.Query().Get("user"))
	if err != nil {
		a.writeError(w, err)
		return "", false
	}
	return identity, true
}

// decode reads a JSON request body, writing a 400 on failure.
func (a *API) decode(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed JSON body"})
		return false
	}
	return true
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP statuses.
func (a *API) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, shared.ErrInvalidIdentity),
		errors.Is(err, shared.ErrInvalidLanguage),
		errors.Is(err, shared.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, shared.ErrArticleNotFound),
		errors.Is(err, shared.ErrProfileNotFound):
		status = http.StatusNotFound
	case errors.Is(err, shared.ErrServiceOverloaded):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		a.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// articleView is the wire shape for a saved article.
type articleView struct {
	ID         string                   `json:"id"`
	Topic      string                   `json:"topic"`
	Level      string                   `json:"level"`
	Article    string                   `json:"article"`
	Vocabulary []models.VocabularyEntry `json:"vocabulary"`
	CreatedAt  string                   `json:"createdAt"`
}

func articleViews(articles []*models.SavedArticle) []articleView {
	views := make([]articleView, 0, len(articles))
	for _, article := range articles {
		views = append(views, articleView{
			ID:         article.ID(),
			Topic:      article.Topic(),
			Level:      article.Level(),
			Article:    article.Content(),
			Vocabulary: article.Vocabulary(),
			CreatedAt:  article.CreatedAt().UTC().Format(time.RFC3339),
		})
	}
	return views
}
