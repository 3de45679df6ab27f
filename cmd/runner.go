package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/dokusho-app/dokusho/internal/annotate"
	"github.com/dokusho-app/dokusho/internal/generate"
	"github.com/dokusho-app/dokusho/internal/shared"
	"github.com/dokusho-app/dokusho/internal/store"
	"github.com/dokusho-app/dokusho/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, generateCommand, articlesCommand, statsCommand, langCommand, migrateCommand, browseCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger swaps the runner's logger, used when the TUI takes over the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// openDatabase opens the configured SQLite database and applies pending
// migrations. The caller owns the returned handle.
func (r *Runner) openDatabase() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// newManager builds the database-backed store over db. Annotation is best
// effort: when the tokenizer dictionary fails to load, articles are saved
// without generated readings.
func (r *Runner) newManager(db *sql.DB) store.Manager {
	annotator, err := annotate.New()
	if err != nil {
		r.logger.Warn("reading annotation unavailable", "error", err)
		annotator = nil
	}
	return store.NewBackend(store.BackendOpts{
		DB:        db,
		Logger:    r.logger,
		Annotator: annotator,
	})
}

// newLocal builds the legacy file-backed store rooted at the configured
// legacy directory.
func (r *Runner) newLocal() *store.Local {
	return store.NewLocal(r.config.Legacy.Dir, r.logger)
}

// newEngine wires a migration engine from the legacy files into manager.
func (r *Runner) newEngine(manager store.Manager) *tasks.MigrationEngine {
	return tasks.NewMigrationEngine(r.newLocal(), manager, r.logger)
}

// newGenerator builds the article generation client from config, or an error
// when the API key is missing.
func (r *Runner) newGenerator() (*generate.Client, error) {
	return generate.NewClient(generate.ClientOpts{
		BaseURL:           r.config.Generation.BaseURL,
		Model:             r.config.Generation.Model,
		APIKey:            r.config.Generation.APIKey(),
		RequestsPerMinute: r.config.Generation.RequestsPerMinute,
		HTTPClient:        r.httpClient,
		Logger:            r.logger,
	})
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
