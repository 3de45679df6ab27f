package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/urfave/cli/v3"

	"github.com/dokusho-app/dokusho/internal/server"
)

// Serve starts the JSON API server consumed by the web frontend.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	host := r.config.Server.Host
	if cmd.String("host") != "" {
		host = cmd.String("host")
	}
	port := r.config.Server.Port
	if cmd.Int("port") != 0 {
		port = int(cmd.Int("port"))
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	manager := r.newManager(db)

	api := server.APIOpts{
		Store:    manager,
		Migrator: r.newEngine(manager),
		Logger:   r.logger,
	}
	if generator, err := r.newGenerator(); err != nil {
		r.logger.Warn("generation endpoint disabled", "error", err)
	} else {
		api.Generator = generator
	}

	router := server.NewBasicRouter()
	router.Use(server.Recovery(r.logger), server.Logging(r.logger))
	router.Handler(server.NewAPI(api))

	addr := fmt.Sprintf("%s:%d", host, port)
	srv := server.New(addr, router)

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	r.logger.Info("listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
