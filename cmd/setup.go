package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/dokusho-app/dokusho/internal/models"
	"github.com/dokusho-app/dokusho/internal/shared"
)

// Setup initializes the configuration file, the database, and the default
// profiles for both user slots.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}
	r.config = config

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	manager := r.newManager(db)
	for _, identity := range models.Identities() {
		profile, err := manager.EnsureProfile(ctx, identity)
		if err != nil {
			return fmt.Errorf("failed to create profile for %s: %w", identity, err)
		}
		r.logger.Info("profile ready", "identity", identity, "name", profile.Name())
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}
