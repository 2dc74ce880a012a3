package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/zhuifan/internal/repositories"
	"github.com/desertthunder/zhuifan/internal/server"
	"github.com/desertthunder/zhuifan/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve opens the configured database, applies pending migrations and runs the REST API until ctx is canceled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.configFor(cmd)
	if err != nil {
		return err
	}

	serverConfig := config.Server
	if cmd.IsSet("host") {
		serverConfig.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		serverConfig.Port = cmd.Int("port")
	}
	dbConfig := config.Database
	if cmd.IsSet("database") {
		dbConfig.Path = cmd.String("database")
	}

	db, err := shared.OpenConfigured(dbConfig)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer db.Close()

	r.logger.Info("anime store starting", "database", dbConfig.Path, "addr", serverConfig.Addr())

	srv := server.New(serverConfig, repositories.NewAnimeRepository(db), r.logger)
	return srv.Run(ctx)
}
