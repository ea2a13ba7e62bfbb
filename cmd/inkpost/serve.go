package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eringen/inkpost"
)

// envConfig is the server configuration read from the environment.
type envConfig struct {
	Name        string `env:"INKPOST_SITE_NAME" env-default:"Blog"`
	URL         string `env:"INKPOST_SITE_URL" env-default:"http://localhost:3000"`
	Description string `env:"INKPOST_SITE_DESCRIPTION"`
	Author      string `env:"INKPOST_SITE_AUTHOR"`
	Addr        string `env:"INKPOST_ADDR" env-default:":3000"`

	Dev           bool   `env:"INKPOST_DEV" env-default:"false"`
	ContentDir    string `env:"INKPOST_CONTENT_DIR" env-default:"site"`
	DevContentURL string `env:"INKPOST_DEV_CONTENT_URL"`
	PostsDir      string `env:"INKPOST_POSTS_DIR" env-default:"posts"`

	DatabasePath      string `env:"INKPOST_DATABASE_PATH"`
	BackgroundPattern string `env:"INKPOST_BACKGROUND_PATTERN"`

	BackgroundRateLimit int `env:"INKPOST_BACKGROUND_RATE_LIMIT" env-default:"120"`

	WalineServerURL string   `env:"INKPOST_WALINE_SERVER_URL"`
	AllowOrigins    []string `env:"INKPOST_ALLOW_ORIGINS" env-separator:","`
}

func (e envConfig) site() inkpost.SiteConfig {
	return inkpost.SiteConfig{
		Name:                e.Name,
		URL:                 e.URL,
		Description:         e.Description,
		Author:              e.Author,
		Addr:                e.Addr,
		Dev:                 e.Dev,
		ContentDir:          e.ContentDir,
		DevContentURL:       e.DevContentURL,
		PostsDir:            e.PostsDir,
		CatalogDatabasePath: e.DatabasePath,
		BackgroundPattern:   e.BackgroundPattern,
		BackgroundRateLimit: e.BackgroundRateLimit,
		WalineServerURL:     e.WalineServerURL,
		AllowOrigins:        e.AllowOrigins,
	}
}

func readEnvConfig() (envConfig, error) {
	var cfg envConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return envConfig{}, fmt.Errorf("read configuration: %w", err)
	}
	return cfg, nil
}

func (c *cli) serveCmd() *cobra.Command {
	var dev bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the content API",
		Long: `Serve the post catalog, post content and backgrounds over HTTP.

Configuration is read from INKPOST_* environment variables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := readEnvConfig()
			if err != nil {
				return err
			}
			cfg := env.site()
			if dev {
				cfg.Dev = true
			}

			app := inkpost.New(cfg, inkpost.WithLogger(c.logger))
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- app.Start() }()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			c.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := app.Echo.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				c.logger.Warn("shutdown", zap.Error(err))
			}
			return <-errc
		},
	}
	cmd.Flags().BoolVar(&dev, "dev", false, "Read content live from INKPOST_CONTENT_DIR")
	return cmd
}
