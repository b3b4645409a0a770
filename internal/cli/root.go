package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/querygate/querygate/internal/cache"
	"github.com/querygate/querygate/internal/config"
	"github.com/querygate/querygate/internal/db"
	"github.com/querygate/querygate/internal/db/mongodb"
	"github.com/querygate/querygate/internal/db/mysql"
	"github.com/querygate/querygate/internal/db/postgres"
	"github.com/querygate/querygate/internal/db/sqlite"
	"github.com/querygate/querygate/internal/logger"
	"github.com/querygate/querygate/internal/router"
)

var (
	cfgFile     string
	cfg         *config.Config
	registry    *db.Registry
	resultCache *cache.Redis
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "querygate",
	Short: "Uniform query façade over local databases",
	Long: `QueryGate is a single-process façade that accepts a uniform request
(database kind, operation, query, parameters, optional cache key) and
dispatches it to SQLite, PostgreSQL, MySQL or MongoDB, consulting a
Redis result cache before execution and populating it after.

Every outcome, success or failure, comes back in one response envelope.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for the init command itself
		if cmd.Name() == "init" {
			return nil
		}

		if cfgFile == "" {
			cfgFile = configPath()
		}

		if config.Exists(cfgFile) {
			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
		} else {
			cfg = config.DefaultConfig()
		}

		logger.Init(logger.ParseLevel(cfg.LogLevel), os.Stderr)

		ctx := cmd.Context()
		registry = buildRegistry(ctx, cfg)
		resultCache = buildCache(ctx, cfg)

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if resultCache != nil {
			resultCache.Close()
		}
		if registry != nil {
			return registry.Close(context.Background())
		}
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.querygate/config.yaml)")

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(pingCmd)
}

func configPath() string {
	if envPath := os.Getenv("QUERYGATE_CONFIG_PATH"); envPath != "" {
		return envPath
	}
	return config.GetConfigPath()
}

// buildRegistry constructs the kind-to-handler mapping once at startup. A
// backend is registered only if it is enabled and its connection attempt
// succeeds; anything else is logged and skipped so a broken optional
// backend never blocks the rest.
func buildRegistry(ctx context.Context, cfg *config.Config) *db.Registry {
	reg := db.NewRegistry()

	handlers := []struct {
		enabled bool
		handler db.Handler
	}{
		{cfg.SQLite.Enabled, sqlite.New(cfg.SQLite)},
		{cfg.PostgreSQL.Enabled, postgres.New(cfg.PostgreSQL)},
		{cfg.MySQL.Enabled, mysql.New(cfg.MySQL)},
		{cfg.MongoDB.Enabled, mongodb.New(cfg.MongoDB)},
	}

	for _, h := range handlers {
		if !h.enabled {
			continue
		}
		if err := h.handler.Connect(ctx); err != nil {
			logger.Warning("Skipping %s backend: %v", h.handler.Kind(), err)
			continue
		}
		logger.Info("%s backend connected", h.handler.Kind())
		reg.Register(h.handler)
	}

	return reg
}

// buildCache connects the Redis result cache; on any failure the process
// simply runs uncached.
func buildCache(ctx context.Context, cfg *config.Config) *cache.Redis {
	if !cfg.Redis.Enabled {
		return nil
	}
	c, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Warning("Redis connection failed, running uncached: %v", err)
		return nil
	}
	logger.Info("Redis cache connected")
	return c
}

// newRouter wires the router, avoiding a typed-nil cache interface
func newRouter() *router.Router {
	if resultCache != nil {
		return router.New(registry, resultCache)
	}
	return router.New(registry, nil)
}
