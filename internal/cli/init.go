package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/querygate/querygate/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize querygate configuration",
	Long:  `Interactive wizard to set up querygate configuration including database backends and the Redis cache.`,
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("🚀 Welcome to QueryGate Setup")
	fmt.Println("=============================")
	fmt.Println()

	// Check if config already exists
	path := configPath()
	if cfgFile != "" {
		path = cfgFile
	}
	if config.Exists(path) {
		fmt.Printf("Configuration file already exists at: %s\n", path)
		confirmed, err := promptYesNo(reader, "Do you want to overwrite it? (y/N): ")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()

	fmt.Println("\n📊 SQLite (always available)")
	fmt.Println("----------------------------")
	sqlitePath, err := promptOptional(reader, fmt.Sprintf("Database file path [%s]: ", cfg.SQLite.Path), cfg.SQLite.Path)
	if err != nil {
		return err
	}
	cfg.SQLite.Path = sqlitePath

	fmt.Println("\n🐘 PostgreSQL")
	fmt.Println("-------------")
	if cfg.PostgreSQL.Enabled, err = promptYesNo(reader, "Enable PostgreSQL backend? (y/N): "); err != nil {
		return err
	}
	if cfg.PostgreSQL.Enabled {
		if err := promptServer(reader, &cfg.PostgreSQL); err != nil {
			return err
		}
	}

	fmt.Println("\n🐬 MySQL")
	fmt.Println("--------")
	if cfg.MySQL.Enabled, err = promptYesNo(reader, "Enable MySQL backend? (y/N): "); err != nil {
		return err
	}
	if cfg.MySQL.Enabled {
		if err := promptServer(reader, &cfg.MySQL); err != nil {
			return err
		}
	}

	fmt.Println("\n🍃 MongoDB")
	fmt.Println("----------")
	if cfg.MongoDB.Enabled, err = promptYesNo(reader, "Enable MongoDB backend? (y/N): "); err != nil {
		return err
	}
	if cfg.MongoDB.Enabled {
		uri, err := promptOptional(reader, fmt.Sprintf("MongoDB URI [%s]: ", cfg.MongoDB.URI), cfg.MongoDB.URI)
		if err != nil {
			return err
		}
		cfg.MongoDB.URI = uri

		name, err := promptOptional(reader, fmt.Sprintf("Database name [%s]: ", cfg.MongoDB.Database), cfg.MongoDB.Database)
		if err != nil {
			return err
		}
		cfg.MongoDB.Database = name
	}

	fmt.Println("\n⚡ Redis result cache")
	fmt.Println("--------------------")
	if cfg.Redis.Enabled, err = promptYesNo(reader, "Enable Redis caching? (y/N): "); err != nil {
		return err
	}
	if cfg.Redis.Enabled {
		host, err := promptOptional(reader, fmt.Sprintf("Redis host [%s]: ", cfg.Redis.Host), cfg.Redis.Host)
		if err != nil {
			return err
		}
		cfg.Redis.Host = host

		ttl, err := promptOptional(reader, fmt.Sprintf("Cache TTL seconds [%d]: ", cfg.Redis.TTLSeconds), strconv.Itoa(cfg.Redis.TTLSeconds))
		if err != nil {
			return err
		}
		if n, err := strconv.Atoi(ttl); err == nil && n > 0 {
			cfg.Redis.TTLSeconds = n
		}
	}

	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("\n✅ Configuration saved to: %s\n", path)
	fmt.Println("\nNext steps:")
	fmt.Println("  querygate ping    - check backend connectivity")
	fmt.Println("  querygate serve   - start the HTTP API")
	fmt.Println("  querygate query   - run a one-shot request")
	return nil
}

func promptServer(reader *bufio.Reader, sc *config.ServerConfig) error {
	host, err := promptOptional(reader, fmt.Sprintf("Host [%s]: ", sc.Host), sc.Host)
	if err != nil {
		return err
	}
	sc.Host = host

	port, err := promptOptional(reader, fmt.Sprintf("Port [%d]: ", sc.Port), strconv.Itoa(sc.Port))
	if err != nil {
		return err
	}
	if n, err := strconv.Atoi(port); err == nil && n > 0 {
		sc.Port = n
	}

	database, err := promptOptional(reader, fmt.Sprintf("Database [%s]: ", sc.Database), sc.Database)
	if err != nil {
		return err
	}
	sc.Database = database

	user, err := promptOptional(reader, fmt.Sprintf("User [%s]: ", sc.User), sc.User)
	if err != nil {
		return err
	}
	sc.User = user

	password, err := promptOptional(reader, "Password: ", sc.Password)
	if err != nil {
		return err
	}
	sc.Password = password

	return nil
}
