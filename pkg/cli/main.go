package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/031wnstjd/appkit/pkg/config"
	"github.com/031wnstjd/appkit/pkg/health"
	"github.com/031wnstjd/appkit/pkg/localstore"
	"github.com/031wnstjd/appkit/pkg/observability/logger"
	"github.com/031wnstjd/appkit/pkg/uistate"
	"github.com/031wnstjd/appkit/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// AppCommandOptions defines callbacks for application-specific logic.
type AppCommandOptions struct {
	Name        string
	Description string
	ConfigPath  string
	EnvPrefix   string

	// Optional: custom config validation (runs after the built-in validation)
	ValidateConfig func(cfg *config.Config) error

	// Optional: additional custom commands
	CustomCommands []*cobra.Command
}

// NewAppCommand creates a standardized CLI with version, config, store,
// prefs, and healthcheck subcommands.
func NewAppCommand(opts AppCommandOptions) *cobra.Command {
	if opts.Name == "" {
		opts.Name = "appkit"
	}
	if opts.EnvPrefix == "" {
		opts.EnvPrefix = "APPKIT"
	}

	rootCmd := &cobra.Command{
		Use:   opts.Name,
		Short: opts.Description,
	}

	var cfgPath string
	var logLevelOverride string
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config-file", "c", opts.ConfigPath, "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevelOverride, "log-level", "", "log level override (debug, info, warn, error)")

	loadConfig := func(flags *pflag.FlagSet) (*config.Config, logger.Logger, error) {
		return LoadConfigAndLogger(cfgPath, opts.EnvPrefix, opts.ValidateConfig, flags)
	}

	// version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Current(opts.Name)
			fmt.Printf("Service:    %s\n", info.Service)
			fmt.Printf("Version:    %s\n", info.Version)
			fmt.Printf("Commit:     %s\n", info.Commit)
			fmt.Printf("Build Time: %s\n", info.BuildTime)
		},
	})

	rootCmd.AddCommand(newConfigCommand(loadConfig, opts))
	rootCmd.AddCommand(newStoreCommand(loadConfig))
	rootCmd.AddCommand(newPrefsCommand(loadConfig))
	rootCmd.AddCommand(newHealthcheckCommand(loadConfig))

	for _, customCmd := range opts.CustomCommands {
		rootCmd.AddCommand(customCmd)
	}

	return rootCmd
}

func newConfigCommand(loadConfig loadConfigFunc, opts AppCommandOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := loadConfig(cmd.Flags()); err != nil {
				return err
			}
			fmt.Println("Configuration is valid")
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Print(string(data))
			return nil
		},
	})

	return configCmd
}

func newStoreCommand(loadConfig loadConfigFunc) *cobra.Command {
	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Local store inspection commands",
	}

	var databaseName string
	var storeName string
	var storeVersion int
	storeCmd.PersistentFlags().StringVar(&databaseName, "database", "appkit", "database name")
	storeCmd.PersistentFlags().StringVar(&storeName, "store", "default", "object store (partition) name")
	storeCmd.PersistentFlags().IntVar(&storeVersion, "store-version", 1, "database schema version")

	withConnection := func(cmd *cobra.Command, fn func(ctx context.Context, conn *localstore.Connection) error) error {
		cfg, log, err := loadConfig(cmd.Flags())
		if err != nil {
			return err
		}
		registry := localstore.NewRegistry(storageConfig(cfg), log)
		defer func() {
			if closeErr := registry.Close(); closeErr != nil {
				log.Error("failed to close store registry", "error", closeErr)
			}
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		conn, err := registry.Open(ctx, databaseName, storeName, storeVersion)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		return fn(ctx, conn)
	}

	storeCmd.AddCommand(&cobra.Command{
		Use:   "get KEY",
		Short: "Read a value from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConnection(cmd, func(ctx context.Context, conn *localstore.Connection) error {
				value, err := conn.Get(ctx, storeName, args[0])
				if err != nil {
					return err
				}
				if value == nil {
					return fmt.Errorf("key %q not found", args[0])
				}
				fmt.Println(string(value))
				return nil
			})
		},
	})

	storeCmd.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Write a value to the store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConnection(cmd, func(ctx context.Context, conn *localstore.Connection) error {
				if err := conn.Put(ctx, storeName, []byte(args[1]), args[0]); err != nil {
					return err
				}
				fmt.Printf("stored %q\n", args[0])
				return nil
			})
		},
	})

	storeCmd.AddCommand(&cobra.Command{
		Use:   "delete KEY",
		Short: "Delete a key from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConnection(cmd, func(ctx context.Context, conn *localstore.Connection) error {
				if err := conn.Delete(ctx, storeName, args[0]); err != nil {
					return err
				}
				fmt.Printf("deleted %q\n", args[0])
				return nil
			})
		},
	})

	storeCmd.AddCommand(&cobra.Command{
		Use:   "keys",
		Short: "List keys in the store partition",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConnection(cmd, func(ctx context.Context, conn *localstore.Connection) error {
				keys, err := conn.Keys(ctx, storeName)
				if err != nil {
					return err
				}
				sort.Strings(keys)
				for _, key := range keys {
					fmt.Println(key)
				}
				return nil
			})
		},
	})

	storeCmd.AddCommand(&cobra.Command{
		Use:   "partitions",
		Short: "List partitions in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConnection(cmd, func(ctx context.Context, conn *localstore.Connection) error {
				partitions, err := conn.Partitions(ctx)
				if err != nil {
					return err
				}
				sort.Strings(partitions)
				for _, partition := range partitions {
					fmt.Println(partition)
				}
				return nil
			})
		},
	})

	return storeCmd
}

func newPrefsCommand(loadConfig loadConfigFunc) *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "UI preference commands",
	}

	openPrefs := func(cmd *cobra.Command) (*uistate.Store, logger.Logger, error) {
		cfg, log, err := loadConfig(cmd.Flags())
		if err != nil {
			return nil, nil, err
		}
		if !cfg.Preferences.Enabled {
			return nil, nil, fmt.Errorf("preference persistence is disabled (set preferences.enabled)")
		}
		sync, err := uistate.NewFileSyncStore(cfg.Preferences.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open preferences file: %w", err)
		}
		return uistate.NewStore(sync, log), log, nil
	}

	prefsCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show persisted UI preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openPrefs(cmd)
			if err != nil {
				return err
			}
			snapshot := store.Snapshot()
			fmt.Printf("sidebar_collapsed: %v\n", snapshot.SidebarCollapsed)
			fmt.Printf("theme: %s\n", snapshot.Theme)
			return nil
		},
	})

	prefsCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset UI preferences to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openPrefs(cmd)
			if err != nil {
				return err
			}
			store.Reset()
			fmt.Println("preferences reset")
			return nil
		},
	})

	return prefsCmd
}

func newHealthcheckCommand(loadConfig loadConfigFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "healthcheck",
		Short: "Check that local storage is usable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			storeRegistry := localstore.NewRegistry(storageConfig(cfg), log)
			defer func() {
				if closeErr := storeRegistry.Close(); closeErr != nil {
					log.Error("failed to close store registry", "error", closeErr)
				}
			}()

			checks := health.NewRegistry()
			checks.Register(health.NewPingChecker("process"))
			checks.Register(health.NewLocalStoreChecker("localstore", storeRegistry))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result := checks.Check(ctx)
			for _, check := range result.Checks {
				line := fmt.Sprintf("%s: %s", check.Name, check.Status)
				if check.Error != "" {
					line += " (" + check.Error + ")"
				}
				fmt.Println(line)
			}
			if !result.IsHealthy() {
				return fmt.Errorf("health check failed: overall status %s", result.Status)
			}
			fmt.Println("overall: healthy")
			return nil
		},
	}
}

type loadConfigFunc func(flags *pflag.FlagSet) (*config.Config, logger.Logger, error)

// LoadConfigAndLogger loads configuration and builds the logger it describes.
// Flag overrides take precedence over environment and file values.
func LoadConfigAndLogger(
	cfgPath,
	envPrefix string,
	customValidator func(*config.Config) error,
	flags *pflag.FlagSet,
) (*config.Config, logger.Logger, error) {
	if envPrefix == "" {
		envPrefix = "APPKIT"
	}

	loader := config.NewViperLoader(cfgPath, envPrefix)
	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	applyFlagOverrides(cfg, flags)

	if err := loader.Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	if customValidator != nil {
		if err := customValidator(cfg); err != nil {
			return nil, nil, fmt.Errorf("custom validation failed: %w", err)
		}
	}

	logCfg := logger.Config{
		Level:  logger.LogLevel(cfg.Observability.LogLevel),
		Format: logger.LogFormat(cfg.Observability.LogFormat),
	}
	log, err := logger.NewZapLogger(logCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return cfg, log, nil
}

func applyFlagOverrides(cfg *config.Config, flags *pflag.FlagSet) {
	if cfg == nil || flags == nil {
		return
	}
	if flag := flags.Lookup("log-level"); flag != nil && flag.Changed {
		if level := strings.TrimSpace(flag.Value.String()); level != "" {
			cfg.Observability.LogLevel = level
		}
	}
}

func storageConfig(cfg *config.Config) localstore.Config {
	return localstore.Config{
		Dir:         cfg.Storage.Dir,
		FileMode:    os.FileMode(cfg.Storage.FileMode),
		OpenTimeout: cfg.Storage.OpenTimeout,
	}
}

// Execute runs the command and exits with appropriate code.
func Execute(cmd *cobra.Command) {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
