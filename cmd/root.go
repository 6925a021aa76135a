// File: cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/framepoint/api/schemas"
	"github.com/xkilldash9x/framepoint/internal/browser/geometry"
	"github.com/xkilldash9x/framepoint/internal/browser/session"
	"github.com/xkilldash9x/framepoint/internal/config"
	"github.com/xkilldash9x/framepoint/internal/observability"
)

type contextKey string

const configKey contextKey = "config"

// Target is the page a command drives. *session.Session implements it.
type Target interface {
	Probe(ctx context.Context, p geometry.Point) (session.ProbeReport, error)
	Click(ctx context.Context, p geometry.Point, button schemas.MouseButton, clickCount int64, mods schemas.Modifiers) error
	Type(ctx context.Context, text string, mods schemas.Modifiers) error
	InsertText(ctx context.Context, text string) error
	Press(ctx context.Context, name string, mods schemas.Modifiers) error
	Close(ctx context.Context) error
}

// attachFunc connects a command to the browser. Tests swap it for a fake.
var attachFunc = func(ctx context.Context, cfg config.Interface, logger *zap.Logger) (Target, error) {
	s, err := session.Attach(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// osExit is replaced in tests.
var osExit = os.Exit

// NewRootCmd builds the framepoint command tree.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "framepoint",
		Short: "Framepoint resolves page geometry and drives input on a running Chromium.",
		// Version is set at build time. See cmd/version.go.
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			config.SetDefaults(v)
			config.BindEnv(v)

			if err := initializeConfig(v, cfgFile); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			cfg, err := config.NewConfigFromViper(v)
			if err == nil {
				err = applyFlagOverrides(cmd, cfg)
			}
			if err != nil {
				observability.InitializeLogger(config.NewDefaultConfig().Logger())
				return fmt.Errorf("failed to load or validate config: %w", err)
			}

			observability.InitializeLogger(cfg.Logger())
			observability.GetLogger().Debug("Starting framepoint", zap.String("version", Version))

			cmd.SetContext(context.WithValue(cmd.Context(), configKey, config.Interface(cfg)))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./framepoint.yaml)")
	rootCmd.PersistentFlags().String("remote-url", "", "DevTools endpoint of the browser, e.g. http://127.0.0.1:9222")
	rootCmd.PersistentFlags().Duration("timeout", 0, "upper bound for one command against the browser")
	rootCmd.PersistentFlags().Bool("frameless-iframe", false, "size embedded documents by their body, for frames drawn without a border box")

	rootCmd.AddCommand(newProbeCmd())
	rootCmd.AddCommand(newClickCmd())
	rootCmd.AddCommand(newTypeCmd())
	rootCmd.AddCommand(newPressCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	observability.Sync()
	if err != nil {
		stop()
		osExit(1)
	}
}

// initializeConfig reads the config file, if any.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		path, err := homedir.Expand(cfgFile)
		if err != nil {
			return fmt.Errorf("could not expand config path %q: %w", cfgFile, err)
		}
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("framepoint")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// applyFlagOverrides copies the global flags the user set onto cfg and
// validates the result.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("remote-url") {
		u, err := flags.GetString("remote-url")
		if err != nil {
			return err
		}
		cfg.SetBrowserRemoteURL(u)
	}
	if flags.Changed("timeout") {
		d, err := flags.GetDuration("timeout")
		if err != nil {
			return err
		}
		cfg.SetBrowserCommandTimeout(d)
	}
	if flags.Changed("frameless-iframe") {
		enabled, err := flags.GetBool("frameless-iframe")
		if err != nil {
			return err
		}
		cfg.SetGeometryFramelessIFrame(enabled)
	}
	return cfg.Validate()
}

func configFromContext(ctx context.Context) (config.Interface, error) {
	cfg, ok := ctx.Value(configKey).(config.Interface)
	if !ok || cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	return cfg, nil
}

// withTarget attaches to the browser, runs fn and detaches. The configured
// command timeout bounds the whole exchange.
func withTarget(cmd *cobra.Command, fn func(ctx context.Context, t Target) error) error {
	ctx := cmd.Context()
	cfg, err := configFromContext(ctx)
	if err != nil {
		return err
	}
	logger := observability.GetLogger()

	if timeout := cfg.Browser().CommandTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	target, err := attachFunc(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to attach to browser at %s: %w", cfg.Browser().RemoteURL, err)
	}
	defer func() {
		if cerr := target.Close(context.Background()); cerr != nil {
			logger.Warn("Failed to close session.", zap.Error(cerr))
		}
	}()

	return fn(ctx, target)
}
