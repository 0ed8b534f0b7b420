// -- cmd/root.go --
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/clarity-cli/internal/config"
	"github.com/xkilldash9x/clarity-cli/internal/observability"
)

// configName is the base name of the config file searched for when --config is not given.
const configName = "clarity"

// rootOptions carries the state shared by the root command and its children.
// Each root command owns its own viper instance so repeated executions (tests,
// embedding) never leak flags or config between runs.
type rootOptions struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{v: viper.New()}
	config.SetDefaults(opts.v)

	rootCmd := &cobra.Command{
		Use:   "clarity",
		Short: "Clarity scores rendered web pages for visual clarity and usability.",
		Long: `Clarity analyzes snapshots of rendered pages (DOM plus computed styles and
element boxes) and reports contrast, typography, tap target, overlap, density
and alignment problems with a weighted 0-100 clarity score.`,
		// Version is dynamically set at build time. See cmd/version.go.
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// This function runs before any command, setting up config and logging.
			if err := opts.initializeConfig(); err != nil {
				observability.InitializeLogger(config.NewDefaultConfig().Logger())
				return err
			}
			observability.InitializeLogger(opts.cfg.Logger())
			observability.GetLogger().Debug("Starting clarity",
				zap.String("version", Version),
				zap.String("config_file", opts.v.ConfigFileUsed()),
			)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "config file (default is ./clarity.yaml or ~/.config/clarity/clarity.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	_ = opts.v.BindPFlag("logger.level", rootCmd.PersistentFlags().Lookup("log-level"))
	rootCmd.SetVersionTemplate(`{{printf "%s version %s\n" .Name .Version}}`)

	rootCmd.AddCommand(newAuditCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the command tree with the given (signal-aware) context.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			observability.GetLogger().Warn("Command aborted")
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		observability.Sync()
		return err
	}
	observability.Sync()
	return nil
}

// initializeConfig reads the config file and CLARITY_* environment variables,
// then builds and validates the configuration.
func (o *rootOptions) initializeConfig() error {
	v := o.v
	if o.cfgFile != "" {
		path, err := homedir.Expand(o.cfgFile)
		if err != nil {
			return fmt.Errorf("failed to expand config path %s: %w", o.cfgFile, err)
		}
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}

	config.BindEnvironment(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults/env vars
	}

	cfg, err := config.NewConfigFromViper(v)
	if err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}
