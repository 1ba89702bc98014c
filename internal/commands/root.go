// internal/commands/root.go
package evalboard

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/k0kubun/pp"
	"github.com/mwiater/evalboard/internal/appconfig"
	"github.com/mwiater/evalboard/internal/evalreport"
	"github.com/mwiater/evalboard/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// Environment variables override the config file, e.g. EVALBOARD_REPORTPATH.
const envPrefix = "EVALBOARD"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "evalboard",
	Short:        "evalboard — pass rates and failure views for batch LLM evaluation reports",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := ensureConfigLoaded(cmd)
		if err != nil {
			return err
		}

		for _, name := range []string{"debug", "jsonMode"} {
			if f := cmd.Flags().Lookup(name); f != nil && !f.Changed {
				_ = cmd.Flags().Set(name, strconv.FormatBool(viper.GetBool(name)))
			}
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		if loaded {
			cfg.ConfigPath = viper.ConfigFileUsed()
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		currentConfig = &cfg

		if err := logging.Init(cfg.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logging.SetDebug(cfg.Debug)
		return nil
	},
}

// Execute runs the root command until it completes or the process is
// interrupted.
func Execute() error {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer logging.Close()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")
	rootCmd.PersistentFlags().StringP("report", "r", "", "path to the evaluation report (default "+evalreport.DefaultReportPath+")")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging and dump the loaded report")
	rootCmd.PersistentFlags().Bool("jsonMode", false, "print command output as JSON")

	_ = viper.BindPFlag("reportPath", rootCmd.PersistentFlags().Lookup("report"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("jsonMode", rootCmd.PersistentFlags().Lookup("jsonMode"))
}

// initConfig points viper at the config file and the environment.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
}

// ensureConfigLoaded reads the config and sets safe defaults. A missing file
// is only an error when --config was given explicitly.
func ensureConfigLoaded(cmd *cobra.Command) (bool, error) {
	d := appconfig.Defaults()
	viper.SetDefault("reportPath", d.ReportPath)
	viper.SetDefault("logFile", d.LogFile)
	viper.SetDefault("debug", false)
	viper.SetDefault("jsonMode", false)
	viper.SetDefault("previewLimit", d.PreviewLimit)
	viper.SetDefault("previewWidth", d.PreviewWidth)
	viper.SetDefault("tokensPerCase", d.TokensPerCase)
	viper.SetDefault("listenAddr", d.ListenAddr)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		if missing && !configFlagChanged(cmd) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load config: %w", err)
	}
	return true, nil
}

func configFlagChanged(cmd *cobra.Command) bool {
	f := cmd.Flags().Lookup("config")
	return f != nil && f.Changed
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	if currentConfig == nil {
		d := appconfig.Defaults()
		return &d
	}
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// JSONModeEnabled returns true if JSON mode is enabled.
func JSONModeEnabled() bool { return viper.GetBool("jsonMode") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// loadOverview performs one fresh load of the configured report.
func loadOverview(cmd *cobra.Command) (evalreport.Outcome, evalreport.Overview) {
	cfg := GetConfig()
	o := evalreport.Load(cmd.Context(), cfg.ReportSource())
	if cfg.Debug {
		if r, ok := o.Report(); ok {
			_, _ = pp.Fprintln(cmd.ErrOrStderr(), r)
		}
	}
	return o, evalreport.BuildOverview(o, cfg.Options())
}

// outputFormat resolves the --format flag of cmd, preferring JSON when
// --jsonMode is set and no explicit format was given.
func outputFormat(cmd *cobra.Command, fallback string) string {
	f := cmd.Flags().Lookup("format")
	if f == nil {
		return fallback
	}
	if !f.Changed && GetConfig().JSONMode {
		return "json"
	}
	return strings.ToLower(strings.TrimSpace(f.Value.String()))
}
