package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goabroadai/goabroad/internal/advisor"
	"github.com/goabroadai/goabroad/internal/config"
	"github.com/goabroadai/goabroad/internal/identity"
	"github.com/goabroadai/goabroad/internal/logging"
	"github.com/goabroadai/goabroad/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "goabroad",
	Short: "AI study abroad consultant",
	Long:  "GoAbroadAI: your personal AI study abroad consultant in the terminal. Build your profile, then ask about universities, scholarships, visas and costs.",
	// Errors are printed by Execute's caller; usage is noise for runtime failures.
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("api-url", "", "Advisory backend base URL (overrides GOABROAD_API_URL)")
	flags.String("db", "", "Path to SQLite database file (overrides GOABROAD_DB env var)")
	flags.String("log-file", "", "Log file (default: goabroad.log next to the database)")
	flags.Bool("verbose", false, "Enable debug logging")
	flags.Duration("timeout", 0, "Timeout for each backend request (default 2m)")

	rootCmd.Flags().Bool("skip-intro", false, "Start directly on the chat screen")

	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(devserverCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig loads .env and GOABROAD_* settings, then applies flags.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if v, _ := cmd.Flags().GetString("api-url"); v != "" {
		cfg.APIURL = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := cmd.Flags().GetString("log-file"); v != "" {
		cfg.LogFile = v
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose, _ = cmd.Flags().GetBool("verbose")
	}
	if v, _ := cmd.Flags().GetDuration("timeout"); v > 0 {
		cfg.Timeout = v
	}
	return cfg, cfg.Validate()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then GOABROAD_DB env var, then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// runtime bundles what the subcommands share.
type runtime struct {
	cfg     config.Config
	store   *store.Store
	logger  *zap.Logger
	session *identity.Session
}

// setup resolves settings, opens the state database, builds the logger and
// loads the session. With logToStderr the log goes to stderr unless a file
// was configured explicitly.
func setup(cmd *cobra.Command, logToStderr bool) (*runtime, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	logFile := cfg.LogFile
	if logFile == "" && !logToStderr {
		logFile = logging.DefaultFile(dbPath)
	}
	logger, err := logging.New(logging.Options{File: logFile, Verbose: cfg.Verbose})
	if err != nil {
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}

	session, err := identity.Load(cmd.Context(), st.StateRepo())
	if err != nil {
		st.Close()
		_ = logger.Sync()
		return nil, err
	}

	logger.Debug("runtime ready",
		zap.String("api_url", cfg.APIURL),
		zap.String("db", dbPath),
		zap.Int64("user_id", session.UserID()))
	return &runtime{cfg: cfg, store: st, logger: logger, session: session}, nil
}

func (r *runtime) client() *advisor.Client {
	return advisor.New(r.cfg.APIURL,
		advisor.WithTimeout(r.cfg.Timeout),
		advisor.WithLogger(r.logger))
}

func (r *runtime) Close() {
	r.store.Close()
	_ = r.logger.Sync()
}
