package cli

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"options-journal/internal/config"
	"options-journal/internal/journal"
	"options-journal/internal/logging"
	"options-journal/internal/marketdata"
	"options-journal/internal/store"
)

// Version information
const Version = "0.1.0"

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.DataStore
	Engine *journal.Engine
	VIX    marketdata.VIXProvider
	Coach  marketdata.Coach
	Prices marketdata.PriceEstimator
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
		Engine: journal.NewEngine(cfg),
	}

	dbPath := filepath.Join(config.DefaultConfigDir(), "journal.db")
	dataStore, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, trade data will be unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Msg("SQLite store initialized")
	}

	app.VIX = marketdata.NewHTTPVIXProvider(cfg.Volatility.SourceURL)

	if cfg.Credentials.OpenAI.APIKey != "" {
		coach := marketdata.NewOpenAICoach(cfg.Credentials.OpenAI.APIKey, cfg.Credentials.OpenAI.Model)
		app.Coach = coach
		app.Prices = coach
		logger.Debug().Str("model", cfg.Credentials.OpenAI.Model).Msg("OpenAI coach initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "optjournal",
		Short: "Options trade journal with a risk-discipline gate",
		Long: `optjournal is a discretionary-options trade journal.

Every new trade passes through a gating sequence (volatility check, risk
check, discipline checklist) before it is committed, and derived fields
(target/stop defaults, realized P&L, outcome) stay consistent as trades are
edited, closed, and reopened.

Use 'optjournal help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/options-journal)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addTradeCommands(rootCmd, app)
	addReportCommands(rootCmd, app)
	addExportCommands(rootCmd, app)
	addCoachCommands(rootCmd, app)
	addSettingsCommands(rootCmd, app)
	addVersionCommand(rootCmd)

	return rootCmd
}

func addVersionCommand(rootCmd *cobra.Command) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			NewOutput(cmd).Printf("optjournal %s\n", Version)
		},
	})
}
