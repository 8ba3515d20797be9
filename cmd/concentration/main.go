// concentration is a terminal memory game: find every matching pair of cards.
//
// Usage:
//
//	concentration                  - Play a board in this terminal
//	concentration play             - Same as above
//	concentration list             - List available games
//	concentration scores           - Show result history
//	concentration serve            - Start SSH server for remote play
//	concentration web              - Start HTTP/websocket server
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: timing.tick_rate from config)
//	--seed <value>      - Set RNG seed for a reproducible deal
//	--db <path>         - Set database path (default: ~/.concentration/results.db)
//	--config <path>     - Use a custom config YAML
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-concentration/internal/config"
	"github.com/vovakirdan/tui-concentration/internal/games/concentration"
)

// Environment variables that override flag defaults.
const (
	envDBPath   = "CONCENTRATION_DB"
	envLogLevel = "CONCENTRATION_LOG_LEVEL"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

var (
	logger  *log.Logger
	gameCfg config.ConcentrationConfig
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "concentration",
	Short: "Concentration - the card matching memory game in your terminal",
	Long: `Concentration deals a square board of face-down cards. Turn over two
cards at a time; matching shapes stay face up, others flip back after a delay.
Clear the board in as little time as you can.

Available commands:
  play     - Play a board (default)
  list     - Show available games
  scores   - View result history
  serve    - Start SSH server for remote play
  web      - Start HTTP server with websocket play

Examples:
  concentration
  concentration play --seed 42
  concentration scores -i
  concentration serve --ssh :2222
  concentration web --http :8080`,
	PersistentPreRunE: setup,
	Run:               runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.concentration/results.db", "Path to results database (env "+envDBPath+")")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (env "+envLogLevel+")")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
}

// setup loads .env, applies environment overrides, builds the logger and
// loads the game config shared by every command.
func setup(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	flags := cmd.Flags()
	if v := os.Getenv(envDBPath); v != "" && !flags.Changed("db") {
		flagDBPath = v
	}
	if v := os.Getenv(envLogLevel); v != "" && !flags.Changed("log-level") {
		flagLogLevel = v
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "concentration",
		Level:           level,
	})

	cfg, err := config.LoadConcentration(flagConfig)
	if err != nil {
		return err
	}
	gameCfg = cfg
	concentration.SetConfigPath(flagConfig)

	if !flags.Changed("fps") {
		flagFPS = cfg.Timing.TickRate
	}
	logger.Debug("config loaded",
		"size", cfg.Board.Size,
		"pairs", cfg.Board.Pairs,
		"flip_delay", cfg.Timing.FlipDelay,
		"fps", flagFPS,
	)
	return nil
}
