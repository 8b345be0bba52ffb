// bugtap is a terminal arcade game: bugs crawl in from the edges toward the
// food and you tap them with the mouse before they eat it all.
//
// Usage:
//
//	bugtap list              - List available game modes
//	bugtap play [mode]       - Play a mode (default: bugtap)
//	bugtap menu              - Start menu to pick modes interactively
//	bugtap serve             - Start SSH server for remote play
//	bugtap scores <mode>     - Show high scores and recent runs
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.bugtap/scores.db)
//	--log <path>    - Write a debug log to this file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/bugtap/internal/games/bugtap"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogPath  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bugtap",
	Short: "Bug Tap - tap the bugs before they eat your food",
	Long: `Bug Tap is a terminal arcade game played with the mouse.

Bugs crawl in from the edges of the screen toward the food in the middle.
Click a bug to squash it and score its points. In the classic mode the game
ends when the bugs have eaten everything; in the timed mode you win if no
live bug is left when the clock runs out.

Available commands:
  list     - Show all game modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores and recent runs

Examples:
  bugtap play
  bugtap play bugtap_timed --difficulty hard
  bugtap menu
  bugtap serve --ssh :2222
  bugtap scores bugtap`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bugtap/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write a log to this file (the TUI owns the terminal)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// openLog returns the logger for TUI commands. Without --log everything is
// discarded, since stderr is hidden behind the alternate screen.
func openLog() (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	if flagLogPath == "" {
		return log.New(io.Discard), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(flagLogPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "bugtap",
		Level:           level,
	})
	return logger, func() { f.Close() }, nil
}
