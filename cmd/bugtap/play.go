package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bugtap/internal/config"
	"github.com/vovakirdan/bugtap/internal/core"
	"github.com/vovakirdan/bugtap/internal/platform/tui"
	"github.com/vovakirdan/bugtap/internal/registry"
	"github.com/vovakirdan/bugtap/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing the specified mode (bugtap when omitted).

Controls:
  Mouse      - Aim; click to squash the bug under the cursor
  P/Space    - Pause
  R          - Restart (after game over)
  Esc/B      - Leave a paused or finished game
  Ctrl+S     - Save a text screenshot to ~/.bugtap/screenshots
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slow start, longer timed rounds
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, shorter timed rounds
  fixed  - No progression, stays at config's initial level

Config search order (first found wins):
  --config path, ~/.bugtap/configs/bugtap.yaml, ./configs/bugtap.yaml,
  then the built-in defaults.

Examples:
  bugtap play
  bugtap play bugtap_timed --difficulty easy
  bugtap play --config ./my-bugtap.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "bugtap"
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'bugtap list' to see available modes.")
		os.Exit(1)
	}
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", flagDifficulty)
		os.Exit(1)
	}

	logger, closeLog, err := openLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	game, err := tui.NewGame(gameID, flagConfig, config.DifficultyPreset(flagDifficulty))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("playing without score storage", "db", flagDBPath, "error", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
