package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/catmatch/internal/core"
	"github.com/vovakirdan/catmatch/internal/games/catmatch"
	"github.com/vovakirdan/catmatch/internal/platform/tui"
	"github.com/vovakirdan/catmatch/internal/registry"
	"github.com/vovakirdan/catmatch/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing. Without a game ID a selector offers the rules
variant, the difficulty and the replay journal.

Controls:
  Arrows     - Move the cursor
  Space      - Select a tile, then a neighbour to swap
  Esc/X      - Drop the selection
  H          - Show a hint
  P          - Pause
  R          - Restart with a new board
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - 120 seconds, 6 tile kinds
  normal - 90 seconds, 9 tile kinds
  hard   - 60 seconds, 9 tile kinds on a 7x7 board

Examples:
  catmatch play
  catmatch play catmatch --difficulty easy
  catmatch play catmatch_strict --seed 42
  catmatch play catmatch --config ./my-catmatch.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runPlay(cmd *cobra.Command, args []string) {
	logger, logFile, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	// Get terminal size early for the selector
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open the replay journal
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay journal: %v\n", err)
		logger.Warn("could not open replay journal", "path", flagDBPath, "error", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	gameID := ""
	difficulty := flagDifficulty
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'catmatch list' to see available games.")
			os.Exit(1)
		}
	}

	for gameID == "" {
		selection, selErr := tui.RunSelector(width, height)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}
		// User quit
		if selection == nil {
			return
		}

		if !selection.Journal {
			gameID = selection.GameID
			if difficulty == "" {
				difficulty = string(selection.Difficulty)
			}
			break
		}

		if store == nil {
			fmt.Fprintln(os.Stderr, "Replay journal is not available.")
			return
		}
		goBack, jErr := tui.RunJournal(store, width, height)
		if jErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", jErr)
			os.Exit(1)
		}
		if !goBack {
			return
		}
	}

	game, err := registry.Create(gameID, registry.Options{
		ConfigPath: flagConfig,
		Difficulty: difficulty,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// A nil *Store must not reach the model as a non-nil interface.
	var saver catmatch.ReplaySaver
	if store != nil {
		saver = store
	}

	if runErr := tui.Run(game, saver, cfg, logger); runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}
