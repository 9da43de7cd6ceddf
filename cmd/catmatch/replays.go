package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/catmatch/internal/platform/tui"
	"github.com/vovakirdan/catmatch/internal/registry"
	"github.com/vovakirdan/catmatch/internal/storage"
)

var (
	flagReplaysLimit int
	flagReplaysPlain bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays [game]",
	Short: "Browse the replay verification journal",
	Long: `Lists recorded sessions newest first so each one can be re-run and
checked. Every entry holds a seed, the rules and the swaps; the recorded
score is only what the re-run must reproduce. Entries are never ranked by
score and nothing is carried into the next game.

Without --plain an interactive browser opens, where a session can be
verified or deleted.

Examples:
  catmatch replays
  catmatch replays catmatch_strict --plain
  catmatch replays --plain --limit 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplays,
}

func init() {
	replaysCmd.Flags().IntVar(&flagReplaysLimit, "limit", 20, "Number of sessions to show")
	replaysCmd.Flags().BoolVar(&flagReplaysPlain, "plain", false, "Print a plain table instead of the browser")
}

func runReplays(cmd *cobra.Command, args []string) {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if !flagReplaysPlain {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if _, err := tui.RunJournal(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		return
	}

	summaries, err := store.RecentReplays(gameID, flagReplaysLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching replays: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	if len(summaries) == 0 {
		fmt.Println("No sessions recorded yet.")
		return
	}

	fmt.Printf("%-6s  %-18s  %8s  %5s  %s\n", "ID", "Game", "Recorded", "Moves", "Date")
	fmt.Printf("%-6s  %-18s  %8s  %5s  %s\n", "--", "----", "--------", "-----", "----")
	for _, s := range summaries {
		fmt.Printf("%-6d  %-18s  %8d  %5d  %s\n",
			s.ID,
			registry.Title(s.GameID),
			s.FinalScore,
			s.MoveCount,
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
}
