package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/catmatch/internal/games/catmatch"
	"github.com/vovakirdan/catmatch/internal/storage"
)

var (
	flagReplayBoard bool
	flagReplaySteps bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-run a recorded session and check its score",
	Long: `Rebuilds a journaled session from its seed and rules, re-applies
every recorded swap and compares the result with the stored score.
Exits with status 1 when they differ.

Examples:
  catmatch replay 12
  catmatch replay 12 --board
  catmatch replay 12 --steps`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayBoard, "board", false, "Print the final board")
	replayCmd.Flags().BoolVar(&flagReplaySteps, "steps", false, "Print every cascade pass of every move")
}

func runReplay(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid replay ID %q\n", args[0])
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay journal: %v\n", err)
		os.Exit(1)
	}
	rec, err := store.ReplayByID(id)
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading replay: %v\n", err)
		os.Exit(1)
	}
	if rec == nil {
		fmt.Fprintf(os.Stderr, "Error: no replay with ID %d\n", id)
		os.Exit(1)
	}

	res, err := catmatch.Replay(*rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Replay %d failed: %v\n", id, err)
		os.Exit(1)
	}

	fmt.Printf("Replay %d (%s, seed %d)\n", id, rec.GameID, rec.Seed)
	fmt.Printf("  Moves:      %d\n", res.Moves)
	fmt.Printf("  Reshuffles: %d\n", res.Reshuffles)
	fmt.Printf("  Recorded:   %d\n", rec.FinalScore)
	fmt.Printf("  Replayed:   %d\n", res.Score)

	if flagReplaySteps {
		fmt.Println()
		for i, mv := range rec.Moves {
			fmt.Printf("Move %d at %ds: %s <-> %s\n", i+1, mv.Second, mv.A, mv.B)
			for _, step := range res.Steps[i] {
				fmt.Printf("  pass %d: %d groups, %d cleared, +%d\n",
					step.Pass, len(step.Groups), len(step.Cleared), step.ScoreDelta)
			}
		}
	}

	if flagReplayBoard {
		fmt.Println()
		fmt.Println(res.Final.String())
	}

	if !res.Matches(*rec) {
		fmt.Println("MISMATCH")
		os.Exit(1)
	}
	fmt.Println("OK")
}
