// catmatch is a timed tile-matching puzzle for the terminal.
//
// Usage:
//
//	catmatch list              - List available game variants
//	catmatch play [game]       - Play a variant (opens the selector without one)
//	catmatch replays [game]    - Browse the replay verification journal
//	catmatch replay <id>       - Re-run a journaled session and check its score
//	catmatch config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set frame rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible boards
//	--db <path>          - Set journal path (default: ~/.catmatch/replays.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--log-file <path>    - Log destination (default: ~/.catmatch/catmatch.log)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/catmatch/internal/games/catmatch"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "catmatch",
	Short: "Cat Match - a timed match-3 puzzle in your terminal",
	Long: `Cat Match is a terminal tile-matching puzzle. Swap neighbouring
tiles to line up three or more of a kind before the countdown runs out.
Cleared tiles fall and new ones drop in, so one swap can cascade.

Available commands:
  list     - Show the game variants
  play     - Play a variant
  replays  - Browse recorded sessions for verification
  replay   - Verify a recorded session
  config   - Print the effective configuration

Examples:
  catmatch play
  catmatch play catmatch --difficulty hard
  catmatch replays --plain
  catmatch replay 12`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.catmatch/replays.db", "Path to replay journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.catmatch/catmatch.log", "Log file path")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}
