// fall-escape is a maze puzzle: rotate the maze until the ball falls out.
//
// Usage:
//
//	fall-escape                      - Play from the first level
//	fall-escape --level 03_spiral    - Start at a specific level
//	fall-escape levels list          - List built-in and custom levels
//	fall-escape levels export <file> - Write custom levels as JSON
//	fall-escape levels import <file> - Add levels from a JSON file
//	fall-escape levels clear         - Delete all custom levels
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/re-ovo/fall-escape/common"
	"github.com/re-ovo/fall-escape/storage"
)

var (
	flagLevel   string
	flagDebug   bool
	flagDBPath  string
	flagMuted   bool
	flagMonitor bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "fall-escape",
	Short:        "Rotate the maze and let the ball escape",
	SilenceUsage: true,
	RunE:         runGame,
}

func init() {
	rootCmd.Flags().StringVar(&flagLevel, "level", "", "start at this level (file name or custom:<id>)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "debug logging and prefab hot reload")
	rootCmd.Flags().BoolVar(&flagMuted, "muted", false, "keep the music off")
	rootCmd.Flags().BoolVarP(&flagMonitor, "monitor", "m", false, "use base monitor instead of primary (for multi-monitor setups)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "path to the level database (empty disables it)")

	rootCmd.AddCommand(levelsCmd)
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "fall-escape",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func runGame(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	var store *storage.Store
	if flagDBPath != "" {
		s, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("custom levels unavailable", "db", flagDBPath, "err", err)
		} else {
			store = s
			defer store.Close()
		}
	}

	if flagMonitor {
		if monitors := ebiten.AppendMonitors(nil); len(monitors) > 0 {
			ebiten.SetMonitor(monitors[0])
		}
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("Fall Escape")

	game, err := NewGame(GameOptions{
		Level:  flagLevel,
		Debug:  flagDebug,
		Muted:  flagMuted,
		Store:  store,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}
