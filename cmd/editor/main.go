// fall-escape-editor edits maze levels and saves them as custom levels.
//
// Usage:
//
//	fall-escape-editor                    - New 6x6 level
//	fall-escape-editor --width 10 -H 8    - New level of a given size
//	fall-escape-editor --id 3             - Edit stored custom level 3
//	fall-escape-editor --file maze.json   - Start from a level JSON file
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/re-ovo/fall-escape/common"
	"github.com/re-ovo/fall-escape/levels"
	"github.com/re-ovo/fall-escape/storage"
)

var (
	flagWidth  int
	flagHeight int
	flagID     int64
	flagFile   string
	flagDBPath string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "fall-escape-editor",
	Short:        "Grid editor for fall-escape levels",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runEditor,
}

func init() {
	rootCmd.Flags().IntVarP(&flagWidth, "width", "W", defaultGridSize, "grid width (3-20)")
	rootCmd.Flags().IntVarP(&flagHeight, "height", "H", defaultGridSize, "grid height (3-20)")
	rootCmd.Flags().Int64Var(&flagID, "id", 0, "edit the stored custom level with this ID")
	rootCmd.Flags().StringVar(&flagFile, "file", "", "start from a level JSON file")
	rootCmd.Flags().StringVar(&flagDBPath, "db", storage.DefaultPath, "path to the level database")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "debug logging")
}

func runEditor(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "editor",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("saving disabled", "db", flagDBPath, "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	lvl, err := initialLevel(store)
	if err != nil {
		return err
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("Fall Escape Editor")

	editor := NewEditor(lvl, flagID, store, logger)
	return ebiten.RunGame(editor)
}

func initialLevel(store *storage.Store) (levels.Level, error) {
	switch {
	case flagID != 0:
		if store == nil {
			return nil, fmt.Errorf("--id needs the level database")
		}
		c, err := store.Level(flagID)
		if err != nil {
			return nil, err
		}
		return c.Level, nil
	case flagFile != "":
		data, err := os.ReadFile(flagFile)
		if err != nil {
			return nil, err
		}
		lvl, err := parsePasted(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", flagFile, err)
		}
		return lvl, nil
	default:
		return newGrid(flagWidth, flagHeight), nil
	}
}
