package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/re-ovo/fall-escape/levels"
	"github.com/re-ovo/fall-escape/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Manage custom levels",
}

var levelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in and custom levels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := loadEntries(store)
		if err != nil {
			return err
		}
		done, err := store.CompletedKeys()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-4s %-20s %-14s %-6s %s\n", "#", "KEY", "NAME", "SIZE", "BEST")
		for i, e := range entries {
			w, h := e.Level.Size()
			best := "-"
			if c, ok, err := store.BestCompletion(e.Key); err == nil && ok {
				best = fmt.Sprintf("%.1fs/%d", c.Seconds, c.Rotations)
			} else if done[e.Key] {
				best = "done"
			}
			fmt.Fprintf(out, "%-4d %-20s %-14s %-6s %s\n", i+1, e.Key, e.Name, fmt.Sprintf("%dx%d", w, h), best)
		}
		return nil
	},
}

var levelsExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write all custom levels to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		custom, err := store.Levels()
		if err != nil {
			return err
		}
		set := make([]levels.Level, 0, len(custom))
		for _, c := range custom {
			set = append(set, c.Level)
		}
		data, err := levels.EncodeSet(set)
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d levels to %s\n", len(set), args[0])
		return nil
	},
}

var levelsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Add the levels of a JSON file to the custom levels",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		set, err := levels.DecodeSet(data)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		added := 0
		for i, lvl := range set {
			if _, err := store.AddLevel(lvl); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipping level %d: %v\n", i+1, err)
				continue
			}
			added++
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d levels\n", added, len(set))
		return nil
	},
}

var levelsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every custom level",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.ClearLevels()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d levels\n", n)
		return nil
	},
}

func init() {
	levelsCmd.AddCommand(levelsListCmd, levelsExportCmd, levelsImportCmd, levelsClearCmd)
}

func openStore() (*storage.Store, error) {
	if flagDBPath == "" {
		return nil, fmt.Errorf("no level database (--db is empty)")
	}
	return storage.Open(flagDBPath)
}
