// Command ops is the operational CLI for a guidepost data directory: backup
// and restore the whole directory, inspect archives, and dump the persisted
// guidance state.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"guidepost/internal/ops"
	"guidepost/internal/store"
)

var dataDir string

func main() {
	root := &cobra.Command{
		Use:           "ops",
		Short:         "Operational tooling for a guidepost data directory",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "path to the data directory")

	root.AddCommand(backupCmd(), restoreCmd(), listCmd(), stateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func backupCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Archive the data directory to a .tar.gz",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = fmt.Sprintf("guidepost-backup-%s.tar.gz",
					time.Now().UTC().Format("20060102-150405"))
			}
			if err := ops.BackupDataDir(dataDir, out); err != nil {
				return err
			}
			fmt.Printf("backed up %s -> %s\n", dataDir, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output archive path (default timestamped)")
	return cmd
}

func restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <archive.tar.gz>",
		Short: "Unpack a backup archive into the data directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ops.RestoreDataDir(args[0], dataDir); err != nil {
				return err
			}
			fmt.Printf("restored %s -> %s\n", args[0], dataDir)
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <archive.tar.gz>",
		Short: "List the files inside a backup archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := ops.ListArchive(args[0])
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Println(e)
			}
			return nil
		},
	}
}

func stateCmd() *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Dump persisted guidance state from the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := store.OpenSQLite(filepath.Join(dataDir, "guidance.db"))
			if err != nil {
				return err
			}
			defer kv.Close()

			if key == "" {
				keys, err := kv.Keys()
				if err != nil {
					return err
				}
				if len(keys) == 0 {
					fmt.Println("store is empty")
					return nil
				}
				for _, k := range keys {
					fmt.Println(k)
				}
				return nil
			}

			raw, ok, err := kv.Get(key)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("key %q not found", key)
			}

			// Pretty-print when the value is JSON, otherwise dump raw.
			var v any
			if err := json.Unmarshal([]byte(raw), &v); err == nil {
				b, _ := json.MarshalIndent(v, "", "  ")
				fmt.Println(string(b))
				return nil
			}
			fmt.Println(raw)
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "print the value for a single key (default lists keys)")
	return cmd
}
