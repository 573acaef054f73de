package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sufgraph/suf/internal/storage"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage saved class-table snapshots",
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, err := openRepositories()
		if err != nil {
			return err
		}
		defer repos.Close()

		names, err := repos.Snapshot.ListSnapshots(context.Background())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a saved snapshot's class table as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, err := openRepositories()
		if err != nil {
			return err
		}
		defer repos.Close()

		classes, err := repos.Snapshot.LoadSnapshot(context.Background(), args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(classes)
	},
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, err := openRepositories()
		if err != nil {
			return err
		}
		defer repos.Close()

		if err := repos.Snapshot.DeleteSnapshot(context.Background(), args[0]); err != nil {
			return err
		}
		GetLogger().Info("deleted snapshot %q", args[0])
		return nil
	},
}

var snapshotExportCmd = &cobra.Command{
	Use:   "export <name> <key>",
	Short: "Archive a saved snapshot to object storage under the given key",
	Long: `export loads a saved snapshot and uploads its JSON-encoded class
table to object storage under key. key must end in ".snapshot.json" —
internal/storage rejects any other suffix, since this storage backend
only ever archives one kind of object.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, key := args[0], args[1]

		repos, err := openRepositories()
		if err != nil {
			return err
		}
		defer repos.Close()

		classes, err := repos.Snapshot.LoadSnapshot(context.Background(), name)
		if err != nil {
			return err
		}

		data, err := json.Marshal(classes)
		if err != nil {
			return fmt.Errorf("failed to encode snapshot %q: %w", name, err)
		}

		store, err := storage.NewStorage(&GetConfig().Storage)
		if err != nil {
			return fmt.Errorf("failed to open object storage: %w", err)
		}

		if err := store.Upload(context.Background(), key, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("failed to upload snapshot %q to %q: %w", name, key, err)
		}

		GetLogger().Info("archived snapshot %q to %q", name, key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotListCmd, snapshotShowCmd, snapshotDeleteCmd, snapshotExportCmd)
}
