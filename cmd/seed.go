package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/skylark/core/store"
	"github.com/kilianp07/skylark/infra/memstore"
)

var seedFrom string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a YAML seed into the configured data store",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedFrom, "from", "", "seed file keyed by table name")
	_ = seedCmd.MarkFlagRequired("from")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	src, err := memstore.LoadFile(seedFrom)
	if err != nil {
		return err
	}
	ds, err := store.New(cfg.Store)
	if err != nil {
		return fmt.Errorf("data store %s: %w", cfg.Store.Type, err)
	}
	defer store.Close(ds)
	loader, ok := ds.(store.Loader)
	if !ok {
		return fmt.Errorf("data store %s cannot be seeded", cfg.Store.Type)
	}
	ctx := cmd.Context()
	for _, t := range store.Tables {
		rows, err := src.Read(ctx, t)
		if err != nil {
			return err
		}
		if err := loader.Load(ctx, t, rows); err != nil {
			return fmt.Errorf("seed %s: %w", t, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows\n", t, len(rows))
	}
	return nil
}
