package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"mintprep/internal/logging"
	"mintprep/internal/traits"
)

func newExpandCommand(ctx *commandContext) *cobra.Command {
	var clear bool
	var startCID int

	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Expand the trait table into per-token metadata documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := logging.NewComponentLogger(ctx.ensureLogger(), "expand")

			if clear {
				if err := os.RemoveAll(cfg.Paths.GeneratedDir); err != nil {
					return fmt.Errorf("clear generated directory: %w", err)
				}
			}
			if err := cfg.EnsureGeneratedDirs(); err != nil {
				return err
			}

			if cmd.Flags().Changed("cid") {
				cfg.Collection.ImagesCID = strconv.Itoa(startCID)
			}
			if cfg.Collection.ImagesCID == "" {
				return errors.New("images CID is not set; use --cid, collection.images_cid, or the IMAGES_CID env var")
			}

			records, err := traits.LoadRecords(cfg.TraitsPath())
			if err != nil {
				return err
			}

			opts := traits.Options{
				Names: traits.Names{
					Collection: cfg.Collection.Name,
					Layers:     cfg.LayerNames(),
				},
				BaseURI:           cfg.BaseURI(),
				RoyaltyPercentage: cfg.Collection.RoyaltyPercentage,
				Artist:            cfg.Collection.Artist,
				Minter:            cfg.Collection.Minter,
			}

			count, err := traits.Generate(cfg.Paths.GeneratedDir, opts, records)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d metadata files in %s\n", count, cfg.Paths.GeneratedDir)
			logger.Info("expand complete",
				logging.Int("tokens", count),
				logging.String("generated_dir", cfg.Paths.GeneratedDir))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&clear, "clear", "c", false, "Empty the generated directory before writing")
	cmd.Flags().IntVar(&startCID, "cid", 0, "Override the configured images CID counter")

	return cmd
}
