package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"mintprep/internal/cidbatch"
	"mintprep/internal/cidcache"
	"mintprep/internal/config"
	"mintprep/internal/logging"
	"mintprep/internal/manifest"
	"mintprep/internal/metafile"
	"mintprep/internal/runlock"
	"mintprep/internal/services/cidtool"
	"mintprep/internal/tokenid"
)

type prepareOptions struct {
	file      string
	inputDir  string
	metadata  bool
	overwrite bool
	porcelain bool
	royalty   int
}

func newPrepareCommand(ctx *commandContext) *cobra.Command {
	var opts prepareOptions

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Compute CIDs for input files and write the manifest or metadata documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if opts.metadata && !cmd.Flags().Changed("royalty_percentage") {
				if cfg.Collection.RoyaltyPercentage == 0 {
					return errors.New("--royalty_percentage is required with --metadata")
				}
				opts.royalty = cfg.Collection.RoyaltyPercentage
			}
			logger := logging.NewComponentLogger(ctx.ensureLogger(), "prepare")
			return runPrepare(cmd, cfg, logger, opts)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "Process a single input file")
	cmd.Flags().StringVar(&opts.inputDir, "idir", "", "Process every matching file in a directory")
	cmd.Flags().IntVar(&opts.royalty, "royalty_percentage", 0, "Royalty percentage written into metadata documents (required with --metadata)")
	cmd.Flags().BoolVar(&opts.metadata, "metadata", false, "Generate metadata documents instead of the CID manifest")
	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false, "Regenerate metadata documents from the template, backing up existing files")
	cmd.Flags().BoolVar(&opts.porcelain, "porcelain", false, "Machine-readable progress output")
	_ = cmd.Flags().MarkHidden("porcelain")
	cmd.MarkFlagsMutuallyExclusive("file", "idir")
	cmd.MarkFlagsOneRequired("file", "idir")

	return cmd
}

func runPrepare(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, opts prepareOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	entries, inputDir, err := collectInputs(cfg, opts)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no input files found in %s", inputDir)
	}

	if err := cfg.EnsureOutputDirs(opts.metadata); err != nil {
		return err
	}

	lock, err := runlock.Acquire(cfg.Paths.OutputDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	client := buildClient(cfg, logger)

	paths := make([]string, len(entries))
	for i, entry := range entries {
		paths[i] = filepath.Join(inputDir, entry.Name)
	}

	out := cmd.OutOrStdout()
	var onDone func(int)
	var finish func()
	if !opts.porcelain && stdoutIsTerminal() {
		onDone, finish = renderProgress(out, len(paths))
	} else {
		fmt.Fprintf(out, "Calculating CID for %d images...\n", len(paths))
	}

	cids, err := cidbatch.Compute(ctx, client, paths, cfg.CID.Concurrency, onDone)
	if finish != nil {
		finish()
	}
	if err != nil {
		return err
	}

	if opts.metadata {
		if err := writeMetadata(out, cfg, logger, entries, cids, opts); err != nil {
			return err
		}
	} else {
		records, err := manifest.Build(entries, cids)
		if err != nil {
			return err
		}
		manifestPath := cfg.ManifestPath()
		fmt.Fprintf(out, "Generating metadata-cids.json file in: %s\n", manifestPath)
		if err := manifest.Write(manifestPath, records); err != nil {
			return err
		}
	}

	logger.Info("prepare complete",
		logging.Int("files", len(entries)),
		logging.Bool("metadata", opts.metadata))
	return nil
}

// collectInputs resolves the --file/--idir input into sorted (ID, name)
// entries plus the directory they live in. Manifest mode only considers JSON
// files; metadata mode takes everything the sidecar guard lets through.
func collectInputs(cfg *config.Config, opts prepareOptions) ([]tokenid.Entry, string, error) {
	if opts.file != "" {
		expanded, err := config.ExpandPath(opts.file)
		if err != nil {
			return nil, "", err
		}
		if _, err := os.Stat(expanded); err != nil {
			return nil, "", fmt.Errorf("input file/directory does not exist: %s", expanded)
		}
		entries, err := tokenid.Assign([]string{filepath.Base(expanded)})
		if err != nil {
			return nil, "", err
		}
		return entries, filepath.Dir(expanded), nil
	}

	dir, err := config.ExpandPath(strings.TrimRight(opts.inputDir, "/"))
	if err != nil {
		return nil, "", err
	}
	pattern := "*.json"
	if opts.metadata {
		pattern = "*"
	}
	files, err := tokenid.Discover(dir, pattern)
	if err != nil {
		return nil, "", err
	}
	entries, err := tokenid.Assign(files)
	if err != nil {
		return nil, "", err
	}
	return entries, dir, nil
}

// buildClient wires the external tool client, wrapped by the CID cache when
// enabled. Cache open failures degrade to uncached operation.
func buildClient(cfg *config.Config, logger *slog.Logger) cidtool.Client {
	var client cidtool.Client = cidtool.NewCLI(
		cidtool.WithBinary(cfg.CID.Command),
		cidtool.WithVersion(cfg.CID.Version),
	)
	if !cfg.CIDCache.Enabled {
		return client
	}
	store, err := cidcache.Open(cfg.CIDCache.Path)
	if err != nil {
		logger.Warn("cid cache unavailable, continuing without it",
			logging.String("path", cfg.CIDCache.Path),
			logging.Error(err))
		return client
	}
	return cidcache.NewClient(client, store, logger)
}

func writeMetadata(out io.Writer, cfg *config.Config, logger *slog.Logger, entries []tokenid.Entry, cids []string, opts prepareOptions) error {
	for i, entry := range entries {
		target := metafile.TargetPath(cfg.Paths.MetadataDir, entry.Name)
		result, err := metafile.Merge(target, cids[i], entry.ID, opts.royalty, opts.overwrite, logger)
		if err != nil {
			return err
		}
		switch {
		case result.Created && result.BackupPath != "":
			fmt.Fprintf(out, "Generating new metadata for %s to %s (ID #%03d)\n", entry.Name, target, entry.ID)
			fmt.Fprintf(out, "  Saved backup as %s\n", result.BackupPath)
		case result.Created:
			fmt.Fprintf(out, "Generating new metadata for %s to %s (ID #%03d)\n", entry.Name, target, entry.ID)
		default:
			fmt.Fprintf(out, "Updating CIDs for %s in %s (ID #%03d)\n", entry.Name, target, entry.ID)
		}
	}
	return nil
}
