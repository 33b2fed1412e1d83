package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"shoebox/internal/catalog"
	"shoebox/internal/config"
	"shoebox/internal/devices"
	"shoebox/internal/ingest"
	"shoebox/internal/logging"
	"shoebox/internal/preflight"
	"shoebox/internal/services"
	"shoebox/internal/services/exiftool"
)

func newScanCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan-directory <dir>",
		Short: "Ingest media files from a directory tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			logger, err := cmdCtx.logger()
			if err != nil {
				return err
			}
			store, cfg, err := cmdCtx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			destRoot, err := resolveDestination(ctx, store, cmd)
			if err != nil {
				return err
			}
			if err := preflight.Evaluate(preflight.RunAll(cfg, destRoot)); err != nil {
				return err
			}

			extractor := exiftool.NewClient(cfg.ExiftoolBinary(), time.Duration(cfg.ExifTool.TimeoutSeconds)*time.Second)
			resolver := devices.NewTerminalResolver(store)
			registry := devices.NewRegistry(store, resolver, logging.NewComponentLogger(logger, "devices"))
			orchestrator := ingest.New(cfg, store, registry, extractor, destRoot, logging.NewComponentLogger(logger, "ingest"))

			run, err := orchestrator.Scan(ctx, root)
			if err != nil {
				return err
			}
			printRunSummary(cmd, run)
			return nil
		},
	}
}

// resolveDestination reads the destination root from the catalog, prompting
// for it on first run. The value is written once and read-only afterwards.
func resolveDestination(ctx context.Context, store *catalog.Store, cmd *cobra.Command) (string, error) {
	destRoot, err := store.Destination(ctx)
	if err == nil {
		return destRoot, nil
	}
	if !errors.Is(err, services.ErrNotFound) {
		return "", err
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return "", services.Wrap(services.ErrConfiguration, "scan", "destination",
			"no destination root is set and stdin is not a terminal; run interactively once to set it", nil)
	}

	fmt.Fprint(cmd.ErrOrStderr(), "No destination root is set.\nDestination root: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read destination root: %w", err)
	}
	destRoot, err = config.ExpandPath(strings.TrimSpace(line))
	if err != nil {
		return "", err
	}
	if destRoot == "" {
		return "", services.Wrap(services.ErrConfiguration, "scan", "destination", "destination root must not be empty", nil)
	}
	if err := os.MkdirAll(destRoot, 0o755); err != nil {
		return "", fmt.Errorf("create destination root: %w", err)
	}
	if err := store.SetDestination(ctx, destRoot); err != nil {
		return "", err
	}
	return destRoot, nil
}

func printRunSummary(cmd *cobra.Command, run *catalog.Run) {
	rows := [][]string{
		{"Seen", fmt.Sprintf("%d", run.FilesSeen)},
		{"Skipped", fmt.Sprintf("%d", run.FilesSkipped)},
		{"Duplicates", fmt.Sprintf("%d", run.Duplicates)},
		{"Copied", fmt.Sprintf("%d", run.FilesCopied)},
		{"Cataloged", fmt.Sprintf("%d", run.FilesCataloged)},
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scan %s %s\n", run.ID, run.Status)
	fmt.Fprintln(out, renderTable([]string{"Counter", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
}
