// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"time"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/ManuGH/folio/internal/daemon"
	"github.com/ManuGH/folio/internal/render"
	"github.com/ManuGH/folio/internal/theme"
)

type renderOptions struct {
	out   string
	theme string
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	ro := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the page to a static HTML file",
		Long:  "Load the portfolio document and write the rendered page. The file is replaced atomically; \"-\" writes to stdout.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts, ro, time.Now)
		},
	}
	cmd.Flags().StringVarP(&ro.out, "out", "o", "index.html", "output file, or - for stdout")
	cmd.Flags().StringVar(&ro.theme, "theme", "", "theme to render (dark or light; defaults to theme.default)")
	return cmd
}

func runRender(cmd *cobra.Command, opts *rootOptions, ro *renderOptions, now func() time.Time) error {
	cfg, holder, err := opts.openDocument(cmd)
	if err != nil {
		return err
	}

	name := ro.theme
	if name == "" {
		name = cfg.Theme.Default
	}
	t, err := theme.Parse(name)
	if err != nil {
		return fmt.Errorf("--theme: %w", err)
	}

	clock, err := daemon.ClockFor(cfg.Clock)
	if err != nil {
		return err
	}
	page, err := render.New(render.Options{Clock: clock, Now: now}).Render(cmd.Context(), holder.Current(), t)
	if err != nil {
		return err
	}

	if ro.out == "-" {
		_, err := cmd.OutOrStdout().Write(page)
		return err
	}
	if err := renameio.WriteFile(ro.out, page, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", ro.out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes, %s theme)\n", ro.out, len(page), t)
	return nil
}
