// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ManuGH/folio/internal/config"
	xlog "github.com/ManuGH/folio/internal/log"
	"github.com/ManuGH/folio/internal/portfolio"
	"github.com/ManuGH/folio/internal/version"
)

// defaultSettingsFile is picked up from the working directory when neither
// --config nor FOLIO_CONFIG names a file.
const defaultSettingsFile = "settings.yaml"

type rootOptions struct {
	configPath string
	envFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "folio",
		Short:        "Personal portfolio site",
		Long:         "Serve, render and edit a JSON-driven personal portfolio page.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.loadEnv()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to settings file (YAML)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file applied before settings are read")

	root.AddCommand(
		newServeCmd(opts),
		newRenderCmd(opts),
		newConfigCmd(opts),
		newExperienceCmd(opts),
		newVersionCmd(),
	)
	return root
}

// loadEnv applies the dotenv file. Variables already set in the process win.
func (o *rootOptions) loadEnv() error {
	if o.envFile == "" {
		return nil
	}
	if err := godotenv.Load(o.envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", o.envFile, err)
	}
	return nil
}

// settingsPath resolves the settings file: --config, then FOLIO_CONFIG, then
// settings.yaml in the working directory when present.
func (o *rootOptions) settingsPath() string {
	if p := strings.TrimSpace(o.configPath); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv("FOLIO_CONFIG")); p != "" {
		return p
	}
	if _, err := os.Stat(defaultSettingsFile); err == nil {
		return defaultSettingsFile
	}
	return ""
}

func (o *rootOptions) loadSettings() (config.AppConfig, *config.Loader, error) {
	path := o.settingsPath()
	loader := config.NewLoader(path, version.Version)
	cfg, err := loader.Load()
	if err != nil {
		if path == "" {
			return config.AppConfig{}, nil, fmt.Errorf("load settings: %w", err)
		}
		return config.AppConfig{}, nil, fmt.Errorf("load settings from %s: %w", path, err)
	}
	return cfg, loader, nil
}

// configureCLILogging keeps stdout clean for command output.
func configureCLILogging(w io.Writer, level string) {
	xlog.Configure(xlog.Config{
		Level:   level,
		Output:  w,
		Service: "folio",
		Version: version.Version,
	})
}

// openDocument loads settings and the portfolio document for one-shot
// commands. No preference store is attached.
func (o *rootOptions) openDocument(cmd *cobra.Command) (config.AppConfig, *portfolio.Holder, error) {
	configureCLILogging(cmd.ErrOrStderr(), "warn")
	cfg, _, err := o.loadSettings()
	if err != nil {
		return config.AppConfig{}, nil, err
	}
	configureCLILogging(cmd.ErrOrStderr(), quieter(cfg.LogLevel))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	holder := portfolio.NewHolder(portfolio.NewLoader(cfg.Portfolio.Source, cfg.Portfolio.FetchTimeout), nil)
	holder.Load(ctx)
	return cfg, holder, nil
}

// quieter raises info to warn so one-shot commands only report problems.
func quieter(level string) string {
	switch level {
	case "", "info":
		return "warn"
	default:
		return level
	}
}
