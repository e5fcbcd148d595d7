// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ManuGH/folio/internal/config"
	"github.com/ManuGH/folio/internal/portfolio"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the portfolio document",
	}
	cmd.AddCommand(newConfigGetCmd(opts), newConfigSetCmd(opts), newConfigValidateCmd(opts))
	return cmd
}

func newConfigGetCmd(opts *rootOptions) *cobra.Command {
	var def string
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value at a dotted key",
		Long:  "Print the value at a dotted key such as personal.name. Missing or empty values print the default.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, holder, err := opts.openDocument(cmd)
			if err != nil {
				return err
			}
			var fallback any
			if cmd.Flags().Changed("default") {
				fallback = parseValue(def)
			}
			return printJSON(cmd.OutOrStdout(), holder.Get(args[0], fallback))
		},
	}
	cmd.Flags().StringVar(&def, "default", "", "value printed when the key is missing (JSON or plain text)")
	return cmd
}

func newConfigSetCmd(opts *rootOptions) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "set <key> <json-value>",
		Short: "Assign a value at a dotted key",
		Long: "Assign a value at a dotted key, creating intermediate objects. " +
			"The value is parsed as JSON; anything else is stored as a string. " +
			"Without --write the updated document is printed.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, holder, err := opts.openDocument(cmd)
			if err != nil {
				return err
			}
			if write {
				if config.IsRemoteSource(cfg.Portfolio.Source) {
					return fmt.Errorf("--write: source %s is remote", cfg.Portfolio.Source)
				}
				// Never overwrite a source that failed to load with the built-in document.
				if holder.Current().Fallback() {
					return fmt.Errorf("--write: %s could not be loaded", cfg.Portfolio.Source)
				}
			}

			if err := holder.Update(args[0], parseValue(args[1])); err != nil {
				return fmt.Errorf("set %s: %w", args[0], err)
			}

			if !write {
				data, err := holder.Marshal()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := holder.WriteFile(cfg.Portfolio.Source); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s in %s\n", args[0], cfg.Portfolio.Source)
			return nil
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "write the document back to its source file")
	return cmd
}

var errDocumentUnavailable = errors.New("portfolio document unavailable")

func newConfigValidateCmd(opts *rootOptions) *cobra.Command {
	var show bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the settings file and the portfolio document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configureCLILogging(cmd.ErrOrStderr(), "error")
			cfg, _, err := opts.loadSettings()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if path := opts.settingsPath(); path != "" {
				fmt.Fprintf(out, "settings: %s is valid\n", path)
			} else {
				fmt.Fprintln(out, "settings: defaults and environment are valid")
			}
			if show {
				data, err := yaml.Marshal(config.Redacted(cfg))
				if err != nil {
					return fmt.Errorf("encode settings: %w", err)
				}
				fmt.Fprintf(out, "---\n%s---\n", data)
			}

			res := portfolio.NewLoader(cfg.Portfolio.Source, cfg.Portfolio.FetchTimeout).Load(cmd.Context())
			if res.Err != nil {
				return fmt.Errorf("%w: %s: %w", errDocumentUnavailable, cfg.Portfolio.Source, res.Err)
			}
			if len(res.Missing) > 0 {
				fmt.Fprintf(out, "portfolio: %s is missing sections: %s\n", cfg.Portfolio.Source, strings.Join(res.Missing, ", "))
				return nil
			}
			fmt.Fprintf(out, "portfolio: %s is valid\n", cfg.Portfolio.Source)
			return nil
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "print the effective settings with secrets masked")
	return cmd
}

// parseValue reads s as JSON, keeping it as a plain string when it is not.
func parseValue(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
