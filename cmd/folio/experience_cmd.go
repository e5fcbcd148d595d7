// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

type experienceView struct {
	Years   int    `json:"years"`
	Label   string `json:"label"`
	Display string `json:"display"`
	Source  string `json:"source"`
}

func newExperienceCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "experience",
		Short: "Print the years-of-experience estimate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, holder, err := opts.openDocument(cmd)
			if err != nil {
				return err
			}
			est := holder.Current().Doc.EstimateExperience(time.Now())
			if asJSON {
				return printJSON(cmd.OutOrStdout(), experienceView{
					Years:   est.Years,
					Label:   est.Label,
					Display: est.Display(),
					Source:  string(est.Source),
				})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s years (%s)\n", est.Display(), est.Source)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the estimate as JSON")
	return cmd
}
