// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ManuGH/playcore/internal/config"
	"github.com/ManuGH/playcore/internal/media"
)

func newClassifyCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classify URL...",
		Short: "Show the media type of each URL and whether the player accepts it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader(root.configPath).Load()
			if err != nil {
				return err
			}
			supported := cfg.MediaTypes()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "URL\tTYPE\tSTATUS")
			for _, u := range args {
				status := "supported"
				if _, err := media.BuildSource(u, cfg.Player.UserAgent, supported); err != nil {
					switch {
					case errors.Is(err, media.ErrUnsupportedMediaType):
						status = "unsupported"
					default:
						status = "invalid"
					}
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", u, media.Classify(u), status)
			}
			return tw.Flush()
		},
	}
}
