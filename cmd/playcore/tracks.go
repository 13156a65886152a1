// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ManuGH/playcore/internal/tracks"
)

func newTracksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tracks [SCENARIO]",
		Short: "Print the track catalogs a scenario exposes",
		Long:  "Print the quality, audio and subtitle catalogs of a builtin scenario name or scenario file (default vod).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := "vod"
			if len(args) == 1 {
				ref = args[0]
			}
			sc, err := loadScenario(ref)
			if err != nil {
				return err
			}
			return printCatalogs(cmd.OutOrStdout(), tracks.BuildCatalogs(sc.Tracks))
		},
	}
}

func printCatalogs(w io.Writer, c tracks.Catalogs) error {
	if ar, ok := c.AspectRatio.Get(); ok {
		fmt.Fprintf(w, "aspect ratio: %.3f\n", ar)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tTITLE\tKEY\tDEFAULT")
	for _, list := range [][]tracks.Descriptor{c.Quality, c.Audio, c.Subtitle} {
		for _, d := range list {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Kind, d.Title, d.Key(), strconv.FormatBool(d.Default))
		}
	}
	return tw.Flush()
}
