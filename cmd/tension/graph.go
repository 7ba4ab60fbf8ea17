package main

import (
	"io"

	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search entities by name, type or observation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSearch,
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	return withDeps(cmd.Context(), func(d *Deps) error {
		g, err := d.Graph.HandleSearch(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), g, func(w io.Writer) {
			formatEntities(w, g.Entities)
		})
	})
}

func newBeatsCmd() *cobra.Command {
	var chart string

	cmd := &cobra.Command{
		Use:   "beats",
		Short: "List narrative beats",
		Long:  "Lists narrative beats ordered by act, optionally only those of --chart.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBeats(cmd, chart)
		},
	}

	cmd.Flags().StringVarP(&chart, "chart", "c", "", "Only beats of this chart")

	return cmd
}

func runBeats(cmd *cobra.Command, chart string) error {
	return withDeps(cmd.Context(), func(d *Deps) error {
		beats, err := d.Narrative.HandleList(cmd.Context(), chart)
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), beats, func(w io.Writer) {
			formatBeats(w, beats)
		})
	})
}
