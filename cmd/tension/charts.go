package main

import (
	"io"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all charts",
		Long:  "Lists every chart with its desired outcome and progress, master charts first.",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	return withDeps(cmd.Context(), func(d *Deps) error {
		res, err := d.Query.HandleList(cmd.Context())
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), res, func(w io.Writer) {
			formatChartList(w, res.Charts)
		})
	})
}

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [chart-id]",
		Short: "Show a chart",
		Long:  "Shows a chart's desired outcome, current reality and action steps. Defaults to the current chart.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runView,
	}
}

func runView(cmd *cobra.Command, args []string) error {
	return withDeps(cmd.Context(), func(d *Deps) error {
		chartID, err := d.chartID(optionalArg(args, 0))
		if err != nil {
			return err
		}
		g, err := d.Query.HandleChart(cmd.Context(), chartID)
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), g, func(w io.Writer) {
			formatChartDetails(w, g, chartID)
		})
	})
}

func newProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress [chart-id]",
		Short: "Show chart progress",
		Long:  "Shows completed over total action steps and the next one due. Defaults to the current chart.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runProgress,
	}
}

func runProgress(cmd *cobra.Command, args []string) error {
	return withDeps(cmd.Context(), func(d *Deps) error {
		chartID, err := d.chartID(optionalArg(args, 0))
		if err != nil {
			return err
		}
		p, err := d.Chart.HandleProgress(cmd.Context(), chartID)
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), p, func(w io.Writer) {
			formatProgress(w, p)
		})
	})
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show graph statistics",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	return withDeps(cmd.Context(), func(d *Deps) error {
		s, err := d.Query.HandleStats(cmd.Context())
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), s, func(w io.Writer) {
			formatStats(w, s)
		})
	})
}
