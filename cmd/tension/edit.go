package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/tension-core/internal/application/handlers"
)

func newCreateCmd() *cobra.Command {
	var in handlers.CreateChartInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a master chart",
		Long: `Creates a structural tension chart from a desired outcome, the current
reality and a due date. Each --step becomes an action step with a due date
spread evenly up to the chart's.

Examples:
  tension create -o "A published recipe website" -r "Twelve recipes in a notebook" -d 2026-12-01
  tension create -o "Conversational Spanish" -r "Know about fifty words" -d 2027-06-01 \
    -s "Finish a beginner course" -s "Hold a ten minute conversation"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, in)
		},
	}

	cmd.Flags().StringVarP(&in.DesiredOutcome, "outcome", "o", "", "Desired outcome (what you want to create)")
	cmd.Flags().StringVarP(&in.CurrentReality, "reality", "r", "", "Current reality (facts, not readiness)")
	cmd.Flags().StringVarP(&in.DueDate, "due", "d", "", "Due date (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().StringArrayVarP(&in.ActionSteps, "step", "s", nil, "Action step title (repeatable)")

	return cmd
}

func runCreate(cmd *cobra.Command, in handlers.CreateChartInput) error {
	return withDeps(cmd.Context(), func(d *Deps) error {
		res, err := d.Chart.HandleCreate(cmd.Context(), in)
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), res, func(w io.Writer) {
			fmt.Fprintf(w, "Created chart %s\n", res.ChartID)
			fmt.Fprintf(w, "  %d entities, %d relations\n", len(res.Entities), len(res.Relations))
		})
	})
}

func newAddActionCmd() *cobra.Command {
	var (
		chart string
		in    handlers.AddActionStepInput
	)

	cmd := &cobra.Command{
		Use:   "add-action <title>",
		Short: "Add an action step to a chart",
		Long: `Adds an action step as a sub-chart of the given chart, or of the current
chart when --chart is omitted. The step needs its own current reality.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.ActionStepTitle = args[0]
			return runAddAction(cmd, chart, in)
		},
	}

	cmd.Flags().StringVarP(&chart, "chart", "c", "", "Parent chart id")
	cmd.Flags().StringVarP(&in.CurrentReality, "reality", "r", "", "Current reality relative to this step")
	cmd.Flags().StringVarP(&in.DueDate, "due", "d", "", "Due date (defaults to midway to the parent's)")

	return cmd
}

func runAddAction(cmd *cobra.Command, chart string, in handlers.AddActionStepInput) error {
	return withDeps(cmd.Context(), func(d *Deps) error {
		parent, err := d.chartID(chart)
		if err != nil {
			return err
		}
		in.ParentChartID = parent

		res, err := d.Chart.HandleAddActionStep(cmd.Context(), in)
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), res, func(w io.Writer) {
			fmt.Fprintf(w, "Added action step %s to %s\n", res.ActionStepName, parent)
			fmt.Fprintf(w, "  chart: %s\n", res.ChartID)
		})
	})
}

func newTelescopeCmd() *cobra.Command {
	var in handlers.TelescopeInput

	cmd := &cobra.Command{
		Use:   "telescope <action-step-name>",
		Short: "Expand an action step into its own chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.ActionStepName = args[0]
			return runTelescope(cmd, in)
		},
	}

	cmd.Flags().StringVarP(&in.NewCurrentReality, "reality", "r", "", "Current reality of the new chart")
	cmd.Flags().StringArrayVarP(&in.InitialActionSteps, "step", "s", nil, "Sub-step title (repeatable)")

	return cmd
}

func runTelescope(cmd *cobra.Command, in handlers.TelescopeInput) error {
	return withDeps(cmd.Context(), func(d *Deps) error {
		res, err := d.Chart.HandleTelescope(cmd.Context(), in)
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), res, func(w io.Writer) {
			fmt.Fprintf(w, "Telescoped %s into chart %s (parent %s)\n", in.ActionStepName, res.ChartID, res.ParentChart)
		})
	})
}

func newRemoveActionCmd() *cobra.Command {
	var chart string

	cmd := &cobra.Command{
		Use:   "remove-action <action-step-name>",
		Short: "Remove an action step from a chart",
		Long:  "Removes an action step and every chart telescoped from it. The step must belong to --chart (or the current chart).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemoveAction(cmd, chart, args[0])
		},
	}

	cmd.Flags().StringVarP(&chart, "chart", "c", "", "Parent chart id")

	return cmd
}

func runRemoveAction(cmd *cobra.Command, chart, name string) error {
	return withDeps(cmd.Context(), func(d *Deps) error {
		parent, err := d.chartID(chart)
		if err != nil {
			return err
		}
		in := handlers.RemoveActionStepInput{ParentChartID: parent, ActionStepName: name}
		if err := d.Chart.HandleRemove(cmd.Context(), in); err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), in, func(w io.Writer) {
			fmt.Fprintf(w, "Removed %s from %s\n", name, parent)
		})
	})
}

func newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <name>",
		Short: "Mark an action step or desired outcome complete",
		Args:  cobra.ExactArgs(1),
		RunE:  runComplete,
	}
}

func runComplete(cmd *cobra.Command, args []string) error {
	return withDeps(cmd.Context(), func(d *Deps) error {
		res, err := d.Chart.HandleComplete(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), res, func(w io.Writer) {
			fmt.Fprintf(w, "Completed %s\n", res.Name)
			if res.ChartCompleted {
				fmt.Fprintf(w, "  chart %s is complete\n", res.ChartID)
			}
			if res.PropagatedTo != "" {
				fmt.Fprintf(w, "  recorded in %s\n", res.PropagatedTo)
			}
		})
	})
}

func newUpdateProgressCmd() *cobra.Command {
	var in handlers.UpdateProgressInput

	cmd := &cobra.Command{
		Use:   "update-progress <action-step-name> <note>",
		Short: "Record progress on an action step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.ActionStepName = args[0]
			in.ProgressObservation = args[1]
			return runUpdateProgress(cmd, in)
		},
	}

	cmd.Flags().BoolVar(&in.UpdateCurrentReality, "update-reality", false, "Also record the note in the current reality")

	return cmd
}

func runUpdateProgress(cmd *cobra.Command, in handlers.UpdateProgressInput) error {
	return withDeps(cmd.Context(), func(d *Deps) error {
		if err := d.Chart.HandleUpdateProgress(cmd.Context(), in); err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), in, func(w io.Writer) {
			fmt.Fprintf(w, "Progress recorded on %s\n", in.ActionStepName)
		})
	})
}

func newUpdateRealityCmd() *cobra.Command {
	var chart string

	cmd := &cobra.Command{
		Use:   "update-reality <observation>...",
		Short: "Add observations to a chart's current reality",
		Long:  "Appends observations not already present to the current reality of --chart (or the current chart).",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdateReality(cmd, chart, args)
		},
	}

	cmd.Flags().StringVarP(&chart, "chart", "c", "", "Chart id")

	return cmd
}

func runUpdateReality(cmd *cobra.Command, chart string, observations []string) error {
	return withDeps(cmd.Context(), func(d *Deps) error {
		chartID, err := d.chartID(chart)
		if err != nil {
			return err
		}
		res, err := d.Chart.HandleUpdateReality(cmd.Context(), handlers.UpdateRealityInput{
			ChartID:         chartID,
			NewObservations: observations,
		})
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), res, func(w io.Writer) {
			if len(res.Added) == 0 {
				fmt.Fprintf(w, "No new observations for %s\n", chartID)
				return
			}
			fmt.Fprintf(w, "Added to %s: %s\n", chartID, strings.Join(res.Added, "; "))
		})
	})
}

func newUpdateOutcomeCmd() *cobra.Command {
	var chart string

	cmd := &cobra.Command{
		Use:   "update-outcome <desired-outcome>",
		Short: "Replace a chart's desired outcome",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdateOutcome(cmd, chart, args[0])
		},
	}

	cmd.Flags().StringVarP(&chart, "chart", "c", "", "Chart id")

	return cmd
}

func runUpdateOutcome(cmd *cobra.Command, chart, outcome string) error {
	return withDeps(cmd.Context(), func(d *Deps) error {
		chartID, err := d.chartID(chart)
		if err != nil {
			return err
		}
		in := handlers.UpdateOutcomeInput{ChartID: chartID, NewDesiredOutcome: outcome}
		if err := d.Chart.HandleUpdateOutcome(cmd.Context(), in); err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), in, func(w io.Writer) {
			fmt.Fprintf(w, "Desired outcome updated for %s\n", chartID)
		})
	})
}

func newSetDateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-date <chart-id> <date>",
		Short: "Set a chart's due date",
		Args:  cobra.ExactArgs(2),
		RunE:  runSetDate,
	}
}

func runSetDate(cmd *cobra.Command, args []string) error {
	return withDeps(cmd.Context(), func(d *Deps) error {
		in := handlers.SetDueDateInput{ChartID: args[0], DueDate: args[1]}
		if err := d.Chart.HandleSetDueDate(cmd.Context(), in); err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), in, func(w io.Writer) {
			fmt.Fprintf(w, "Due date of %s set to %s\n", in.ChartID, in.DueDate)
		})
	})
}
