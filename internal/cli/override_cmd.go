package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/obreport/internal/cli/formatter"
	"github.com/alexanderramin/obreport/internal/domain"
)

func newOverrideCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "override",
		Aliases: []string{"preship"},
		Short:   "Manage preshipment override drafts",
		Long: `Preshipment overrides saved for a date are merged into every daily
report generated for that date, before --overrides and --override values.`,
	}

	cmd.AddCommand(
		newOverrideAddCmd(app),
		newOverrideListCmd(app),
		newOverrideRemoveCmd(app),
		newOverrideClearCmd(app),
	)

	return cmd
}

func newOverrideAddCmd(app *App) *cobra.Command {
	var date, worker string
	var qty int
	var hours float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a preshipment override for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			o := domain.PreshipmentOverride{Worker: strings.TrimSpace(worker), Quantity: qty, EWH: hours}
			if err := o.Validate(); err != nil {
				return err
			}
			draft, err := app.saveOverrideUseCase().Save(cmd.Context(), date, o)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf(
				"Saved %s for %s: %d units in %s h", draft.Worker, draft.ReportDate, draft.Quantity, formatter.Hours(draft.EWH))))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Report date YYYY-MM-DD")
	cmd.Flags().StringVar(&worker, "worker", "", "Worker name")
	cmd.Flags().IntVar(&qty, "qty", 0, "Preshipment quantity")
	cmd.Flags().Float64Var(&hours, "ewh", 0, "Preshipment effective work hours")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("worker")
	_ = cmd.MarkFlagRequired("qty")
	_ = cmd.MarkFlagRequired("ewh")

	return cmd
}

func newOverrideListCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List preshipment overrides saved for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts, err := app.Overrides.List(cmd.Context(), date)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDrafts(date, drafts))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Report date YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newOverrideRemoveCmd(app *App) *cobra.Command {
	var date, worker string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove one worker's preshipment override",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Overrides.Remove(cmd.Context(), date, worker); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Removed %s from %s", worker, date)))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Report date YYYY-MM-DD")
	cmd.Flags().StringVar(&worker, "worker", "", "Worker name")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("worker")
	return cmd
}

func newOverrideClearCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every preshipment override saved for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Overrides.Clear(cmd.Context(), date)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Cleared %d overrides for %s", n, date)))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Report date YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}
