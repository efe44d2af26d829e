package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	obapp "github.com/alexanderramin/obreport/internal/app"
	"github.com/alexanderramin/obreport/internal/cli/formatter"
	"github.com/alexanderramin/obreport/internal/domain"
	"github.com/alexanderramin/obreport/internal/importer"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate daily and efficiency reports",
	}

	cmd.AddCommand(
		newReportDailyCmd(app),
		newReportEfficiencyCmd(app),
		newReportBothCmd(app),
		newReportHistoryCmd(app),
	)

	return cmd
}

// reportFlags are shared by the report subcommands.
type reportFlags struct {
	picking      string
	packing      string
	date         string
	time         string
	overrides    []string
	overrideFile string
	skipDrafts   bool
	interactive  bool
	out          string
	format       formatFlag
}

// formatFlag accepts only the known output formats.
type formatFlag obapp.OutputFormat

var _ pflag.Value = (*formatFlag)(nil)

func (f *formatFlag) String() string { return string(*f) }
func (f *formatFlag) Type() string   { return "format" }

func (f *formatFlag) Set(s string) error {
	if !obapp.ValidOutputFormats[obapp.OutputFormat(s)] {
		return fmt.Errorf("must be xlsx, csv or none")
	}
	*f = formatFlag(s)
	return nil
}

func (f *reportFlags) bindOutput(flags *pflag.FlagSet) {
	f.format = formatFlag(obapp.FormatXLSX)
	flags.StringVar(&f.out, "out", "", "Output directory (default from config)")
	flags.Var(&f.format, "format", "Output format: xlsx, csv or none")
}

func (f *reportFlags) bindInputs(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.picking, "picking", "", "Picking export (.xlsx or .csv)")
	cmd.Flags().StringVar(&f.packing, "packing", "", "Packing export (.xlsx or .csv)")
	f.bindOutput(cmd.Flags())
}

func (f *reportFlags) bindDaily(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "Report date YYYY-MM-DD (default: date of the earliest scan)")
	cmd.Flags().StringVar(&f.time, "time", "", "Value of the TIME column (default: now)")
	cmd.Flags().StringArrayVar(&f.overrides, "override", nil, "Preshipment override worker:qty:ewh (repeatable)")
	cmd.Flags().StringVar(&f.overrideFile, "overrides", "", "Preshipment override file (.yaml or .json)")
	cmd.Flags().BoolVar(&f.skipDrafts, "skip-drafts", false, "Ignore override drafts saved for the date")
}

func (f *reportFlags) request(app *App) (obapp.ReportRequest, error) {
	req := obapp.NewReportRequest()
	req.PickingPath = f.picking
	req.PackingPath = f.packing
	req.ReportDate = f.date
	req.ReportTime = f.time
	req.OverrideFile = f.overrideFile
	req.SkipDrafts = f.skipDrafts
	req.Format = obapp.OutputFormat(f.format)

	req.OutputDir = domain.Coalesce(f.out, app.OutputDir, req.OutputDir)

	for _, raw := range f.overrides {
		o, err := importer.ParseOverrideFlag(raw)
		if err != nil {
			return req, fmt.Errorf("--override %q: %w", raw, err)
		}
		req.Overrides = append(req.Overrides, o)
	}
	return req, nil
}

func newReportDailyCmd(app *App) *cobra.Command {
	var f reportFlags

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Daily EWH/UPH report with preshipment overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(app)
			if err != nil {
				return err
			}
			if f.interactive {
				if !app.interactive() && app.PromptPreshipment == nil {
					return fmt.Errorf("--interactive needs a terminal")
				}
				entered, err := app.collectPreshipment(cmd)
				if err != nil {
					return err
				}
				req.Overrides = append(req.Overrides, entered...)
			}

			resp, err := app.dailyReportUseCase().Daily(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDaily(resp))
			return nil
		},
	}

	f.bindInputs(cmd)
	f.bindDaily(cmd)
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "Enter preshipment overrides in a form")

	return cmd
}

func newReportEfficiencyCmd(app *App) *cobra.Command {
	var f reportFlags

	cmd := &cobra.Command{
		Use:   "efficiency",
		Short: "Morning efficiency report with per-segment remarks",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(app)
			if err != nil {
				return err
			}
			resp, err := app.Reports.Efficiency(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEfficiency(resp, app.Location))
			return nil
		},
	}

	f.bindInputs(cmd)
	return cmd
}

func newReportBothCmd(app *App) *cobra.Command {
	var f reportFlags

	cmd := &cobra.Command{
		Use:   "both",
		Short: "Daily then efficiency report from the same exports",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(app)
			if err != nil {
				return err
			}
			resp, err := app.Reports.Both(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBoth(resp, app.Location))
			return nil
		},
	}

	f.bindInputs(cmd)
	f.bindDaily(cmd)
	return cmd
}

func newReportHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List generated reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}
			runs, err := app.Reports.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(runs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of runs to show")
	return cmd
}
