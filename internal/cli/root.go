package cli

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	obapp "github.com/alexanderramin/obreport/internal/app"
	"github.com/alexanderramin/obreport/internal/config"
	"github.com/alexanderramin/obreport/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Reports   service.ReportService
	Employees service.EmployeeService
	Overrides service.OverrideService

	// Optional use-case ports. Nil falls back to the services above.
	DailyReport  obapp.DailyReportUseCase
	SaveOverride obapp.SaveOverrideUseCase

	// Location renders segment times. Nil means time.Local.
	Location  *time.Location
	OutputDir string
	Logger    *zap.Logger

	// Setup runs before any subcommand with the persistent root flags.
	// It is expected to wire the services above.
	Setup func(flags GlobalFlags) error

	IsInteractive func() bool
	// PromptPreshipment fills one preshipment entry interactively.
	// Nil uses the huh form.
	PromptPreshipment func(employees []string, entry *PreshipmentEntry) error
}

// GlobalFlags carries the persistent root flags. Config holds one override
// per config flag the user actually set.
type GlobalFlags struct {
	ConfigPath string
	Verbose    bool
	Config     []config.Override
}

type configFlags struct {
	pickingGap, packingGap, efficiencyGap float64
	compensation                          string
	factor                                float64
	timezone                              string
}

func (f *configFlags) bind(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.Float64Var(&f.pickingGap, "picking-gap", 0, "Picking gap threshold in minutes")
	pf.Float64Var(&f.packingGap, "packing-gap", 0, "Packing gap threshold in minutes")
	pf.Float64Var(&f.efficiencyGap, "efficiency-gap", 0, "Efficiency report gap threshold in minutes")
	pf.StringVar(&f.compensation, "compensation-mode", "", "Efficiency compensation: none, on_anomaly or always")
	pf.Float64Var(&f.factor, "compensation-factor", 0, "Efficiency compensation factor (>= 1)")
	pf.StringVar(&f.timezone, "tz", "", "Time zone for timestamps and the morning cut-off")
}

// overrides returns config overrides for the flags set on cmd's command line.
func (f *configFlags) overrides(cmd *cobra.Command) []config.Override {
	set := cmd.Flags().Changed
	var out []config.Override
	if set("picking-gap") {
		out = append(out, config.WithPickingGap(f.pickingGap))
	}
	if set("packing-gap") {
		out = append(out, config.WithPackingGap(f.packingGap))
	}
	if set("efficiency-gap") {
		out = append(out, config.WithEfficiencyGap(f.efficiencyGap))
	}
	if set("compensation-mode") {
		out = append(out, config.WithCompensation(f.compensation))
	}
	if set("compensation-factor") {
		out = append(out, config.WithCompensationFactor(f.factor))
	}
	if set("tz") {
		out = append(out, config.WithTimezone(f.timezone))
	}
	return out
}

// NewRootCmd creates the top-level "obreport" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var configPath string
	var verbose bool
	var cfgFlags configFlags

	root := &cobra.Command{
		Use:           "obreport",
		Short:         "Outbound EWH/UPH reports from picking and packing scan exports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Setup == nil {
				return nil
			}
			return app.Setup(GlobalFlags{
				ConfigPath: configPath,
				Verbose:    verbose,
				Config:     cfgFlags.overrides(cmd),
			})
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./obreport.yaml when present)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	cfgFlags.bind(root)

	root.AddCommand(
		newReportCmd(app),
		newEmployeeCmd(app),
		newOverrideCmd(app),
		newWatchCmd(app),
	)

	return root
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}
