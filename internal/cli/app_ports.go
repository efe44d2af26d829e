package cli

import obapp "github.com/alexanderramin/obreport/internal/app"

func (a *App) dailyReportUseCase() obapp.DailyReportUseCase {
	if a.DailyReport != nil {
		return a.DailyReport
	}
	return a.Reports
}

func (a *App) saveOverrideUseCase() obapp.SaveOverrideUseCase {
	if a.SaveOverride != nil {
		return a.SaveOverride
	}
	return a.Overrides
}
