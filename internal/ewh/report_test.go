package ewh

import (
	"testing"
	"time"

	"github.com/alexanderramin/obreport/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDaily_NoInput(t *testing.T) {
	_, err := BuildDaily(nil, nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestBuildDaily_OnlyInvalidEvents(t *testing.T) {
	_, err := BuildDaily([]domain.WorkEvent{{Worker: "x"}}, nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestBuildDaily_OverridesAlone(t *testing.T) {
	report, err := BuildDaily(nil, []domain.PreshipmentOverride{{Worker: "Carol", Quantity: 50, EWH: 4}}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, domain.ModeDaily, report.Mode)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, 4.0, report.TotalEWH())
}

func TestBuildDaily_IgnoresCompensation(t *testing.T) {
	opts := DefaultOptions()
	opts.Compensation = CompensationPolicy{Mode: domain.CompensationAlways, Factor: 1.1}

	report, err := BuildDaily(scenarioAEvents(), nil, opts)
	require.NoError(t, err)
	s := report.Rows[0].Category(domain.CategoryPickSingle)
	assert.False(t, s.Compensated)
	assert.InDelta(t, 2.0/60, s.EWHHours, 1e-9)
}

func TestBuildDaily_ScenariosDAndE(t *testing.T) {
	events := append(scenarioAEvents(), event("Bob", domain.CategoryPickMulti, 1, at(9, 0)))
	overrides := []domain.PreshipmentOverride{
		{Worker: "Carol", Quantity: 50, EWH: 4},
		{Worker: "Alice", Quantity: 20, EWH: 2},
	}

	report, err := BuildDaily(events, overrides, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, report.Rows, 3)

	var got []string
	for _, r := range report.Rows {
		got = append(got, r.Worker)
	}
	assert.Equal(t, []string{"Carol", "Alice", "Bob"}, got)
	assert.Equal(t, 5, report.Events)
	assert.Equal(t, 4, report.Processed[domain.CategoryPickSingle])
}

func TestBuildEfficiency_MorningOnly(t *testing.T) {
	events := []domain.WorkEvent{
		event("Alice", domain.CategoryPickSingle, 1, at(11, 50)),
		event("Alice", domain.CategoryPickSingle, 1, at(11, 59)),
		event("Alice", domain.CategoryPickSingle, 1, at(12, 0)),
		event("Alice", domain.CategoryPickSingle, 1, at(12, 5)),
	}
	opts := EfficiencyOptions(15*time.Minute, NoCompensation(), DefaultOptions())

	report, err := BuildEfficiency(events, opts, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeEfficiency, report.Mode)
	assert.Equal(t, 2, report.Events)
	require.Len(t, report.Rows, 1)
	s := report.Rows[0].Category(domain.CategoryPickSingle)
	assert.Equal(t, 2, s.Quantity)
	assert.InDelta(t, 9.0/60, s.EWHHours, 1e-9)
}

func TestBuildEfficiency_NoMorningData(t *testing.T) {
	events := []domain.WorkEvent{event("Alice", domain.CategoryPack, 1, at(13, 0))}
	_, err := BuildEfficiency(events, DefaultOptions(), time.UTC)
	assert.ErrorIs(t, err, ErrNoMorningData)
}

func TestBuildEfficiency_AppliesCompensation(t *testing.T) {
	opts := EfficiencyOptions(5*time.Minute,
		CompensationPolicy{Mode: domain.CompensationOnAnomaly, Factor: AnomalySurchargeFactor}, DefaultOptions())

	report, err := BuildEfficiency(scenarioAEvents(), opts, time.UTC)
	require.NoError(t, err)
	s := report.Rows[0].Category(domain.CategoryPickSingle)
	assert.True(t, s.Compensated)
	assert.InDelta(t, 2.0/60*1.1, s.EWHHours, 1e-9)
}

func TestPasses_AreIndependent(t *testing.T) {
	events := scenarioAEvents()
	overrides := []domain.PreshipmentOverride{{Worker: "Alice", Quantity: 20, EWH: 2}}

	daily, err := BuildDaily(events, overrides, DefaultOptions())
	require.NoError(t, err)
	eff, err := BuildEfficiency(events, DefaultOptions(), time.UTC)
	require.NoError(t, err)

	assert.InDelta(t, 2.0333, daily.Rows[0].TotalEWH, 0.0001)
	assert.InDelta(t, 0.0333, eff.Rows[0].TotalEWH, 0.0001)
	assert.Nil(t, eff.Rows[0].Preshipment)

	again, err := BuildDaily(events, overrides, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, daily.Rows[0].TotalEWH, again.Rows[0].TotalEWH)
}

func TestFilterMorning_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	events := []domain.WorkEvent{
		event("a", domain.CategoryPack, 1, at(3, 59)), // 11:59 local
		event("b", domain.CategoryPack, 1, at(4, 0)),  // 12:00 local
		event("c", domain.CategoryPack, 1, at(16, 0)), // 00:00 next day local
		{Worker: "d"},
	}

	got := FilterMorning(events, loc)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Worker)
	assert.Equal(t, "c", got[1].Worker)
}
