package ewh

import (
	"testing"
	"time"

	"github.com/alexanderramin/obreport/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func event(worker string, c domain.Category, qty int, ts time.Time) domain.WorkEvent {
	return domain.WorkEvent{Worker: worker, Timestamp: &ts, Quantity: qty, Category: c}
}

func scenarioAEvents() []domain.WorkEvent {
	return []domain.WorkEvent{
		event("Alice", domain.CategoryPickSingle, 1, at(8, 0)),
		event("Alice", domain.CategoryPickSingle, 1, at(8, 2)),
		event("Alice", domain.CategoryPickSingle, 1, at(8, 10)),
		event("Alice", domain.CategoryPickSingle, 1, at(8, 40)),
	}
}

func TestAggregate_ScenarioA(t *testing.T) {
	agg, err := Aggregate(scenarioAEvents(), DefaultOptions())
	require.NoError(t, err)

	row := agg.Row("Alice")
	require.NotNil(t, row)
	s := row.Category(domain.CategoryPickSingle)
	require.NotNil(t, s)
	assert.Equal(t, 4, s.Quantity)
	assert.Len(t, s.Segments, 3)
	assert.InDelta(t, 0.0333, s.EWHHours, 0.0001)
	require.NotNil(t, s.UPH)
	assert.InDelta(t, 120.0, *s.UPH, 1e-6)
	assert.True(t, s.AnomalyDetected)
	assert.False(t, s.Compensated)
	assert.Equal(t, 4, row.PickCount)
	assert.InDelta(t, s.EWHHours, row.TotalEWH, 1e-12)
}

func TestAggregate_ScenarioC_SingleTimestampHasNoUPH(t *testing.T) {
	agg, err := Aggregate([]domain.WorkEvent{
		event("Bob", domain.CategoryPickMulti, 3, at(9, 0)),
	}, DefaultOptions())
	require.NoError(t, err)

	row := agg.Row("Bob")
	require.NotNil(t, row)
	assert.Nil(t, row.Category(domain.CategoryPickSingle))
	s := row.Category(domain.CategoryPickMulti)
	require.NotNil(t, s)
	assert.Zero(t, s.EWHHours)
	assert.Nil(t, s.UPH)
	assert.Equal(t, 3, s.Quantity)
	assert.False(t, s.AnomalyDetected)
}

func TestAggregate_DropsInvalidEvents(t *testing.T) {
	ts := at(9, 0)
	events := []domain.WorkEvent{
		{Worker: "Ghost", Timestamp: nil, Quantity: 1, Category: domain.CategoryPack},
		{Worker: "", Timestamp: &ts, Quantity: 1, Category: domain.CategoryPack},
		event("Dan", domain.CategoryPack, 2, at(9, 0)),
	}

	core, logs := observer.New(zap.WarnLevel)
	opts := DefaultOptions()
	opts.Logger = zap.New(core)

	agg, err := Aggregate(events, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, agg.Dropped)
	assert.Equal(t, []string{"Dan"}, agg.Order)
	assert.Nil(t, agg.Row("Ghost"))
	assert.Equal(t, 2, logs.FilterMessage("dropping invalid scan event").Len())
}

func TestAggregate_UnknownPicksCountButNeverMeasure(t *testing.T) {
	events := []domain.WorkEvent{
		event("Eve", domain.CategoryPickUnknown, 2, at(8, 0)),
		event("Eve", domain.CategoryPickUnknown, 2, at(8, 4)),
		event("Eve", domain.CategoryPickSingle, 1, at(8, 0)),
		event("Eve", domain.CategoryPickSingle, 1, at(8, 3)),
	}

	agg, err := Aggregate(events, DefaultOptions())
	require.NoError(t, err)

	row := agg.Row("Eve")
	require.NotNil(t, row)
	unknown := row.Category(domain.CategoryPickUnknown)
	require.NotNil(t, unknown)
	assert.Equal(t, 4, unknown.Quantity)
	assert.Equal(t, 2, unknown.EventCount)
	assert.Zero(t, unknown.EWHHours)
	assert.Nil(t, unknown.UPH)
	assert.Empty(t, unknown.Segments)

	assert.Equal(t, 6, row.PickCount)
	assert.InDelta(t, 3.0/60, row.TotalEWH, 1e-9)
	assert.InDelta(t, 3.0/60, row.PickingEWH(), 1e-9)
	require.NotNil(t, row.PickingUPH())
	assert.InDelta(t, 6/(3.0/60), *row.PickingUPH(), 1e-6)
}

func TestAggregate_NonPositiveQuantityCountsAsOne(t *testing.T) {
	agg, err := Aggregate([]domain.WorkEvent{
		event("Fay", domain.CategoryPack, 0, at(8, 0)),
		event("Fay", domain.CategoryPack, -3, at(8, 1)),
	}, DefaultOptions())
	require.NoError(t, err)

	row := agg.Row("Fay")
	assert.Equal(t, 2, row.PackCount)
	require.NotNil(t, row.PackingUPH())
	assert.InDelta(t, 120.0, *row.PackingUPH(), 1e-6)
}

func TestAggregate_PerCategoryThresholds(t *testing.T) {
	events := []domain.WorkEvent{
		event("Gus", domain.CategoryPickSingle, 1, at(8, 0)),
		event("Gus", domain.CategoryPickSingle, 1, at(8, 10)),
		event("Gus", domain.CategoryPack, 1, at(9, 0)),
		event("Gus", domain.CategoryPack, 1, at(9, 10)),
	}
	opts := DefaultOptions()
	opts.PickingThreshold = 15 * time.Minute

	agg, err := Aggregate(events, opts)
	require.NoError(t, err)

	row := agg.Row("Gus")
	assert.InDelta(t, 10.0/60, row.Category(domain.CategoryPickSingle).EWHHours, 1e-9)
	assert.Zero(t, row.Category(domain.CategoryPack).EWHHours)
	assert.True(t, row.Category(domain.CategoryPack).AnomalyDetected)
}

func TestAggregate_CompensationOnAnomaly(t *testing.T) {
	opts := DefaultOptions()
	opts.Compensation = CompensationPolicy{Mode: domain.CompensationOnAnomaly, Factor: AnomalySurchargeFactor}

	agg, err := Aggregate(scenarioAEvents(), opts)
	require.NoError(t, err)

	s := agg.Row("Alice").Category(domain.CategoryPickSingle)
	assert.True(t, s.Compensated)
	assert.InDelta(t, s.PreciseHours*1.1, s.EWHHours, 1e-12)
	assert.InDelta(t, 4/s.EWHHours, *s.UPH, 1e-9)
}

func TestAggregate_FirstSeenOrder(t *testing.T) {
	events := []domain.WorkEvent{
		event("Zed", domain.CategoryPack, 1, at(9, 0)),
		event("Amy", domain.CategoryPack, 1, at(8, 0)),
		event("Zed", domain.CategoryPickSingle, 1, at(7, 0)),
	}

	agg, err := Aggregate(events, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"Zed", "Amy"}, agg.Order)
	assert.Equal(t, 0, agg.Row("Zed").FirstSeen)
	assert.Equal(t, 1, agg.Row("Amy").FirstSeen)
	assert.Equal(t, 2, agg.Processed[domain.CategoryPack])
}

func TestAggregate_EmptyInput(t *testing.T) {
	agg, err := Aggregate(nil, DefaultOptions())
	require.NoError(t, err)
	assert.Zero(t, agg.Len())
	assert.Empty(t, Rows(agg))
}

func TestAggregate_RejectsInvalidOptions(t *testing.T) {
	_, err := Aggregate(scenarioAEvents(), Options{})
	assert.Error(t, err)
}
