package ewh

import (
	"go.uber.org/zap"

	"github.com/alexanderramin/obreport/internal/domain"
)

// MergeOverrides folds preshipment overrides into the aggregated rows and
// returns them ordered by SortRows. Workers are matched by exact name.
// Overrides for unknown workers become rows of their own, appended after the
// scanned workers. A later override for the same worker replaces the
// preshipment block while its EWH still adds to the row total.
//
// The merge accumulates into TotalEWH, so an aggregation accepts it once;
// a second call returns ErrAlreadyMerged.
func MergeOverrides(agg *Aggregation, overrides []domain.PreshipmentOverride, logger *zap.Logger) ([]domain.WorkerReportRow, error) {
	if agg == nil {
		agg = &Aggregation{}
	}
	if agg.merged {
		return nil, ErrAlreadyMerged
	}
	agg.merged = true
	if logger == nil {
		logger = zap.NewNop()
	}

	rows := agg.snapshot()
	index := make(map[string]int, len(rows))
	for i, r := range rows {
		index[r.Worker] = i
	}

	for _, o := range overrides {
		if err := o.Validate(); err != nil {
			agg.DroppedOverrides++
			logger.Warn("dropping preshipment override", zap.String("worker", o.Worker), zap.Error(err))
			continue
		}
		block := &domain.PreshipmentBlock{
			Quantity: o.Quantity,
			EWH:      o.EWH,
			UPH:      domain.Ratio(float64(o.Quantity), o.EWH),
		}

		if i, ok := index[o.Worker]; ok {
			rows[i].Preshipment = block
			if o.EWH > 0 {
				rows[i].TotalEWH += o.EWH
			}
			logger.Debug("merged preshipment override",
				zap.String("worker", o.Worker), zap.Int("quantity", o.Quantity), zap.Float64("ewh", o.EWH))
			continue
		}

		row := domain.NewWorkerReportRow(o.Worker, len(rows))
		row.Preshipment = block
		row.TotalEWH = o.EWH
		index[o.Worker] = len(rows)
		rows = append(rows, *row)
		logger.Debug("added preshipment-only worker",
			zap.String("worker", o.Worker), zap.Int("quantity", o.Quantity), zap.Float64("ewh", o.EWH))
	}

	SortRows(rows)
	return rows, nil
}
