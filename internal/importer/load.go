package importer

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/obreport/internal/domain"
)

// Batch is the normalized content of one picking/packing file pair.
type Batch struct {
	Events      []domain.WorkEvent
	Diagnostics []Diagnostic
	Picking     int
	Packing     int
}

// Load reads the picking and packing exports concurrently. Either path may
// be empty. Picking events come first, each file in row order.
func (n Normalizer) Load(ctx context.Context, pickingPath, packingPath string) (*Batch, error) {
	type result struct {
		events []domain.WorkEvent
		diags  []Diagnostic
	}
	var picking, packing result

	g, ctx := errgroup.WithContext(ctx)
	read := func(path string, layout Layout, out *result) {
		if path == "" {
			return
		}
		g.Go(func() error {
			rows, err := ReadRows(path)
			if err != nil {
				return fmt.Errorf("%s export: %w", layout.Name, err)
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			out.events, out.diags = n.Normalize(rows, layout, filepath.Base(path))
			return nil
		})
	}
	read(pickingPath, PickingLayout, &picking)
	read(packingPath, PackingLayout, &packing)

	if err := g.Wait(); err != nil {
		return nil, err
	}

	b := &Batch{
		Picking: len(picking.events),
		Packing: len(packing.events),
	}
	b.Events = append(append(b.Events, picking.events...), packing.events...)
	b.Diagnostics = append(append(b.Diagnostics, picking.diags...), packing.diags...)
	return b, nil
}
