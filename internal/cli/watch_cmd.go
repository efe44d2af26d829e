package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexanderramin/obreport/internal/cli/formatter"
	"github.com/alexanderramin/obreport/internal/watch"
)

func newWatchCmd(app *App) *cobra.Command {
	var f reportFlags
	var dir string
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the daily report when picking/packing exports change",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := &watch.Watcher{
				Dir:      dir,
				Debounce: debounce,
				Logger:   app.logger(),
				OnChange: app.regenerateDaily(&f, cmd.OutOrStdout()),
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Watching "+dir+" (ctrl+c to stop)"))
			return w.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Inbox directory with picking*/packing* exports")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before regenerating")
	f.bindOutput(cmd.Flags())
	cmd.Flags().BoolVar(&f.skipDrafts, "skip-drafts", false, "Ignore override drafts saved for the date")
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}

// regenerateDaily builds the daily report for the newest export pair.
func (a *App) regenerateDaily(f *reportFlags, out io.Writer) func(context.Context, watch.Pair) error {
	return func(ctx context.Context, pair watch.Pair) error {
		flags := *f
		flags.picking = pair.Picking
		flags.packing = pair.Packing
		req, err := flags.request(a)
		if err != nil {
			return err
		}

		a.logger().Info("regenerating daily report",
			zap.String("picking", pair.Picking), zap.String("packing", pair.Packing))
		resp, err := a.dailyReportUseCase().Daily(ctx, req)
		if err != nil {
			fmt.Fprintln(out, formatter.Warn(err.Error()))
			return err
		}
		fmt.Fprint(out, formatter.FormatDaily(resp))
		return nil
	}
}
