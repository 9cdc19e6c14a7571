package trial

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	topnselect "github.com/axt/topnselect"
	topnerrors "github.com/axt/topnselect/errors"
	"github.com/axt/topnselect/fixture"
	"github.com/axt/topnselect/internal/order"
)

// Verify checks every variant against a full sort of the first items items of
// fix. Quickselect and bounded-heap results must match as sets, the baseline
// heap must match in order, and a second quickselect query must repeat the
// first.
//
// Each variant runs on its own goroutine with its own selector; the fixture
// and the reference are only read. The first mismatch cancels the rest.
func Verify(ctx context.Context, fix *fixture.Fixture, items, topN int, variants []topnselect.Variant, opts ...topnselect.Option) error {
	if items < 0 || items > fix.Len() {
		return fmt.Errorf("%w: %d items requested from a fixture of %d", topnerrors.ErrInvalidConfig, items, fix.Len())
	}
	view := fix.Prefix(items)
	want := order.TopN(view.IDs, view.Scores, topN)

	g, ctx := errgroup.WithContext(ctx)
	for _, v := range variants {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return verifyVariant(view, topN, v, want, opts)
		})
	}
	return g.Wait()
}

func verifyVariant(fix *fixture.Fixture, topN int, v topnselect.Variant, want []int32, opts []topnselect.Option) error {
	all := append([]topnselect.Option{topnselect.WithVariant(v)}, opts...)
	sel, err := topnselect.New(fix.Len(), topN, all...)
	if err != nil {
		return fmt.Errorf("create %s: %w", v, err)
	}
	fix.Feed(sel, fix.Len())
	got := sel.TopN(topN)

	if v.Algorithm.Ordered() {
		if !slices.Equal(got, want) {
			return fmt.Errorf("%w: %s returned %d ids out of rank order", topnerrors.ErrVerifyMismatch, v, len(got))
		}
		return nil
	}
	if !order.SameSet(got, want) {
		return fmt.Errorf("%w: %s returned %d ids, want %d", topnerrors.ErrVerifyMismatch, v, len(got), len(want))
	}
	if v.Algorithm == topnselect.AlgoQuickselect {
		if again := sel.TopN(topN); !order.SameSet(again, got) {
			return fmt.Errorf("%w: %s changed between queries", topnerrors.ErrVerifyMismatch, v)
		}
	}
	return nil
}
