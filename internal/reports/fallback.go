package reports

import "context"

// queryChain is an ordered list of strategies for one metric family, tried
// in sequence until one reports rows. Each strategy returns its value and
// whether the underlying source actually had rows, so a later strategy can
// take over when a rollup table is not populated for the range.
type queryChain[T any] []func(ctx context.Context) (T, bool, error)

// fetch runs the chain. When no strategy has rows the zero value is
// returned, which renders as an empty family in the report.
func (c queryChain[T]) fetch(ctx context.Context) (T, error) {
	var zero T
	for _, next := range c {
		value, ok, err := next(ctx)
		if err != nil {
			return zero, err
		}
		if ok {
			return value, nil
		}
	}
	return zero, nil
}
