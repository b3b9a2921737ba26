package store

import (
	"context"

	chx "zonewatch/internal/platform/store/ch"
)

// chAdapter adapts ch.CH to the store.Clickhouse seam
type chAdapter struct {
	c *chx.CH
}

func newCHAdapter(c *chx.CH) *chAdapter { return &chAdapter{c: c} }

func (a *chAdapter) Insert(ctx context.Context, table string, cols []string, rows [][]any) error {
	return a.c.Insert(ctx, table, cols, rows)
}

func (a *chAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := a.c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return &chRows{r: r}, nil
}

func (a *chAdapter) Ping(ctx context.Context) error { return a.c.Ping(ctx) }

func (a *chAdapter) Close() error { return a.c.Close() }

// chRows narrows ch.Rows to the store.Rows contract
type chRows struct{ r chx.Rows }

func (r *chRows) Next() bool            { return r.r.Next() }
func (r *chRows) Scan(dest ...any) error { return r.r.Scan(dest...) }
func (r *chRows) Err() error            { return r.r.Err() }
func (r *chRows) Close()                { _ = r.r.Close() }
