package repokit

import (
	"context"
	"testing"

	"zonewatch/internal/platform/store"
)

type fakeQueryer struct{}

func (fakeQueryer) Exec(context.Context, string, ...any) (store.CommandTag, error) {
	return nil, nil
}
func (fakeQueryer) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (fakeQueryer) QueryRow(context.Context, string, ...any) store.Row        { return nil }

type eventsRepo struct{ q Queryer }

func TestBindFuncBinds(t *testing.T) {
	t.Parallel()

	b := BindFunc[eventsRepo](func(q Queryer) eventsRepo { return eventsRepo{q: q} })
	q := fakeQueryer{}

	got := MustBind[eventsRepo](b, q)
	if got.q != Queryer(q) {
		t.Fatalf("bound repo did not capture the queryer")
	}
}

func TestMustBindPanicsOnNilQueryer(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for nil Queryer")
		}
	}()

	b := BindFunc[eventsRepo](func(q Queryer) eventsRepo { return eventsRepo{q: q} })
	_ = MustBind[eventsRepo](b, nil)
}
