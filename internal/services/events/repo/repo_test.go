package repo

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"zonewatch/internal/core/detection"
	"zonewatch/internal/platform/store"
	"zonewatch/internal/services/events/domain"
)

type capturedQuery struct {
	sql  string
	args []any
}

type fakeQueryer struct {
	execs   []capturedQuery
	queries []capturedQuery
	rows    *fakeRows
}

func (f *fakeQueryer) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	f.execs = append(f.execs, capturedQuery{sql: sql, args: args})
	return nil, nil
}

func (f *fakeQueryer) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	f.queries = append(f.queries, capturedQuery{sql: sql, args: args})
	if f.rows == nil {
		return &fakeRows{}, nil
	}
	return f.rows, nil
}

func (f *fakeQueryer) QueryRow(context.Context, string, ...any) store.Row { return nil }

type fakeRows struct {
	data [][]any
	idx  int
}

func (r *fakeRows) Next() bool { r.idx++; return r.idx <= len(r.data) }

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.idx-1]
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *time.Time:
			*p = row[i].(time.Time)
		case *[]byte:
			*p = row[i].([]byte)
		}
	}
	return nil
}

func (r *fakeRows) Err() error { return nil }
func (r *fakeRows) Close()     {}

func TestInsertWritesJSONObjects(t *testing.T) {
	t.Parallel()

	q := &fakeQueryer{}
	s := NewPG().Bind(q)

	captured := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	id, err := s.Insert(context.Background(), domain.StoredEvent{
		CameraIdentifier: "front_door",
		ZoneName:         "porch",
		FrameID:          "f42",
		CapturedAt:       captured,
		Objects:          []*detection.Object{{Label: "person", Confidence: 0.9, Relevant: true}},
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id == "" {
		t.Fatalf("Insert should mint an id when none is given")
	}
	if len(q.execs) != 1 {
		t.Fatalf("execs = %d, want 1", len(q.execs))
	}

	got := q.execs[0]
	if !strings.Contains(got.sql, "INSERT INTO zone_events") {
		t.Fatalf("unexpected sql: %s", got.sql)
	}
	if got.args[1] != "front_door" || got.args[2] != "porch" || got.args[3] != "f42" {
		t.Fatalf("unexpected args: %v", got.args)
	}

	var objs []*detection.Object
	if err := json.Unmarshal(got.args[5].([]byte), &objs); err != nil {
		t.Fatalf("objects arg not json: %v", err)
	}
	if len(objs) != 1 || objs[0].Label != "person" {
		t.Fatalf("objects round trip wrong: %+v", objs)
	}
}

func TestListFirstPageSkipsKeyset(t *testing.T) {
	t.Parallel()

	q := &fakeQueryer{}
	s := NewPG().Bind(q)

	_, _, err := s.List(context.Background(), domain.Filters{CameraIdentifier: "front_door"}, domain.AfterKey{}, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	sql := q.queries[0].sql
	if strings.Contains(sql, "(created_at, id) >") {
		t.Fatalf("first page must not carry a keyset predicate:\n%s", sql)
	}
	if !strings.Contains(sql, "camera_identifier = $1") {
		t.Fatalf("camera filter missing:\n%s", sql)
	}
}

func TestListKeysetAndScan(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	objects, _ := json.Marshal([]*detection.Object{{Label: "person"}})
	q := &fakeQueryer{rows: &fakeRows{data: [][]any{
		{"id-1", "front_door", "porch", "f1", created, objects, created},
	}}}
	s := NewPG().Bind(q)

	after := domain.AfterKey{CreatedAt: created.Add(-time.Minute), ID: "id-0"}
	out, last, err := s.List(context.Background(), domain.Filters{}, after, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	sql := q.queries[0].sql
	if !strings.Contains(sql, "(created_at, id) > ($1, $2::uuid)") {
		t.Fatalf("keyset predicate missing:\n%s", sql)
	}
	if len(out) != 1 || out[0].ZoneName != "porch" || len(out[0].Objects) != 1 {
		t.Fatalf("unexpected rows: %+v", out)
	}
	if last.ID != "id-1" || !last.CreatedAt.Equal(created) {
		t.Fatalf("unexpected cursor: %+v", last)
	}
}
