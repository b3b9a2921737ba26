// Package repo provides the membership-history repository implementation
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"zonewatch/internal/core/detection"
	"zonewatch/internal/modkit/repokit"
	perr "zonewatch/internal/platform/errors"
	"zonewatch/internal/services/events/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the membership-history repository
type Storage interface {
	Insert(ctx context.Context, ev domain.StoredEvent) (string, error)
	List(ctx context.Context, f domain.Filters, after domain.AfterKey, limit int) ([]domain.StoredEvent, domain.AfterKey, error)
}

// Insert writes one membership change and returns its id
func (s *pg) Insert(ctx context.Context, ev domain.StoredEvent) (string, error) {
	id := ev.ID
	if id == "" {
		id = uuid.NewString()
	}
	objects, err := json.Marshal(ev.Objects)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeJSON, "marshal event objects")
	}

	const q = `INSERT INTO zone_events
		(id, camera_identifier, zone_name, frame_id, captured_at, objects)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := s.q.Exec(ctx, q, id, ev.CameraIdentifier, ev.ZoneName, ev.FrameID, ev.CapturedAt, objects); err != nil {
		return "", perr.MapPg(err)
	}
	return id, nil
}

// List implements keyset pagination ordered by (created_at, id)
func (s *pg) List(ctx context.Context, f domain.Filters, after domain.AfterKey, limit int) ([]domain.StoredEvent, domain.AfterKey, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`
		SELECT id::text, camera_identifier, zone_name, frame_id, captured_at, objects, created_at
		FROM zone_events
		WHERE TRUE
	`)
	if f.CameraIdentifier != "" {
		sb.WriteString("  AND camera_identifier = " + arg(f.CameraIdentifier) + "\n")
	}
	if f.ZoneName != "" {
		sb.WriteString("  AND zone_name = " + arg(f.ZoneName) + "\n")
	}
	// keyset only when AfterKey is set (avoid ''::uuid on first page)
	if !after.Zero() {
		sb.WriteString("  AND (created_at, id) > (" + arg(after.CreatedAt) + ", " + arg(after.ID) + "::uuid)\n")
	}
	sb.WriteString("ORDER BY created_at, id\nLIMIT " + arg(limit))

	rows, err := s.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, domain.AfterKey{}, perr.MapPg(err)
	}
	defer rows.Close()

	out := make([]domain.StoredEvent, 0, limit)
	var last domain.AfterKey
	for rows.Next() {
		var ev domain.StoredEvent
		var objects []byte
		if err := rows.Scan(&ev.ID, &ev.CameraIdentifier, &ev.ZoneName, &ev.FrameID, &ev.CapturedAt, &objects, &ev.CreatedAt); err != nil {
			return nil, domain.AfterKey{}, perr.MapPg(err)
		}
		if len(objects) > 0 {
			if err := json.Unmarshal(objects, &ev.Objects); err != nil {
				return nil, domain.AfterKey{}, perr.Wrap(err, perr.ErrorCodeJSON, "unmarshal event objects")
			}
		}
		if ev.Objects == nil {
			ev.Objects = []*detection.Object{}
		}
		out = append(out, ev)
		last = domain.AfterKey{CreatedAt: ev.CreatedAt, ID: ev.ID}
	}
	return out, last, rows.Err()
}
