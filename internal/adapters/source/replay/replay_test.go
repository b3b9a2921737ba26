package replay

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "detections.jsonl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestSnapshotsReplaysLog(t *testing.T) {
	t.Parallel()

	path := writeLog(t, `
# capture from the porch camera
{"camera_identifier":"front_door","frame_id":"f1","objects":[{"label":"person","confidence":0.9,"rel_x1":0.4,"rel_y1":0.3,"rel_x2":0.6,"rel_y2":0.5}]}

not json at all
{"camera_identifier":"front_door","frame_id":"f2","objects":[]}
`)

	src := New(Options{Path: path})
	ch, err := src.Snapshots(context.Background())
	if err != nil {
		t.Fatalf("Snapshots: %v", err)
	}

	var frames []string
	for snap := range ch {
		frames = append(frames, snap.Frame.FrameID)
	}
	if len(frames) != 2 || frames[0] != "f1" || frames[1] != "f2" {
		t.Fatalf("frames = %v, want [f1 f2]", frames)
	}
}

func TestSnapshotsCameraOverride(t *testing.T) {
	t.Parallel()

	path := writeLog(t, `{"camera_identifier":"recorded","frame_id":"f1","objects":[]}`)
	src := New(Options{Path: path, Camera: "live"})

	ch, err := src.Snapshots(context.Background())
	if err != nil {
		t.Fatalf("Snapshots: %v", err)
	}
	snap, ok := <-ch
	if !ok {
		t.Fatalf("expected one snapshot")
	}
	if snap.Frame.CameraIdentifier != "live" {
		t.Fatalf("camera = %q, want live", snap.Frame.CameraIdentifier)
	}
}

func TestSnapshotsMissingFile(t *testing.T) {
	t.Parallel()

	src := New(Options{Path: filepath.Join(t.TempDir(), "nope.jsonl")})
	if _, err := src.Snapshots(context.Background()); err == nil {
		t.Fatalf("expected error for missing log")
	}
}

func TestSnapshotsStopOnCancel(t *testing.T) {
	t.Parallel()

	path := writeLog(t, `{"camera_identifier":"cam","frame_id":"f1","objects":[]}
{"camera_identifier":"cam","frame_id":"f2","objects":[]}`)

	ctx, cancel := context.WithCancel(context.Background())
	src := New(Options{Path: path})
	ch, err := src.Snapshots(ctx)
	if err != nil {
		t.Fatalf("Snapshots: %v", err)
	}

	<-ch
	cancel()
	// channel must close soon after cancellation
	for range ch {
	}
}
