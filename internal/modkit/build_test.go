package modkit

import (
	"net/http"
	"reflect"
	"testing"

	"zonewatch/internal/modkit/httpkit"
)

func TestBuildDefaults(t *testing.T) {
	t.Parallel()

	b := Build()

	if b.Name != "" || b.Prefix != "" {
		t.Fatalf("defaults should be empty, got name=%q prefix=%q", b.Name, b.Prefix)
	}
	if b.Ports != nil {
		t.Fatalf("default Ports non-nil")
	}
	if b.SwaggerOn {
		t.Fatalf("default SwaggerOn = true, want false")
	}
	if len(b.Mw) != 0 {
		t.Fatalf("default Mw length = %d, want 0", len(b.Mw))
	}

	// Subrouter default is identity and Register default is a no-op
	var r httpkit.Router
	if r2 := b.Subrouter(r); r2 != r {
		t.Fatalf("default Subrouter should be identity")
	}
	b.Register(r)
}

func TestBuildAppliesOptionsAndCopiesMiddleware(t *testing.T) {
	t.Parallel()

	fnPtr := func(f func(http.Handler) http.Handler) uintptr {
		return reflect.ValueOf(f).Pointer()
	}

	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return next }
	mid := []func(http.Handler) http.Handler{mwA, mwB}

	regCalled := 0
	reg := func(httpkit.Router) { regCalled++ }

	type ports struct{ N int }
	p := ports{N: 3}

	b := Build(
		WithName("zones"),
		WithPrefix("/api/v1/zones"),
		WithMiddlewares(mid...),
		WithPorts[ports](p),
		WithRegister(reg),
		WithSwagger(true),
	)

	if b.Name != "zones" {
		t.Fatalf("Name = %q, want zones", b.Name)
	}
	if b.Prefix != "/api/v1/zones" {
		t.Fatalf("Prefix = %q", b.Prefix)
	}
	if got, ok := b.Ports.(ports); !ok || got != p {
		t.Fatalf("Ports mismatch after Build")
	}
	if !b.SwaggerOn {
		t.Fatalf("SwaggerOn = false, want true")
	}

	// middleware slice is copied; mutating the source must not affect Built
	if len(b.Mw) != 2 {
		t.Fatalf("Mw length = %d, want 2", len(b.Mw))
	}
	mid[0] = func(next http.Handler) http.Handler { return next }
	if fnPtr(b.Mw[0]) != fnPtr(mwA) || fnPtr(b.Mw[1]) != fnPtr(mwB) {
		t.Fatalf("Built.Mw changed after source slice mutation")
	}

	var r httpkit.Router
	b.Register(r)
	if regCalled != 1 {
		t.Fatalf("Register invoked %d times, want 1", regCalled)
	}
}
