package module

import (
	"strings"
	"testing"

	"zonewatch/internal/modkit/httpkit"
)

// MembershipPort is a tiny test interface that Ports() payloads can implement
type MembershipPort interface {
	Count() int
}

type membershipImpl struct{ n int }

func (m membershipImpl) Count() int { return m.n }

type fakeModule struct {
	name  string
	ports any
}

func (m fakeModule) Name() string               { return m.name }
func (m fakeModule) Ports() PortSet             { return m.ports }
func (m fakeModule) MountRoutes(httpkit.Router) {}

func TestPortsOfNilPorts(t *testing.T) {
	t.Parallel()

	m := fakeModule{name: "empty", ports: nil}
	if _, ok := PortsOf[MembershipPort](m); ok {
		t.Fatalf("expected ok=false when Ports() is nil")
	}
}

func TestPortsOfDirectMatch(t *testing.T) {
	t.Parallel()

	m := fakeModule{name: "direct", ports: MembershipPort(membershipImpl{n: 4})}
	got, ok := PortsOf[MembershipPort](m)
	if !ok {
		t.Fatalf("expected ok=true for direct interface match")
	}
	if got.Count() != 4 {
		t.Fatalf("Count = %d, want 4", got.Count())
	}
}

func TestPortsOfStructBundle(t *testing.T) {
	t.Parallel()

	type Ports struct {
		Membership MembershipPort
		Extra      int
	}
	m := fakeModule{name: "bundle", ports: Ports{Membership: membershipImpl{n: 7}, Extra: 1}}

	got, ok := PortsOf[MembershipPort](m)
	if !ok {
		t.Fatalf("expected ok=true when bundle has exported field")
	}
	if got.Count() != 7 {
		t.Fatalf("Count = %d, want 7", got.Count())
	}
}

func TestPortsOfUnexportedFieldIgnored(t *testing.T) {
	t.Parallel()

	type ports struct {
		membership MembershipPort
	}
	m := fakeModule{name: "hidden", ports: ports{membership: membershipImpl{n: 1}}}

	if _, ok := PortsOf[MembershipPort](m); ok {
		t.Fatalf("expected ok=false when only unexported field implements T")
	}
}

func TestMustPortsOfPanicsWithModuleName(t *testing.T) {
	t.Parallel()

	m := fakeModule{name: "zones", ports: nil}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic from MustPortsOf when port missing")
		}
		msg, _ := r.(string)
		if !strings.Contains(msg, "zones") {
			t.Fatalf("panic message should include module name, got %q", msg)
		}
	}()

	_ = MustPortsOf[MembershipPort](m)
}
