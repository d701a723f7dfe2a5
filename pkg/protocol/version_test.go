package protocol

import (
	"errors"
	"strings"
	"testing"
)

func TestGateMonotonic(t *testing.T) {
	for f, g := range gates {
		if g.Kind == GateServerExact {
			continue
		}
		open := false
		for v := 0; v <= 100; v++ {
			has := Versions{Server: v, Message: v}.Has(f)
			if open && !has {
				t.Errorf("feature %d closes again at version %d", f, v)
				break
			}
			open = open || has
		}
		if !open {
			t.Errorf("feature %d never opens", f)
		}
	}
}

func TestGateKinds(t *testing.T) {
	tests := []struct {
		name string
		v    Versions
		f    Feature
		want bool
	}{
		{"server min below", Versions{Server: 34}, FeatureSnapshotMktData, false},
		{"server min at", Versions{Server: 35}, FeatureSnapshotMktData, true},
		{"server min above", Versions{Server: 63}, FeatureSnapshotMktData, true},
		{"message min ignores server", Versions{Server: 100, Message: 1}, MsgTickPriceSize, false},
		{"message min at", Versions{Server: 38, Message: 2}, MsgTickPriceSize, true},
		{"exact below", Versions{Server: 50}, QuirkStrayExemptCode, false},
		{"exact at", Versions{Server: 51}, QuirkStrayExemptCode, true},
		{"exact above", Versions{Server: 52}, QuirkStrayExemptCode, false},
		{"unregistered", Versions{Server: 1000, Message: 1000}, Feature(9999), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Has(tt.f); got != tt.want {
				t.Errorf("Has() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGateOf(t *testing.T) {
	g, ok := GateOf(FeatureLinking)
	if !ok {
		t.Fatal("GateOf(FeatureLinking) not registered")
	}
	if g.Kind != GateServerMin || g.Version != 70 {
		t.Errorf("GateOf(FeatureLinking) = %v/%d, want ServerMin/70", g.Kind, g.Version)
	}
	if g.Kind.String() != "ServerMin" {
		t.Errorf("Kind.String() = %q, want ServerMin", g.Kind.String())
	}
}

func TestCapabilityError(t *testing.T) {
	err := require(40, FeatureNotHeld, true, 7, "  It does not support notHeld parameter.")
	var ce *CapabilityError
	if !errors.As(err, &ce) {
		t.Fatalf("require() = %v, want *CapabilityError", err)
	}
	if ce.ID != 7 || ce.Feature != FeatureNotHeld {
		t.Errorf("CapabilityError = {%d %d}, want {7 %d}", ce.ID, ce.Feature, FeatureNotHeld)
	}
	if !strings.Contains(ce.Error(), "notHeld") {
		t.Errorf("Error() = %q, want it to mention notHeld", ce.Error())
	}

	if err := require(44, FeatureNotHeld, true, 7, "x"); err != nil {
		t.Errorf("require() at threshold = %v, want nil", err)
	}
	if err := require(40, FeatureNotHeld, false, 7, "x"); err != nil {
		t.Errorf("require() unused = %v, want nil", err)
	}

	err = unsupported(3, FeatureContractDetails, "")
	if !errors.As(err, &ce) || ce.ID != NoValidID {
		t.Fatalf("unsupported() = %v, want CapabilityError with NoValidID", err)
	}
	if !strings.Contains(ce.Error(), "request not supported") {
		t.Errorf("Error() = %q, want generic text", ce.Error())
	}
}
