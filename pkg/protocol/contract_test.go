package protocol

import "testing"

func TestContractEqual(t *testing.T) {
	legA := ComboLeg{ConID: 1, Ratio: 1, Action: "BUY", Exchange: "SMART"}
	legB := ComboLeg{ConID: 2, Ratio: 2, Action: "SELL", Exchange: "SMART"}

	tests := []struct {
		name string
		a, b *Contract
		want bool
	}{
		{
			name: "identical",
			a:    stock(),
			b:    stock(),
			want: true,
		},
		{
			name: "nil and non nil",
			a:    stock(),
			b:    nil,
			want: false,
		},
		{
			name: "different symbol",
			a:    stock(),
			b:    &Contract{Symbol: "MSFT", SecType: "STK", Exchange: "SMART", Currency: "USD"},
			want: false,
		},
		{
			name: "legs in any order",
			a:    &Contract{SecType: "BAG", ComboLegs: []ComboLeg{legA, legB}},
			b:    &Contract{SecType: "BAG", ComboLegs: []ComboLeg{legB, legA}},
			want: true,
		},
		{
			name: "legs compared as multiset",
			a:    &Contract{SecType: "BAG", ComboLegs: []ComboLeg{legA, legA, legB}},
			b:    &Contract{SecType: "BAG", ComboLegs: []ComboLeg{legA, legB, legB}},
			want: false,
		},
		{
			name: "missing leg",
			a:    &Contract{SecType: "BAG", ComboLegs: []ComboLeg{legA, legB}},
			b:    &Contract{SecType: "BAG", ComboLegs: []ComboLeg{legA}},
			want: false,
		},
		{
			name: "bond ignores descriptive fields",
			a:    &Contract{ConID: 9, SecType: "BOND", Symbol: "X", Currency: "USD", Expiry: "2030"},
			b:    &Contract{ConID: 9, SecType: "BOND", Symbol: "Y", Currency: "EUR", LocalSymbol: "Z"},
			want: true,
		},
		{
			name: "bond still compares exchange",
			a:    &Contract{ConID: 9, SecType: "BOND", Exchange: "A"},
			b:    &Contract{ConID: 9, SecType: "BOND", Exchange: "B"},
			want: false,
		},
		{
			name: "under comp on one side",
			a:    &Contract{Symbol: "S", UnderComp: &UnderComp{ConID: 1, Delta: 0.5}},
			b:    &Contract{Symbol: "S"},
			want: false,
		},
		{
			name: "equal under comp",
			a:    &Contract{Symbol: "S", UnderComp: &UnderComp{ConID: 1, Delta: 0.5}},
			b:    &Contract{Symbol: "S", UnderComp: &UnderComp{ConID: 1, Delta: 0.5}},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
			if tt.b != nil {
				if got := tt.b.Equal(tt.a); got != tt.want {
					t.Errorf("reverse Equal() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestTradeKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0001.01.01.01.01", "0001.01.01.01"},
		{"0000e0d5.4f1a.01.01", "0000e0d5.4f1a.01"},
		{"abc", "abc"},
		{"", ""},
		{"trailing.", "trailing"},
	}
	for _, tt := range tests {
		if got := TradeKey(tt.in); got != tt.want {
			t.Errorf("TradeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	e := &Execution{ExecID: "0001.01.01.01.01"}
	if got := e.TradeKey(); got != "0001.01.01.01" {
		t.Errorf("Execution.TradeKey() = %q, want 0001.01.01.01", got)
	}
}

func TestIsBag(t *testing.T) {
	if !(&Contract{SecType: "bag"}).IsBag() {
		t.Error("IsBag() = false for bag, want true")
	}
	if stock().IsBag() {
		t.Error("IsBag() = true for STK, want false")
	}
}
