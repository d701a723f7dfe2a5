package tracker

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vango-dev/ibtws/pkg/protocol"
)

func TestLedgerJoin(t *testing.T) {
	tests := []struct {
		name           string
		commissionLast bool
	}{
		{"execution first", true},
		{"commission first", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger()
			exec := func() {
				l.addExecution(protocol.Contract{Symbol: "ES"}, protocol.Execution{ExecID: "00018037.5a1b.01.01", Shares: 2, Price: 5012.25})
			}
			comm := func() {
				l.addCommission(protocol.CommissionReport{ExecID: "00018037.5a1b.01.01", Commission: 4.2, Currency: "USD", RealizedPNL: protocol.Some(-12.5)})
			}
			if tt.commissionLast {
				exec()
				if tr, _ := l.Trade("00018037.5a1b.01"); tr.Complete() {
					t.Error("Complete() = true before commission")
				}
				comm()
			} else {
				comm()
				exec()
			}

			tr, ok := l.Trade("00018037.5a1b.01")
			if !ok {
				t.Fatal("trade not found")
			}
			if !tr.Complete() {
				t.Error("Complete() = false")
			}
			if tr.Contract.Symbol != "ES" || tr.Execution.Shares != 2 {
				t.Errorf("trade = %+v", tr)
			}
			if !tr.Commission.Equal(decimal.RequireFromString("4.2")) {
				t.Errorf("Commission = %s, want 4.2", tr.Commission)
			}
			if !tr.RealizedPNL.Valid || tr.RealizedPNL.Decimal.String() != "-12.5" {
				t.Errorf("RealizedPNL = %v, want -12.5", tr.RealizedPNL)
			}
			if got := tr.Notional().String(); got != "10024.5" {
				t.Errorf("Notional() = %s, want 10024.5", got)
			}
		})
	}
}

func TestLedgerCorrections(t *testing.T) {
	l := NewLedger()
	c := protocol.Contract{Symbol: "IBM"}

	l.addExecution(c, protocol.Execution{ExecID: "0001.01.01.01", Shares: 100, Price: 10})
	l.addExecution(c, protocol.Execution{ExecID: "0001.01.01.02", Shares: 90, Price: 10})
	// A stale copy of the original report.
	l.addExecution(c, protocol.Execution{ExecID: "0001.01.01.01", Shares: 100, Price: 10})

	tr, _ := l.Trade("0001.01.01")
	if tr.Execution.Shares != 90 {
		t.Errorf("Shares = %d, want 90 from the correction", tr.Execution.Shares)
	}
	if tr.Corrections != 2 {
		t.Errorf("Corrections = %d, want 2", tr.Corrections)
	}
	if n := len(l.Trades()); n != 1 {
		t.Errorf("Trades() = %d, want 1", n)
	}
}

func TestLedgerTotalsPerCurrency(t *testing.T) {
	l := NewLedger()
	reports := []protocol.CommissionReport{
		{ExecID: "a.1", Commission: 0.1, Currency: "USD", RealizedPNL: protocol.Some(1.1)},
		{ExecID: "b.1", Commission: 0.2, Currency: "USD", RealizedPNL: protocol.None[float64]()},
		{ExecID: "c.1", Commission: 3, Currency: "EUR", RealizedPNL: protocol.Some(-2.0)},
	}
	for _, r := range reports {
		l.addCommission(r)
	}

	comm := l.Commissions()
	if got := comm["USD"].String(); got != "0.3" {
		t.Errorf("Commissions()[USD] = %s, want 0.3", got)
	}
	if got := comm["EUR"].String(); got != "3" {
		t.Errorf("Commissions()[EUR] = %s, want 3", got)
	}

	pnl := l.RealizedPNL()
	if got := pnl["USD"].String(); got != "1.1" {
		t.Errorf("RealizedPNL()[USD] = %s, want 1.1", got)
	}
	if got := pnl["EUR"].String(); got != "-2" {
		t.Errorf("RealizedPNL()[EUR] = %s, want -2", got)
	}

	l.Reset()
	if n := len(l.Trades()); n != 0 {
		t.Errorf("Trades() after Reset = %d, want 0", n)
	}
}
