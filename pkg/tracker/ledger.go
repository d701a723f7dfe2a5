package tracker

import (
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/vango-dev/ibtws/pkg/protocol"
)

// Trade is one execution with its corrections and commission, keyed by
// protocol.TradeKey.
type Trade struct {
	Key       string             `json:"key"`
	Contract  protocol.Contract  `json:"contract"`
	Execution protocol.Execution `json:"execution"`

	// Corrections counts execution reports after the first for this key.
	Corrections int `json:"corrections"`

	Commission  decimal.Decimal     `json:"commission"`
	Currency    string              `json:"currency,omitempty"`
	RealizedPNL decimal.NullDecimal `json:"realizedPnl"`

	hasExecution  bool
	hasCommission bool
}

// Notional is shares times price of the latest execution report.
func (t Trade) Notional() decimal.Decimal {
	return decimal.NewFromInt(int64(t.Execution.Shares)).Mul(decimal.NewFromFloat(t.Execution.Price))
}

// Complete reports whether both the execution and its commission arrived.
func (t Trade) Complete() bool {
	return t.hasExecution && t.hasCommission
}

// Ledger joins executions and commission reports by trade key. Either may
// arrive first.
type Ledger struct {
	mu     sync.Mutex
	trades map[string]*Trade
}

func NewLedger() *Ledger {
	return &Ledger{trades: make(map[string]*Trade)}
}

func (l *Ledger) entry(key string) *Trade {
	tr, ok := l.trades[key]
	if !ok {
		tr = &Trade{Key: key}
		l.trades[key] = tr
	}
	return tr
}

func (l *Ledger) addExecution(c protocol.Contract, e protocol.Execution) {
	key := protocol.TradeKey(e.ExecID)
	l.mu.Lock()
	defer l.mu.Unlock()

	tr := l.entry(key)
	if tr.hasExecution {
		tr.Corrections++
		// Corrections carry a higher last segment; a late duplicate of an
		// older report must not win.
		if suffix(e.ExecID) < suffix(tr.Execution.ExecID) {
			return
		}
	}
	tr.Contract = c
	tr.Execution = e
	tr.hasExecution = true
}

func (l *Ledger) addCommission(r protocol.CommissionReport) {
	key := protocol.TradeKey(r.ExecID)
	l.mu.Lock()
	defer l.mu.Unlock()

	tr := l.entry(key)
	tr.Commission = decimal.NewFromFloat(r.Commission)
	tr.Currency = r.Currency
	if pnl, ok := r.RealizedPNL.Get(); ok {
		tr.RealizedPNL = decimal.NewNullDecimal(decimal.NewFromFloat(pnl))
	} else {
		tr.RealizedPNL = decimal.NullDecimal{}
	}
	tr.hasCommission = true
}

func suffix(execID string) string {
	if i := strings.LastIndexByte(execID, '.'); i >= 0 {
		return execID[i+1:]
	}
	return ""
}

// Trade returns a copy of the trade for key.
func (l *Ledger) Trade(key string) (Trade, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	tr, ok := l.trades[key]
	if !ok {
		return Trade{}, false
	}
	return *tr, true
}

// Trades returns all trades ordered by key.
func (l *Ledger) Trades() []Trade {
	l.mu.Lock()
	out := make([]Trade, 0, len(l.trades))
	for _, tr := range l.trades {
		out = append(out, *tr)
	}
	l.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Commissions sums commissions per currency.
func (l *Ledger) Commissions() map[string]decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]decimal.Decimal)
	for _, tr := range l.trades {
		if tr.hasCommission {
			out[tr.Currency] = out[tr.Currency].Add(tr.Commission)
		}
	}
	return out
}

// RealizedPNL sums the realized profit and loss per currency over the
// trades that report one.
func (l *Ledger) RealizedPNL() map[string]decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]decimal.Decimal)
	for _, tr := range l.trades {
		if tr.RealizedPNL.Valid {
			out[tr.Currency] = out[tr.Currency].Add(tr.RealizedPNL.Decimal)
		}
	}
	return out
}

// Reset drops all trades.
func (l *Ledger) Reset() {
	l.mu.Lock()
	l.trades = make(map[string]*Trade)
	l.mu.Unlock()
}
