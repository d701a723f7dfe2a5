package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/vango-dev/ibtws/pkg/protocol"
)

// downstream records the order of forwarded events.
type downstream struct {
	protocol.NopSink
	mu     sync.Mutex
	events []string
}

func (d *downstream) add(s string) {
	d.mu.Lock()
	d.events = append(d.events, s)
	d.mu.Unlock()
}

func (d *downstream) ContractData(ev protocol.ContractData)       { d.add(fmt.Sprint("contract ", ev.ReqID)) }
func (d *downstream) ContractDataEnd(ev protocol.ContractDataEnd) { d.add(fmt.Sprint("contract end ", ev.ReqID)) }
func (d *downstream) HistoricalData(ev protocol.HistoricalBar)    { d.add(fmt.Sprint("bar ", ev.ReqID)) }
func (d *downstream) Error(ev protocol.ErrorMessage)              { d.add(fmt.Sprint("error ", ev.ID, " ", ev.Code)) }
func (d *downstream) ConnectionClosed()                           { d.add("closed") }
func (d *downstream) TickPrice(ev protocol.TickPrice)             { d.add(fmt.Sprint("tick ", ev.TickerID)) }

func (d *downstream) got() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.events...)
}

func newTracker() (*Tracker, *downstream) {
	d := &downstream{}
	return New(d, slog.New(slog.NewTextHandler(io.Discard, nil))), d
}

// requester answers requests by calling back into the tracker, the way the
// reader goroutine would.
type requester struct {
	err       error
	contracts func(reqID int)
	history   func(reqID int)
	execs     func(reqID int)
	cancelled []int
}

func (r *requester) ReqContractDetails(reqID int, _ *protocol.Contract) error {
	if r.err != nil {
		return r.err
	}
	if r.contracts != nil {
		r.contracts(reqID)
	}
	return nil
}

func (r *requester) ReqHistoricalData(req *protocol.ReqHistoricalData) error {
	if r.err != nil {
		return r.err
	}
	if r.history != nil {
		r.history(req.TickerID)
	}
	return nil
}

func (r *requester) CancelHistoricalData(tickerID int) error {
	r.cancelled = append(r.cancelled, tickerID)
	return nil
}

func (r *requester) ReqExecutions(reqID int, _ protocol.ExecutionFilter) error {
	if r.err != nil {
		return r.err
	}
	if r.execs != nil {
		r.execs(reqID)
	}
	return nil
}

func TestContractDetailsCollects(t *testing.T) {
	tr, d := newTracker()
	r := &requester{contracts: func(id int) {
		tr.ContractData(protocol.ContractData{ReqID: id, Details: protocol.ContractDetails{MarketName: "NMS"}})
		tr.BondContractData(protocol.ContractData{ReqID: id, Details: protocol.ContractDetails{MarketName: "BOND"}})
		tr.ContractData(protocol.ContractData{ReqID: id + 1})
		tr.ContractDataEnd(protocol.ContractDataEnd{ReqID: id})
	}}

	got, err := tr.ContractDetails(context.Background(), r, 3, &protocol.Contract{Symbol: "IBM"})
	if err != nil {
		t.Fatalf("ContractDetails() error = %v", err)
	}
	if len(got) != 2 || got[0].MarketName != "NMS" || got[1].MarketName != "BOND" {
		t.Errorf("details = %+v, want NMS and BOND", got)
	}
	want := []string{"contract 3", "contract 4", "contract end 3"}
	if !reflect.DeepEqual(d.got(), want) {
		t.Errorf("downstream = %q, want %q", d.got(), want)
	}
	if n := tr.Pending(); n != 0 {
		t.Errorf("Pending() = %d, want 0", n)
	}
}

func TestContractDetailsNoSecurityDefinition(t *testing.T) {
	tr, d := newTracker()
	r := &requester{contracts: func(id int) {
		tr.Error(protocol.ErrorMessage{ID: id, Code: NoSecurityDefinition, Message: "No security definition has been found for the request"})
	}}

	got, err := tr.ContractDetails(context.Background(), r, 7, &protocol.Contract{Symbol: "NOPE"})
	if err != nil {
		t.Fatalf("ContractDetails() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("details = %d, want none", len(got))
	}
	want := []string{"error 7 200", "contract end 7"}
	if !reflect.DeepEqual(d.got(), want) {
		t.Errorf("downstream = %q, want %q", d.got(), want)
	}
}

func TestErrorRouting(t *testing.T) {
	tests := []struct {
		name       string
		ev         protocol.ErrorMessage
		downstream []string
	}{
		{"200 without pending request", protocol.ErrorMessage{ID: 9, Code: 200}, []string{"error 9 200"}},
		{"no id", protocol.ErrorMessage{ID: protocol.NoValidID, Code: 200}, []string{"error -1 200"}},
		{"farm notice", protocol.ErrorMessage{ID: 9, Code: 2104}, []string{"error 9 2104"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, d := newTracker()
			tr.Error(tt.ev)
			if !reflect.DeepEqual(d.got(), tt.downstream) {
				t.Errorf("downstream = %q, want %q", d.got(), tt.downstream)
			}
		})
	}
}

func TestWarningDoesNotEndRequest(t *testing.T) {
	tr, _ := newTracker()
	r := &requester{contracts: func(id int) {
		tr.Error(protocol.ErrorMessage{ID: id, Code: 2106, Message: "HMDS data farm connection is OK"})
		tr.ContractData(protocol.ContractData{ReqID: id})
		tr.ContractDataEnd(protocol.ContractDataEnd{ReqID: id})
	}}

	got, err := tr.ContractDetails(context.Background(), r, 1, nil)
	if err != nil || len(got) != 1 {
		t.Errorf("ContractDetails() = %d, %v; want 1, nil", len(got), err)
	}
}

func TestHistoricalData(t *testing.T) {
	tr, d := newTracker()
	r := &requester{history: func(id int) {
		tr.HistoricalData(protocol.HistoricalBar{ReqID: id, Bar: protocol.Bar{Date: "20261016", Close: 101.5}})
		tr.HistoricalData(protocol.HistoricalBar{ReqID: id, Bar: protocol.Bar{Date: "20261017", Close: 102}})
		tr.HistoricalDataEnd(protocol.HistoricalDataEnd{ReqID: id, Start: "20261016", End: "20261017"})
	}}

	res, err := tr.HistoricalData(context.Background(), r, &protocol.ReqHistoricalData{TickerID: 11})
	if err != nil {
		t.Fatalf("HistoricalData() error = %v", err)
	}
	if len(res.Bars) != 2 || res.Bars[1].Close != 102 {
		t.Errorf("bars = %+v", res.Bars)
	}
	if res.Start != "20261016" || res.End != "20261017" {
		t.Errorf("range = %s-%s, want 20261016-20261017", res.Start, res.End)
	}
	if got := d.got(); len(got) != 2 {
		t.Errorf("downstream = %q, want two bars", got)
	}
}

func TestHistoricalDataEmpty(t *testing.T) {
	tr, _ := newTracker()
	r := &requester{history: func(id int) {
		tr.HistoricalDataEnd(protocol.HistoricalDataEnd{ReqID: id, Start: "a", End: "b"})
	}}

	res, err := tr.HistoricalData(context.Background(), r, &protocol.ReqHistoricalData{TickerID: 2})
	if err != nil || len(res.Bars) != 0 {
		t.Errorf("HistoricalData() = %d bars, %v; want 0, nil", len(res.Bars), err)
	}
}

func TestHistoricalDataServerError(t *testing.T) {
	tr, _ := newTracker()
	r := &requester{history: func(id int) {
		tr.Error(protocol.ErrorMessage{ID: id, Code: 162, Message: "Historical Market Data Service error message:pacing violation"})
	}}

	_, err := tr.HistoricalData(context.Background(), r, &protocol.ReqHistoricalData{TickerID: 5})
	var re *RequestError
	if !errors.As(err, &re) {
		t.Fatalf("HistoricalData() error = %v, want *RequestError", err)
	}
	if re.ReqID != 5 || re.Code != 162 {
		t.Errorf("RequestError = {%d %d}, want {5 162}", re.ReqID, re.Code)
	}
}

func TestHistoricalDataContextCancels(t *testing.T) {
	tr, _ := newTracker()
	r := &requester{}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := tr.HistoricalData(ctx, r, &protocol.ReqHistoricalData{TickerID: 8})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("HistoricalData() error = %v, want DeadlineExceeded", err)
	}
	if !reflect.DeepEqual(r.cancelled, []int{8}) {
		t.Errorf("cancelled = %v, want [8]", r.cancelled)
	}
	if n := tr.Pending(); n != 0 {
		t.Errorf("Pending() = %d, want 0", n)
	}
}

func TestRequesterErrorUnregisters(t *testing.T) {
	tr, _ := newTracker()
	sendErr := errors.New("504: Not connected")
	r := &requester{err: sendErr}

	if _, err := tr.ContractDetails(context.Background(), r, 1, nil); !errors.Is(err, sendErr) {
		t.Errorf("ContractDetails() error = %v, want %v", err, sendErr)
	}
	if _, err := tr.Executions(context.Background(), r, 2, protocol.ExecutionFilter{}); !errors.Is(err, sendErr) {
		t.Errorf("Executions() error = %v, want %v", err, sendErr)
	}
	if n := tr.Pending(); n != 0 {
		t.Errorf("Pending() = %d, want 0", n)
	}
}

func TestDuplicateID(t *testing.T) {
	tr, _ := newTracker()
	started := make(chan struct{})
	r := &requester{contracts: func(int) { close(started) }}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := tr.ContractDetails(ctx, r, 4, nil)
		done <- err
	}()
	<-started

	if _, err := tr.ContractDetails(context.Background(), &requester{}, 4, nil); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("second ContractDetails() error = %v, want ErrDuplicateID", err)
	}
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("first ContractDetails() error = %v, want context.Canceled", err)
	}
}

func TestConnectionClosedFailsPending(t *testing.T) {
	tr, d := newTracker()
	started := make(chan struct{})
	r := &requester{contracts: func(int) { close(started) }}

	done := make(chan error, 1)
	go func() {
		_, err := tr.ContractDetails(context.Background(), r, 1, nil)
		done <- err
	}()
	<-started
	tr.ConnectionClosed()

	select {
	case err := <-done:
		if !errors.Is(err, ErrConnectionClosed) {
			t.Errorf("ContractDetails() error = %v, want ErrConnectionClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("pending request not failed")
	}
	if got := d.got(); !reflect.DeepEqual(got, []string{"closed"}) {
		t.Errorf("downstream = %q, want [closed]", got)
	}
}

func TestPassThrough(t *testing.T) {
	tr, d := newTracker()
	tr.TickPrice(protocol.TickPrice{TickerID: 42})
	if got := d.got(); !reflect.DeepEqual(got, []string{"tick 42"}) {
		t.Errorf("downstream = %q, want [tick 42]", got)
	}

	// A nil downstream discards.
	New(nil, nil).TickPrice(protocol.TickPrice{})
}

func TestExecutionsFeedLedger(t *testing.T) {
	tr, _ := newTracker()
	stock := protocol.Contract{Symbol: "IBM", SecType: "STK", Currency: "USD"}
	r := &requester{execs: func(id int) {
		tr.ExecutionData(protocol.ExecutionData{ReqID: id, Contract: stock, Execution: protocol.Execution{ExecID: "0001.01.01.01", Shares: 100, Price: 150.25, Side: "BOT"}})
		tr.ExecutionData(protocol.ExecutionData{ReqID: id, Contract: stock, Execution: protocol.Execution{ExecID: "0002.01.01.01", Shares: 50, Price: 151, Side: "SLD"}})
		tr.ExecutionDataEnd(protocol.ExecutionDataEnd{ReqID: id})
	}}

	execs, err := tr.Executions(context.Background(), r, 6, protocol.ExecutionFilter{Symbol: "IBM"})
	if err != nil {
		t.Fatalf("Executions() error = %v", err)
	}
	if len(execs) != 2 {
		t.Fatalf("executions = %d, want 2", len(execs))
	}

	tr.CommissionReport(protocol.CommissionReport{ExecID: "0001.01.01.01", Commission: 1.1, Currency: "USD"})
	tr.CommissionReport(protocol.CommissionReport{ExecID: "0002.01.01.01", Commission: 2.2, Currency: "USD", RealizedPNL: protocol.Some(24.5)})

	trades := tr.Ledger().Trades()
	if len(trades) != 2 || trades[0].Key != "0001.01.01" {
		t.Fatalf("trades = %+v", trades)
	}
	if got := tr.Ledger().Commissions()["USD"].String(); got != "3.3" {
		t.Errorf("Commissions()[USD] = %s, want 3.3", got)
	}
}
