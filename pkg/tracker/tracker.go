package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vango-dev/ibtws/pkg/protocol"
)

// NoSecurityDefinition is the server error code for a contract that
// matches nothing.
const NoSecurityDefinition = 200

var (
	// ErrConnectionClosed ends every pending request when the session
	// drops.
	ErrConnectionClosed = errors.New("tracker: connection closed")

	// ErrDuplicateID is returned when a request id is already pending.
	ErrDuplicateID = errors.New("tracker: request id already pending")
)

// RequestError is a server error addressed to a tracked request.
type RequestError struct {
	ReqID   int
	Code    int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("tracker: request %d failed: %d %s", e.ReqID, e.Code, e.Message)
}

// Warnings and farm status notices carry codes 2100-2199 and never end a
// request.
func isWarning(code int) bool {
	return code >= 2100 && code < 2200
}

// pending collects the items of one request until it finishes.
type pending[T any] struct {
	items []T
	done  chan struct{}
	err   error
}

func newPending[T any]() *pending[T] {
	return &pending[T]{done: make(chan struct{})}
}

func (p *pending[T]) finish(err error) {
	p.err = err
	close(p.done)
}

type historyReq struct {
	*pending[protocol.Bar]
	end protocol.HistoricalDataEnd
}

// Requesters are satisfied by *client.Client.
type (
	ContractRequester interface {
		ReqContractDetails(reqID int, contract *protocol.Contract) error
	}
	HistoryRequester interface {
		ReqHistoricalData(r *protocol.ReqHistoricalData) error
	}
	ExecutionRequester interface {
		ReqExecutions(reqID int, filter protocol.ExecutionFilter) error
	}
)

// Tracker is a protocol.Sink that forwards everything to the next sink and
// resolves tracked requests on the way.
type Tracker struct {
	protocol.Sink
	logger *slog.Logger

	mu         sync.Mutex
	contracts  map[int]*pending[protocol.ContractDetails]
	history    map[int]*historyReq
	executions map[int]*pending[protocol.ExecutionData]

	ledger *Ledger
}

// New returns a tracker forwarding to next. A nil next discards events.
func New(next protocol.Sink, logger *slog.Logger) *Tracker {
	if next == nil {
		next = protocol.NopSink{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		Sink:       next,
		logger:     logger.With("component", "tracker"),
		contracts:  make(map[int]*pending[protocol.ContractDetails]),
		history:    make(map[int]*historyReq),
		executions: make(map[int]*pending[protocol.ExecutionData]),
		ledger:     NewLedger(),
	}
}

// Ledger returns the trade ledger fed by execution and commission reports.
func (t *Tracker) Ledger() *Ledger {
	return t.ledger
}

// ContractDetails requests the details of contract and waits for all of
// them. A contract the server does not know yields an empty result.
func (t *Tracker) ContractDetails(ctx context.Context, r ContractRequester, reqID int, contract *protocol.Contract) ([]protocol.ContractDetails, error) {
	p := newPending[protocol.ContractDetails]()
	if err := register(t, t.contracts, reqID, p); err != nil {
		return nil, err
	}
	if err := r.ReqContractDetails(reqID, contract); err != nil {
		unregister(t, t.contracts, reqID)
		return nil, err
	}
	if err := t.wait(ctx, p.done); err != nil {
		unregister(t, t.contracts, reqID)
		return nil, err
	}
	return p.items, p.err
}

// HistoryResult is a completed historical data request.
type HistoryResult struct {
	Bars  []protocol.Bar
	Start string
	End   string
}

// HistoricalData requests bars and waits for the end marker. When ctx ends
// first and r can cancel, the request is cancelled on the server.
func (t *Tracker) HistoricalData(ctx context.Context, r HistoryRequester, req *protocol.ReqHistoricalData) (HistoryResult, error) {
	h := &historyReq{pending: newPending[protocol.Bar]()}
	if err := register(t, t.history, req.TickerID, h); err != nil {
		return HistoryResult{}, err
	}
	if err := r.ReqHistoricalData(req); err != nil {
		unregister(t, t.history, req.TickerID)
		return HistoryResult{}, err
	}
	if err := t.wait(ctx, h.done); err != nil {
		unregister(t, t.history, req.TickerID)
		if c, ok := r.(interface{ CancelHistoricalData(int) error }); ok {
			c.CancelHistoricalData(req.TickerID)
		}
		return HistoryResult{}, err
	}
	if h.err != nil {
		return HistoryResult{}, h.err
	}
	return HistoryResult{Bars: h.items, Start: h.end.Start, End: h.end.End}, nil
}

// Executions requests the execution reports matching filter.
func (t *Tracker) Executions(ctx context.Context, r ExecutionRequester, reqID int, filter protocol.ExecutionFilter) ([]protocol.ExecutionData, error) {
	p := newPending[protocol.ExecutionData]()
	if err := register(t, t.executions, reqID, p); err != nil {
		return nil, err
	}
	if err := r.ReqExecutions(reqID, filter); err != nil {
		unregister(t, t.executions, reqID)
		return nil, err
	}
	if err := t.wait(ctx, p.done); err != nil {
		unregister(t, t.executions, reqID)
		return nil, err
	}
	return p.items, p.err
}

// Pending reports the number of requests awaiting an answer.
func (t *Tracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.contracts) + len(t.history) + len(t.executions)
}

func (t *Tracker) wait(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func register[V any](t *Tracker, m map[int]V, id int, v V) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := m[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}
	m[id] = v
	return nil
}

func unregister[V any](t *Tracker, m map[int]V, id int) {
	t.mu.Lock()
	delete(m, id)
	t.mu.Unlock()
}

// take removes and returns the pending entry for id.
func take[V any](t *Tracker, m map[int]V, id int) (V, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := m[id]
	if ok {
		delete(m, id)
	}
	return v, ok
}

func lookup[V any](t *Tracker, m map[int]V, id int) (V, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := m[id]
	return v, ok
}
