package tracker

import "github.com/vango-dev/ibtws/pkg/protocol"

// Sink methods the tracker observes. Everything else reaches the next sink
// through the embedded interface.

func (t *Tracker) ContractData(ev protocol.ContractData) {
	t.collectContract(ev)
	t.Sink.ContractData(ev)
}

func (t *Tracker) BondContractData(ev protocol.ContractData) {
	t.collectContract(ev)
	t.Sink.BondContractData(ev)
}

func (t *Tracker) collectContract(ev protocol.ContractData) {
	t.mu.Lock()
	if p, ok := t.contracts[ev.ReqID]; ok {
		p.items = append(p.items, ev.Details)
	}
	t.mu.Unlock()
}

func (t *Tracker) ContractDataEnd(ev protocol.ContractDataEnd) {
	if p, ok := take(t, t.contracts, ev.ReqID); ok {
		p.finish(nil)
	}
	t.Sink.ContractDataEnd(ev)
}

func (t *Tracker) HistoricalData(ev protocol.HistoricalBar) {
	t.mu.Lock()
	if h, ok := t.history[ev.ReqID]; ok {
		h.items = append(h.items, ev.Bar)
	}
	t.mu.Unlock()
	t.Sink.HistoricalData(ev)
}

func (t *Tracker) HistoricalDataEnd(ev protocol.HistoricalDataEnd) {
	if h, ok := take(t, t.history, ev.ReqID); ok {
		h.end = ev
		h.finish(nil)
	}
	t.Sink.HistoricalDataEnd(ev)
}

func (t *Tracker) ExecutionData(ev protocol.ExecutionData) {
	t.mu.Lock()
	if p, ok := t.executions[ev.ReqID]; ok {
		p.items = append(p.items, ev)
	}
	t.mu.Unlock()
	t.ledger.addExecution(ev.Contract, ev.Execution)
	t.Sink.ExecutionData(ev)
}

func (t *Tracker) ExecutionDataEnd(ev protocol.ExecutionDataEnd) {
	if p, ok := take(t, t.executions, ev.ReqID); ok {
		p.finish(nil)
	}
	t.Sink.ExecutionDataEnd(ev)
}

func (t *Tracker) CommissionReport(ev protocol.CommissionReport) {
	t.ledger.addCommission(ev)
	t.Sink.CommissionReport(ev)
}

// Error ends the tracked request the error is addressed to. Error 200 on a
// contract details request completes it empty and is followed downstream
// by a ContractDataEnd.
func (t *Tracker) Error(ev protocol.ErrorMessage) {
	endContract := t.failRequest(ev)
	t.Sink.Error(ev)
	if endContract {
		t.Sink.ContractDataEnd(protocol.ContractDataEnd{ReqID: ev.ID})
	}
}

func (t *Tracker) failRequest(ev protocol.ErrorMessage) bool {
	if ev.ID == protocol.NoValidID || isWarning(ev.Code) {
		return false
	}
	reqErr := &RequestError{ReqID: ev.ID, Code: ev.Code, Message: ev.Message}

	if p, ok := take(t, t.contracts, ev.ID); ok {
		if ev.Code == NoSecurityDefinition {
			t.logger.Debug("no security definition, ending contract details", "req_id", ev.ID)
			p.finish(nil)
			return true
		}
		p.finish(reqErr)
		return false
	}
	if h, ok := take(t, t.history, ev.ID); ok {
		h.finish(reqErr)
		return false
	}
	if p, ok := take(t, t.executions, ev.ID); ok {
		p.finish(reqErr)
	}
	return false
}

// ConnectionClosed fails every pending request.
func (t *Tracker) ConnectionClosed() {
	t.mu.Lock()
	contracts, history, executions := t.contracts, t.history, t.executions
	t.contracts = make(map[int]*pending[protocol.ContractDetails])
	t.history = make(map[int]*historyReq)
	t.executions = make(map[int]*pending[protocol.ExecutionData])
	t.mu.Unlock()

	n := len(contracts) + len(history) + len(executions)
	if n > 0 {
		t.logger.Warn("connection closed with requests pending", "pending", n)
	}
	for _, p := range contracts {
		p.finish(ErrConnectionClosed)
	}
	for _, h := range history {
		h.finish(ErrConnectionClosed)
	}
	for _, p := range executions {
		p.finish(ErrConnectionClosed)
	}
	t.Sink.ConnectionClosed()
}
