package main

import (
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/vango-dev/ibtws/pkg/protocol"
)

// printer shows session events on stdout. Notices are always printed;
// everything else only once verbose is set.
type printer struct {
	protocol.NopSink

	times   chan protocol.CurrentTime
	verbose atomic.Bool
}

func newPrinter() *printer {
	return &printer{times: make(chan protocol.CurrentTime, 1)}
}

func (p *printer) CurrentTime(ev protocol.CurrentTime) {
	select {
	case p.times <- ev:
	default:
	}
	p.event("currentTime", ev)
}

func (p *printer) ManagedAccounts(ev protocol.ManagedAccounts) {
	info("Accounts:       %s", ev.Accounts)
}

func (p *printer) NextValidID(ev protocol.NextValidID) {
	info("Next order id:  %d", ev.OrderID)
}

func (p *printer) Error(ev protocol.ErrorMessage) {
	switch {
	case ev.Code >= 2100 && ev.Code < 2200:
		info("[%d] %s", ev.Code, ev.Message)
	case ev.ID == protocol.NoValidID:
		warn("[%d] %s", ev.Code, ev.Message)
	default:
		warn("[%d] id %d: %s", ev.Code, ev.ID, ev.Message)
	}
}

func (p *printer) ConnectionError(err error) {
	errorMsg("connection error: %v", err)
}

func (p *printer) ConnectionClosed() {
	warn("Connection closed")
}

func (p *printer) TickPrice(ev protocol.TickPrice)         { p.event("tickPrice", ev) }
func (p *printer) TickSize(ev protocol.TickSize)           { p.event("tickSize", ev) }
func (p *printer) OrderStatus(ev protocol.OrderStatus)     { p.event("orderStatus", ev) }
func (p *printer) OpenOrder(ev protocol.OpenOrder)         { p.event("openOrder", ev) }
func (p *printer) AccountValue(ev protocol.AccountValue)   { p.event("accountValue", ev) }
func (p *printer) Position(ev protocol.Position)           { p.event("position", ev) }
func (p *printer) ExecutionData(ev protocol.ExecutionData) { p.event("executionData", ev) }
func (p *printer) NewsBulletin(ev protocol.NewsBulletin)   { p.event("newsBulletin", ev) }

func (p *printer) event(typ string, v any) {
	if !p.verbose.Load() {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		warn("%s: %v", typ, err)
		return
	}
	fmt.Printf("  %-14s %s\n", typ, b)
}
