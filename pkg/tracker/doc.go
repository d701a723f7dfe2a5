// Package tracker correlates inbound events with the requests that caused
// them.
//
// A Tracker is a protocol.Sink placed in front of the application sink.
// Every event is forwarded unchanged; in addition the tracker collects the
// answers to the request/response style calls so they can be awaited:
//
//	tr := tracker.New(app, logger)
//	c := client.New(tr, client.Options{})
//	...
//	details, err := tr.ContractDetails(ctx, c, 7, contract)
//
// The tracker also keeps a ledger of trades built from execution and
// commission reports, joined by trade key and aggregated with exact
// decimal arithmetic.
//
// A server error 200 (no security definition) addressed to a pending
// contract details request ends that request with no details, and the
// downstream sink sees a ContractDataEnd after the error.
package tracker
