// Package errors is the registry of client-side error codes.
//
// The gateway reports its own failures as (id, code, message) triples.
// Failures detected by the client use the same shape with codes from
// 501 upward, so applications handle both through one error callback.
//
// # Code Ranges
//
//   - 501-508: connection state and stream integrity
//   - 510-550: a request could not be written; the connection is closed
//
// Code 503 doubles as the capability error: the request needs a newer
// server than the one connected.
//
// # Usage
//
//	err := errors.New(errors.FailSendReqMkt).WithID(tickerID).Wrap(ioErr)
//	sink.Error(protocol.ErrorMessage{ID: err.ID, Code: err.Code, Message: err.Text()})
package errors
