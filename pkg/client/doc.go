// Package client drives a protocol session over a TCP connection to TWS or
// IB Gateway.
//
// A Client owns one connection at a time. Connect performs the version
// handshake, identifies the client and starts a reader goroutine that
// decodes inbound messages and delivers them to the Sink passed to New.
//
//	c := client.New(mySink, client.Options{Logger: slog.Default()})
//	if err := c.Connect(ctx, "127.0.0.1:7496", 1); err != nil {
//	    return err
//	}
//	defer c.Disconnect()
//
//	c.ReqCurrentTime()
//
// # Errors
//
// Every failure is reported to the sink's Error method with a numeric code
// (see internal/errors), exactly as the gateway reports its own errors.
// Request methods also return the error so callers can branch on it. A
// request the server is too old for is rejected with code 503 before any
// byte is written. A failed write reports the request's send-failure code
// and closes the connection.
//
// # Concurrency
//
// Request methods may be called from any goroutine, including from inside
// sink callbacks. Sink methods are called from the reader goroutine only.
package client
