package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/ibtws/pkg/client"
	"github.com/vango-dev/ibtws/pkg/protocol"
	"github.com/vango-dev/ibtws/pkg/tracker"
)

const testTimeout = 2 * time.Second

var testNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(version int) *Server {
	return New(Config{
		ServerVersion: version,
		Accounts:      "DU1,DU2",
		FirstOrderID:  100,
		FA:            map[int]string{protocol.FAGroups: "<ListOfGroups/>"},
		Now:           func() time.Time { return testNow },
		Logger:        quietLogger(),
	})
}

// rawClient drives a session token by token.
type rawClient struct {
	t    *testing.T
	conn net.Conn
	dec  *protocol.Decoder
}

func startRaw(t *testing.T, s *Server) (*rawClient, chan error) {
	t.Helper()
	a, b := net.Pipe()
	errc := make(chan error, 1)
	go func() { errc <- s.ServeConn(b) }()
	t.Cleanup(func() { a.Close() })
	a.SetDeadline(time.Now().Add(testTimeout))
	return &rawClient{t: t, conn: a, dec: protocol.NewDecoder(a)}, errc
}

func (c *rawClient) send(tokens ...string) {
	c.t.Helper()
	if _, err := c.conn.Write([]byte(strings.Join(tokens, "\x00") + "\x00")); err != nil {
		c.t.Fatalf("Write() error = %v", err)
	}
}

func (c *rawClient) next(n int) []string {
	c.t.Helper()
	out := make([]string, n)
	for i := range out {
		tok, err := c.dec.ReadString()
		if err != nil {
			c.t.Fatalf("ReadString() error = %v after %q", err, out[:i])
		}
		out[i] = tok
	}
	return out
}

func (c *rawClient) expect(want ...string) {
	c.t.Helper()
	if got := c.next(len(want)); !reflect.DeepEqual(got, want) {
		c.t.Errorf("tokens = %q, want %q", got, want)
	}
}

func TestHandshakeBareClientID(t *testing.T) {
	c, errc := startRaw(t, newTestServer(63))
	c.send("63")
	c.expect("63", "20261017 09:30:00 UTC")
	c.send("12")
	c.expect("9", "1", "100")
	c.expect("15", "1", "DU1,DU2")

	c.send("49", "1")
	c.expect("49", "1", "1792229400")

	c.conn.Close()
	if err := <-errc; err != nil {
		t.Errorf("ServeConn() = %v, want nil on hang up", err)
	}
}

func TestHandshakeStartAPI(t *testing.T) {
	c, _ := startRaw(t, newTestServer(71))
	c.send("63")
	c.expect("71", "20261017 09:30:00 UTC")
	c.send("71", "1", "12")
	c.expect("9", "1", "100")
	c.expect("15", "1", "DU1,DU2")

	// A second START_API does not greet again.
	c.send("71", "1", "12", "8", "1", "1")
	c.expect("9", "1", "100")
}

func TestRequests(t *testing.T) {
	c, _ := startRaw(t, newTestServer(71))
	c.send("63")
	c.next(2)
	c.send("71", "1", "0")
	c.next(6)

	c.send("17", "1")
	c.expect("15", "1", "DU1,DU2")

	c.send("24", "1")
	c.expect("19", "1", "<ScanParameterResponse/>")

	c.send("18", "1", "1")
	c.expect("16", "1", "1", "<ListOfGroups/>")

	e := protocol.NewEncoder()
	(&protocol.ReqContractDetails{ReqID: 7, Contract: &protocol.Contract{Symbol: "ZZZ", SecType: "STK"}}).Encode(e, 71)
	c.conn.Write(e.Bytes())
	c.expect("4", "2", "7", "200", NoSecurityDefinitionText)

	// The stream stays aligned after the skipped contract fields.
	c.send("49", "1")
	c.expect("49", "1", "1792229400")
}

func TestUnsupportedRequest(t *testing.T) {
	c, errc := startRaw(t, newTestServer(71))
	c.send("63")
	c.next(2)
	c.send("3", "43")

	select {
	case err := <-errc:
		if !errors.Is(err, ErrUnsupported) {
			t.Errorf("ServeConn() = %v, want ErrUnsupported", err)
		}
	case <-time.After(testTimeout):
		t.Fatal("session still running")
	}
}

func TestFieldCount(t *testing.T) {
	old := fieldCount(&protocol.ReqContractDetails{}, 38)
	cur := fieldCount(&protocol.ReqContractDetails{}, 71)
	if old <= 0 || cur <= old {
		t.Errorf("fieldCount = %d at 38, %d at 71; want 0 < old < cur", old, cur)
	}
	if n := fieldCount(&protocol.ReqCurrentTime{}, 71); n != 0 {
		t.Errorf("fieldCount(ReqCurrentTime) = %d, want 0", n)
	}
}

type events struct {
	protocol.NopSink
	times    chan protocol.CurrentTime
	accounts chan protocol.ManagedAccounts
	errs     chan protocol.ErrorMessage
}

func newEvents() *events {
	return &events{
		times:    make(chan protocol.CurrentTime, 4),
		accounts: make(chan protocol.ManagedAccounts, 4),
		errs:     make(chan protocol.ErrorMessage, 4),
	}
}

func (e *events) CurrentTime(ev protocol.CurrentTime)         { e.times <- ev }
func (e *events) ManagedAccounts(ev protocol.ManagedAccounts) { e.accounts <- ev }
func (e *events) Error(ev protocol.ErrorMessage)              { e.errs <- ev }

func TestClientSession(t *testing.T) {
	for _, version := range []int{63, 71} {
		t.Run(fmt.Sprintf("v%d", version), func(t *testing.T) {
			s := newTestServer(version)
			ln, err := net.Listen("tcp", "127.0.0.1:0")
			if err != nil {
				t.Fatalf("Listen() error = %v", err)
			}
			ctx, cancel := context.WithCancel(context.Background())
			served := make(chan error, 1)
			go func() { served <- s.Serve(ctx, ln) }()

			ev := newEvents()
			tr := tracker.New(ev, quietLogger())
			c := client.New(tr, client.Options{Logger: quietLogger()})
			if err := c.Connect(ctx, ln.Addr().String(), 5); err != nil {
				t.Fatalf("Connect() error = %v", err)
			}
			if c.ServerVersion() != version {
				t.Errorf("ServerVersion() = %d, want %d", c.ServerVersion(), version)
			}

			select {
			case acc := <-ev.accounts:
				if acc.Accounts != "DU1,DU2" {
					t.Errorf("Accounts = %q, want DU1,DU2", acc.Accounts)
				}
			case <-time.After(testTimeout):
				t.Fatal("no managed accounts")
			}

			if err := c.ReqCurrentTime(); err != nil {
				t.Fatalf("ReqCurrentTime() error = %v", err)
			}
			select {
			case got := <-ev.times:
				if got.Time != testNow.Unix() {
					t.Errorf("Time = %d, want %d", got.Time, testNow.Unix())
				}
			case <-time.After(testTimeout):
				t.Fatal("no current time")
			}

			wctx, wcancel := context.WithTimeout(ctx, testTimeout)
			defer wcancel()
			details, err := tr.ContractDetails(wctx, c, 9, &protocol.Contract{Symbol: "NOPE", SecType: "STK"})
			if err != nil {
				t.Fatalf("ContractDetails() error = %v", err)
			}
			if len(details) != 0 {
				t.Errorf("details = %d, want 0", len(details))
			}
			if got := <-ev.errs; got.Code != NoSecurityDefinitionCode || got.ID != 9 {
				t.Errorf("error = {%d %d}, want {9 200}", got.ID, got.Code)
			}

			c.Disconnect()
			cancel()
			select {
			case err := <-served:
				if !errors.Is(err, ErrServerClosed) {
					t.Errorf("Serve() = %v, want ErrServerClosed", err)
				}
			case <-time.After(testTimeout):
				t.Fatal("Serve() did not return")
			}
		})
	}
}

func TestServeAfterClose(t *testing.T) {
	s := newTestServer(71)
	s.Close()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	if err := s.Serve(context.Background(), ln); !errors.Is(err, ErrServerClosed) {
		t.Errorf("Serve() = %v, want ErrServerClosed", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}
