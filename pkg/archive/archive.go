package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/vango-dev/ibtws/pkg/protocol"
)

// ErrClosed is returned by Close when called twice.
var ErrClosed = errors.New("archive: closed")

// Putter is the subset of *s3.Client used by Archive.
type Putter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config configures an Archive.
type Config struct {
	// Bucket is the destination bucket. Required.
	Bucket string

	// Prefix is prepended to every key.
	Prefix string

	// Queue is the number of pending uploads held before new payloads
	// are dropped.
	// Default: 64.
	Queue int

	// Timeout bounds each PutObject call.
	// Default: 30s.
	Timeout time.Duration

	// Logger for upload failures.
	// Default: slog.Default().
	Logger *slog.Logger
}

// Stats counts archive outcomes.
type Stats struct {
	Stored  int64
	Failed  int64
	Dropped int64
}

type object struct {
	key         string
	body        string
	contentType string
	metadata    map[string]string
}

// Archive is a protocol.Sink decorator that uploads report payloads.
type Archive struct {
	protocol.Sink

	client Putter
	config Config
	logger *slog.Logger
	now    func() time.Time

	queue chan object
	done  chan struct{}

	mu     sync.RWMutex
	closed bool

	stored  atomic.Int64
	failed  atomic.Int64
	dropped atomic.Int64
}

var _ protocol.Sink = (*Archive)(nil)

// New starts the upload worker and returns the decorator. next may be nil.
func New(next protocol.Sink, client Putter, config Config) *Archive {
	if next == nil {
		next = protocol.NopSink{}
	}
	if config.Queue <= 0 {
		config.Queue = 64
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	a := &Archive{
		Sink:   next,
		client: client,
		config: config,
		logger: config.Logger.With("component", "archive", "bucket", config.Bucket),
		now:    time.Now,
		queue:  make(chan object, config.Queue),
		done:   make(chan struct{}),
	}
	go a.run()
	return a
}

// Stats returns a snapshot of the counters.
func (a *Archive) Stats() Stats {
	return Stats{
		Stored:  a.stored.Load(),
		Failed:  a.failed.Load(),
		Dropped: a.dropped.Load(),
	}
}

// Close stops accepting payloads and waits for queued uploads, or for ctx.
func (a *Archive) Close(ctx context.Context) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return ErrClosed
	}
	a.closed = true
	close(a.queue)
	a.mu.Unlock()

	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *Archive) FundamentalData(ev protocol.FundamentalData) {
	a.enqueue(fmt.Sprintf("fundamental/%d-%d.xml", ev.ReqID, a.now().UnixNano()), ev.Data,
		map[string]string{"req-id": fmt.Sprint(ev.ReqID)})
	a.Sink.FundamentalData(ev)
}

func (a *Archive) ReceiveFA(ev protocol.ReceiveFA) {
	a.enqueue(fmt.Sprintf("fa/%s-%d.xml", faName(ev.DataType), a.now().UnixNano()), ev.XML,
		map[string]string{"fa-data-type": fmt.Sprint(ev.DataType)})
	a.Sink.ReceiveFA(ev)
}

func (a *Archive) ScannerParameters(ev protocol.ScannerParameters) {
	a.enqueue(fmt.Sprintf("scanner/parameters-%d.xml", a.now().UnixNano()), ev.XML, nil)
	a.Sink.ScannerParameters(ev)
}

func (a *Archive) enqueue(key, body string, metadata map[string]string) {
	if body == "" {
		return
	}
	obj := object{
		key:         a.config.Prefix + key,
		body:        body,
		contentType: contentType(body),
		metadata:    metadata,
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		a.dropped.Add(1)
		return
	}
	select {
	case a.queue <- obj:
	default:
		a.dropped.Add(1)
		a.logger.Warn("archive queue full, dropping payload", "key", obj.key)
	}
}

func (a *Archive) run() {
	defer close(a.done)
	for obj := range a.queue {
		if err := a.put(obj); err != nil {
			a.failed.Add(1)
			a.logger.Error("archive upload failed", "key", obj.key, "error", err)
			continue
		}
		a.stored.Add(1)
		a.logger.Debug("archived", "key", obj.key, "bytes", len(obj.body))
	}
}

func (a *Archive) put(obj object) error {
	ctx, cancel := context.WithTimeout(context.Background(), a.config.Timeout)
	defer cancel()

	metadata := map[string]string{"archived-at": a.now().UTC().Format(time.RFC3339)}
	for k, v := range obj.metadata {
		metadata[k] = v
	}
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.config.Bucket),
		Key:         aws.String(obj.key),
		Body:        strings.NewReader(obj.body),
		ContentType: aws.String(obj.contentType),
		Metadata:    metadata,
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", obj.key, err)
	}
	return nil
}

func faName(dataType int) string {
	switch dataType {
	case protocol.FAGroups:
		return "groups"
	case protocol.FAProfiles:
		return "profiles"
	case protocol.FAAliases:
		return "aliases"
	}
	return fmt.Sprintf("type%d", dataType)
}

func contentType(body string) string {
	if strings.HasPrefix(strings.TrimSpace(body), "<") {
		return "application/xml"
	}
	return "text/plain; charset=utf-8"
}
