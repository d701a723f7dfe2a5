package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/vango-dev/ibtws/pkg/client"
	"github.com/vango-dev/ibtws/pkg/protocol"
)

// LogHook writes one Debug record per message in either direction.
type LogHook struct {
	logger *slog.Logger
	level  slog.Level
}

// Logging returns a hook that logs traffic on logger at Debug.
// A nil logger uses slog.Default().
func Logging(logger *slog.Logger) *LogHook {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogHook{logger: logger.With("component", "wire"), level: slog.LevelDebug}
}

// WithLevel returns a copy that logs at level.
func (h *LogHook) WithLevel(level slog.Level) *LogHook {
	return &LogHook{logger: h.logger, level: level}
}

func (h *LogHook) Send(info client.SendInfo, next func() error) error {
	err := next()
	if err != nil {
		h.logger.Warn("send", "message", info.Tag.String(), "id", info.ID, "error", err)
		return err
	}
	h.logger.Log(context.Background(), h.level, "send",
		"message", info.Tag.String(),
		"id", info.ID,
		"bytes", info.Bytes)
	return nil
}

func (h *LogHook) Received(tag protocol.InTag, elapsed time.Duration, err error) {
	if err != nil {
		h.logger.Warn("recv", "message", tag.String(), "error", err)
		return
	}
	h.logger.Log(context.Background(), h.level, "recv", "message", tag.String(), "elapsed", elapsed)
}

func (h *LogHook) Connected(hello protocol.ServerHello) {
	h.logger.Info("session up", "server_version", hello.Version, "server_time", hello.Time)
}

func (h *LogHook) Disconnected() {
	h.logger.Info("session down")
}
