package gateway

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vango-dev/ibtws/pkg/protocol"
)

type session struct {
	config Config
	logger *slog.Logger
	dec    *protocol.Decoder
	w      io.Writer

	clientID int
	started  bool
	nextID   int
}

func (s *session) run() error {
	clientVersion, err := s.dec.ReadInt()
	if err != nil {
		return err
	}
	sv := s.config.ServerVersion

	e := protocol.NewEncoder()
	e.WriteInt(sv)
	if protocol.Supports(sv, protocol.FeatureServerTime) {
		e.WriteString(s.config.Now().Format(TimeLayout))
	}
	if err := s.flush(e); err != nil {
		return err
	}
	s.logger.Info("client hello", "client_version", clientVersion, "server_version", sv)

	// Before linking support the client id follows as a bare token.
	if protocol.Supports(sv, protocol.FeatureClientID) && !protocol.Supports(sv, protocol.FeatureLinking) {
		if s.clientID, err = s.dec.ReadInt(); err != nil {
			return err
		}
		if err := s.greet(); err != nil {
			return err
		}
	}

	for {
		tag, err := s.dec.ReadInt()
		if err != nil {
			return err
		}
		if _, err := s.dec.ReadInt(); err != nil {
			return err
		}
		if err := s.handle(protocol.OutTag(tag)); err != nil {
			return err
		}
	}
}

func (s *session) handle(tag protocol.OutTag) error {
	sv := s.config.ServerVersion
	s.logger.Debug("request", "tag", tag.String())

	switch tag {
	case protocol.OutStartAPI:
		id, err := s.dec.ReadInt()
		if err != nil {
			return err
		}
		s.clientID = id
		return s.greet()

	case protocol.OutReqCurrentTime:
		return s.reply(protocol.InCurrentTime, 1, s.config.Now().Unix())

	case protocol.OutReqIDs:
		if _, err := s.dec.ReadInt(); err != nil {
			return err
		}
		return s.reply(protocol.InNextValidID, 1, s.nextID)

	case protocol.OutReqManagedAccts:
		return s.reply(protocol.InManagedAccts, 1, s.config.Accounts)

	case protocol.OutReqScannerParameters:
		return s.reply(protocol.InScannerParameters, 1, s.config.ScannerParameters)

	case protocol.OutReqFA:
		typ, err := s.dec.ReadInt()
		if err != nil {
			return err
		}
		return s.reply(protocol.InReceiveFA, 1, typ, s.config.FA[typ])

	case protocol.OutReqContractData:
		n := fieldCount(&protocol.ReqContractDetails{}, sv)
		reqID := protocol.NoValidID
		if protocol.Supports(sv, protocol.FeatureContractDataChain) {
			id, err := s.dec.ReadInt()
			if err != nil {
				return err
			}
			reqID = id
			n--
		}
		if err := s.skip(n); err != nil {
			return err
		}
		return s.reply(protocol.InErrMsg, 2, reqID, NoSecurityDefinitionCode, NoSecurityDefinitionText)
	}

	s.logger.Warn("unsupported request", "tag", tag.String())
	return fmt.Errorf("%w: %s", ErrUnsupported, tag)
}

// greet sends what a gateway volunteers once the client is identified.
func (s *session) greet() error {
	if s.started {
		return nil
	}
	s.started = true
	s.logger.Info("client identified", "client_id", s.clientID)
	if err := s.reply(protocol.InNextValidID, 1, s.nextID); err != nil {
		return err
	}
	return s.reply(protocol.InManagedAccts, 1, s.config.Accounts)
}

func (s *session) reply(tag protocol.InTag, version int, fields ...any) error {
	e := protocol.NewEncoder()
	e.WriteInt(int(tag))
	e.WriteInt(version)
	for _, f := range fields {
		switch v := f.(type) {
		case int:
			e.WriteInt(v)
		case int64:
			e.WriteInt64(v)
		case string:
			e.WriteString(v)
		default:
			e.WriteString(fmt.Sprint(v))
		}
	}
	return s.flush(e)
}

func (s *session) flush(e *protocol.Encoder) error {
	_, err := s.w.Write(e.Bytes())
	return err
}

func (s *session) skip(n int) error {
	for i := 0; i < n; i++ {
		if _, err := s.dec.ReadString(); err != nil {
			return err
		}
	}
	return nil
}

// fieldCount returns the number of body fields r encodes at server
// version sv when all its fields are zero.
func fieldCount(r protocol.Request, sv int) int {
	e := protocol.NewEncoder()
	if err := r.Encode(e, sv); err != nil {
		return 0
	}
	return strings.Count(string(e.Bytes()), "\x00") - 2
}
