// Package driver opens media driver sessions. A session detects its
// feature table, builds and initializes the capability object of its
// platform, and reports every query on the event bus.
package driver

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/smazurov/mediacaps/internal/caps"
	"github.com/smazurov/mediacaps/internal/dump"
	"github.com/smazurov/mediacaps/internal/events"
	"github.com/smazurov/mediacaps/internal/logging"
	"github.com/smazurov/mediacaps/internal/sku"
)

// ErrSessionClosed is returned by queries on a closed session.
var ErrSessionClosed = errors.New("session closed")

// Options configures Open.
type Options struct {
	Platform  sku.Platform
	Overrides sku.Overrides
	Dump      dump.Sink
	Bus       *events.Bus
	Logger    *slog.Logger
}

// Session is one open driver context. It owns its capability object;
// sessions share no mutable state.
type Session struct {
	ID       uuid.UUID
	Platform sku.Platform
	Features *sku.Table
	Caps     caps.Caps
	Dump     dump.Sink

	bus    *events.Bus
	logger *slog.Logger
	closed atomic.Bool
}

// Open creates a session for opts.Platform. Nothing is published when the
// capability object fails to initialize.
func Open(reg *caps.Registry, opts Options) (*Session, error) {
	if reg == nil {
		return nil, caps.NewError(caps.StatusInvalidParameter, "Open", "nil registry")
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.GetLogger("driver")
	}
	sink := opts.Dump
	if sink == nil {
		sink = dump.NopSink{}
	}

	features, err := sku.Resolve(opts.Platform, opts.Overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve feature table: %w", err)
	}

	id := uuid.New()
	logger = logger.With("session_id", id.String(), "platform", opts.Platform.String())

	c, err := reg.Create(&caps.Context{
		Platform: opts.Platform,
		Features: features,
		Reporter: sink,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create capabilities: %w", err)
	}
	if err := c.Init(); err != nil {
		return nil, err
	}

	s := &Session{
		ID:       id,
		Platform: opts.Platform,
		Features: features,
		Caps:     c,
		Dump:     sink,
		bus:      opts.Bus,
		logger:   logger,
	}

	now := timestamp()
	s.bus.Publish(events.SessionOpenedEvent{
		SessionID:  id.String(),
		Platform:   opts.Platform.String(),
		Generation: c.Generation(),
		Timestamp:  now,
	})
	s.bus.Publish(events.CapsLoadedEvent{
		SessionID:  id.String(),
		Platform:   opts.Platform.String(),
		Entries:    len(c.Entries()),
		EncConfigs: s.countEncConfigs(),
		DecConfigs: s.countDecConfigs(),
		Timestamp:  now,
	})

	logger.Info("Session opened", "generation", c.Generation(), "features", len(features.Features()))
	return s, nil
}

// Close releases the session. Closing twice is a no-op.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.bus.Publish(events.SessionClosedEvent{
		SessionID: s.ID.String(),
		Platform:  s.Platform.String(),
		Timestamp: timestamp(),
	})
	s.logger.Info("Session closed")
	return nil
}

// Closed reports whether Close was called.
func (s *Session) Closed() bool {
	return s.closed.Load()
}

// GetAttributeValue queries one attribute and publishes the result.
func (s *Session) GetAttributeValue(profile caps.Profile, entrypoint caps.Entrypoint, attrib caps.AttribType) (uint32, error) {
	if s.closed.Load() {
		return 0, ErrSessionClosed
	}

	v, err := s.Caps.GetAttributeValue(profile, entrypoint, attrib)
	s.bus.Publish(events.AttributeQueriedEvent{
		SessionID:  s.ID.String(),
		Platform:   s.Platform.String(),
		Profile:    profile.String(),
		Entrypoint: entrypoint.String(),
		Attribute:  attrib.String(),
		Value:      v,
		Status:     caps.StatusOf(err).String(),
	})
	return v, err
}

// AttribValue is one entry of a GetConfigAttributes result.
type AttribValue struct {
	Type  caps.AttribType
	Value uint32
}

// GetConfigAttributes resolves a list of attributes for a registered
// (profile, entrypoint). Attributes that do not apply are reported as
// caps.AttribNotSupported instead of failing the whole query.
func (s *Session) GetConfigAttributes(profile caps.Profile, entrypoint caps.Entrypoint, attribs []caps.AttribType) ([]AttribValue, error) {
	out := make([]AttribValue, 0, len(attribs))
	for _, a := range attribs {
		v, err := s.GetAttributeValue(profile, entrypoint, a)
		switch caps.StatusOf(err) {
		case caps.StatusSuccess:
		case caps.StatusUnsupportedAttribute:
			v = caps.AttribNotSupported
		default:
			return nil, err
		}
		out = append(out, AttribValue{Type: a, Value: v})
	}
	return out, nil
}

// CheckEncodeResolution validates an encode size and publishes the outcome.
func (s *Session) CheckEncodeResolution(profile caps.Profile, width, height uint32) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	err := s.Caps.CheckEncodeResolution(profile, width, height)
	s.publishCheck("encode", profile, width, height, err)
	return err
}

// CheckDecodeResolution validates a decode size and publishes the outcome.
func (s *Session) CheckDecodeResolution(mode caps.CodecMode, profile caps.Profile, width, height uint32) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	err := s.Caps.CheckDecodeResolution(mode, profile, width, height)
	s.publishCheck("decode", profile, width, height, err)
	return err
}

// QueryAVCROIMaxNum returns the AVC region-of-interest limit for rcMode.
func (s *Session) QueryAVCROIMaxNum(rcMode caps.RCMode) (int, bool, error) {
	if s.closed.Load() {
		return 0, false, ErrSessionClosed
	}
	return s.Caps.QueryAVCROIMaxNum(rcMode)
}

func (s *Session) publishCheck(direction string, profile caps.Profile, width, height uint32, err error) {
	if err != nil {
		s.logger.Debug("Resolution rejected", "direction", direction, "profile", profile.String(),
			"width", width, "height", height, "error", err)
	}
	s.bus.Publish(events.ResolutionCheckedEvent{
		SessionID: s.ID.String(),
		Platform:  s.Platform.String(),
		Direction: direction,
		Profile:   profile.String(),
		Width:     width,
		Height:    height,
		Supported: err == nil,
		Status:    caps.StatusOf(err).String(),
	})
}

func (s *Session) countEncConfigs() int {
	n := 0
	for _, e := range s.Caps.Entries() {
		if e.Entrypoint.IsEncode() {
			n += e.ConfigCount
		}
	}
	return n
}

func (s *Session) countDecConfigs() int {
	n := 0
	for _, e := range s.Caps.Entries() {
		if e.Entrypoint == caps.EntrypointVLD {
			n += e.ConfigCount
		}
	}
	return n
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
