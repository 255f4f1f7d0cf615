// Package consent stores each visitor's cookie choice and decides whether
// the banner is shown.
package consent

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	applog "github.com/primeweb/site/internal/platform/logging"
)

// StorageKey is the name the record is kept under, per visitor.
const StorageKey = "cookie-consent"

// DefaultBannerDelay is how long the client waits before showing the banner.
const DefaultBannerDelay = 1500 * time.Millisecond

// Choices accepted by Save.
const (
	ChoiceAll       = "all"
	ChoiceEssential = "essential"
	ChoiceCustom    = "custom"
)

// Errors
var (
	ErrNotFound      = errors.New("consent record not found")
	ErrInvalidChoice = errors.New("unknown consent choice")
	ErrNoVisitor     = errors.New("visitor id is required")
)

// Record is a visitor's stored choice. Essential cookies are always on and
// not recorded.
type Record struct {
	Analytics bool      `json:"analytics"`
	Marketing bool      `json:"marketing"`
	Date      time.Time `json:"date"`
}

// Status tells the client whether to show the banner.
type Status struct {
	ShowBanner    bool
	BannerDelayMs int64
	Record        *Record
}

// Store persists records by visitor id.
type Store interface {
	Get(ctx context.Context, visitorID string) (*Record, error)
	Put(ctx context.Context, visitorID string, r Record) error
}

// Service applies consent choices.
type Service struct {
	store       Store
	bannerDelay time.Duration
	now         func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithBannerDelay overrides DefaultBannerDelay. Non-positive values keep it.
func WithBannerDelay(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.bannerDelay = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService builds a Service on store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, bannerDelay: DefaultBannerDelay, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Status reports the banner decision for a visitor. An unknown visitor
// gets the banner.
func (s *Service) Status(ctx context.Context, visitorID string) (Status, error) {
	if visitorID == "" {
		return s.bannerStatus(), nil
	}
	r, err := s.store.Get(ctx, visitorID)
	if errors.Is(err, ErrNotFound) {
		return s.bannerStatus(), nil
	}
	if err != nil {
		return Status{}, err
	}
	return Status{Record: r}, nil
}

func (s *Service) bannerStatus() Status {
	return Status{ShowBanner: true, BannerDelayMs: s.bannerDelay.Milliseconds()}
}

// AcceptAll stores analytics and marketing as allowed.
func (s *Service) AcceptAll(ctx context.Context, visitorID string) (Record, error) {
	return s.put(ctx, visitorID, ChoiceAll, true, true)
}

// AcceptEssential stores analytics and marketing as refused.
func (s *Service) AcceptEssential(ctx context.Context, visitorID string) (Record, error) {
	return s.put(ctx, visitorID, ChoiceEssential, false, false)
}

// SaveCustom stores the given pair.
func (s *Service) SaveCustom(ctx context.Context, visitorID string, analytics, marketing bool) (Record, error) {
	return s.put(ctx, visitorID, ChoiceCustom, analytics, marketing)
}

// Save dispatches on choice. analytics and marketing are only read for
// ChoiceCustom.
func (s *Service) Save(ctx context.Context, visitorID, choice string, analytics, marketing bool) (Record, error) {
	switch strings.ToLower(strings.TrimSpace(choice)) {
	case ChoiceAll:
		return s.AcceptAll(ctx, visitorID)
	case ChoiceEssential:
		return s.AcceptEssential(ctx, visitorID)
	case ChoiceCustom:
		return s.SaveCustom(ctx, visitorID, analytics, marketing)
	}
	return Record{}, ErrInvalidChoice
}

func (s *Service) put(ctx context.Context, visitorID, choice string, analytics, marketing bool) (Record, error) {
	if visitorID == "" {
		return Record{}, ErrNoVisitor
	}
	r := Record{Analytics: analytics, Marketing: marketing, Date: s.now().UTC()}
	if err := s.store.Put(ctx, visitorID, r); err != nil {
		applog.LogError(ctx, "consent store failed", err, zap.String("choice", choice))
		return Record{}, err
	}
	applog.LogAuditEvent(ctx, applog.AuditEvent{
		Action:       "consent",
		Actor:        visitorID,
		ResourceType: StorageKey,
		ResourceID:   visitorID,
		Result:       applog.AuditSuccess,
		Details:      map[string]any{"choice": choice, "analytics": analytics, "marketing": marketing},
	})
	return r, nil
}
