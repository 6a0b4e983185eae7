package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/weddingwander/weddingwander/internal/model"
	"github.com/weddingwander/weddingwander/internal/repository"
)

// LedgerPolicy configures the registration rules that are a matter of choice.
type LedgerPolicy struct {
	// AllowReregister permits a new registration for a (user, wedding) pair
	// whose earlier registrations are all canceled. When false any earlier
	// record blocks registration.
	AllowReregister bool
	// MaxGuests caps the guests of a single registration.
	MaxGuests int
}

// DefaultLedgerPolicy blocks re-registration and allows up to 10 guests.
func DefaultLedgerPolicy() LedgerPolicy {
	return LedgerPolicy{AllowReregister: false, MaxGuests: 10}
}

// Ledger keeps registrations and the denormalised registered counts of
// weddings consistent. Mutations are serialised.
type Ledger struct {
	mu            sync.Mutex
	events        *repository.EventRepository
	registrations *repository.RegistrationRepository
	policy        LedgerPolicy
	notifier      Notifier
	now           func() time.Time
}

// LedgerOption customises a Ledger.
type LedgerOption func(*Ledger)

// WithClock overrides the time source used for timestamps and the dashboard.
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) { l.now = now }
}

// WithNotifier overrides the default LogNotifier.
func WithNotifier(n Notifier) LedgerOption {
	return func(l *Ledger) { l.notifier = n }
}

// NewLedger constructs a Ledger with its dependencies.
func NewLedger(
	events *repository.EventRepository,
	registrations *repository.RegistrationRepository,
	policy LedgerPolicy,
	opts ...LedgerOption,
) *Ledger {
	if policy.MaxGuests < 1 {
		policy.MaxGuests = DefaultLedgerPolicy().MaxGuests
	}
	l := &Ledger{
		events:        events,
		registrations: registrations,
		policy:        policy,
		notifier:      LogNotifier{},
		now:           func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Register books req.Guests seats at eventID for userID.
func (l *Ledger) Register(ctx context.Context, userID, eventID string, req model.RegisterRequest) (*model.Registration, error) {
	req.SpecialRequests = strings.TrimSpace(req.SpecialRequests)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.Guests > l.policy.MaxGuests {
		return nil, ValidationErrors{{
			Field:   "guests",
			Message: fmt.Sprintf("must be at most %d", l.policy.MaxGuests),
		}}
	}
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	event, err := l.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	regs, err := l.registrations.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range regs {
		if r.UserID != userID || r.WeddingID != eventID {
			continue
		}
		if !l.policy.AllowReregister || r.Status != model.StatusCanceled {
			return nil, ErrAlreadyRegistered
		}
	}

	if event.Remaining() < req.Guests {
		return nil, ErrCapacityExceeded
	}

	reg := model.Registration{
		ID:               "reg-" + uuid.NewString(),
		UserID:           userID,
		WeddingID:        eventID,
		RegistrationDate: l.now(),
		Status:           model.StatusConfirmed,
		Guests:           req.Guests,
		SpecialRequests:  req.SpecialRequests,
	}
	updated := append(regs[:len(regs):len(regs)], reg)
	if err := l.registrations.ReplaceAll(ctx, updated); err != nil {
		return nil, fmt.Errorf("store registration: %w", err)
	}

	event.Registered += req.Guests
	if err := l.events.Save(ctx, *event); err != nil {
		l.restore(ctx, regs)
		return nil, fmt.Errorf("update event: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"registration_id": reg.ID,
		"user_id":         userID,
		"wedding_id":      eventID,
		"guests":          reg.Guests,
		"registered":      event.Registered,
		"capacity":        event.Capacity,
	}).Info("registration confirmed")
	l.notifier.Registered(ctx, reg, *event)

	return &reg, nil
}

// Cancel marks a registration canceled and releases its seats. When userID is
// non-empty the registration must belong to that user. Canceling twice is
// rejected with ErrAlreadyCanceled and never releases seats again.
func (l *Ledger) Cancel(ctx context.Context, userID, registrationID string) (*model.Registration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	regs, err := l.registrations.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range regs {
		if regs[i].ID == registrationID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrRegistrationNotFound
	}
	reg := regs[idx]
	if userID != "" && reg.UserID != userID {
		return nil, ErrForbidden
	}
	if reg.Status == model.StatusCanceled {
		return nil, ErrAlreadyCanceled
	}

	event, err := l.events.GetByID(ctx, reg.WeddingID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("get event: %w", err)
	}

	updated := make([]model.Registration, len(regs))
	copy(updated, regs)
	updated[idx].Status = model.StatusCanceled
	if err := l.registrations.ReplaceAll(ctx, updated); err != nil {
		return nil, fmt.Errorf("store registration: %w", err)
	}
	reg = updated[idx]

	entry := logrus.WithFields(logrus.Fields{
		"registration_id": reg.ID,
		"user_id":         reg.UserID,
		"wedding_id":      reg.WeddingID,
		"guests":          reg.Guests,
	})

	if event == nil {
		entry.Warn("registration canceled for a wedding that no longer exists")
		return &reg, nil
	}

	event.Registered -= reg.Guests
	if event.Registered < 0 {
		entry.WithField("registered", event.Registered).Warn("registered count would underflow, clamping to zero")
		event.Registered = 0
	}
	if err := l.events.Save(ctx, *event); err != nil {
		l.restore(ctx, regs)
		return nil, fmt.Errorf("update event: %w", err)
	}

	entry.WithField("registered", event.Registered).Info("registration canceled")
	l.notifier.Canceled(ctx, reg, *event)

	return &reg, nil
}

// restore puts back the registrations collection after a failed event write.
func (l *Ledger) restore(ctx context.Context, regs []model.Registration) {
	if err := l.registrations.ReplaceAll(ctx, regs); err != nil {
		logrus.WithError(err).Error("failed to restore registrations after event write failure")
	}
}

// ListForUser returns every registration owned by userID, any status.
func (l *Ledger) ListForUser(ctx context.Context, userID string) ([]model.Registration, error) {
	return l.registrations.ListByUser(ctx, userID)
}

// Dashboard splits the user's registrations into upcoming, past and canceled.
// Upcoming and past only include confirmed registrations whose wedding still
// exists; a wedding dated today counts as upcoming.
func (l *Ledger) Dashboard(ctx context.Context, userID string) (*model.Dashboard, error) {
	regs, err := l.registrations.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	events, err := l.events.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	today := model.DateOf(l.now())
	d := &model.Dashboard{
		Upcoming: []model.RegistrationView{},
		Past:     []model.RegistrationView{},
		Canceled: []model.RegistrationView{},
	}
	for _, reg := range regs {
		view := model.RegistrationView{Registration: reg}
		if e, ok := byID[reg.WeddingID]; ok {
			view.Wedding = &e
		}
		switch reg.Status {
		case model.StatusCanceled:
			d.Canceled = append(d.Canceled, view)
		case model.StatusConfirmed:
			if view.Wedding == nil {
				continue
			}
			if view.Wedding.Date.Before(today) {
				d.Past = append(d.Past, view)
			} else {
				d.Upcoming = append(d.Upcoming, view)
			}
		}
	}
	return d, nil
}
