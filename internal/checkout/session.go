package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"circles-backend/internal/errorx"
	"circles-backend/internal/logger"
	"circles-backend/internal/model"

	"github.com/google/uuid"
)

type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailed     State = "failed"
)

const DefaultDisplayTimeout = 2500 * time.Millisecond

var ErrSessionClosed = errorx.New(errorx.Conflict, "checkout session closed")

// ReceiptHandler is called once per approved charge, before the session
// reports success. A returned error fails the attempt.
type ReceiptHandler func(ctx context.Context, receipt *model.Receipt) error

type Options struct {
	Limits         Limits
	Tiers          []model.PerkTier
	DisplayTimeout time.Duration
	OnReceipt      ReceiptHandler
	Now            func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Limits == (Limits{}) {
		o.Limits = DefaultLimits()
	}
	if o.Tiers == nil {
		o.Tiers = DefaultTiers()
	}
	if o.DisplayTimeout <= 0 {
		o.DisplayTimeout = DefaultDisplayTimeout
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

type Transition struct {
	From State     `json:"from"`
	To   State     `json:"to"`
	At   time.Time `json:"at"`
}

type Snapshot struct {
	ID           string         `json:"id"`
	ProjectID    string         `json:"projectId"`
	ProjectTitle string         `json:"projectTitle"`
	UserID       string         `json:"userId"`
	State        State          `json:"state"`
	History      []Transition   `json:"history"`
	Attempt      *Attempt       `json:"attempt,omitempty"`
	Receipt      *model.Receipt `json:"receipt,omitempty"`
	Error        string         `json:"error,omitempty"`
	Closed       bool           `json:"closed"`
	OpenedAt     time.Time      `json:"openedAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// Session drives one checkout surface through
// idle -> validating -> submitting -> success|failed -> idle.
type Session struct {
	id      string
	project model.Project
	userID  string
	gateway Gateway
	opts    Options

	mu        sync.Mutex
	state     State
	history   []Transition
	attempt   *Attempt
	receipt   *model.Receipt
	lastErr   error
	done      chan struct{}
	cancel    context.CancelFunc
	reset     *time.Timer
	closed    bool
	openedAt  time.Time
	updatedAt time.Time
}

func NewSession(id string, project model.Project, userID string, gateway Gateway, opts Options) *Session {
	opts = opts.withDefaults()
	now := opts.Now()
	return &Session{
		id:        id,
		project:   project,
		userID:    userID,
		gateway:   gateway,
		opts:      opts,
		state:     StateIdle,
		openedAt:  now,
		updatedAt: now,
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// must hold s.mu
func (s *Session) transition(to State) {
	now := s.opts.Now()
	s.history = append(s.history, Transition{From: s.state, To: to, At: now})
	s.state = to
	s.updatedAt = now
}

// Submit starts an attempt. It is rejected with ErrNotIdle unless the session
// is idle, and with a *errorx.ValidationError when the attempt is out of
// bounds; in both cases the session is left as it was. Otherwise the charge
// runs in the background and Submit returns immediately.
func (s *Session) Submit(ctx context.Context, a Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.state != StateIdle {
		return errorx.ErrNotIdle
	}

	s.transition(StateValidating)
	if err := s.opts.Limits.Validate(a, s.opts.Tiers); err != nil {
		s.transition(StateIdle)
		return err
	}

	attempt := a
	s.attempt = &attempt
	s.lastErr = nil
	s.transition(StateSubmitting)

	chargeCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go s.charge(chargeCtx, attempt, done)
	return nil
}

func (s *Session) charge(ctx context.Context, a Attempt, done chan struct{}) {
	defer close(done)

	reference := uuid.NewString()
	res, err := s.gateway.Charge(ctx, Charge{
		Reference:     reference,
		ProjectID:     s.project.ID,
		UserID:        s.userID,
		Amount:        a.Amount,
		PaymentMethod: a.PaymentMethod,
		Nonce:         a.Nonce,
	})
	if err == nil && res == nil {
		err = errorx.New(errorx.Internal, "gateway returned no result")
	}
	if err != nil && ctx.Err() != nil {
		logger.Debug("checkout %s: charge abandoned", s.id)
		return
	}

	var receipt *model.Receipt
	if err == nil {
		receipt = &model.Receipt{
			ID:            reference,
			ProjectID:     s.project.ID,
			ProjectTitle:  s.project.Title,
			Amount:        a.Amount,
			TierID:        a.TierID,
			PaymentMethod: a.PaymentMethod,
			TransactionID: res.TransactionID,
			UserID:        s.userID,
			Timestamp:     s.opts.Now(),
		}
		// an approved charge is recorded even if the session was closed meanwhile
		if s.opts.OnReceipt != nil {
			if herr := s.opts.OnReceipt(context.WithoutCancel(ctx), receipt); herr != nil {
				err = fmt.Errorf("record receipt: %w", herr)
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		if err == nil {
			s.receipt = receipt
		}
		return
	}
	if err != nil {
		logger.Warn("checkout %s: attempt failed: %v", s.id, err)
		s.lastErr = err
		s.transition(StateFailed)
	} else {
		s.receipt = receipt
		s.transition(StateSuccess)
	}
	s.cancel()
	s.cancel = nil
	s.reset = time.AfterFunc(s.opts.DisplayTimeout, s.resetToIdle)
}

func (s *Session) resetToIdle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || (s.state != StateSuccess && s.state != StateFailed) {
		return
	}
	s.attempt = nil
	s.reset = nil
	s.transition(StateIdle)
}

// Wait blocks until the in-flight attempt, if any, has settled.
func (s *Session) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the failure of the latest attempt, if it failed.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:           s.id,
		ProjectID:    s.project.ID,
		ProjectTitle: s.project.Title,
		UserID:       s.userID,
		State:        s.state,
		History:      append([]Transition(nil), s.history...),
		Closed:       s.closed,
		OpenedAt:     s.openedAt,
		UpdatedAt:    s.updatedAt,
	}
	if s.attempt != nil {
		a := *s.attempt
		snap.Attempt = &a
	}
	if s.receipt != nil {
		r := *s.receipt
		snap.Receipt = &r
	}
	if s.lastErr != nil {
		snap.Error = s.lastErr.Error()
	}
	return snap
}

// Close abandons any in-flight charge and stops the reset timer. A charge
// the gateway still approves is recorded through OnReceipt, but the session
// state no longer moves.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.reset != nil {
		s.reset.Stop()
		s.reset = nil
	}
	s.updatedAt = s.opts.Now()
}

func (s *Session) lastActivity() (time.Time, State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt, s.state
}
