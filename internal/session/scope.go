package session

import (
	"context"
	"sync"
	"time"

	"atlas/internal/models"
	"atlas/internal/utils/logger"
)

// State is the resolution state of a session scope.
type State string

const (
	StatePending   State = "PENDING"
	StateResolved  State = "RESOLVED"
	StateAnonymous State = "ANONYMOUS"
)

// Scope resolves who the current actor is and what they may do, for the
// lifetime of one mounted session. It is constructed and torn down explicitly;
// nothing here lives in package state.
//
// Resolution races the identity provider against a bounded-wait timer:
// whichever fires first performs the transition out of StatePending, the
// loser is a no-op. Stop happens-before any further state mutation from the
// subscription or the timer.
type Scope struct {
	provider   IdentityProvider
	profiles   ProfileStore
	privileged map[string]struct{}
	timeout    time.Duration
	log        *logger.Logger

	mu       sync.Mutex
	state    State
	email    string
	profile  *Profile
	hint     string
	timedOut bool
	started  bool
	stopped  bool
	timer    *time.Timer
	cancel   context.CancelFunc
}

// NewScope builds an unstarted scope. privileged is the configuration-supplied
// set of identities granted super-admin authority without a store lookup.
func NewScope(provider IdentityProvider, profiles ProfileStore, timeout time.Duration, privileged []string) *Scope {
	set := make(map[string]struct{}, len(privileged))
	for _, email := range privileged {
		set[email] = struct{}{}
	}
	return &Scope{
		provider:   provider,
		profiles:   profiles,
		privileged: set,
		timeout:    timeout,
		log:        logger.New("session"),
		state:      StatePending,
	}
}

// SetIdentityHint records an out-of-band, unverified identity (for example a
// claim read before resolution completes). A privileged hint unlocks
// rendering while the scope is still pending; it never grants permissions.
func (s *Scope) SetIdentityHint(email string) {
	s.mu.Lock()
	s.hint = email
	s.mu.Unlock()
}

// Start subscribes to the identity provider and arms the bounded-wait timer.
// It is a no-op when called twice.
func (s *Scope) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.started = true
	ctx, s.cancel = context.WithCancel(ctx)
	s.timer = time.AfterFunc(s.timeout, s.forceResolve)
	s.mu.Unlock()

	updates := s.provider.Subscribe(ctx)
	go s.consume(ctx, updates)
}

// Stop tears the scope down: the subscription is cancelled, the timer cleared,
// and no state mutation is applied afterwards.
func (s *Scope) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
	}
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (s *Scope) consume(ctx context.Context, updates <-chan Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			s.apply(ctx, u)
		}
	}
}

// apply handles one provider notification. Provider errors and absent
// principals both resolve to anonymous.
func (s *Scope) apply(ctx context.Context, u Update) {
	if u.Err != nil {
		s.log.Warn("identity provider error, treating as anonymous: %v", u.Err)
	}

	var email string
	var profile *Profile
	if u.Err == nil && u.Email != "" {
		email = u.Email
		profile = s.resolveProfile(ctx, email)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.email = email
	s.profile = profile
	if profile != nil {
		s.state = StateResolved
	} else {
		s.state = StateAnonymous
	}
}

// resolveProfile fetches the actor's permission profile. Privileged
// identities short-circuit to super admin without a store round-trip; store
// failures fail closed to an all-deny profile.
func (s *Scope) resolveProfile(ctx context.Context, email string) *Profile {
	if _, ok := s.privileged[email]; ok {
		return &Profile{Role: models.UserRoleSuperAdmin}
	}

	profile, err := s.profiles.Lookup(ctx, email)
	if err != nil {
		s.log.Warn("profile lookup failed for %s, denying all menus: %v", email, err)
		return &Profile{Matrix: models.PermissionMatrix{}}
	}
	return profile
}

// forceResolve is the bounded-wait fallback. If real resolution has not
// happened when the timer fires, the scope leaves StatePending so the UI can
// render in a reduced capacity. Gated actions still re-check permissions at
// the moment of use.
func (s *Scope) forceResolve() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.state != StatePending {
		return
	}
	s.state = StateAnonymous
	s.timedOut = true
	s.log.Warn("identity resolution timed out after %s, rendering unauthenticated", s.timeout)
}

// State returns the current resolution state.
func (s *Scope) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Email returns the resolved actor identity, empty while pending or anonymous.
func (s *Scope) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.email
}

// TimedOut reports whether the forced-resolve path was taken.
func (s *Scope) TimedOut() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timedOut
}

// CanRender reports whether gated UI may be shown at all: any state but
// pending, or a pending scope whose identity hint is privileged (the operator
// hatch).
func (s *Scope) CanRender() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePending {
		return true
	}
	_, ok := s.privileged[s.hint]
	return ok
}

// Check reports whether the resolved actor may perform action on menuID.
// Fail-closed: no profile yet means no.
func (s *Scope) Check(menuID string, action models.MenuAction) bool {
	s.mu.Lock()
	profile := s.profile
	s.mu.Unlock()
	return profile.Allows(menuID, action)
}

// Guard renders content when the action is permitted and fallback otherwise.
// It consults the latest profile snapshot on every call.
func Guard[T any](s *Scope, menuID string, action models.MenuAction, content, fallback T) T {
	if s.Check(menuID, action) {
		return content
	}
	return fallback
}
