package otp

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Verification failures surfaced to callers. Registration maps these to
// stable client-facing error codes.
var (
	ErrRequired = errors.New("otp required")
	ErrExpired  = errors.New("otp expired")
	ErrInvalid  = errors.New("otp invalid")
)

type entry struct {
	code      string
	expiresAt time.Time
}

// Store holds pending OTP codes keyed by mobile number. Codes live in
// process memory only; a restart discards all outstanding codes. All
// access goes through a single mutex.
type Store struct {
	mu      sync.Mutex
	codes   map[string]entry
	ttl     time.Duration
	rng     *rand.Rand
	nowFunc func() time.Time
}

// NewStore creates a store whose codes expire after ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		codes:   make(map[string]entry),
		ttl:     ttl,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		nowFunc: time.Now,
	}
}

// Issue generates a 6-digit code for the mobile number and stores it with
// an expiry of now + ttl. Any pending code for the same number is
// replaced unconditionally. There is no limit on how often a caller may
// request a new code.
func (s *Store) Issue(mobileNo string) (string, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := fmt.Sprintf("%d", 100000+s.rng.Intn(900000))
	expiresAt := s.nowFunc().Add(s.ttl)
	s.codes[mobileNo] = entry{code: code, expiresAt: expiresAt}
	return code, expiresAt
}

// Verify checks the submitted code against the pending one. It returns
// ErrRequired when no code is pending, ErrExpired when the pending code
// is past its expiry (the stale record is removed), and ErrInvalid when
// the codes do not match exactly. The record is NOT removed on success;
// callers consume it with Consume once their own work has committed.
func (s *Store) Verify(mobileNo, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.codes[mobileNo]
	if !ok {
		return ErrRequired
	}
	if s.nowFunc().After(e.expiresAt) {
		delete(s.codes, mobileNo)
		return ErrExpired
	}
	if code != e.code {
		return ErrInvalid
	}
	return nil
}

// Consume removes the pending code for the mobile number. Codes are
// single-use: registration calls this after the profile has persisted.
func (s *Store) Consume(mobileNo string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, mobileNo)
}
