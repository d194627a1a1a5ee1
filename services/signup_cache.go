package services

import (
	"sync"
	"time"
)

// SignupCache holds short-lived email-verification codes issued at signup.
// Deliberately process-local: losing these on restart just means the user
// requests a new code. The durable delivery OTP lives in the database and is
// a separate mechanism.
type SignupCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	codes map[string]signupEntry

	now func() time.Time
}

type signupEntry struct {
	code      string
	expiresAt time.Time
}

func NewSignupCache(ttl time.Duration) *SignupCache {
	return &SignupCache{
		ttl:   ttl,
		codes: make(map[string]signupEntry),
		now:   time.Now,
	}
}

// Put stores a code for the email, replacing any previous one.
func (c *SignupCache) Put(email, code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.codes[email] = signupEntry{
		code:      code,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Consume checks the code and removes it on success. A wrong code leaves the
// entry in place so the user can retry until expiry.
func (c *SignupCache) Consume(email, code string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.codes[email]
	if !ok {
		return false
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.codes, email)
		return false
	}
	if entry.code != code {
		return false
	}
	delete(c.codes, email)
	return true
}

// Sweep drops expired entries; call on any convenient cadence.
func (c *SignupCache) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for email, entry := range c.codes {
		if !now.Before(entry.expiresAt) {
			delete(c.codes, email)
		}
	}
}
