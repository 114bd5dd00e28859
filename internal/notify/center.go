// Package notify keeps the transient banners shown to the customer.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a banner stays up
const DefaultTTL = 4 * time.Second

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Banner is one notification
type Banner struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Center holds active banners. Expired ones are pruned on read.
type Center struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	banners []Banner
}

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl, now: time.Now}
}

func (c *Center) Success(msg string) Banner { return c.push(LevelSuccess, msg) }
func (c *Center) Error(msg string) Banner   { return c.push(LevelError, msg) }
func (c *Center) Warn(msg string) Banner    { return c.push(LevelWarning, msg) }

func (c *Center) push(level Level, msg string) Banner {
	c.mu.Lock()
	defer c.mu.Unlock()
	b := Banner{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   msg,
		ExpiresAt: c.now().Add(c.ttl),
	}
	c.banners = append(c.banners, b)
	return b
}

// Active returns unexpired banners, oldest first
func (c *Center) Active() []Banner {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	kept := c.banners[:0]
	for _, b := range c.banners {
		if now.Before(b.ExpiresAt) {
			kept = append(kept, b)
		}
	}
	c.banners = kept
	return append([]Banner{}, kept...)
}

// Dismiss removes a banner. It reports whether the banner was still active.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, b := range c.banners {
		if b.ID == id {
			c.banners = append(c.banners[:i], c.banners[i+1:]...)
			return true
		}
	}
	return false
}
