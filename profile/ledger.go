package profile

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// CodeLedger remembers authorization codes that have already been presented for
// exchange so a replayed code can be rejected without calling the provider.
type CodeLedger interface {
	// Consume records code as used until exp. It returns false if the code was
	// already consumed and has not yet expired.
	Consume(code string, exp time.Time) bool
	Cleanup() // Remove expired entries
}

// InMemoryCodeLedger stores hashes of consumed codes.
type InMemoryCodeLedger struct {
	consumed map[string]time.Time
	mu       sync.Mutex
}

func NewInMemoryCodeLedger() *InMemoryCodeLedger {
	return &InMemoryCodeLedger{
		consumed: make(map[string]time.Time),
	}
}

func (l *InMemoryCodeLedger) Consume(code string, exp time.Time) bool {
	key := hashCode(code)
	l.mu.Lock()
	defer l.mu.Unlock()
	if until, exists := l.consumed[key]; exists && time.Now().Before(until) {
		return false
	}
	l.consumed[key] = exp
	return true
}

func (l *InMemoryCodeLedger) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	for key, exp := range l.consumed {
		if !now.Before(exp) {
			delete(l.consumed, key)
		}
	}
}

// Len returns the number of codes currently remembered.
func (l *InMemoryCodeLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.consumed)
}

func hashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
