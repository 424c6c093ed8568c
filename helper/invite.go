package helper

import (
	"booking_manager/model"
	"context"
	"log"
	"sync"
	"time"
)

// DefaultInviteCacheTTL bounds how stale the invite-code set may get before a
// refetch is attempted.
const DefaultInviteCacheTTL = 60 * time.Second

// FallbackInviteCodes keeps sales alive when the external code source is down
// and no cache has ever been filled.
var FallbackInviteCodes = []string{
	"SLANUP2025",
	"DIWVIP01",
	"DIWVIP02",
}

// CodeFetcher pulls the flat list of valid invite codes from the external
// source of truth (the shared spreadsheet in production).
type CodeFetcher func(ctx context.Context) ([]string, error)

// InviteRegistry answers whether a code is currently redeemable. Lookups
// never hard-fail: a fetch error falls back to the previous cache, then to
// the hardcoded list. Availability over freshness.
type InviteRegistry struct {
	fetch CodeFetcher
	clock Clock
	ttl   time.Duration

	mu        sync.RWMutex
	codes     map[string]struct{}
	fetchedAt time.Time
}

func NewInviteRegistry(fetch CodeFetcher, clock Clock, ttl time.Duration) *InviteRegistry {
	if ttl <= 0 {
		ttl = DefaultInviteCacheTTL
	}
	return &InviteRegistry{
		fetch: fetch,
		clock: clock,
		ttl:   ttl,
	}
}

func (r *InviteRegistry) IsValid(ctx context.Context, code string) bool {
	code = model.NormalizeInviteCode(code)
	if code == "" {
		return false
	}
	_, ok := r.validCodes(ctx)[code]
	return ok
}

func (r *InviteRegistry) validCodes(ctx context.Context) map[string]struct{} {
	now := r.clock.Now()

	r.mu.RLock()
	if r.codes != nil && now.Sub(r.fetchedAt) <= r.ttl {
		codes := r.codes
		r.mu.RUnlock()
		return codes
	}
	r.mu.RUnlock()

	fetched, err := r.fetch(ctx)
	if err != nil {
		log.Printf("invite registry: fetch failed, serving stale/fallback codes: %v", err)
		r.mu.RLock()
		codes := r.codes
		r.mu.RUnlock()
		if codes != nil {
			return codes
		}
		return toSet(FallbackInviteCodes)
	}

	codes := toSet(fetched)
	// Concurrent refreshes may overwrite each other; the cache is an
	// optimization, not a correctness boundary.
	r.mu.Lock()
	r.codes = codes
	r.fetchedAt = now
	r.mu.Unlock()
	return codes
}

func toSet(codes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		c = model.NormalizeInviteCode(c)
		if c != "" {
			set[c] = struct{}{}
		}
	}
	return set
}
