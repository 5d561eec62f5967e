package network

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"
)

var ErrNoProxies = errors.New("no proxies available")

// Rotator hands out upstream proxies round-robin. A proxy answered with
// 403 or 429 is benched for the configured duration.
type Rotator struct {
	proxies     []*url.URL
	benchFor    time.Duration
	benchedTill map[string]time.Time
	next        int
	now         func() time.Time
	mu          sync.Mutex
}

// NewRotator parses proxy entries. Entries without a scheme default to
// http://; blank entries are skipped.
func NewRotator(raw []string, benchFor time.Duration) (*Rotator, error) {
	rotator := &Rotator{
		benchFor:    benchFor,
		benchedTill: map[string]time.Time{},
		now:         time.Now,
	}

	for _, entry := range raw {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !strings.Contains(entry, "://") {
			entry = "http://" + entry
		}
		u, err := url.Parse(entry)
		if err != nil {
			return nil, fmt.Errorf("parse proxy %q: %w", entry, err)
		}
		if u.Host == "" {
			return nil, fmt.Errorf("parse proxy %q: missing host", entry)
		}
		rotator.proxies = append(rotator.proxies, u)
	}

	return rotator, nil
}

func (r *Rotator) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.proxies)
}

// Next returns the next proxy that is not benched.
func (r *Rotator) Next() (*url.URL, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for range r.proxies {
		proxy := r.proxies[r.next]
		r.next = (r.next + 1) % len(r.proxies)
		if !r.benched(proxy) {
			return proxy, nil
		}
	}
	return nil, ErrNoProxies
}

// Report benches proxy when status says it was blocked or rate limited.
func (r *Rotator) Report(proxy *url.URL, status int) {
	if proxy == nil || (status != 403 && status != 429) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.benchedTill[proxy.String()] = r.now().Add(r.benchFor)
}

func (r *Rotator) benched(proxy *url.URL) bool {
	until, ok := r.benchedTill[proxy.String()]
	if !ok {
		return false
	}
	if r.now().After(until) {
		delete(r.benchedTill, proxy.String())
		return false
	}
	return true
}
