package brain

import (
	"time"

	"go.uber.org/zap"

	"marketbrain/internal/provider"
	"marketbrain/internal/registry"
)

// ProviderInfo describes one registered provider.
type ProviderInfo struct {
	ID           string   `json:"id"`
	Priority     int      `json:"priority"`
	Capabilities []string `json:"capabilities"`
	Available    bool     `json:"available"`

	// LimitedSince is when the provider was last seen rate-limited, set only
	// while it is cooling down.
	LimitedSince *time.Time `json:"limited_since,omitempty"`
}

func (o *Orchestrator) describe(e registry.Entry) ProviderInfo {
	info := ProviderInfo{
		ID:        e.ID(),
		Priority:  e.Config.Priority,
		Available: true,
	}
	for _, c := range e.Provider.Capabilities().List() {
		info.Capabilities = append(info.Capabilities, c.String())
	}
	if since, ok := o.tracker.LimitedSince(info.ID); ok {
		info.Available = false
		info.LimitedSince = &since
	}
	return info
}

// ProviderDetails describes every registered provider in priority order.
func (o *Orchestrator) ProviderDetails() []ProviderInfo {
	entries := o.registry.All()
	out := make([]ProviderInfo, len(entries))
	for i, e := range entries {
		out[i] = o.describe(e)
	}
	return out
}

// ProviderDetail describes one provider by identity.
func (o *Orchestrator) ProviderDetail(id string) (ProviderInfo, bool) {
	e, ok := o.registry.Get(id)
	if !ok {
		return ProviderInfo{}, false
	}
	return o.describe(e), true
}

// ProvidersFor returns the identities of the providers declaring c, in
// priority order, cooling down or not.
func (o *Orchestrator) ProvidersFor(c provider.Capability) []string {
	return entryIDs(o.registry.Enabled(c))
}

// Coverage maps every capability name to the providers declaring it. A
// capability nobody covers maps to an empty list.
func (o *Orchestrator) Coverage() map[string][]string {
	all := provider.AllCapabilities()
	out := make(map[string][]string, len(all))
	for _, c := range all {
		out[c.String()] = o.ProvidersFor(c)
	}
	return out
}

// CacheStats is a snapshot of the response cache.
type CacheStats struct {
	Enabled    bool `json:"enabled"`
	TTLSeconds int  `json:"ttl_seconds"`
	Entries    int  `json:"entries"`
}

func (o *Orchestrator) CacheStats() CacheStats {
	return CacheStats{
		Enabled:    o.cache.Enabled(),
		TTLSeconds: int(o.cache.TTL() / time.Second),
		Entries:    o.cache.Len(),
	}
}

// PruneCache drops stale cache entries and returns how many went.
func (o *Orchestrator) PruneCache() int {
	n := o.cache.Prune()
	if n > 0 {
		o.log.Debug("pruned stale cache entries", zap.Int("count", n))
	}
	return n
}
