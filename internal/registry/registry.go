package registry

import (
	"fmt"
	"sort"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"marketbrain/internal/config"
	"marketbrain/internal/provider"
)

// Factory constructs the adapter for one configured provider.
type Factory func(cfg config.ProviderConfig, log *zap.Logger) (provider.Provider, error)

// Entry pairs a constructed adapter with the settings it was built from.
type Entry struct {
	Provider provider.Provider
	Config   config.ProviderConfig
}

// ID returns the configured provider identity.
func (e Entry) ID() string { return e.Config.Name }

// Registry is the priority-ordered roster of constructed adapters.
// It is built once and never mutated; a config change means building a new one.
type Registry struct {
	entries []Entry
	log     *zap.Logger
}

// New builds the roster from the enabled providers of cfg, in priority order.
// Providers with no factory, or whose factory fails, are logged and left out.
func New(cfg *config.Config, factories map[string]Factory, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	rlog := log.With(zap.String("component", "registry"))

	var entries []Entry
	for _, pc := range cfg.EnabledProviders() {
		factory, ok := factories[pc.Name]
		if !ok {
			rlog.Warn("no adapter for configured provider", zap.String("provider", pc.Name))
			continue
		}

		p, err := factory(pc, log)
		if err != nil {
			rlog.Error("failed to construct provider", zap.String("provider", pc.Name), zap.Error(err))
			continue
		}
		if p == nil {
			rlog.Error("provider factory returned nil", zap.String("provider", pc.Name))
			continue
		}

		entries = append(entries, Entry{Provider: p, Config: pc})
		rlog.Info("provider registered",
			zap.String("provider", pc.Name),
			zap.Int("priority", pc.Priority),
			zap.Stringer("capabilities", p.Capabilities()))
	}
	return FromEntries(entries, log)
}

// FromEntries builds a registry around already constructed adapters. The
// entries are filtered and ordered exactly like New does. A repeated name
// keeps its first entry.
func FromEntries(entries []Entry, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Registry{log: log.With(zap.String("component", "registry"))}

	seen := make(map[string]struct{}, len(entries))
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.ID()]; dup {
			r.log.Warn("duplicate provider entry ignored", zap.String("provider", e.ID()))
			continue
		}
		seen[e.ID()] = struct{}{}
		if e.Config.Usable() {
			kept = append(kept, e)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Config.Priority < kept[j].Config.Priority
	})
	r.entries = kept
	return r
}

// Enabled returns the adapters supporting capability, in priority order.
func (r *Registry) Enabled(capability provider.Capability) []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if e.Provider.Capabilities().Has(capability) {
			out = append(out, e)
		}
	}
	return out
}

// All returns every registered adapter in priority order.
func (r *Registry) All() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// IDs returns the registered provider identities in priority order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.ID()
	}
	return ids
}

// Get looks up an adapter by identity.
func (r *Registry) Get(id string) (Entry, bool) {
	for _, e := range r.entries {
		if e.ID() == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Len returns the number of registered adapters.
func (r *Registry) Len() int { return len(r.entries) }

// Close closes every adapter concurrently. Failures are logged, not returned,
// so one misbehaving adapter cannot block the shutdown of the others.
func (r *Registry) Close() {
	var wg conc.WaitGroup
	for _, e := range r.entries {
		e := e
		wg.Go(func() {
			if err := e.Provider.Close(); err != nil {
				r.log.Warn("failed to close provider", zap.String("provider", e.ID()), zap.Error(err))
			}
		})
	}
	if p := wg.WaitAndRecover(); p != nil {
		r.log.Error("provider close panicked", zap.String("panic", fmt.Sprint(p.Value)))
	}
}
