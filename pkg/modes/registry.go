// Package modes resolves mode names from the configuration into ordered
// rotations of live source handles. Handles are constructed lazily the
// first time any mode references their source id and are cached for the
// process lifetime, so switching modes never tears down and re-establishes
// a source's upstream session.
package modes

import (
	"fmt"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/sportsboard/pkg/config"
	"gitlab.com/tinyland/lab/sportsboard/pkg/sources"
)

// Resolution failures the scheduler distinguishes from everything else.
var (
	ErrUnknownMode   = fmt.Errorf("unknown mode")
	ErrUnknownSource = fmt.Errorf("unknown source")
)

// Factory constructs a source handle from its configured settings.
type Factory func(settings config.SourceSettings) (sources.Source, error)

// Entry is one step of a resolved rotation.
type Entry struct {
	Source   sources.Source
	Duration time.Duration
}

// Registry maps source ids to factories and caches the handles they
// produce. It is safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	factories map[string]Factory
	handles   map[string]sources.Source
}

// NewRegistry returns an empty registry ready for factory registration.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		handles:   make(map[string]sources.Source),
	}
}

// RegisterFactory adds a source factory under the given source id. It
// returns an error if the id is already registered.
func (r *Registry) RegisterFactory(id string, f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[id]; exists {
		return fmt.Errorf("source %q already registered", id)
	}
	r.factories[id] = f
	return nil
}

// Resolve maps modeName to its ordered rotation of live handles. Returns an
// error wrapping ErrUnknownMode when the mode is not defined, or
// ErrUnknownSource when a mode entry names an unregistered source id. The
// caller retains its previously resolved rotation on failure.
func (r *Registry) Resolve(cfg *config.Config, modeName string) ([]Entry, error) {
	def, ok := cfg.Modes[modeName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, modeName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]Entry, 0, len(def))
	for _, e := range def {
		src, err := r.handleLocked(e.SourceID, cfg)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Source: src, Duration: e.Duration()})
	}
	return entries, nil
}

// handleLocked returns the cached handle for id, constructing it on first
// reference. Caller holds r.mu.
func (r *Registry) handleLocked(id string, cfg *config.Config) (sources.Source, error) {
	if src, ok := r.handles[id]; ok {
		return src, nil
	}
	factory, ok := r.factories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, id)
	}
	src, err := factory(cfg.SourceSettingsFor(id))
	if err != nil {
		return nil, fmt.Errorf("construct source %q: %w", id, err)
	}
	r.handles[id] = src
	return src, nil
}

// TotalPeriod returns the full rotation period of a resolved sequence: the
// sum of its entries' durations.
func TotalPeriod(entries []Entry) time.Duration {
	var total time.Duration
	for _, e := range entries {
		total += e.Duration
	}
	return total
}
