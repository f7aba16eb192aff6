package sources

import (
	"context"
	"sync"
	"sync/atomic"

	"gitlab.com/tinyland/lab/sportsboard/pkg/board"
)

// MockSource implements Source for testing. All fields are configurable and
// it tracks how many times NextFrame has been called.
type MockSource struct {
	name    string
	frame   board.Frame
	healthy bool

	mu        sync.RWMutex
	callCount atomic.Int64

	// FrameFunc, if set, overrides the default NextFrame behavior. This
	// allows tests to inject dynamic behavior (e.g., return a different
	// frame on each call).
	FrameFunc func(ctx context.Context) board.Frame
}

// MockSourceOption configures a MockSource.
type MockSourceOption func(*MockSource)

// WithFrame sets the frame returned by NextFrame.
func WithFrame(f board.Frame) MockSourceOption {
	return func(m *MockSource) { m.frame = f }
}

// WithHealthy sets the Healthy() return value.
func WithHealthy(healthy bool) MockSourceOption {
	return func(m *MockSource) { m.healthy = healthy }
}

// WithFrameFunc sets a custom function for NextFrame.
func WithFrameFunc(fn func(ctx context.Context) board.Frame) MockSourceOption {
	return func(m *MockSource) { m.FrameFunc = fn }
}

// NewMockSource creates a mock source with the given name and options.
func NewMockSource(name string, opts ...MockSourceOption) *MockSource {
	m := &MockSource{
		name:    name,
		frame:   board.Placeholder(name, "mock"),
		healthy: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the mock's source id.
func (m *MockSource) Name() string { return m.name }

// NextFrame returns the configured frame, or the FrameFunc result when set.
func (m *MockSource) NextFrame(ctx context.Context) board.Frame {
	m.callCount.Add(1)
	m.mu.RLock()
	fn := m.FrameFunc
	frame := m.frame
	m.mu.RUnlock()
	if fn != nil {
		return fn(ctx)
	}
	return frame
}

// Healthy returns the configured health state.
func (m *MockSource) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthy
}

// SetFrame replaces the frame returned by subsequent NextFrame calls.
func (m *MockSource) SetFrame(f board.Frame) {
	m.mu.Lock()
	m.frame = f
	m.mu.Unlock()
}

// Calls returns how many times NextFrame has been called.
func (m *MockSource) Calls() int64 {
	return m.callCount.Load()
}
