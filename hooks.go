package partnermap

import (
	"sync"

	"github.com/agentstation/partnermap/pkg/collector"
)

// Hook function types for run events
type (
	// CollectedHook is called after a dataset has been collected
	CollectedHook func(stats collector.Stats)

	// ReconciledHook is called after a run has produced its report
	ReconciledHook func(report *Report)
)

// Hooks registers callbacks for run events.
type Hooks interface {
	OnCollected(fn CollectedHook)
	OnReconciled(fn ReconciledHook)
}

// hooks manages event callbacks for runs
type hooks struct {
	mu           sync.RWMutex
	onCollected  []CollectedHook
	onReconciled []ReconciledHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnCollected registers a callback for finished dataset walks
func (h *hooks) OnCollected(fn CollectedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onCollected = append(h.onCollected, fn)
}

// OnReconciled registers a callback for finished runs
func (h *hooks) OnReconciled(fn ReconciledHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onReconciled = append(h.onReconciled, fn)
}

func (h *hooks) triggerCollected(stats collector.Stats) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onCollected {
		fn(stats)
	}
}

func (h *hooks) triggerReconciled(report *Report) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onReconciled {
		fn(report)
	}
}

// OnCollected implements Hooks.
func (c *client) OnCollected(fn CollectedHook) {
	c.hooks.OnCollected(fn)
}

// OnReconciled implements Hooks.
func (c *client) OnReconciled(fn ReconciledHook) {
	c.hooks.OnReconciled(fn)
}
