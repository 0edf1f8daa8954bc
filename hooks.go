package orbitalguard

import (
	"sync"
	"time"

	"github.com/agentstation/orbitalguard/internal/importer"
)

// StageEvent describes a completed stage.
type StageEvent struct {
	RunID    string
	Stage    string
	Duration time.Duration
	// Report is nil for stages that do not import a source.
	Report *importer.BatchReport
	Err    error
}

// StageHook is called after a stage commits or fails
type StageHook func(StageEvent)

// hooks manages stage callbacks
type hooks struct {
	mu      sync.RWMutex
	onStage []StageHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnStageComplete registers a callback for completed stages
func (h *hooks) OnStageComplete(fn StageHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onStage = append(h.onStage, fn)
}

// triggerStage invokes every registered stage callback in registration order
func (h *hooks) triggerStage(ev StageEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onStage {
		fn(ev)
	}
}
