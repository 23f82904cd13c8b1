package tracker

import "github.com/charmbracelet/log"

// Coordinator re-synchronizes dependent components after the checklist is
// regenerated from source data. Components register in dependency order and
// must be idempotent: re-running a sync is always safe and simply replaces
// prior bindings.
type Coordinator struct {
	logger     *log.Logger
	components []component
}

type component struct {
	name string
	sync func() error
}

// NewCoordinator creates an empty Coordinator.
func NewCoordinator(logger *log.Logger) *Coordinator {
	return &Coordinator{logger: logger}
}

// Register appends a component to the re-init list. Order of registration is
// order of execution.
func (c *Coordinator) Register(name string, sync func() error) {
	c.components = append(c.components, component{name: name, sync: sync})
}

// ContentReplaced runs every registered sync in order. A failing component
// degrades that feature but does not stop the rest.
func (c *Coordinator) ContentReplaced() {
	for _, comp := range c.components {
		if err := comp.sync(); err != nil {
			c.logger.Warn("component failed to resynchronize", "component", comp.name, "err", err)
		}
	}
}
