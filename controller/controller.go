package controller

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/mppsim/display"
)

// Generation wraps a Controller in an akita TickingComponent so the
// Life step microprogram runs on the engine's own clock. The PE array
// itself is not modeled as a graph of akita components: the lockstep
// atomicity a microinstruction requires does not survive a decompose
// into message-passing components, so sim.Engine here is used purely
// as the generation clock driving one Step() per tick.
type Generation struct {
	*sim.TickingComponent

	controller *Controller
	sink       display.Sink

	// MaxSteps caps the number of generations this component runs;
	// zero means run until the engine itself stops (Steps never
	// reaches a limit).
	MaxSteps int
	Steps    int
}

// NewGeneration creates a Generation component named name, ticking at
// freq, driving ctrl's Step against sink.
func NewGeneration(name string, engine sim.Engine, freq sim.Freq, ctrl *Controller, sink display.Sink) *Generation {
	g := &Generation{
		controller: ctrl,
		sink:       sink,
	}
	g.TickingComponent = sim.NewTickingComponent(name, engine, freq, g)
	return g
}

// Tick runs one Life generation, unless MaxSteps has been reached.
func (g *Generation) Tick(now sim.VTimeInSec) (madeProgress bool) {
	if g.MaxSteps > 0 && g.Steps >= g.MaxSteps {
		return false
	}

	g.controller.Step(g.sink)
	g.Steps++

	return true
}

// Done reports whether MaxSteps has been reached. A caller driving the
// engine in a loop (rather than relying on Engine.Run's own
// fixed-point detection) can poll this to stop early.
func (g *Generation) Done() bool {
	return g.MaxSteps > 0 && g.Steps >= g.MaxSteps
}
