package controller

import (
	"github.com/sarchlab/mppsim/display"
	"github.com/sarchlab/mppsim/pe"
	"github.com/sarchlab/mppsim/router"
)

// counterWidth is the size of the per-generation neighbor-count
// region: nine representable counts (0 through 8 live Moore
// neighbors) need ten thermometer bits, [cs, cs+10).
const counterWidth = 10

// neighborTour is the S,E,N,N,W,W,S,S rotation sequence that walks
// every PE's FLAG_ROUTE_DATA through each of its eight Moore
// neighbors exactly once. The tour does not return the plane home: its
// net shift is one cell west and one cell south.
var neighborTour = []func(*router.Router){
	(*router.Router).RotateS,
	(*router.Router).RotateE,
	(*router.Router).RotateN,
	(*router.Router).RotateN,
	(*router.Router).RotateW,
	(*router.Router).RotateW,
	(*router.Router).RotateS,
	(*router.Router).RotateS,
}

// Step advances the cell grid by one generation: it snapshots the
// current live state, tallies each PE's eight Moore neighbors by
// rotating FLAG_ROUTE_DATA around the torus, applies the Life rule,
// writes the result back, and presents both the sampled and the
// resulting frame on sink.
func (c *Controller) Step(sink display.Sink) {
	cs, ce := c.Allocate(counterWidth)
	currentCell, _ := c.Allocate(1)
	nextCell, _ := c.Allocate(1)

	c.ClearMemory(cs, ce)
	c.SetMemory(cs, cs+1)

	c.RecvMemory(currentCell)

	c.present(sink, display.Blue)

	for k, rotate := range neighborTour {
		rotate(c.Router)
		c.CountFlag(cs, cs+k+3, pe.FlagRouteData)
	}

	for i := cs; i < ce-1; i++ {
		c.LogXor(i, i+1)
	}

	c.CopyFromTo(currentCell, nextCell)
	c.SetIf(nextCell, currentCell)
	c.LogAnd(nextCell, cs+2)
	c.SetIf(nextCell, cs+3)

	c.CopyFromTo(nextCell, currentCell)
	c.SendMemory(currentCell)

	c.present(sink, display.Red)
	sink.Refresh()

	c.DeallocateAll()
}

// present copies every chip word of FLAG_ROUTE_DATA into the sink's
// given channel.
func (c *Controller) present(sink display.Sink, channel display.Channel) {
	for y := 0; y < router.Height; y++ {
		for cc := 0; cc < router.Width/pe.PEsPerChip; cc++ {
			x := cc * pe.PEsPerChip
			sink.SetWord(channel, x, y, c.Router.Read64At(x, y))
		}
	}
}
