//go:build !headless

// Package ebitensink renders the 256x256 RGB planes of a
// display.Buffered into a real window, adapted from the wider example
// pack's Ebiten video backend: a mutex-guarded frame buffer rebuilt
// from the simulation's own buffers and blitted via
// ebiten.Image.WritePixels.
package ebitensink

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/sarchlab/mppsim/display"
)

const (
	width  = 256
	height = 256
)

// Sink renders a *display.Buffered's RGB planes into an Ebiten
// window. It implements ebiten.Game; call Run to start the window's
// event loop, which blocks until the window is closed.
type Sink struct {
	src *display.Buffered

	bufferMutex sync.RWMutex
	frameBuffer []byte
	window      *ebiten.Image
}

// New wraps src for Ebiten display.
func New(src *display.Buffered) *Sink {
	return &Sink{
		src:         src,
		frameBuffer: make([]byte, width*height*4),
	}
}

// Run opens a window titled title and blocks until it is closed.
func (s *Sink) Run(title string) error {
	ebiten.SetWindowSize(width*2, height*2)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)
	return ebiten.RunGame(s)
}

// Update rebuilds the frame buffer from the source's current RGB
// planes. It runs on Ebiten's own goroutine, so it reads src under
// src's own mutex rather than sharing state with the controller
// thread directly.
func (s *Sink) Update() error {
	red := s.src.Snapshot(display.Red)
	green := s.src.Snapshot(display.Green)
	blue := s.src.Snapshot(display.Blue)

	s.bufferMutex.Lock()
	defer s.bufferMutex.Unlock()

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			chip := y*(width/64) + (x >> 6)
			lane := uint(x & 63)

			i := (y*width + x) * 4
			s.frameBuffer[i] = bit(red[chip], lane)
			s.frameBuffer[i+1] = bit(green[chip], lane)
			s.frameBuffer[i+2] = bit(blue[chip], lane)
			s.frameBuffer[i+3] = 0xff
		}
	}

	return nil
}

func bit(word uint64, lane uint) byte {
	if word&(1<<lane) != 0 {
		return 0xff
	}
	return 0x00
}

// Draw blits the current frame buffer to the window.
func (s *Sink) Draw(screen *ebiten.Image) {
	if s.window == nil {
		s.window = ebiten.NewImage(width, height)
	}

	s.bufferMutex.RLock()
	s.window.WritePixels(s.frameBuffer)
	s.bufferMutex.RUnlock()

	screen.DrawImage(s.window, nil)
}

// Layout implements ebiten.Game.
func (s *Sink) Layout(_, _ int) (int, int) {
	return width, height
}
