package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is a stderr activity indicator for the slow poster phases:
// geocoding, Overpass fetches, rasterization. One spinner spans the
// whole pipeline; Advance swaps the label as phases change, and the
// elapsed time since Start is shown alongside it.
type Spinner struct {
	mu    sync.Mutex
	label string
	width int // widest line drawn, for clearing

	start   time.Time
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
}

func newSpinner(label string) *Spinner {
	return newSpinnerWithContext(context.Background(), label)
}

// newSpinnerWithContext creates a spinner that also halts when the
// parent context is cancelled, so Ctrl-C interrupts the animation
// together with the work it narrates.
func newSpinnerWithContext(parent context.Context, label string) *Spinner {
	ctx, cancel := context.WithCancel(parent)
	return &Spinner{
		label:   label,
		parent:  parent,
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation. Stop must be called afterwards.
func (s *Spinner) Start() {
	s.start = time.Now()
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// Advance swaps the label as the pipeline moves to its next phase.
func (s *Spinner) Advance(label string) {
	s.mu.Lock()
	s.label = label
	s.mu.Unlock()
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	suffix := fmt.Sprintf("(%s)", time.Since(s.start).Round(time.Second))
	if n := len(frame) + len(s.label) + len(suffix) + 2; n > s.width {
		s.width = n
	}
	fmt.Fprintf(os.Stderr, "\r%s %s %s",
		styleIconSpinner.Render(frame), StyleDim.Render(s.label), StyleDim.Render(suffix))
}

// Stop halts the animation and clears the line. Safe to call more than
// once.
func (s *Spinner) Stop() {
	s.cancel()
	<-s.stopped

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", s.width))
}

// StopWithSuccess stops the spinner and reports the message with the
// total elapsed time.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	elapsed := time.Since(s.start).Round(time.Millisecond)
	printSuccess("%s %s", message, StyleDim.Render(fmt.Sprintf("(%s)", elapsed)))
}

// StopWithError stops the spinner and shows an error message.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the surrounding operation was interrupted,
// as opposed to the spinner being stopped normally.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
