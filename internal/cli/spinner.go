package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// spinnerFrames is the animation cycle; one frame per tick.
var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerInterval is the delay between frames.
const spinnerInterval = 80 * time.Millisecond

// Spinner animates a progress indicator on one terminal line while a slow
// operation (rendering, posting) runs. It stops on Stop or when its context
// is cancelled, and always erases its line before handing the terminal back.
type Spinner struct {
	message string
	out     io.Writer
	ctx     context.Context
	cancel  context.CancelFunc

	stopOnce sync.Once
	stopped  chan struct{}
}

// newSpinnerWithContext creates a spinner that stops via Stop or when ctx
// is cancelled. Output goes to stderr so piped stdout stays clean.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message: message,
		out:     os.Stderr,
		ctx:     spinnerCtx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation in a background goroutine.
func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)

		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for frame := 0; ; frame++ {
			select {
			case <-s.ctx.Done():
				s.eraseLine()
				return
			case <-ticker.C:
				glyph := spinnerFrames[frame%len(spinnerFrames)]
				fmt.Fprintf(s.out, "\r%s %s",
					styleIconSpinner.Render(glyph), StyleDim.Render(s.message))
			}
		}
	}()
}

// Stop halts the animation and waits for the line to be erased. Safe to
// call more than once and safe after context cancellation.
func (s *Spinner) Stop() {
	s.stopOnce.Do(s.cancel)
	<-s.stopped
}

// eraseLine clears the spinner's terminal line.
func (s *Spinner) eraseLine() {
	fmt.Fprint(s.out, "\r\x1b[2K")
}

// StopWithSuccess stops the spinner and prints a success line in its place.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line in its place.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context ended, either from the
// parent context or from Stop.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
