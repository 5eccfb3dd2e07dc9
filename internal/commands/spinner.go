package commands

import (
	"fmt"
	"io"
	"sync"
	"time"

	bspinner "github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// spinnerFrames match the indicator of the chat view
var spinnerFrames = bspinner.Points

// spinner draws a one-line waiting indicator with the elapsed time while
// a one-shot request runs. It writes ANSI sequences, so out should be a
// terminal.
type spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	began   time.Time
	now     func() time.Time

	mu      sync.Mutex
	frame   int
	started bool
	stopped bool
}

func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		now:     time.Now,
	}
}

func (s *spinner) start() {
	s.mu.Lock()
	s.started = true
	s.began = s.now()
	s.mu.Unlock()

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(spinnerFrames.FPS)
		defer ticker.Stop()

		fmt.Fprint(s.out, "\033[?25l") // hide cursor
		for {
			select {
			case <-s.stop:
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				fmt.Fprint(s.out, "\r\033[K"+s.line())
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// line renders the current frame. Callers hold mu.
func (s *spinner) line() string {
	frames := spinnerFrames.Frames
	color := spinnerColors[s.frame%len(spinnerColors)]
	glyph := lipgloss.NewStyle().Foreground(color).Bold(true).Render(frames[s.frame%len(frames)])

	elapsed := s.now().Sub(s.began).Truncate(100 * time.Millisecond)
	return fmt.Sprintf("%s %s %s", glyph,
		spinnerTextStyle.Render(s.message),
		spinnerMuteStyle.Render(fmt.Sprintf("(%.1fs)", elapsed.Seconds())))
}

// halt stops the animation once and waits for it to clear its line
func (s *spinner) halt() {
	s.mu.Lock()
	started := s.started
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
	s.mu.Unlock()

	if started {
		<-s.done
	}
}

func (s *spinner) stopWithSuccess(message string) {
	s.halt()
	check := lipgloss.NewStyle().Foreground(spinnerColors[len(spinnerColors)-1]).Bold(true).Render("✓")
	fmt.Fprintf(s.out, "%s %s\n", check, successStyle.Render(message))
}

func (s *spinner) stopWithError() {
	s.halt()
}
