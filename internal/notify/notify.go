// Package notify holds user-visible notices. Notices expire after a fixed
// time so a session never has to dismiss them by hand.
package notify

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// TTL is how long a notice stays visible.
const TTL = 5 * time.Second

// Level classifies a notice.
type Level int

const (
	Info Level = iota
	Success
	Warning
	Error
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

var (
	colorBlue   = lipgloss.Color("#89b4fa")
	colorGreen  = lipgloss.Color("#a6e3a1")
	colorYellow = lipgloss.Color("#f9e2af")
	colorRed    = lipgloss.Color("#f38ba8")
)

func (l Level) style() lipgloss.Style {
	c := colorBlue
	switch l {
	case Success:
		c = colorGreen
	case Warning:
		c = colorYellow
	case Error:
		c = colorRed
	}
	return lipgloss.NewStyle().Foreground(c)
}

// Notice is one message.
type Notice struct {
	Level   Level
	Message string
	Expires time.Time
}

// Render returns the styled, single-line form of the notice.
func (n Notice) Render() string {
	tag := n.Level.style().Bold(true).Render(n.Level.String() + ":")
	return tag + " " + n.Message
}

// Board collects notices and drops them once they expire.
type Board struct {
	now     func() time.Time
	notices []Notice
}

// NewBoard returns an empty board. A nil clock uses time.Now.
func NewBoard(now func() time.Time) *Board {
	if now == nil {
		now = time.Now
	}
	return &Board{now: now}
}

// Add posts a notice and returns it.
func (b *Board) Add(level Level, msg string) Notice {
	n := Notice{Level: level, Message: msg, Expires: b.now().Add(TTL)}
	b.notices = append(b.notices, n)
	return n
}

// Active returns the notices that have not expired, oldest first, and
// forgets the rest.
func (b *Board) Active() []Notice {
	now := b.now()
	kept := b.notices[:0]
	for _, n := range b.notices {
		if now.Before(n.Expires) {
			kept = append(kept, n)
		}
	}
	b.notices = kept
	return append([]Notice(nil), kept...)
}

// NextExpiry reports when the oldest active notice expires.
func (b *Board) NextExpiry() (time.Time, bool) {
	var next time.Time
	for _, n := range b.Active() {
		if next.IsZero() || n.Expires.Before(next) {
			next = n.Expires
		}
	}
	return next, !next.IsZero()
}

// View renders all active notices, one per line.
func (b *Board) View() string {
	active := b.Active()
	lines := make([]string, len(active))
	for i, n := range active {
		lines[i] = n.Render()
	}
	return strings.Join(lines, "\n")
}

// Printer writes notices straight to a stream. It is used by one-shot
// commands where expiry does not apply.
type Printer struct {
	W io.Writer
}

// Print writes one styled notice line.
func (p Printer) Print(level Level, msg string) {
	if p.W == nil {
		return
	}
	_, _ = io.WriteString(p.W, Notice{Level: level, Message: msg}.Render()+"\n")
}
