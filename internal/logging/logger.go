// Package logging provides the small levelled logger used across the
// generator and the CLI.
package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Logger is the logging surface the rest of the module depends on.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// Level orders log severities; messages below the logger's level are dropped.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelError:
		return "ERROR"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel maps a level name to a Level. Matching is case-insensitive.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "error", "":
		return LevelError, nil
	}
	return LevelError, fmt.Errorf("unknown log level %q", s)
}

// Console writes one line per message to w, prefixed with a level badge.
// Colors are only emitted when w is a terminal.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	badges map[Level]string
}

// NewConsole returns a Console writing messages at or above level to w.
func NewConsole(w io.Writer, level Level) *Console {
	r := lipgloss.NewRenderer(w)
	badge := func(l Level, color string) string {
		return r.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(l.String())
	}
	return &Console{
		w:     w,
		level: level,
		badges: map[Level]string{
			LevelDebug: badge(LevelDebug, "8"),
			LevelInfo:  badge(LevelInfo, "12"),
			LevelError: badge(LevelError, "9"),
		},
	}
}

func (c *Console) Debugf(format string, args ...any) { c.logf(LevelDebug, format, args...) }
func (c *Console) Infof(format string, args ...any)  { c.logf(LevelInfo, format, args...) }
func (c *Console) Errorf(format string, args ...any) { c.logf(LevelError, format, args...) }

func (c *Console) logf(l Level, format string, args ...any) {
	if l < c.level {
		return
	}
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "%s %s\n", c.badges[l], msg)
}

// Nop discards every message.
type Nop struct{}

func (Nop) Debugf(string, ...any) {}
func (Nop) Infof(string, ...any)  {}
func (Nop) Errorf(string, ...any) {}
