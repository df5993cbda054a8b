package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andreagrandi/pipecreate/internal/log"
)

// logView shows the tail of the log sink with optional scrolling. Lines
// are read from the sink on every render so new records appear as they
// are written. By default it follows the end of the log.
type logView struct {
	sink       *log.Sink
	offset     int
	viewHeight int
	follow     bool
}

func newLogView(sink *log.Sink, viewHeight int) logView {
	return logView{sink: sink, viewHeight: viewHeight, follow: true}
}

func (o *logView) lines() []string {
	if o.sink == nil {
		return nil
	}
	return o.sink.Lines()
}

func (o *logView) resize(height int) {
	o.viewHeight = height
	if o.viewHeight < 1 {
		o.viewHeight = 1
	}
	o.clampOffset()
}

// update handles scroll keys and reports whether it consumed the key.
func (o *logView) update(msg tea.KeyMsg) bool {
	if !o.scrollable() {
		return false
	}

	switch msg.String() {
	case "up", "k":
		o.pin()
		if o.offset > 0 {
			o.offset--
		}
		return true
	case "down", "j":
		o.pin()
		if max := o.maxOffset(); o.offset < max {
			o.offset++
		}
		if o.offset == o.maxOffset() {
			o.follow = true
		}
		return true
	case "home", "g":
		o.follow = false
		o.offset = 0
		return true
	case "end", "G":
		o.follow = true
		return true
	}

	return false
}

// pin freezes the offset at the current tail before manual scrolling.
func (o *logView) pin() {
	if o.follow {
		o.offset = o.maxOffset()
		o.follow = false
	}
}

func (o *logView) view(theme Theme) string {
	lines := o.lines()
	if len(lines) == 0 {
		return theme.Dim.Render("  (no log output yet)") + "\n"
	}

	offset := o.offset
	if o.follow {
		offset = o.maxOffset()
	}

	viewLines := o.viewHeight

	// Reserve a line for the scroll indicator when there is more content below.
	hasMore := offset+viewLines < len(lines)
	if hasMore {
		viewLines--
	}

	end := offset + viewLines
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	for _, line := range lines[offset:end] {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if hasMore {
		remaining := len(lines) - end
		b.WriteString(theme.Dim.Render("  \u25bc " + strings.Repeat(".", 3) + " " + strconv.Itoa(remaining) + " more"))
		b.WriteByte('\n')
	}

	return b.String()
}

func (o *logView) scrollable() bool {
	return len(o.lines()) > o.viewHeight
}

func (o *logView) maxOffset() int {
	max := len(o.lines()) - o.viewHeight
	if max < 0 {
		return 0
	}

	return max
}

func (o *logView) clampOffset() {
	if max := o.maxOffset(); o.offset > max {
		o.offset = max
	}
}

func (o *logView) hints() []KeyHint {
	if o.scrollable() {
		return []KeyHint{{Key: "\u2191\u2193", Desc: "scroll log"}}
	}
	return nil
}
