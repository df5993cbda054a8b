package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const hintSeparator = "  "

// RenderStatusBar renders keybinding hints for the bottom status bar.
//
// When the hints are wider than width, hints before the last one are dropped
// from the right so the quit hint stays visible. A width of zero or less
// disables fitting.
func RenderStatusBar(theme Theme, hints []KeyHint, width int) string {
	hints = fitHints(hints, width)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, theme.StatusKey.Render(h.Key)+" "+h.Desc)
	}

	return theme.StatusBar.Render(strings.Join(parts, hintSeparator))
}

func fitHints(hints []KeyHint, width int) []KeyHint {
	if width <= 0 || len(hints) < 2 {
		return hints
	}

	last := hints[len(hints)-1]
	kept := hints[:len(hints)-1]
	for len(kept) > 0 && hintsWidth(append(kept[:len(kept):len(kept)], last)) > width {
		kept = kept[:len(kept)-1]
	}

	return append(kept[:len(kept):len(kept)], last)
}

func hintsWidth(hints []KeyHint) int {
	total := 0
	for i, h := range hints {
		if i > 0 {
			total += len(hintSeparator)
		}
		total += lipgloss.Width(h.Key) + 1 + lipgloss.Width(h.Desc)
	}
	return total
}
