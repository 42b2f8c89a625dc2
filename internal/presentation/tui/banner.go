package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the fretwise ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Amber to rose, one shade per line
	lines := []struct {
		text  string
		color string
	}{
		{"   __          _          _          ", "#fbbf24"},
		{"  / _|_ _ ___ | |___ __ _(_)___ ___ ", "#f59e0b"},
		{" |  _| '_/ -_)|  _\\ V  V / (_-</ -_)", "#f97316"},
		{" |_| |_| \\___| \\__|\\_/\\_/|_/__/\\___|", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
