package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the navfocus banner to w.
func PrintBanner(w io.Writer, color bool) {
	p := profile(color)
	lines := []struct{ text, hex string }{
		{"  _ __   __ ___   __ / _| ___   ___ _   _ ___", "#818cf8"},
		{" | '_ \\ / _` \\ \\ / /| |_ / _ \\ / __| | | / __|", "#a78bfa"},
		{" | | | | (_| |\\ V / |  _| (_) | (__| |_| \\__ \\", "#c084fc"},
		{" |_| |_|\\__,_| \\_/  |_|  \\___/ \\___|\\__,_|___/", "#e879f9"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.hex)))
	}
	fmt.Fprintln(w)
}

func profile(color bool) termenv.Profile {
	if !color {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}
