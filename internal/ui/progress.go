package ui

import (
	"fmt"
	"io"
)

// ConsoleIndicator is a terminal progress indicator. The graph-scan API only
// ever reports indeterminate-then-complete, so this stays line oriented
// instead of driving a live progress bar.
type ConsoleIndicator struct {
	out io.Writer
}

func NewConsoleIndicator(out io.Writer) *ConsoleIndicator {
	return &ConsoleIndicator{out: out}
}

func (c *ConsoleIndicator) SetIndeterminate(indeterminate bool) {
	if indeterminate {
		fmt.Fprintln(c.out, progressStyle.Render("Scanning dependency graph..."))
	}
}

func (c *ConsoleIndicator) SetFraction(fraction float64) {
	fmt.Fprintln(c.out, progressStyle.Render(fmt.Sprintf("Scan %.0f%% complete", fraction*100)))
}
