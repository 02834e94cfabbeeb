// Package diagnostics collects non-fatal geometry warnings raised while
// building brushes and BSP trees, so a caller can choose to print them,
// fail a lint pass on them, or ignore them entirely.
package diagnostics

import (
	"fmt"
	"strings"
)

// Entry is a single collected warning.
type Entry struct {
	Message string
}

// Collector accumulates Entries. The zero value is ready to use.
type Collector struct {
	Entries []Entry
}

// Degenerate records a degenerate-geometry warning. It satisfies
// brush.Diagnostics.
func (c *Collector) Degenerate(format string, args ...any) {
	c.Entries = append(c.Entries, Entry{Message: fmt.Sprintf(format, args...)})
}

// Len reports how many warnings have been collected.
func (c *Collector) Len() int {
	return len(c.Entries)
}

// Report renders every collected warning as one line per entry.
func (c *Collector) Report() string {
	if len(c.Entries) == 0 {
		return "no diagnostics"
	}
	var b strings.Builder
	for i, e := range c.Entries {
		fmt.Fprintf(&b, "%3d. %s\n", i+1, e.Message)
	}
	return b.String()
}
