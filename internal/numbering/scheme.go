// Package numbering allocates human-readable sequential document numbers
// of the form PREFIX-YEAR-NNN, unique within a prefix and year.
package numbering

import (
	"fmt"
	"strconv"
)

// Scheme describes one numbering series.
type Scheme struct {
	Prefix string
	Width  int
}

var (
	JobSheet  = Scheme{Prefix: "JS", Width: 3}
	Invoice   = Scheme{Prefix: "INV", Width: 4}
	Quotation = Scheme{Prefix: "QUO", Width: 4}
	DInvoice  = Scheme{Prefix: "DINV", Width: 4}
)

// Format renders the n-th number of a scheme in a year. Numbers wider than
// the scheme's width are printed in full.
func Format(s Scheme, year, n int) string {
	seq := strconv.Itoa(n)
	if s.Width > 0 {
		seq = fmt.Sprintf("%0*d", s.Width, n)
	}
	return fmt.Sprintf("%s-%d-%s", s.Prefix, year, seq)
}
