package preproc

import "fmt"

// CaseAssignment is one boolean valuation over the discovered switch macros,
// defining one compiled variant of the file.
type CaseAssignment struct {
	Number     int
	Label      string
	Assignment map[string]bool
}

// Enumerate produces the full Cartesian product of {true,false} over names,
// which must already be sorted. Case numbers are 1-based in enumeration
// order. The order is stable and documented: the first name's boolean varies
// slowest, the last name's fastest, and true precedes false for every macro,
// so case 1 has every switch enabled and case 2^N has every switch disabled.
//
// Forced macros are fixed to their given value in every assignment and do not
// participate in the product.
func Enumerate(names []string, forced map[string]bool) []CaseAssignment {
	free := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := forced[name]; !ok {
			free = append(free, name)
		}
	}

	total := 1 << len(free)
	cases := make([]CaseAssignment, 0, total)
	for i := 0; i < total; i++ {
		assign := make(map[string]bool, len(names))
		for name, v := range forced {
			assign[name] = v
		}
		for j, name := range free {
			bit := (i >> (len(free) - 1 - j)) & 1
			assign[name] = bit == 0
		}
		cases = append(cases, CaseAssignment{
			Number:     i + 1,
			Label:      fmt.Sprintf("Case_%02d", i+1),
			Assignment: assign,
		})
	}
	return cases
}
