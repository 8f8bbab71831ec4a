package simplex

import (
	"slices"
	"strconv"
	"strings"
)

// CycleTracker keeps the basis trace: the set of basic variables after
// every pivot, starting with the initial basis. A set seen twice means the
// pivot sequence has cycled.
type CycleTracker struct {
	trace [][]int
	seen  map[string]int
}

func NewCycleTracker(initial []int) *CycleTracker {
	c := &CycleTracker{seen: make(map[string]int)}
	c.Record(initial)
	return c
}

// Record appends the set of basis and reports whether it was already in
// the trace.
func (c *CycleTracker) Record(basis []int) bool {
	set := slices.Clone(basis)
	slices.Sort(set)
	key := basisKey(set)
	_, repeated := c.seen[key]
	if !repeated {
		c.seen[key] = len(c.trace)
	}
	c.trace = append(c.trace, set)
	return repeated
}

// FirstSeen returns the trace position where the set of basis first
// appeared, or -1.
func (c *CycleTracker) FirstSeen(basis []int) int {
	set := slices.Clone(basis)
	slices.Sort(set)
	if i, ok := c.seen[basisKey(set)]; ok {
		return i
	}
	return -1
}

func (c *CycleTracker) Len() int {
	return len(c.trace)
}

// Trace returns a copy of the recorded sets, each sorted ascending.
func (c *CycleTracker) Trace() [][]int {
	out := make([][]int, len(c.trace))
	for i, set := range c.trace {
		out[i] = slices.Clone(set)
	}
	return out
}

func basisKey(set []int) string {
	var sb strings.Builder
	for i, v := range set {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}
