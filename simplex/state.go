package simplex

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNoUnitEntry = errors.New("simplex: basis column has no unit entry")
	ErrMethod      = errors.New("simplex: unknown method")
)

// State is a phase of the tableau engine.
type State int

const (
	Initializing State = iota
	ReducingBasisRow
	Iterating
	Optimal
	Unbounded
	CycleDetected
	StoppedByIterationLimit
	Infeasible
)

var stateNames = [...]string{
	Initializing:            "initializing",
	ReducingBasisRow:        "reducing basis row",
	Iterating:               "iterating",
	Optimal:                 "optimal",
	Unbounded:               "unbounded",
	CycleDetected:           "cycle detected",
	StoppedByIterationLimit: "stopped by iteration limit",
	Infeasible:              "infeasible",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether no further pivots follow s.
func (s State) Terminal() bool {
	return s >= Optimal
}

// Method selects how problems without an obvious feasible basis are solved.
type Method int

const (
	TwoPhase Method = iota
	BigM
)

func (m Method) String() string {
	switch m {
	case TwoPhase:
		return "twophase"
	case BigM:
		return "bigm"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod accepts "twophase" or "bigm" (case and dashes ignored).
func ParseMethod(name string) (Method, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "") {
	case "twophase", "2phase":
		return TwoPhase, nil
	case "bigm", "m":
		return BigM, nil
	}
	return 0, errors.Wrapf(ErrMethod, "%q", name)
}
