// Package report renders problems, tableaux and solver results as text.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/mat"

	"q.log/tableau/model"
	"q.log/tableau/penalty"
	"q.log/tableau/simplex"
)

// display threshold for entries that are zero up to rounding
const chop = 1e-9

func varName(j int) string {
	return "x_" + strconv.Itoa(j)
}

// Tableau renders a snapshot as a grid: a header row naming the columns,
// the objective row labelled z and one row per constraint labelled with
// its basic variable.
func Tableau(s simplex.Snapshot) string {
	if len(s.Grid) == 0 {
		return ""
	}
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)
	n := len(s.Grid[0]) - 2
	header := []string{"", "z"}
	for j := 1; j <= n; j++ {
		header = append(header, varName(j))
	}
	header = append(header, "RHS")
	fmt.Fprintln(w, strings.Join(header, "\t")+"\t")

	for i, row := range s.Grid {
		label := "z"
		if i > 0 {
			label = "?"
			if i-1 < len(s.Basis) {
				label = varName(s.Basis[i-1])
			}
		}
		cells := []string{label}
		for _, v := range row {
			cells = append(cells, v.Chop(chop).String())
		}
		fmt.Fprintln(w, strings.Join(cells, "\t")+"\t")
	}
	w.Flush()
	return sb.String()
}

// LP renders the problem in inequality form.
func LP(p *model.LP) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s\n", p.Sense, linear(p.C))
	m, _ := p.Dims()
	for i := range m {
		prefix := "     "
		if i == 0 {
			prefix = "s.t. "
		}
		fmt.Fprintf(&sb, "%s%s %s %s\n", prefix, linear(p.A.RawRowView(i)), p.Relations[i], formatFloat(p.B[i]))
	}
	sb.WriteString("     x >= 0\n")
	return sb.String()
}

func linear(coef []float64) string {
	var terms []string
	for j, c := range coef {
		switch c {
		case 0:
			continue
		case 1:
			terms = append(terms, varName(j+1))
		case -1:
			terms = append(terms, "-"+varName(j+1))
		default:
			terms = append(terms, formatFloat(c)+varName(j+1))
		}
	}
	if len(terms) == 0 {
		return "0"
	}
	return strings.ReplaceAll(strings.Join(terms, " + "), "+ -", "- ")
}

func formatFloat(f float64) string {
	return penalty.Num(f).String()
}

// Matrix formats m under name the way gonum prints matrices.
func Matrix(name string, m mat.Matrix) string {
	pad := strings.Repeat(" ", len(name)+3)
	return fmt.Sprintf("%s = %v\n", name, mat.Formatted(m, mat.Prefix(pad), mat.Squeeze()))
}

// Trace lists the basis sets in visiting order, marking the first repeat.
func Trace(trace [][]int) string {
	var sb strings.Builder
	seen := make(map[string]int)
	for i, set := range trace {
		names := make([]string, len(set))
		for k, v := range set {
			names[k] = varName(v)
		}
		key := strings.Join(names, ",")
		fmt.Fprintf(&sb, "%3d  {%s}", i, strings.Join(names, ", "))
		if first, ok := seen[key]; ok {
			fmt.Fprintf(&sb, "  repeats %d", first)
		} else {
			seen[key] = i
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary describes a result: status, objective value and the values of
// the original variables when the status is Optimal.
func Summary(r *simplex.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "method:     %s\n", r.Method)
	fmt.Fprintf(&sb, "status:     %s\n", r.Status)
	fmt.Fprintf(&sb, "iterations: %d\n", r.Iterations)
	switch r.Status {
	case simplex.Optimal:
		fmt.Fprintf(&sb, "objective:  %s\n", formatFloat(r.Value()))
		for j, x := range r.X {
			fmt.Fprintf(&sb, "  %s = %s\n", varName(j+1), penalty.Num(x).Chop(chop))
		}
	case simplex.Unbounded:
		fmt.Fprintf(&sb, "unbounded along %s\n", varName(r.Entering))
	}
	return sb.String()
}
