// Package solver builds and solves the boolean constraint model for
// one timetable. Model exposes a deliberately small capability set —
// boolean variables, linear equality and at-most constraints, a
// minimization objective, and a time-bounded solve — so any engine
// providing those operations (an OR-Tools CP-SAT binding, were a
// maintained one to exist for Go) could back the rest of the scheduler
// unchanged.
package solver

import "fmt"

// VarID is a handle to one boolean decision variable.
type VarID int

// Terms is a sparse linear combination: var id -> coefficient.
type Terms map[VarID]int

type constraintKind int

const (
	kindLE constraintKind = iota
	kindEQ
)

type constraint struct {
	kind  constraintKind
	terms Terms
	bound int
}

// Model accumulates boolean variables, linear constraints over them,
// and an optional objective to minimize.
type Model struct {
	varNames   []string
	constraints []constraint
	objective  Terms
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{}
}

// NewBoolVar allocates a new boolean decision variable and returns its handle.
func (m *Model) NewBoolVar(name string) VarID {
	m.varNames = append(m.varNames, name)
	return VarID(len(m.varNames) - 1)
}

// NumVars returns how many variables have been allocated.
func (m *Model) NumVars() int {
	return len(m.varNames)
}

// AddLinearLE posts `Σ terms[v]*v <= bound`.
func (m *Model) AddLinearLE(terms Terms, bound int) {
	m.constraints = append(m.constraints, constraint{kind: kindLE, terms: cloneTerms(terms), bound: bound})
}

// AddLinearEq posts `Σ terms[v]*v == bound`.
func (m *Model) AddLinearEq(terms Terms, bound int) {
	m.constraints = append(m.constraints, constraint{kind: kindEQ, terms: cloneTerms(terms), bound: bound})
}

// Minimize sets (or replaces) the objective to minimize `Σ terms[v]*v`.
func (m *Model) Minimize(terms Terms) {
	m.objective = cloneTerms(terms)
}

// VarName returns the diagnostic name given at NewBoolVar time.
func (m *Model) VarName(v VarID) string {
	if int(v) < 0 || int(v) >= len(m.varNames) {
		return fmt.Sprintf("var(%d)", v)
	}
	return m.varNames[v]
}

func cloneTerms(t Terms) Terms {
	out := make(Terms, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
