package solver

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Status classifies a solve outcome. Only Optimal and Feasible are
// accepted by callers; any other status is surfaced as the no_solution
// failure with the status name attached.
type Status string

const (
	StatusOptimal    Status = "OPTIMAL"
	StatusFeasible   Status = "FEASIBLE"
	StatusInfeasible Status = "INFEASIBLE"
	StatusUnknown    Status = "UNKNOWN"
)

// Result is the outcome of SolveWithTimeout.
type Result struct {
	Status    Status
	Values    map[VarID]bool
	Objective int
}

// Value reports whether the given variable is set to true in the result.
func (r Result) Value(v VarID) bool {
	return r.Values[v]
}

// DriverConfig tunes the search.
type DriverConfig struct {
	TimeLimit time.Duration
	Workers   int
}

// compiled is the read-only constraint graph built once per solve: for
// every variable, which constraints reference it, so propagation after
// an assignment only visits affected rows.
type compiled struct {
	model        *Model
	varToCons    [][]int
	hasObjective bool
}

func compile(m *Model) *compiled {
	c := &compiled{model: m, varToCons: make([][]int, m.NumVars())}
	for ci, cons := range m.constraints {
		for v := range cons.terms {
			c.varToCons[v] = append(c.varToCons[v], ci)
		}
	}
	c.hasObjective = len(m.objective) > 0
	return c
}

// searchState is one worker's mutable view during backtracking: which
// variables are assigned, and per-constraint remaining slack (for <=)
// or remaining target (for ==) plus how many unassigned terms remain.
type searchState struct {
	assigned   []int8 // 0 unassigned, 1 true, -1 false
	remaining  []int  // remaining bound to satisfy
	unassigned []int  // count of unassigned terms still in the constraint
}

func newSearchState(c *compiled) *searchState {
	s := &searchState{
		assigned:   make([]int8, c.model.NumVars()),
		remaining:  make([]int, len(c.model.constraints)),
		unassigned: make([]int, len(c.model.constraints)),
	}
	for ci, cons := range c.model.constraints {
		s.remaining[ci] = cons.bound
		s.unassigned[ci] = len(cons.terms)
	}
	return s
}

func (s *searchState) clone() *searchState {
	return &searchState{
		assigned:   append([]int8(nil), s.assigned...),
		remaining:  append([]int(nil), s.remaining...),
		unassigned: append([]int(nil), s.unassigned...),
	}
}

// assign tries to set v=val, propagating the effect on every
// constraint touching v. It returns false if the assignment violates
// a <= bound or overshoots an == target — the caller must backtrack.
func (s *searchState) assign(c *compiled, v VarID, val bool) bool {
	if s.assigned[v] != 0 {
		return (s.assigned[v] == 1) == val
	}
	if val {
		s.assigned[v] = 1
	} else {
		s.assigned[v] = -1
	}
	for _, ci := range c.varToCons[v] {
		cons := c.model.constraints[ci]
		coeff := cons.terms[v]
		s.unassigned[ci]--
		if val {
			s.remaining[ci] -= coeff
		}
		switch cons.kind {
		case kindLE:
			if s.remaining[ci] < 0 {
				return false
			}
		case kindEQ:
			if s.remaining[ci] < 0 {
				return false
			}
			if s.unassigned[ci] == 0 && s.remaining[ci] != 0 {
				return false
			}
		}
	}
	return true
}

// forcedMoves finds unit-propagation opportunities: an == constraint
// whose remaining target equals its remaining unassigned count must
// set every remaining var true; one whose remaining target is 0 must
// set every remaining var false.
func (s *searchState) forcedMoves(c *compiled) (map[VarID]bool, bool) {
	moves := map[VarID]bool{}
	for ci, cons := range c.model.constraints {
		if cons.kind != kindEQ || s.unassigned[ci] == 0 {
			continue
		}
		if s.remaining[ci] == 0 {
			for v := range cons.terms {
				if s.assigned[v] == 0 {
					moves[v] = false
				}
			}
		} else if s.remaining[ci] == s.unassigned[ci] {
			for v := range cons.terms {
				if s.assigned[v] == 0 {
					moves[v] = true
				}
			}
		}
	}
	return moves, len(moves) > 0
}

func (s *searchState) objectiveValue(c *compiled) int {
	total := 0
	for v, coeff := range c.model.objective {
		if s.assigned[v] == 1 {
			total += coeff
		}
	}
	return total
}

func (s *searchState) isComplete() bool {
	for _, a := range s.assigned {
		if a == 0 {
			return false
		}
	}
	return true
}

// nextVar picks the most-constrained unassigned variable (fewest
// unassigned terms summed across its constraints), a standard CSP heuristic
// that keeps branching factor low on this set-partition/packing shape.
func (s *searchState) nextVar(c *compiled) (VarID, bool) {
	best := VarID(-1)
	bestScore := int(^uint(0) >> 1)
	for v := 0; v < len(s.assigned); v++ {
		if s.assigned[v] != 0 {
			continue
		}
		score := 0
		for _, ci := range c.varToCons[v] {
			score += s.unassigned[ci]
		}
		if score < bestScore {
			bestScore = score
			best = VarID(v)
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

type incumbent struct {
	mu         sync.Mutex
	best       *searchState
	bestOK     bool
	objVal     int
	onSolution func()
}

func (inc *incumbent) offer(c *compiled, candidate *searchState) {
	obj := candidate.objectiveValue(c)
	inc.mu.Lock()
	if !inc.bestOK || obj < inc.objVal {
		inc.best = candidate
		inc.objVal = obj
		inc.bestOK = true
	}
	notify := inc.onSolution
	inc.mu.Unlock()
	if notify != nil {
		notify()
	}
}

// SolveWithTimeout runs a time-bounded branch-and-bound search over m,
// fanning out across cfg.Workers goroutines that race independent,
// randomized-order restarts, the way CP-SAT fans a solve across
// internal worker threads.
// Each worker explores until it either exhausts its branch order or
// the deadline fires; the best incumbent objective across all workers
// wins. The result is OPTIMAL when every worker exhausted its search
// before the deadline, or when the model has no objective; otherwise
// the best incumbent found before the deadline is FEASIBLE. With no
// incumbent at all the result is INFEASIBLE.
func SolveWithTimeout(ctx context.Context, m *Model, cfg DriverConfig) Result {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 8
	}
	timeout := cfg.TimeLimit
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	deadlineCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c := compile(m)
	// Without an objective any feasible assignment is acceptable, so
	// the first incumbent stops every worker.
	searchCtx, stop := context.WithCancel(deadlineCtx)
	defer stop()
	inc := &incumbent{}
	if !c.hasObjective {
		inc.onSolution = stop
	}
	var exhausted atomic.Int32

	g, gctx := errgroup.WithContext(searchCtx)
	for w := 0; w < workers; w++ {
		seed := int64(w)*2654435761 + 1
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed))
			completedFully := search(gctx, c, rng, inc)
			if completedFully {
				exhausted.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	inc.mu.Lock()
	defer inc.mu.Unlock()
	if !inc.bestOK {
		return Result{Status: StatusInfeasible}
	}
	status := StatusFeasible
	if int(exhausted.Load()) == workers || !c.hasObjective {
		status = StatusOptimal
	}
	values := make(map[VarID]bool, len(inc.best.assigned))
	for v, a := range inc.best.assigned {
		values[VarID(v)] = a == 1
	}
	return Result{Status: status, Values: values, Objective: inc.objVal}
}

// search runs one randomized DFS worker. It returns true if the
// worker's entire branch order was exhausted before the deadline
// (a witness that no better solution exists along that order).
func search(ctx context.Context, c *compiled, rng *rand.Rand, inc *incumbent) bool {
	start := newSearchState(c)
	return dfs(ctx, c, start, rng, inc)
}

func dfs(ctx context.Context, c *compiled, state *searchState, rng *rand.Rand, inc *incumbent) bool {
	select {
	case <-ctx.Done():
		return false
	default:
	}

	for {
		moves, ok := state.forcedMoves(c)
		if !ok {
			break
		}
		for v, val := range moves {
			if !state.assign(c, v, val) {
				return true // this branch is dead; order exhausted along it
			}
		}
	}

	if state.isComplete() {
		inc.offer(c, state)
		return true
	}

	v, ok := state.nextVar(c)
	if !ok {
		return true
	}

	order := [2]bool{true, false}
	if rng.Intn(2) == 0 {
		order = [2]bool{false, true}
	}

	fullyExhausted := true
	for _, val := range order {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		branch := state.clone()
		if !branch.assign(c, v, val) {
			continue
		}
		if !dfs(ctx, c, branch, rng, inc) {
			fullyExhausted = false
		}
	}
	return fullyExhausted
}
