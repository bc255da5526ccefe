// Package model holds the structural representation of an optimization
// problem: its decision variables and the constraints that group them.
//
// Only membership matters here. Objective coefficients, bounds, and
// right-hand sides are irrelevant for visualization and are never stored;
// a Constraint is nothing more than the ordered list of variables that
// appeared together in one row of the source problem.
//
// The Model owns every Variable and Constraint. Cross-references between
// the two are stored as indices into the Model's arenas rather than as
// pointers, so the structure stays acyclic and trivially serializable.
package model

// Variable is a decision variable identified by its name in the source file.
// Constraints lists the indices (into Model's constraint arena) of every
// constraint the variable participates in. The list is informational, may
// contain duplicates, and is appended in registration order.
type Variable struct {
	ID          string
	Constraints []int
}

// Constraint is one row of the source problem: the variables that occurred
// in it, as indices into the Model's variable arena. Order is the encounter
// order in the input and duplicates are preserved.
type Constraint struct {
	Variables []int
}

// Model is a collection of variables and constraints built by a format
// parser. Variables are unique by ID; constraints keep insertion order.
//
// A Model is built once during a parse pass and treated as immutable
// afterwards. It is not safe for concurrent mutation.
type Model struct {
	vars        []Variable
	varIndex    map[string]int
	constraints []Constraint
}

// New creates an empty model.
func New() *Model {
	return &Model{varIndex: make(map[string]int)}
}

// CreateVariable returns the index of the variable with the given id,
// creating it if it does not exist yet. The operation is idempotent: the
// same id always resolves to the same index.
func (m *Model) CreateVariable(id string) int {
	if i, ok := m.varIndex[id]; ok {
		return i
	}
	i := len(m.vars)
	m.vars = append(m.vars, Variable{ID: id})
	m.varIndex[id] = i
	return i
}

// CreateConstraintRelation registers one constraint over the given variable
// ids. Unknown ids are created on the fly; order and duplicates are kept as
// given. Every participating variable receives a back-reference to the new
// constraint, without deduplication.
func (m *Model) CreateConstraintRelation(ids []string) {
	ci := len(m.constraints)
	c := Constraint{Variables: make([]int, len(ids))}
	for k, id := range ids {
		vi := m.CreateVariable(id)
		c.Variables[k] = vi
		m.vars[vi].Constraints = append(m.vars[vi].Constraints, ci)
	}
	m.constraints = append(m.constraints, c)
}

// Variable returns the variable at index i.
func (m *Model) Variable(i int) Variable { return m.vars[i] }

// Lookup returns the index of the variable with the given id, if present.
func (m *Model) Lookup(id string) (int, bool) {
	i, ok := m.varIndex[id]
	return i, ok
}

// Variables returns the variable arena in creation order.
// The returned slice is owned by the model and must not be modified.
func (m *Model) Variables() []Variable { return m.vars }

// Constraints returns the constraints in insertion order.
// The returned slice is owned by the model and must not be modified.
func (m *Model) Constraints() []Constraint { return m.constraints }

// VariableCount returns the number of distinct variables.
func (m *Model) VariableCount() int { return len(m.vars) }

// ConstraintCount returns the number of registered constraints.
func (m *Model) ConstraintCount() int { return len(m.constraints) }
