// Package flow extracts per-function control structures from a parsed
// Python syntax tree.
//
// The extractor walks the tree depth-first visiting every function
// definition (nested functions included, recorded as independent entries)
// and records one [Step] per if/for/while/return statement appearing
// directly in the function body. Nested bodies are not descended into for
// step extraction; one traversal level per function is the model.
//
// Extraction is a pure function of the tree: no shared state, no side
// effects, safe to run concurrently on independent trees.
package flow

import (
	"encoding/json"
	"fmt"

	"github.com/yashsidana/code-clarified/pkg/errors"
)

// StepKind discriminates the flow step variants.
type StepKind string

// Step kinds.
const (
	KindDecision StepKind = "decision" // if statement
	KindLoop     StepKind = "loop"     // for or while statement
	KindReturn   StepKind = "return"   // return statement
)

// PlaceholderExpr is substituted for a sub-expression whose source text
// could not be rendered. Recovery keeps one malformed expression from
// aborting the whole analysis; the placeholder stays visible in the diagram.
const PlaceholderExpr = "<unparseable expression>"

// Step is one recorded control-structure event in a function body.
// Exactly one of the kind-specific fields is meaningful, per Kind:
//   - KindDecision: Condition holds the unparsed test expression text
//   - KindLoop: Header holds "for <target> in <iterable>" or "while <condition>"
//   - KindReturn: Value holds the returned expression text; HasValue is
//     false for a bare return
type Step struct {
	Kind      StepKind `json:"kind"`
	Condition string   `json:"condition,omitempty"`
	Header    string   `json:"header,omitempty"`
	Value     string   `json:"value,omitempty"`
	HasValue  bool     `json:"has_value,omitempty"`
}

// Label returns the display text for this step. Label formatting is
// centralized here so the literal formats rendered into diagrams have a
// single source of truth.
func (s Step) Label() string {
	switch s.Kind {
	case KindDecision:
		return s.Condition
	case KindLoop:
		return s.Header
	case KindReturn:
		if s.HasValue {
			return "Return " + s.Value
		}
		return "Return"
	}
	return ""
}

// Decision creates a decision step from an if statement's test expression.
func Decision(condition string) Step {
	return Step{Kind: KindDecision, Condition: condition}
}

// ForLoop creates a loop step from a for statement's target and iterable.
func ForLoop(target, iterable string) Step {
	return Step{Kind: KindLoop, Header: fmt.Sprintf("for %s in %s", target, iterable)}
}

// WhileLoop creates a loop step from a while statement's condition.
func WhileLoop(condition string) Step {
	return Step{Kind: KindLoop, Header: "while " + condition}
}

// Return creates a return step carrying the returned expression text.
func Return(value string) Step {
	return Step{Kind: KindReturn, Value: value, HasValue: true}
}

// BareReturn creates a return step for a return without a value.
func BareReturn() Step {
	return Step{Kind: KindReturn}
}

// FunctionFlow is the extracted flow of one function definition.
type FunctionFlow struct {
	Name   string   `json:"name"`
	Params []string `json:"params"`
	Steps  []Step   `json:"steps"`
}

// Structure maps function names to their extracted flows, preserving the
// order in which functions were first encountered. Redefining a function
// overwrites its flow but keeps its original position, matching Python's
// single-namespace dict semantics.
//
// A Structure is built once per analysis request and never mutated after
// extraction completes.
type Structure struct {
	order     []string
	funcs     map[string]FunctionFlow
	recovered int
}

// NewStructure creates an empty Structure.
func NewStructure() *Structure {
	return &Structure{funcs: make(map[string]FunctionFlow)}
}

// Add records a function flow. A flow with a name seen before replaces the
// earlier entry in place (last-write-wins).
func (s *Structure) Add(f FunctionFlow) {
	if _, seen := s.funcs[f.Name]; !seen {
		s.order = append(s.order, f.Name)
	}
	s.funcs[f.Name] = f
}

// Get returns the flow for a function name.
func (s *Structure) Get(name string) (FunctionFlow, bool) {
	f, ok := s.funcs[name]
	return f, ok
}

// Lookup returns the flow for a function name, with a FUNCTION_NOT_FOUND
// error when no function of that name was extracted.
func (s *Structure) Lookup(name string) (FunctionFlow, error) {
	f, ok := s.funcs[name]
	if !ok {
		return FunctionFlow{}, errors.New(errors.ErrCodeFunctionNotFound, "function %q not found", name)
	}
	return f, nil
}

// Functions returns all flows in first-seen order.
func (s *Structure) Functions() []FunctionFlow {
	out := make([]FunctionFlow, len(s.order))
	for i, name := range s.order {
		out[i] = s.funcs[name]
	}
	return out
}

// Len returns the number of distinct functions recorded.
func (s *Structure) Len() int {
	return len(s.order)
}

// RecoveredExprs reports how many sub-expressions were replaced with
// [PlaceholderExpr] during extraction. Callers use it to log recoveries
// without the extractor itself logging.
func (s *Structure) RecoveredExprs() int {
	return s.recovered
}

// RecoveryWarning returns an advisory UNPARSEABLE_EXPRESSION error when
// any placeholder substitutions happened, or nil when every expression was
// read cleanly. Extraction has already recovered; the warning exists so
// front ends can tell the user the diagram contains placeholders.
func (s *Structure) RecoveryWarning() error {
	if s.recovered == 0 {
		return nil
	}
	return errors.New(errors.ErrCodeUnparseableExpr,
		"replaced %d unreadable expressions with placeholders", s.recovered)
}

// structureJSON is the serialization form: a flat list keeps the order.
type structureJSON struct {
	Functions []FunctionFlow `json:"functions"`
}

// MarshalJSON serializes the structure preserving function order.
func (s *Structure) MarshalJSON() ([]byte, error) {
	return json.Marshal(structureJSON{Functions: s.Functions()})
}

// UnmarshalJSON rebuilds a structure from its serialized form.
func (s *Structure) UnmarshalJSON(data []byte) error {
	var raw structureJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.order = nil
	s.funcs = make(map[string]FunctionFlow, len(raw.Functions))
	for _, f := range raw.Functions {
		s.Add(f)
	}
	return nil
}
