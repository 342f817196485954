// Package setops combines the flattened sets of several documents.
//
// Inputs are kept in the order given on the command line. Additions and
// subtractions depend on that order, union and intersection do not.
// Symmetric difference only looks at the first two documents and yields the
// empty set for a single document.
package setops

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jacoelho/jsonset/internal/flatten"
)

var ErrNoInputs = errors.New("no input documents")

// Input is one flattened document and the name it is reported under.
type Input struct {
	Label string
	Set   flatten.Set
}

// Section is a labeled group of tuples in a Result.
type Section struct {
	Label string
	Set   flatten.Set
}

// Result is the outcome of one operation. Each produces one section per
// input; every other operation produces exactly one.
type Result struct {
	Operation Operation
	Label     string
	Sections  []Section
}

// Apply runs op over inputs.
func Apply(op Operation, inputs []Input) (Result, error) {
	if len(inputs) == 0 {
		return Result{}, fmt.Errorf("%s: %w", op, ErrNoInputs)
	}

	switch op {
	case Additions:
		// the last document minus everything before it
		reversed := slices.Clone(inputs)
		slices.Reverse(reversed)
		return single(op, label(op, inputs), reduce(reversed, flatten.Set.Difference)), nil
	case Subtractions:
		reversed := slices.Clone(inputs)
		slices.Reverse(reversed)
		return single(op, label(op, reversed), reduce(inputs, flatten.Set.Difference)), nil
	case Union:
		return single(op, label(op, inputs), reduce(inputs, flatten.Set.Union)), nil
	case Intersection:
		return single(op, label(op, inputs), reduce(inputs, flatten.Set.Intersection)), nil
	case SymmetricDifference:
		var set flatten.Set
		if len(inputs) > 1 {
			set = inputs[0].Set.SymmetricDifference(inputs[1].Set)
		}
		return single(op, label(op, inputs), set), nil
	case Each:
		sections := make([]Section, len(inputs))
		for i, in := range inputs {
			sections[i] = Section{Label: in.Label, Set: in.Set}
		}
		return Result{Operation: op, Sections: sections}, nil
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownOperation, op)
	}
}

// ApplyAll runs every operation in order against the same inputs.
func ApplyAll(ops []Operation, inputs []Input) ([]Result, error) {
	results := make([]Result, 0, len(ops))
	for _, op := range ops {
		result, err := Apply(op, inputs)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func single(op Operation, label string, set flatten.Set) Result {
	return Result{
		Operation: op,
		Label:     label,
		Sections:  []Section{{Label: label, Set: set}},
	}
}

func reduce(inputs []Input, fn func(flatten.Set, flatten.Set) flatten.Set) flatten.Set {
	acc := inputs[0].Set
	for _, in := range inputs[1:] {
		acc = fn(acc, in.Set)
	}
	return acc
}

func label(op Operation, inputs []Input) string {
	names := make([]string, len(inputs))
	for i, in := range inputs {
		names[i] = in.Label
	}
	return strings.Join(names, op.separator())
}
