package setops

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownOperation = errors.New("unknown operation")

// Operation selects how the flattened documents are combined.
type Operation int

const (
	Additions Operation = iota
	Subtractions
	Union
	Intersection
	Each
	SymmetricDifference
)

// Operations lists every operation in declaration order.
var Operations = []Operation{Additions, Subtractions, Union, Intersection, Each, SymmetricDifference}

var operationNames = map[Operation]string{
	Additions:           "additions",
	Subtractions:        "subtractions",
	Union:               "union",
	Intersection:        "intersection",
	Each:                "each",
	SymmetricDifference: "symmetric_difference",
}

var operationCodes = map[string]Operation{
	"a": Additions,
	"s": Subtractions,
	"u": Union,
	"i": Intersection,
	"e": Each,
	"d": SymmetricDifference,
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// Code returns the single letter alias of the operation.
func (o Operation) Code() string {
	for code, op := range operationCodes {
		if op == o {
			return code
		}
	}
	return ""
}

// separator joins document names in the label of a combined result.
func (o Operation) separator() string {
	switch o {
	case Additions, Subtractions:
		return " > "
	case Union:
		return " | "
	case Intersection:
		return " & "
	case SymmetricDifference:
		return " ^ "
	default:
		return ""
	}
}

// ParseOperation accepts a full operation name or its single letter code.
func ParseOperation(token string) (Operation, error) {
	token = strings.TrimSpace(token)
	if op, ok := operationCodes[token]; ok {
		return op, nil
	}
	for op, name := range operationNames {
		if name == token {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, token)
}

// ParseOutputMap parses a comma separated list of operations, keeping order
// and repetitions.
func ParseOutputMap(value string) ([]Operation, error) {
	var ops []Operation
	for token := range strings.SplitSeq(value, ",") {
		if strings.TrimSpace(token) == "" {
			continue
		}
		op, err := ParseOperation(token)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}
