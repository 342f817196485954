// Package flatten turns a decoded document into a set of path tuples.
//
// Every object, array and scalar in the document becomes one Tuple whose
// identity is its full path from the root. Equal subtrees at equal paths
// therefore produce equal tuples, and plain set algebra over the results
// tells which nodes were added, removed or shared between documents.
package flatten

import (
	"errors"
	"fmt"

	"github.com/jacoelho/jsonset/internal/jsonvalue"
	"github.com/jacoelho/jsonset/internal/queue"
)

var (
	ErrRootNotObject = errors.New("root value must be an object")
	ErrUnknownNode   = errors.New("unknown node type")
)

// Options control how documents are flattened.
type Options struct {
	// PreserveListOrder makes array indexes part of the path. When false
	// every element sits under the same wildcard key, so reordering an array
	// changes nothing and only membership differences remain.
	PreserveListOrder bool
}

type visit struct {
	path  []Segment
	key   Key
	value jsonvalue.Value
}

// Flatten converts the root object v into its tuple set. Members are visited
// breadth first in key order.
func Flatten(v jsonvalue.Value, opts Options) (Set, error) {
	root, ok := v.(jsonvalue.Object)
	if !ok {
		return Set{}, fmt.Errorf("%w, got %s", ErrRootNotObject, describe(v))
	}

	set := Set{tuples: make(map[string]Tuple)}
	rootPath := []Segment{{Kind: Root, Key: RootMarker()}}

	pending := queue.NewWithCapacity[visit](len(root))
	for _, name := range root.Keys() {
		pending.Push(visit{path: rootPath, key: Name(name), value: root[name]})
	}

	for {
		item, ok := pending.Pop()
		if !ok {
			break
		}

		switch node := item.value.(type) {
		case jsonvalue.Object:
			path := extend(item.path, Segment{Kind: Object, Key: item.key})
			set.add(newTuple(path, Object, item.key, jsonvalue.Scalar{}))

			for _, name := range node.Keys() {
				pending.Push(visit{path: path, key: Name(name), value: node[name]})
			}
		case jsonvalue.Array:
			path := extend(item.path, Segment{Kind: Array, Key: item.key})
			set.add(newTuple(path, Array, item.key, jsonvalue.Scalar{}))

			for idx, element := range node {
				key := Wildcard()
				if opts.PreserveListOrder {
					key = Index(idx)
				}
				pending.Push(visit{path: path, key: key, value: element})
			}
		case jsonvalue.Scalar:
			path := extend(item.path, Segment{Kind: Leaf, Key: item.key})
			set.add(newTuple(path, Leaf, item.key, node))
		default:
			return Set{}, fmt.Errorf("%w: %T at %s", ErrUnknownNode, item.value, item.key)
		}
	}

	return set, nil
}

func (s Set) add(t Tuple) {
	s.tuples[t.id] = t
}

// extend copies path because sibling visits share the parent slice.
func extend(path []Segment, seg Segment) []Segment {
	out := make([]Segment, len(path)+1)
	copy(out, path)
	out[len(path)] = seg
	return out
}

func describe(v jsonvalue.Value) string {
	switch x := v.(type) {
	case jsonvalue.Object:
		return "object"
	case jsonvalue.Array:
		return "array"
	case jsonvalue.Scalar:
		return x.Type.String()
	default:
		return fmt.Sprintf("%T", v)
	}
}
