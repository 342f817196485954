package flatten

import (
	"slices"
	"strconv"
	"strings"

	"github.com/jacoelho/jsonset/internal/jsonvalue"
)

// Kind classifies a path segment or a tuple.
type Kind uint8

const (
	Root Kind = iota
	Object
	Array
	Leaf
)

// String returns the marker used when printing paths.
func (k Kind) String() string {
	switch k {
	case Root:
		return "/"
	case Object:
		return "[DICT]"
	case Array:
		return "[LIST]"
	case Leaf:
		return "[ITEM]"
	default:
		return "[UNKNOWN]"
	}
}

// KeyType tells how a node is addressed by its parent.
type KeyType uint8

const (
	RootKey KeyType = iota
	NameKey
	IndexKey
	WildcardKey
)

// Key addresses a node inside its parent: a member name, an array index,
// the array wildcard used when list order is ignored, or the root marker.
type Key struct {
	Type  KeyType
	Name  string
	Index int
}

func RootMarker() Key      { return Key{Type: RootKey} }
func Name(name string) Key { return Key{Type: NameKey, Name: name} }
func Index(idx int) Key    { return Key{Type: IndexKey, Index: idx} }
func Wildcard() Key        { return Key{Type: WildcardKey} }

func (k Key) String() string {
	switch k.Type {
	case NameKey:
		return k.Name
	case IndexKey:
		return strconv.Itoa(k.Index)
	case WildcardKey:
		return Array.String()
	default:
		return Root.String()
	}
}

// Interface returns the key as a value for encoders: indexes stay numbers.
func (k Key) Interface() any {
	if k.Type == IndexKey {
		return k.Index
	}
	return k.String()
}

func (k Key) appendID(b *strings.Builder) {
	switch k.Type {
	case NameKey:
		b.WriteByte('n')
		b.WriteString(strconv.Quote(k.Name))
	case IndexKey:
		b.WriteByte('i')
		b.WriteString(strconv.Itoa(k.Index))
	case WildcardKey:
		b.WriteByte('w')
	default:
		b.WriteByte('r')
	}
}

// Segment is one step of a tuple path.
type Segment struct {
	Kind Kind
	Key  Key
}

// Tuple is one flattened node: its full path from the root, its kind and
// its payload. Object and array tuples carry their key as payload, leaf
// tuples carry the scalar.
//
// Tuples are immutable.
type Tuple struct {
	path  []Segment
	kind  Kind
	key   Key
	value jsonvalue.Scalar
	id    string
}

func newTuple(path []Segment, kind Kind, key Key, value jsonvalue.Scalar) Tuple {
	t := Tuple{
		path:  path,
		kind:  kind,
		key:   key,
		value: value,
	}
	t.id = t.identity()
	return t
}

// Path returns a copy of the segments from the root to this node.
func (t Tuple) Path() []Segment {
	return slices.Clone(t.path)
}

func (t Tuple) Kind() Kind {
	return t.kind
}

// Key returns the key this node has in its parent.
func (t Tuple) Key() Key {
	return t.key
}

// Payload returns the key for object and array tuples and the scalar value
// for leaf tuples.
func (t Tuple) Payload() any {
	if t.kind == Leaf {
		return t.value.Interface()
	}
	return t.key.Interface()
}

// ID is the canonical identity of the tuple. It is injective over path,
// kind and payload, so two tuples are equal exactly when their IDs are.
func (t Tuple) ID() string {
	return t.id
}

func (t Tuple) identity() string {
	var b strings.Builder
	for i, seg := range t.path {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(strconv.Itoa(int(seg.Kind)))
		seg.Key.appendID(&b)
	}

	b.WriteByte('#')
	b.WriteString(strconv.Itoa(int(t.kind)))
	b.WriteByte('=')
	if t.kind == Leaf {
		b.WriteString(strconv.Itoa(int(t.value.Type)))
		b.WriteByte(':')
		b.WriteString(strconv.Quote(t.value.Text()))
	} else {
		t.key.appendID(&b)
	}

	return b.String()
}

func (t Tuple) String() string {
	names := make([]string, len(t.path))
	for i, seg := range t.path {
		names[i] = seg.Key.String()
	}

	payload := t.key.String()
	if t.kind == Leaf {
		payload = t.value.String()
	}

	return "(" + strings.Join(names, " ") + ") " + t.kind.String() + " " + payload
}
