package path

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies what a path node stands for.
type Kind uint8

const (
	KindProperty Kind = iota
	KindBean
	KindMethod
	KindConstructor
	KindParameter
	KindReturnValue
	KindCrossParameter
	KindContainerElement
)

func (k Kind) String() string {
	switch k {
	case KindProperty:
		return "property"
	case KindBean:
		return "bean"
	case KindMethod:
		return "method"
	case KindConstructor:
		return "constructor"
	case KindParameter:
		return "parameter"
	case KindReturnValue:
		return "return value"
	case KindCrossParameter:
		return "cross-parameter"
	case KindContainerElement:
		return "container element"
	default:
		return "unknown"
	}
}

// ElementKind describes the position a container element occupies.
type ElementKind uint8

const (
	ListElement ElementKind = iota + 1
	IterableElement
	MapKey
	MapValue
	PublisherElement
	FutureElement
)

// Marker returns the synthetic path comment rendered for anonymous elements.
func (k ElementKind) Marker() string {
	switch k {
	case ListElement:
		return "<list element>"
	case IterableElement:
		return "<iterable element>"
	case MapKey:
		return "<map key>"
	case MapValue:
		return "<map value>"
	case PublisherElement:
		return "<publisher element>"
	case FutureElement:
		return "<completion stage element>"
	default:
		return ""
	}
}

const (
	returnValueName    = "<return value>"
	crossParameterName = "<cross-parameter>"
)

// Node is one segment of a Path.
type Node struct {
	Kind    Kind
	Name    string
	Element ElementKind

	// Index is meaningful when HasIndex is set: list positions, stream
	// positions and parameter positions.
	Index    int
	HasIndex bool

	// Key is meaningful when HasKey is set: map entries.
	Key    any
	HasKey bool
}

func (n Node) named() bool {
	switch n.Kind {
	case KindBean, KindContainerElement:
		return false
	}
	return true
}

// Path is an immutable sequence of nodes. The zero value is the empty path.
type Path struct {
	nodes []Node
}

// New builds a path from the given nodes.
func New(nodes ...Node) Path {
	if len(nodes) == 0 {
		return Path{}
	}
	return Path{nodes: append([]Node(nil), nodes...)}
}

// Append returns a new path with n added at the end.
// The receiver is left untouched.
func (p Path) Append(n Node) Path {
	nodes := make([]Node, len(p.nodes), len(p.nodes)+1)
	copy(nodes, p.nodes)
	return Path{nodes: append(nodes, n)}
}

func (p Path) Property(name string) Path {
	return p.Append(Node{Kind: KindProperty, Name: name})
}

func (p Path) Bean() Path {
	return p.Append(Node{Kind: KindBean})
}

func (p Path) Method(name string) Path {
	return p.Append(Node{Kind: KindMethod, Name: name})
}

func (p Path) Constructor(name string) Path {
	return p.Append(Node{Kind: KindConstructor, Name: name})
}

// Parameter appends a parameter node carrying its position in the signature.
func (p Path) Parameter(name string, index int) Path {
	return p.Append(Node{Kind: KindParameter, Name: name, Index: index, HasIndex: true})
}

func (p Path) ReturnValue() Path {
	return p.Append(Node{Kind: KindReturnValue, Name: returnValueName})
}

func (p Path) CrossParameter() Path {
	return p.Append(Node{Kind: KindCrossParameter, Name: crossParameterName})
}

// Element appends a container element without index or key.
func (p Path) Element(kind ElementKind) Path {
	return p.Append(Node{Kind: KindContainerElement, Element: kind})
}

func (p Path) IndexedElement(kind ElementKind, index int) Path {
	return p.Append(Node{Kind: KindContainerElement, Element: kind, Index: index, HasIndex: true})
}

func (p Path) KeyedElement(kind ElementKind, key any) Path {
	return p.Append(Node{Kind: KindContainerElement, Element: kind, Key: key, HasKey: true})
}

// Len returns the number of nodes.
func (p Path) Len() int {
	return len(p.nodes)
}

// IsEmpty reports whether the path has no nodes.
func (p Path) IsEmpty() bool {
	return len(p.nodes) == 0
}

// Nodes returns a copy of the nodes.
func (p Path) Nodes() []Node {
	return append([]Node(nil), p.nodes...)
}

// Last returns the final node, if any.
func (p Path) Last() (Node, bool) {
	if len(p.nodes) == 0 {
		return Node{}, false
	}
	return p.nodes[len(p.nodes)-1], true
}

// Equal reports whether both paths render identically and have the same node kinds.
func (p Path) Equal(other Path) bool {
	if len(p.nodes) != len(other.nodes) {
		return false
	}
	for i := range p.nodes {
		a, b := p.nodes[i], other.nodes[i]
		if a.Kind != b.Kind || a.Name != b.Name || a.Element != b.Element ||
			a.HasIndex != b.HasIndex || a.Index != b.Index || a.HasKey != b.HasKey {
			return false
		}
		if a.HasKey && fmt.Sprint(a.Key) != fmt.Sprint(b.Key) {
			return false
		}
	}
	return true
}

// String renders the path in its canonical form.
func (p Path) String() string {
	var sb strings.Builder
	for i, n := range p.nodes {
		switch n.Kind {
		case KindBean:
			continue
		case KindContainerElement:
			sb.WriteByte('[')
			switch {
			case n.Element == MapKey:
			case n.HasKey:
				sb.WriteString(fmt.Sprint(n.Key))
			case n.HasIndex:
				sb.WriteString(strconv.Itoa(n.Index))
			}
			sb.WriteByte(']')
			if !p.followedByName(i) {
				sb.WriteString(n.Element.Marker())
			}
		default:
			if sb.Len() > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(n.Name)
		}
	}
	return sb.String()
}

// followedByName reports whether a named node comes after position i,
// skipping bean nodes that render nothing.
func (p Path) followedByName(i int) bool {
	for _, n := range p.nodes[i+1:] {
		if n.Kind == KindBean {
			continue
		}
		return n.named()
	}
	return false
}
