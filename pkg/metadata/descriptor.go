package metadata

import (
	"maps"
	"slices"
)

// DefaultGroup is the group every descriptor belongs to unless it names others.
const DefaultGroup = "Default"

// Attribute names with a meaning to the engine.
const (
	AttrMessage = "message"
	AttrGroups  = "groups"
)

// Descriptor identifies one declared constraint: its kind, attributes and an
// optional named validator override. Descriptors are values; the With* methods
// return modified copies and never touch the receiver.
type Descriptor struct {
	Kind        string
	Attributes  map[string]any
	ValidatedBy string
	Groups      []string
}

// NewDescriptor creates a descriptor of the given kind. attrs is copied.
func NewDescriptor(kind string, attrs map[string]any) Descriptor {
	return Descriptor{Kind: kind, Attributes: maps.Clone(attrs)}
}

// Attribute returns the named attribute.
func (d Descriptor) Attribute(name string) (any, bool) {
	v, ok := d.Attributes[name]
	return v, ok
}

// Message returns the message template: the explicit "message" attribute or
// the bundle key "{validation.<kind>}".
func (d Descriptor) Message() string {
	if msg, ok := d.Attributes[AttrMessage].(string); ok && msg != "" {
		return msg
	}
	return "{validation." + d.Kind + "}"
}

// WithMessage overrides the message template.
func (d Descriptor) WithMessage(template string) Descriptor {
	return d.WithAttribute(AttrMessage, template)
}

// WithAttribute returns a copy with the attribute set.
func (d Descriptor) WithAttribute(name string, value any) Descriptor {
	attrs := make(map[string]any, len(d.Attributes)+1)
	maps.Copy(attrs, d.Attributes)
	attrs[name] = value
	d.Attributes = attrs
	return d
}

// WithValidatedBy names the validator unit that must check this constraint,
// bypassing type-based selection.
func (d Descriptor) WithValidatedBy(name string) Descriptor {
	d.ValidatedBy = name
	return d
}

// WithGroups restricts the descriptor to the given groups.
func (d Descriptor) WithGroups(groups ...string) Descriptor {
	d.Groups = slices.Clone(groups)
	return d
}

// InGroups reports whether the descriptor belongs to any of groups.
// An empty groups list means the default group.
func (d Descriptor) InGroups(groups []string) bool {
	if len(groups) == 0 {
		groups = []string{DefaultGroup}
	}
	own := d.Groups
	if len(own) == 0 {
		own = []string{DefaultGroup}
	}
	for _, g := range groups {
		if slices.Contains(own, g) {
			return true
		}
	}
	return false
}

// MessageAttributes returns a fresh attribute map for interpolation,
// without the message template itself.
func (d Descriptor) MessageAttributes() map[string]any {
	attrs := make(map[string]any, len(d.Attributes)+2)
	for k, v := range d.Attributes {
		if k == AttrMessage {
			continue
		}
		attrs[k] = v
	}
	if len(d.Groups) > 0 {
		attrs[AttrGroups] = slices.Clone(d.Groups)
	}
	return attrs
}

// String implements fmt.Stringer.
func (d Descriptor) String() string {
	if d.ValidatedBy != "" {
		return d.Kind + "(" + d.ValidatedBy + ")"
	}
	return d.Kind
}
