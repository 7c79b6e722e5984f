package jsonapi

import (
	"fmt"
	"sort"
)

// FieldKind distinguishes the declared kinds of resource fields.
type FieldKind int

const (
	Attribute FieldKind = iota
	ToOneRelationship
	ToManyRelationship
)

// A Field describes one declared attribute or relationship of a resource
// type.
type Field struct {
	Name string

	Kind FieldKind

	// Types lists the resource types a relationship accepts. It is empty for
	// attributes.
	Types []string
}

// A Schema answers the identity questions validation cannot answer on its
// own: which resource types the endpoint recognises, which fields they
// declare, whether client-generated ids are accepted, and whether a concrete
// resource exists. The validator only ever reads from it.
type Schema interface {
	// Types returns every resource type the endpoint recognises.
	Types() []string

	// Fields returns the declared fields of a recognised resource type.
	// Calling it with an unrecognised type is a programming error in the
	// caller; the validator only consults it for the expected type an
	// endpoint was wired with.
	Fields(resourceType string) []Field

	// ClientIDs reports whether create requests for the type may carry a
	// client-generated id.
	ClientIDs(resourceType string) bool

	// Exists reports whether the resource identified by (resourceType, id) is
	// known to the system. It is only consulted for relationship linkage,
	// never for the primary resource under validation.
	Exists(resourceType, id string) bool
}

// A SchemaDefinition declares the resource types of a StaticSchema.
// Convention is for type names to be lowercase, plural nouns such as
// "articles".
type SchemaDefinition struct {
	ResourceTypes map[string]ResourceTypeDefinition
}

// A ResourceTypeDefinition declares the fields and identity policy of one
// resource type.
type ResourceTypeDefinition struct {
	// The resource's attribute names. These must not overlap with the
	// relationship names, and "type" and "id" are not legal attribute names.
	Attributes []string

	// The resource's relationships, keyed by field name.
	Relationships map[string]RelationshipDefinition

	// Whether create requests may supply a client-generated id.
	ClientIDs bool

	// The ids of the resources that exist, consulted by Exists.
	IDs []string
}

type RelationshipDefinition struct {
	// Whether the relationship's linkage is an array of identifiers rather
	// than a single identifier or null.
	ToMany bool

	// Types lists the resource types the relationship accepts.
	Types []string
}

// StaticSchema is an in-memory Schema backed by a fixed definition table. It
// serves tests and tooling; production callers typically adapt their own
// registry to the Schema interface instead.
type StaticSchema struct {
	types     []string
	fields    map[string][]Field
	clientIDs map[string]bool
	ids       map[string]map[string]struct{}
}

// NewStaticSchema validates def and builds a schema from it. Type and field
// names must be well-formed JSON:API member names, and no field name may be
// declared as both an attribute and a relationship.
func NewStaticSchema(def *SchemaDefinition) (*StaticSchema, error) {
	ret := &StaticSchema{
		fields:    make(map[string][]Field, len(def.ResourceTypes)),
		clientIDs: make(map[string]bool, len(def.ResourceTypes)),
		ids:       make(map[string]map[string]struct{}, len(def.ResourceTypes)),
	}

	for name, t := range def.ResourceTypes {
		if err := validateMemberName(name); err != nil {
			return nil, fmt.Errorf("invalid resource type name: %w", err)
		}

		fields, err := t.fields()
		if err != nil {
			return nil, fmt.Errorf("invalid resource type %v: %w", name, err)
		}

		ret.types = append(ret.types, name)
		ret.fields[name] = fields
		ret.clientIDs[name] = t.ClientIDs

		ids := make(map[string]struct{}, len(t.IDs))
		for _, id := range t.IDs {
			ids[id] = struct{}{}
		}
		ret.ids[name] = ids
	}

	sort.Strings(ret.types)
	return ret, nil
}

func (t ResourceTypeDefinition) fields() ([]Field, error) {
	fields := make([]Field, 0, len(t.Attributes)+len(t.Relationships))
	seen := make(map[string]struct{}, len(t.Attributes))

	for _, name := range t.Attributes {
		if name == "id" || name == "type" {
			return nil, fmt.Errorf("illegal attribute name: %v", name)
		} else if err := validateMemberName(name); err != nil {
			return nil, fmt.Errorf("invalid attribute name %v: %w", name, err)
		} else if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("duplicate attribute name: %v", name)
		}
		seen[name] = struct{}{}
		fields = append(fields, Field{Name: name, Kind: Attribute})
	}

	for name, rel := range t.Relationships {
		if name == "id" || name == "type" {
			return nil, fmt.Errorf("illegal relationship name: %v", name)
		} else if err := validateMemberName(name); err != nil {
			return nil, fmt.Errorf("invalid relationship name %v: %w", name, err)
		} else if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("field %v declared as both an attribute and a relationship", name)
		}
		kind := ToOneRelationship
		if rel.ToMany {
			kind = ToManyRelationship
		}
		fields = append(fields, Field{Name: name, Kind: kind, Types: rel.Types})
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields, nil
}

func (s *StaticSchema) Types() []string {
	return s.types
}

func (s *StaticSchema) Fields(resourceType string) []Field {
	return s.fields[resourceType]
}

func (s *StaticSchema) ClientIDs(resourceType string) bool {
	return s.clientIDs[resourceType]
}

func (s *StaticSchema) Exists(resourceType, id string) bool {
	_, ok := s.ids[resourceType][id]
	return ok
}
