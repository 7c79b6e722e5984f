package jsonapi

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/validata/jsonapi/messages"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrUnexpectedDocument reports input that could not be decoded into a
// top-level JSON object. It is a protocol failure, distinct from validation
// errors: a build that returns it produced no document at all. Use errors.Is
// (or errors.Cause) to detect it.
var ErrUnexpectedDocument = errors.New("unexpected document")

// A Rule performs one validation concern against a document, appending any
// violations it finds. Expected violations are never returned as errors: a
// non-nil return is a fault in the rule itself and aborts the build.
type Rule func(doc *Document) error

func decodeObject(raw []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.WithMessage(ErrUnexpectedDocument, "empty input")
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, errors.WithMessage(ErrUnexpectedDocument, err.Error())
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, errors.WithMessage(ErrUnexpectedDocument, "the top level must be an object")
	}
	return obj, nil
}

func run(doc *Document, rules []Rule, extra []Rule) (*Document, error) {
	for _, rule := range rules {
		if err := rule(doc); err != nil {
			return nil, err
		}
	}
	for _, rule := range extra {
		if err := rule(doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// A ResourceBuilder validates create and update request documents for a
// resource endpoint. Builders are not safe for concurrent use; each build
// owns an independent document.
type ResourceBuilder struct {
	schema       Schema
	catalog      messages.Catalog
	resourceType string
	id           string
	update       bool
	extra        []Rule
}

func NewResourceBuilder(schema Schema) *ResourceBuilder {
	return &ResourceBuilder{
		schema:  schema,
		catalog: messages.Default(),
	}
}

// ExpectsCreate configures the builder for a create request against the
// given resource type. A client-generated id is only accepted when the
// schema allows it for the type.
func (b *ResourceBuilder) ExpectsCreate(resourceType string) *ResourceBuilder {
	b.resourceType = resourceType
	b.id = ""
	b.update = false
	return b
}

// ExpectsUpdate configures the builder for an update request against the
// given resource. The document's id member is required and must equal id.
func (b *ResourceBuilder) ExpectsUpdate(resourceType, id string) *ResourceBuilder {
	b.resourceType = resourceType
	b.id = id
	b.update = true
	return b
}

// Using appends custom rules to run after the built-in ones, in append
// order. A fault returned by a custom rule propagates out of Build
// unmodified.
func (b *ResourceBuilder) Using(rules ...Rule) *ResourceBuilder {
	b.extra = append(b.extra, rules...)
	return b
}

// WithCatalog replaces the message catalog used to render errors.
func (b *ResourceBuilder) WithCatalog(catalog messages.Catalog) *ResourceBuilder {
	b.catalog = catalog
	return b
}

// Build decodes raw and threads a fresh document through the resource
// pipeline. The returned document carries every violation found; Build only
// returns an error for protocol-level decode failures and custom-rule
// faults.
func (b *ResourceBuilder) Build(raw []byte) (*Document, error) {
	value, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	v := &resourceValidator{
		reporter:     reporter{catalog: b.catalog},
		schema:       b.schema,
		resourceType: b.resourceType,
		id:           b.id,
		update:       b.update,
	}
	rules := []Rule{
		v.topLevel,
		v.typeMember,
		v.idMember,
		v.attributes,
		v.relationships,
		v.fieldConflicts,
	}
	return run(newDocument(value), rules, b.extra)
}

// A RelationshipBuilder validates relationship-replace request documents for
// one declared relationship of a resource type. The document's top-level
// data member is the linkage itself.
type RelationshipBuilder struct {
	schema       Schema
	catalog      messages.Catalog
	resourceType string
	field        string
	extra        []Rule
}

func NewRelationshipBuilder(schema Schema) *RelationshipBuilder {
	return &RelationshipBuilder{
		schema:  schema,
		catalog: messages.Default(),
	}
}

// Expects configures the builder for the named relationship of the given
// resource type. The relationship's cardinality is looked up from the
// schema.
func (b *RelationshipBuilder) Expects(resourceType, field string) *RelationshipBuilder {
	b.resourceType = resourceType
	b.field = field
	return b
}

// Using appends custom rules to run after the built-in ones, in append
// order.
func (b *RelationshipBuilder) Using(rules ...Rule) *RelationshipBuilder {
	b.extra = append(b.extra, rules...)
	return b
}

// WithCatalog replaces the message catalog used to render errors.
func (b *RelationshipBuilder) WithCatalog(catalog messages.Catalog) *RelationshipBuilder {
	b.catalog = catalog
	return b
}

// Build decodes raw and threads a fresh document through the relationship
// pipeline for the expected field's cardinality. Expecting a field the
// schema does not declare as a relationship is a wiring mistake and returns
// an error before any decoding.
func (b *RelationshipBuilder) Build(raw []byte) (*Document, error) {
	var field *Field
	for _, f := range b.schema.Fields(b.resourceType) {
		if f.Name == b.field && f.Kind != Attribute {
			f := f
			field = &f
			break
		}
	}
	if field == nil {
		return nil, errors.Errorf("resource type %v has no relationship named %v", b.resourceType, b.field)
	}

	value, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	v := &relationshipValidator{
		reporter: reporter{catalog: b.catalog},
		schema:   b.schema,
		toMany:   field.Kind == ToManyRelationship,
	}
	rules := []Rule{
		v.topLevel,
		v.linkage,
	}
	return run(newDocument(value), rules, b.extra)
}
