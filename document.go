package jsonapi

import (
	"sort"

	"github.com/validata/jsonapi/types"
)

// A Document wraps a decoded request payload together with the violations
// accumulated while validating it. Rules append errors during pipeline
// execution; once a build completes the document is only read.
type Document struct {
	value map[string]any
	errs  []types.Error
}

func newDocument(value map[string]any) *Document {
	return &Document{value: value}
}

// AddError appends err to the document's errors. Accumulation is monotonic:
// nothing ever removes an error once added.
func (d *Document) AddError(err types.Error) {
	d.errs = append(d.errs, err)
}

// Valid reports whether no violations have been recorded.
func (d *Document) Valid() bool {
	return len(d.errs) == 0
}

// Invalid is the negation of Valid.
func (d *Document) Invalid() bool {
	return !d.Valid()
}

// Errors returns the recorded violations in the order the rules produced
// them. The returned slice must not be modified.
func (d *Document) Errors() []types.Error {
	return d.errs
}

// Data returns the document's top-level data member and whether it was
// present.
func (d *Document) Data() (any, bool) {
	value, ok := d.value["data"]
	return value, ok
}

func (d *Document) dataObject() (map[string]any, bool) {
	value, ok := d.value["data"]
	if !ok {
		return nil, false
	}
	obj, ok := value.(map[string]any)
	return obj, ok
}

// ResourceType returns data.type of a valid resource document.
func (d *Document) ResourceType() string {
	if obj, ok := d.dataObject(); ok {
		if s, ok := obj["type"].(string); ok {
			return s
		}
	}
	return ""
}

// ResourceId returns data.id of a valid resource document and whether the
// member was present. Create requests without a client-generated id have
// none.
func (d *Document) ResourceId() (string, bool) {
	if obj, ok := d.dataObject(); ok {
		if s, ok := obj["id"].(string); ok {
			return s, true
		}
	}
	return "", false
}

// Attributes returns data.attributes of a valid resource document, or nil
// when the member is absent.
func (d *Document) Attributes() map[string]any {
	if obj, ok := d.dataObject(); ok {
		if attrs, ok := obj["attributes"].(map[string]any); ok {
			return attrs
		}
	}
	return nil
}

// Relationships returns data.relationships of a valid resource document, or
// nil when the member is absent.
func (d *Document) Relationships() map[string]any {
	if obj, ok := d.dataObject(); ok {
		if rels, ok := obj["relationships"].(map[string]any); ok {
			return rels
		}
	}
	return nil
}

// ToOne returns the linkage of a to-one relationship field of a valid
// resource document. The result is nil when the field is absent or its
// linkage is null.
func (d *Document) ToOne(field string) *types.ResourceId {
	rel, ok := d.Relationships()[field].(map[string]any)
	if !ok {
		return nil
	}
	obj, ok := rel["data"].(map[string]any)
	if !ok {
		return nil
	}
	id := identifierFromObject(obj)
	return &id
}

// ToMany returns the linkage of a to-many relationship field of a valid
// resource document, or nil when the field is absent.
func (d *Document) ToMany(field string) []types.ResourceId {
	rel, ok := d.Relationships()[field].(map[string]any)
	if !ok {
		return nil
	}
	entries, ok := rel["data"].([]any)
	if !ok {
		return nil
	}
	ids := make([]types.ResourceId, 0, len(entries))
	for _, entry := range entries {
		if obj, ok := entry.(map[string]any); ok {
			ids = append(ids, identifierFromObject(obj))
		}
	}
	return ids
}

// Identifier returns the top-level linkage of a valid to-one relationship
// document, or nil when the linkage is null.
func (d *Document) Identifier() *types.ResourceId {
	obj, ok := d.value["data"].(map[string]any)
	if !ok {
		return nil
	}
	id := identifierFromObject(obj)
	return &id
}

// Identifiers returns the top-level linkage of a valid to-many relationship
// document.
func (d *Document) Identifiers() []types.ResourceId {
	entries, ok := d.value["data"].([]any)
	if !ok {
		return nil
	}
	ids := make([]types.ResourceId, 0, len(entries))
	for _, entry := range entries {
		if obj, ok := entry.(map[string]any); ok {
			ids = append(ids, identifierFromObject(obj))
		}
	}
	return ids
}

func identifierFromObject(obj map[string]any) types.ResourceId {
	ret := types.ResourceId{}
	if s, ok := obj["type"].(string); ok {
		ret.Type = s
	}
	if s, ok := obj["id"].(string); ok {
		ret.Id = s
	}
	return ret
}

// Decoded JSON objects are unordered, but error sequences must be
// deterministic, so every rule that walks an object's keys walks them in
// sorted order.
func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
