package jsonapi

import (
	"github.com/validata/jsonapi/messages"
	"github.com/validata/jsonapi/types"
)

// reporter renders catalog templates into document errors. Both validators
// embed it so rules never format message text themselves.
type reporter struct {
	catalog messages.Catalog
}

func (r reporter) report(doc *Document, kind string, ptr Pointer, params map[string]string) {
	t := r.catalog.Resolve(kind, params)
	doc.AddError(types.Error{
		Code:   kind,
		Detail: t.Detail,
		Source: &types.ErrorSource{Pointer: ptr.String()},
		Status: t.Status,
		Title:  t.Title,
	})
}

// identifierMembers checks the type and id members of a resource identifier
// object, reporting violations against ptr's children. Existence lookups must
// only follow when both members are sound, so the two outcomes are reported
// separately.
func (r reporter) identifierMembers(doc *Document, ptr Pointer, obj map[string]any) (typeOK, idOK bool) {
	typeOK = r.identifierMember(doc, ptr, obj, "type")
	idOK = r.identifierMember(doc, ptr, obj, "id")
	return typeOK, idOK
}

func (r reporter) identifierMember(doc *Document, ptr Pointer, obj map[string]any, member string) bool {
	raw, ok := obj[member]
	if !ok {
		r.report(doc, "member_required", ptr, map[string]string{"member": member})
		return false
	}
	s, ok := raw.(string)
	if !ok {
		r.report(doc, "member_string_expected", ptr.Child(member), map[string]string{"member": member})
		return false
	}
	if s == "" {
		r.report(doc, "member_empty", ptr.Child(member), map[string]string{"member": member})
		return false
	}
	return true
}

// resourceValidator carries the expectations of one create or update request
// through the resource pipeline's rules.
type resourceValidator struct {
	reporter
	schema       Schema
	resourceType string
	id           string
	update       bool
}

// topLevel requires the data member and requires it to be an object. Every
// later rule of the pipeline treats a failure here as its precondition and
// skips itself.
func (v *resourceValidator) topLevel(doc *Document) error {
	data, ok := doc.Data()
	if !ok {
		v.report(doc, "member_required", Root(), map[string]string{"member": "data"})
		return nil
	}
	if _, ok := data.(map[string]any); !ok {
		v.report(doc, "member_object_expected", Root().Child("data"), map[string]string{"member": "data"})
	}
	return nil
}

func (v *resourceValidator) typeMember(doc *Document) error {
	data, ok := doc.dataObject()
	if !ok {
		return nil
	}

	raw, ok := data["type"]
	if !ok {
		v.report(doc, "member_required", Root().Child("data"), map[string]string{"member": "type"})
		return nil
	}
	ptr := Root().Child("data").Child("type")
	s, ok := raw.(string)
	if !ok {
		v.report(doc, "member_string_expected", ptr, map[string]string{"member": "type"})
		return nil
	}
	if s == "" {
		v.report(doc, "member_empty", ptr, map[string]string{"member": "type"})
		return nil
	}
	if s != v.resourceType {
		v.report(doc, "resource_type_not_supported", ptr, map[string]string{"type": s})
	}
	return nil
}

func (v *resourceValidator) idMember(doc *Document) error {
	data, ok := doc.dataObject()
	if !ok {
		return nil
	}

	raw, present := data["id"]
	ptr := Root().Child("data").Child("id")

	if !v.update {
		// A present id on a create request is a client-generated id.
		if !present {
			return nil
		}
		if !v.schema.ClientIDs(v.resourceType) {
			v.report(doc, "resource_client_ids_not_supported", ptr, map[string]string{"type": v.resourceType})
			return nil
		}
		if s, ok := raw.(string); !ok {
			v.report(doc, "member_string_expected", ptr, map[string]string{"member": "id"})
		} else if s == "" {
			v.report(doc, "member_empty", ptr, map[string]string{"member": "id"})
		}
		return nil
	}

	if !present {
		v.report(doc, "member_required", Root().Child("data"), map[string]string{"member": "id"})
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		v.report(doc, "member_string_expected", ptr, map[string]string{"member": "id"})
		return nil
	}
	if s == "" {
		v.report(doc, "member_empty", ptr, map[string]string{"member": "id"})
		return nil
	}
	if s != v.id {
		v.report(doc, "resource_id_not_supported", ptr, map[string]string{"id": s})
	}
	return nil
}

func (v *resourceValidator) attributes(doc *Document) error {
	data, ok := doc.dataObject()
	if !ok {
		return nil
	}
	raw, ok := data["attributes"]
	if !ok {
		return nil
	}

	ptr := Root().Child("data").Child("attributes")
	attrs, ok := raw.(map[string]any)
	if !ok {
		v.report(doc, "member_object_expected", ptr, map[string]string{"member": "attributes"})
		return nil
	}

	supported := make(map[string]struct{})
	for _, field := range v.schema.Fields(v.resourceType) {
		if field.Kind == Attribute {
			supported[field.Name] = struct{}{}
		}
	}

	for _, key := range sortedKeys(attrs) {
		if key == "type" || key == "id" {
			v.report(doc, "member_field_not_allowed", ptr, map[string]string{"member": "attributes", "field": key})
			continue
		}
		if _, ok := supported[key]; !ok {
			v.report(doc, "member_field_not_supported", ptr, map[string]string{"field": key, "member": "attribute"})
		}
	}
	return nil
}

func (v *resourceValidator) relationships(doc *Document) error {
	data, ok := doc.dataObject()
	if !ok {
		return nil
	}
	raw, ok := data["relationships"]
	if !ok {
		return nil
	}

	ptr := Root().Child("data").Child("relationships")
	rels, ok := raw.(map[string]any)
	if !ok {
		v.report(doc, "member_object_expected", ptr, map[string]string{"member": "relationships"})
		return nil
	}

	declared := make(map[string]Field)
	for _, field := range v.schema.Fields(v.resourceType) {
		if field.Kind != Attribute {
			declared[field.Name] = field
		}
	}

	for _, key := range sortedKeys(rels) {
		if key == "type" || key == "id" {
			v.report(doc, "member_field_not_allowed", ptr, map[string]string{"member": "relationships", "field": key})
			continue
		}
		field, ok := declared[key]
		if !ok {
			v.report(doc, "member_field_not_supported", ptr, map[string]string{"field": key, "member": "relationship"})
			continue
		}
		v.relationship(doc, ptr.Child(key), field, rels[key])
	}
	return nil
}

// relationship validates one declared relationship's linkage against its
// cardinality, then checks that every well-formed identifier references a
// resource that exists. A to-one not-found is reported against the
// relationship itself; a to-many not-found is reported against the offending
// entry.
func (v *resourceValidator) relationship(doc *Document, ptr Pointer, field Field, value any) {
	rel, ok := value.(map[string]any)
	if !ok {
		v.report(doc, "member_object_expected", ptr, map[string]string{"member": field.Name})
		return
	}
	raw, ok := rel["data"]
	if !ok {
		v.report(doc, "member_required", ptr, map[string]string{"member": "data"})
		return
	}

	dataPtr := ptr.Child("data")

	if field.Kind == ToOneRelationship {
		if raw == nil {
			return
		}
		obj, ok := raw.(map[string]any)
		if !ok {
			v.report(doc, "member_object_expected", dataPtr, map[string]string{"member": "data"})
			return
		}
		typeOK, idOK := v.identifierMembers(doc, dataPtr, obj)
		if !typeOK || !idOK {
			return
		}
		id := identifierFromObject(obj)
		if !v.schema.Exists(id.Type, id.Id) {
			v.report(doc, "resource_not_found", ptr, map[string]string{"type": id.Type, "id": id.Id})
		}
		return
	}

	entries, ok := raw.([]any)
	if !ok {
		v.report(doc, "member_array_expected", dataPtr, map[string]string{"member": "data"})
		return
	}
	for i, entry := range entries {
		entryPtr := dataPtr.Index(i)
		obj, ok := entry.(map[string]any)
		if !ok {
			v.report(doc, "member_identifier_expected", entryPtr, map[string]string{"member": "data"})
			continue
		}
		typeOK, idOK := v.identifierMembers(doc, entryPtr, obj)
		if !typeOK || !idOK {
			continue
		}
		id := identifierFromObject(obj)
		if !v.schema.Exists(id.Type, id.Id) {
			v.report(doc, "resource_not_found", entryPtr, map[string]string{"type": id.Type, "id": id.Id})
		}
	}
}

// fieldConflicts reports any field name present in both the attributes and
// relationships members. This fires in addition to whatever per-member
// errors those scopes already produced for the same name; the duplication is
// intentional, each error reports an independent violation.
func (v *resourceValidator) fieldConflicts(doc *Document) error {
	data, ok := doc.dataObject()
	if !ok {
		return nil
	}
	attrs, ok := data["attributes"].(map[string]any)
	if !ok {
		return nil
	}
	rels, ok := data["relationships"].(map[string]any)
	if !ok {
		return nil
	}

	for _, key := range sortedKeys(attrs) {
		if _, ok := rels[key]; ok {
			v.report(doc, "resource_field_exists_in_attributes_and_relationships", Root().Child("data"), map[string]string{"field": key})
		}
	}
	return nil
}
