package jsonapi

import "strings"

// relationshipValidator carries the expectations of one relationship-replace
// request through the relationship pipeline's rules. The document under
// validation is the relationship document itself: its top-level data member
// is the linkage.
type relationshipValidator struct {
	reporter
	schema Schema
	toMany bool
}

func (v *relationshipValidator) topLevel(doc *Document) error {
	if _, ok := doc.Data(); !ok {
		v.report(doc, "member_required", Root(), map[string]string{"member": "data"})
	}
	return nil
}

func (v *relationshipValidator) linkage(doc *Document) error {
	raw, ok := doc.Data()
	if !ok {
		return nil
	}

	ptr := Root().Child("data")

	if v.toMany {
		// A to-one-shaped payload posted to a to-many relationship lands
		// here: a bare object is still just not an array.
		entries, ok := raw.([]any)
		if !ok {
			v.report(doc, "member_array_expected", ptr, map[string]string{"member": "data"})
			return nil
		}
		for i, entry := range entries {
			entryPtr := ptr.Index(i)
			obj, ok := entry.(map[string]any)
			if !ok {
				v.report(doc, "member_identifier_expected", entryPtr, map[string]string{"member": "data"})
				continue
			}
			v.identifier(doc, entryPtr, obj)
		}
		return nil
	}

	if raw == nil {
		return nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		v.report(doc, "member_object_expected", ptr, map[string]string{"member": "data"})
		return nil
	}
	v.identifier(doc, ptr, obj)
	return nil
}

// identifier validates one linkage entry as a pure resource identifier: no
// nested attributes or relationships, a non-empty type recognised by the
// schema, a non-empty id, and a referenced resource that exists. Malformed
// identifiers are never checked for existence.
func (v *relationshipValidator) identifier(doc *Document, ptr Pointer, obj map[string]any) {
	_, hasAttributes := obj["attributes"]
	_, hasRelationships := obj["relationships"]
	if hasAttributes || hasRelationships {
		v.report(doc, "member_identifier_expected", ptr, map[string]string{"member": "data"})
		return
	}

	typeOK, idOK := v.identifierMembers(doc, ptr, obj)

	recognised := false
	if typeOK {
		s := obj["type"].(string)
		for _, t := range v.schema.Types() {
			if t == s {
				recognised = true
				break
			}
		}
		if !recognised {
			v.report(doc, "resource_type_not_recognised", ptr.Child("type"), map[string]string{
				"type":  s,
				"types": strings.Join(v.schema.Types(), ", "),
			})
		}
	}

	if typeOK && idOK && recognised {
		id := identifierFromObject(obj)
		if !v.schema.Exists(id.Type, id.Id) {
			v.report(doc, "resource_not_found", ptr, map[string]string{"type": id.Type, "id": id.Id})
		}
	}
}
