// Package messages holds the static catalog of error-kind templates used to
// render validation errors. Substituting concrete names into a template is a
// pure formatting step, kept apart from rule logic so catalogs can be swapped
// for localization without touching validation code.
package messages

import "strings"

// A Template pairs the fixed title and HTTP status of an error kind with its
// parameterized detail text. Placeholders in the detail are named and
// prefixed with a colon, e.g. ":member".
type Template struct {
	Title  string
	Status string
	Detail string
}

// A Catalog maps error-kind keys to templates.
type Catalog map[string]Template

const nonCompliantTitle = "Non-Compliant JSON API Document"

var defaultCatalog = Catalog{
	"member_required": {
		Title:  nonCompliantTitle,
		Status: "400",
		Detail: "The member :member is required.",
	},
	"member_object_expected": {
		Title:  nonCompliantTitle,
		Status: "400",
		Detail: "The member :member must be an object.",
	},
	"member_array_expected": {
		Title:  nonCompliantTitle,
		Status: "400",
		Detail: "The member :member must be an array.",
	},
	"member_string_expected": {
		Title:  nonCompliantTitle,
		Status: "400",
		Detail: "The member :member must be a string.",
	},
	"member_empty": {
		Title:  nonCompliantTitle,
		Status: "400",
		Detail: "The member :member cannot be empty.",
	},
	"member_identifier_expected": {
		Title:  nonCompliantTitle,
		Status: "400",
		Detail: "The member :member must be a resource identifier.",
	},
	"member_field_not_allowed": {
		Title:  nonCompliantTitle,
		Status: "400",
		Detail: "The member :member cannot have a :field field.",
	},
	"member_field_not_supported": {
		Title:  nonCompliantTitle,
		Status: "400",
		Detail: "The field :field is not a supported :member.",
	},
	"resource_type_not_supported": {
		Title:  "Not Supported",
		Status: "409",
		Detail: "Resource type :type is not supported by this endpoint.",
	},
	"resource_type_not_recognised": {
		Title:  "Not Recognised",
		Status: "400",
		Detail: "Resource type :type is not recognised. Expecting one of :types.",
	},
	"resource_id_not_supported": {
		Title:  "Not Supported",
		Status: "409",
		Detail: "Resource id :id is not supported by this endpoint.",
	},
	"resource_client_ids_not_supported": {
		Title:  "Not Supported",
		Status: "403",
		Detail: "Client-generated ids for resource type :type are not supported.",
	},
	"resource_not_found": {
		Title:  "Not Found",
		Status: "404",
		Detail: "The resource :type/:id does not exist.",
	},
	"resource_field_exists_in_attributes_and_relationships": {
		Title:  nonCompliantTitle,
		Status: "400",
		Detail: "The field :field cannot exist as an attribute and a relationship.",
	},
}

// Default returns a copy of the built-in English catalog. Callers may modify
// the copy freely.
func Default() Catalog {
	c := make(Catalog, len(defaultCatalog))
	for kind, t := range defaultCatalog {
		c[kind] = t
	}
	return c
}

// Resolve looks up kind and substitutes params into the detail template. An
// unknown kind resolves to a 400 template whose detail is the kind itself, so
// a custom rule reporting an uncataloged kind still produces a usable error.
func (c Catalog) Resolve(kind string, params map[string]string) Template {
	t, ok := c[kind]
	if !ok {
		return Template{Title: nonCompliantTitle, Status: "400", Detail: kind}
	}
	t.Detail = substitute(t.Detail, params)
	return t
}

// ":types" must be substituted before ":type" so the longer placeholder is
// never clobbered by the shorter one.
var placeholders = []string{"types", "type", "member", "field", "id"}

func substitute(detail string, params map[string]string) string {
	for _, name := range placeholders {
		if value, ok := params[name]; ok {
			detail = strings.ReplaceAll(detail, ":"+name, value)
		}
	}
	return detail
}
