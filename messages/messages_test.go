package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogResolve(t *testing.T) {
	catalog := Default()

	for name, tc := range map[string]struct {
		Kind     string
		Params   map[string]string
		Expected Template
	}{
		"MemberRequired": {
			Kind:   "member_required",
			Params: map[string]string{"member": "data"},
			Expected: Template{
				Title:  "Non-Compliant JSON API Document",
				Status: "400",
				Detail: "The member data is required.",
			},
		},
		"ClientIds": {
			Kind:   "resource_client_ids_not_supported",
			Params: map[string]string{"type": "posts"},
			Expected: Template{
				Title:  "Not Supported",
				Status: "403",
				Detail: "Client-generated ids for resource type posts are not supported.",
			},
		},
		// ":types" must survive the substitution of ":type".
		"TypeAndTypes": {
			Kind:   "resource_type_not_recognised",
			Params: map[string]string{"type": "aliens", "types": "posts, users"},
			Expected: Template{
				Title:  "Not Recognised",
				Status: "400",
				Detail: "Resource type aliens is not recognised. Expecting one of posts, users.",
			},
		},
		"NotFound": {
			Kind:   "resource_not_found",
			Params: map[string]string{"type": "users", "id": "999"},
			Expected: Template{
				Title:  "Not Found",
				Status: "404",
				Detail: "The resource users/999 does not exist.",
			},
		},
		"UnknownKind": {
			Kind:   "no_such_kind",
			Params: nil,
			Expected: Template{
				Title:  "Non-Compliant JSON API Document",
				Status: "400",
				Detail: "no_such_kind",
			},
		},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, catalog.Resolve(tc.Kind, tc.Params))
		})
	}
}

func TestDefaultIsACopy(t *testing.T) {
	a := Default()
	a["member_required"] = Template{Title: "Custom", Status: "499", Detail: "custom"}

	b := Default()
	assert.Equal(t, "400", b["member_required"].Status)
	assert.Equal(t, Template{Title: "Custom", Status: "499", Detail: "custom"}, a.Resolve("member_required", nil))
}
