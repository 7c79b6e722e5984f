package types

// Error objects provide additional information about problems encountered
// while validating a request document.
//
// Fields are declared in alphabetical order of their member names so that
// serialized errors always present their keys in a stable order.
type Error struct {
	// An application-specific error code, expressed as a string value. The
	// validator sets this to the error-kind key the message catalog resolved,
	// e.g. "member_required".
	Code string `json:"code,omitempty"`

	// A human-readable explanation specific to this occurrence of the problem.
	// Like title, this field's value can be localized.
	Detail string `json:"detail,omitempty"`

	// An object containing references to the primary source of the error.
	Source *ErrorSource `json:"source,omitempty"`

	// The HTTP status code applicable to this problem, expressed as a string
	// value.
	Status string `json:"status,omitempty"`

	// A short, human-readable summary of the problem that SHOULD NOT change
	// from occurrence to occurrence of the problem, except for purposes of
	// localization.
	Title string `json:"title,omitempty"`
}

// An object containing references to the primary source of the error.
type ErrorSource struct {
	// A JSON Pointer [RFC6901] to the value in the request document that
	// caused the error [e.g. "/data" for a primary data object, or
	// "/data/attributes/title" for a specific attribute].
	Pointer string `json:"pointer,omitempty"`

	// A string indicating which URI query parameter caused the error.
	Parameter string `json:"parameter,omitempty"`
}

// A ResourceId identifies an individual resource by type and id without
// embedding any of its content.
type ResourceId struct {
	Type string `json:"type"`

	Id string `json:"id"`
}

// This object defines a response document's "top level".
type ResponseDocument struct {
	// An array of error objects.
	Errors []Error `json:"errors,omitempty"`

	// A meta object containing non-standard meta-information.
	Meta map[string]any `json:"meta,omitempty"`

	// An object describing the server's implementation.
	JSONAPI *JSONAPI `json:"jsonapi,omitempty"`
}

type JSONAPI struct {
	// A string indicating the highest JSON:API version supported.
	Version string `json:"version,omitempty"`
}
