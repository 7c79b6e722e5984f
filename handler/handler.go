// Package handler exposes the validator over HTTP as a thin surface: it
// negotiates the JSON:API media type, dispatches request bodies to the
// matching builder, and serializes the outcome. All validation semantics
// live in the jsonapi package.
package handler

import (
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/validata/jsonapi"
	"github.com/validata/jsonapi/types"
)

const mediaType = "application/vnd.api+json"

// Config defines the schema and other parameters for an API.
type Config struct {
	Logger logrus.FieldLogger

	// The schema validated documents are checked against.
	Schema jsonapi.Schema
}

type API struct {
	config *Config
	router chi.Router
}

func NewAPI(config *Config) *API {
	api := &API{config: config}

	r := chi.NewRouter()
	r.Post("/{type}", api.create)
	r.Patch("/{type}/{id}", api.update)
	r.Patch("/{type}/{id}/relationships/{field}", api.relationship)
	api.router = r

	return api
}

func (api *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	api.router.ServeHTTP(w, r)
}

// Servers MUST respond with a 415 Unsupported Media Type status code if a
// request specifies the header Content-Type: application/vnd.api+json with
// any media type parameters other than ext or profile.
func acceptableContentType(r *http.Request) bool {
	contentType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || contentType != mediaType {
		return false
	}
	for k := range params {
		if k != "ext" && k != "profile" {
			return false
		}
	}
	return true
}

func (api *API) create(w http.ResponseWriter, r *http.Request) {
	api.validate(w, r, func(body []byte) (*jsonapi.Document, error) {
		return jsonapi.NewResourceBuilder(api.config.Schema).
			ExpectsCreate(chi.URLParam(r, "type")).
			Build(body)
	})
}

func (api *API) update(w http.ResponseWriter, r *http.Request) {
	api.validate(w, r, func(body []byte) (*jsonapi.Document, error) {
		return jsonapi.NewResourceBuilder(api.config.Schema).
			ExpectsUpdate(chi.URLParam(r, "type"), chi.URLParam(r, "id")).
			Build(body)
	})
}

func (api *API) relationship(w http.ResponseWriter, r *http.Request) {
	api.validate(w, r, func(body []byte) (*jsonapi.Document, error) {
		return jsonapi.NewRelationshipBuilder(api.config.Schema).
			Expects(chi.URLParam(r, "type"), chi.URLParam(r, "field")).
			Build(body)
	})
}

func (api *API) validate(w http.ResponseWriter, r *http.Request, build func(body []byte) (*jsonapi.Document, error)) {
	if !acceptableContentType(r) {
		api.writeDocument(w, http.StatusUnsupportedMediaType, &types.ResponseDocument{
			Errors: []types.Error{errorForHTTPStatus(http.StatusUnsupportedMediaType)},
		})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		api.config.Logger.WithError(err).Error("unable to read request body")
		api.writeDocument(w, http.StatusInternalServerError, &types.ResponseDocument{
			Errors: []types.Error{errorForHTTPStatus(http.StatusInternalServerError)},
		})
		return
	}

	doc, err := build(body)
	if errors.Is(err, jsonapi.ErrUnexpectedDocument) {
		e := errorForHTTPStatus(http.StatusBadRequest)
		e.Detail = err.Error()
		api.writeDocument(w, http.StatusBadRequest, &types.ResponseDocument{Errors: []types.Error{e}})
		return
	} else if err != nil {
		api.config.Logger.WithError(err).Error("validation fault")
		api.writeDocument(w, http.StatusInternalServerError, &types.ResponseDocument{
			Errors: []types.Error{errorForHTTPStatus(http.StatusInternalServerError)},
		})
		return
	}

	if doc.Invalid() {
		errs := doc.Errors()
		api.writeDocument(w, statusForErrors(errs), &types.ResponseDocument{Errors: errs})
		return
	}

	api.writeDocument(w, http.StatusOK, &types.ResponseDocument{
		Meta: map[string]any{"valid": true},
	})
}

func errorForHTTPStatus(status int) types.Error {
	return types.Error{
		Status: strconv.Itoa(status),
		Title:  http.StatusText(status),
	}
}

// The response status is taken from the first error that declares one.
func statusForErrors(errs []types.Error) int {
	for _, e := range errs {
		if e.Status != "" {
			if n, err := strconv.ParseInt(e.Status, 10, 0); err == nil {
				return int(n)
			}
		}
	}
	return http.StatusBadRequest
}

func (api *API) writeDocument(w http.ResponseWriter, status int, doc *types.ResponseDocument) {
	doc.JSONAPI = &types.JSONAPI{
		Version: "1.1",
	}

	body, err := jsoniter.Marshal(doc)
	if err != nil {
		api.config.Logger.WithError(err).Error("unable to marshal response document")
		status = http.StatusInternalServerError
		body, _ = jsoniter.Marshal(&types.ResponseDocument{
			Errors: []types.Error{errorForHTTPStatus(status)},
		})
	}

	w.Header().Set("Content-Type", mediaType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	w.Write(body)
}
