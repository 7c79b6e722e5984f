package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/validata/jsonapi"
)

var testAPI *API

func init() {
	schema, err := jsonapi.NewStaticSchema(&jsonapi.SchemaDefinition{
		ResourceTypes: map[string]jsonapi.ResourceTypeDefinition{
			"posts": {
				Attributes: []string{"title", "content"},
				Relationships: map[string]jsonapi.RelationshipDefinition{
					"author": {Types: []string{"users"}},
					"tags":   {ToMany: true, Types: []string{"tags"}},
				},
				IDs: []string{"1"},
			},
			"users": {
				IDs: []string{"9"},
			},
			"tags": {
				IDs: []string{"a"},
			},
		},
	})
	if err != nil {
		panic(err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	testAPI = NewAPI(&Config{
		Logger: logger,
		Schema: schema,
	})
}

func doRequest(t *testing.T, method, path, contentType, body string) (*http.Response, map[string]any) {
	w := httptest.NewRecorder()
	r, err := http.NewRequest(method, path, strings.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	testAPI.ServeHTTP(w, r)

	resp := w.Result()
	assert.Equal(t, "application/vnd.api+json", resp.Header.Get("Content-Type"))

	var doc map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	return resp, doc
}

func TestUnsupportedMediaType(t *testing.T) {
	resp, doc := doRequest(t, "POST", "/posts", "application/json", `{"data": {"type": "posts"}}`)
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	assert.NotEmpty(t, doc["errors"])
}

func TestMediaTypeParameters(t *testing.T) {
	t.Run("Profile", func(t *testing.T) {
		resp, _ := doRequest(t, "POST", "/posts", `application/vnd.api+json; profile="https://example.com/last-modified"`, `{"data": {"type": "posts"}}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Other", func(t *testing.T) {
		resp, _ := doRequest(t, "POST", "/posts", "application/vnd.api+json; charset=utf-8", `{"data": {"type": "posts"}}`)
		assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	})
}

func TestCreate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		resp, doc := doRequest(t, "POST", "/posts", "application/vnd.api+json", `{"data": {"type": "posts", "attributes": {"title": "Hello"}}}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, map[string]any{"valid": true}, doc["meta"])
	})

	t.Run("ClientId", func(t *testing.T) {
		resp, doc := doRequest(t, "POST", "/posts", "application/vnd.api+json", `{"data": {"type": "posts", "id": "99"}}`)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		errs, ok := doc["errors"].([]any)
		require.True(t, ok)
		require.Len(t, errs, 1)
		err := errs[0].(map[string]any)
		assert.Equal(t, "resource_client_ids_not_supported", err["code"])
		assert.Equal(t, map[string]any{"pointer": "/data/id"}, err["source"])
	})

	t.Run("MalformedBody", func(t *testing.T) {
		resp, doc := doRequest(t, "POST", "/posts", "application/vnd.api+json", `{"data":`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.NotEmpty(t, doc["errors"])
	})
}

func TestUpdate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		resp, _ := doRequest(t, "PATCH", "/posts/1", "application/vnd.api+json", `{"data": {"type": "posts", "id": "1"}}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("WrongId", func(t *testing.T) {
		resp, _ := doRequest(t, "PATCH", "/posts/1", "application/vnd.api+json", `{"data": {"type": "posts", "id": "2"}}`)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestRelationship(t *testing.T) {
	t.Run("ToOneValid", func(t *testing.T) {
		resp, _ := doRequest(t, "PATCH", "/posts/1/relationships/author", "application/vnd.api+json", `{"data": {"type": "users", "id": "9"}}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("ToOneNotFound", func(t *testing.T) {
		resp, doc := doRequest(t, "PATCH", "/posts/1/relationships/author", "application/vnd.api+json", `{"data": {"type": "users", "id": "999"}}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.NotEmpty(t, doc["errors"])
	})

	t.Run("ToManyObjectShape", func(t *testing.T) {
		resp, _ := doRequest(t, "PATCH", "/posts/1/relationships/tags", "application/vnd.api+json", `{"data": {"type": "tags", "id": "a"}}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("UnknownField", func(t *testing.T) {
		resp, _ := doRequest(t, "PATCH", "/posts/1/relationships/banana", "application/vnd.api+json", `{"data": null}`)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}
