package jsonapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSchemaValidation(t *testing.T) {
	for name, tc := range map[string]struct {
		In   *SchemaDefinition
		Okay bool
	}{
		"Valid": {
			In: &SchemaDefinition{
				ResourceTypes: map[string]ResourceTypeDefinition{
					"articles": {
						Attributes: []string{"title"},
						Relationships: map[string]RelationshipDefinition{
							"author": {Types: []string{"people"}},
						},
					},
				},
			},
			Okay: true,
		},
		"InvalidResourceName": {
			In: &SchemaDefinition{
				ResourceTypes: map[string]ResourceTypeDefinition{
					"arti!cles": {},
				},
			},
			Okay: false,
		},
		"InvalidAttributeName": {
			In: &SchemaDefinition{
				ResourceTypes: map[string]ResourceTypeDefinition{
					"articles": {
						Attributes: []string{"tit!le"},
					},
				},
			},
			Okay: false,
		},
		"IllegalAttributeName": {
			In: &SchemaDefinition{
				ResourceTypes: map[string]ResourceTypeDefinition{
					"articles": {
						Attributes: []string{"id"},
					},
				},
			},
			Okay: false,
		},
		"IllegalRelationshipName": {
			In: &SchemaDefinition{
				ResourceTypes: map[string]ResourceTypeDefinition{
					"articles": {
						Relationships: map[string]RelationshipDefinition{
							"type": {},
						},
					},
				},
			},
			Okay: false,
		},
		"AttributeRelationshipOverlap": {
			In: &SchemaDefinition{
				ResourceTypes: map[string]ResourceTypeDefinition{
					"articles": {
						Attributes: []string{"author"},
						Relationships: map[string]RelationshipDefinition{
							"author": {Types: []string{"people"}},
						},
					},
				},
			},
			Okay: false,
		},
		"DuplicateAttribute": {
			In: &SchemaDefinition{
				ResourceTypes: map[string]ResourceTypeDefinition{
					"articles": {
						Attributes: []string{"title", "title"},
					},
				},
			},
			Okay: false,
		},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewStaticSchema(tc.In)
			if tc.Okay {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestStaticSchema(t *testing.T) {
	s, err := NewStaticSchema(&SchemaDefinition{
		ResourceTypes: map[string]ResourceTypeDefinition{
			"posts": {
				Attributes: []string{"title", "content"},
				Relationships: map[string]RelationshipDefinition{
					"author": {Types: []string{"users"}},
					"tags":   {ToMany: true, Types: []string{"tags"}},
				},
				IDs: []string{"1", "2"},
			},
			"users": {
				ClientIDs: true,
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"posts", "users"}, s.Types())

	assert.Equal(t, []Field{
		{Name: "author", Kind: ToOneRelationship, Types: []string{"users"}},
		{Name: "content", Kind: Attribute},
		{Name: "tags", Kind: ToManyRelationship, Types: []string{"tags"}},
		{Name: "title", Kind: Attribute},
	}, s.Fields("posts"))

	assert.False(t, s.ClientIDs("posts"))
	assert.True(t, s.ClientIDs("users"))

	assert.True(t, s.Exists("posts", "1"))
	assert.False(t, s.Exists("posts", "3"))
	assert.False(t, s.Exists("comments", "1"))
}
