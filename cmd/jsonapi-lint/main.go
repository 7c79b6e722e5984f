// jsonapi-lint validates JSON:API request documents against a YAML schema
// definition, either for a single document on the command line or as an HTTP
// service.
//
// Examples:
//
//	jsonapi-lint --schema schema.yaml --type posts create.json
//	jsonapi-lint --schema schema.yaml --type posts --id 1 update.json
//	jsonapi-lint --schema schema.yaml --type posts --relationship author linkage.json
//	jsonapi-lint --schema schema.yaml --listen :8080
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/validata/jsonapi"
	"github.com/validata/jsonapi/handler"
)

type schemaFile struct {
	Types map[string]resourceTypeFile `yaml:"types"`
}

type resourceTypeFile struct {
	ClientIDs     bool                        `yaml:"client_ids"`
	Attributes    []string                    `yaml:"attributes"`
	Relationships map[string]relationshipFile `yaml:"relationships"`
	IDs           []string                    `yaml:"ids"`
}

type relationshipFile struct {
	ToMany bool     `yaml:"to_many"`
	Types  []string `yaml:"types"`
}

func LoadSchema(path string) (*jsonapi.StaticSchema, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read schema file")
	}

	var file schemaFile
	if err := yaml.Unmarshal(buf, &file); err != nil {
		return nil, errors.Wrap(err, "unable to parse schema file")
	}

	def := &jsonapi.SchemaDefinition{
		ResourceTypes: make(map[string]jsonapi.ResourceTypeDefinition, len(file.Types)),
	}
	for name, t := range file.Types {
		relationships := make(map[string]jsonapi.RelationshipDefinition, len(t.Relationships))
		for relName, rel := range t.Relationships {
			relationships[relName] = jsonapi.RelationshipDefinition{
				ToMany: rel.ToMany,
				Types:  rel.Types,
			}
		}
		def.ResourceTypes[name] = jsonapi.ResourceTypeDefinition{
			Attributes:    t.Attributes,
			Relationships: relationships,
			ClientIDs:     t.ClientIDs,
			IDs:           t.IDs,
		}
	}

	return jsonapi.NewStaticSchema(def)
}

func Lint(schema jsonapi.Schema, resourceType, id, relationship string, raw []byte) (*jsonapi.Document, error) {
	if relationship != "" {
		return jsonapi.NewRelationshipBuilder(schema).Expects(resourceType, relationship).Build(raw)
	}
	builder := jsonapi.NewResourceBuilder(schema)
	if id != "" {
		builder.ExpectsUpdate(resourceType, id)
	} else {
		builder.ExpectsCreate(resourceType)
	}
	return builder.Build(raw)
}

func main() {
	schemaPath := pflag.String("schema", "", "path to the YAML schema definition (required)")
	resourceType := pflag.String("type", "", "expected resource type")
	id := pflag.String("id", "", "expected resource id (validates an update request)")
	relationship := pflag.String("relationship", "", "relationship field name (validates a relationship replace request)")
	listen := pflag.String("listen", "", "serve the validator over HTTP on this address instead of linting a file")
	pflag.Parse()

	logger := logrus.New()

	if *schemaPath == "" {
		logger.Fatal("--schema is required")
	}
	schema, err := LoadSchema(*schemaPath)
	if err != nil {
		logger.Fatal(err)
	}

	if *listen != "" {
		api := handler.NewAPI(&handler.Config{
			Logger: logger,
			Schema: schema,
		})
		logger.WithField("address", *listen).Info("listening")
		logger.Fatal(http.ListenAndServe(*listen, api))
	}

	if *resourceType == "" {
		logger.Fatal("--type is required unless serving")
	}

	var raw []byte
	if args := pflag.Args(); len(args) > 0 {
		if raw, err = os.ReadFile(args[0]); err != nil {
			logger.Fatal(err)
		}
	} else if raw, err = io.ReadAll(os.Stdin); err != nil {
		logger.Fatal(err)
	}

	doc, err := Lint(schema, *resourceType, *id, *relationship, raw)
	if err != nil {
		logger.Fatal(err)
	}

	if doc.Invalid() {
		out, err := jsoniter.MarshalIndent(map[string]any{"errors": doc.Errors()}, "", "  ")
		if err != nil {
			logger.Fatal(err)
		}
		fmt.Println(string(out))
		os.Exit(1)
	}

	logger.Info("document is valid")
}
