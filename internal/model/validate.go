package model

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"portfolio-site/internal/domain"

	"github.com/xeipuuv/gojsonschema"
)

const (
	dateFormat  = "portfolio-date"
	uuidPattern = `^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`
)

func init() {
	gojsonschema.FormatCheckers.Add(dateFormat, dateChecker{})
}

// dateChecker accepts exactly the strings domain.ParseDate can read back.
type dateChecker struct{}

func (dateChecker) IsFormat(input interface{}) bool {
	s, ok := input.(string)
	if !ok {
		return true
	}
	_, err := domain.ParseDate(s)
	return err == nil
}

// systemFields are set by the store and tolerated on input.
var systemFields = []string{"id", "createdAt", "updatedAt"}

// ValidationError lists every schema violation of one document.
type ValidationError struct {
	Collection Slug
	Problems   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: schema validation failed: %s", e.Collection, strings.Join(e.Problems, "; "))
}

// JSONSchema builds the JSON Schema for documents of c. A partial schema
// drops the required list so it can check update patches.
func (c Collection) JSONSchema(partial bool) map[string]interface{} {
	props := map[string]interface{}{}
	var required []string
	for _, f := range c.Fields {
		props[f.Name] = fieldSchema(f)
		if f.Required && !partial {
			required = append(required, f.Name)
		}
	}
	for _, name := range systemFields {
		props[name] = map[string]interface{}{}
	}

	schema := map[string]interface{}{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"title":                c.Labels.Singular,
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		sort.Strings(required)
		schema["required"] = required
	}
	return schema
}

func fieldSchema(f Field) map[string]interface{} {
	nullable := func(t string) interface{} {
		if f.Required {
			return t
		}
		return []interface{}{t, "null"}
	}

	switch f.Type {
	case FieldDate:
		return map[string]interface{}{"type": nullable("string"), "format": dateFormat}
	case FieldSelect:
		enum := make([]interface{}, 0, len(f.Options)+1)
		for _, o := range f.Options {
			enum = append(enum, o.Value)
		}
		if !f.Required {
			enum = append(enum, nil)
		}
		return map[string]interface{}{"type": nullable("string"), "enum": enum}
	case FieldCheckbox:
		return map[string]interface{}{"type": nullable("boolean")}
	case FieldRichText:
		return map[string]interface{}{
			"type":     nullable("object"),
			"required": []interface{}{"root"},
			"properties": map[string]interface{}{
				"root": map[string]interface{}{
					"type":       "object",
					"required":   []interface{}{"type"},
					"properties": map[string]interface{}{"children": map[string]interface{}{"type": "array"}},
				},
			},
		}
	case FieldRelationship:
		item := map[string]interface{}{"type": "string", "pattern": uuidPattern}
		if f.HasMany {
			return map[string]interface{}{"type": nullable("array"), "items": item}
		}
		return map[string]interface{}{"type": nullable("string"), "pattern": uuidPattern}
	default:
		s := map[string]interface{}{"type": nullable("string")}
		if f.Required {
			s["minLength"] = 1
		}
		return s
	}
}

var compiled sync.Map // schemaKey -> *gojsonschema.Schema

type schemaKey struct {
	slug    Slug
	partial bool
}

func (c Collection) compiledSchema(partial bool) (*gojsonschema.Schema, error) {
	key := schemaKey{c.Slug, partial}
	if s, ok := compiled.Load(key); ok {
		return s.(*gojsonschema.Schema), nil
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(c.JSONSchema(partial)))
	if err != nil {
		return nil, fmt.Errorf("%s: compile schema: %w", c.Slug, err)
	}
	compiled.Store(key, s)
	return s, nil
}

// Validate checks a complete document.
func (c Collection) Validate(doc map[string]interface{}) error {
	return c.validate(doc, false)
}

// ValidatePartial checks an update patch: only the present fields.
func (c Collection) ValidatePartial(doc map[string]interface{}) error {
	return c.validate(doc, true)
}

func (c Collection) validate(doc map[string]interface{}, partial bool) error {
	schema, err := c.compiledSchema(partial)
	if err != nil {
		return err
	}
	res, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	verr := &ValidationError{Collection: c.Slug}
	for _, e := range res.Errors() {
		verr.Problems = append(verr.Problems, e.String())
	}
	return verr
}
