package model

import (
	"errors"
	"fmt"
	"strings"
)

// Slug identifies a collection.
type Slug string

const (
	Experiences Slug = "experiences"
	Educations  Slug = "educations"
	Skills      Slug = "skills"
	Languages   Slug = "languages"
	Learnings   Slug = "learnings"
)

type FieldType string

const (
	FieldText         FieldType = "text"
	FieldTextarea     FieldType = "textarea"
	FieldDate         FieldType = "date"
	FieldSelect       FieldType = "select"
	FieldCheckbox     FieldType = "checkbox"
	FieldRichText     FieldType = "richText"
	FieldRelationship FieldType = "relationship"
)

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Field struct {
	Name       string    `json:"name"`
	Label      string    `json:"label,omitempty"`
	Type       FieldType `json:"type"`
	Required   bool      `json:"required,omitempty"`
	Options    []Option  `json:"options,omitempty"`
	RelationTo Slug      `json:"relationTo,omitempty"`
	HasMany    bool      `json:"hasMany,omitempty"`
}

type Labels struct {
	Singular string `json:"singular"`
	Plural   string `json:"plural"`
}

// Collection declares a record type: its fields, admin hints and access policy.
type Collection struct {
	Slug           Slug     `json:"slug"`
	Labels         Labels   `json:"labels"`
	DefaultColumns []string `json:"defaultColumns"`
	UseAsTitle     string   `json:"useAsTitle"`
	Access         Access   `json:"-"`
	Fields         []Field  `json:"fields"`
}

// Field returns the declared field with the given name.
func (c Collection) Field(name string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// SortField parses a sort key such as "-start_date" and checks that it names
// a sortable field. An empty key returns an empty field.
func (c Collection) SortField(sort string) (field string, desc bool, err error) {
	sort = strings.TrimSpace(sort)
	if sort == "" {
		return "", false, nil
	}
	if strings.HasPrefix(sort, "-") {
		desc = true
		sort = sort[1:]
	}
	if sort == "createdAt" || sort == "updatedAt" {
		return sort, desc, nil
	}
	f, ok := c.Field(sort)
	if !ok {
		return "", false, fmt.Errorf("%s: unknown sort field %q: %w", c.Slug, sort, ErrInvalidSort)
	}
	switch f.Type {
	case FieldText, FieldDate, FieldSelect, FieldCheckbox:
		return sort, desc, nil
	}
	return "", false, fmt.Errorf("%s: field %q is not sortable: %w", c.Slug, sort, ErrInvalidSort)
}

// RichTextFields lists the names of rich text fields.
func (c Collection) RichTextFields() []string {
	var out []string
	for _, f := range c.Fields {
		if f.Type == FieldRichText {
			out = append(out, f.Name)
		}
	}
	return out
}

func options(values ...string) []Option {
	out := make([]Option, 0, len(values)/2)
	for i := 0; i+1 < len(values); i += 2 {
		out = append(out, Option{Label: values[i], Value: values[i+1]})
	}
	return out
}

var experiencesCollection = Collection{
	Slug:           Experiences,
	Labels:         Labels{Singular: "Experience", Plural: "Experiences"},
	DefaultColumns: []string{"role_title", "company_name", "start_date"},
	UseAsTitle:     "role_title",
	Access:         publicRead,
	Fields: []Field{
		{Name: "role_title", Label: "Role Title", Type: FieldText, Required: true},
		{Name: "company_name", Label: "Company Name", Type: FieldText, Required: true},
		{Name: "start_date", Label: "Start Date", Type: FieldDate, Required: true},
		{Name: "end_date", Label: "End Date", Type: FieldDate},
		{Name: "is_current", Label: "Current Role", Type: FieldCheckbox},
		{Name: "location", Type: FieldText},
		{Name: "context", Type: FieldTextarea, Required: true},
		{Name: "responsibilities", Type: FieldRichText, Required: true},
		{Name: "technologies", Type: FieldRelationship, RelationTo: Skills, HasMany: true},
	},
}

var educationsCollection = Collection{
	Slug:           Educations,
	Labels:         Labels{Singular: "Education", Plural: "Educations"},
	DefaultColumns: []string{"title", "institution", "status"},
	UseAsTitle:     "title",
	Access:         publicRead,
	Fields: []Field{
		{Name: "type", Type: FieldSelect, Required: true, Options: options("Degree", "degree", "Certification", "certification")},
		{Name: "title", Type: FieldText, Required: true},
		{Name: "institution", Type: FieldText, Required: true},
		{Name: "location", Type: FieldText},
		{Name: "start_date", Label: "Start Date", Type: FieldDate, Required: true},
		{Name: "end_date", Label: "End Date", Type: FieldDate},
		{Name: "status", Type: FieldSelect, Required: true, Options: options("Completed", "completed", "In Progress", "in_progress")},
		{Name: "description", Type: FieldRichText},
	},
}

var skillsCollection = Collection{
	Slug:           Skills,
	Labels:         Labels{Singular: "Skill", Plural: "Skills"},
	DefaultColumns: []string{"name", "proficiency_level", "context_of_use"},
	UseAsTitle:     "name",
	Access:         publicRead,
	Fields: []Field{
		{Name: "name", Type: FieldText, Required: true},
		{Name: "proficiency_level", Type: FieldSelect, Required: true,
			Options: options("Beginner", "beginner", "Intermediate", "intermediate", "Advanced", "advanced", "Expert", "expert")},
		{Name: "context_of_use", Type: FieldSelect, Required: true,
			Options: options("Production", "production", "Labs/Personal", "labs", "Study", "study")},
	},
}

var languagesCollection = Collection{
	Slug:           Languages,
	Labels:         Labels{Singular: "Language", Plural: "Languages"},
	DefaultColumns: []string{"name", "level"},
	UseAsTitle:     "name",
	Access:         publicRead,
	Fields: []Field{
		{Name: "name", Type: FieldText, Required: true},
		{Name: "level", Label: "Proficiency Level", Type: FieldSelect, Required: true,
			Options: options("Native", "native", "Fluent", "fluent", "Business", "business", "Conversational", "conversational", "Basic", "basic")},
		{Name: "context", Type: FieldText},
	},
}

var learningsCollection = Collection{
	Slug:           Learnings,
	Labels:         Labels{Singular: "Learning", Plural: "Learnings"},
	DefaultColumns: []string{"title", "source"},
	UseAsTitle:     "title",
	Access:         publicRead,
	Fields: []Field{
		{Name: "title", Type: FieldText, Required: true},
		{Name: "source", Type: FieldText, Required: true},
		{Name: "instructor", Type: FieldText},
		{Name: "duration", Type: FieldText},
		{Name: "link", Type: FieldText},
	},
}

var registry = []Collection{
	experiencesCollection,
	educationsCollection,
	skillsCollection,
	languagesCollection,
	learningsCollection,
}

// All returns every collection in declaration order.
func All() []Collection {
	out := make([]Collection, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a collection by slug.
func Lookup(slug Slug) (Collection, bool) {
	for _, c := range registry {
		if c.Slug == slug {
			return c, true
		}
	}
	return Collection{}, false
}

// MustLookup is Lookup for slugs known at compile time.
func MustLookup(slug Slug) Collection {
	c, ok := Lookup(slug)
	if !ok {
		panic(fmt.Sprintf("model: unknown collection %q", slug))
	}
	return c
}

// ErrUnknownCollection is returned for slugs with no declaration.
var ErrUnknownCollection = errors.New("unknown collection")

// ErrInvalidSort is returned for sort keys that do not name a sortable field.
var ErrInvalidSort = errors.New("invalid sort")
