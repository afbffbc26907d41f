package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/model"
	"portfolio-site/pkg/richtext"

	"github.com/google/uuid"
)

// ErrForbidden is returned when the collection's access policy denies the
// operation.
var ErrForbidden = errors.New("forbidden")

// Record is one document flattened for the API: its data fields plus id and
// timestamps.
type Record map[string]interface{}

// Editor is the access-checked CRUD surface over every collection.
type Editor struct {
	store Store
}

func NewEditor(store Store) *Editor {
	return &Editor{store: store}
}

func (e *Editor) authorize(slug model.Slug, op model.Operation, args model.AccessArgs) (model.Collection, error) {
	c, ok := model.Lookup(slug)
	if !ok {
		return model.Collection{}, fmt.Errorf("%s: %w", slug, model.ErrUnknownCollection)
	}
	if !c.Access.Allows(op, args) {
		return model.Collection{}, fmt.Errorf("%s %s: %w", op, slug, ErrForbidden)
	}
	return c, nil
}

func (e *Editor) Find(ctx context.Context, slug model.Slug, q domain.Query, args model.AccessArgs) ([]Record, error) {
	c, err := e.authorize(slug, model.OpRead, args)
	if err != nil {
		return nil, err
	}
	docs, err := e.store.Find(ctx, slug, q)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(docs))
	for _, d := range docs {
		r, err := flatten(d)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if q.Depth > 0 {
		if err := e.populate(ctx, c, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (e *Editor) Get(ctx context.Context, slug model.Slug, id uuid.UUID, depth int, args model.AccessArgs) (Record, error) {
	c, err := e.authorize(slug, model.OpRead, args)
	if err != nil {
		return nil, err
	}
	d, err := e.store.Get(ctx, slug, id)
	if err != nil {
		return nil, err
	}
	r, err := flatten(d)
	if err != nil {
		return nil, err
	}
	if depth > 0 {
		if err := e.populate(ctx, c, []Record{r}); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (e *Editor) Create(ctx context.Context, slug model.Slug, input map[string]interface{}, args model.AccessArgs) (Record, error) {
	c, err := e.authorize(slug, model.OpCreate, args)
	if err != nil {
		return nil, err
	}
	data, err := prepare(c, input)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(data); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	d, err := e.store.Create(ctx, slug, raw)
	if err != nil {
		return nil, err
	}
	return flatten(d)
}

// Update merges input over the stored fields and validates the result.
func (e *Editor) Update(ctx context.Context, slug model.Slug, id uuid.UUID, input map[string]interface{}, args model.AccessArgs) (Record, error) {
	c, err := e.authorize(slug, model.OpUpdate, args)
	if err != nil {
		return nil, err
	}
	patch, err := prepare(c, input)
	if err != nil {
		return nil, err
	}
	if err := c.ValidatePartial(patch); err != nil {
		return nil, err
	}

	current, err := e.store.Get(ctx, slug, id)
	if err != nil {
		return nil, err
	}
	merged := map[string]interface{}{}
	if err := json.Unmarshal(current.Data, &merged); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", slug, id, err)
	}
	for k, v := range patch {
		merged[k] = v
	}
	if err := c.Validate(merged); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	d, err := e.store.Update(ctx, slug, id, raw)
	if err != nil {
		return nil, err
	}
	return flatten(d)
}

func (e *Editor) Delete(ctx context.Context, slug model.Slug, id uuid.UUID, args model.AccessArgs) error {
	if _, err := e.authorize(slug, model.OpDelete, args); err != nil {
		return err
	}
	return e.store.Delete(ctx, slug, id)
}

// populate replaces relationship ids with the related records. Missing
// targets keep their id.
func (e *Editor) populate(ctx context.Context, c model.Collection, records []Record) error {
	for _, f := range c.Fields {
		if f.Type != model.FieldRelationship {
			continue
		}
		var ids []uuid.UUID
		for _, r := range records {
			for _, v := range relationValues(r[f.Name]) {
				if s, ok := v.(string); ok {
					if id, err := uuid.Parse(s); err == nil {
						ids = append(ids, id)
					}
				}
			}
		}
		if len(ids) == 0 {
			continue
		}
		docs, err := e.store.FindByIDs(ctx, f.RelationTo, ids)
		if err != nil {
			return fmt.Errorf("populate %s.%s: %w", c.Slug, f.Name, err)
		}
		byID := make(map[string]Record, len(docs))
		for _, d := range docs {
			rel, err := flatten(d)
			if err != nil {
				return err
			}
			byID[d.ID.String()] = rel
		}
		for _, r := range records {
			r[f.Name] = resolveRelation(r[f.Name], byID)
		}
	}
	return nil
}

func relationValues(v interface{}) []interface{} {
	switch t := v.(type) {
	case []interface{}:
		return t
	case string:
		return []interface{}{t}
	}
	return nil
}

func resolveRelation(v interface{}, byID map[string]Record) interface{} {
	switch t := v.(type) {
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = resolveRelation(item, byID)
		}
		return out
	case string:
		if rel, ok := byID[t]; ok {
			return rel
		}
	}
	return v
}

// prepare drops store-owned fields and converts markdown strings in rich text
// fields into documents.
func prepare(c model.Collection, input map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(input))
	for k, v := range input {
		switch k {
		case "id", "createdAt", "updatedAt":
			continue
		}
		out[k] = v
	}
	for _, name := range c.RichTextFields() {
		s, ok := out[name].(string)
		if !ok {
			continue
		}
		doc, err := toMap(richtext.FromMarkdown(s))
		if err != nil {
			return nil, err
		}
		out[name] = doc
	}
	return out, nil
}

func flatten(d domain.Document) (Record, error) {
	r := Record{}
	if len(d.Data) > 0 {
		if err := json.Unmarshal(d.Data, &r); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", d.Collection, d.ID, err)
		}
	}
	r["id"] = d.ID.String()
	r["createdAt"] = d.CreatedAt
	r["updatedAt"] = d.UpdatedAt
	return r, nil
}

// EncodeRecord turns a typed record into document data, without the
// store-owned fields.
func EncodeRecord(v interface{}) (json.RawMessage, error) {
	m, err := toMap(v)
	if err != nil {
		return nil, err
	}
	delete(m, "id")
	delete(m, "createdAt")
	delete(m, "updatedAt")
	return json.Marshal(m)
}

func toMap(v interface{}) (map[string]interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	m := map[string]interface{}{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
