package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

type SkillContext string

const (
	ContextProduction SkillContext = "production"
	ContextLabs       SkillContext = "labs"
	ContextStudy      SkillContext = "study"
)

type Skill struct {
	ID               uuid.UUID    `json:"id"`
	Name             string       `json:"name"`
	ProficiencyLevel SkillLevel   `json:"proficiency_level"`
	ContextOfUse     SkillContext `json:"context_of_use"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// SkillRef is a relationship value that holds either a bare skill id or the
// populated skill record, depending on the depth the collection was read at.
type SkillRef struct {
	id    uuid.UUID
	skill *Skill
}

func RefTo(id uuid.UUID) SkillRef {
	return SkillRef{id: id}
}

func Populated(s Skill) SkillRef {
	return SkillRef{id: s.ID, skill: &s}
}

func (r SkillRef) ID() uuid.UUID { return r.id }

// Resolved returns the populated skill, if any.
func (r SkillRef) Resolved() (Skill, bool) {
	if r.skill == nil {
		return Skill{}, false
	}
	return *r.skill, true
}

func (r SkillRef) MarshalJSON() ([]byte, error) {
	if r.skill != nil {
		return json.Marshal(r.skill)
	}
	return json.Marshal(r.id.String())
}

func (r *SkillRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var s Skill
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = Populated(s)
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("skill reference: %w", err)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return fmt.Errorf("skill reference %q: %w", raw, err)
	}
	*r = RefTo(id)
	return nil
}
