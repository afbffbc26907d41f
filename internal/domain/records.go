package domain

import (
	"time"

	"portfolio-site/pkg/richtext"

	"github.com/google/uuid"
)

// Experience is a professional role. EndDate is only meaningful when
// IsCurrent is false; nothing enforces that.
type Experience struct {
	ID               uuid.UUID         `json:"id"`
	RoleTitle        string            `json:"role_title"`
	CompanyName      string            `json:"company_name"`
	StartDate        Date              `json:"start_date"`
	EndDate          *Date             `json:"end_date,omitempty"`
	IsCurrent        bool              `json:"is_current"`
	Location         string            `json:"location,omitempty"`
	Context          string            `json:"context"`
	Responsibilities richtext.Document `json:"responsibilities"`
	Technologies     []SkillRef        `json:"technologies,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

type EducationType string

const (
	EducationDegree        EducationType = "degree"
	EducationCertification EducationType = "certification"
)

type EducationStatus string

const (
	StatusCompleted  EducationStatus = "completed"
	StatusInProgress EducationStatus = "in_progress"
)

type Education struct {
	ID          uuid.UUID          `json:"id"`
	Type        EducationType      `json:"type"`
	Title       string             `json:"title"`
	Institution string             `json:"institution"`
	Location    string             `json:"location,omitempty"`
	StartDate   Date               `json:"start_date"`
	EndDate     *Date              `json:"end_date,omitempty"`
	Status      EducationStatus    `json:"status"`
	Description *richtext.Document `json:"description,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type LanguageLevel string

const (
	LevelNative         LanguageLevel = "native"
	LevelFluent         LanguageLevel = "fluent"
	LevelBusiness       LanguageLevel = "business"
	LevelConversational LanguageLevel = "conversational"
	LevelBasic          LanguageLevel = "basic"
)

type Language struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Level     LanguageLevel `json:"level"`
	Context   string        `json:"context,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type Learning struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Source     string    `json:"source"`
	Instructor string    `json:"instructor,omitempty"`
	Duration   string    `json:"duration,omitempty"`
	Link       string    `json:"link,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
