package usecase

import (
	"net/url"
	"strings"

	"portfolio-site/internal/domain"

	"golang.org/x/net/publicsuffix"
)

const presentLabel = "Present"

// FormatDate renders a date as abbreviated month and year, e.g. "Jan 2024".
// A nil date renders as "".
func FormatDate(d *domain.Date) string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.UTC().Format("Jan 2006")
}

// ExperienceEnd is "Present" for current roles, otherwise the formatted end
// date, which is empty when none is set.
func ExperienceEnd(e domain.Experience) string {
	if e.IsCurrent {
		return presentLabel
	}
	return FormatDate(e.EndDate)
}

// EducationEnd is "Present" when there is no end date.
func EducationEnd(e domain.Education) string {
	if e.EndDate == nil {
		return presentLabel
	}
	return FormatDate(e.EndDate)
}

// ProficiencyWidth maps a language level to a bar width percentage.
func ProficiencyWidth(level domain.LanguageLevel) string {
	switch level {
	case domain.LevelNative:
		return "100%"
	case domain.LevelFluent:
		return "90%"
	case domain.LevelBusiness:
		return "75%"
	case domain.LevelConversational:
		return "50%"
	case domain.LevelBasic:
		return "25%"
	default:
		return "50%"
	}
}

// ProficiencyLabel upper-cases the first letter of a level value.
func ProficiencyLabel(level string) string {
	if level == "" {
		return ""
	}
	return strings.ToUpper(level[:1]) + level[1:]
}

// ResolvedSkills keeps only the populated technologies, in order.
func ResolvedSkills(refs []domain.SkillRef) []domain.Skill {
	var out []domain.Skill
	for _, ref := range refs {
		if s, ok := ref.Resolved(); ok {
			out = append(out, s)
		}
	}
	return out
}

// LinkLabel returns a short host label for a URL: the registrable domain when
// there is one, the bare host otherwise.
func LinkLabel(raw string) string {
	if raw == "" {
		return ""
	}
	candidate := raw
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return raw
	}
	host := parsed.Hostname()
	if host == "" {
		return raw
	}
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}
