package cv

import "encoding/json"

// Resume is the aggregate document rendered by the read view and edited by the editor.
// The JSON shape is the contract of cv-data.json. A decoded Resume keeps the document it
// was read from and marshals back to it unchanged; the fields are a view for rendering.
type Resume struct {
	Personal   Personal     `json:"personal"`
	Experience []Experience `json:"experience" validate:"dive"`
	Education  []Education  `json:"education" validate:"dive"`
	Skills     []SkillGroup `json:"skills" validate:"dive"`
	Languages  []Language   `json:"languages,omitempty" validate:"dive"`
	Projects   []Project    `json:"projects,omitempty" validate:"dive"`
	Interests  []string     `json:"interests,omitempty"`

	raw json.RawMessage
}

// Personal holds contact and identity details shown in the header.
type Personal struct {
	Name     string `json:"name" validate:"required"`
	Title    string `json:"title,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty" validate:"omitempty,url"`
	GitHub   string `json:"github,omitempty" validate:"omitempty,url"`
	LinkedIn string `json:"linkedin,omitempty" validate:"omitempty,url"`
	Photo    string `json:"photo,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

// Experience is a work history entry.
type Experience struct {
	Company     string   `json:"company" validate:"required"`
	Position    string   `json:"position" validate:"required"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"startDate,omitempty" validate:"omitempty,cvdate"`
	EndDate     string   `json:"endDate,omitempty" validate:"omitempty,cvdate"`
	Description string   `json:"description,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
}

// Education is an education entry.
type Education struct {
	Institution string `json:"institution" validate:"required"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate,omitempty" validate:"omitempty,cvdate"`
	EndDate     string `json:"endDate,omitempty" validate:"omitempty,cvdate"`
	Description string `json:"description,omitempty"`
}

// SkillGroup groups skills under a category heading.
type SkillGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items" validate:"dive,required"`
}

// Language is a spoken language with a free-form level.
type Language struct {
	Name  string `json:"name" validate:"required"`
	Level string `json:"level,omitempty"`
}

// Project is a notable side or open-source project.
type Project struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description,omitempty"`
	URL          string   `json:"url,omitempty" validate:"omitempty,url"`
	Technologies []string `json:"technologies,omitempty"`
}

// IsPresent reports whether an end date marks an ongoing entry.
func IsPresent(value string) bool {
	switch normalizeDate(value) {
	case "present", "current", "now", "heute", "aktuell":
		return true
	default:
		return false
	}
}
