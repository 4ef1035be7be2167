package cv

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errInvalidJSON = errors.New("invalid JSON document")

// UnmarshalJSON stores data as received and fills the fields from whatever parts of it fit
// them. Values of an unexpected type are left out of the fields but stay in the document.
// Only syntactically invalid JSON is an error.
func (r *Resume) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return errInvalidJSON
	}
	*r = Resume{}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	r.raw = append(json.RawMessage(nil), data...)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	decodeLoose(fields["personal"], &r.Personal)
	r.Experience = decodeList[Experience](fields["experience"])
	r.Education = decodeList[Education](fields["education"])
	r.Skills = decodeSkills(fields["skills"])
	r.Languages = decodeList[Language](fields["languages"])
	r.Projects = decodeList[Project](fields["projects"])
	r.Interests = decodeList[string](fields["interests"])
	return nil
}

// MarshalJSON returns the stored document when there is one. Resumes built in code marshal
// from their fields, with the required lists as [] rather than null.
func (r Resume) MarshalJSON() ([]byte, error) {
	if r.raw != nil {
		return r.raw, nil
	}
	type fieldsOnly Resume
	out := fieldsOnly(r)
	if out.Experience == nil {
		out.Experience = []Experience{}
	}
	if out.Education == nil {
		out.Education = []Education{}
	}
	if out.Skills == nil {
		out.Skills = []SkillGroup{}
	}
	return json.Marshal(out)
}

// Raw returns a copy of the document the Resume was decoded from, or nil.
func (r Resume) Raw() json.RawMessage {
	if r.raw == nil {
		return nil
	}
	return append(json.RawMessage(nil), r.raw...)
}

// decodeLoose fills v as far as the value allows. Mistyped members are skipped.
func decodeLoose(raw json.RawMessage, v any) bool {
	if len(raw) == 0 {
		return false
	}
	err := json.Unmarshal(raw, v)
	var typeErr *json.UnmarshalTypeError
	return err == nil || (errors.As(err, &typeErr) && raw[0] == '{')
}

// decodeList keeps the elements that decode into T and drops the rest. Anything but an
// array yields nil.
func decodeList[T any](raw json.RawMessage) []T {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return nil
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if decodeLoose(item, &v) {
			out = append(out, v)
		}
	}
	return out
}

// decodeSkills accepts grouped skills and a flat list of names. Loose names are collected
// into one group without a category.
func decodeSkills(raw json.RawMessage) []SkillGroup {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return nil
	}
	groups := make([]SkillGroup, 0, len(items))
	var loose []string
	for _, item := range items {
		var name string
		if json.Unmarshal(item, &name) == nil {
			if name != "" {
				loose = append(loose, name)
			}
			continue
		}
		var g SkillGroup
		if decodeLoose(item, &g) {
			groups = append(groups, g)
		}
	}
	if len(loose) > 0 {
		groups = append(groups, SkillGroup{Items: loose})
	}
	return groups
}
