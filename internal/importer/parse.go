package importer

import (
	"regexp"
	"strings"

	"cv-builder/internal/cv"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d[\d \t()./\-]{6,}\d`)
	urlRe   = regexp.MustCompile(`(?i)\b(?:https?://)?(?:www\.)?(?:github\.com|linkedin\.com)/[^\s|,;]+|\bhttps?://[^\s|,;]+`)
)

var summaryHeadings = map[string]bool{
	"summary": true, "profile": true, "about": true, "about me": true,
	"profil": true, "zusammenfassung": true, "über mich": true,
}

var sectionHeadings = map[string]bool{
	"experience": true, "work experience": true, "employment": true, "education": true,
	"skills": true, "languages": true, "projects": true, "interests": true,
	"berufserfahrung": true, "ausbildung": true, "kenntnisse": true, "sprachen": true,
	"projekte": true, "interessen": true,
}

// FromText maps extracted document text onto a Resume. It fills the personal block only:
// the first non-contact line is the name, the next short line the title, and the paragraph
// under a summary heading the summary.
func FromText(text string) cv.Resume {
	var p cv.Personal
	lines := splitLines(text)

	if m := emailRe.FindString(text); m != "" {
		p.Email = m
	}
	for _, m := range urlRe.FindAllString(text, -1) {
		u := normalizeURL(m)
		switch {
		case strings.Contains(strings.ToLower(u), "github.com"):
			if p.GitHub == "" {
				p.GitHub = u
			}
		case strings.Contains(strings.ToLower(u), "linkedin.com"):
			if p.LinkedIn == "" {
				p.LinkedIn = u
			}
		default:
			if p.Website == "" {
				p.Website = u
			}
		}
	}
	if m := phoneRe.FindString(emailRe.ReplaceAllString(text, "")); m != "" {
		p.Phone = strings.TrimSpace(m)
	}

	for _, line := range lines {
		if isHeading(line) {
			break
		}
		if isContactLine(line) {
			continue
		}
		if p.Name == "" {
			p.Name = line
			continue
		}
		if len(line) <= 80 {
			p.Title = line
		}
		break
	}

	p.Summary = summaryFrom(lines)
	return cv.Resume{Personal: p}
}

func summaryFrom(lines []string) string {
	for i, line := range lines {
		if !summaryHeadings[headingKey(line)] {
			continue
		}
		var parts []string
		for _, next := range lines[i+1:] {
			if isHeading(next) {
				break
			}
			parts = append(parts, next)
		}
		return strings.Join(parts, " ")
	}
	return ""
}

func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func headingKey(line string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(line), ":"))
}

func isHeading(line string) bool {
	key := headingKey(line)
	return summaryHeadings[key] || sectionHeadings[key]
}

func isContactLine(line string) bool {
	return emailRe.MatchString(line) || urlRe.MatchString(line) || phoneRe.MatchString(line)
}

func normalizeURL(u string) string {
	u = strings.TrimRight(u, ".)")
	if !strings.HasPrefix(strings.ToLower(u), "http") {
		u = "https://" + u
	}
	return u
}
