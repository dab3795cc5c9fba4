package parser

import (
	"regexp"
	"strings"
)

var (
	reEmail     = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	reCityState = regexp.MustCompile(`\b([A-Z][a-z]+(?: [A-Z][a-z]+)*), ?([A-Z]{2})\b`)
	reURLish    = regexp.MustCompile(`https?://|www\.|linkedin\.com|github\.com`)
	reDigits    = regexp.MustCompile(`\d`)
)

// Section headings recognized in resume text. Keys are lowercased,
// colon-stripped heading lines; values are the semantic bucket.
var sectionHeadings = map[string]string{
	"education":               "education",
	"academic background":     "education",
	"skills":                  "skills",
	"technical skills":        "skills",
	"core skills":             "skills",
	"experience":              "work",
	"work experience":         "work",
	"professional experience": "work",
	"employment":              "work",
	"employment history":      "work",
	"projects":                "projects",
	"project experience":      "projects",
	"personal projects":       "projects",
}

// Fallback skill vocabulary scanned when no skills section exists.
var skillVocabulary = []string{
	"go", "python", "java", "javascript", "typescript", "c++", "c#",
	"sql", "postgresql", "mysql", "mongodb", "redis",
	"react", "vue", "angular", "node.js",
	"docker", "kubernetes", "terraform", "aws", "gcp", "azure",
	"linux", "git", "ci/cd", "grpc", "rest",
	"excel", "data analysis", "machine learning",
	"project management", "communication", "leadership",
}

// ParseResume maps raw document text to structured fields with
// per-field confidences. It is a pure function: deterministic for a
// given input, no I/O, no side effects.
func ParseResume(text string) Resume {
	lines := splitLines(text)
	sections := splitSections(lines)

	var r Resume
	r.Emails = extractEmails(text)
	r.Name = extractName(lines)
	r.Locations = extractLocations(text)
	r.Education = sectionField(sections["education"], 0.8)
	r.Skills = extractSkills(text, sections["skills"])
	r.WorkExperience = sectionField(sections["work"], 0.75)
	r.ProjectExperience = sectionField(sections["projects"], 0.75)
	return r
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, strings.TrimSpace(l))
	}
	return lines
}

// splitSections buckets lines under the most recent recognized heading.
func splitSections(lines []string) map[string][]string {
	sections := make(map[string][]string)
	current := ""
	for _, line := range lines {
		if line == "" {
			continue
		}
		key := strings.ToLower(strings.TrimSuffix(line, ":"))
		if bucket, ok := sectionHeadings[key]; ok && len(line) < 40 {
			current = bucket
			continue
		}
		if current != "" {
			sections[current] = append(sections[current], line)
		}
	}
	return sections
}

func extractEmails(text string) Field[[]string] {
	matches := reEmail.FindAllString(text, -1)
	seen := make(map[string]struct{}, len(matches))
	emails := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.ToLower(m)
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		emails = append(emails, m)
	}
	if len(emails) == 0 {
		return Field[[]string]{Value: []string{}}
	}
	return Field[[]string]{Value: emails, Confidence: 0.95}
}

// extractName scans the top of the document for a short line of
// capitalized words. Resumes almost always lead with the candidate name.
func extractName(lines []string) Field[string] {
	scanned := 0
	for _, line := range lines {
		if line == "" {
			continue
		}
		scanned++
		if scanned > 5 {
			break
		}
		if looksLikeName(line) {
			return Field[string]{Value: line, Confidence: 0.85}
		}
	}
	// Weak fallback: first non-empty line, whatever it is.
	for _, line := range lines {
		if line != "" {
			return Field[string]{Value: line, Confidence: 0.3}
		}
	}
	return Field[string]{}
}

func looksLikeName(line string) bool {
	if strings.Contains(line, "@") || reURLish.MatchString(line) || reDigits.MatchString(line) {
		return false
	}
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		r := rune(w[0])
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func extractLocations(text string) Field[[]string] {
	matches := reCityState.FindAllString(text, -1)
	seen := make(map[string]struct{}, len(matches))
	locations := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		locations = append(locations, m)
	}
	if len(locations) == 0 {
		return Field[[]string]{Value: []string{}}
	}
	return Field[[]string]{Value: locations, Confidence: 0.8}
}

func extractSkills(text string, sectionLines []string) Field[[]string] {
	if len(sectionLines) > 0 {
		skills := make([]string, 0, len(sectionLines))
		for _, line := range sectionLines {
			for _, tok := range strings.FieldsFunc(line, func(r rune) bool {
				return r == ',' || r == ';' || r == '|' || r == '•'
			}) {
				tok = strings.TrimSpace(tok)
				if tok != "" {
					skills = append(skills, tok)
				}
			}
		}
		if len(skills) > 0 {
			return Field[[]string]{Value: skills, Confidence: 0.85}
		}
	}

	// No dedicated section: scan the whole text against the vocabulary.
	lower := strings.ToLower(text)
	found := make([]string, 0, 8)
	for _, kw := range skillVocabulary {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	if len(found) == 0 {
		return Field[[]string]{Value: []string{}}
	}
	return Field[[]string]{Value: found, Confidence: 0.6}
}

func sectionField(lines []string, confidence float64) Field[[]string] {
	if len(lines) == 0 {
		return Field[[]string]{Value: []string{}}
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return Field[[]string]{Value: out, Confidence: confidence}
}
