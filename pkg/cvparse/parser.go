// Package cvparse extracts candidate fields from free-text CVs. It is a
// best-effort, stateless utility: output is pre-fill material for a
// candidate form and is never treated as authoritative without user
// confirmation.
package cvparse

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedCV holds the fields extracted from a CV text
type ParsedCV struct {
	FirstName         string   `json:"first_name,omitempty"`
	LastName          string   `json:"last_name,omitempty"`
	Email             string   `json:"email,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	Skills            []string `json:"skills,omitempty"`
	PreviousCompanies []string `json:"previous_companies,omitempty"`
	YearsExperience   int      `json:"years_experience,omitempty"`
}

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRegex = regexp.MustCompile(`\+?[0-9][0-9 .\-()]{6,18}[0-9]`)
	yearsRegex = regexp.MustCompile(`(?i)(\d{1,2})\+?\s*(?:years?|yrs?)(?:\s+of)?\s+experience`)

	// Lines like "XYZ Corp - Software Engineer (2019-2022)" or
	// "Software Engineer at XYZ Corp"
	companyAtRegex = regexp.MustCompile(`(?im)^.{0,80}?\bat\s+([A-Z][\w&.\- ]{1,40})\s*$`)
)

// skillDictionary is the vocabulary matched against CV text. Matching is
// case-insensitive on word boundaries.
var skillDictionary = []string{
	"Go", "Golang", "Java", "Python", "JavaScript", "TypeScript", "C#", "C++",
	"SQL", "PostgreSQL", "MySQL", "Oracle", "MongoDB", "Redis", "Kafka",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Terraform",
	"React", "Angular", "Vue", "Node.js",
	"Scrum", "Kanban", "SAP", "Salesforce", "Power BI", "Tableau",
	"Project Management", "Business Analysis", "Data Engineering",
	"Machine Learning", "DevOps", "Linux",
}

// Parse extracts structured candidate fields from raw CV text.
// Missing fields are left zero-valued; it never fails.
func Parse(text string) ParsedCV {
	var cv ParsedCV
	if strings.TrimSpace(text) == "" {
		return cv
	}

	cv.Email = emailRegex.FindString(text)
	cv.Phone = strings.TrimSpace(phoneRegex.FindString(text))
	cv.FirstName, cv.LastName = extractName(text)
	cv.Skills = extractSkills(text)
	cv.PreviousCompanies = extractCompanies(text)

	if m := yearsRegex.FindStringSubmatch(text); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil {
			cv.YearsExperience = years
		}
	}

	return cv
}

// extractName assumes the first non-empty line that looks like a person's
// name (2-4 capitalized words, no digits) is the candidate's name.
func extractName(text string) (first, last string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.ContainsAny(line, "0123456789@:/") {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		allCapitalized := true
		for _, w := range words {
			r := []rune(w)
			if len(r) == 0 || !isUpper(r[0]) {
				allCapitalized = false
				break
			}
		}
		if !allCapitalized {
			continue
		}
		return words[0], strings.Join(words[1:], " ")
	}
	return "", ""
}

func extractSkills(text string) []string {
	lower := strings.ToLower(text)
	var skills []string
	seen := make(map[string]bool)
	for _, skill := range skillDictionary {
		if seen[strings.ToLower(skill)] {
			continue
		}
		if containsWord(lower, strings.ToLower(skill)) {
			skills = append(skills, skill)
			seen[strings.ToLower(skill)] = true
			// "Golang" counts as "Go"; never list both
			if skill == "Golang" {
				seen["go"] = true
			}
			if skill == "Go" {
				seen["golang"] = true
			}
		}
	}
	return skills
}

func extractCompanies(text string) []string {
	var companies []string
	seen := make(map[string]bool)
	for _, m := range companyAtRegex.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" || seen[name] {
			continue
		}
		companies = append(companies, name)
		seen[name] = true
	}
	return companies
}

// containsWord reports whether word occurs in s on word boundaries
func containsWord(s, word string) bool {
	idx := 0
	for {
		i := strings.Index(s[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordChar(rune(s[start-1]))
		afterOK := end == len(s) || !isWordChar(rune(s[end]))
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}
