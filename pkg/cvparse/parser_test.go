package cvparse_test

import (
	"testing"

	"go-staffing-backend/pkg/cvparse"

	"github.com/stretchr/testify/assert"
)

const sampleCV = `Marie Dubois
marie.dubois@example.com
+33 6 12 34 56 78

Senior Data Engineer with 8 years of experience in cloud platforms.

Experience
Data Engineer at Globex Industries
Backend Developer at Initech

Skills: Python, SQL, PostgreSQL, Kafka, AWS, Docker
`

func TestParse(t *testing.T) {
	t.Run("Should extract contact details and name from a typical CV", func(t *testing.T) {
		cv := cvparse.Parse(sampleCV)
		assert.Equal(t, "Marie", cv.FirstName)
		assert.Equal(t, "Dubois", cv.LastName)
		assert.Equal(t, "marie.dubois@example.com", cv.Email)
		assert.Equal(t, "+33 6 12 34 56 78", cv.Phone)
		assert.Equal(t, 8, cv.YearsExperience)
	})

	t.Run("Should match skills from the dictionary on word boundaries", func(t *testing.T) {
		cv := cvparse.Parse(sampleCV)
		assert.Contains(t, cv.Skills, "Python")
		assert.Contains(t, cv.Skills, "PostgreSQL")
		assert.Contains(t, cv.Skills, "Kafka")
		assert.NotContains(t, cv.Skills, "Java", "substring of no word in the text")
	})

	t.Run("Should not report Go from words merely containing it", func(t *testing.T) {
		cv := cvparse.Parse("Alice Smith\nWorked on government goals and logos.")
		assert.NotContains(t, cv.Skills, "Go")
	})

	t.Run("Should collapse Golang and Go into one skill", func(t *testing.T) {
		cv := cvparse.Parse("Bob Jones\nLanguages: Go, Golang")
		count := 0
		for _, s := range cv.Skills {
			if s == "Go" || s == "Golang" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("Should extract previous companies from at-lines", func(t *testing.T) {
		cv := cvparse.Parse(sampleCV)
		assert.Contains(t, cv.PreviousCompanies, "Globex Industries")
		assert.Contains(t, cv.PreviousCompanies, "Initech")
	})

	t.Run("Should leave fields empty rather than fail on sparse input", func(t *testing.T) {
		cv := cvparse.Parse("just some notes, nothing structured")
		assert.Empty(t, cv.FirstName)
		assert.Empty(t, cv.Email)
		assert.Zero(t, cv.YearsExperience)

		empty := cvparse.Parse("   \n  ")
		assert.Equal(t, cvparse.ParsedCV{}, empty)
	})

	t.Run("Should skip contact lines when locating the name", func(t *testing.T) {
		cv := cvparse.Parse("john.doe@example.com\nJohn Doe\nDeveloper")
		assert.Equal(t, "John", cv.FirstName)
		assert.Equal(t, "Doe", cv.LastName)
	})
}
