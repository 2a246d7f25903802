package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	// Candidate fields
	"FirstName":  "First name",
	"LastName":   "Last name",
	"Email":      "Email",
	"Phone":      "Phone number",
	"Skills":     "Skills",
	"ResumeText": "Resume text",

	// Offer fields
	"CandidateID":   "Candidate",
	"ApproverID":    "Approver",
	"AnnualSalary":  "Annual salary",
	"DailyRate":     "Daily rate",
	"PositionTitle": "Position title",
	"Reason":        "Reason",

	// Requirement fields
	"Title":        "Title",
	"CompanyID":    "Company",
	"CustomerName": "Customer name",
	"ProjectType":  "Project type",

	// Mission fields
	"ConsultantID": "Consultant",
	"CustomerID":   "Customer",
	"StartDate":    "Start date",
	"EndDate":      "End date",
	"Notes":        "Notes",

	// Approval request fields
	"RequestType": "Request type",
	"NewSalary":   "New salary",
	"Amount":      "Amount",
	"ExitReason":  "Exit reason",
	"ExitDate":    "Exit date",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var messages []string

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}

	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)

	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.Join(strings.Split(param, " "), ", "))

	case "email":
		return fmt.Sprintf("%s: invalid email format", label)

	case "uuid":
		return fmt.Sprintf("%s: invalid id format", label)

	case "valid_name":
		return fmt.Sprintf("%s: may only contain letters, spaces, and common punctuation (. ' - /)", label)

	case "valid_phone":
		return fmt.Sprintf("%s: invalid phone number format (7-15 digits, with/without +)", label)

	case "not_past":
		return fmt.Sprintf("%s: must not be in the past", label)

	case "gtefield":
		return fmt.Sprintf("%s: must not be before %s", label, getFieldLabel(param))

	case "gt":
		return fmt.Sprintf("%s: must be greater than %s", label, param)

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s: validation failed (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
