// Package validate holds the form-field rules shared by every handler.
// Each validator returns an empty string when the value is acceptable,
// otherwise a message suitable for inline display next to the field.
package validate

import (
	"fmt"
	"math"
	"net/mail"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"kindbridge/pkg/types"
)

var AllowedCategories = []string{
	"food", "clothes", "education", "entertainment", "books",
	"household", "electronics", "children", "emergency", "other",
}

var nonDigitReg = regexp.MustCompile(`\D`)

// maxAmountDollars caps a single amount well inside int64 cents.
const maxAmountDollars = 1e12

func Email(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required."
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "Enter a valid email address."
	}
	if len(email) > 255 {
		return "Email is too long (max 255 characters)."
	}
	return ""
}

func Password(password string) string {
	if password == "" {
		return "Password is required."
	}
	if len(password) < 6 {
		return "Password must be at least 6 characters."
	}
	if len(password) > 128 {
		return "Password is too long (max 128 characters)."
	}
	return ""
}

func TextField(value, fieldName string, minLen, maxLen int, required bool) string {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			return fieldName + " is required."
		}
		return ""
	}
	if len(value) < minLen {
		return fmt.Sprintf("%s must be at least %d characters.", fieldName, minLen)
	}
	if len(value) > maxLen {
		return fmt.Sprintf("%s is too long (max %d characters).", fieldName, maxLen)
	}
	return ""
}

func Category(category string) string {
	if category == "" {
		return "Category is required."
	}
	for _, c := range AllowedCategories {
		if category == c {
			return ""
		}
	}
	return "Unknown category."
}

func HelpType(helpType string) string {
	if helpType == "" {
		return "Help type is required."
	}
	switch types.HelpType(helpType) {
	case types.HelpTypeOneTime, types.HelpTypeRegular, types.HelpTypeConsultation,
		types.HelpTypeVolunteer, types.HelpTypeOther:
		return ""
	}
	return "Unknown help type."
}

func Urgency(urgency string) string {
	if urgency == "" {
		return "Urgency is required."
	}
	switch types.Urgency(urgency) {
	case types.UrgencyNormal, types.UrgencyUrgent, types.UrgencyCritical:
		return ""
	}
	return "Unknown urgency level."
}

func Role(role string) string {
	if role == "" {
		return "Account type is required."
	}
	if !types.UserRole(role).Valid() {
		return "Unknown account type."
	}
	return ""
}

// Quantity accepts the empty string; the field is optional everywhere
// it appears.
func Quantity(quantity string) string {
	if quantity == "" {
		return ""
	}
	qty, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil {
		return "Quantity must be a number."
	}
	if qty < 1 {
		return "Quantity must be a positive number."
	}
	if qty > 1000000 {
		return "Quantity is too large (max 1,000,000)."
	}
	return ""
}

func Phone(phone string) string {
	if phone == "" {
		return ""
	}
	digits := nonDigitReg.ReplaceAllString(strings.TrimSpace(phone), "")
	if len(digits) < 10 {
		return "Phone number is too short (min 10 digits)."
	}
	if len(digits) > 15 {
		return "Phone number is too long (max 15 digits)."
	}
	return ""
}

func ContactInfo(contact string) string {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return "Contact information is required."
	}
	if len(contact) < 5 {
		return "Contact information is too short (min 5 characters)."
	}
	if len(contact) > 500 {
		return "Contact information is too long (max 500 characters)."
	}
	return ""
}

// AmountCents parses a user-supplied money amount into integer cents.
// Anything that is not a strictly positive finite number yields
// types.ErrInvalidAmount.
func AmountCents(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, types.ErrInvalidAmount
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, types.ErrInvalidAmount
	}
	if amount <= 0 {
		return 0, types.ErrInvalidAmount
	}
	// Bound before converting; float64 to int64 overflow is
	// implementation-defined.
	if amount > maxAmountDollars {
		return 0, types.ErrInvalidAmount
	}
	cents := int64(math.Round(amount * 100))
	if cents <= 0 {
		return 0, types.ErrInvalidAmount
	}
	return cents, nil
}

// FileUpload checks an upload's name and size against the configured
// limits. Empty filename means no file was attached, which is fine.
func FileUpload(filename string, size int64, maxBytes int64, allowedExts []string) string {
	if filename == "" {
		return ""
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return "File must have an extension."
	}
	allowed := false
	for _, e := range allowedExts {
		if ext == strings.ToLower(e) {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Sprintf("Unsupported file type. Allowed: %s.", strings.Join(allowedExts, ", "))
	}
	if size > maxBytes {
		return fmt.Sprintf("File exceeds the maximum size (%dMB).", maxBytes/(1024*1024))
	}
	return ""
}
