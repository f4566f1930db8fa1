package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Refinement rules layered on top of the base type checks, keyed by the
// lowercased field name. A rule returns "" when the value is acceptable and
// a human-readable reason otherwise. Keeping the rules in open tables makes
// each one testable on its own and lets new field semantics be added without
// touching the dispatch.

type intRule func(v int64) string
type textRule func(s string) string

var intRules = map[string]intRule{
	"age":         ruleAge,
	"roll number": ruleRollNumber,
	"grades":      ruleGrades,
}

var textRules = map[string]textRule{
	"name":    ruleName,
	"email":   ruleEmail,
	"phone":   rulePhone,
	"address": ruleAddress,
	"class":   ruleClass,
}

func ruleAge(v int64) string {
	if v < 5 || v > 100 {
		return "Age must be between 5 and 100 years. Please try again."
	}
	return ""
}

func ruleRollNumber(v int64) string {
	if v < 1 {
		return "Roll Number must be a positive number. Please try again."
	}
	if len(fmt.Sprintf("%d", v)) > 10 {
		return "Roll Number cannot be more than 10 digits. Please try again."
	}
	return ""
}

func ruleGrades(v int64) string {
	if v < 0 || v > 100 {
		return "Grades must be between 0 and 100. Please try again."
	}
	return ""
}

func ruleName(s string) string {
	for _, c := range s {
		if !unicode.IsLetter(c) && !unicode.IsSpace(c) {
			return "Name should only contain letters and spaces. Please try again."
		}
	}
	if len(s) < 2 {
		return "Name must be at least 2 characters long. Please try again."
	}
	return ""
}

// Email validation regex - reasonable balance between strictness and practicality
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var localPartRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+$`)

// validDomains is the fixed allow-list of accepted email providers.
var validDomains = []string{
	"gmail.com", "hotmail.com", "yahoo.com", "outlook.com",
	"icloud.com", "protonmail.com", "aol.com", "mail.com",
	"zoho.com", "yandex.com", "gmx.com", "live.com",
}

func ruleEmail(s string) string {
	if len(s) < 5 {
		return "Email must be at least 5 characters long. Please try again."
	}
	if !strings.Contains(s, "@") {
		return "Email must contain '@' symbol. Please try again."
	}
	if !emailRegex.MatchString(s) {
		return "Invalid email format. Please enter a valid email address."
	}

	local, domain, _ := strings.Cut(s, "@")
	if len(local) < 1 {
		return "Email username cannot be empty. Please try again."
	}
	if len(local) > 64 {
		return "Email username is too long. Maximum length is 64 characters."
	}
	if !localPartRegex.MatchString(local) {
		return "Email username can only contain letters, numbers, and these special characters: . _ % + -"
	}

	found := false
	for _, d := range validDomains {
		if strings.EqualFold(domain, d) {
			found = true
			break
		}
	}
	if !found {
		return fmt.Sprintf("Invalid email domain. Please use one of these domains: %s", strings.Join(validDomains, ", "))
	}

	if len(s) > 254 { // RFC 5321 limit
		return "Email is too long. Maximum length is 254 characters."
	}
	return ""
}

func rulePhone(s string) string {
	for _, c := range s {
		if c < '0' || c > '9' {
			return "Phone number must contain only digits. Please try again."
		}
	}
	if len(s) < 10 {
		return "Phone number must be at least 10 digits long. Please try again."
	}
	if len(s) > 15 {
		return "Phone number cannot be more than 15 digits. Please try again."
	}
	return ""
}

func ruleAddress(s string) string {
	if len(s) < 10 {
		return "Address must be at least 10 characters long. Please provide a complete address."
	}
	hasDigit, hasLetter := false, false
	for _, c := range s {
		if unicode.IsDigit(c) {
			hasDigit = true
		}
		if unicode.IsLetter(c) {
			hasLetter = true
		}
	}
	if !hasDigit {
		return "Address must contain at least one number. Please try again."
	}
	if !hasLetter {
		return "Address must contain at least one letter. Please try again."
	}
	return ""
}

func ruleClass(s string) string {
	for _, c := range s {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			return "Class should contain only letters and numbers. Please try again."
		}
	}
	if len(s) < 2 {
		return "Class must be at least 2 characters long. Please try again."
	}
	if len(s) > 10 {
		return "Class name cannot be more than 10 characters. Please try again."
	}
	return ""
}
