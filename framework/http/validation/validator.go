package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ── Scalar validator ─────────────────────────────────────────────────────────

// Rules is a map of field → pipe-separated rule string.
// e.g. Rules{"email": "required|email", "age": "required|numeric|min:18"}
type Rules map[string]string

// Validator validates a flat map of input values against pipe-syntax rules.
// File fields are not its business — see FileValidator.
type Validator struct {
	data   map[string]string
	rules  Rules
	errors *Errors
}

// Make creates a new Validator — mirrors Validator::make($data, $rules).
func Make(data map[string]string, rules Rules) *Validator {
	return &Validator{
		data:   data,
		rules:  rules,
		errors: &Errors{},
	}
}

// Fails runs validation and returns true if any rule fails.
func (v *Validator) Fails() bool {
	v.validate()
	return v.errors.Has()
}

// Passes runs validation and returns true if all rules pass.
func (v *Validator) Passes() bool { return !v.Fails() }

// Errors returns the validation error bag.
func (v *Validator) Errors() *Errors { return v.errors }

// ── Core loop ────────────────────────────────────────────────────────────────

func (v *Validator) validate() {
	for field, ruleStr := range v.rules {
		value := v.data[field]

		for _, rule := range strings.Split(ruleStr, "|") {
			rule = strings.TrimSpace(rule)
			if rule == "" {
				continue
			}

			// min:3 → name=min, param=3
			name, param, _ := strings.Cut(rule, ":")

			if !v.applyRule(field, value, name, param) {
				break // first failure wins, like Laravel's bail
			}
		}
	}
}

var (
	alphaRx     = regexp.MustCompile(`^[a-zA-Z]+$`)
	alphaNumRx  = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	alphaDashRx = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	urlRx       = regexp.MustCompile(`^https?://`)
)

var booleanWords = map[string]bool{
	"true": true, "false": true, "1": true, "0": true, "yes": true, "no": true,
}

// applyRule returns true if the rule passes.
func (v *Validator) applyRule(field, value, rule, param string) bool {
	switch rule {
	case "required":
		if strings.TrimSpace(value) == "" {
			v.errors.add(field, fmt.Sprintf("The %s field is required.", field))
			return false
		}

	case "string":
		// Form input is already a string; nothing to check.

	case "numeric":
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			v.errors.add(field, fmt.Sprintf("The %s must be a number.", field))
			return false
		}

	case "integer":
		if _, err := strconv.Atoi(value); err != nil {
			v.errors.add(field, fmt.Sprintf("The %s must be an integer.", field))
			return false
		}

	case "boolean":
		if !booleanWords[strings.ToLower(value)] {
			v.errors.add(field, fmt.Sprintf("The %s field must be true or false.", field))
			return false
		}

	case "email":
		if _, err := mail.ParseAddress(value); err != nil {
			v.errors.add(field, fmt.Sprintf("The %s must be a valid email address.", field))
			return false
		}

	case "url":
		if !urlRx.MatchString(value) {
			v.errors.add(field, fmt.Sprintf("The %s must be a valid URL.", field))
			return false
		}

	case "min":
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) < n {
			v.errors.add(field, fmt.Sprintf("The %s must be at least %d characters.", field, n))
			return false
		}

	case "max":
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) > n {
			v.errors.add(field, fmt.Sprintf("The %s may not be greater than %d characters.", field, n))
			return false
		}

	case "size":
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) != n {
			v.errors.add(field, fmt.Sprintf("The %s must be %d characters.", field, n))
			return false
		}

	case "between":
		parts := strings.SplitN(param, ",", 2)
		if len(parts) != 2 {
			break
		}
		lo, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
		hi, _ := strconv.Atoi(strings.TrimSpace(parts[1]))
		l := utf8.RuneCountInString(value)
		if l < lo || l > hi {
			v.errors.add(field, fmt.Sprintf("The %s must be between %d and %d characters.", field, lo, hi))
			return false
		}

	case "in":
		if !inList(value, param) {
			v.errors.add(field, fmt.Sprintf("The selected %s is invalid.", field))
			return false
		}

	case "not_in":
		if inList(value, param) {
			v.errors.add(field, fmt.Sprintf("The selected %s is invalid.", field))
			return false
		}

	case "confirmed":
		// Expects data[field+"_confirmation"] to match.
		if v.data[field+"_confirmation"] != value {
			v.errors.add(field, fmt.Sprintf("The %s confirmation does not match.", field))
			return false
		}

	case "same":
		if v.data[param] != value {
			v.errors.add(field, fmt.Sprintf("The %s and %s must match.", field, param))
			return false
		}

	case "different":
		if v.data[param] == value {
			v.errors.add(field, fmt.Sprintf("The %s and %s must be different.", field, param))
			return false
		}

	case "alpha":
		if !alphaRx.MatchString(value) {
			v.errors.add(field, fmt.Sprintf("The %s may only contain letters.", field))
			return false
		}

	case "alpha_num":
		if !alphaNumRx.MatchString(value) {
			v.errors.add(field, fmt.Sprintf("The %s may only contain letters and numbers.", field))
			return false
		}

	case "alpha_dash":
		if !alphaDashRx.MatchString(value) {
			v.errors.add(field, fmt.Sprintf("The %s may only contain letters, numbers, dashes and underscores.", field))
			return false
		}

	case "regex":
		re, err := regexp.Compile(param)
		if err != nil || !re.MatchString(value) {
			v.errors.add(field, fmt.Sprintf("The %s format is invalid.", field))
			return false
		}

	case "nullable":
		// Always passes; lets empty values flow through later rules.

	case "sometimes":
		// Skip remaining rules silently if the field is absent.
		if value == "" {
			return false
		}

	case "gt", "gte", "lt", "lte":
		if !compareNumeric(rule, value, param) {
			v.errors.add(field, numericMessage(rule, field, param))
			return false
		}
	}

	return true
}

// ── helpers ──────────────────────────────────────────────────────────────────

func inList(value, param string) bool {
	for _, item := range strings.Split(param, ",") {
		if strings.TrimSpace(item) == value {
			return true
		}
	}
	return false
}

func compareNumeric(op, value, param string) bool {
	f, _ := strconv.ParseFloat(value, 64)
	t, _ := strconv.ParseFloat(param, 64)
	switch op {
	case "gt":
		return f > t
	case "gte":
		return f >= t
	case "lt":
		return f < t
	case "lte":
		return f <= t
	}
	return false
}

func numericMessage(op, field, param string) string {
	switch op {
	case "gt":
		return fmt.Sprintf("The %s must be greater than %s.", field, param)
	case "gte":
		return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
	case "lt":
		return fmt.Sprintf("The %s must be less than %s.", field, param)
	default:
		return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
	}
}
