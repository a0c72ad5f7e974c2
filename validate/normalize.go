package validate

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jacentio/storefront/model"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// sanitizeString trims a raw value, treating anything but a string as empty.
func sanitizeString(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// normalizeName returns the trimmed name, or "" when absent and not required.
func normalizeName(v any, required bool) (string, error) {
	name := sanitizeString(v)
	if name == "" {
		if required {
			return "", missingField("name")
		}
		return "", nil
	}
	return name, nil
}

// normalizeEmail lower-cases and shape-checks an email address.
func normalizeEmail(v any, required bool) (string, error) {
	email := strings.ToLower(sanitizeString(v))
	if email == "" {
		if required {
			return "", missingField("email")
		}
		return "", nil
	}
	if !emailPattern.MatchString(email) {
		return "", &FieldError{Field: "email", Reason: "invalid email format"}
	}
	return email, nil
}

// normalizeSku upper-cases and trims a SKU.
func normalizeSku(v any, required bool) (string, error) {
	sku := strings.ToUpper(sanitizeString(v))
	if sku == "" {
		if required {
			return "", missingField("sku")
		}
		return "", nil
	}
	return sku, nil
}

// normalizeAmount coerces a currency-like value. The second return reports
// whether a value was supplied at all.
func normalizeAmount(field string, v any, required bool) (float64, bool, error) {
	if v == nil {
		if required {
			return 0, false, missingField(field)
		}
		return 0, false, nil
	}

	amount, ok := numericValue(v)
	if !ok || math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0, false, invalidField(field, "must be a positive number")
	}
	return amount, true, nil
}

// numericValue coerces a raw value via numeric parse.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

// normalizeBoolean accepts a literal boolean or the case-insensitive strings
// "true"/"false", falling back to defaultValue when absent and not required.
func normalizeBoolean(field string, v any, required bool, defaultValue bool) (bool, error) {
	if v == nil {
		if required {
			return false, missingField(field)
		}
		return defaultValue, nil
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, invalidField(field, "must be a boolean value")
}

// normalizeStatus upper-cases a status and checks enum membership.
// Returns "" when absent and not required.
func normalizeStatus(v any, required bool) (model.OrderStatus, error) {
	if v == nil {
		if required {
			return "", missingField("status")
		}
		return "", nil
	}
	status := model.OrderStatus(strings.ToUpper(sanitizeString(v)))
	if status == "" {
		return "", missingField("status")
	}
	if !status.Valid() {
		allowed := make([]string, 0, 3)
		for _, s := range model.OrderStatuses() {
			allowed = append(allowed, string(s))
		}
		return "", &FieldError{
			Field:  "status",
			Reason: "invalid status, allowed: " + strings.Join(allowed, ", "),
		}
	}
	return status, nil
}

// normalizeOptionalString handles nullable string fields (phone, address,
// description, notes). Null and blank-after-trim both normalize to "", the
// canonical absent form. A non-null non-string fails.
func normalizeOptionalString(field string, v any) (string, error) {
	if v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", invalidField(field, "must be a string")
	}
	return strings.TrimSpace(s), nil
}
