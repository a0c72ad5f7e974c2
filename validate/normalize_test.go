package validate

import (
	"errors"
	"testing"

	"github.com/jacentio/storefront/model"
)

// --- sanitizeString Tests ---

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"plain", "hello", "hello"},
		{"trims", "  hello  ", "hello"},
		{"blank", "   ", ""},
		{"nil", nil, ""},
		{"number", 42, ""},
		{"bool", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeString(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

// --- normalizeEmail Tests ---

func TestNormalizeEmail_LowerCases(t *testing.T) {
	email, err := normalizeEmail("  Alice@Example.COM ", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email != "alice@example.com" {
		t.Errorf("expected 'alice@example.com', got %q", email)
	}
}

func TestNormalizeEmail_Idempotent(t *testing.T) {
	first, err := normalizeEmail("Alice@Example.COM", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := normalizeEmail(first, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("expected normalization to be idempotent: %q vs %q", first, second)
	}
}

func TestNormalizeEmail_InvalidFormat(t *testing.T) {
	invalid := []string{"no-at-sign", "a@b", "a b@c.com", "@example.com", "a@.com"}
	for _, raw := range invalid {
		if _, err := normalizeEmail(raw, true); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

func TestNormalizeEmail_RequiredMissing(t *testing.T) {
	_, err := normalizeEmail(nil, true)
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "email" {
		t.Errorf("expected a missing email error, got %v", err)
	}
}

func TestNormalizeEmail_OptionalMissing(t *testing.T) {
	email, err := normalizeEmail(nil, false)
	if err != nil || email != "" {
		t.Errorf("expected empty email without error, got %q, %v", email, err)
	}
}

// --- normalizeSku Tests ---

func TestNormalizeSku_UpperCases(t *testing.T) {
	sku, err := normalizeSku(" w-1 ", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sku != "W-1" {
		t.Errorf("expected 'W-1', got %q", sku)
	}
}

func TestNormalizeSku_RequiredMissing(t *testing.T) {
	var fieldErr *FieldError
	if _, err := normalizeSku("  ", true); !errors.As(err, &fieldErr) {
		t.Errorf("expected FieldError for blank sku, got %v", err)
	}
}

// --- normalizeName Tests ---

func TestNormalizeName_Trims(t *testing.T) {
	name, err := normalizeName("  Alice  ", true)
	if err != nil || name != "Alice" {
		t.Errorf("expected 'Alice', got %q, %v", name, err)
	}
}

func TestNormalizeName_NonStringRequired(t *testing.T) {
	if _, err := normalizeName(42, true); err == nil {
		t.Error("expected error for non-string name")
	}
}

// --- normalizeAmount Tests ---

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    float64
		present bool
		wantErr bool
	}{
		{"float", 19.99, 19.99, true, false},
		{"int", 25, 25, true, false},
		{"zero", 0.0, 0, true, false},
		{"numeric string", "12.50", 12.5, true, false},
		{"padded string", " 7 ", 7, true, false},
		{"negative", -1.0, 0, false, true},
		{"not a number", "abc", 0, false, true},
		{"bool", true, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, present, err := normalizeAmount("price", tt.input, true)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want || present != tt.present {
				t.Errorf("got %v (present %v), want %v (present %v)", got, present, tt.want, tt.present)
			}
		})
	}
}

func TestNormalizeAmount_AbsentOptional(t *testing.T) {
	got, present, err := normalizeAmount("total", nil, false)
	if err != nil || present || got != 0 {
		t.Errorf("expected absent zero, got %v (present %v, err %v)", got, present, err)
	}
}

func TestNormalizeAmount_AbsentRequired(t *testing.T) {
	var fieldErr *FieldError
	if _, _, err := normalizeAmount("total", nil, true); !errors.As(err, &fieldErr) || fieldErr.Field != "total" {
		t.Errorf("expected missing total error, got %v", err)
	}
}

// --- normalizeBoolean Tests ---

func TestNormalizeBoolean(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    bool
		wantErr bool
	}{
		{"true literal", true, true, false},
		{"false literal", false, false, false},
		{"true string", "true", true, false},
		{"upper string", "TRUE", true, false},
		{"padded string", " False ", false, false},
		{"other string", "maybe", false, true},
		{"number", 1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBoolean("active", tt.input, true, false)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeBoolean_AbsentUsesDefault(t *testing.T) {
	got, err := normalizeBoolean("active", nil, false, true)
	if err != nil || !got {
		t.Errorf("expected default true, got %v, %v", got, err)
	}
}

func TestNormalizeBoolean_AbsentRequired(t *testing.T) {
	if _, err := normalizeBoolean("active", nil, true, false); err == nil {
		t.Error("expected error for required absent boolean")
	}
}

// --- normalizeStatus Tests ---

func TestNormalizeStatus_UpperCases(t *testing.T) {
	status, err := normalizeStatus(" paid ", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != model.OrderStatusPaid {
		t.Errorf("expected PAID, got %q", status)
	}
}

func TestNormalizeStatus_InvalidListsAllowed(t *testing.T) {
	_, err := normalizeStatus("SHIPPED", true)
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected FieldError, got %v", err)
	}
	if fieldErr.Reason != "invalid status, allowed: NEW, PAID, CANCELLED" {
		t.Errorf("unexpected reason %q", fieldErr.Reason)
	}
}

func TestNormalizeStatus_AbsentOptional(t *testing.T) {
	status, err := normalizeStatus(nil, false)
	if err != nil || status != "" {
		t.Errorf("expected empty status, got %q, %v", status, err)
	}
}

func TestNormalizeStatus_AbsentRequired(t *testing.T) {
	if _, err := normalizeStatus(nil, true); err == nil {
		t.Error("expected error for required absent status")
	}
}

// --- normalizeOptionalString Tests ---

func TestNormalizeOptionalString(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    string
		wantErr bool
	}{
		{"value", "555-0100", "555-0100", false},
		{"trims", "  x  ", "x", false},
		{"blank collapses", "   ", "", false},
		{"null clears", nil, "", false},
		{"non-string", 42, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeOptionalString("phone", tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// --- Error Message Tests ---

func TestConflictError_Message(t *testing.T) {
	emailErr := &ConflictError{Entity: "customer", Field: "email", Value: "a@b.com"}
	if emailErr.Error() != "customer with this email already exists" {
		t.Errorf("unexpected message %q", emailErr.Error())
	}

	skuErr := &ConflictError{Entity: "product", Field: "sku", Value: "W-1"}
	if skuErr.Error() != "product with this SKU already exists" {
		t.Errorf("unexpected message %q", skuErr.Error())
	}
}

func TestReferenceNotFoundError_Message(t *testing.T) {
	productErr := &ReferenceNotFoundError{Kind: "product", Value: "W-9"}
	if productErr.Error() != "product not found for sku W-9" {
		t.Errorf("unexpected message %q", productErr.Error())
	}

	customerErr := &ReferenceNotFoundError{Kind: "customer", Value: "c9"}
	if customerErr.Error() != "customer not found" {
		t.Errorf("unexpected message %q", customerErr.Error())
	}
}
