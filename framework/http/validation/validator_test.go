package validation_test

import (
	"testing"

	"github.com/km-arc/go-uploads/framework/http/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

// pass asserts the validator passes for the given data/rules.
func pass(t *testing.T, label string, data map[string]string, rules validation.Rules) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		v := validation.Make(data, rules)
		if v.Fails() {
			t.Errorf("expected PASS, got FAIL — errors: %+v", v.Errors().Bag)
		}
	})
}

// fail asserts the validator fails with an error on the given field.
func fail(t *testing.T, label, field string, data map[string]string, rules validation.Rules) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		v := validation.Make(data, rules)
		if v.Passes() {
			t.Errorf("expected FAIL on field %q, but validator PASSED", field)
		}
		if v.Errors().First(field) == "" {
			t.Errorf("expected error on field %q, but none found. Errors: %+v", field, v.Errors().Bag)
		}
	})
}

// ── required / email ─────────────────────────────────────────────────────────

func TestValidation_Required(t *testing.T) {
	r := validation.Rules{"name": "required"}

	pass(t, "non-empty value", map[string]string{"name": "Alice"}, r)
	fail(t, "empty string", "name", map[string]string{"name": ""}, r)
	fail(t, "whitespace only", "name", map[string]string{"name": "   "}, r)
	fail(t, "missing key", "name", map[string]string{}, r)
}

func TestValidation_Required_MessageFormat(t *testing.T) {
	v := validation.Make(map[string]string{"name": ""}, validation.Rules{"name": "required"})
	_ = v.Fails()
	msg := v.Errors().First("name")
	expected := "The name field is required."
	if msg != expected {
		t.Errorf("message: got %q want %q", msg, expected)
	}
}

func TestValidation_Email(t *testing.T) {
	r := validation.Rules{"email": "email"}

	pass(t, "valid email", map[string]string{"email": "user@example.com"}, r)
	fail(t, "no @ sign", "email", map[string]string{"email": "notanemail"}, r)
	fail(t, "no domain", "email", map[string]string{"email": "user@"}, r)
}

// ── length rules ─────────────────────────────────────────────────────────────

func TestValidation_Lengths(t *testing.T) {
	pass(t, "min boundary", map[string]string{"name": "abc"}, validation.Rules{"name": "min:3"})
	fail(t, "below min", "name", map[string]string{"name": "ab"}, validation.Rules{"name": "min:3"})
	pass(t, "max boundary", map[string]string{"bio": "hello"}, validation.Rules{"bio": "max:5"})
	fail(t, "above max", "bio", map[string]string{"bio": "toolong"}, validation.Rules{"bio": "max:5"})
	pass(t, "exact size", map[string]string{"code": "1234"}, validation.Rules{"code": "size:4"})
	fail(t, "wrong size", "code", map[string]string{"code": "123"}, validation.Rules{"code": "size:4"})
	pass(t, "between inclusive", map[string]string{"pin": "12345"}, validation.Rules{"pin": "between:4,6"})
	fail(t, "outside between", "pin", map[string]string{"pin": "1234567"}, validation.Rules{"pin": "between:4,6"})
}

func TestValidation_Min_Unicode(t *testing.T) {
	// "日本語" = 3 runes, min:3 should pass
	pass(t, "unicode rune count", map[string]string{"name": "日本語"}, validation.Rules{"name": "min:3"})
	fail(t, "unicode too short", "name", map[string]string{"name": "日本"}, validation.Rules{"name": "min:3"})
}

// ── numeric / boolean ────────────────────────────────────────────────────────

func TestValidation_Numeric(t *testing.T) {
	r := validation.Rules{"amount": "numeric"}

	pass(t, "integer", map[string]string{"amount": "42"}, r)
	pass(t, "float", map[string]string{"amount": "3.14"}, r)
	fail(t, "string", "amount", map[string]string{"amount": "abc"}, r)
}

func TestValidation_Integer(t *testing.T) {
	r := validation.Rules{"count": "integer"}

	pass(t, "positive int", map[string]string{"count": "10"}, r)
	fail(t, "float", "count", map[string]string{"count": "3.14"}, r)
}

func TestValidation_Boolean(t *testing.T) {
	r := validation.Rules{"active": "boolean"}

	for _, v := range []string{"true", "false", "1", "0", "yes", "no", "True"} {
		pass(t, "boolean "+v, map[string]string{"active": v}, r)
	}
	fail(t, "invalid bool", "active", map[string]string{"active": "maybe"}, r)
}

// ── membership / comparison ──────────────────────────────────────────────────

func TestValidation_In(t *testing.T) {
	r := validation.Rules{"role": "in:admin,editor,viewer"}

	pass(t, "admin", map[string]string{"role": "admin"}, r)
	fail(t, "not in list", "role", map[string]string{"role": "superuser"}, r)
}

func TestValidation_NotIn(t *testing.T) {
	r := validation.Rules{"status": "not_in:banned,suspended"}

	pass(t, "active", map[string]string{"status": "active"}, r)
	fail(t, "banned", "status", map[string]string{"status": "banned"}, r)
}

func TestValidation_Confirmed(t *testing.T) {
	r := validation.Rules{"password": "confirmed"}

	pass(t, "matching", map[string]string{
		"password":              "secret",
		"password_confirmation": "secret",
	}, r)
	fail(t, "not matching", "password", map[string]string{
		"password":              "secret",
		"password_confirmation": "wrong",
	}, r)
}

func TestValidation_Comparisons(t *testing.T) {
	pass(t, "gt", map[string]string{"age": "19"}, validation.Rules{"age": "gt:18"})
	fail(t, "gt equal fails", "age", map[string]string{"age": "18"}, validation.Rules{"age": "gt:18"})
	pass(t, "gte equal passes", map[string]string{"age": "18"}, validation.Rules{"age": "gte:18"})
	pass(t, "lt", map[string]string{"score": "99"}, validation.Rules{"score": "lt:100"})
	pass(t, "lte equal passes", map[string]string{"score": "100"}, validation.Rules{"score": "lte:100"})
}

// ── control rules ────────────────────────────────────────────────────────────

func TestValidation_Nullable(t *testing.T) {
	pass(t, "empty with nullable", map[string]string{"bio": ""}, validation.Rules{"bio": "nullable|min:10"})
}

func TestValidation_Sometimes(t *testing.T) {
	r := validation.Rules{"nickname": "sometimes|min:3"}
	pass(t, "absent field", map[string]string{}, r)
	pass(t, "present and valid", map[string]string{"nickname": "coolname"}, r)
}

// ── chained rules / error bag ────────────────────────────────────────────────

func TestValidation_Chained(t *testing.T) {
	rules := validation.Rules{
		"email":    "required|email",
		"password": "required|min:8|confirmed",
	}

	pass(t, "all valid", map[string]string{
		"email":                 "user@example.com",
		"password":              "secret123",
		"password_confirmation": "secret123",
	}, rules)

	v := validation.Make(map[string]string{
		"email":    "not-an-email",
		"password": "short",
	}, rules)

	if v.Passes() {
		t.Error("expected validation to fail")
	}
	if v.Errors().First("email") == "" || v.Errors().First("password") == "" {
		t.Errorf("expected errors on both fields: %+v", v.Errors().Bag)
	}
}

func TestErrors_Bag(t *testing.T) {
	v := validation.Make(map[string]string{"email": "bad"}, validation.Rules{"email": "required|email"})
	if !v.Fails() {
		t.Fatal("expected fails")
	}
	if !v.Errors().Has() {
		t.Error("Has() should be true when there are errors")
	}
	if v.Errors().First("nonexistent") != "" {
		t.Error("First('nonexistent') should return empty string")
	}
	if len(v.Errors().All()) == 0 {
		t.Error("All() should return the messages")
	}
}
