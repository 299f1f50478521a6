// Package validate provides struct-tag validation for request inputs.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	numeric             any number
//	integer             whole number
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gt=N / gte=N        number > N / >= N
//	lt=N / lte=N        number < N / <= N
//	in=a|b|c            value must be one of the listed items
//
// Example:
//
//	type SuspendRequest struct {
//	    UserID uint   `json:"user_id" validate:"required,gt=0"`
//	    Reason string `json:"reason"  validate:"required,min=3,max=500"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		rules := strings.Split(tag, ",")

		// If `nullable` is present and the field is empty, skip all rules.
		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if rule == "nullable" || rule == "" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func applyRule(rule, field string, v reflect.Value) string {
	raw := fmt.Sprintf("%v", v.Interface())
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "email":
		if !emailRe.MatchString(raw) {
			return fmt.Sprintf("The %s field must be a valid email address.", field)
		}

	case "numeric":
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", field)
		}

	case "integer":
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return fmt.Sprintf("The %s field must be an integer.", field)
		}

	case "min":
		if n, ok := numericValue(v); ok {
			if n < mustFloat(param) {
				return fmt.Sprintf("The %s field must be at least %s.", field, param)
			}
		} else if len(raw) < int(mustFloat(param)) {
			return fmt.Sprintf("The %s field must be at least %s characters.", field, param)
		}

	case "max":
		if n, ok := numericValue(v); ok {
			if n > mustFloat(param) {
				return fmt.Sprintf("The %s field may not be greater than %s.", field, param)
			}
		} else if len(raw) > int(mustFloat(param)) {
			return fmt.Sprintf("The %s field may not be greater than %s characters.", field, param)
		}

	case "gt":
		if n, ok := numericValue(v); !ok || n <= mustFloat(param) {
			return fmt.Sprintf("The %s field must be greater than %s.", field, param)
		}

	case "gte":
		if n, ok := numericValue(v); !ok || n < mustFloat(param) {
			return fmt.Sprintf("The %s field must be at least %s.", field, param)
		}

	case "lt":
		if n, ok := numericValue(v); !ok || n >= mustFloat(param) {
			return fmt.Sprintf("The %s field must be less than %s.", field, param)
		}

	case "lte":
		if n, ok := numericValue(v); !ok || n > mustFloat(param) {
			return fmt.Sprintf("The %s field may not be greater than %s.", field, param)
		}

	case "in":
		for _, item := range strings.Split(param, " ") {
			for _, option := range strings.Split(item, "|") {
				if raw == option {
					return ""
				}
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	}

	return ""
}

func jsonFieldName(field reflect.StructField) string {
	jsonTag := field.Tag.Get("json")
	if jsonTag == "" || jsonTag == "-" {
		return field.Name
	}
	name, _, _ := strings.Cut(jsonTag, ",")
	if name == "" {
		return field.Name
	}
	return name
}

func hasRule(rules []string, want string) bool {
	for _, r := range rules {
		if r == want {
			return true
		}
	}
	return false
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

func numericValue(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}

func mustFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
