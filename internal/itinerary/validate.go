// README: Structural validation that turns untrusted JSON into a typed Itinerary.
package itinerary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrSchemaValidation is matched by every *SchemaValidationError.
var ErrSchemaValidation = errors.New("schema validation failed")

// Issue is one failing field. Path uses $ for the root, dots for object
// members and [i] for sequence elements, e.g. $.daily_itinerary[2].day.
type Issue struct {
	Path     string `json:"path"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

type SchemaValidationError struct {
	Issues []Issue
}

func (e *SchemaValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "itinerary schema: invalid value"
	}
	first := e.Issues[0]
	msg := fmt.Sprintf("itinerary schema: %s: expected %s, got %s", first.Path, first.Expected, first.Actual)
	if n := len(e.Issues) - 1; n > 0 {
		msg += fmt.Sprintf(" (and %d more)", n)
	}
	return msg
}

func (e *SchemaValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Parse validates raw JSON against Schema and decodes it.
func Parse(raw []byte) (*Itinerary, error) {
	var it Itinerary
	if err := parseAs(Schema, raw, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// Validate checks an already-decoded value, typically a map from a JSON
// request body or a typed Itinerary, and returns the trusted copy.
func Validate(v any) (*Itinerary, error) {
	raw, err := toJSON(v)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

func ValidateDestination(v any) (*Destination, error) {
	var d Destination
	if err := validateAs(DestinationSchema, v, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func ValidateDayPlan(v any) (*DayPlan, error) {
	var d DayPlan
	if err := validateAs(DayPlanSchema, v, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func ValidateActivity(v any) (*Activity, error) {
	var a Activity
	if err := validateAs(ActivitySchema, v, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func validateAs(f Field, v any, out any) error {
	raw, err := toJSON(v)
	if err != nil {
		return err
	}
	return parseAs(f, raw, out)
}

func toJSON(v any) ([]byte, error) {
	switch t := v.(type) {
	case []byte:
		return t, nil
	case json.RawMessage:
		return t, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, &SchemaValidationError{Issues: []Issue{{Path: "$", Expected: "JSON value", Actual: err.Error()}}}
	}
	return raw, nil
}

func parseAs(f Field, raw []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return &SchemaValidationError{Issues: []Issue{{Path: "$", Expected: "JSON " + f.Kind.String(), Actual: "invalid JSON (" + err.Error() + ")"}}}
	}

	var issues []Issue
	check(f, tree, "$", &issues)
	if len(issues) > 0 {
		return &SchemaValidationError{Issues: issues}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		// The tree walk should make this unreachable.
		return &SchemaValidationError{Issues: []Issue{{Path: "$", Expected: f.Kind.String(), Actual: err.Error()}}}
	}
	return nil
}

func check(f Field, v any, path string, issues *[]Issue) {
	fail := func(expected string) {
		*issues = append(*issues, Issue{Path: path, Expected: expected, Actual: describe(v)})
	}

	switch f.Kind {
	case KindString:
		if _, ok := v.(string); !ok {
			fail("string")
		}

	case KindTimestamp:
		s, ok := v.(string)
		if !ok {
			fail("RFC 3339 timestamp")
			return
		}
		if _, err := time.Parse(time.RFC3339, s); err != nil {
			fail("RFC 3339 timestamp")
		}

	case KindInteger:
		n, ok := integer(v)
		expected := "integer"
		if f.Positive {
			expected = "positive integer"
		}
		if !ok || (f.Positive && n <= 0) {
			fail(expected)
		}

	case KindArray:
		items, ok := v.([]any)
		if !ok {
			fail("array")
			return
		}
		if len(items) < f.MinItems {
			fail(fmt.Sprintf("array with at least %d element(s)", f.MinItems))
			return
		}
		if f.Elem == nil {
			return
		}
		for i, item := range items {
			check(*f.Elem, item, path+"["+strconv.Itoa(i)+"]", issues)
		}

	case KindObject:
		obj, ok := v.(map[string]any)
		if !ok {
			fail("object")
			return
		}
		for _, child := range f.Fields {
			childPath := path + "." + child.Name
			val, present := obj[child.Name]
			if !present || val == nil {
				if child.Required && !child.Assigned {
					*issues = append(*issues, Issue{Path: childPath, Expected: expectedFor(child), Actual: absence(present)})
				}
				continue
			}
			check(child, val, childPath, issues)
		}
		// encoding/json matches keys case-insensitively and keeps the last
		// match, so a near-miss spelling would override the checked value.
		keys := make([]string, 0, len(obj))
		for key := range obj {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			for _, child := range f.Fields {
				if key != child.Name && strings.EqualFold(key, child.Name) {
					*issues = append(*issues, Issue{Path: path + "." + key, Expected: "key spelled " + strconv.Quote(child.Name), Actual: describe(obj[key])})
				}
			}
		}
	}
}

func integer(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

func expectedFor(f Field) string {
	switch {
	case f.Kind == KindInteger && f.Positive:
		return "positive integer"
	case f.Kind == KindTimestamp:
		return "RFC 3339 timestamp"
	default:
		return f.Kind.String()
	}
}

func absence(present bool) string {
	if present {
		return "null"
	}
	return "missing"
}

func describe(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		if len(t) > 32 {
			t = t[:32] + "..."
		}
		return strconv.Quote(t)
	case json.Number:
		return "number " + t.String()
	case float64:
		return "number " + strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return "boolean"
	case []any:
		return fmt.Sprintf("array(%d)", len(t))
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if len(keys) > 4 {
			keys = append(keys[:4], "...")
		}
		return "object{" + strings.Join(keys, ",") + "}"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// ParseModelOutput is Parse for text produced by an LLM. Owner-assigned
// root fields (id, created_at, updated_at) are dropped before validation:
// the model has no say over them and often echoes them in odd formats.
func ParseModelOutput(raw []byte) (*Itinerary, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Parse(raw)
	}
	for _, f := range Schema.Fields {
		if f.Assigned {
			delete(obj, f.Name)
		}
	}
	cleaned, err := json.Marshal(obj)
	if err != nil {
		return Parse(raw)
	}
	return Parse(cleaned)
}
