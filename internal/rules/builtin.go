package rules

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	schema "github.com/hanpama/rulegraph/internal/schema"
)

// RegisterBuiltins registers the four builtin rule families backing the
// @stringRule, @numberRule, @listRule and @objectRule directives.
func RegisterBuiltins(c *Compiler) error {
	families := []Family{
		{
			Name:      "stringRule",
			Target:    TargetScalar,
			Check:     checkStringAttrs,
			Predicate: stringPredicate,
		},
		{
			Name:      "numberRule",
			Target:    TargetScalar,
			Check:     checkNumberAttrs,
			Predicate: numberPredicate,
		},
		{
			Name:      "listRule",
			Target:    TargetList,
			DepthOf:   func(attrs Attributes) int { d, _ := attrs.Int("depth"); return d },
			Check:     checkListAttrs,
			Predicate: listPredicate,
		},
		{
			Name:        "objectRule",
			Target:      TargetObject,
			Check:       checkObjectAttrs,
			CheckFields: checkObjectFieldRefs,
			Predicate:   objectPredicate,
		},
	}
	for _, f := range families {
		if err := c.Register(f); err != nil {
			return err
		}
	}
	return nil
}

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	uuidPattern  = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// ---------------- string rules ----------------

func checkStringAttrs(attrs Attributes) error {
	for name := range attrs {
		switch name {
		case "format", "maxLength", "minLength", "startsWith", "endsWith", "includes", "regex", "flags", "oneOf":
		default:
			return fmt.Errorf("unknown attribute %q", name)
		}
	}
	if attrs.Has("format") {
		f, ok := attrs.String("format")
		if !ok || (f != "EMAIL" && f != "UUID") {
			return fmt.Errorf("format must be EMAIL or UUID")
		}
	}
	for _, name := range []string{"maxLength", "minLength"} {
		if attrs.Has(name) {
			if n, ok := attrs.Int(name); !ok || n < 0 {
				return fmt.Errorf("%s must be a non-negative integer", name)
			}
		}
	}
	if attrs.Has("regex") {
		if _, err := compileRegex(attrs); err != nil {
			return fmt.Errorf("invalid regex: %v", err)
		}
	} else if attrs.Has("flags") {
		return fmt.Errorf("flags requires regex")
	}
	if attrs.Has("oneOf") {
		if opts, ok := attrs.Strings("oneOf"); !ok || len(opts) == 0 {
			return fmt.Errorf("oneOf must be a non-empty string list")
		}
	}
	return nil
}

func compileRegex(attrs Attributes) (*regexp.Regexp, error) {
	pattern, _ := attrs.String("regex")
	if flags, ok := attrs.String("flags"); ok && flags != "" {
		pattern = "(?" + flags + ")" + pattern
	}
	return regexp.Compile(pattern)
}

func stringPredicate(value any, attrs Attributes) error {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	if format, ok := attrs.String("format"); ok {
		switch format {
		case "EMAIL":
			if !emailPattern.MatchString(s) {
				return fmt.Errorf("Value must be a valid email address")
			}
		case "UUID":
			if !uuidPattern.MatchString(s) {
				return fmt.Errorf("Value must be a valid UUID")
			}
		}
	}
	if n, ok := attrs.Int("minLength"); ok && len([]rune(s)) < n {
		return fmt.Errorf("Value must be at least %d characters in length", n)
	}
	if n, ok := attrs.Int("maxLength"); ok && len([]rune(s)) > n {
		return fmt.Errorf("Value must not be longer than %d characters", n)
	}
	if p, ok := attrs.String("startsWith"); ok && !strings.HasPrefix(s, p) {
		return fmt.Errorf("Value must start with %q", p)
	}
	if p, ok := attrs.String("endsWith"); ok && !strings.HasSuffix(s, p) {
		return fmt.Errorf("Value must end with %q", p)
	}
	if p, ok := attrs.String("includes"); ok && !strings.Contains(s, p) {
		return fmt.Errorf("Value must include %q", p)
	}
	if attrs.Has("regex") {
		re, err := compileRegex(attrs)
		if err == nil && !re.MatchString(s) {
			return fmt.Errorf("Value must match %s", re.String())
		}
	}
	if opts, ok := attrs.Strings("oneOf"); ok {
		for _, o := range opts {
			if s == o {
				return nil
			}
		}
		return fmt.Errorf("Value must be one of: %s", strings.Join(opts, ", "))
	}
	return nil
}

// ---------------- number rules ----------------

func checkNumberAttrs(attrs Attributes) error {
	for name := range attrs {
		switch name {
		case "multipleOf", "max", "min", "exclusiveMax", "exclusiveMin":
			if _, ok := attrs.Float(name); !ok {
				return fmt.Errorf("%s must be numeric", name)
			}
		case "oneOf":
			if opts, ok := attrs.Floats(name); !ok || len(opts) == 0 {
				return fmt.Errorf("oneOf must be a non-empty numeric list")
			}
		default:
			return fmt.Errorf("unknown attribute %q", name)
		}
	}
	return nil
}

// numberPredicate compares in float64. Integer attributes and values pass
// through exactly; Int-typed rules are never rounded.
func numberPredicate(value any, attrs Attributes) error {
	n, ok := toNumber(value)
	if !ok {
		return nil
	}
	if bound, ok := attrs.Float("min"); ok && n < bound {
		return fmt.Errorf("Value must not be less than %v", attrs["min"])
	}
	if bound, ok := attrs.Float("max"); ok && n > bound {
		return fmt.Errorf("Value must not be greater than %v", attrs["max"])
	}
	if bound, ok := attrs.Float("exclusiveMin"); ok && n <= bound {
		return fmt.Errorf("Value must be greater than %v", attrs["exclusiveMin"])
	}
	if bound, ok := attrs.Float("exclusiveMax"); ok && n >= bound {
		return fmt.Errorf("Value must be less than %v", attrs["exclusiveMax"])
	}
	if m, ok := attrs.Float("multipleOf"); ok && m != 0 && math.Mod(n, m) != 0 {
		return fmt.Errorf("Value must be a multiple of %v", attrs["multipleOf"])
	}
	if opts, ok := attrs.Floats("oneOf"); ok {
		for _, o := range opts {
			if n == o {
				return nil
			}
		}
		return fmt.Errorf("Value must be one of: %s", joinNumbers(attrs["oneOf"]))
	}
	return nil
}

func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func joinNumbers(raw any) string {
	list, _ := raw.([]any)
	parts := make([]string, len(list))
	for i, v := range list {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return strings.Join(parts, ", ")
}

// ---------------- list rules ----------------

func checkListAttrs(attrs Attributes) error {
	for name := range attrs {
		switch name {
		case "maxItems", "minItems", "depth":
			if n, ok := attrs.Int(name); !ok || n < 0 {
				return fmt.Errorf("%s must be a non-negative integer", name)
			}
		case "uniqueItems":
			if _, ok := attrs.Bool(name); !ok {
				return fmt.Errorf("uniqueItems must be a boolean")
			}
		default:
			return fmt.Errorf("unknown attribute %q", name)
		}
	}
	return nil
}

func listPredicate(value any, attrs Attributes) error {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	if n, ok := attrs.Int("minItems"); ok && len(items) < n {
		return fmt.Errorf("List must have at least %d items", n)
	}
	if n, ok := attrs.Int("maxItems"); ok && len(items) > n {
		return fmt.Errorf("List must have no more than %d items", n)
	}
	if unique, ok := attrs.Bool("uniqueItems"); ok && unique {
		for i := range items {
			for j := i + 1; j < len(items); j++ {
				if reflect.DeepEqual(items[i], items[j]) {
					return fmt.Errorf("List must have unique items")
				}
			}
		}
	}
	return nil
}

// ---------------- object rules ----------------

func checkObjectAttrs(attrs Attributes) error {
	for name := range attrs {
		switch name {
		case "equalFields", "nonEqualFields":
			if fields, ok := attrs.Strings(name); !ok || len(fields) < 2 {
				return fmt.Errorf("%s must list at least two field names", name)
			}
		default:
			return fmt.Errorf("unknown attribute %q", name)
		}
	}
	return nil
}

// checkObjectFieldRefs rejects declarations naming fields the target input
// type does not declare.
func checkObjectFieldRefs(attrs Attributes, t *schema.Type) error {
	for _, name := range []string{"equalFields", "nonEqualFields"} {
		fields, ok := attrs.Strings(name)
		if !ok {
			continue
		}
		for _, f := range fields {
			if t.GetInputField(f) == nil {
				return fmt.Errorf("%s references undeclared field %q on %s", name, f, t.Name)
			}
		}
	}
	return nil
}

func objectPredicate(value any, attrs Attributes) error {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	if fields, ok := attrs.Strings("equalFields"); ok {
		first := obj[fields[0]]
		for _, f := range fields[1:] {
			if !reflect.DeepEqual(first, obj[f]) {
				return fmt.Errorf("Fields %s must be equal", strings.Join(fields, ", "))
			}
		}
	}
	if fields, ok := attrs.Strings("nonEqualFields"); ok {
		for i := range fields {
			for j := i + 1; j < len(fields); j++ {
				if reflect.DeepEqual(obj[fields[i]], obj[fields[j]]) {
					return fmt.Errorf("Fields %s must not be equal", strings.Join(fields, ", "))
				}
			}
		}
	}
	return nil
}
