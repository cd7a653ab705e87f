package lint

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// ParamKind is the value type of a rule parameter.
type ParamKind int

const (
	ParamInt ParamKind = iota
	ParamString
	ParamBool
	ParamEnum
)

func (k ParamKind) String() string {
	switch k {
	case ParamInt:
		return "int"
	case ParamString:
		return "string"
	case ParamBool:
		return "bool"
	case ParamEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Param declares one tunable rule parameter and its compiled-in default.
type Param struct {
	Name        string
	Kind        ParamKind
	Default     any
	Allowed     []string // ParamEnum only
	Min         *int     // ParamInt only
	Description string
}

// IntParam declares an integer parameter.
func IntParam(name string, def int, desc string) Param {
	return Param{Name: name, Kind: ParamInt, Default: def, Description: desc}
}

// AtLeast rejects configured int values below minimum.
func (p Param) AtLeast(minimum int) Param {
	p.Min = &minimum
	return p
}

// StringParam declares a free-form string parameter.
func StringParam(name, def, desc string) Param {
	return Param{Name: name, Kind: ParamString, Default: def, Description: desc}
}

// BoolParam declares a boolean parameter.
func BoolParam(name string, def bool, desc string) Param {
	return Param{Name: name, Kind: ParamBool, Default: def, Description: desc}
}

// EnumParam declares a string parameter restricted to the allowed values.
func EnumParam(name, def string, allowed []string, desc string) Param {
	return Param{Name: name, Kind: ParamEnum, Default: def, Allowed: allowed, Description: desc}
}

// coerce converts a configured value to the parameter's Go type.
// Integral floats are accepted for int parameters since YAML, JSON and TOML
// decoders do not agree on a single numeric type.
func (p Param) coerce(value any) (any, error) {
	switch p.Kind {
	case ParamInt:
		v, err := toInt(value)
		if err != nil {
			return nil, err
		}
		if p.Min != nil && v < *p.Min {
			return nil, fmt.Errorf("value %d is below the minimum %d", v, *p.Min)
		}
		return v, nil
	case ParamString:
		if s, ok := value.(string); ok {
			return s, nil
		}
	case ParamBool:
		if b, ok := value.(bool); ok {
			return b, nil
		}
	case ParamEnum:
		s, ok := value.(string)
		if !ok {
			break
		}
		for _, allowed := range p.Allowed {
			if strings.EqualFold(s, allowed) {
				return allowed, nil
			}
		}
		return nil, fmt.Errorf("value %q not one of %s", s, strings.Join(p.Allowed, ", "))
	}
	return nil, fmt.Errorf("expected %s, got %T", p.Kind, value)
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, fmt.Errorf("value %d overflows int", v)
		}
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || v < math.MinInt || v >= math.MaxInt {
			return 0, fmt.Errorf("value %v is not an integer", v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("expected int, got %T", value)
	}
}

func findParam(params []Param, name string) (Param, bool) {
	i := slices.IndexFunc(params, func(p Param) bool { return p.Name == name })
	if i < 0 {
		return Param{}, false
	}
	return params[i], true
}
