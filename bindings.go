package symbolic

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Bindings maps parameters to values. It can be passed directly to
// Expr.Xreplace.
type Bindings map[Placeholder]any

// Bind sets the value of the parameter with the given name, replacing any
// existing binding for that name. value is a numeric scalar or Symbolic value.
func (b Bindings) Bind(name string, value any) {
	for k := range b {
		if placeholderName(k) == name {
			delete(b, k)
		}
	}
	b[NewParameter(name)] = value
}

// Names returns the sorted names of the bound parameters.
func (b Bindings) Names() []string {
	r := make([]string, 0, len(b))
	for k := range b {
		r = append(r, placeholderName(k))
	}
	sort.Strings(r)
	return r
}

// Context creates an arbitrary-precision evaluation context with every
// binding set. Symbolic values are evaluated in a context of their own, so
// they must not depend on parameters.
func (b Bindings) Context(prec uint) (*Context, error) {
	opts := []ContextOption{Prec(prec)}
	for k, v := range b {
		p, err := parameterOf(k)
		if err != nil {
			return nil, err
		}
		var f *big.Float
		if e := symbolicOperand(v); e != nil {
			f, err = Evaluate(e, Prec(prec))
			if err != nil {
				return nil, fmt.Errorf("binding %s: %w", p.name, err)
			}
		} else {
			c, ok := toComplex(v)
			if !ok {
				return nil, &OperandError{Op: "bind", Left: k, Right: v}
			}
			if imag(c) != 0 {
				return nil, fmt.Errorf("binding %s: %w", p.name, &DomainError{Func: p.name, Msg: "complex value"})
			}
			f = new(big.Float).SetPrec(prec).SetFloat64(real(c))
		}
		opts = append(opts, SetVar(p, f))
	}
	return NewContext(opts...), nil
}

// LoadBindings loads bindings from a file, detecting the format by extension.
// Supported extensions: .yaml, .yml, .json
func LoadBindings(path string) (Bindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bindings file: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return ParseBindings(data, "yaml")
	case ".json":
		return ParseBindings(data, "json")
	default:
		return nil, fmt.Errorf("unsupported bindings file extension: %s", ext)
	}
}

// ParseBindings parses a document mapping parameter names to values. format
// is "yaml" or "json". Each value is a number, a string holding an expression
// (e.g. "pi/4" or "beta + 1"), or a mapping with "re" and "im" number fields.
func ParseBindings(data []byte, format string) (Bindings, error) {
	var m map[string]any
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported bindings format: %s", format)
	}
	b := make(Bindings, len(m))
	for k, v := range m {
		val, err := bindingValue(v)
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", k, err)
		}
		b.Bind(k, val)
	}
	return b, nil
}

// bindingValue converts a decoded document value to a substitution value.
func bindingValue(v any) (any, error) {
	switch v := v.(type) {
	case string:
		return ParseString(v)
	case map[string]any:
		var c [2]float64
		for k, x := range v {
			var i int
			switch k {
			case "re":
				i = 0
			case "im":
				i = 1
			default:
				return nil, fmt.Errorf("unknown complex field %q", k)
			}
			f, ok := toComplex(x)
			if !ok || imag(f) != 0 {
				return nil, fmt.Errorf("complex field %s must be a real number, not %T", k, x)
			}
			c[i] = real(f)
		}
		return complex(c[0], c[1]), nil
	}
	if c, ok := toComplex(v); ok {
		return c, nil
	}
	return nil, fmt.Errorf("unsupported value %v of type %T", v, v)
}
