// Package devalue parses the "devalue" serialization format used by
// SvelteKit and Nuxt to embed rich JavaScript values in server-rendered
// pages. The input is the already-JSON-decoded payload: an array of
// values addressed by index, or a bare negative constant.
package devalue

import (
	"encoding/base64"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// index constants of the wire format
const (
	constUndefined        = -1
	constHole             = -2
	constNaN              = -3
	constPositiveInfinity = -4
	constNegativeInfinity = -5
	constNegativeZero     = -6
)

// Reviver turns the payload of a custom-tagged value into a Go value.
// The slice holds the already-parsed tag arguments.
type Reviver func(args []any) (any, error)

type parser struct {
	values   []any
	memo     map[int]any
	revivers map[string]Reviver
}

// Parse resolves a decoded devalue payload into plain Go values:
// objects become map[string]any, arrays/Sets []any, Maps []any of
// [2]-element []any pairs, Dates time.Time, RegExps *regexp.Regexp,
// binary views []byte. Cyclical references are preserved.
func Parse(data any, revivers ...map[string]Reviver) (any, error) {
	if index, ok := asInt(data); ok {
		if index >= 0 {
			return nil, errors.New("invalid devalue input: bare index")
		}
		return parseConstant(index)
	}
	values, ok := data.([]any)
	if !ok {
		return nil, fmt.Errorf("invalid devalue input: %T", data)
	}
	if len(values) == 0 {
		return nil, errors.New("invalid devalue input: empty array")
	}
	p := &parser{
		values: values,
		memo:   make(map[int]any),
	}
	for _, r := range revivers {
		if p.revivers == nil {
			p.revivers = make(map[string]Reviver)
		}
		for tag, fn := range r {
			p.revivers[tag] = fn
		}
	}
	return p.resolve(0)
}

func parseConstant(index int) (any, error) {
	switch index {
	case constUndefined:
		return nil, nil
	case constNaN:
		return math.NaN(), nil
	case constPositiveInfinity:
		return math.Inf(1), nil
	case constNegativeInfinity:
		return math.Inf(-1), nil
	case constNegativeZero:
		return math.Copysign(0, -1), nil
	}
	return nil, fmt.Errorf("invalid devalue constant: %d", index)
}

func (p *parser) resolve(index int) (any, error) {
	if index < 0 {
		return parseConstant(index)
	}
	if cached, ok := p.memo[index]; ok {
		return cached, nil
	}
	if index >= len(p.values) {
		return nil, fmt.Errorf("devalue index out of range: %d", index)
	}

	switch value := p.values[index].(type) {
	case bool, string, nil:
		return value, nil
	case float64, int, int64:
		return value, nil
	case map[string]any:
		return p.resolveObject(index, value)
	case []any:
		return p.resolveArray(index, value)
	default:
		return nil, fmt.Errorf("unsupported devalue node: %T", value)
	}
}

func (p *parser) resolveObject(index int, node map[string]any) (any, error) {
	object := make(map[string]any, len(node))
	p.memo[index] = object
	for key, ref := range node {
		refIndex, ok := asInt(ref)
		if !ok {
			return nil, fmt.Errorf("invalid object reference for key %q", key)
		}
		resolved, err := p.resolve(refIndex)
		if err != nil {
			return nil, err
		}
		object[key] = resolved
	}
	return object, nil
}

func (p *parser) resolveArray(index int, node []any) (any, error) {
	// a leading string marks a tagged value, otherwise it is a plain
	// array of references
	if len(node) > 0 {
		if tag, ok := node[0].(string); ok {
			return p.resolveTagged(index, tag, node[1:])
		}
	}

	array := make([]any, len(node))
	p.memo[index] = array
	for i, ref := range node {
		refIndex, ok := asInt(ref)
		if !ok {
			return nil, fmt.Errorf("invalid array reference at %d", i)
		}
		if refIndex == constHole {
			array[i] = nil
			continue
		}
		resolved, err := p.resolve(refIndex)
		if err != nil {
			return nil, err
		}
		array[i] = resolved
	}
	return array, nil
}

func (p *parser) resolveTagged(index int, tag string, args []any) (any, error) {
	switch tag {
	case "Object":
		// boxed primitive (Number, String, Boolean)
		if len(args) != 1 {
			return nil, errors.New("invalid boxed primitive")
		}
		return args[0], nil

	case "Date":
		raw, _ := args[0].(string)
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid Date value %q: %w", raw, err)
		}
		return parsed, nil

	case "RegExp":
		raw, _ := args[0].(string)
		// javascript flags are not portable and get dropped
		compiled, err := regexp.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RegExp value %q: %w", raw, err)
		}
		return compiled, nil

	case "BigInt":
		raw, _ := args[0].(string)
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid BigInt value %q: %w", raw, err)
		}
		return parsed, nil

	case "null":
		// object without prototype, encoded as alternating key/ref pairs
		object := make(map[string]any, len(args)/2)
		p.memo[index] = object
		for i := 0; i+1 < len(args); i += 2 {
			key, _ := args[i].(string)
			refIndex, ok := asInt(args[i+1])
			if !ok {
				return nil, fmt.Errorf("invalid null-prototype reference for key %q", key)
			}
			resolved, err := p.resolve(refIndex)
			if err != nil {
				return nil, err
			}
			object[key] = resolved
		}
		return object, nil

	case "Set":
		set := make([]any, len(args))
		p.memo[index] = set
		for i, ref := range args {
			refIndex, ok := asInt(ref)
			if !ok {
				return nil, fmt.Errorf("invalid Set reference at %d", i)
			}
			resolved, err := p.resolve(refIndex)
			if err != nil {
				return nil, err
			}
			set[i] = resolved
		}
		return set, nil

	case "Map":
		pairs := make([]any, len(args)/2)
		p.memo[index] = pairs
		for i := 0; i+1 < len(args); i += 2 {
			pair := make([]any, 2)
			pairs[i/2] = pair
			keyIndex, ok := asInt(args[i])
			if !ok {
				return nil, fmt.Errorf("invalid Map key reference at %d", i)
			}
			key, err := p.resolve(keyIndex)
			if err != nil {
				return nil, err
			}
			valueIndex, ok := asInt(args[i+1])
			if !ok {
				return nil, fmt.Errorf("invalid Map value reference at %d", i)
			}
			value, err := p.resolve(valueIndex)
			if err != nil {
				return nil, err
			}
			pair[0], pair[1] = key, value
		}
		return pairs, nil

	case "Int8Array", "Uint8Array", "Uint8ClampedArray",
		"Int16Array", "Uint16Array", "Int32Array", "Uint32Array",
		"Float32Array", "Float64Array", "BigInt64Array",
		"BigUint64Array", "ArrayBuffer":
		raw, _ := args[0].(string)
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", tag, err)
		}
		return decoded, nil
	}

	if reviver, ok := p.revivers[tag]; ok {
		resolved := make([]any, len(args))
		for i, ref := range args {
			refIndex, ok := asInt(ref)
			if !ok {
				resolved[i] = ref
				continue
			}
			value, err := p.resolve(refIndex)
			if err != nil {
				return nil, err
			}
			resolved[i] = value
		}
		return reviver(resolved)
	}

	return nil, fmt.Errorf("unknown devalue tag: %s", tag)
}

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}
