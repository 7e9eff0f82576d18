package schema

import (
	"fmt"
	"math/big"
	"net/url"
)

func parseType(v any) (SchemaType, error) {
	switch t := v.(type) {
	case string:
		return SchemaType{t}, nil
	case []any:
		out := make(SchemaType, 0, len(t))
		for _, item := range t {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: type entries must be strings", ErrInvalidDocument)
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: type must be a string or array of strings", ErrInvalidDocument)
	}
}

func parseIntPtr(v any) (*int, error) {
	n, err := toFloat(v)
	if err != nil {
		return nil, err
	}
	i := int(n)
	return &i, nil
}

func parseRat(v any) (*big.Rat, error) {
	n, ok := v.(float64)
	if !ok {
		return nil, fmt.Errorf("%w: not a number", ErrInvalidDocument)
	}
	r := new(big.Rat).SetFloat64(n)
	if r == nil {
		return nil, fmt.Errorf("%w: not a finite number", ErrInvalidDocument)
	}
	return r, nil
}

func toFloat(v any) (float64, error) {
	n, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: not a number", ErrInvalidDocument)
	}
	return n, nil
}

// parseBound handles the historical boolean-or-numeric exclusiveMinimum/
// exclusiveMaximum forms: draft-4 used `true`/`false` paired with a sibling
// minimum/maximum; later drafts use a standalone numeric bound.
func parseBound(v any) (*bound, error) {
	if b, ok := v.(bool); ok {
		return &bound{boolean: &b}, nil
	}
	r, err := parseRat(v)
	if err != nil {
		return nil, err
	}
	return &bound{numeric: r}, nil
}

func parseStringList(v any) ([]string, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an array of strings", ErrInvalidDocument)
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		str, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected an array of strings", ErrInvalidDocument)
		}
		out = append(out, str)
	}
	return out, nil
}

func parseSubSchema(v any, parent *Schema) (*Schema, error) {
	doc, err := toDocumentMapOrBool(v)
	if err != nil {
		return nil, err
	}
	return compileInline(doc, parent)
}

func compileInline(v any, parent *Schema) (*Schema, error) {
	switch doc := v.(type) {
	case bool:
		b := doc
		return &Schema{boolSchema: &b}, nil
	case map[string]any:
		sub, err := fromMap(doc)
		if err != nil {
			return nil, err
		}
		sub.parent = parent
		return sub, nil
	default:
		return nil, fmt.Errorf("%w: expected a schema", ErrInvalidDocument)
	}
}

func toDocumentMapOrBool(v any) (any, error) {
	switch v.(type) {
	case bool, map[string]any:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: expected a schema (object or boolean)", ErrInvalidDocument)
	}
}

func parseSchemaMap(v any, parent *Schema) (map[string]*Schema, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an object of schemas", ErrInvalidDocument)
	}
	out := make(map[string]*Schema, len(m))
	for k, raw := range m {
		sub, err := compileInline(raw, parent)
		if err != nil {
			return nil, err
		}
		out[k] = sub
	}
	return out, nil
}

func parseSchemaList(v any, parent *Schema) ([]*Schema, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an array of schemas", ErrInvalidDocument)
	}
	out := make([]*Schema, 0, len(list))
	for _, raw := range list {
		sub, err := compileInline(raw, parent)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, nil
}

// parseItems handles both the draft-7 "single schema or ordered list" form
// named in the validator's contract.
func parseItems(v any, s *Schema) error {
	switch items := v.(type) {
	case []any:
		tuple, err := parseSchemaList(items, s)
		if err != nil {
			return err
		}
		s.ItemsTuple = tuple
		return nil
	default:
		sub, err := parseSubSchema(v, s)
		if err != nil {
			return err
		}
		s.Items = sub
		return nil
	}
}

// mergeDependencies folds the "dependencies" keyword (whose per-key value is
// either a list of required property names or a sub-schema) together with
// the split dependentRequired/dependentSchemas keywords, since all three
// describe the same constraint in this validator's contract.
func mergeDependencies(existing map[string]dependency, v any, parent *Schema) (map[string]dependency, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an object", ErrInvalidDocument)
	}
	if existing == nil {
		existing = map[string]dependency{}
	}
	for k, raw := range m {
		switch val := raw.(type) {
		case []any:
			names, err := parseStringList(val)
			if err != nil {
				return nil, err
			}
			existing[k] = dependency{names: names}
		default:
			sub, err := parseSubSchema(raw, parent)
			if err != nil {
				return nil, err
			}
			existing[k] = dependency{schema: sub}
		}
	}
	return existing, nil
}

// resolveURI resolves a possibly-relative $id against a base URI, producing
// the absolute URI later $refs are rewritten against.
func resolveURI(base, ref string) string {
	if base == "" {
		return ref
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}
