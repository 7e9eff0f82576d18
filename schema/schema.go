package schema

import (
	"math/big"
	"regexp"

	json "github.com/goccy/go-json"
)

// SchemaType is the set of JSON basic types a schema's "type" keyword may
// restrict a value to. A single type is the common case; "type" may also be
// an array of types.
type SchemaType []string

func (t SchemaType) allows(dataType string) bool {
	for _, want := range t {
		if want == dataType {
			return true
		}
		if want == "number" && dataType == "integer" {
			return true
		}
	}
	return false
}

// bound captures the historical boolean-or-numeric forms of
// exclusiveMinimum/exclusiveMaximum: draft-4 used a bool paired with
// minimum/maximum, later drafts use a standalone numeric bound.
type bound struct {
	numeric *big.Rat
	boolean *bool
}

// dependency is the value of one entry of the "dependencies" keyword: either
// a list of required property names, or a sub-schema the whole object must
// satisfy when the key is present.
type dependency struct {
	names  []string
	schema *Schema
}

// Schema is an immutable, compiled tree mirroring JSON-Schema semantics for
// the constraint set named in the validator's contract (see package doc).
// Compilation never mutates a previously returned *Schema.
type Schema struct {
	compiler *Compiler
	parent   *Schema
	raw      map[string]any // the decoded document, kept for $ref/$defs lookups
	root     *Schema        // the schema this one was compiled from the top of (for intra-document refs)

	uri     string // this schema's own $id, if any, resolved to an absolute URI
	baseURI string // the URI new relative refs under this node resolve against

	boolSchema *bool // non-nil when the JSON document was the literal `true`/`false`

	ID          string
	Comment     string
	Title       string
	Description string

	Type  SchemaType
	Enum  []any
	Const *any
	// constPresent distinguishes "const not set" from "const: null".
	constPresent bool

	MinLength *int
	MaxLength *int
	Pattern   *string
	Format    *string

	Minimum          *big.Rat
	Maximum          *big.Rat
	ExclusiveMinimum *bound
	ExclusiveMaximum *bound
	MultipleOf       *big.Rat

	Properties           map[string]*Schema
	PatternProperties    map[string]*Schema
	AdditionalProperties *Schema // nil = unrestricted
	Required             []string
	PropertyNames        *Schema
	MinProperties        *int
	MaxProperties        *int
	Dependencies         map[string]dependency

	Items           *Schema   // "items" as a single schema applied to every element
	ItemsTuple      []*Schema // "items" as an ordered list (draft-7 tuple validation)
	AdditionalItems *Schema   // applies past the end of ItemsTuple; nil = unrestricted
	Contains        *Schema
	MinItems        *int
	MaxItems        *int
	UniqueItems     bool

	AllOf []*Schema
	AnyOf []*Schema
	OneOf []*Schema
	Not   *Schema

	If   *Schema
	Then *Schema
	Else *Schema

	Ref         string
	Definitions map[string]*Schema // $defs and (draft-7) definitions

	compiledPattern       *regexp.Regexp
	compiledPatternProps  map[string]*regexp.Regexp
	compiledPropertyNames *regexp.Regexp

	extraFields map[string]any // unrecognized top-level keys, kept for extension validators
}

// newSchema decodes a JSON document (already bytes) into a raw map and
// builds the Schema tree. A document that is the literal `true` or `false`
// compiles to a boolean schema.
func newSchema(document []byte) (*Schema, error) {
	var anyDoc any
	if err := json.Unmarshal(document, &anyDoc); err != nil {
		return nil, ErrInvalidDocument
	}
	switch v := anyDoc.(type) {
	case bool:
		return &Schema{boolSchema: &v}, nil
	case map[string]any:
		return fromMap(v)
	default:
		return nil, ErrInvalidDocument
	}
}

func fromMap(raw map[string]any) (*Schema, error) {
	s := &Schema{raw: raw, extraFields: map[string]any{}}

	for k, v := range raw {
		var err error
		switch k {
		case "$id", "id":
			s.ID, _ = v.(string)
		case "$comment":
			s.Comment, _ = v.(string)
		case "title":
			s.Title, _ = v.(string)
		case "description":
			s.Description, _ = v.(string)
		case "type":
			s.Type, err = parseType(v)
		case "enum":
			if list, ok := v.([]any); ok {
				s.Enum = list
			}
		case "const":
			cv := v
			s.Const = &cv
			s.constPresent = true
		case "minLength":
			s.MinLength, err = parseIntPtr(v)
		case "maxLength":
			s.MaxLength, err = parseIntPtr(v)
		case "pattern":
			str, _ := v.(string)
			s.Pattern = &str
		case "format":
			str, _ := v.(string)
			s.Format = &str
		case "minimum":
			s.Minimum, err = parseRat(v)
		case "maximum":
			s.Maximum, err = parseRat(v)
		case "multipleOf":
			s.MultipleOf, err = parseRat(v)
		case "exclusiveMinimum":
			s.ExclusiveMinimum, err = parseBound(v)
		case "exclusiveMaximum":
			s.ExclusiveMaximum, err = parseBound(v)
		case "properties":
			s.Properties, err = parseSchemaMap(v, s)
		case "patternProperties":
			s.PatternProperties, err = parseSchemaMap(v, s)
		case "additionalProperties":
			s.AdditionalProperties, err = parseSubSchema(v, s)
		case "required":
			s.Required, err = parseStringList(v)
		case "propertyNames":
			s.PropertyNames, err = parseSubSchema(v, s)
		case "minProperties":
			s.MinProperties, err = parseIntPtr(v)
		case "maxProperties":
			s.MaxProperties, err = parseIntPtr(v)
		case "dependencies", "dependentRequired", "dependentSchemas":
			s.Dependencies, err = mergeDependencies(s.Dependencies, v, s)
		case "items":
			err = parseItems(v, s)
		case "additionalItems":
			s.AdditionalItems, err = parseSubSchema(v, s)
		case "contains":
			s.Contains, err = parseSubSchema(v, s)
		case "minItems":
			s.MinItems, err = parseIntPtr(v)
		case "maxItems":
			s.MaxItems, err = parseIntPtr(v)
		case "uniqueItems":
			b, _ := v.(bool)
			s.UniqueItems = b
		case "allOf":
			s.AllOf, err = parseSchemaList(v, s)
		case "anyOf":
			s.AnyOf, err = parseSchemaList(v, s)
		case "oneOf":
			s.OneOf, err = parseSchemaList(v, s)
		case "not":
			s.Not, err = parseSubSchema(v, s)
		case "if":
			s.If, err = parseSubSchema(v, s)
		case "then":
			s.Then, err = parseSubSchema(v, s)
		case "else":
			s.Else, err = parseSubSchema(v, s)
		case "$ref":
			s.Ref, _ = v.(string)
		case "$defs", "definitions":
			s.Definitions, err = parseSchemaMap(v, s)
		case "$schema", "default", "examples", "contentMediaType", "contentEncoding", "contentSchema",
			"deprecated", "readOnly", "writeOnly":
			// informational; accepted without effect
		default:
			s.extraFields[k] = v
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.compileRegexes(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Schema) compileRegexes() error {
	if s.Pattern != nil {
		re, err := regexp.Compile(*s.Pattern)
		if err != nil {
			return ErrInvalidRegex
		}
		s.compiledPattern = re
	}
	if len(s.PatternProperties) > 0 {
		s.compiledPatternProps = make(map[string]*regexp.Regexp, len(s.PatternProperties))
		for pattern := range s.PatternProperties {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return ErrInvalidRegex
			}
			s.compiledPatternProps[pattern] = re
		}
	}
	return nil
}

// initialize wires parent/root/compiler/baseURI links across the whole tree.
// Called once, after the top-level schema is fully parsed.
func (s *Schema) initialize(c *Compiler, parent *Schema, root *Schema, baseURI string) {
	if s == nil || s.boolSchema != nil {
		return
	}
	s.compiler = c
	s.parent = parent
	if root == nil {
		root = s
	}
	s.root = root

	if s.ID != "" {
		resolved := resolveURI(baseURI, s.ID)
		s.uri = resolved
		baseURI = resolved
		if c != nil {
			c.register(resolved, s)
		}
	}
	s.baseURI = baseURI

	for _, child := range s.children() {
		child.initialize(c, s, root, baseURI)
	}
}

// children enumerates every directly nested sub-schema, for initialize and
// for the compiler's one-time regex validation pass.
func (s *Schema) children() []*Schema {
	var out []*Schema
	add := func(sub *Schema) {
		if sub != nil {
			out = append(out, sub)
		}
	}
	for _, sub := range s.Properties {
		add(sub)
	}
	for _, sub := range s.PatternProperties {
		add(sub)
	}
	add(s.AdditionalProperties)
	add(s.PropertyNames)
	for _, dep := range s.Dependencies {
		add(dep.schema)
	}
	add(s.Items)
	out = append(out, s.ItemsTuple...)
	add(s.AdditionalItems)
	add(s.Contains)
	out = append(out, s.AllOf...)
	out = append(out, s.AnyOf...)
	out = append(out, s.OneOf...)
	add(s.Not)
	add(s.If)
	add(s.Then)
	add(s.Else)
	for _, sub := range s.Definitions {
		add(sub)
	}
	return out
}

// GetCompiler returns the Compiler this schema was compiled with, if any.
func (s *Schema) GetCompiler() *Compiler { return s.compiler }
