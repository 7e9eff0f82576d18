package schema

import (
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// resolveRef resolves this schema's $ref to the target Schema it points at.
// Intra-document refs ("#/$defs/foo") never touch the network; external
// refs ("https://host/schema.json#/$defs/foo") fetch the base document at
// most once per Compiler (see Compiler.fetchExternal) and are rewritten to
// an absolute URL before the fragment is resolved.
func (s *Schema) resolveRef() (*Schema, error) {
	docURL, pointer := splitRef(s.Ref)

	if docURL == "" {
		root := s.root
		if root == nil {
			root = s
		}
		return navigatePointer(root, root.raw, pointer)
	}

	absolute := resolveURI(s.baseURI, docURL)

	if s.compiler == nil {
		return nil, ErrNoLoaderRegistered
	}
	target, err := s.compiler.fetchExternal(absolute)
	if err != nil {
		return nil, err
	}
	if pointer == "" || pointer == "/" {
		return target, nil
	}
	return navigatePointer(target, target.raw, pointer)
}

// splitRef splits a $ref value into its document URL (possibly empty, for
// intra-document refs) and its fragment, expressed as a JSON pointer
// (leading "/", or "" for the whole-document fragment).
func splitRef(ref string) (docURL, pointer string) {
	idx := strings.IndexByte(ref, '#')
	if idx < 0 {
		return ref, ""
	}
	docURL = ref[:idx]
	pointer = ref[idx+1:]
	return docURL, pointer
}

// navigatePointer walks raw (the decoded document root) by the tokens of
// pointer, compiling the value found at the end as a schema rooted at root.
func navigatePointer(root *Schema, raw map[string]any, pointer string) (*Schema, error) {
	if pointer == "" {
		return compileInline(raw, root)
	}

	tokens := jsonpointer.Parse(pointer)
	var cur any = raw

	for _, tok := range tokens {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[tok]
			if !ok {
				return nil, ErrRefNotFound
			}
			cur = v
		case []any:
			idx, err := strconv.Atoi(tok)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, ErrRefNotFound
			}
			cur = node[idx]
		default:
			return nil, ErrRefNotFound
		}
	}

	sub, err := compileInline(cur, root)
	if err != nil {
		return nil, err
	}
	sub.initialize(root.compiler, root, root, root.baseURI)
	return sub, nil
}
