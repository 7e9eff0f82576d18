package schema

// evaluateFormat checks a value against its "format" keyword. Custom
// formats registered on the compiler take precedence over the built-in
// Formats table. Unless the compiler has AssertFormat set, an unmatched or
// unknown format is informational only, per the "format" keyword's
// traditional annotation-only role.
func evaluateFormat(s *Schema, value any, path string) *EvaluationError {
	if s.Format == nil {
		return nil
	}
	name := *s.Format

	var validator func(any) bool
	var typeRestriction string

	if s.compiler != nil {
		s.compiler.customFormatsMu.RLock()
		def := s.compiler.customFormats[name]
		s.compiler.customFormatsMu.RUnlock()
		if def != nil {
			validator = def.Validate
			typeRestriction = def.Type
		}
	}
	if validator == nil {
		if def, ok := Formats[name]; ok {
			validator = def
		}
	}

	assertFormat := s.compiler != nil && s.compiler.AssertFormat

	if validator == nil {
		if assertFormat {
			return NewEvaluationError("format", "unknown_format", "unknown format {format}",
				map[string]any{"format": name}).withPath(path)
		}
		return nil
	}

	if typeRestriction != "" && !matchesType(getDataType(value), typeRestriction) {
		return nil
	}

	if !validator(value) {
		if assertFormat {
			return NewEvaluationError("format", "format_mismatch", "value does not match format {format}",
				map[string]any{"format": name}).withPath(path)
		}
	}
	return nil
}

func matchesType(valueType, requiredType string) bool {
	if requiredType == "" {
		return true
	}
	if requiredType == "number" && valueType == "integer" {
		return true
	}
	return valueType == requiredType
}
