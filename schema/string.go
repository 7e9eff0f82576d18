package schema

import "unicode/utf8"

func evaluateMinLength(s *Schema, value any, path string) *EvaluationError {
	if s.MinLength == nil {
		return nil
	}
	str, ok := value.(string)
	if !ok {
		return nil
	}
	if utf8.RuneCountInString(str) < *s.MinLength {
		return NewEvaluationError("minLength", "min_length", "string is shorter than minimum length {min}",
			map[string]any{"min": *s.MinLength}).withPath(path)
	}
	return nil
}

func evaluateMaxLength(s *Schema, value any, path string) *EvaluationError {
	if s.MaxLength == nil {
		return nil
	}
	str, ok := value.(string)
	if !ok {
		return nil
	}
	if utf8.RuneCountInString(str) > *s.MaxLength {
		return NewEvaluationError("maxLength", "max_length", "string is longer than maximum length {max}",
			map[string]any{"max": *s.MaxLength}).withPath(path)
	}
	return nil
}

func evaluatePattern(s *Schema, value any, path string) *EvaluationError {
	if s.compiledPattern == nil {
		return nil
	}
	str, ok := value.(string)
	if !ok {
		return nil
	}
	if !s.compiledPattern.MatchString(str) {
		return NewEvaluationError("pattern", "pattern_mismatch", "string does not match pattern {pattern}",
			map[string]any{"pattern": *s.Pattern}).withPath(path)
	}
	return nil
}
