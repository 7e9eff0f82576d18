package schema

import "strings"

func evaluateType(s *Schema, value any, path string) *EvaluationError {
	if len(s.Type) == 0 {
		return nil
	}
	dataType := getDataType(value)
	if s.Type.allows(dataType) {
		return nil
	}
	return NewEvaluationError("type", "type_mismatch", "value must be of type {expected}, got {actual}",
		map[string]any{"expected": strings.Join(s.Type, " or "), "actual": dataType}).withPath(path)
}
