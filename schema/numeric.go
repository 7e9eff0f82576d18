package schema

import "math/big"

func numericValue(value any) (*big.Rat, bool) {
	f, ok := value.(float64)
	if !ok {
		return nil, false
	}
	return new(big.Rat).SetFloat64(f), true
}

func evaluateMinimum(s *Schema, value any, path string) *EvaluationError {
	if s.Minimum == nil {
		return nil
	}
	n, ok := numericValue(value)
	if !ok {
		return nil
	}
	if n.Cmp(s.Minimum) < 0 {
		return NewEvaluationError("minimum", "minimum", "value is less than minimum {min}",
			map[string]any{"min": ratString(s.Minimum)}).withPath(path)
	}
	return nil
}

func evaluateMaximum(s *Schema, value any, path string) *EvaluationError {
	if s.Maximum == nil {
		return nil
	}
	n, ok := numericValue(value)
	if !ok {
		return nil
	}
	if n.Cmp(s.Maximum) > 0 {
		return NewEvaluationError("maximum", "maximum", "value is greater than maximum {max}",
			map[string]any{"max": ratString(s.Maximum)}).withPath(path)
	}
	return nil
}

// evaluateExclusiveMinimum handles both the draft-4 boolean form (paired
// with "minimum") and the standalone numeric form.
func evaluateExclusiveMinimum(s *Schema, value any, path string) *EvaluationError {
	if s.ExclusiveMinimum == nil {
		return nil
	}
	n, ok := numericValue(value)
	if !ok {
		return nil
	}
	if s.ExclusiveMinimum.boolean != nil {
		if *s.ExclusiveMinimum.boolean && s.Minimum != nil && n.Cmp(s.Minimum) <= 0 {
			return NewEvaluationError("exclusiveMinimum", "exclusive_minimum",
				"value must be strictly greater than minimum {min}",
				map[string]any{"min": ratString(s.Minimum)}).withPath(path)
		}
		return nil
	}
	if n.Cmp(s.ExclusiveMinimum.numeric) <= 0 {
		return NewEvaluationError("exclusiveMinimum", "exclusive_minimum",
			"value must be strictly greater than {min}",
			map[string]any{"min": ratString(s.ExclusiveMinimum.numeric)}).withPath(path)
	}
	return nil
}

func evaluateExclusiveMaximum(s *Schema, value any, path string) *EvaluationError {
	if s.ExclusiveMaximum == nil {
		return nil
	}
	n, ok := numericValue(value)
	if !ok {
		return nil
	}
	if s.ExclusiveMaximum.boolean != nil {
		if *s.ExclusiveMaximum.boolean && s.Maximum != nil && n.Cmp(s.Maximum) >= 0 {
			return NewEvaluationError("exclusiveMaximum", "exclusive_maximum",
				"value must be strictly less than maximum {max}",
				map[string]any{"max": ratString(s.Maximum)}).withPath(path)
		}
		return nil
	}
	if n.Cmp(s.ExclusiveMaximum.numeric) >= 0 {
		return NewEvaluationError("exclusiveMaximum", "exclusive_maximum",
			"value must be strictly less than {max}",
			map[string]any{"max": ratString(s.ExclusiveMaximum.numeric)}).withPath(path)
	}
	return nil
}

func evaluateMultipleOf(s *Schema, value any, path string) *EvaluationError {
	if s.MultipleOf == nil {
		return nil
	}
	n, ok := numericValue(value)
	if !ok {
		return nil
	}
	quotient := new(big.Rat).Quo(n, s.MultipleOf)
	if quotient.IsInt() {
		return nil
	}
	return NewEvaluationError("multipleOf", "multiple_of", "value is not a multiple of {divisor}",
		map[string]any{"divisor": ratString(s.MultipleOf)}).withPath(path)
}

func ratString(r *big.Rat) string {
	if r.IsInt() {
		return r.RatString()
	}
	f, _ := r.Float64()
	return big.NewFloat(f).Text('f', -1)
}
