package schema

import "fmt"

// evaluateAllOf requires every sub-schema to pass. Per the validator's
// contract, on failure the message names the index of the first failing
// child schema.
func evaluateAllOf(s *Schema, value any, path string) *EvaluationError {
	for i, sub := range s.AllOf {
		if err := sub.validateAt(value, path); err != nil {
			return NewEvaluationError("allOf", "all_of", "does not match allOf schema at index {index}: {cause}",
				map[string]any{"index": i, "cause": err.Error()}).withPath(path)
		}
	}
	return nil
}

// evaluateAnyOf requires at least one sub-schema to pass, aggregating every
// child's failure into the message when none do.
func evaluateAnyOf(s *Schema, value any, path string) *EvaluationError {
	if len(s.AnyOf) == 0 {
		return nil
	}
	var causes []string
	for _, sub := range s.AnyOf {
		if err := sub.validateAt(value, path); err == nil {
			return nil
		} else {
			causes = append(causes, err.Error())
		}
	}
	return NewEvaluationError("anyOf", "any_of", "does not match any of the anyOf schemas: {causes}",
		map[string]any{"causes": fmt.Sprint(causes)}).withPath(path)
}

// evaluateOneOf requires exactly one sub-schema to pass.
func evaluateOneOf(s *Schema, value any, path string) *EvaluationError {
	if len(s.OneOf) == 0 {
		return nil
	}
	var matches []int
	var causes []string
	for i, sub := range s.OneOf {
		if err := sub.validateAt(value, path); err == nil {
			matches = append(matches, i)
		} else {
			causes = append(causes, err.Error())
		}
	}
	switch len(matches) {
	case 1:
		return nil
	case 0:
		return NewEvaluationError("oneOf", "one_of", "does not match any of the oneOf schemas: {causes}",
			map[string]any{"causes": fmt.Sprint(causes)}).withPath(path)
	default:
		return NewEvaluationError("oneOf", "one_of", "matches more than one oneOf schema: {indexes}",
			map[string]any{"indexes": fmt.Sprint(matches)}).withPath(path)
	}
}

func evaluateNot(s *Schema, value any, path string) *EvaluationError {
	if s.Not == nil {
		return nil
	}
	if s.Not.validateAt(value, path) == nil {
		return NewEvaluationError("not", "not", "value must not match the not schema", nil).withPath(path)
	}
	return nil
}

// evaluateConditional implements if/then/else: the outcome of "if" selects
// whether "then" or "else" is the constraint actually enforced; "if" itself
// never fails validation.
func evaluateConditional(s *Schema, value any, path string) *EvaluationError {
	if s.If == nil {
		return nil
	}
	if s.If.validateAt(value, path) == nil {
		if s.Then != nil {
			return s.Then.validateAt(value, path)
		}
		return nil
	}
	if s.Else != nil {
		return s.Else.validateAt(value, path)
	}
	return nil
}
