package schema

import "strconv"

func evaluateItems(s *Schema, value any, path string) *EvaluationError {
	arr, ok := value.([]any)
	if !ok {
		return nil
	}

	if s.Items != nil {
		for i, item := range arr {
			if err := s.Items.validateAt(item, childPath(path, strconv.Itoa(i))); err != nil {
				return err
			}
		}
		return nil
	}

	if s.ItemsTuple != nil {
		for i, item := range arr {
			itemPath := childPath(path, strconv.Itoa(i))
			if i < len(s.ItemsTuple) {
				if err := s.ItemsTuple[i].validateAt(item, itemPath); err != nil {
					return err
				}
				continue
			}
			if s.AdditionalItems == nil {
				continue
			}
			if s.AdditionalItems.boolSchema != nil && !*s.AdditionalItems.boolSchema {
				return NewEvaluationError("additionalItems", "additional_items",
					"array has more items than the {n} declared", map[string]any{"n": len(s.ItemsTuple)}).withPath(itemPath)
			}
			if err := s.AdditionalItems.validateAt(item, itemPath); err != nil {
				return err
			}
		}
	}

	return nil
}

func evaluateContains(s *Schema, value any, path string) *EvaluationError {
	if s.Contains == nil {
		return nil
	}
	arr, ok := value.([]any)
	if !ok {
		return nil
	}
	for _, item := range arr {
		if s.Contains.validateAt(item, path) == nil {
			return nil
		}
	}
	return NewEvaluationError("contains", "contains", "array does not contain a matching element", nil).withPath(path)
}

func evaluateMinItems(s *Schema, value any, path string) *EvaluationError {
	if s.MinItems == nil {
		return nil
	}
	arr, ok := value.([]any)
	if !ok {
		return nil
	}
	if len(arr) < *s.MinItems {
		return NewEvaluationError("minItems", "min_items", "array has fewer than {min} items",
			map[string]any{"min": *s.MinItems}).withPath(path)
	}
	return nil
}

func evaluateMaxItems(s *Schema, value any, path string) *EvaluationError {
	if s.MaxItems == nil {
		return nil
	}
	arr, ok := value.([]any)
	if !ok {
		return nil
	}
	if len(arr) > *s.MaxItems {
		return NewEvaluationError("maxItems", "max_items", "array has more than {max} items",
			map[string]any{"max": *s.MaxItems}).withPath(path)
	}
	return nil
}

func evaluateUniqueItems(s *Schema, value any, path string) *EvaluationError {
	if !s.UniqueItems {
		return nil
	}
	arr, ok := value.([]any)
	if !ok {
		return nil
	}
	for i := 0; i < len(arr); i++ {
		for j := i + 1; j < len(arr); j++ {
			if deepEqual(arr[i], arr[j]) {
				return NewEvaluationError("uniqueItems", "unique_items", "array items at {i} and {j} are not unique",
					map[string]any{"i": i, "j": j}).withPath(path)
			}
		}
	}
	return nil
}
