package schema

func evaluateProperties(s *Schema, value any, path string) *EvaluationError {
	if s.Properties == nil {
		return nil
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	for name, sub := range s.Properties {
		v, present := obj[name]
		if !present {
			continue
		}
		if err := sub.validateAt(v, childPath(path, name)); err != nil {
			return err
		}
	}
	return nil
}

func evaluatePatternProperties(s *Schema, value any, path string) *EvaluationError {
	if s.PatternProperties == nil {
		return nil
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	for pattern, sub := range s.PatternProperties {
		re := s.compiledPatternProps[pattern]
		for name, v := range obj {
			if re != nil && re.MatchString(name) {
				if err := sub.validateAt(v, childPath(path, name)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *Schema) propertyIsDeclared(name string) bool {
	if _, ok := s.Properties[name]; ok {
		return true
	}
	for _, re := range s.compiledPatternProps {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

func evaluateAdditionalProperties(s *Schema, value any, path string) *EvaluationError {
	if s.AdditionalProperties == nil {
		return nil
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	for name, v := range obj {
		if s.propertyIsDeclared(name) {
			continue
		}
		if s.AdditionalProperties.boolSchema != nil && !*s.AdditionalProperties.boolSchema {
			return NewEvaluationError("additionalProperties", "additional_properties",
				"additional property {name} is not allowed", map[string]any{"name": name}).withPath(childPath(path, name))
		}
		if err := s.AdditionalProperties.validateAt(v, childPath(path, name)); err != nil {
			return err
		}
	}
	return nil
}

func evaluateRequired(s *Schema, value any, path string) *EvaluationError {
	if len(s.Required) == 0 {
		return nil
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	for _, name := range s.Required {
		if _, present := obj[name]; !present {
			return NewEvaluationError("required", "required", "missing required property {name}",
				map[string]any{"name": name}).withPath(path)
		}
	}
	return nil
}

func evaluatePropertyNames(s *Schema, value any, path string) *EvaluationError {
	if s.PropertyNames == nil {
		return nil
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	for name := range obj {
		if err := s.PropertyNames.validateAt(name, path); err != nil {
			return NewEvaluationError("propertyNames", "property_names", "property name {name} is invalid: {cause}",
				map[string]any{"name": name, "cause": err.Error()}).withPath(path)
		}
	}
	return nil
}

func evaluateMinProperties(s *Schema, value any, path string) *EvaluationError {
	if s.MinProperties == nil {
		return nil
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	if len(obj) < *s.MinProperties {
		return NewEvaluationError("minProperties", "min_properties", "object has fewer than {min} properties",
			map[string]any{"min": *s.MinProperties}).withPath(path)
	}
	return nil
}

func evaluateMaxProperties(s *Schema, value any, path string) *EvaluationError {
	if s.MaxProperties == nil {
		return nil
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	if len(obj) > *s.MaxProperties {
		return NewEvaluationError("maxProperties", "max_properties", "object has more than {max} properties",
			map[string]any{"max": *s.MaxProperties}).withPath(path)
	}
	return nil
}

func evaluateDependencies(s *Schema, value any, path string) *EvaluationError {
	if len(s.Dependencies) == 0 {
		return nil
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	for trigger, dep := range s.Dependencies {
		if _, present := obj[trigger]; !present {
			continue
		}
		if dep.schema != nil {
			if err := dep.schema.validateAt(value, path); err != nil {
				return err
			}
			continue
		}
		for _, required := range dep.names {
			if _, present := obj[required]; !present {
				return NewEvaluationError("dependencies", "dependent_required",
					"property {trigger} requires property {required}",
					map[string]any{"trigger": trigger, "required": required}).withPath(path)
			}
		}
	}
	return nil
}
