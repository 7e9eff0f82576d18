package project

import "regexp"

var varPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// substituteVars walks data in place (maps and slices), replacing every
// "${name}" occurrence in every string value with vars[name]. A name not
// present in vars substitutes to the empty string.
func substituteVars(data any, vars map[string]string) {
	switch v := data.(type) {
	case map[string]any:
		for key, value := range v {
			v[key] = substituteValue(value, vars)
		}
	case []any:
		for i, value := range v {
			v[i] = substituteValue(value, vars)
		}
	}
}

func substituteValue(value any, vars map[string]string) any {
	switch v := value.(type) {
	case string:
		return substituteString(v, vars)
	case map[string]any:
		substituteVars(v, vars)
		return v
	case []any:
		substituteVars(v, vars)
		return v
	default:
		return v
	}
}

func substituteString(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := varPattern.FindStringSubmatch(match)[1]
		return vars[name]
	})
}
