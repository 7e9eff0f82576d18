package schema

// getDataType classifies a decoded JSON value (as produced by goccy/go-json
// unmarshaling into `any`) into one of the JSON Schema basic types.
func getDataType(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64:
		if v == float64(int64(v)) {
			return "integer"
		}
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return "unknown"
	}
}

func isNumber(value any) bool {
	t := getDataType(value)
	return t == "number" || t == "integer"
}
