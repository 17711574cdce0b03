package utils

// CheckFieldKinds verifies that every known field in a decoded update
// document carries the expected JSON kind ("string", "number", "bool" or
// "object"). Returns an empty string when all fields check out, otherwise a
// client-facing message for the first offender. Unknown fields pass through.
func CheckFieldKinds(update map[string]interface{}, kinds map[string]string) string {
	for field, val := range update {
		kind, known := kinds[field]
		if !known {
			continue
		}
		switch kind {
		case "string":
			if _, ok := val.(string); !ok {
				return field + " must be a string"
			}
		case "number":
			if _, ok := val.(float64); !ok {
				return field + " must be a number"
			}
		case "bool":
			if _, ok := val.(bool); !ok {
				return field + " must be a boolean"
			}
		case "object":
			if _, ok := val.(map[string]interface{}); !ok {
				return field + " must be an object"
			}
		}
	}
	return ""
}
