package services

// Bubble payloads are loosely typed JSON and field names drifted between
// app versions, so every accessor takes a list of candidate keys.

func getString(payload map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := payload[k]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}

func getFloat(payload map[string]interface{}, keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, ok := payload[k]; ok {
			switch n := v.(type) {
			case float64:
				return n, true
			case int:
				return float64(n), true
			}
		}
	}
	return 0, false
}

func floatOrZero(payload map[string]interface{}, keys ...string) float64 {
	v, _ := getFloat(payload, keys...)
	return v
}

func getInt(payload map[string]interface{}, keys ...string) int {
	v, ok := getFloat(payload, keys...)
	if !ok {
		return 0
	}
	return int(v)
}
