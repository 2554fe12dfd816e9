package server

import (
	"net/url"
	"strconv"
	"strings"
)

// parseOptionalInt returns the default when the parameter is absent and an
// error when it is present but not an integer.
func parseOptionalInt(value string, def int) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func parseID(value string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(value), 10, 64)
}

// parseOptionFilters collects parameters of the shape option[<id>]=v1,v2 into
// a map keyed by option-group id. Anything else is ignored.
func parseOptionFilters(query url.Values) map[int64][]string {
	filters := make(map[int64][]string)
	for key, values := range query {
		inner, ok := strings.CutPrefix(key, "option[")
		if !ok {
			continue
		}
		inner, ok = strings.CutSuffix(inner, "]")
		if !ok {
			continue
		}
		optionID, err := strconv.ParseInt(inner, 10, 64)
		if err != nil || optionID <= 0 {
			continue
		}
		for _, value := range values {
			for _, v := range strings.Split(value, ",") {
				v = strings.TrimSpace(v)
				if v != "" {
					filters[optionID] = append(filters[optionID], v)
				}
			}
		}
	}
	if len(filters) == 0 {
		return nil
	}
	return filters
}

func parseOptionalBool(value string) (*bool, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
