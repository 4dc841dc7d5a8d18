package domain

import (
	"net/url"
	"strings"
)

// Filters is a flat key-value map sent verbatim as query parameters, e.g.
// min_price, max_price, province_code, status.
type Filters map[string]string

// Values drops keys whose value is empty. The backend treats status= and a
// missing status differently, so empty values are never sent.
func (f Filters) Values() url.Values {
	values := url.Values{}
	for key, value := range f {
		if strings.TrimSpace(value) == "" {
			continue
		}
		values.Set(key, value)
	}
	return values
}

// FiltersFromQuery builds filters from an incoming page query string, taking
// the first value of each key.
func FiltersFromQuery(query url.Values) Filters {
	filters := Filters{}
	for key, values := range query {
		if len(values) > 0 {
			filters[key] = values[0]
		}
	}
	return filters
}
