package yadisk

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Params maps query parameter names to scalar values. Nil values, including
// typed nil pointers, are left out of the query string.
type Params map[string]any

// Values encodes p as a query.
func (p Params) Values() url.Values {
	q := url.Values{}
	for key, value := range p {
		switch v := value.(type) {
		case nil:
		case string:
			q.Set(key, v)
		case *string:
			if v != nil {
				q.Set(key, *v)
			}
		case int:
			q.Set(key, strconv.Itoa(v))
		case *int:
			if v != nil {
				q.Set(key, strconv.Itoa(*v))
			}
		case int64:
			q.Set(key, strconv.FormatInt(v, 10))
		case bool:
			q.Set(key, strconv.FormatBool(v))
		case *bool:
			if v != nil {
				q.Set(key, strconv.FormatBool(*v))
			}
		case []string:
			if len(v) > 0 {
				q.Set(key, strings.Join(v, ","))
			}
		default:
			q.Set(key, fmt.Sprint(v))
		}
	}
	return q
}

func optString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func optInt(n int) any {
	if n <= 0 {
		return nil
	}
	return n
}

func optBool(b bool) any {
	if !b {
		return nil
	}
	return true
}

func optFields(fields []string) any {
	if len(fields) == 0 {
		return nil
	}
	return fields
}
