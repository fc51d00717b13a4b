package listing

import (
	"github.com/go-petr/bank-admin/pkg/pagepkg"
	"github.com/go-petr/bank-admin/pkg/querypkg"
)

// ParseRequest builds Request from string query parameters read by get.
//
// Unparsable or non-positive page and limit fall back to defaults.
// Only the listed filter fields are read.
func ParseRequest(get func(key string) string, filters ...querypkg.Field) Request {
	req := Request{
		Page:   pagepkg.ParseInt(get("page"), pagepkg.DefaultPage),
		Limit:  pagepkg.ParseLimit(get("limit")),
		Search: get("search"),
	}

	if len(filters) > 0 {
		req.Filters = make(map[querypkg.Field]string, len(filters))

		for _, f := range filters {
			req.Filters[f] = get(string(f))
		}
	}

	return req
}
