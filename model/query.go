package model

import (
	"sort"
	"strings"
)

// ResponseQuery narrows and orders a response listing.
// The zero value returns responses untouched, in store order.
type ResponseQuery struct {
	Search string
	SortBy string
	Desc   bool
}

func (q ResponseQuery) Apply(responses []Response) []Response {
	responses = FilterResponses(responses, q.Search)
	if q.SortBy != "" {
		SortResponses(responses, q.SortBy, q.Desc)
	}
	return responses
}

// FilterResponses keeps responses where any answer contains term,
// ignoring case. Ids are not searched.
func FilterResponses(responses []Response, term string) []Response {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return responses
	}

	out := make([]Response, 0, len(responses))
	for _, r := range responses {
		if matches(r, term) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r Response, term string) bool {
	for _, a := range r.Data {
		if strings.Contains(strings.ToLower(a.Text()), term) {
			return true
		}
	}
	return false
}

// SortResponses orders responses in place by "id", "created_at" or the
// answer text of a field id. Missing answers sort first.
func SortResponses(responses []Response, key string, desc bool) {
	less := func(a, b Response) bool {
		switch key {
		case "id":
			return a.ID < b.ID
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.Data[key].Text() < b.Data[key].Text()
		}
	}

	sort.SliceStable(responses, func(i, j int) bool {
		if desc {
			return less(responses[j], responses[i])
		}
		return less(responses[i], responses[j])
	})
}
