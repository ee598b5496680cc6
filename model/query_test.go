package model

import (
	"testing"
	"time"
)

func sampleResponses() []Response {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return []Response{
		{ID: "b", CreatedAt: base.Add(2 * time.Hour), Data: ResponseData{"1": SingleAnswer("Zed"), "2": MultiAnswer("dog")}},
		{ID: "c", CreatedAt: base, Data: ResponseData{"1": SingleAnswer("amy")}},
		{ID: "a", CreatedAt: base.Add(time.Hour), Data: ResponseData{"1": SingleAnswer("Bob"), "2": MultiAnswer("cat", "dog")}},
	}
}

func ids(rs []Response) string {
	out := ""
	for _, r := range rs {
		out += r.ID
	}
	return out
}

func TestResponseQueryApply(t *testing.T) {
	tests := []struct {
		name  string
		query ResponseQuery
		want  string
	}{
		{name: "zero query keeps store order", query: ResponseQuery{}, want: "bca"},
		{name: "sort by id", query: ResponseQuery{SortBy: "id"}, want: "abc"},
		{name: "sort by id desc", query: ResponseQuery{SortBy: "id", Desc: true}, want: "cba"},
		{name: "sort by created_at", query: ResponseQuery{SortBy: "created_at"}, want: "cab"},
		{name: "sort by answer, missing first", query: ResponseQuery{SortBy: "2"}, want: "cab"},
		{name: "search is case insensitive", query: ResponseQuery{Search: "AMY"}, want: "c"},
		{name: "search matches checkbox selections", query: ResponseQuery{Search: "cat, dog"}, want: "a"},
		{name: "search then sort", query: ResponseQuery{Search: "dog", SortBy: "1"}, want: "ab"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(tc.query.Apply(sampleResponses()))
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFilterResponsesIgnoresID(t *testing.T) {
	responses := []Response{
		{ID: "3f2a9c1e-7b4d-4e8a-9c2f-1a2b3c4d5e6f", Data: ResponseData{"1": SingleAnswer("hello")}},
		{ID: "9b1d7e20-54aa-4c33-8f0e-6d2c1b0a9e88", Data: ResponseData{"1": SingleAnswer("room 42")}},
	}

	tests := []struct {
		term string
		want int
	}{
		{term: "4", want: 1},
		{term: "c", want: 0},
		{term: "3f2a", want: 0},
		{term: "HELLO", want: 1},
	}
	for _, tc := range tests {
		t.Run(tc.term, func(t *testing.T) {
			if got := FilterResponses(responses, tc.term); len(got) != tc.want {
				t.Errorf("expected %d matches, got %d", tc.want, len(got))
			}
		})
	}
}
