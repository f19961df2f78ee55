package form

import (
	"context"
	"encoding/json"
	"testing"
)

func TestState_MarshalJSON_FilledBody(t *testing.T) {
	// Given: a filled session that has begun a submission
	s := filledSession(t)
	body, res := s.Begin()
	if res != nil {
		t.Fatalf("Begin() result = %+v, want nil", res)
	}

	// When: the body is encoded
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	// Then: every key is present, and day and year are numbers
	want := map[string]any{
		"full_name":        "Ada Lovelace",
		"email":            "ada@example.com",
		"contact_number":   "0400 000 000",
		"password":         "secret1",
		"day":              float64(5),
		"date_of_birth":    "1990 May 5",
		"month":            "May",
		"year":             float64(1990),
		"confirm_password": "secret1",
		"error":            "",
		"success":          "",
	}
	if len(got) != len(want) {
		t.Errorf("body has %d keys, want %d: %s", len(got), len(want), data)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("body[%q] = %#v, want %#v", k, got[k], v)
		}
	}
}

func TestState_MarshalJSON_UnselectedDateIsEmptyString(t *testing.T) {
	// Given: a session reset by a successful submission
	s := filledSession(t)
	s.Submit(context.Background(), &fakeCreator{reply: Reply{Title: SuccessTitle}})

	data, err := json.Marshal(s.State())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}

	// Then: day and year are sent as empty strings again
	for _, k := range []string{"day", "year", "month"} {
		if got[k] != "" {
			t.Errorf("body[%q] = %#v, want \"\"", k, got[k])
		}
	}
}

func TestSelection(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"5", 5},
		{"1990", 1990},
		{"", ""},
		{"05", "05"},
		{"May", "May"},
	}
	for _, tt := range tests {
		if got := selection(tt.in); got != tt.want {
			t.Errorf("selection(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
