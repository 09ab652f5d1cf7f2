package publish

import "testing"

func TestSanitizeTopic(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"New York City!", "new_york_city"},
		{"London", "london"},
		{"Rio de Janeiro", "rio_de_janeiro"},
		{"St. Petersburg", "st_petersburg"},
		{"   ", ""},
		{"!!!", ""},
		{"", ""},
		// Non-ASCII letters are stripped, not transliterated.
		{"Zürich", "zrich"},
		{"--Los--Angeles--", "los_angeles"},
		{"a_b", "a_b"},
	}

	for _, tc := range cases {
		if got := SanitizeTopic(tc.in); got != tc.want {
			t.Errorf("SanitizeTopic(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeTopicIdempotent(t *testing.T) {
	inputs := []string{"New York City!", "Zürich", "   ", "a-b.c,d!e?f", "tokyo"}
	for _, in := range inputs {
		once := SanitizeTopic(in)
		if twice := SanitizeTopic(once); twice != once {
			t.Errorf("SanitizeTopic not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestTopicConvention(t *testing.T) {
	if got := Topic("New York"); got != "weather/new_york" {
		t.Errorf("Topic(\"New York\") = %q, want weather/new_york", got)
	}
}
