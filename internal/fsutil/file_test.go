package fsutil

import (
	"strings"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal-file", "normal-file"},
		{"name:with:colons", "namewithcolons"},
		{"name<with>brackets", "namewithbrackets"},
		{"name/with\\slashes", "namewithslashes"},
		{"name|with|pipes", "namewithpipes"},
		{"name?with*wildcards", "namewithwildcards"},
		{"name\"with\"quotes", "namewithquotes"},
		{"multiple   spaces", "multiple spaces"},
		{"  leading and trailing  ", "leading and trailing"},
		{"tabs\tand\nnewlines", "tabs and newlines"},
		{"", ""},
		{`<>:"/\|?*`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeName_Idempotent(t *testing.T) {
	inputs := []string{
		"My Track",
		"a:b/c\\d|e?f*g",
		"   x   y   ",
		"plain",
		"trailing dots...",
	}

	for _, in := range inputs {
		once := SanitizeName(in)
		twice := SanitizeName(once)
		if once != twice {
			t.Errorf("SanitizeName not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestSanitizeName_Total(t *testing.T) {
	inputs := []string{
		`a<b>c:d"e/f\g|h?i*j`,
		strings.Repeat(`<>:"/\|?*`, 10),
		"mixed <ok> text / more",
	}

	for _, in := range inputs {
		got := SanitizeName(in)
		if strings.ContainsAny(got, `<>:"/\|?*`) {
			t.Errorf("SanitizeName(%q) = %q still contains invalid characters", in, got)
		}
	}
}
