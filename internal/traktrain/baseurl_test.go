package traktrain

import "testing"

func TestFindBaseContentURL(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "double quoted var",
			html: `<script>var AWS_BASE_URL = "https://cdn.example.com/";</script>`,
			want: "https://cdn.example.com/",
		},
		{
			name: "single quoted",
			html: `<script>AWS_BASE_URL = 'https://cdn.example.com';</script>`,
			want: "https://cdn.example.com",
		},
		{
			name: "older spelling",
			html: `<script>window.AWS_URL = "https://d1.cdn.example.com/audio/";</script>`,
			want: "https://d1.cdn.example.com/audio/",
		},
		{
			name: "no spaces around assignment",
			html: `<script>var AWS_BASE_URL="https://cdn.example.com/";</script>`,
			want: "https://cdn.example.com/",
		},
		{
			name: "absent",
			html: `<html><body>nothing here</body></html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindBaseContentURL(tt.html); got != tt.want {
				t.Errorf("FindBaseContentURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
