package postdoc_test

import (
	"testing"

	"github.com/fwojciec/postdoc"
	"github.com/stretchr/testify/assert"
)

func TestParseCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{in: "1.2K", want: 1200},
		{in: "1.2k", want: 1200},
		{in: "3M", want: 3000000},
		{in: "2.5b", want: 2500000000},
		{in: "1,234", want: 1234},
		{in: "5", want: 5},
		{in: " 42 ", want: 42},
		{in: "1.25K", want: 1250},
		{in: "0.5", want: 1},
		{in: "", want: 0},
		{in: "likes", want: 0},
		{in: "K", want: 0},
		{in: "12x", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, postdoc.ParseCount(tt.in))
		})
	}
}

func TestFormatCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want string
	}{
		{in: 0, want: "0"},
		{in: 999, want: "999"},
		{in: 1000, want: "1.0K"},
		{in: 1200, want: "1.2K"},
		{in: 999999, want: "1000.0K"},
		{in: 1000000, want: "1.0M"},
		{in: 3400000, want: "3.4M"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, postdoc.FormatCount(tt.in))
		})
	}
}
