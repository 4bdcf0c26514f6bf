package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"jeans", "%jeans%"},
		{"%", `%\%%`},
		{"gonne_donna", `%gonne\_donna%`},
		{`a\b`, `%a\\b%`},
		{"50% off", `%50\% off%`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, containsPattern(tt.in), tt.in)
	}
}
