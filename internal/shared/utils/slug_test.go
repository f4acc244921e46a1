package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Alpine Gardens", "alpine-gardens"},
		{"accents", "Gelonade Señorita", "gelonade-senorita"},
		{"punctuation", "Fudge's #1 Hash!", "fudge-s-1-hash"},
		{"collapsed separators", "A  --  B", "a-b"},
		{"leading and trailing junk", "  -Dawg- ", "dawg"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}
