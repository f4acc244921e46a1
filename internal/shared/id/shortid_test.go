package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	sid, err := Generate(DefaultLength)
	require.NoError(t, err)
	assert.Len(t, sid, DefaultLength)

	for _, r := range sid {
		assert.True(t, strings.ContainsRune(alphabet, r), "unexpected character %q", r)
	}
}

func TestGenerateDefaultsLength(t *testing.T) {
	sid, err := Generate(0)
	require.NoError(t, err)
	assert.Len(t, sid, DefaultLength)
}

func TestGenerateWithPrefix(t *testing.T) {
	sid, err := GenerateWithPrefix(PrefixProducer, 8)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sid, "pd_"))
	assert.Len(t, sid, len("pd_")+8)
}

func TestGenerateUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		sid := MustGenerate(DefaultLength)
		assert.False(t, seen[sid], "duplicate id generated: %s", sid)
		seen[sid] = true
	}
}

func TestValidatePrefix(t *testing.T) {
	tests := []struct {
		name    string
		sid     string
		prefix  string
		wantErr bool
	}{
		{"valid", "pd_abc123", PrefixProducer, false},
		{"wrong prefix", "st_abc123", PrefixProducer, true},
		{"missing underscore", "pdabc123", PrefixProducer, true},
		{"empty random part", "pd_", PrefixProducer, true},
		{"empty", "", PrefixProducer, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrefix(tt.sid, tt.prefix)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
