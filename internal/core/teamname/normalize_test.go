package teamname

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "malaga", Key("  Málaga "))
	assert.Equal(t, "fc koln", Key("FC  Köln"))
	assert.Equal(t, "", Key(""))
	assert.Equal(t, Key("Besiktas"), Key("Beşiktaş"))
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Nott'm Forest", "Nott'm Forest"},
		{"Nottingham  Forest ", "Nott'm Forest"},
		{"Málaga", "Malaga"},
		{"Beşiktaş", "Besiktas"},
		{"Arsenal", "Arsenal"},
		{"FC Köln", "FC Koln"},
		{"M´gladbach", "M'gladbach"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Canonical(tt.in, FootballDataAliases), tt.in)
	}
}

func TestCanonicalWithoutAliases(t *testing.T) {
	assert.Equal(t, "Nottingham Forest", Canonical(" Nottingham Forest", nil))
}

func TestAliasKeysAreKeys(t *testing.T) {
	for k, v := range FootballDataAliases {
		assert.Equal(t, Key(k), k, "alias key %q not in Key form", k)
		assert.Equal(t, v, Canonical(k, FootballDataAliases))
		assert.Equal(t, v, Canonical(strings.ToUpper(k), FootballDataAliases))
	}
}
