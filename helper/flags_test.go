package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupTablesFallBackToDefaults(t *testing.T) {
	assert.Equal(t, "🇹🇭", GetCountryFlag("Thailand"))
	assert.Equal(t, "🏳️", GetCountryFlag("Atlantis"))

	assert.Equal(t, "ไทย", GetLanguageLabel("th"))
	assert.Equal(t, "xx", GetLanguageLabel("xx"))

	assert.Equal(t, "🎭", GetGenreIcon("Drama"))
	assert.Equal(t, "🎬", GetGenreIcon("Mockumentary"))

	assert.Equal(t, "18+", GetAudienceBadge("mature"))
	assert.Equal(t, "G", GetAudienceBadge(""))
}
