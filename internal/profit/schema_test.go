package profit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaShape(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 17)

	// Ocean freight is the only foreign-currency category and comes first.
	assert.Equal(t, "ocean_freight", cats[0].Key)
	assert.Equal(t, CurrencyForeign, cats[0].Currency)
	assert.Equal(t, SymbolForeign, cats[0].Symbol())

	seen := make(map[string]bool)
	for _, cat := range cats[1:] {
		assert.Equal(t, CurrencyLocal, cat.Currency, cat.Key)
		assert.Equal(t, SymbolLocal, cat.Symbol(), cat.Key)
		assert.NotNil(t, cat.Cost, cat.Key)
		assert.NotNil(t, cat.Price, cat.Key)
		assert.False(t, seen[cat.Key], "duplicate key %s", cat.Key)
		seen[cat.Key] = true
	}
}
