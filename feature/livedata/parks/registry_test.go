package parks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_LookupKnownPark(t *testing.T) {
	r := NewRegistry()

	m, ok := r.Lookup("magic-kingdom")
	assert.True(t, ok)
	assert.Equal(t, "Magic Kingdom", m.Name)
	assert.Equal(t, 6, m.QueueTimesID)
	assert.NotEmpty(t, m.WikiEntityID)
}

func TestRegistry_LookupUnknownPark(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Lookup("six-flags")
	assert.False(t, ok)
}

func TestRegistry_AllPreservesOrder(t *testing.T) {
	r := NewRegistryWith([]Mapping{
		{ID: "b-park"},
		{ID: "a-park"},
	})

	all := r.All()
	assert.Equal(t, []string{"b-park", "a-park"}, []string{all[0].ID, all[1].ID})
	assert.Equal(t, []string{"b-park", "a-park"}, r.IDs())
}

func TestRegistry_DuplicateIDsIgnored(t *testing.T) {
	r := NewRegistryWith([]Mapping{
		{ID: "epcot", Name: "first"},
		{ID: "epcot", Name: "second"},
	})

	assert.Len(t, r.All(), 1)
	m, _ := r.Lookup("epcot")
	assert.Equal(t, "first", m.Name)
}
