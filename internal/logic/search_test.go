package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rentaldash/internal/domain"
)

func TestBlankQueryReturnsCollection(t *testing.T) {
	items := makeClients(5)
	s := NewSearch(clientFields)

	for _, q := range []string{"", "   ", "\t"} {
		s.SetQuery(q)
		assert.False(t, s.Active())
		assert.Equal(t, items, s.Apply(items))
	}
}

func TestSearchIgnoresCase(t *testing.T) {
	items := []domain.Client{
		{ID: 1, FirstName: "Álvaro", LastName: "Núñez", Email: "an@mail.com"},
		{ID: 2, FirstName: "Berta", LastName: "Solís", Document: "X-77", Email: "BERTA@MAIL.COM"},
	}
	s := NewSearch(clientFields)

	s.SetQuery("álvaro NÚÑEZ")
	got := s.Apply(items)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	s.SetQuery("berta@mail")
	assert.Len(t, s.Apply(items), 1)

	s.SetQuery("x-77")
	assert.Len(t, s.Apply(items), 1)
}

func TestSearchMatchesFullName(t *testing.T) {
	items := makeClients(3)
	got := Match(items, "nombre02 pér", clientFields)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestSearchWithoutMatches(t *testing.T) {
	s := NewSearch(clientFields)
	s.SetQuery("smith")

	got := s.Apply(makeClients(20))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
