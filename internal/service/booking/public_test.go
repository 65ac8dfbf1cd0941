package booking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDedupeIDs(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	assert.Equal(t, []uuid.UUID{a, b}, dedupeIDs([]uuid.UUID{a, b, a, b, a}))
	assert.Equal(t, []uuid.UUID{a}, dedupeIDs([]uuid.UUID{a}))
	assert.Empty(t, dedupeIDs(nil))
}
