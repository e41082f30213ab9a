package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandSourceDeterministic(t *testing.T) {
	a := NewRandSource(42)
	b := NewRandSource(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
	assert.Equal(t, int64(42), a.Seed())
}

func TestRandSourceZeroSeedUsesClock(t *testing.T) {
	r := NewRandSource(0)
	assert.NotZero(t, r.Seed())
}

func TestIntnRange(t *testing.T) {
	r := NewRandSource(7)
	for i := 0; i < 1000; i++ {
		v := r.Intn(5)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 5)
	}
}

func TestPickCoversAllItems(t *testing.T) {
	r := NewRandSource(3)
	items := []string{"a", "b", "c"}
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[Pick(r, items)] = true
	}
	assert.Len(t, seen, len(items))
}
