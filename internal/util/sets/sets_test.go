package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New("zh", "en")
	assert.True(t, s.Has("zh"))
	assert.False(t, s.Has("ja"))
	assert.Equal(t, 2, s.Len())

	assert.True(t, s.AddNew("ja"))
	assert.False(t, s.AddNew("ja"))
	assert.Equal(t, []string{"en", "ja", "zh"}, Sorted(s))
}

func TestSortedInts(t *testing.T) {
	s := New(2021, 2019, 2020, 2021)
	assert.Equal(t, []int{2019, 2020, 2021}, Sorted(s))
}
