package slice_test

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/library/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, slice.Map([]int{1, 2}, strconv.Itoa))

	empty := slice.Map[int](nil, strconv.Itoa)
	require.NotNil(t, empty)

	encoded, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(encoded))
}

func TestOrEmpty(t *testing.T) {
	assert.NotNil(t, slice.OrEmpty[int](nil))
	assert.Equal(t, []int{3}, slice.OrEmpty([]int{3}))
}
