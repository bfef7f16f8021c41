package opencc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	got, err := c.ToTraditional("汉语")
	require.NoError(t, err)
	assert.Equal(t, "漢語", got)

	got, err = c.ToSimplified("漢語")
	require.NoError(t, err)
	assert.Equal(t, "汉语", got)

	got, err = c.ToSimplified("hello 123")
	require.NoError(t, err)
	assert.Equal(t, "hello 123", got)
}
