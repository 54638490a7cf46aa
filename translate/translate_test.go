package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("bus contention", From("bus contention"))
	assert.Equal("a: 0x0c", From("%v: 0x%02x", "a", 12))
	assert.NotEmpty(Language().String())
}
