package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinate(t *testing.T) {
	assert.Equal(t, "(3,-4)", NewCoordinate(3, -4).String())
	assert.Equal(t, Coordinate{}, NewCoordinate(0, 0))
}
