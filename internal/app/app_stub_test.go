//go:build !ebiten

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadlessViewer(t *testing.T) {
	g, err := New(nil, 1, 0)
	assert.Nil(t, g)
	assert.ErrorIs(t, err, ErrHeadless)
}
