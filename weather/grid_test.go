package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToGridSeoul(t *testing.T) {
	// Seoul city hall, the KMA's canonical example cell.
	assert.Equal(t, GridPoint{NX: 60, NY: 127}, ToGrid(126.9780, 37.5665))
}

func TestToGridProjectionOrigin(t *testing.T) {
	// At the projection origin x and y reduce to the offsets 42 and 135,
	// which the +1.5 shift rounds up to the next cell.
	assert.Equal(t, GridPoint{NX: 43, NY: 136}, ToGrid(126.0, 38.0))
}

func TestToGridOrientation(t *testing.T) {
	seoul := ToGrid(126.9780, 37.5665)
	east := ToGrid(128.9780, 37.5665)
	north := ToGrid(126.9780, 38.5665)

	assert.Greater(t, east.NX, seoul.NX)
	assert.Greater(t, north.NY, seoul.NY)
}

func TestToGridIsStable(t *testing.T) {
	first := ToGrid(127.1, 37.4)
	second := ToGrid(127.1, 37.4)
	assert.Equal(t, first, second)
}
