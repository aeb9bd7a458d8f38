package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNullString(t *testing.T) {
	assert.False(t, NullString("").Valid)
	assert.False(t, NullString("  \t").Valid)

	ns := NullString("Moti Mahal")
	assert.True(t, ns.Valid)
	assert.Equal(t, "Moti Mahal", ns.String)
}

func TestNullTime(t *testing.T) {
	assert.False(t, NullTime(time.Time{}).Valid)

	local := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))
	nt := NullTime(local)
	assert.True(t, nt.Valid)
	assert.Equal(t, time.UTC, nt.Time.Location())
	assert.True(t, local.Equal(nt.Time))
}
