package datetime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElapsedSeconds(t *testing.T) {
	start := Now().SubSeconds(90)
	elapsed := ElapsedSeconds(start)
	assert.GreaterOrEqual(t, elapsed, int64(90))
	assert.Less(t, elapsed, int64(95))

	assert.Equal(t, int64(0), ElapsedSeconds(Now()))
}
