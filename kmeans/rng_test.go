// SPDX-License-Identifier: MIT

package kmeans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRngFromSeed_ZeroMapsToDefault(t *testing.T) {
	a, b := rngFromSeed(0), rngFromSeed(defaultRNGSeed)
	for i := 0; i < 8; i++ {
		assert.Equal(t, a.Int63(), b.Int63())
	}
}

func TestRestartRNGs(t *testing.T) {
	base := rngFromSeed(7)
	single := restartRNGs(base, 1)
	require.Len(t, single, 1)
	assert.Same(t, base, single[0])

	a, b := restartRNGs(rngFromSeed(7), 3), restartRNGs(rngFromSeed(7), 3)
	require.Len(t, a, 3)
	for r := range a {
		assert.Equal(t, a[r].Int63(), b[r].Int63(), "restart %d", r)
	}
	assert.NotEqual(t, a[1].Int63(), a[2].Int63())

	other := restartRNGs(rngFromSeed(8), 3)
	assert.NotEqual(t, restartRNGs(rngFromSeed(7), 3)[0].Int63(), other[0].Int63())
}
