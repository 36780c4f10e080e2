// SPDX-License-Identifier: MIT

package builder_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/spectral/builder"
)

func TestWeightFnConstructors_Panic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func()
	}{
		{"ConstantWeightFn negative", func() { builder.ConstantWeightFn(-1) }},
		{"ConstantWeightFn NaN", func() { builder.ConstantWeightFn(math.NaN()) }},
		{"UniformWeightFn min negative", func() { builder.UniformWeightFn(-1, 5) }},
		{"UniformWeightFn max below min", func() { builder.UniformWeightFn(5, 4) }},
		{"ExponentialWeightFn zero rate", func() { builder.ExponentialWeightFn(0) }},
		{"WithRand nil", func() { builder.WithRand(nil) }},
		{"WithWeightFn nil", func() { builder.WithWeightFn(nil) }},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Panics(t, tc.fn)
		})
	}
}

func TestWeightFnBehavior(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))

	assert.Equal(t, builder.DefaultEdgeWeight, builder.DefaultWeightFn(nil))
	assert.Equal(t, 3.5, builder.ConstantWeightFn(3.5)(rng))

	uni := builder.UniformWeightFn(2, 5)
	assert.Equal(t, builder.DefaultEdgeWeight, uni(nil))
	for i := 0; i < 100; i++ {
		w := uni(rng)
		assert.GreaterOrEqual(t, w, 2.0)
		assert.Less(t, w, 5.0)
	}
	assert.Equal(t, 7.0, builder.UniformWeightFn(7, 7)(rng))

	exp := builder.ExponentialWeightFn(2)
	assert.Equal(t, builder.DefaultEdgeWeight, exp(nil))
	for i := 0; i < 100; i++ {
		assert.GreaterOrEqual(t, exp(rng), 0.0)
	}
}
