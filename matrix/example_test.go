// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/spectral/matrix"
)

// ExampleEigen decomposes a 2×2 symmetric matrix with Jacobi rotations.
func ExampleEigen() {
	m, _ := matrix.NewDenseFrom([][]float64{
		{2, 1},
		{1, 2},
	})
	vals, _, err := matrix.Eigen(m, 1e-12, 0)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	sort.Float64s(vals)
	fmt.Printf("%.3f %.3f\n", vals[0], vals[1])
	// Output:
	// 1.000 3.000
}

// ExampleSymmetrize averages a matrix with its transpose.
func ExampleSymmetrize() {
	m, _ := matrix.NewDenseFrom([][]float64{
		{0, 2},
		{0, 0},
	})
	s, _ := matrix.Symmetrize(m)
	fmt.Print(s)
	// Output:
	// [0, 1]
	// [1, 0]
}
