// Package assignment solves the min-cost bipartite assignment problem used to
// match a group of patients to candidate hospitals. The solver is exact
// (Hungarian algorithm with potentials, O(n^3)) and accepts rectangular cost
// matrices: the short side is padded internally with a prohibitive cost so
// that real pairings are always preferred over leaving capacity unused.
package assignment

import (
	"fmt"
	"math"
)

// Unassigned marks a row that received no real column.
const Unassigned = -1

// Solve solves the rectangular assignment problem for the given cost matrix
// (rows x cols) and returns, for each row, the assigned column index or
// Unassigned, together with the total cost of the real assignments.
//
// When rows > cols, exactly rows-cols rows come back Unassigned; the solver
// picks the combination of real pairings with minimum total cost.
func Solve(cost [][]float64) ([]int, float64, error) {
	rows := len(cost)
	if rows == 0 {
		return nil, 0, nil
	}
	cols := len(cost[0])
	for i, row := range cost {
		if len(row) != cols {
			return nil, 0, fmt.Errorf("cost matrix is ragged: row %d has %d columns, want %d", i, len(row), cols)
		}
		for j, c := range row {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return nil, 0, fmt.Errorf("cost matrix contains non-finite value at (%d,%d)", i, j)
			}
		}
	}
	if cols == 0 {
		result := make([]int, rows)
		for i := range result {
			result[i] = Unassigned
		}
		return result, 0, nil
	}

	n := rows
	if cols > n {
		n = cols
	}

	// Pad to square. The pad cost dominates any sum of real cells so the
	// optimum never trades a real pairing for a padded one.
	padCost := 1.0
	for _, row := range cost {
		for _, c := range row {
			padCost += math.Abs(c)
		}
	}

	square := make([][]float64, n)
	for i := range square {
		square[i] = make([]float64, n)
		for j := range square[i] {
			if i < rows && j < cols {
				square[i][j] = cost[i][j]
			} else {
				square[i][j] = padCost
			}
		}
	}

	matched := solveSquare(square, n)

	result := make([]int, rows)
	total := 0.0
	for i := 0; i < rows; i++ {
		j := matched[i]
		if j >= cols {
			result[i] = Unassigned
			continue
		}
		result[i] = j
		total += cost[i][j]
	}
	return result, total, nil
}

// solveSquare runs the Hungarian algorithm with row/column potentials on an
// n x n matrix and returns the matched column for each row. Indices inside
// are 1-based with column 0 acting as the virtual source of augmenting paths.
func solveSquare(a [][]float64, n int) []int {
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1)
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := math.Inf(1)
			j1 := 0

			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := a[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// Walk the augmenting path back, flipping matches.
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	matched := make([]int, n)
	for j := 1; j <= n; j++ {
		if p[j] > 0 {
			matched[p[j]-1] = j - 1
		}
	}
	return matched
}
