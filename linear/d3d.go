// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

// M4RowMajor is a 4x4 matrix of float32 stored in D3D8's row-major
// convention: m[row][col]. D3D8 applications fill matrices this way;
// package state stores the world/view/projection transform vector as
// M4RowMajor, and package constant's SetMatrix converts a row-major
// 4x4 into the column-major M4 shader constant registers expect when
// asked to transpose on upload.
type M4RowMajor [4][4]float32

// I makes m an identity matrix.
func (m *M4RowMajor) I() { *m = M4RowMajor{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}} }

// Mul sets m to contain l ⋅ r using D3D8's row-major convention:
//
//	m[row][col] = Σk l[row][k] * r[k][col]
func (m *M4RowMajor) Mul(l, r *M4RowMajor) {
	var res M4RowMajor
	for row := range res {
		for col := range res[row] {
			var sum float32
			for k := range res {
				sum += l[row][k] * r[k][col]
			}
			res[row][col] = sum
		}
	}
	*m = res
}

// Transpose sets m to contain the transpose of n.
func (m *M4RowMajor) Transpose(n *M4RowMajor) {
	for i := range m {
		m[i][i] = n[i][i]
		for j := i + 1; j < len(m); j++ {
			m[i][j], m[j][i] = n[j][i], n[i][j]
		}
	}
}
