package model

import "gonum.org/v1/gonum/mat"

// 重み行列 W は (F+1)×O で、行0がバイアス、行 1..F が各特徴量の係数。
// 以下の関数は勾配降下法の1サンプル分の計算をまとめたもの。

// AffineInto は out[j] = W[0][j] + Σ_f W[f+1][j]·x[f] を計算する。
// len(out) は W の列数、len(x) は W の行数-1 でなければならない。
func AffineInto(out []float64, w *mat.Dense, x []float64) {
	copy(out, w.RawRowView(0))
	for f, xf := range x {
		row := w.RawRowView(f + 1)
		for j := range out {
			out[j] += row[j] * xf
		}
	}
}

// AccumulateGradient は残差 residual を勾配行列に加算する。
// バイアス行には残差そのもの、特徴量行には残差×特徴量を足す。
func AccumulateGradient(grad *mat.Dense, residual, x []float64) {
	bias := grad.RawRowView(0)
	for j, r := range residual {
		bias[j] += r
	}
	for f, xf := range x {
		row := grad.RawRowView(f + 1)
		for j, r := range residual {
			row[j] += r * xf
		}
	}
}

// ApplyGradient は w -= learningRate·(grad / nSamples) を全要素に適用する。
func ApplyGradient(w, grad *mat.Dense, learningRate float64, nSamples int) {
	r, c := w.Dims()
	n := float64(nSamples)
	for i := 0; i < r; i++ {
		wr, gr := w.RawRowView(i), grad.RawRowView(i)
		for j := 0; j < c; j++ {
			wr[j] -= learningRate * (gr[j] / n)
		}
	}
}
