package model

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// DefaultRandomState は重み初期化の既定シード
const DefaultRandomState int64 = 42

// GradientInitScale は勾配降下法の初期重みの幅。値は [-0.005, 0.005) に入る
const GradientInitScale = 0.01

// UniformWeights は rows×cols の重み行列を作り、シード固定の一様乱数
// (u - 0.5) * scale で行優先の順に埋める。同じ引数なら常に同じ行列になる。
func UniformWeights(rows, cols int, seed int64, scale float64) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	w := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			w.Set(i, j, (rng.Float64()-0.5)*scale)
		}
	}
	return w
}
