package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/linfit/pkg/errors"
)

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	if yTrue == nil || yTrue.Len() == 0 {
		return 0, errors.NewValueError("MSE", "empty vector")
	}
	n := yTrue.Len()
	if yPred == nil || yPred.Len() != n {
		return 0, errors.NewDimensionError("MSE", n, lenOf(yPred), 0)
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// MSEMatrix は n×O の行列全体で平均二乗誤差を計算する。
// 多出力の回帰ではすべての要素の平均になる（Σ / (n·O)）。
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return 0, errors.NewValueError("MSEMatrix", "empty matrix")
	}
	if rTrue != rPred {
		return 0, errors.NewDimensionError("MSEMatrix", rTrue, rPred, 0)
	}
	if cTrue != cPred {
		return 0, errors.NewDimensionError("MSEMatrix", cTrue, cPred, 1)
	}

	var sum float64
	for i := 0; i < rTrue; i++ {
		for j := 0; j < cTrue; j++ {
			diff := yTrue.At(i, j) - yPred.At(i, j)
			sum += diff * diff
		}
	}
	return sum / float64(rTrue*cTrue), nil
}

// RMSE は平方根平均二乗誤差を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// R2Score は決定係数（R²）を計算する
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	if yTrue == nil || yTrue.Len() == 0 {
		return 0, errors.NewValueError("R2Score", "empty vector")
	}
	n := yTrue.Len()
	if yPred == nil || yPred.Len() != n {
		return 0, errors.NewDimensionError("R2Score", n, lenOf(yPred), 0)
	}

	values := make([]float64, n)
	for i := range values {
		values[i] = yTrue.AtVec(i)
	}
	yMean := stat.Mean(values, nil)

	// 全変動（TSS）と残差変動（RSS）
	var tss, rss float64
	for i := 0; i < n; i++ {
		t, p := yTrue.AtVec(i), yPred.AtVec(i)
		tss += (t - yMean) * (t - yMean)
		rss += (t - p) * (t - p)
	}

	if tss == 0 {
		return 0, errors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)")
	}
	return 1 - rss/tss, nil
}

// R2ScoreMatrix は各出力列の R² の平均を返す（scikit-learn の uniform_average と同じ）
func R2ScoreMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()
	if rTrue == 0 || cTrue == 0 {
		return 0, errors.NewValueError("R2ScoreMatrix", "empty matrix")
	}
	if rTrue != rPred {
		return 0, errors.NewDimensionError("R2ScoreMatrix", rTrue, rPred, 0)
	}
	if cTrue != cPred {
		return 0, errors.NewDimensionError("R2ScoreMatrix", cTrue, cPred, 1)
	}

	var total float64
	for j := 0; j < cTrue; j++ {
		score, err := R2Score(
			mat.NewVecDense(rTrue, mat.Col(nil, j, yTrue)),
			mat.NewVecDense(rTrue, mat.Col(nil, j, yPred)),
		)
		if err != nil {
			return 0, errors.Wrapf(err, "output column %d", j)
		}
		total += score
	}
	return total / float64(cTrue), nil
}

func lenOf(v *mat.VecDense) int {
	if v == nil {
		return 0
	}
	return v.Len()
}
