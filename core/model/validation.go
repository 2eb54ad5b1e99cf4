package model

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linfit/pkg/errors"
)

// ValidateTrainingData は学習データの前提条件を確認し、サンプル数・特徴量数・出力数を返す。
// 空のデータ、行数の不一致、NaN/Inf を含む入力はすべて InvalidInput として扱う。
func ValidateTrainingData(op string, X, Y mat.Matrix) (nSamples, nFeatures, nOutputs int, err error) {
	if X == nil || Y == nil {
		return 0, 0, 0, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	nSamples, nFeatures = X.Dims()
	yRows, nOutputs := Y.Dims()

	if nSamples == 0 || nFeatures == 0 || yRows == 0 || nOutputs == 0 {
		return 0, 0, 0, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if yRows != nSamples {
		return 0, 0, 0, errors.NewDimensionError(op, nSamples, yRows, 0)
	}
	if err := errors.CheckMatrix(op+".X", X, -1); err != nil {
		return 0, 0, 0, err
	}
	if err := errors.CheckMatrix(op+".Y", Y, -1); err != nil {
		return 0, 0, 0, err
	}
	return nSamples, nFeatures, nOutputs, nil
}

// ValidateGradientParams は勾配降下法のハイパーパラメータを確認する。
func ValidateGradientParams(learningRate float64, maxIterations int) error {
	if math.IsNaN(learningRate) || math.IsInf(learningRate, 0) || learningRate <= 0 {
		return errors.NewValidationError("learning_rate", "must be a positive finite number", learningRate)
	}
	if maxIterations < 0 {
		return errors.NewValidationError("max_iterations", "must be non-negative", maxIterations)
	}
	return nil
}
