// Package preprocessing provides feature scaling and label encoding for linfit models.
package preprocessing

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/linfit/core/model"
	"github.com/YuminosukeSato/linfit/pkg/errors"
)

// minScale 未満の標準偏差は定数特徴量とみなし、1 で割る
const minScale = 1e-8

// StandardScaler はデータを平均0、標準偏差1に変換する。
// 勾配降下法は特徴量のスケールに敏感なので、学習前に使う。
type StandardScaler struct {
	state *model.StateManager

	withMean bool
	withStd  bool

	mu    sync.RWMutex
	mean  []float64
	scale []float64
}

// NewStandardScaler は新しいStandardScalerを作成する
//
// パラメータ:
//   - withMean: 平均を引くかどうか
//   - withStd: 標準偏差で割るかどうか
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	XScaled, err := scaler.FitTransform(X)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		state:    model.NewStateManager(),
		withMean: withMean,
		withStd:  withStd,
	}
}

// NewStandardScalerDefault はデフォルト設定でStandardScalerを作成する
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// Fit は訓練データから各特徴量の平均と母標準偏差を計算する
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		s.state.Reset()
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}
	if err := errors.CheckMatrix("StandardScaler.Fit", X, -1); err != nil {
		s.state.Reset()
		return err
	}

	mean := make([]float64, c)
	scale := make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		m, variance := stat.PopMeanVariance(col, nil)

		if s.withMean {
			mean[j] = m
		}
		scale[j] = 1.0
		if s.withStd {
			if sd := math.Sqrt(variance); sd >= minScale {
				scale[j] = sd
			}
		}
	}

	s.mu.Lock()
	s.mean, s.scale = mean, scale
	s.mu.Unlock()
	s.state.SetFitted(c, c, r)
	return nil
}

// Transform は学習済みの統計情報を使ってデータを標準化する
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	return s.apply("Transform", X, func(v, mean, scale float64) float64 {
		return (v - mean) / scale
	})
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	return s.apply("InverseTransform", X, func(v, mean, scale float64) float64 {
		return v*scale + mean
	})
}

func (s *StandardScaler) apply(method string, X mat.Matrix, f func(v, mean, scale float64) float64) (mat.Matrix, error) {
	r, c := X.Dims()
	if err := s.state.RequireFeatures("StandardScaler", method, c); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	result := mat.NewDense(r, c, nil)
	result.Apply(func(i, j int, v float64) float64 {
		return f(v, s.mean[j], s.scale[j])
	}, X)
	return result, nil
}

// Mean は各特徴量の平均を返す。未学習なら nil
func (s *StandardScaler) Mean() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]float64(nil), s.mean...)
}

// Scale は各特徴量の割る値（標準偏差）を返す。未学習なら nil
func (s *StandardScaler) Scale() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]float64(nil), s.scale...)
}

// IsFitted は学習済みかどうかを返す
func (s *StandardScaler) IsFitted() bool {
	return s.state.IsFitted()
}

// GetParams はスケーラーのパラメータを取得する
func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"with_mean": s.withMean,
		"with_std":  s.withStd,
	}
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.withMean, s.withStd)
	}
	n, _, _ := s.state.Dimensions()
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)", s.withMean, s.withStd, n)
}

var _ model.Transformer = (*StandardScaler)(nil)
