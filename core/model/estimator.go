package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit は特徴量行列 X (n×F) と目的変数行列 Y (n×O) で学習する
	Fit(X, Y mat.Matrix) error
}

// Predictor は1サンプルずつ予測できるモデルのインターフェース。
// 可視化などの外部コンポーネントはこのインターフェースだけを使う。
type Predictor interface {
	// PredictOne は特徴量ベクトル x に対する出力ベクトルを返す
	PredictOne(x []float64) ([]float64, error)
}

// BatchPredictor は行列単位で予測できるモデルのインターフェース
type BatchPredictor interface {
	// Predict は各行に対する予測を n×O 行列で返す
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// WeightInspector は学習済みの重み行列を公開するモデルのインターフェース
type WeightInspector interface {
	// Weights は (F+1)×O の重み行列のコピーを返す。行0がバイアス
	Weights() (*mat.Dense, error)
}

// Estimator は linfit の全推定器が満たすインターフェース
type Estimator interface {
	Fitter
	Predictor
	BatchPredictor
	WeightInspector
	IsFitted() bool
}

// Classifier はクラスを直接予測できる推定器
type Classifier interface {
	Estimator
	// PredictClass は最大確率のクラス番号を返す（同値なら最小の番号）
	PredictClass(x []float64) (int, error)
}

// Scorer はスコアを計算できるモデルのインターフェース
type Scorer interface {
	Score(X, Y mat.Matrix) (float64, error)
}

// ParameterGetter はハイパーパラメータを公開するモデルのインターフェース
type ParameterGetter interface {
	GetParams() map[string]interface{}
}
