// Package linfit fits small linear models on gonum matrices and shows how
// they train.
//
// linfit covers three models:
//
//   - least-squares regression solved in closed form or by gradient descent
//   - a two-feature regressor that records its gradient-descent path
//   - multinomial logistic (softmax) regression on one-hot targets
//
// Every model keeps its weights as an (F+1)×O matrix with the bias in row 0.
// Training is deterministic for a given random state.
//
// # Installation
//
//	go get github.com/YuminosukeSato/linfit
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/linfit/linear"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    // y = 1 + x1 + x2
//	    X := mat.NewDense(4, 2, []float64{0, 0, 1, 0, 0, 1, 1, 1})
//	    y := mat.NewDense(4, 1, []float64{1, 2, 2, 3})
//
//	    model := linear.NewClosedForm()
//	    if err := model.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    pred, err := model.PredictOne([]float64{2, 2})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("Prediction:", pred[0]) // 5
//	}
//
// Classification works the same way with one-hot targets:
//
//	X, Y := dataset.ThreeClusters()
//	clf := logistic.NewSoftmaxRegression(0.1, 2000)
//	if err := clf.Fit(X, Y); err != nil {
//	    log.Fatal(err)
//	}
//	class, _ := clf.PredictClass([]float64{0.9, 0.1})
//
// # Packages
//
//   - linear: LinearRegression and PathRegression
//   - logistic: SoftmaxRegression and the Softmax function
//   - metrics: MSE, R², cross-entropy and accuracy
//   - preprocessing: StandardScaler, one-hot encoding
//   - dataset: synthetic training sets
//   - plot: decision regions, error surfaces and loss curves via gonum/plot
//   - core/model: estimator interfaces, fit state and shared training helpers
//   - core/matrix: bias augmentation and checked matrix products
//   - pkg/errors: typed errors and numerical warnings
//   - pkg/log: structured logging on zerolog
//
// # Errors
//
// Errors carry stack traces through cockroachdb/errors. Use the predicates in
// pkg/errors to classify them:
//
//	if err := model.Fit(X, y); errors.IsSingular(err) {
//	    // fall back to gradient descent
//	}
//
// # License
//
// linfit is released under the MIT License.
package linfit
