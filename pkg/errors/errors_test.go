package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "LinearRegression.Fit",
			kind:    "singular matrix",
			err:     ErrSingularMatrix,
			wantMsg: "linfit: LinearRegression.Fit: singular matrix: singular matrix",
		},
		{
			name:    "without original error",
			op:      "Predict",
			kind:    "not fitted",
			err:     nil,
			wantMsg: "linfit: Predict: not fitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Fit", 4, 3, 0)

	want := "linfit: Fit: dimension mismatch on axis 0 (rows). Expected 4, got 3"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Fatal("Error should be castable to *DimensionError")
	}
	if dimErr.Expected != 4 || dimErr.Got != 3 {
		t.Errorf("unexpected fields: %+v", dimErr)
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("SoftmaxRegression", "PredictClass")

	want := "linfit: SoftmaxRegression: model is not fitted yet. Call Fit() before using PredictClass()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
	if !IsNotFitted(err) {
		t.Error("IsNotFitted should report true")
	}
	if IsInvalidInput(err) || IsSingular(err) {
		t.Error("NotFittedError must not be classified as another category")
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantInvalid  bool
		wantSingular bool
		wantNotFit   bool
	}{
		{"nil", nil, false, false, false},
		{"empty data", NewModelError("Fit", "empty data", ErrEmptyData), true, false, false},
		{"row mismatch", NewDimensionError("Fit", 4, 3, 0), true, false, false},
		{"bad hyperparameter", NewValidationError("learning_rate", "must be positive", -1.0), true, false, false},
		{"non-finite input", NewNumericalInstabilityError("Fit.X", []float64{math.NaN()}, -1), true, false, false},
		{"singular", NewModelError("Fit", "singular matrix", ErrSingularMatrix), false, true, false},
		{"wrapped singular", Wrap(NewModelError("Fit", "singular matrix", ErrSingularMatrix), "closed form"), false, true, false},
		{"not fitted", NewNotFittedError("LinearRegression", "Predict"), false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInvalidInput(tt.err); got != tt.wantInvalid {
				t.Errorf("IsInvalidInput() = %v, want %v", got, tt.wantInvalid)
			}
			if got := IsSingular(tt.err); got != tt.wantSingular {
				t.Errorf("IsSingular() = %v, want %v", got, tt.wantSingular)
			}
			if got := IsNotFitted(tt.err); got != tt.wantNotFit {
				t.Errorf("IsNotFitted() = %v, want %v", got, tt.wantNotFit)
			}
		})
	}
}

func TestNumericalInstabilityErrorMessage(t *testing.T) {
	err := NewNumericalInstabilityError("gradient_update", []float64{1, 2, 3, 4, 5, 6}, 7)
	msg := err.Error()
	if !strings.Contains(msg, "iteration 7") || !strings.Contains(msg, "...") {
		t.Errorf("unexpected message: %s", msg)
	}

	inputErr := NewNumericalInstabilityError("Fit.X", []float64{math.Inf(1)}, -1)
	if !strings.Contains(inputErr.Error(), "non-finite values in Fit.X") {
		t.Errorf("unexpected message: %s", inputErr.Error())
	}
}

func TestCheckMatrix(t *testing.T) {
	finite := gridOf([][]float64{{1, 2}, {3, 4}})
	if err := CheckMatrix("X", finite, -1); err != nil {
		t.Errorf("finite matrix should pass, got %v", err)
	}

	bad := gridOf([][]float64{{1, math.NaN()}, {math.Inf(-1), 4}})
	err := CheckMatrix("X", bad, -1)
	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Fatalf("expected NumericalInstabilityError, got %v", err)
	}
	if len(numErr.Values) != 2 {
		t.Errorf("expected 2 offending values, got %d", len(numErr.Values))
	}
}

func TestCheckScalarAndSlice(t *testing.T) {
	if CheckScalar("loss", 0.5, 1) != nil {
		t.Error("finite scalar should pass")
	}
	if CheckScalar("loss", math.NaN(), 1) == nil {
		t.Error("NaN scalar should fail")
	}
	if CheckNumericalStability("w", []float64{1, math.Inf(1)}, 3) == nil {
		t.Error("Inf in slice should fail")
	}
}

func TestWarnUsesZerologHook(t *testing.T) {
	var got []error
	SetZerologWarnFunc(func(w error) { got = append(got, w) })
	defer SetZerologWarnFunc(nil)

	Warn(New("diverged"))
	if len(got) != 1 || got[0].Error() != "diverged" {
		t.Errorf("warning not routed to hook: %v", got)
	}
}

func TestWarnFallsBackToHandler(t *testing.T) {
	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(nil)

	Warn(New("fallback"))
	if len(got) != 1 {
		t.Errorf("expected fallback handler to receive warning, got %v", got)
	}
}

type grid [][]float64

func gridOf(v [][]float64) grid { return grid(v) }

func (g grid) Dims() (int, int) { return len(g), len(g[0]) }
func (g grid) At(i, j int) float64 { return g[i][j] }
