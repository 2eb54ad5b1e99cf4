// Package dataset builds small synthetic datasets used by the example programs
// and tests. Classification sets return one-hot targets; regression sets return
// an n×1 target matrix. Random sets are reproducible for a given seed.
package dataset

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/linfit/preprocessing"
)

// ThreeClusters returns 15 points in three well separated groups near (0,0),
// (1,0) and (0,1), five per class, with 3-column one-hot targets.
func ThreeClusters() (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(15, 2, []float64{
		// class 0
		0.05, 0.05,
		0.10, 0.00,
		0.00, 0.15,
		0.12, 0.08,
		0.20, 0.10,
		// class 1
		0.90, 0.05,
		1.00, 0.10,
		0.85, 0.00,
		0.95, 0.15,
		0.80, 0.10,
		// class 2
		0.05, 0.90,
		0.10, 1.00,
		0.00, 0.85,
		0.15, 0.95,
		0.10, 0.80,
	})
	return X, mustOneHot([]int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2}, 3)
}

// TwoClusters returns 16 linearly separable points: eight in the lower-left
// and eight in the upper-right of the unit square, with 2-column one-hot targets.
func TwoClusters() (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(16, 2, []float64{
		// class 0
		0.10, 0.20,
		0.20, 0.30,
		0.15, 0.40,
		0.30, 0.20,
		0.25, 0.35,
		0.10, 0.30,
		0.20, 0.10,
		0.35, 0.25,
		// class 1
		0.70, 0.60,
		0.80, 0.70,
		0.75, 0.80,
		0.90, 0.65,
		0.85, 0.75,
		0.70, 0.70,
		0.80, 0.60,
		0.90, 0.80,
	})
	return X, mustOneHot([]int{0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1}, 2)
}

// Stripes returns 24 points whose class depends almost only on x1: x1 near
// 0.15 is 0, x1 near 0.85 is 1, x2 spread over [0.1, 0.9]. The target is the
// class as a single column, which gives an error surface that is much steeper
// along w1 than along w2.
func Stripes() (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(24, 2, []float64{
		0.10, 0.3, 0.15, 0.7, 0.20, 0.2, 0.12, 0.8,
		0.18, 0.4, 0.14, 0.6, 0.16, 0.5, 0.11, 0.9,
		0.13, 0.1, 0.19, 0.7, 0.17, 0.3, 0.15, 0.6,

		0.80, 0.3, 0.85, 0.7, 0.90, 0.2, 0.82, 0.8,
		0.88, 0.4, 0.84, 0.6, 0.86, 0.5, 0.81, 0.9,
		0.83, 0.1, 0.89, 0.7, 0.87, 0.3, 0.85, 0.6,
	})
	y := mat.NewDense(24, 1, nil)
	for i := 12; i < 24; i++ {
		y.Set(i, 0, 1)
	}
	return X, y
}

// Plane samples n points uniformly from the unit square with targets
// y = 2 + 3·x1 - x2 plus Gaussian noise of standard deviation 0.05.
// n must be positive.
func Plane(n int, seed int64) (*mat.Dense, *mat.Dense) {
	src := newSource(seed)
	unit := distuv.Uniform{Min: 0, Max: 1, Src: src}
	noise := distuv.Normal{Mu: 0, Sigma: 0.05, Src: src}

	X := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x1, x2 := unit.Rand(), unit.Rand()
		X.Set(i, 0, x1)
		X.Set(i, 1, x2)
		y.Set(i, 0, 2+3*x1-x2+noise.Rand())
	}
	return X, y
}

// Circle returns 2n points centered on (0.3, 0.3): n uniformly inside a disk
// of radius 0.15 (class 0) and n in the ring between radii 0.25 and 0.35
// (class 1). No straight line separates the classes. n must be positive.
func Circle(n int, seed int64) (*mat.Dense, *mat.Dense) {
	const cx, cy = 0.3, 0.3

	src := newSource(seed)
	unit := distuv.Uniform{Min: 0, Max: 1, Src: src}
	theta := distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: src}

	X := mat.NewDense(2*n, 2, nil)
	labels := make([]int, 2*n)
	polar := func(i int, r float64) {
		angle := theta.Rand()
		X.Set(i, 0, cx+r*math.Cos(angle))
		X.Set(i, 1, cy+r*math.Sin(angle))
	}

	for i := 0; i < n; i++ {
		// sqrt で面積あたり一様にする
		polar(i, 0.15*math.Sqrt(unit.Rand()))
	}
	for i := n; i < 2*n; i++ {
		polar(i, 0.25+0.10*math.Sqrt(unit.Rand()))
		labels[i] = 1
	}
	return X, mustOneHot(labels, 2)
}

func newSource(seed int64) rand.Source {
	return rand.NewPCG(uint64(seed), uint64(seed))
}

func mustOneHot(labels []int, k int) *mat.Dense {
	Y, err := preprocessing.OneHot(labels, k)
	if err != nil {
		panic(err)
	}
	return Y
}
