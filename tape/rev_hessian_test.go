/*
 *	Copyright 2023 Jan Pfeifer
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

package tape_test

import (
	"math"
	"testing"

	. "github.com/gomlx/autodiff/tape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkHessian verifies gradient and Hessian of build at the given point
// against the expected matrices, and that the Hessian is symmetric.
func checkHessian(t *testing.T, name string, build buildFn, at []float64, wantHessian [][]float64, tol float64) {
	t.Helper()
	tp, _ := record(build, at, WithCurvature())
	hessian, err := tp.ReverseAccumulateHessian()
	require.NoErrorf(t, err, "%s: ReverseAccumulateHessian", name)
	require.Lenf(t, hessian, len(at), "%s: Hessian rows", name)
	for ii := range hessian {
		require.Lenf(t, hessian[ii], len(at), "%s: Hessian row %d", name, ii)
		for jj := range hessian[ii] {
			assert.Equalf(t, hessian[jj][ii], hessian[ii][jj],
				"%s: Hessian symmetry at (%d,%d)", name, ii, jj)
			assert.InDeltaf(t, wantHessian[ii][jj], hessian[ii][jj], tol,
				"%s: H[%d][%d]", name, ii, jj)
		}
	}
}

func TestHessianClosedForms(t *testing.T) {
	// f(x,y) = x·y: constant Hessian [[0,1],[1,0]].
	checkHessian(t, "Mul",
		func(tp *Tape[float64], xs []Variable[float64]) Variable[float64] { return tp.Mul(xs[0], xs[1]) },
		[]float64{1.3, 2.7},
		[][]float64{{0, 1}, {1, 0}}, 1e-15)

	// f(x) = x⁴ built from multiplications: f''(x) = 12x².
	checkHessian(t, "FourthPower",
		func(tp *Tape[float64], xs []Variable[float64]) Variable[float64] {
			return tp.Mul(tp.Mul(xs[0], xs[0]), tp.Mul(xs[0], xs[0]))
		},
		[]float64{1.7},
		[][]float64{{12 * 1.7 * 1.7}}, 1e-12)

	// f(x,y) = x²y + y³: Hxx=2y, Hxy=2x, Hyy=6y.
	checkHessian(t, "Polynomial",
		func(tp *Tape[float64], xs []Variable[float64]) Variable[float64] {
			return tp.Add(tp.Mul(tp.Mul(xs[0], xs[0]), xs[1]), tp.PowInt(xs[1], 3))
		},
		[]float64{0.8, 1.4},
		[][]float64{{2 * 1.4, 2 * 0.8}, {2 * 0.8, 6 * 1.4}}, 1e-12)
}

func TestHessianTranscendental(t *testing.T) {
	// Reference values computed independently for the fixture functions.
	checkHessian(t, "SinLnExp",
		func(tp *Tape[float64], xs []Variable[float64]) Variable[float64] {
			return tp.Div(tp.Mul(tp.Sin(xs[0]), tp.Ln(xs[0])), tp.Exp(tp.Negate(xs[0])))
		},
		[]float64{1.23},
		[][]float64{{5.444522947998282}}, 1e-10)

	checkHessian(t, "ThreeVars",
		func(tp *Tape[float64], xs []Variable[float64]) Variable[float64] {
			return tp.Div(tp.Cos(xs[0]), tp.Mul(tp.Add(xs[0], xs[1]), tp.Sin(xs[2])))
		},
		[]float64{1.23, 0.66, 2.34},
		[][]float64{
			{0.6261461305189455, 0.5050519532842153, -0.7980381386329247},
			{0.5050519532842153, 0.13781438812996352, -0.1260832962626385},
			{-0.7980381386329247, -0.1260832962626385, 0.707546520412796},
		}, 1e-10)

	checkHessian(t, "Pow",
		func(tp *Tape[float64], xs []Variable[float64]) Variable[float64] { return tp.Pow(xs[0], xs[1]) },
		[]float64{1.6, 2.3},
		[][]float64{
			{3.4427634458627097, 3.8338030600667703},
			{3.8338030600667703, 0.6511460089945903},
		}, 1e-10)

	checkHessian(t, "Atan2",
		func(tp *Tape[float64], xs []Variable[float64]) Variable[float64] { return tp.Atan2(xs[0], xs[1]) },
		[]float64{0.7, 1.9},
		[][]float64{
			{-0.15823914336704342, -0.1856038072575848},
			{-0.1856038072575848, 0.15823914336704342},
		}, 1e-10)

	// Operand reuse across nodes: x²+x·y+sin(x·y).
	checkHessian(t, "SharedOperands",
		func(tp *Tape[float64], xs []Variable[float64]) Variable[float64] {
			xy := tp.Mul(xs[0], xs[1])
			return tp.Add(tp.Add(tp.Mul(xs[0], xs[0]), xy), tp.Sin(xy))
		},
		[]float64{0.8, 1.4},
		[][]float64{
			{0.23580313333405045, 0.42756995103902684},
			{0.42756995103902684, -0.5760642829929633},
		}, 1e-10)
}

// The closed-form checks above exercise each primitive's second partials; this
// one cross-checks the full edge-pushing pass on a composite with shared
// operands against central differences of the first-order gradient.
func TestHessianFiniteDifferences(t *testing.T) {
	build := func(tp *Tape[float64], xs []Variable[float64]) Variable[float64] {
		xy := tp.Mul(xs[0], xs[1])
		p := tp.Pow(xs[0], xs[2])
		a := tp.Atan2(xy, p)
		return tp.Div(a, tp.Log(xs[1], xs[2]))
	}
	at := []float64{1.3, 0.8, 2.1}

	tp, _ := record(build, at, WithCurvature())
	hessian, err := tp.ReverseAccumulateHessian()
	require.NoError(t, err)

	gradAt := func(xs []float64) []float64 {
		gtp, _ := record(build, xs)
		grad, err := gtp.ReverseAccumulate()
		require.NoError(t, err)
		return grad
	}
	const h = 1e-5
	for jj := range at {
		bumped := make([]float64, len(at))
		copy(bumped, at)
		bumped[jj] = at[jj] + h
		gradPlus := gradAt(bumped)
		bumped[jj] = at[jj] - h
		gradMinus := gradAt(bumped)
		for ii := range at {
			want := (gradPlus[ii] - gradMinus[ii]) / (2 * h)
			assert.InDeltaf(t, want, hessian[ii][jj], 1e-5,
				"H[%d][%d] vs central differences of the gradient", ii, jj)
		}
	}
}

func TestReverseAccumulateBoth(t *testing.T) {
	build := func(tp *Tape[float64], xs []Variable[float64]) Variable[float64] {
		return tp.Div(tp.Cos(xs[0]), tp.Mul(tp.Add(xs[0], xs[1]), tp.Sin(xs[2])))
	}
	at := []float64{1.23, 0.66, 2.34}

	tp, _ := record(build, at, WithCurvature())
	grad, hessian, err := tp.ReverseAccumulateBoth()
	require.NoError(t, err)

	// The fused pass must agree with the separate entry points exactly.
	gradOnly, err := tp.ReverseAccumulate()
	require.NoError(t, err)
	require.Equal(t, gradOnly, grad)
	hessianOnly, err := tp.ReverseAccumulateHessian()
	require.NoError(t, err)
	require.Equal(t, hessianOnly, hessian)

	// And with the gradient recorded on a plain tape.
	plain, _ := record(build, at)
	plainGrad, err := plain.ReverseAccumulate()
	require.NoError(t, err)
	require.Equal(t, plainGrad, grad)
}

func TestHessianPartialAndSeed(t *testing.T) {
	build := func(tp *Tape[float64], xs []Variable[float64]) Variable[float64] {
		return tp.Mul(tp.Mul(xs[0], xs[0]), xs[1])
	}
	at := []float64{0.8, 1.4}
	tp, _ := record(build, at, WithCurvature())

	full, err := tp.ReverseAccumulateHessian()
	require.NoError(t, err)
	atLast, err := tp.ReverseAccumulateHessian(StopAt(tp.NumNodes() - 1))
	require.NoError(t, err)
	require.Equal(t, full, atLast)

	// Seeds scale the Hessian linearly too.
	scaled, err := tp.ReverseAccumulateHessian(WithSeed(2))
	require.NoError(t, err)
	for ii := range full {
		for jj := range full[ii] {
			assert.Equal(t, 2*full[ii][jj], scaled[ii][jj])
		}
	}

	// Stopping at node 2 (x·x) gives the Hessian of x² alone.
	partial, err := tp.ReverseAccumulateHessian(StopAt(2))
	require.NoError(t, err)
	require.InDelta(t, 2.0, partial[0][0], 1e-15)
	require.Zero(t, partial[0][1])
	require.Zero(t, partial[1][1])
}

func TestHessianCustomOperations(t *testing.T) {
	// exp(2x) as a custom unary with explicit derivatives.
	checkHessian(t, "CustomUnary2",
		func(tp *Tape[float64], xs []Variable[float64]) Variable[float64] {
			exp2x := func(x float64) float64 { return math.Exp(2 * x) }
			return tp.CustomUnary2(xs[0],
				exp2x,
				func(x float64) float64 { return 2 * exp2x(x) },
				func(x float64) float64 { return 4 * exp2x(x) })
		},
		[]float64{0.3},
		[][]float64{{4 * 1.8221188003905089}}, 1e-10) // 4·e^0.6

	// x·y² as a custom binary with explicit second partials.
	checkHessian(t, "CustomBinary2",
		func(tp *Tape[float64], xs []Variable[float64]) Variable[float64] {
			return tp.CustomBinary2(xs[0], xs[1],
				func(x, y float64) float64 { return x * y * y },
				func(x, y float64) float64 { return y * y },
				func(x, y float64) float64 { return 2 * x * y },
				func(x, y float64) float64 { return 0 },
				func(x, y float64) float64 { return 2 * y },
				func(x, y float64) float64 { return 2 * x })
		},
		[]float64{1.1, 0.9},
		[][]float64{{0, 2 * 0.9}, {2 * 0.9, 2 * 1.1}}, 1e-12)
}

func TestHessianWithoutCurvaturePanics(t *testing.T) {
	tp := New[float64]()
	x := tp.CreateVariable(1)
	_ = tp.Exp(x)
	require.Panics(t, func() { _, _ = tp.ReverseAccumulateHessian() })
	require.Panics(t, func() { _, _, _ = tp.ReverseAccumulateBoth() })
	require.False(t, tp.IsTrackingCurvature())
}
