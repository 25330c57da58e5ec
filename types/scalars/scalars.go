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

// Package scalars defines the scalar-type contract consumed by the tape package,
// along with generic versions of the named transcendental functions it requires.
//
// A differentiable scalar type must support field arithmetic (+, -, *, /, unary
// negation) and the named functions below (Exp, Ln, Sin, Atan2, ...), all with
// IEEE-754 NaN/Infinity propagation. For Go that means the native float types:
// the [Float] constraint covers `~float32 | ~float64`, and every function here is
// generic over it, converting through float64 for the actual computation, the
// same way element-wise ops are implemented elsewhere in this code base.
package scalars

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Float is the constraint on scalar types the tape can differentiate through:
// any type whose underlying type is float32 or float64.
type Float = constraints.Float

// Exp returns e**x.
func Exp[T Float](x T) T { return T(math.Exp(float64(x))) }

// Exp2 returns 2**x.
func Exp2[T Float](x T) T { return T(math.Exp2(float64(x))) }

// Exp10 returns 10**x.
func Exp10[T Float](x T) T { return T(math.Pow(10, float64(x))) }

// Ln returns the natural logarithm of x.
func Ln[T Float](x T) T { return T(math.Log(float64(x))) }

// Log2 returns the base-2 logarithm of x.
func Log2[T Float](x T) T { return T(math.Log2(float64(x))) }

// Log10 returns the base-10 logarithm of x.
func Log10[T Float](x T) T { return T(math.Log10(float64(x))) }

// Sqrt returns the square root of x.
func Sqrt[T Float](x T) T { return T(math.Sqrt(float64(x))) }

// Cbrt returns the cube root of x.
func Cbrt[T Float](x T) T { return T(math.Cbrt(float64(x))) }

// Pow returns x**y.
func Pow[T Float](x, y T) T { return T(math.Pow(float64(x), float64(y))) }

// Sin returns the sine of x (in radians).
func Sin[T Float](x T) T { return T(math.Sin(float64(x))) }

// Cos returns the cosine of x.
func Cos[T Float](x T) T { return T(math.Cos(float64(x))) }

// Tan returns the tangent of x.
func Tan[T Float](x T) T { return T(math.Tan(float64(x))) }

// Asin returns the arcsine of x.
func Asin[T Float](x T) T { return T(math.Asin(float64(x))) }

// Acos returns the arccosine of x.
func Acos[T Float](x T) T { return T(math.Acos(float64(x))) }

// Atan returns the arctangent of x.
func Atan[T Float](x T) T { return T(math.Atan(float64(x))) }

// Atan2 returns the arc tangent of y/x, using the signs of both to determine
// the quadrant of the result.
func Atan2[T Float](y, x T) T { return T(math.Atan2(float64(y), float64(x))) }

// Sinh returns the hyperbolic sine of x.
func Sinh[T Float](x T) T { return T(math.Sinh(float64(x))) }

// Cosh returns the hyperbolic cosine of x.
func Cosh[T Float](x T) T { return T(math.Cosh(float64(x))) }

// Tanh returns the hyperbolic tangent of x.
func Tanh[T Float](x T) T { return T(math.Tanh(float64(x))) }

// Asinh returns the inverse hyperbolic sine of x.
func Asinh[T Float](x T) T { return T(math.Asinh(float64(x))) }

// Acosh returns the inverse hyperbolic cosine of x.
func Acosh[T Float](x T) T { return T(math.Acosh(float64(x))) }

// Atanh returns the inverse hyperbolic tangent of x.
func Atanh[T Float](x T) T { return T(math.Atanh(float64(x))) }

// Floor returns the greatest integer value <= x.
func Floor[T Float](x T) T { return T(math.Floor(float64(x))) }

// Abs returns the absolute value of x.
func Abs[T Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// IsNaN reports whether x is an IEEE-754 "not-a-number" value.
func IsNaN[T Float](x T) bool { return math.IsNaN(float64(x)) }

// IsInf reports whether x is an infinity, according to sign (see [math.IsInf]).
func IsInf[T Float](x T, sign int) bool { return math.IsInf(float64(x), sign) }
