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

package tape

import . "github.com/gomlx/exceptions"

// Caller-supplied operations: the caller provides the forward function and its
// derivative function(s), all evaluated at the recorded point. No symbolic
// differentiation is attempted -- the derivative functions are trusted as given.

// CustomUnary records fn(x) with local derivative dfn(x).
//
// On a tape created with [WithCurvature] use [Tape.CustomUnary2] instead, so
// the second derivative is recorded too; calling CustomUnary there panics
// rather than silently recording zero curvature.
func (t *Tape[T]) CustomUnary(x Variable[T], fn, dfn func(T) T) Variable[T] {
	if fn == nil || dfn == nil {
		Panicf("tape.CustomUnary: fn and dfn must both be non-nil")
	}
	if t.curvature {
		Panicf("tape.CustomUnary: tape tracks curvature, use CustomUnary2 and provide the second derivative")
	}
	return t.unary(x, fn(x.Value), dfn(x.Value), 0)
}

// CustomUnary2 records fn(x) with local first derivative dfn(x) and second
// derivative d2fn(x). The second derivative is only stored on tapes created
// with [WithCurvature].
func (t *Tape[T]) CustomUnary2(x Variable[T], fn, dfn, d2fn func(T) T) Variable[T] {
	if fn == nil || dfn == nil || d2fn == nil {
		Panicf("tape.CustomUnary2: fn, dfn and d2fn must all be non-nil")
	}
	return t.unary(x, fn(x.Value), dfn(x.Value), d2fn(x.Value))
}

// CustomBinary records fn(x, y) with local partials dfnX(x, y) = ∂fn/∂x and
// dfnY(x, y) = ∂fn/∂y.
//
// On a tape created with [WithCurvature] use [Tape.CustomBinary2] instead.
func (t *Tape[T]) CustomBinary(x, y Variable[T], fn, dfnX, dfnY func(x, y T) T) Variable[T] {
	if fn == nil || dfnX == nil || dfnY == nil {
		Panicf("tape.CustomBinary: fn, dfnX and dfnY must all be non-nil")
	}
	if t.curvature {
		Panicf("tape.CustomBinary: tape tracks curvature, use CustomBinary2 and provide the second partials")
	}
	return t.binary(x, y, fn(x.Value, y.Value), dfnX(x.Value, y.Value), dfnY(x.Value, y.Value), 0, 0, 0)
}

// CustomBinary2 records fn(x, y) with local first partials dfnX, dfnY and
// second partials d2fnXX = ∂²fn/∂x², d2fnXY = ∂²fn/∂x∂y, d2fnYY = ∂²fn/∂y².
// The second partials are only stored on tapes created with [WithCurvature].
func (t *Tape[T]) CustomBinary2(x, y Variable[T], fn, dfnX, dfnY, d2fnXX, d2fnXY, d2fnYY func(x, y T) T) Variable[T] {
	if fn == nil || dfnX == nil || dfnY == nil || d2fnXX == nil || d2fnXY == nil || d2fnYY == nil {
		Panicf("tape.CustomBinary2: all function arguments must be non-nil")
	}
	return t.binary(x, y, fn(x.Value, y.Value),
		dfnX(x.Value, y.Value), dfnY(x.Value, y.Value),
		d2fnXX(x.Value, y.Value), d2fnXY(x.Value, y.Value), d2fnYY(x.Value, y.Value))
}
