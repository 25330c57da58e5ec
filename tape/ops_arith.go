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

import "github.com/gomlx/autodiff/types/scalars"

// This file records the arithmetic primitives. Each recording method follows
// one protocol: compute the forward value with the scalar type's native
// operator, compute the local partials with respect to each Variable operand
// (plain scalar constants contribute no node reference), append a node
// referencing the operands' indices and return a Variable wrapping the new
// node. The "Scalar" suffixed variants take one operand as a plain constant,
// mirroring the AddScalar/MulScalar/... naming used for scalar broadcasts
// elsewhere in this code base.

// Add records x + y.
func (t *Tape[T]) Add(x, y Variable[T]) Variable[T] {
	return t.binary(x, y, x.Value+y.Value, 1, 1, 0, 0, 0)
}

// AddScalar records x + c for a plain constant c.
func (t *Tape[T]) AddScalar(x Variable[T], c T) Variable[T] {
	return t.unary(x, x.Value+c, 1, 0)
}

// Sub records x - y.
func (t *Tape[T]) Sub(x, y Variable[T]) Variable[T] {
	return t.binary(x, y, x.Value-y.Value, 1, -1, 0, 0, 0)
}

// SubScalar records x - c for a plain constant c.
func (t *Tape[T]) SubScalar(x Variable[T], c T) Variable[T] {
	return t.unary(x, x.Value-c, 1, 0)
}

// ScalarSub records c - x for a plain constant c.
func (t *Tape[T]) ScalarSub(c T, x Variable[T]) Variable[T] {
	return t.unary(x, c-x.Value, -1, 0)
}

// Mul records x * y.
func (t *Tape[T]) Mul(x, y Variable[T]) Variable[T] {
	return t.binary(x, y, x.Value*y.Value, y.Value, x.Value, 0, 1, 0)
}

// MulScalar records x * c for a plain constant c.
func (t *Tape[T]) MulScalar(x Variable[T], c T) Variable[T] {
	return t.unary(x, x.Value*c, c, 0)
}

// Div records x / y.
//
// The recorded weights are exactly 1/y and -x/y².
func (t *Tape[T]) Div(x, y Variable[T]) Variable[T] {
	yy := y.Value * y.Value
	return t.binary(x, y, x.Value/y.Value,
		1/y.Value, -x.Value/yy,
		0, -1/yy, 2*x.Value/(yy*y.Value))
}

// DivScalar records x / c for a plain constant c.
func (t *Tape[T]) DivScalar(x Variable[T], c T) Variable[T] {
	return t.unary(x, x.Value/c, 1/c, 0)
}

// ScalarDiv records c / x for a plain constant c.
func (t *Tape[T]) ScalarDiv(c T, x Variable[T]) Variable[T] {
	xx := x.Value * x.Value
	return t.unary(x, c/x.Value, -c/xx, 2*c/(xx*x.Value))
}

// Mod records the floored modulo x mod y, defined as x - y*floor(x/y), so the
// result takes the sign of y. The recorded weights follow the same convention:
// ∂/∂x = 1 and ∂/∂y = -floor(x/y), the almost-everywhere derivatives of the
// floored definition; second partials are zero almost everywhere and recorded
// as zero. Note this differs from [math.Mod], which truncates.
func (t *Tape[T]) Mod(x, y Variable[T]) Variable[T] {
	q := scalars.Floor(x.Value / y.Value)
	return t.binary(x, y, x.Value-y.Value*q, 1, -q, 0, 0, 0)
}

// ModScalar records x mod c for a plain constant c, with the floored
// convention of [Tape.Mod].
func (t *Tape[T]) ModScalar(x Variable[T], c T) Variable[T] {
	q := scalars.Floor(x.Value / c)
	return t.unary(x, x.Value-c*q, 1, 0)
}

// ScalarMod records c mod x for a plain constant c, with the floored
// convention of [Tape.Mod].
func (t *Tape[T]) ScalarMod(c T, x Variable[T]) Variable[T] {
	q := scalars.Floor(c / x.Value)
	return t.unary(x, c-x.Value*q, -q, 0)
}

// Negate records -x.
func (t *Tape[T]) Negate(x Variable[T]) Variable[T] {
	return t.unary(x, -x.Value, -1, 0)
}
