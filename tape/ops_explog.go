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

// Exponential and logarithmic primitives. Domain violations (Ln of a negative
// number, etc.) are not checked: the scalar type's NaN/Inf propagation applies,
// to the forward value and weights alike.

// Exp records e**x.
func (t *Tape[T]) Exp(x Variable[T]) Variable[T] {
	v := scalars.Exp(x.Value)
	return t.unary(x, v, v, v)
}

// Exp2 records 2**x.
func (t *Tape[T]) Exp2(x Variable[T]) Variable[T] {
	v := scalars.Exp2(x.Value)
	ln2 := scalars.Ln2[T]()
	return t.unary(x, v, ln2*v, ln2*ln2*v)
}

// Exp10 records 10**x.
func (t *Tape[T]) Exp10(x Variable[T]) Variable[T] {
	v := scalars.Exp10(x.Value)
	ln10 := scalars.Ln10[T]()
	return t.unary(x, v, ln10*v, ln10*ln10*v)
}

// Ln records the natural logarithm of x.
func (t *Tape[T]) Ln(x Variable[T]) Variable[T] {
	return t.unary(x, scalars.Ln(x.Value), 1/x.Value, -1/(x.Value*x.Value))
}

// Log records the logarithm of x in the variable base b.
// For constant bases use [Tape.Log2], [Tape.Log10] or divide by a constant.
func (t *Tape[T]) Log(x, b Variable[T]) Variable[T] {
	lnB := scalars.Ln(b.Value)
	lnX := scalars.Ln(x.Value)
	return t.binary(x, b, lnX/lnB,
		1/(x.Value*lnB),
		-lnX/(b.Value*lnB*lnB),
		-1/(x.Value*x.Value*lnB),
		-1/(x.Value*b.Value*lnB*lnB),
		lnX*(lnB+2)/(b.Value*b.Value*lnB*lnB*lnB))
}

// Log2 records the base-2 logarithm of x.
func (t *Tape[T]) Log2(x Variable[T]) Variable[T] {
	ln2 := scalars.Ln2[T]()
	return t.unary(x, scalars.Log2(x.Value), 1/(x.Value*ln2), -1/(x.Value*x.Value*ln2))
}

// Log10 records the base-10 logarithm of x.
func (t *Tape[T]) Log10(x Variable[T]) Variable[T] {
	ln10 := scalars.Ln10[T]()
	return t.unary(x, scalars.Log10(x.Value), 1/(x.Value*ln10), -1/(x.Value*x.Value*ln10))
}
