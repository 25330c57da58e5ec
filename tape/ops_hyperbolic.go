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

// Hyperbolic primitives.

// Sinh records the hyperbolic sine of x.
func (t *Tape[T]) Sinh(x Variable[T]) Variable[T] {
	v := scalars.Sinh(x.Value)
	return t.unary(x, v, scalars.Cosh(x.Value), v)
}

// Cosh records the hyperbolic cosine of x.
func (t *Tape[T]) Cosh(x Variable[T]) Variable[T] {
	v := scalars.Cosh(x.Value)
	return t.unary(x, v, scalars.Sinh(x.Value), v)
}

// Tanh records the hyperbolic tangent of x.
func (t *Tape[T]) Tanh(x Variable[T]) Variable[T] {
	v := scalars.Tanh(x.Value)
	c := scalars.Cosh(x.Value)
	sech2 := 1 / (c * c)
	return t.unary(x, v, sech2, -2*v*sech2)
}

// Asinh records the inverse hyperbolic sine of x.
func (t *Tape[T]) Asinh(x Variable[T]) Variable[T] {
	u := x.Value*x.Value + 1
	s := scalars.Sqrt(u)
	return t.unary(x, scalars.Asinh(x.Value), 1/s, -x.Value/(u*s))
}

// Acosh records the inverse hyperbolic cosine of x.
func (t *Tape[T]) Acosh(x Variable[T]) Variable[T] {
	u := x.Value*x.Value - 1
	s := scalars.Sqrt(u)
	return t.unary(x, scalars.Acosh(x.Value), 1/s, -x.Value/(u*s))
}

// Atanh records the inverse hyperbolic tangent of x.
func (t *Tape[T]) Atanh(x Variable[T]) Variable[T] {
	u := 1 - x.Value*x.Value
	return t.unary(x, scalars.Atanh(x.Value), 1/u, 2*x.Value/(u*u))
}
