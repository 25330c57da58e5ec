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

// Trigonometric primitives. Angles are in radians.

// Sin records the sine of x.
func (t *Tape[T]) Sin(x Variable[T]) Variable[T] {
	s := scalars.Sin(x.Value)
	return t.unary(x, s, scalars.Cos(x.Value), -s)
}

// Cos records the cosine of x.
func (t *Tape[T]) Cos(x Variable[T]) Variable[T] {
	c := scalars.Cos(x.Value)
	return t.unary(x, c, -scalars.Sin(x.Value), -c)
}

// Tan records the tangent of x.
func (t *Tape[T]) Tan(x Variable[T]) Variable[T] {
	v := scalars.Tan(x.Value)
	c := scalars.Cos(x.Value)
	sec2 := 1 / (c * c)
	return t.unary(x, v, sec2, 2*v*sec2)
}

// Asin records the arcsine of x.
func (t *Tape[T]) Asin(x Variable[T]) Variable[T] {
	u := 1 - x.Value*x.Value
	s := scalars.Sqrt(u)
	return t.unary(x, scalars.Asin(x.Value), 1/s, x.Value/(u*s))
}

// Acos records the arccosine of x.
func (t *Tape[T]) Acos(x Variable[T]) Variable[T] {
	u := 1 - x.Value*x.Value
	s := scalars.Sqrt(u)
	return t.unary(x, scalars.Acos(x.Value), -1/s, -x.Value/(u*s))
}

// Atan records the arctangent of x.
func (t *Tape[T]) Atan(x Variable[T]) Variable[T] {
	u := 1 + x.Value*x.Value
	return t.unary(x, scalars.Atan(x.Value), 1/u, -2*x.Value/(u*u))
}

// Atan2 records the two-argument arctangent of y/x, with quadrant determined
// by the signs of both arguments.
//
// The recorded weights are exactly x/(x²+y²) for y and -y/(x²+y²) for x.
func (t *Tape[T]) Atan2(y, x Variable[T]) Variable[T] {
	s := x.Value*x.Value + y.Value*y.Value
	ss := s * s
	return t.binary(y, x, scalars.Atan2(y.Value, x.Value),
		x.Value/s, -y.Value/s,
		-2*x.Value*y.Value/ss,
		(y.Value*y.Value-x.Value*x.Value)/ss,
		2*x.Value*y.Value/ss)
}
