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

// Power and root primitives.

// Pow records x**y for two variables.
func (t *Tape[T]) Pow(x, y Variable[T]) Variable[T] {
	v := scalars.Pow(x.Value, y.Value)
	lnX := scalars.Ln(x.Value)
	dX := y.Value * scalars.Pow(x.Value, y.Value-1)
	return t.binary(x, y, v,
		dX,
		v*lnX,
		y.Value*(y.Value-1)*scalars.Pow(x.Value, y.Value-2),
		scalars.Pow(x.Value, y.Value-1)*(1+y.Value*lnX),
		v*lnX*lnX)
}

// PowScalar records x**c for a plain constant exponent c.
func (t *Tape[T]) PowScalar(x Variable[T], c T) Variable[T] {
	return t.unary(x, scalars.Pow(x.Value, c),
		c*scalars.Pow(x.Value, c-1),
		c*(c-1)*scalars.Pow(x.Value, c-2))
}

// PowInt records x**n for a plain integer exponent n.
func (t *Tape[T]) PowInt(x Variable[T], n int) Variable[T] {
	c := T(n)
	return t.unary(x, scalars.Pow(x.Value, c),
		c*scalars.Pow(x.Value, c-1),
		c*(c-1)*scalars.Pow(x.Value, c-2))
}

// Sqrt records the square root of x.
func (t *Tape[T]) Sqrt(x Variable[T]) Variable[T] {
	v := scalars.Sqrt(x.Value)
	return t.unary(x, v, 1/(2*v), -1/(4*x.Value*v))
}

// Cbrt records the cube root of x.
func (t *Tape[T]) Cbrt(x Variable[T]) Variable[T] {
	v := scalars.Cbrt(x.Value)
	vv := v * v
	return t.unary(x, v, 1/(3*vv), -2/(9*vv*x.Value))
}

// Root records the n-th root of x, x**(1/n), for a variable degree n.
func (t *Tape[T]) Root(x, n Variable[T]) Variable[T] {
	invN := 1 / n.Value
	v := scalars.Pow(x.Value, invN)
	lnX := scalars.Ln(x.Value)
	nn := n.Value * n.Value
	dX := scalars.Pow(x.Value, invN-1) * invN
	return t.binary(x, n, v,
		dX,
		-v*lnX/nn,
		invN*(invN-1)*scalars.Pow(x.Value, invN-2),
		-(scalars.Pow(x.Value, invN-1)/nn)*(1+lnX*invN),
		(v*lnX/(nn*n.Value))*(lnX*invN+2))
}
