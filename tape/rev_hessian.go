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

// This file implements second-order reverse accumulation by edge pushing: a
// fused single backward pass that propagates both adjoints and curvature.
//
// The running state is the adjoint vector v plus a dense symmetric matrix H,
// where H[a][b] accumulates ∂²output/∂a∂b for live nodes a, b. Processing node
// i with parents p0, p1, first partials d0, d1 and local second partials
// w00, w01, w11 takes three steps, following the multivariate chain rule for
// composite second derivatives:
//
//  1. Pushing: interactions involving i are rewritten in terms of its parents.
//     The diagonal H[i][i] contributes dₐ·d_b·H[i][i] to every ordered parent
//     pair (a,b); an off-diagonal H[i][j] contributes dₐ·H[i][j] to (pₐ, j).
//  2. Creating: the node's own curvature enters as v[i] times its local second
//     partials, over ordered parent pairs.
//  3. Adjoint: v[pₐ] += v[i]·dₐ, the first-order rule.
//
// Ordered pairs make operand aliasing (Mul(x, x), unary self-parents) come out
// right with no special cases, and writing both triangles keeps H symmetric at
// every step -- rows are only ever read at columns j <= i, which is where the
// not-yet-processed interactions live. Each step touches at most a 2×2 block,
// so the pass is O(N) on top of the O(N²) sparsity scan of H's rows.

// ReverseAccumulateHessian computes the Hessian of the output node (the last
// recorded node, or the node selected with [StopAt]) with respect to every
// variable: a numVariables×numVariables matrix, symmetric by construction.
//
// The tape must have been created with [WithCurvature], otherwise it panics.
// Error cases are those of [Tape.ReverseAccumulate].
func (t *Tape[T]) ReverseAccumulateHessian(opts ...AccumulateOption) ([][]T, error) {
	t.assertCurvature("ReverseAccumulateHessian")
	cfg, err := t.resolveAccumulateConfig(opts)
	if err != nil {
		return nil, err
	}
	_, hessian := t.secondOrder(cfg)
	return hessian, nil
}

// ReverseAccumulateBoth computes gradient and Hessian in one fused backward
// pass; cheaper than separate [Tape.ReverseAccumulate] and
// [Tape.ReverseAccumulateHessian] calls.
//
// The tape must have been created with [WithCurvature], otherwise it panics.
func (t *Tape[T]) ReverseAccumulateBoth(opts ...AccumulateOption) ([]T, [][]T, error) {
	t.assertCurvature("ReverseAccumulateBoth")
	cfg, err := t.resolveAccumulateConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	adjoint, hessian := t.secondOrder(cfg)
	return adjoint[:t.numVariables], hessian, nil
}

func (t *Tape[T]) assertCurvature(op string) {
	if !t.curvature {
		Panicf("tape.%s: tape was created without curvature tracking, use WithCurvature", op)
	}
}

// secondOrder runs the fused backward pass, returning the full adjoint buffer
// and the leading numVariables×numVariables block of the curvature matrix.
func (t *Tape[T]) secondOrder(cfg accumulateConfig) ([]T, [][]T) {
	size := cfg.stop + 1
	if size < t.numVariables {
		size = t.numVariables
	}
	adjoint := make([]T, size)
	adjoint[cfg.stop] = T(cfg.seed)
	hessian := make([][]T, size)
	backing := make([]T, size*size)
	for i := range hessian {
		hessian[i] = backing[i*size : (i+1)*size]
	}

	for i := cfg.stop; i >= t.numVariables; i-- {
		node := &t.nodes[i]
		p0, p1 := node.Parent0, node.Parent1
		d0, d1 := node.Weight0, node.Weight1

		// Pushing: move interactions of node i down to its parents.
		row := hessian[i]
		for j := 0; j < i; j++ {
			w := row[j]
			if w == 0 {
				continue
			}
			hessian[p0][j] += d0 * w
			hessian[j][p0] += d0 * w
			hessian[p1][j] += d1 * w
			hessian[j][p1] += d1 * w
		}
		if w := row[i]; w != 0 {
			hessian[p0][p0] += d0 * d0 * w
			hessian[p0][p1] += d0 * d1 * w
			hessian[p1][p0] += d1 * d0 * w
			hessian[p1][p1] += d1 * d1 * w
		}

		// Creating: the node's local curvature, scaled by its adjoint.
		a := adjoint[i]
		c := &t.curv[i]
		if c.W00 != 0 {
			hessian[p0][p0] += a * c.W00
		}
		if c.W01 != 0 {
			hessian[p0][p1] += a * c.W01
			hessian[p1][p0] += a * c.W01
		}
		if c.W11 != 0 {
			hessian[p1][p1] += a * c.W11
		}

		// Adjoint: the first-order backward rule.
		adjoint[p0] += a * d0
		adjoint[p1] += a * d1
	}

	hessian = hessian[:t.numVariables]
	for i := range hessian {
		hessian[i] = hessian[i][:t.numVariables]
	}
	return adjoint, hessian
}
