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

// Package tape implements reverse-mode automatic differentiation of scalar
// computations.
//
// A [Tape] records a computation as an append-only arena of fixed-size nodes,
// one per primitive operation. Each node stores the local partial derivatives
// ("weights") of its output with respect to its one or two operands, plus the
// operands' node indices. Because nodes are appended in execution order, the
// arena is topologically sorted by construction and gradients are computed by a
// single O(N) backward scan ([Tape.ReverseAccumulate]). A tape created with
// [WithCurvature] additionally records local second partials, enabling Hessians
// via the same backward traversal ([Tape.ReverseAccumulateHessian],
// [Tape.ReverseAccumulateBoth]).
//
// Usage:
//
//	t := tape.New[float64]()
//	x := t.CreateVariable(1.23)
//	y := t.Div(t.Mul(t.Sin(x), t.Ln(x)), t.Exp(t.Negate(x)))
//	grad, err := t.ReverseAccumulate()
//	// grad[0] == dy/dx evaluated at 1.23; y.Value is the forward value.
//
// A Tape is not safe for concurrent recording: it must be built by one logical
// goroutine at a time. Reverse accumulation is a read-only traversal, safe to
// run concurrently across independent tapes but never concurrently with
// recording on the same tape. Nodes are created once and never mutated or
// removed; a fresh computation requires a fresh Tape.
package tape

import (
	"math"

	. "github.com/gomlx/exceptions"

	"github.com/gomlx/autodiff/types/scalars"
)

// Variable is a handle to a recorded value: the index of its node in the
// owning tape plus its forward value. Variables are created only by
// [Tape.CreateVariable] or returned by recording methods, and are only valid
// for the lifetime of the Tape that created them.
type Variable[T scalars.Float] struct {
	// Index of the node backing this variable in its Tape.
	// When recorded with tracking disabled the index is not backed by a node
	// and is only meaningful to carry the forward value -- see [Tape.SetTracking].
	Index int

	// Value computed during the forward pass.
	Value T
}

// Node is one recorded primitive operation: the local partial derivatives of
// its output with respect to its parents, and the parents' node indices.
//
// Root nodes (created by [Tape.CreateVariable]) self-reference with zero
// weights, so they are inert during the backward scan. Unary operations are
// stored as degenerate binary nodes whose Parent1 is the node's own index with
// Weight1 zero: every node has the same fixed size, which keeps the arena
// cache-friendly and the backward inner loop branch-free.
type Node[T scalars.Float] struct {
	// Weight0 is ∂output/∂parent0; Weight1 is ∂output/∂parent1.
	Weight0, Weight1 T

	// Parent0 and Parent1 are indices into the owning tape's arena.
	// For non-root nodes Parent0 < own index and Parent1 <= own index.
	Parent0, Parent1 int32
}

// curvature holds the local second partials of one node, recorded only on
// tapes created with [WithCurvature]. Kept in a parallel arena so that Node
// stays fixed-size and the first-order scan is untouched.
type curvature[T scalars.Float] struct {
	// W00 = ∂²output/∂parent0², W01 = ∂²output/∂parent0∂parent1,
	// W11 = ∂²output/∂parent1².
	W00, W01, W11 T
}

// Tape records a scalar computation as a DAG of primitive operations and
// computes its derivatives by reverse accumulation. See the package
// documentation for an overview and the concurrency contract.
type Tape[T scalars.Float] struct {
	nodes        []Node[T]
	curv         []curvature[T] // parallel to nodes; only when curvature is on.
	numVariables int
	tracking     bool
	curvature    bool
}

// TapeOption configures a [Tape] at construction. See [WithCurvature] and
// [WithCapacity].
type TapeOption func(*tapeConfig)

type tapeConfig struct {
	curvature bool
	capacity  int
}

// WithCurvature makes the tape also record local second partial derivatives,
// enabling [Tape.ReverseAccumulateHessian] and [Tape.ReverseAccumulateBoth].
// It roughly doubles the per-node memory and adds a small cost to each
// recording call.
func WithCurvature() TapeOption {
	return func(c *tapeConfig) { c.curvature = true }
}

// WithCapacity pre-sizes the node arena for an expected number of nodes,
// avoiding re-allocations while recording large computations.
func WithCapacity(n int) TapeOption {
	return func(c *tapeConfig) { c.capacity = n }
}

const defaultCapacity = 64

// maxArenaNodes caps the arena size: parent references are int32, so a node
// index must fit in one.
const maxArenaNodes = math.MaxInt32

// checkArenaLimit panics if appending to an arena with numNodes nodes would
// create an index that doesn't fit the int32 parent references.
func checkArenaLimit(numNodes int) {
	if numNodes >= maxArenaNodes {
		Panicf("tape: arena is full at %d nodes, node indices must fit in int32", numNodes)
	}
}

// New creates an empty Tape with tracking enabled.
func New[T scalars.Float](opts ...TapeOption) *Tape[T] {
	cfg := tapeConfig{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}
	t := &Tape[T]{
		nodes:     make([]Node[T], 0, cfg.capacity),
		tracking:  true,
		curvature: cfg.curvature,
	}
	if t.curvature {
		t.curv = make([]curvature[T], 0, cfg.capacity)
	}
	return t
}

// CreateVariable appends a root node and returns a Variable wrapping it and
// the given seed value. Root nodes self-reference with zero weights and mark
// the leaves of the computation: the gradient returned by reverse accumulation
// has one entry per variable, in creation order.
//
// All variables must be created before the first recording call on the tape --
// the gradient extraction contract requires roots to occupy the leading
// indices. Creating a variable after recording started panics.
func (t *Tape[T]) CreateVariable(seed T) Variable[T] {
	if len(t.nodes) != t.numVariables {
		Panicf("tape.CreateVariable: called after recording started (%d variables, %d nodes); "+
			"create all variables before recording operations", t.numVariables, len(t.nodes))
	}
	checkArenaLimit(len(t.nodes))
	idx := len(t.nodes)
	t.nodes = append(t.nodes, Node[T]{Parent0: int32(idx), Parent1: int32(idx)})
	if t.curvature {
		t.curv = append(t.curv, curvature[T]{})
	}
	t.numVariables++
	return Variable[T]{Index: idx, Value: seed}
}

// SetTracking turns recording on or off. While tracking is off every recording
// method still computes the forward value but appends no node; the returned
// Variable then carries only a forward value, and feeding it back into
// recording calls once tracking is re-enabled is a caller error the tape does
// not detect.
func (t *Tape[T]) SetTracking(tracking bool) {
	t.tracking = tracking
}

// IsTracking reports whether recording methods currently append nodes.
func (t *Tape[T]) IsTracking() bool { return t.tracking }

// IsTrackingCurvature reports whether the tape records second partials, that
// is, whether it was created with [WithCurvature].
func (t *Tape[T]) IsTrackingCurvature() bool { return t.curvature }

// NumNodes returns the number of recorded nodes, roots included.
func (t *Tape[T]) NumNodes() int { return len(t.nodes) }

// NumVariables returns the number of root nodes created by
// [Tape.CreateVariable].
func (t *Tape[T]) NumVariables() int { return t.numVariables }

// NodeAt returns a copy of the node at the given index.
// It panics if index is out of range.
func (t *Tape[T]) NodeAt(index int) Node[T] {
	if index < 0 || index >= len(t.nodes) {
		Panicf("tape.NodeAt: index %d out of range [0, %d)", index, len(t.nodes))
	}
	return t.nodes[index]
}

// CurvatureAt returns the recorded second partials (w00, w01, w11) of the node
// at the given index. It panics if the tape was created without
// [WithCurvature] or if index is out of range.
func (t *Tape[T]) CurvatureAt(index int) (w00, w01, w11 T) {
	if !t.curvature {
		Panicf("tape.CurvatureAt: tape created without curvature tracking, see WithCurvature")
	}
	if index < 0 || index >= len(t.curv) {
		Panicf("tape.CurvatureAt: index %d out of range [0, %d)", index, len(t.curv))
	}
	c := t.curv[index]
	return c.W00, c.W01, c.W11
}

// checkOperand panics if the variable's index cannot refer to a node of this
// tape. It catches variables from other tapes and stale untracked variables;
// it cannot catch every misuse, which remains a documented caller contract.
func (t *Tape[T]) checkOperand(x Variable[T]) {
	if x.Index < 0 || x.Index >= len(t.nodes) {
		Panicf("tape: operand index %d out of range [0, %d): variable does not belong to "+
			"this tape (or was recorded while tracking was off)", x.Index, len(t.nodes))
	}
}

// unary appends a node for a unary operation on x, with local derivative w0
// and, when curvature is tracked, local second derivative w00. The node's
// second parent is the node itself, with zero weight.
func (t *Tape[T]) unary(x Variable[T], value, w0, w00 T) Variable[T] {
	if !t.tracking {
		return Variable[T]{Index: len(t.nodes), Value: value}
	}
	t.checkOperand(x)
	checkArenaLimit(len(t.nodes))
	idx := len(t.nodes)
	t.nodes = append(t.nodes, Node[T]{
		Weight0: w0,
		Parent0: int32(x.Index),
		Parent1: int32(idx),
	})
	if t.curvature {
		t.curv = append(t.curv, curvature[T]{W00: w00})
	}
	return Variable[T]{Index: idx, Value: value}
}

// binary appends a node for a binary operation on x and y, with local
// derivatives w0, w1 and, when curvature is tracked, second partials
// w00, w01, w11.
func (t *Tape[T]) binary(x, y Variable[T], value, w0, w1, w00, w01, w11 T) Variable[T] {
	if !t.tracking {
		return Variable[T]{Index: len(t.nodes), Value: value}
	}
	t.checkOperand(x)
	t.checkOperand(y)
	checkArenaLimit(len(t.nodes))
	idx := len(t.nodes)
	t.nodes = append(t.nodes, Node[T]{
		Weight0: w0,
		Weight1: w1,
		Parent0: int32(x.Index),
		Parent1: int32(y.Index),
	})
	if t.curvature {
		t.curv = append(t.curv, curvature[T]{W00: w00, W01: w01, W11: w11})
	}
	return Variable[T]{Index: idx, Value: value}
}
