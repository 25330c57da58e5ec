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

import (
	"github.com/pkg/errors"
)

// This file implements first-order reverse accumulation: a single backward
// linear scan over the tape, accumulating adjoints (∂output/∂node) from the
// seed node down to the roots. Because nodes are appended in execution order,
// by the time node i is reached every node consuming its output has already
// pushed its contribution, so the scan needs no bookkeeping beyond the adjoint
// buffer itself. Self-referencing roots are naturally inert
// (adjoint[self] += adjoint[self]*0), so the loop needs no special case beyond
// its lower bound.

var (
	// ErrNoRootNodes is returned by the ReverseAccumulate methods when the tape
	// has no variables to differentiate with respect to.
	ErrNoRootNodes = errors.New("no root nodes")

	// ErrIndexOutOfRange is returned by the ReverseAccumulate methods when a
	// stop index given with [StopAt] does not refer to a node of the tape.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// AccumulateOption configures a reverse accumulation pass. See [WithSeed] and
// [StopAt].
type AccumulateOption func(*accumulateConfig)

type accumulateConfig struct {
	seed    float64
	stop    int
	hasStop bool
}

// WithSeed sets the adjoint seeded at the output node, by default the
// multiplicative identity (1). Gradients scale linearly with it.
func WithSeed(seed float64) AccumulateOption {
	return func(c *accumulateConfig) { c.seed = seed }
}

// StopAt makes the backward pass start at the node with the given index
// instead of the last recorded node, computing the gradient of that node's
// output: a partial backward pass over the prefix tape [0, index]. Entries for
// variables not reachable from the node are zero.
func StopAt(index int) AccumulateOption {
	return func(c *accumulateConfig) {
		c.stop = index
		c.hasStop = true
	}
}

// resolveAccumulateConfig applies options and validates them against the tape.
func (t *Tape[T]) resolveAccumulateConfig(opts []AccumulateOption) (accumulateConfig, error) {
	cfg := accumulateConfig{seed: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	if t.numVariables == 0 {
		return cfg, errors.WithMessagef(ErrNoRootNodes, "tape has %d nodes but no variables were created", len(t.nodes))
	}
	if !cfg.hasStop {
		cfg.stop = len(t.nodes) - 1
	} else if cfg.stop < 0 || cfg.stop >= len(t.nodes) {
		return cfg, errors.WithMessagef(ErrIndexOutOfRange, "stop index %d, tape has %d nodes", cfg.stop, len(t.nodes))
	}
	return cfg, nil
}

// ReverseAccumulate computes the gradient of the output node (the last
// recorded node, or the node selected with [StopAt]) with respect to every
// variable, in creation order. It is a pure read-only O(N) traversal of the
// tape with O(N) scratch space.
//
// It returns [ErrNoRootNodes] if no variables were created and
// [ErrIndexOutOfRange] for an invalid [StopAt] index (match with [errors.Is]).
func (t *Tape[T]) ReverseAccumulate(opts ...AccumulateOption) ([]T, error) {
	cfg, err := t.resolveAccumulateConfig(opts)
	if err != nil {
		return nil, err
	}
	adjoint := t.firstOrder(cfg)
	return adjoint[:t.numVariables], nil
}

// firstOrder runs the backward scan and returns the adjoint buffer. The
// gradient is its leading numVariables entries.
func (t *Tape[T]) firstOrder(cfg accumulateConfig) []T {
	size := cfg.stop + 1
	if size < t.numVariables {
		size = t.numVariables
	}
	adjoint := make([]T, size)
	adjoint[cfg.stop] = T(cfg.seed)
	for i := cfg.stop; i >= t.numVariables; i-- {
		node := &t.nodes[i]
		a := adjoint[i]
		adjoint[node.Parent0] += a * node.Weight0
		adjoint[node.Parent1] += a * node.Weight1
	}
	return adjoint
}
