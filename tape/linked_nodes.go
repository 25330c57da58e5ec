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

// linkedNodes is a linked-list arena, the storage alternative to the
// contiguous []Node slice the Tape uses. It exists only to be benchmarked
// against the slice arena (see BenchmarkReverseAccumulateStorage): the
// backward scan over it pays one pointer chase per node, which loses to the
// contiguous layout at common tape sizes. Not part of the public API.

type linkedNode[T scalars.Float] struct {
	node Node[T]
	prev *linkedNode[T]
}

type linkedNodes[T scalars.Float] struct {
	tail *linkedNode[T]
	len  int
}

func (l *linkedNodes[T]) append(node Node[T]) {
	l.tail = &linkedNode[T]{node: node, prev: l.tail}
	l.len++
}

// reverseScan accumulates adjoints walking the list tail to head, the
// linked-list equivalent of Tape.firstOrder over the full tape.
func (l *linkedNodes[T]) reverseScan(numVariables int, seed T) []T {
	adjoint := make([]T, l.len)
	adjoint[l.len-1] = seed
	i := l.len - 1
	for ln := l.tail; ln != nil && i >= numVariables; ln = ln.prev {
		node := &ln.node
		a := adjoint[i]
		adjoint[node.Parent0] += a * node.Weight0
		adjoint[node.Parent1] += a * node.Weight1
		i--
	}
	return adjoint[:numVariables]
}
