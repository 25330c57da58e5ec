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
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildScanTape records a mixed add/mul chain over two variables, sized to
// numNodes total nodes.
func buildScanTape(numNodes int) *Tape[float64] {
	t := New[float64](WithCapacity(numNodes))
	x := t.CreateVariable(1.0001)
	y := t.CreateVariable(0.9999)
	v := x
	for t.NumNodes() < numNodes {
		if t.NumNodes()%2 == 0 {
			v = t.Mul(v, y)
		} else {
			v = t.Add(v, x)
		}
	}
	return t
}

// asLinkedNodes copies a tape's arena into the linked-list variant.
func asLinkedNodes(t *Tape[float64]) *linkedNodes[float64] {
	l := &linkedNodes[float64]{}
	for ii := 0; ii < t.NumNodes(); ii++ {
		l.append(t.nodes[ii])
	}
	return l
}

func TestLinkedNodesMatchesSlice(t *testing.T) {
	tp := buildScanTape(64)
	want, err := tp.ReverseAccumulate()
	require.NoError(t, err)
	l := asLinkedNodes(tp)
	require.Equal(t, tp.NumNodes(), l.len)
	got := l.reverseScan(tp.NumVariables(), 1)
	require.Equal(t, want, got)
}

// The linked-list arena is kept around only to justify the contiguous slice:
// the backward scan over it chases one pointer per node.
func BenchmarkReverseAccumulateStorage(b *testing.B) {
	for _, numNodes := range []int{128, 1024, 16384} {
		tp := buildScanTape(numNodes)
		cfg := accumulateConfig{seed: 1, stop: tp.NumNodes() - 1}
		b.Run(fmt.Sprintf("slice-%d", numNodes), func(b *testing.B) {
			for ii := 0; ii < b.N; ii++ {
				_ = tp.firstOrder(cfg)
			}
		})
		l := asLinkedNodes(tp)
		b.Run(fmt.Sprintf("linked-%d", numNodes), func(b *testing.B) {
			for ii := 0; ii < b.N; ii++ {
				_ = l.reverseScan(tp.numVariables, 1)
			}
		})
	}
}
