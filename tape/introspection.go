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
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"k8s.io/klog/v2"
)

// Diagnostic node dump. This is display plumbing, not part of the
// correctness-critical path: streaming a very large tape can be arbitrarily
// slow, so the dump takes a context for cancellation and an output-count
// limit.

// DefaultMaxNodesToPrint is the node limit used by [Tape.WriteNodes] and
// [Tape.PrintNodes] when the given limit is zero or negative.
const DefaultMaxNodesToPrint = 100

// String implements fmt.Stringer with a one-line summary of the tape.
func (t *Tape[T]) String() string {
	return fmt.Sprintf("Tape[%s nodes, %s variables, tracking=%v, curvature=%v]",
		humanize.Comma(int64(len(t.nodes))), humanize.Comma(int64(t.numVariables)),
		t.tracking, t.curvature)
}

// WriteNodes streams a human-readable dump of up to limit nodes to w, for
// debugging. A non-positive limit means [DefaultMaxNodesToPrint]. It returns
// the context's error if ctx is canceled mid-stream, or the first write error.
func (t *Tape[T]) WriteNodes(ctx context.Context, w io.Writer, limit int) error {
	if limit <= 0 {
		limit = DefaultMaxNodesToPrint
	}
	if _, err := fmt.Fprintf(w, "%s\n", t); err != nil {
		return err
	}
	count := len(t.nodes)
	if count > limit {
		count = limit
	}
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			klog.V(1).Infof("tape.WriteNodes: canceled after %d of %d nodes", i, count)
			return err
		}
		node := &t.nodes[i]
		kind := "op"
		if i < t.numVariables {
			kind = "root"
		}
		if _, err := fmt.Fprintf(w, "#%d\t%s\tweights=(%v, %v)\tparents=(%d, %d)\n",
			i, kind, node.Weight0, node.Weight1, node.Parent0, node.Parent1); err != nil {
			return err
		}
	}
	if omitted := len(t.nodes) - count; omitted > 0 {
		if _, err := fmt.Fprintf(w, "... %s nodes omitted, limit is %d\n",
			humanize.Comma(int64(omitted)), limit); err != nil {
			return err
		}
	}
	return nil
}

// PrintNodes dumps up to limit nodes to stdout. See [Tape.WriteNodes].
func (t *Tape[T]) PrintNodes(ctx context.Context, limit int) {
	if err := t.WriteNodes(ctx, os.Stdout, limit); err != nil {
		klog.Warningf("tape.PrintNodes: %v", err)
	}
}
