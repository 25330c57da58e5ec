// tapedump records a synthetic scalar computation on a tape and streams a
// diagnostic dump of it: a summary table, the node arena (bounded and
// cancellable with Ctrl+C), the gradient and optionally the Hessian.
//
// It is a debugging aid for eyeballing what recording produces, not a
// correctness tool.
//
// Example:
//
//	go run ./cmd/tapedump -nodes=100000 -variables=5 -limit=20 -hessian
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"unsafe"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/janpfeifer/must"
	"github.com/muesli/termenv"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"

	"github.com/gomlx/autodiff/tape"
	"github.com/gomlx/autodiff/types/scalars"
)

var (
	flagNumNodes  = flag.Int("nodes", 1_000, "Total number of nodes to record, variables included.")
	flagVariables = flag.Int("variables", 3, "Number of variables (root nodes) to create.")
	flagLimit     = flag.Int("limit", tape.DefaultMaxNodesToPrint, "Maximum number of nodes to dump.")
	flagHessian   = flag.Bool("hessian", false, "Track curvature and also report the Hessian.")
	flagHalf      = flag.Bool("f16", false, "Quantize the variable seeds through float16 before recording, "+
		"as if they were ingested from a half-precision export.")
	flagSeed = flag.Int64("seed", 42, "PRNG seed for the synthetic computation.")
)

var titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 0, 4)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagVariables < 1 || *flagNumNodes < *flagVariables {
		klog.Errorf("Need -variables >= 1 and -nodes >= -variables, got %d and %d.", *flagVariables, *flagNumNodes)
		os.Exit(1)
	}
	if termenv.NewOutput(os.Stdout).Profile == termenv.Ascii {
		// No color support, tone lipgloss down.
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tp, out := buildSyntheticTape()
	printSummary(tp, out)

	fmt.Println(titleStyle.Render("Nodes"))
	must.M(tp.WriteNodes(ctx, os.Stdout, *flagLimit))

	fmt.Println(titleStyle.Render("Gradient"))
	grad := must.M1(tp.ReverseAccumulate())
	for ii, g := range grad {
		fmt.Printf("\t∂out/∂x%d = %v\n", ii, g)
	}

	if *flagHessian {
		fmt.Println(titleStyle.Render("Hessian"))
		hessian := must.M1(tp.ReverseAccumulateHessian())
		for _, row := range hessian {
			fmt.Printf("\t%v\n", row)
		}
	}
}

// buildSyntheticTape records a pseudo-random composition of bounded primitives
// so values neither explode nor vanish, whatever the size requested.
func buildSyntheticTape() (*tape.Tape[float64], tape.Variable[float64]) {
	rng := rand.New(rand.NewSource(*flagSeed))
	opts := []tape.TapeOption{tape.WithCapacity(*flagNumNodes)}
	if *flagHessian {
		opts = append(opts, tape.WithCurvature())
	}
	tp := tape.New[float64](opts...)

	vars := make([]tape.Variable[float64], *flagVariables)
	for ii := range vars {
		seed := 0.5 + rng.Float64()
		if *flagHalf {
			seed = scalars.FromFloat16[float64](scalars.ToFloat16(seed))
		}
		vars[ii] = tp.CreateVariable(seed)
	}

	bar := progressbar.NewOptions(*flagNumNodes-*flagVariables,
		progressbar.OptionSetDescription("recording"),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("nodes"),
		progressbar.OptionSetTheme(progressbar.ThemeASCII))
	v := vars[0]
	for tp.NumNodes() < *flagNumNodes {
		switch rng.Intn(5) {
		case 0:
			v = tp.Sin(v)
		case 1:
			v = tp.Tanh(v)
		case 2:
			v = tp.Atan(v)
		case 3:
			v = tp.Mul(v, vars[rng.Intn(len(vars))])
		default:
			v = tp.Add(v, vars[rng.Intn(len(vars))])
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	fmt.Println()
	return tp, v
}

func printSummary(tp *tape.Tape[float64], out tape.Variable[float64]) {
	fmt.Println(titleStyle.Render("Summary"))
	table := lgtable.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
			if col == 0 {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
	nodeBytes := uint64(tp.NumNodes()) * uint64(unsafe.Sizeof(tape.Node[float64]{}))
	table.Row("# nodes", humanize.Comma(int64(tp.NumNodes())))
	table.Row("# variables", humanize.Comma(int64(tp.NumVariables())))
	table.Row("arena bytes", humanize.Bytes(nodeBytes))
	table.Row("curvature", fmt.Sprintf("%v", tp.IsTrackingCurvature()))
	table.Row("forward value", fmt.Sprintf("%v", out.Value))
	fmt.Println(table.Render())
}
