package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/PaMeirelles/FitosBot/pkg/engine"
	"github.com/PaMeirelles/FitosBot/pkg/engine/cli"
	"github.com/PaMeirelles/FitosBot/pkg/eval"
	"github.com/seekerror/logw"
)

var (
	depth = flag.Uint("depth", 0, "Search depth limit (zero if unlimited)")
	hash  = flag.Uint("hash", 0, "Transposition table slots (zero for the default)")
	noise = flag.Uint("noise", 0, "Evaluation noise in points (zero if deterministic)")
	seed  = flag.Int64("seed", 0, "Zobrist and noise seed")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: fitosbot [options]

FITOSBOT is a Santorini engine speaking a line-oriented text protocol.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, "fitosbot", "PaMeirelles", eval.Classical{},
		engine.WithZobrist(*seed),
		engine.WithOptions(engine.Options{
			Depth: *depth,
			Hash:  *hash,
			Noise: *noise,
		}),
	)

	in := engine.ReadStdinLines(ctx)
	driver, out := cli.NewDriver(ctx, e, in)
	go engine.WriteStdoutLines(ctx, out)

	<-driver.Closed()
	logw.Infof(ctx, "Engine exiting")
}
