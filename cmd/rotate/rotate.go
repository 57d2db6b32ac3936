package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/bmharper/imgrotate"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	_ "go.uber.org/automaxprocs"
)

const (
	exitLoad  = 1
	exitUsage = 2
	exitSave  = 3
)

func fail(code int, err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
	os.Exit(code)
}

func check(code int, err error) {
	if err != nil {
		fail(code, err)
	}
}

func main() {
	var angle float64
	var method, sampling, engine, background string
	var workers, maxRes, quality int
	var verbose, noColor bool

	flag.Float64Var(&angle, "angle", 23, "rotation in degrees, counter-clockwise")
	flag.StringVar(&method, "method", "closed", "canvas sizing: closed | corners")
	flag.StringVar(&sampling, "sampling", "nearest", "nearest | truncate | bilinear")
	flag.StringVar(&engine, "engine", "native", "native | xdraw")
	flag.StringVar(&background, "bg", "000000", "background color as hex RRGGBB")
	flag.IntVar(&workers, "workers", 0, "resampling goroutines, 0 = GOMAXPROCS")
	flag.IntVar(&maxRes, "maxres", 0, "shrink the input so no side exceeds this before rotating, 0 disables")
	flag.IntVar(&quality, "quality", 95, "JPEG quality")
	flag.BoolVar(&verbose, "v", false, "debug logging to stderr")
	flag.BoolVar(&noColor, "nocolor", false, "disable colored output")

	flag.Usage = func() {
		w := flag.CommandLine.Output()
		_, _ = fmt.Fprintf(w, "Usage: %s [OPTIONS] INPUT OUTPUT\n\n", os.Args[0])
		_, _ = fmt.Fprintf(w, "Rotate an image about its center, growing the canvas so nothing is clipped.\n\n")
		_, _ = fmt.Fprintf(w, "OPTIONS:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	fd := os.Stderr.Fd()
	color.NoColor = noColor || (!isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd))

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(exitUsage)
	}
	inputFilename := flag.Arg(0)
	outputFilename := flag.Arg(1)

	if verbose {
		imgrotate.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	params := imgrotate.NewRotateParams()
	var err error
	params.Method, err = imgrotate.ParseMethod(method)
	check(exitUsage, err)
	params.Sampling, err = imgrotate.ParseSampling(sampling)
	check(exitUsage, err)
	params.Engine, err = imgrotate.ParseEngine(engine)
	check(exitUsage, err)
	params.Background, err = imgrotate.ParseRGB(background)
	check(exitUsage, err)
	if workers > 0 {
		params.Workers = workers
	}

	org, err := imgrotate.LoadImage(inputFilename)
	check(exitLoad, err)
	org = org.Shrink(maxRes)

	dst, err := imgrotate.Rotate(org, angle, params)
	check(exitUsage, err)

	check(exitSave, imgrotate.SaveImage(outputFilename, dst, quality))

	fmt.Printf("%vx%v -> %vx%v\n", org.Width, org.Height, dst.Width, dst.Height)
}
