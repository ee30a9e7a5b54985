package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"github.com/inovacc/hpcmp/internal/hpc"
)

func main() {
	verbosity := flag.Int("v", 0, "verbosity: 0=errors, 1=info, 2=debug, 3=trace")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(2)
	}

	logger := newLogger(os.Stderr, *verbosity)
	if err := run(afero.NewOsFs(), logger, flag.Arg(0), flag.Arg(1)); err != nil {
		fmt.Fprintln(os.Stderr, "hpcmp:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: hpcmp [-v level] <input> <output>")
	flag.PrintDefaults()
}

func run(fs afero.Fs, logger *slog.Logger, inPath, outPath string) error {
	in, err := fs.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := hpc.NewDecoder(in, hpc.WithLogger(logger)).Decompress()
	if err != nil {
		return err
	}

	if err := afero.WriteFile(fs, outPath, out, 0o644); err != nil {
		return err
	}
	logger.Info("decompressed", "input", inPath, "output", outPath, "bytes", len(out))
	return nil
}

func newLogger(w io.Writer, verbosity int) *slog.Logger {
	var level slog.Level
	switch verbosity {
	case 0:
		level = slog.LevelError
	case 1:
		level = slog.LevelInfo
	case 2:
		level = slog.LevelDebug
	default:
		level = hpc.LevelTrace
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
