// Command x3ftiff converts Sigma/Foveon X3F raw files into uncompressed
// 16-bit TIFF files that open cleanly in Photoshop.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/foveontools/x3ftiff"
	"github.com/foveontools/x3ftiff/internal/x3f"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	// Optional .env next to the binary may set X3FTIFF_* variables.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "convert":
		if err := runConvert(os.Args[2:]); err != nil {
			fail(err)
		}
	case "check":
		if err := runCheck(os.Args[2:]); err != nil {
			fail(err)
		}
	case "detect":
		if err := runDetect(os.Args[2:]); err != nil {
			fail(err)
		}
	case "version":
		fmt.Fprintf(os.Stdout, "x3ftiff %s (%s)\n", version, commit)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: x3ftiff <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  convert [-skip-existing] [-preview] [-v|-q] [-profile dir] <input.x3f>... [output-directory] [format]")
	fmt.Fprintln(os.Stderr, "  check [output-directory]  verify the LibRaw decoder and the destination")
	fmt.Fprintln(os.Stderr, "  detect <file>...      report whether files are X3F containers")
	fmt.Fprintln(os.Stderr, "  version               print build information")
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	skipExisting := fs.Bool("skip-existing", false, "skip inputs whose output file already exists")
	preview := fs.Bool("preview", false, "write a small JPEG preview next to each TIFF")
	verbose := fs.Bool("v", false, "verbose logging")
	quiet := fs.Bool("q", false, "errors only")
	profileDir := fs.String("profile", "", "write a CPU profile into this directory")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	configureLogging(*verbose, *quiet)

	parsed, err := x3ftiff.ParseConvertArgs(fs.Args())
	if err != nil {
		return err
	}
	if parsed.OutputDir == "" {
		parsed.OutputDir = os.Getenv("X3FTIFF_OUTPUT_DIR")
	}

	if *profileDir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profileDir)).Stop()
	}

	// Cancel between files on SIGINT/SIGTERM; the file being converted is
	// finished first so no partial output is left behind.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current file...")
		cancel()
	}()

	sum, err := x3ftiff.ConvertBatch(ctx, parsed.Inputs, func(o *x3ftiff.Options) {
		o.OutputDir = parsed.OutputDir
		o.Format = parsed.Format
		o.SkipExisting = *skipExisting
		o.Preview = *preview
	})
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("Batch %s finished in %s: %s",
		sum.RunID, sum.Elapsed.Round(time.Millisecond), sum.CloseMessage())
	switch sum.Outcome() {
	case x3ftiff.OutcomeAllSucceeded:
		log.Info(msg)
	case x3ftiff.OutcomePartial:
		log.Warn(msg)
	default:
		log.Error(msg)
	}
	if sum.Failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", sum.Failed, sum.Total)
	}
	return nil
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	capability := x3ftiff.NewLibRawDecoder().Probe()
	if !capability.Available {
		fmt.Fprintf(os.Stdout, "libraw: missing (%s)\n", capability.Detail)
		return errors.New("LibRaw decoder unavailable")
	}
	fmt.Fprintf(os.Stdout, "libraw: %s\n", capability.Version)

	if dir := outputDirArg(fs.Args()); dir != "" {
		if err := probeWritable(dir); err != nil {
			fmt.Fprintf(os.Stdout, "output %s: not writable (%v)\n", dir, err)
			return errors.New("output directory not writable")
		}
		fmt.Fprintf(os.Stdout, "output %s: writable\n", dir)
	}
	return nil
}

func outputDirArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// probeWritable creates dir if needed and round-trips a scratch file.
func probeWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".x3ftiff-check-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

func runDetect(args []string) error {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("missing required arguments")
	}
	for _, path := range fs.Args() {
		ok, err := x3ftiff.IsX3FFile(filepath.Clean(path))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(os.Stdout, "%s: not x3f\n", path)
			continue
		}
		hdr, err := x3f.ParseFile(filepath.Clean(path))
		if err != nil {
			return err
		}
		line := fmt.Sprintf("%s: x3f %s %dx%d rotation %d", path, hdr.VersionString(), hdr.Columns, hdr.Rows, hdr.Rotation)
		if hdr.WhiteBalance != "" {
			line += fmt.Sprintf(" wb %q", hdr.WhiteBalance)
		}
		if hdr.ColorMode != "" {
			line += fmt.Sprintf(" color %q", hdr.ColorMode)
		}
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}

func configureLogging(verbose, quiet bool) {
	switch {
	case quiet:
		log.SetLevel(log.ErrorLevel)
	case verbose:
		log.SetLevel(log.DebugLevel)
	default:
		if raw := os.Getenv("X3FTIFF_LOG_LEVEL"); raw != "" {
			if lvl, err := log.ParseLevel(raw); err == nil {
				log.SetLevel(lvl)
			}
		}
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
