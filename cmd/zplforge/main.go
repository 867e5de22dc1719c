package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"zplforge/internal/backend"
	"zplforge/internal/config"
	"zplforge/internal/label"
	"zplforge/internal/printer"
	"zplforge/internal/zlog"
)

const (
	appVersion = "1.0.0"
	appName    = "zplforge"
)

func main() {
	in := flag.String("i", "", "input ZPL file (reads stdin if omitted)")
	out := flag.String("o", "", "output file (writes stdout if omitted)")
	format := flag.String("f", "png", "output format: png or pdf")
	width := flag.Float64("w", 4, "label width")
	height := flag.Float64("h", 2, "label height")
	unit := flag.String("u", "in", "physical unit: in, mm, cm")
	dpi := flag.Int("dpi", 203, "resolution: 152, 203, 300, 600")
	port := flag.String("print-port", "", "serial/Bluetooth-RFCOMM port to stream raw ZPL to instead of rendering")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", appName, appVersion)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: config: %v\n", appName, err)
		os.Exit(1)
	}

	logger, err := zlog.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: logging: %v\n", appName, err)
		os.Exit(1)
	}
	logger = logger.With(zap.String("environment", cfg.App.Environment), zap.Bool("debug", cfg.App.Debug))
	defer logger.Sync()

	data, err := readInput(*in)
	if err != nil {
		logger.Fatal("failed to read input", zap.Error(err))
	}

	if *port != "" {
		if err := streamToPrinter(*port, data); err != nil {
			logger.Fatal("printer stream failed", zap.String("port", *port), zap.Error(err))
		}
		return
	}

	if err := render(logger, data, *in, *out, *format, *width, *height, *unit, Resolution(*dpi)); err != nil {
		logger.Fatal("render failed", zap.Error(err))
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// Resolution is a local alias so the CLI can accept a bare int flag and
// pass it straight to label.Resolution without an intermediate cast at
// every call site.
type Resolution = label.Resolution

func render(logger *zap.Logger, data []byte, inName, outPath, format string, width, height float64, unitStr string, dpi Resolution) error {
	u, err := parseUnit(unitStr)
	if err != nil {
		return err
	}

	eng, err := label.New(data, width, height, u, dpi)
	if err != nil {
		return err
	}

	f, err := parseFormat(format)
	if err != nil {
		return err
	}

	rl := zlog.NewRenderLogger(logger, displayName(inName), format)

	w, closeFn, err := openOutput(outPath)
	if err != nil {
		return err
	}
	defer closeFn()

	counter := &countingWriter{w: w}
	if err := eng.Render(counter, f, nil); err != nil {
		rl.Failure(err)
		return err
	}
	rl.Success(counter.n)
	return nil
}

func displayName(inName string) string {
	if inName == "" {
		return "stdin"
	}
	return inName
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func parseUnit(s string) (label.Unit, error) {
	switch s {
	case "in", "inch", "inches":
		return label.UnitInches, nil
	case "mm":
		return label.UnitMillimeters, nil
	case "cm":
		return label.UnitCentimeters, nil
	default:
		return 0, fmt.Errorf("%s: unknown unit %q", appName, s)
	}
}

func parseFormat(s string) (backend.Format, error) {
	switch s {
	case "png":
		return backend.FormatPNG, nil
	case "pdf":
		return backend.FormatPDF, nil
	default:
		return 0, fmt.Errorf("%s: unknown format %q", appName, s)
	}
}

func streamToPrinter(port string, data []byte) error {
	p, err := printer.Connect(port)
	if err != nil {
		return err
	}
	defer p.Close()
	return p.Send(data)
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
