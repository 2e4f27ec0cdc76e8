// Command calcshot sends image files to the calculation service and prints
// the recognized expressions.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"calcboard/board/client/calc"
	"calcboard/board/proto"
	"calcboard/internal/config"
	"calcboard/internal/logging"
)

func main() {
	cfg := config.FromEnv(os.Getenv)
	var (
		apiURL   = flag.String("api-url", cfg.APIURL, "Base URL of the calculation service (env CALC_API_URL).")
		timeout  = flag.Duration("timeout", cfg.Timeout, "Timeout for one request.")
		maxSide  = flag.Int("max-image-side", 0, "Downscale images larger than this many pixels (0 = off).")
		varsFlag = flag.String("vars", "", "Variable bindings sent with every request, e.g. x=2,y=3.")
		jobs     = flag.Int("j", 4, "Number of concurrent requests.")
		asJSON   = flag.Bool("json", false, "Print raw JSON responses, one per line.")
		logLevel = flag.String("log-level", "warn", "Log level: debug|info|warn|error.")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fatalf("usage: calcshot [-api-url URL] [-vars x=2,y=3] [-j 4] [-json] image.png...")
	}
	if *jobs <= 0 {
		fatalf("-j must be positive, got %d", *jobs)
	}
	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		fatalf("%v", err)
	}
	vars, err := parseVars(*varsFlag)
	if err != nil {
		fatalf("vars: %v", err)
	}

	client, err := calc.New(calc.Config{
		BaseURL:      *apiURL,
		Timeout:      *timeout,
		MaxImageSide: *maxSide,
		Logger:       logging.New(os.Stderr, level),
	})
	if err != nil {
		fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := run(ctx, client, flag.Args(), vars, *jobs)
	if failed := report(os.Stdout, results, *asJSON); failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d failed\n", failed, len(results))
		os.Exit(1)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

type result struct {
	path string
	resp *proto.CalculateResponse
	err  error
}

type calculator interface {
	Calculate(ctx context.Context, img image.Image, vars map[string]string) (*proto.CalculateResponse, error)
}

// run calculates every file with at most jobs requests in flight. Results keep
// the order of paths; a failed file does not stop the others.
func run(ctx context.Context, c calculator, paths []string, vars map[string]string, jobs int) []result {
	out := make([]result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, p := range paths {
		out[i].path = p
		g.Go(func() error {
			img, err := imaging.Open(p)
			if err != nil {
				out[i].err = err
				return nil
			}
			out[i].resp, out[i].err = c.Calculate(ctx, img, vars)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func report(w io.Writer, results []result, asJSON bool) int {
	failed := 0
	enc := json.NewEncoder(w)
	for _, r := range results {
		if r.err != nil {
			failed++
			var se *calc.StatusError
			if errors.As(r.err, &se) {
				fmt.Fprintf(w, "%s: HTTP %d\n", r.path, se.Code)
			} else {
				fmt.Fprintf(w, "%s: %v\n", r.path, r.err)
			}
			continue
		}
		if asJSON {
			_ = enc.Encode(r.resp)
			continue
		}
		fmt.Fprintf(w, "%s: %s %s\n", r.path, r.resp.Status, r.resp.Message)
		for _, d := range r.resp.Data {
			mark := ""
			if d.Assign {
				mark = " (assign)"
			}
			fmt.Fprintf(w, "  %s = %s%s\n", d.Expr, d.Result, mark)
		}
	}
	return failed
}

// parseVars parses "x=2,y=3".
func parseVars(s string) (map[string]string, error) {
	vars := map[string]string{}
	s = strings.TrimSpace(s)
	if s == "" {
		return vars, nil
	}
	for _, part := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(part, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("bad binding %q (expected name=value)", part)
		}
		vars[k] = strings.TrimSpace(v)
	}
	return vars, nil
}
