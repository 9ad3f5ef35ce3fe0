// Command flexgp-split splits datasets for train/test experiments.
//
// Usage:
//
//	flexgp-split split [flags] INPUT SIZE SPLIT_OUT REST_OUT
//	flexgp-split select [flags] -i INPUT -o PATH SIZE [-o PATH SIZE ...]
//	flexgp-split load [flags] -i RECORDS.tsv
//
// split reads record ids (one per line) and writes the split side to SPLIT_OUT
// and the remainder to REST_OUT. With -d (SQLite) or -kv (NATS) the records
// are grouped by their resolved group id, otherwise lines are split as is.
// SIZE is a fraction ("0.2") or a line count ("1500").
//
// select draws disjoint random samples of the given sizes into several files.
//
// load publishes "record_id<TAB>group_id<TAB>sort_key" rows to the NATS KV
// bucket read by -kv.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/flexgp/flexgp"
	"github.com/flexgp/flexgp/internal/lineio"
	"github.com/flexgp/flexgp/internal/logging"
	"github.com/flexgp/flexgp/internal/sink"
	"github.com/flexgp/flexgp/source"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}

	var err error
	switch args[0] {
	case "split":
		err = runSplit(ctx, args[1:], stdout, stderr)
	case "select":
		err = runSelect(ctx, args[1:], stderr)
	case "load":
		err = runLoad(ctx, args[1:], stdout, stderr)
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return exitOK
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return exitUsage
	}

	var uerr usageError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.As(err, &uerr):
		_, _ = fmt.Fprintf(stderr, "%s: %v\n", args[0], err)
		return exitUsage
	default:
		_, _ = fmt.Fprintf(stderr, "%s: %v\n", args[0], err)
		return exitError
	}
}

func usage(w io.Writer) {
	_, _ = fmt.Fprint(w, `usage:
  flexgp-split split [flags] INPUT SIZE SPLIT_OUT REST_OUT
  flexgp-split select [flags] -i INPUT -o PATH SIZE [-o PATH SIZE ...]
  flexgp-split load [flags] -i RECORDS.tsv

Run "flexgp-split <command> -h" for the flags of a command.
`)
}

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// commonFlags are shared by every subcommand and override the config file.
type commonFlags struct {
	configPath  string
	seed        string
	logLevel    string
	logFormat   string
	metricsFile string
	sqlitePath  string
	kvURL       string
	bucket      string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&c.seed, "r", "", "random seed (integer or any string); empty means a fresh random split")
	fs.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&c.logFormat, "log-format", "", "log format: text or json")
	fs.StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile after the run")
	fs.StringVar(&c.sqlitePath, "d", "", "SQLite track metadata database (enables grouped split)")
	fs.StringVar(&c.kvURL, "kv", "", "NATS URL of the record metadata bucket (enables grouped split)")
	fs.StringVar(&c.bucket, "bucket", "", "NATS KV bucket name")
}

// config loads the config file (if any) and applies flag overrides.
func (c *commonFlags) config() (flexgp.Config, error) {
	cfg := flexgp.DefaultConfig()
	if c.configPath != "" {
		f, err := os.Open(c.configPath)
		if err != nil {
			return flexgp.Config{}, err
		}
		defer f.Close()

		if cfg, err = flexgp.DecodeConfig(f); err != nil {
			return flexgp.Config{}, fmt.Errorf("%s: %w", c.configPath, err)
		}
	}

	if c.seed != "" {
		cfg.Seed = flexgp.ParseSeed(c.seed)
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
	}
	if c.logFormat != "" {
		cfg.Logging.Format = c.logFormat
	}
	if c.metricsFile != "" {
		cfg.Metrics.TextfilePath = c.metricsFile
	}
	if c.sqlitePath != "" {
		cfg.Resolver = flexgp.ResolverSQLite
		cfg.SQLite.Path = c.sqlitePath
	}
	if c.kvURL != "" {
		cfg.Resolver = flexgp.ResolverKV
		cfg.KV.URL = c.kvURL
	}
	if c.bucket != "" {
		cfg.KV.Bucket = c.bucket
	}

	return cfg, nil
}

// parseInterspersed parses flags that may appear before, between or after
// positional arguments, as the original scripts accepted them.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// session bundles the per-invocation logger and metrics.
type session struct {
	logger   flexgp.Logger
	registry *prometheus.Registry
	metrics  flexgp.MetricsCollector
	textfile string
}

func newSession(cfg *flexgp.Config, stderr io.Writer) (*session, error) {
	logger, err := logging.New(stderr, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, usagef("%v", err)
	}

	reg := prometheus.NewRegistry()

	return &session{
		logger:   logger,
		registry: reg,
		metrics:  flexgp.NewPrometheusMetrics(reg, cfg.Metrics.Namespace),
		textfile: cfg.Metrics.TextfilePath,
	}, nil
}

// flush writes the metrics textfile when one is configured.
func (rt *session) flush() {
	if rt.textfile == "" {
		return
	}
	if err := prometheus.WriteToTextfile(rt.textfile, rt.registry); err != nil {
		rt.logger.Warn("failed to write metrics textfile", "path", rt.textfile, "error", err)
	}
}

func runSplit(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("split", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	strategyName := fs.String("strategy", "", "selection strategy: windowed or hash-rank")
	printStats := fs.Bool("stats", true, "print split statistics to stdout")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 4 {
		return usagef("expected INPUT SIZE SPLIT_OUT REST_OUT, got %d arguments", len(positional))
	}
	input, size, splitOut, restOut := positional[0], positional[1], positional[2], positional[3]

	cfg, err := common.config()
	if err != nil {
		return err
	}
	if *strategyName != "" {
		cfg.Strategy = *strategyName
	}
	if cfg.Target, err = flexgp.ParseTarget(size); err != nil {
		return usagef("%v", err)
	}
	if err := cfg.Validate(); err != nil {
		return usagef("%v", err)
	}

	rt, err := newSession(&cfg, stderr)
	if err != nil {
		return err
	}
	defer rt.flush()
	cfg.ValidateWithWarnings(rt.logger)

	selection, err := cfg.SelectionStrategy()
	if err != nil {
		return err
	}

	resolver, closeResolver, err := flexgp.OpenResolver(ctx, &cfg, rt.logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeResolver() }()

	splitter, err := flexgp.NewSplitter(resolver,
		flexgp.WithStrategy(selection),
		flexgp.WithLogger(rt.logger),
		flexgp.WithMetrics(rt.metrics),
	)
	if err != nil {
		return err
	}

	lines, err := lineio.ReadFile(input)
	if err != nil {
		return err
	}

	var res flexgp.Result
	if resolver != nil {
		res, err = splitter.SplitGrouped(ctx, lines, cfg.Target, cfg.Seed)
	} else {
		res, err = splitter.SplitLines(ctx, lines, cfg.Target, cfg.Seed)
	}
	if err != nil {
		return err
	}

	if err := sink.WriteAll([]sink.Output{
		{Path: splitOut, Lines: res.Split},
		{Path: restOut, Lines: res.Rest},
	}); err != nil {
		return err
	}

	if *printStats {
		printSplitStats(stdout, res.Stats)
	}

	return nil
}

func printSplitStats(w io.Writer, st flexgp.Stats) {
	_, _ = fmt.Fprintf(w, "records:  %d (kept %d, excluded %d)\n", st.InputRecords, st.Records, st.Excluded)
	_, _ = fmt.Fprintf(w, "groups:   %d (split %d, rest %d)\n", st.Groups, st.SplitGroups, st.RestGroups)
	_, _ = fmt.Fprintf(w, "split:    %d records (requested %d, deviation %+d)\n", st.SplitRecords, st.Requested, st.Deviation())
	_, _ = fmt.Fprintf(w, "rest:     %d records\n", st.RestRecords)
}

// stringList collects a repeated string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func runSelect(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("select", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	input := fs.String("i", "", "input file (\"-\" for stdin)")
	var outputs stringList
	fs.Var(&outputs, "o", "output file; followed by its size (repeatable)")

	sizes, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if *input == "" {
		return usagef("-i is required")
	}
	if len(outputs) == 0 || len(outputs) != len(sizes) {
		return usagef("every -o PATH needs exactly one SIZE (got %d outputs, %d sizes)", len(outputs), len(sizes))
	}

	allocs := make([]flexgp.Allocation, len(outputs))
	for i, dest := range outputs {
		size, err := flexgp.ParseTarget(sizes[i])
		if err != nil {
			return usagef("size of %s: %v", dest, err)
		}
		allocs[i] = flexgp.Allocation{Destination: dest, Size: size}
	}

	cfg, err := common.config()
	if err != nil {
		return err
	}
	rt, err := newSession(&cfg, stderr)
	if err != nil {
		return err
	}
	defer rt.flush()

	splitter, err := flexgp.NewSplitter(nil, flexgp.WithLogger(rt.logger), flexgp.WithMetrics(rt.metrics))
	if err != nil {
		return err
	}

	lines, err := lineio.ReadFile(*input)
	if err != nil {
		return err
	}

	results, err := splitter.Allocate(ctx, lines, allocs, cfg.Seed)
	if err != nil {
		return err
	}

	outs := make([]sink.Output, len(results))
	for i, r := range results {
		outs[i] = sink.Output{Path: r.Destination, Lines: r.Lines}
	}

	return sink.WriteAll(outs)
}

func runLoad(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("load", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	input := fs.String("i", "", "records file: record_id<TAB>group_id<TAB>sort_key per line")

	if _, err := parseInterspersed(fs, args); err != nil {
		return err
	}
	if *input == "" {
		return usagef("-i is required")
	}

	cfg, err := common.config()
	if err != nil {
		return err
	}
	cfg.KV.Create = true

	rt, err := newSession(&cfg, stderr)
	if err != nil {
		return err
	}

	lines, err := lineio.ReadFile(*input)
	if err != nil {
		return err
	}
	records, err := parseRecords(lines)
	if err != nil {
		return err
	}

	bucket, nc, err := flexgp.OpenRecordBucket(ctx, &cfg)
	if err != nil {
		return err
	}
	defer nc.Close()

	n, err := source.LoadKV(ctx, bucket, records)
	if err != nil {
		return fmt.Errorf("loaded %d of %d records: %w", n, len(records), err)
	}

	rt.logger.Info("records loaded", "bucket", cfg.KV.Bucket, "count", n)
	_, _ = fmt.Fprintf(stdout, "loaded %d records into %s\n", n, cfg.KV.Bucket)

	return nil
}

// parseRecords parses tab-separated record rows, skipping blank lines.
func parseRecords(lines []string) ([]flexgp.Record, error) {
	records := make([]flexgp.Record, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 3 || fields[0] == "" || fields[1] == "" {
			return nil, fmt.Errorf("line %d: expected record_id<TAB>group_id<TAB>sort_key", i+1)
		}
		key, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: sort key: %w", i+1, err)
		}

		records = append(records, flexgp.Record{ID: fields[0], GroupID: fields[1], SortKey: key})
	}

	return records, nil
}
