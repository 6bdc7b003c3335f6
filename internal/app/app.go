package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"smart_scout/internal/fetch"
	"smart_scout/internal/fhir"
	"smart_scout/internal/markdown"
	"smart_scout/internal/output"
	"smart_scout/internal/report"
	"smart_scout/internal/resolve"
	"smart_scout/internal/store"
)

// DefaultGuidelines is explored when neither flags nor config name any.
var DefaultGuidelines = []string{"anc", "base", "immunizations", "trust"}

const (
	DefaultOutputDir   = "output"
	defaultExcerptSize = 4000
)

type Options struct {
	Guidelines  []string
	Hosts       resolve.Hosts
	OutputDir   string
	Save        bool
	HistoryDB   string
	Concurrency int
	GetTimeout  time.Duration
	HeadTimeout time.Duration
	UserAgent   string
	FHIRBaseURL string
	FHIRDemo    bool
	Verbose     bool

	// Out receives the report; defaults to stdout.
	Out io.Writer
}

// Run explores each configured guideline and writes the report. Individual
// guideline failures are reported inline and never abort the run.
func Run(ctx context.Context, opts Options) error {
	opts = normalizeOptions(opts)
	logger := newLogger(opts)

	client := fetch.NewClient(fetch.Options{
		UserAgent:   opts.UserAgent,
		GetTimeout:  opts.GetTimeout,
		HeadTimeout: opts.HeadTimeout,
	})
	explorer := &explorer{client: client, hosts: opts.Hosts, log: logger}

	report.WriteHeader(opts.Out)
	fmt.Fprintln(opts.Out, "\nFetching available SMART Guidelines...")

	results := explore(ctx, explorer, opts)

	history, err := openHistory(opts, logger)
	if err != nil {
		return err
	}
	if history != nil {
		defer history.Close()
	}

	for _, result := range results {
		report.WriteGuideline(opts.Out, result.Guideline)
		if opts.Save {
			writeOutputs(opts, result, logger)
		}
		if history != nil {
			recordHistory(ctx, history, result, logger)
		}
	}

	if opts.FHIRDemo {
		report.WriteFHIRDemo(opts.Out, runFHIRDemo(ctx, opts))
	}

	report.WriteFooter(opts.Out)
	return nil
}

// explore runs the per-guideline explorations, concurrently when configured.
// Results always come back in input order, and the candidate URLs for any
// single guideline are still tried strictly sequentially.
func explore(ctx context.Context, e *explorer, opts Options) []exploration {
	results := make([]exploration, len(opts.Guidelines))

	if opts.Concurrency <= 1 {
		for i, id := range opts.Guidelines {
			results[i] = e.explore(ctx, id)
		}
		return results
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(opts.Concurrency)
	for i, id := range opts.Guidelines {
		group.Go(func() error {
			results[i] = e.explore(groupCtx, id)
			return nil
		})
	}
	_ = group.Wait() // explorations never return errors
	return results
}

func writeOutputs(opts Options, result exploration, logger zerolog.Logger) {
	excerpt := ""
	if result.PageHTML != "" {
		conv := markdown.NewConverter()
		rendered, err := conv.Excerpt(result.PageHTML, defaultExcerptSize)
		if err != nil {
			logger.Warn().Str("guideline", result.ID).Err(err).Msg("page excerpt failed")
		} else {
			excerpt = rendered
		}
	}

	if path, err := output.WriteGuidelineJSON(opts.OutputDir, result.Guideline); err != nil {
		logger.Warn().Str("guideline", result.ID).Err(err).Msg("write json failed")
	} else {
		fmt.Fprintf(opts.Out, "Wrote: %s\n", path)
	}
	if path, err := output.WriteGuidelineMarkdown(opts.OutputDir, result.Guideline, excerpt); err != nil {
		logger.Warn().Str("guideline", result.ID).Err(err).Msg("write markdown failed")
	} else {
		fmt.Fprintf(opts.Out, "Wrote: %s\n", path)
	}
}

func openHistory(opts Options, logger zerolog.Logger) (*store.Store, error) {
	if opts.HistoryDB == "" {
		return nil, nil
	}
	history, err := store.Open(opts.HistoryDB)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	logger.Debug().Str("path", history.Path()).Msg("history db open")
	return history, nil
}

func recordHistory(ctx context.Context, history *store.Store, result exploration, logger zerolog.Logger) {
	source, sourceURL := result.source()
	entry := store.Entry{
		Guideline: result.ID,
		Source:    source,
		SourceURL: sourceURL,
	}
	if result.DAK != nil {
		entry.Title = result.DAK.Title
		entry.Version = result.DAK.Version
	} else if result.Page != nil {
		entry.Title = result.Page.Title
		entry.Version = result.Page.Version
	}
	if err := history.Record(ctx, entry); err != nil {
		logger.Warn().Str("guideline", result.ID).Err(err).Msg("history record failed")
	}
}

func runFHIRDemo(ctx context.Context, opts Options) report.FHIRDemo {
	client := fhir.NewClient(opts.FHIRBaseURL, opts.GetTimeout)

	patients, err := client.SearchPatients(ctx, "")
	if err != nil {
		return report.FHIRDemo{Err: err}
	}

	demo := report.FHIRDemo{Patients: len(patients)}
	if len(patients) == 0 {
		return demo
	}

	demo.SamplePatientID = patients[0].ID()
	observations, err := client.SearchObservations(ctx, "Patient/"+demo.SamplePatientID, "survey")
	if err != nil {
		// Patient listing worked; report what we have.
		return demo
	}
	demo.Observations = len(observations)
	return demo
}

func normalizeOptions(opts Options) Options {
	if len(opts.Guidelines) == 0 {
		opts.Guidelines = DefaultGuidelines
	}
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOutputDir
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return opts
}

func newLogger(opts Options) zerolog.Logger {
	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
