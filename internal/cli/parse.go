package cli

import (
	"flag"
	"time"

	"smart_scout/internal/app"
	"smart_scout/internal/config"
	"smart_scout/internal/resolve"
)

type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "error"
}

// ParseArgs builds run options from flags and the optional config file.
// The second return is true when -init-config was requested.
func ParseArgs(args []string) (app.Options, bool, error) {
	parsed, err := parseFlags(args)
	if err != nil {
		return app.Options{}, false, ExitError{Code: 2, Err: err}
	}
	if parsed.initConfig {
		return app.Options{}, true, nil
	}

	cfg, err := loadConfig(parsed.configStr)
	if err != nil {
		return app.Options{}, false, err
	}

	applyConfigDefaults(&parsed, cfg)
	return buildOptions(parsed), false, nil
}

type parsedFlags struct {
	configStr  string
	initConfig bool

	guidelines   listFlag
	outputDir    stringFlag
	save         boolFlag
	timeout      intFlag
	probeTimeout intFlag
	userAgent    stringFlag
	concurrency  intFlag
	historyDB    stringFlag
	fhirURL      stringFlag
	fhirDemo     boolFlag
	verbose      bool

	hosts config.Hosts
}

func parseFlags(args []string) (parsedFlags, error) {
	fs := flag.NewFlagSet("smart_scout", flag.ContinueOnError)
	parsed := parsedFlags{}

	fs.StringVar(&parsed.configStr, "config", "", "Path to YAML config file")
	fs.BoolVar(&parsed.initConfig, "init-config", false, "Interactive config wizard")
	fs.Var(&parsed.guidelines, "guidelines", "Comma-separated guideline ids (default: anc,base,immunizations,trust)")
	fs.Var(&parsed.outputDir, "output-dir", "Output directory for saved reports")
	fs.Var(&parsed.save, "save", "Write per-guideline JSON and markdown reports")
	parsed.timeout.Value = 10
	fs.Var(&parsed.timeout, "timeout", "Content fetch timeout seconds")
	parsed.probeTimeout.Value = 5
	fs.Var(&parsed.probeTimeout, "probe-timeout", "Availability probe timeout seconds")
	fs.Var(&parsed.userAgent, "user-agent", "User-Agent header")
	parsed.concurrency.Value = 1
	fs.Var(&parsed.concurrency, "concurrency", "Guidelines explored in parallel")
	fs.Var(&parsed.historyDB, "history-db", "SQLite exploration history path (empty = off)")
	fs.Var(&parsed.fhirURL, "fhir-url", "FHIR demo server base URL")
	fs.Var(&parsed.fhirDemo, "fhir-demo", "Query the FHIR demo server after exploring")
	fs.BoolVar(&parsed.verbose, "verbose", false, "Debug logging")

	if err := fs.Parse(args); err != nil {
		return parsed, err
	}
	return parsed, nil
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Config{}, nil
	}
	return config.Load(path)
}

func applyConfigDefaults(parsed *parsedFlags, cfg config.Config) {
	if !parsed.guidelines.WasSet && len(cfg.Guidelines) > 0 {
		parsed.guidelines.Values = cfg.Guidelines
	}
	if !parsed.outputDir.WasSet && cfg.OutputDir != "" {
		parsed.outputDir.Value = cfg.OutputDir
	}
	if !parsed.save.WasSet && cfg.Save {
		parsed.save.Value = true
	}
	if !parsed.timeout.WasSet && cfg.TimeoutSeconds > 0 {
		parsed.timeout.Value = cfg.TimeoutSeconds
	}
	if !parsed.probeTimeout.WasSet && cfg.ProbeTimeoutSeconds > 0 {
		parsed.probeTimeout.Value = cfg.ProbeTimeoutSeconds
	}
	if !parsed.userAgent.WasSet && cfg.UserAgent != "" {
		parsed.userAgent.Value = cfg.UserAgent
	}
	if !parsed.concurrency.WasSet && cfg.Concurrency > 0 {
		parsed.concurrency.Value = cfg.Concurrency
	}
	if !parsed.historyDB.WasSet && cfg.HistoryDB != "" {
		parsed.historyDB.Value = cfg.HistoryDB
	}
	if !parsed.fhirURL.WasSet && cfg.FHIR.BaseURL != "" {
		parsed.fhirURL.Value = cfg.FHIR.BaseURL
	}
	if !parsed.fhirDemo.WasSet && cfg.FHIR.Demo {
		parsed.fhirDemo.Value = true
	}
	parsed.hosts = cfg.Hosts
}

func buildOptions(parsed parsedFlags) app.Options {
	return app.Options{
		Guidelines: parsed.guidelines.Values,
		Hosts: resolve.Hosts{
			Build:     parsed.hosts.Build,
			Pages:     parsed.hosts.Pages,
			Canonical: parsed.hosts.Canonical,
			API:       parsed.hosts.API,
			Repo:      parsed.hosts.Repo,
		},
		OutputDir:   parsed.outputDir.Value,
		Save:        parsed.save.Value,
		HistoryDB:   parsed.historyDB.Value,
		Concurrency: parsed.concurrency.Value,
		GetTimeout:  time.Duration(parsed.timeout.Value) * time.Second,
		HeadTimeout: time.Duration(parsed.probeTimeout.Value) * time.Second,
		UserAgent:   parsed.userAgent.Value,
		FHIRBaseURL: parsed.fhirURL.Value,
		FHIRDemo:    parsed.fhirDemo.Value,
		Verbose:     parsed.verbose,
	}
}
