// Command ragcheck evaluates RAG chat responses from the command line.
//
// Single request (the report JSON is written to stdout):
//
//	go run ./cmd/ragcheck --request request.json
//
// Batch suite with evidence files and a cached embedding provider:
//
//	go run ./cmd/ragcheck \
//	  --suite suite.json \
//	  --evidence docs/opening-hours.pdf --evidence docs/prices.xlsx \
//	  --embed-provider ollama --embed-model nomic-embed-text \
//	  --embed-cache embeds.db --embed-dim 768
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/brunobiangulo/ragcheck"
	"github.com/brunobiangulo/ragcheck/bench"
	"github.com/brunobiangulo/ragcheck/embed"
	"github.com/brunobiangulo/ragcheck/embedstore"
	"github.com/brunobiangulo/ragcheck/evidence"
)

// stringSlice implements flag.Value for multi-value string flags.
type stringSlice []string

func (s *stringSlice) String() string { return strings.Join(*s, ", ") }
func (s *stringSlice) Set(val string) error {
	*s = append(*s, val)
	return nil
}

func main() {
	var evidenceFiles stringSlice

	var (
		requestPath   = flag.String("request", "", "Path to a single evaluation request JSON")
		suitePath     = flag.String("suite", "", "Path to a batch suite (.json or .xlsx)")
		configPath    = flag.String("config", "", "Path to a YAML config file (defaults apply when omitted)")
		embedProvider = flag.String("embed-provider", "", "Embedding provider: ollama, openai, lmstudio, custom (lexical-only when omitted)")
		embedModel    = flag.String("embed-model", "", "Embedding model name")
		embedBaseURL  = flag.String("embed-base-url", "", "Embedding endpoint base URL")
		embedAPIKey   = flag.String("embed-api-key", "", "Embedding API key (default: RAGCHECK_EMBED_API_KEY)")
		embedCache    = flag.String("embed-cache", "", "Path to a sqlite-vec embedding cache (\":memory:\" for ephemeral)")
		embedDim      = flag.Int("embed-dim", 768, "Embedding dimension (must match the model)")
		verbose       = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Var(&evidenceFiles, "evidence", "Evidence file (.txt/.md/.pdf/.xlsx); repeatable, chunks are appended to every request")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if (*requestPath == "") == (*suitePath == "") {
		fatal(fmt.Errorf("exactly one of --request or --suite is required"))
	}

	cfg := ragcheck.DefaultConfig()
	if *configPath != "" {
		loaded, err := ragcheck.LoadConfig(*configPath)
		if err != nil {
			fatal(err)
		}
		cfg = loaded
	}

	ctx := context.Background()

	var opts []ragcheck.Option
	if *embedProvider != "" {
		apiKey := *embedAPIKey
		if apiKey == "" {
			apiKey = os.Getenv("RAGCHECK_EMBED_API_KEY")
		}
		provider, err := embed.NewProvider(embed.Config{
			Provider: *embedProvider,
			Model:    *embedModel,
			BaseURL:  *embedBaseURL,
			APIKey:   apiKey,
		})
		if err != nil {
			fatal(err)
		}
		if *embedCache != "" {
			store, err := embedstore.Open(*embedCache, *embedDim)
			if err != nil {
				fatal(err)
			}
			defer store.Close()
			provider = embedstore.NewCachingProvider(provider, store, *embedModel)
		}
		opts = append(opts, ragcheck.WithEmbedder(provider))
	}

	eval, err := ragcheck.New(cfg, opts...)
	if err != nil {
		fatal(err)
	}

	var extraChunks []string
	if len(evidenceFiles) > 0 {
		chunks, errs := evidence.LoadAll(ctx, evidenceFiles)
		for _, err := range errs {
			slog.Warn("skipping evidence file", "error", err)
		}
		if len(chunks) == 0 && len(errs) > 0 {
			fatal(fmt.Errorf("no evidence file could be loaded"))
		}
		extraChunks = chunks
		slog.Info("evidence loaded", "files", len(evidenceFiles)-len(errs), "chunks", len(chunks))
	}

	if *requestPath != "" {
		runSingle(ctx, eval, *requestPath, extraChunks)
		return
	}
	runSuite(ctx, eval, *suitePath, extraChunks)
}

func runSingle(ctx context.Context, eval *ragcheck.Evaluator, path string, extraChunks []string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fatal(fmt.Errorf("reading request: %w", err))
	}
	var req ragcheck.Request
	if err := json.Unmarshal(data, &req); err != nil {
		fatal(fmt.Errorf("parsing request %s: %w", path, err))
	}
	req.ContextChunks = append(req.ContextChunks, extraChunks...)

	report, err := eval.Evaluate(ctx, req)
	if err != nil {
		fatal(err)
	}
	printJSON(report)
}

func runSuite(ctx context.Context, eval *ragcheck.Evaluator, path string, extraChunks []string) {
	suite, err := bench.LoadSuite(path)
	if err != nil {
		fatal(err)
	}
	if len(extraChunks) > 0 {
		for i := range suite.Cases {
			suite.Cases[i].Request.ContextChunks = append(suite.Cases[i].Request.ContextChunks, extraChunks...)
		}
	}

	report, err := bench.NewRunner(eval).Run(ctx, suite)
	if err != nil {
		fatal(err)
	}
	slog.Info("suite complete",
		"suite", report.Suite,
		"passed", report.Passed,
		"failed", report.Failed,
		"review", report.Review,
		"errors", report.Errors,
		"run_time", report.RunTime)
	printJSON(report)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "ragcheck:", err)
	os.Exit(1)
}
