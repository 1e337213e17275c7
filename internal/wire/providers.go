package wire

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sevigo/goframe/llms"
	"github.com/sevigo/goframe/llms/gemini"
	"github.com/sevigo/goframe/llms/ollama"

	"github.com/sevigo/gitgrant/internal/app"
	"github.com/sevigo/gitgrant/internal/config"
	"github.com/sevigo/gitgrant/internal/core"
	"github.com/sevigo/gitgrant/internal/github"
	"github.com/sevigo/gitgrant/internal/ledger"
	"github.com/sevigo/gitgrant/internal/llm"
	"github.com/sevigo/gitgrant/internal/logger"
	"github.com/sevigo/gitgrant/internal/server"
	"github.com/sevigo/gitgrant/internal/workflow"
)

var AppSet = wire.NewSet(
	app.NewApp,
	server.NewServer,
	config.LoadConfig,
	github.NewClientFromConfig,
	github.NewIssueFetcher,
	llm.NewPromptManager,
	llm.NewGenerator,
	llm.NewIssueEvaluator,
	llm.NewIssueRater,
	llm.NewContributionAgent,
	provideSlogLogger,
	provideGeneratorLLM,
	provideModelProvider,
	provideLedger,
	provideRegistry,
	provideMetrics,
	provideOrchestrator,
	wire.Bind(new(core.IssueSource), new(*github.IssueFetcher)),
	wire.Bind(new(core.Evaluator), new(*llm.IssueEvaluator)),
	wire.Bind(new(core.Rater), new(*llm.IssueRater)),
	wire.Bind(new(core.Ledger), new(*ledger.Client)),
	wire.Bind(new(core.WorkflowRunner), new(*workflow.Orchestrator)),
	wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
)

func provideSlogLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	writer, closeWriter, err := logger.Writer(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log output: %w", err)
	}
	return logger.NewLogger(cfg.Logging, writer), closeWriter, nil
}

func provideGeneratorLLM(ctx context.Context, cfg *config.Config, logger *slog.Logger) (llms.Model, error) {
	switch cfg.AI.LLMProvider {
	case "gemini":
		if cfg.AI.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set")
		}
		logger.Info("using Gemini LLM provider", "model", cfg.AI.GeneratorModel)
		return gemini.New(ctx, gemini.WithModel(cfg.AI.GeneratorModel), gemini.WithAPIKey(cfg.AI.GeminiAPIKey))
	case "ollama":
		logger.Info("using Ollama LLM provider", "model", cfg.AI.GeneratorModel, "host", cfg.AI.OllamaHost)
		return ollama.New(
			ollama.WithServerURL(cfg.AI.OllamaHost),
			ollama.WithHTTPClient(newOllamaHTTPClient()),
			ollama.WithModel(cfg.AI.GeneratorModel),
			ollama.WithLogger(logger),
		)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.AI.LLMProvider)
	}
}

// newOllamaHTTPClient allows for slow local generation.
func newOllamaHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxConnsPerHost:     10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		Timeout: 5 * time.Minute,
	}
}

func provideModelProvider(cfg *config.Config) llm.ModelProvider {
	return llm.ModelProvider(cfg.AI.LLMProvider)
}

func provideLedger(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*ledger.Client, func(), error) {
	return ledger.NewClient(ctx, cfg.Ledger, logger)
}

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideMetrics(reg *prometheus.Registry) *workflow.Metrics {
	return workflow.MustNewMetrics(reg)
}

func provideOrchestrator(
	cfg *config.Config,
	issues core.IssueSource,
	evaluator core.Evaluator,
	rater core.Rater,
	ledgerClient core.Ledger,
	metrics *workflow.Metrics,
	logger *slog.Logger,
) *workflow.Orchestrator {
	return workflow.NewOrchestrator(issues, evaluator, rater, ledgerClient, metrics, cfg.Workflow.StepLimit, logger)
}
