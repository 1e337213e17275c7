// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"

	"github.com/sevigo/gitgrant/internal/app"
	"github.com/sevigo/gitgrant/internal/config"
	"github.com/sevigo/gitgrant/internal/github"
	"github.com/sevigo/gitgrant/internal/llm"
	"github.com/sevigo/gitgrant/internal/server"
)

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	slogLogger, loggerCleanup, err := provideSlogLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	ghClient, err := github.NewClientFromConfig(ctx, cfg, slogLogger)
	if err != nil {
		loggerCleanup()
		return nil, nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	issueFetcher := github.NewIssueFetcher(ghClient, slogLogger)

	generatorLLM, err := provideGeneratorLLM(ctx, cfg, slogLogger)
	if err != nil {
		loggerCleanup()
		return nil, nil, fmt.Errorf("failed to create generator LLM: %w", err)
	}
	generator := llm.NewGenerator(generatorLLM)

	promptMgr, err := llm.NewPromptManager()
	if err != nil {
		loggerCleanup()
		return nil, nil, fmt.Errorf("failed to create prompt manager: %w", err)
	}
	provider := provideModelProvider(cfg)

	evaluator := llm.NewIssueEvaluator(issueFetcher, generator, promptMgr, provider, slogLogger)
	rater := llm.NewIssueRater(generator, promptMgr, provider, slogLogger)
	contributions := llm.NewContributionAgent(ghClient, generator, promptMgr, provider, slogLogger)

	ledgerClient, ledgerCleanup, err := provideLedger(ctx, cfg, slogLogger)
	if err != nil {
		loggerCleanup()
		return nil, nil, fmt.Errorf("failed to create ledger client: %w", err)
	}

	registry := provideRegistry()
	metrics := provideMetrics(registry)
	orchestrator := provideOrchestrator(cfg, issueFetcher, evaluator, rater, ledgerClient, metrics, slogLogger)

	srv := server.NewServer(cfg, orchestrator, registry, slogLogger)

	application := app.NewApp(cfg, ghClient, issueFetcher, evaluator, rater, contributions, ledgerClient, orchestrator, srv, slogLogger)

	cleanup := func() {
		ledgerCleanup()
		loggerCleanup()
	}

	return application, cleanup, nil
}
