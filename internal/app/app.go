// Package app holds the assembled gitgrant services. The server binary runs
// them behind HTTP, the CLI calls them directly.
package app

import (
	"log/slog"

	"github.com/sevigo/gitgrant/internal/config"
	"github.com/sevigo/gitgrant/internal/core"
	"github.com/sevigo/gitgrant/internal/github"
	"github.com/sevigo/gitgrant/internal/ledger"
	"github.com/sevigo/gitgrant/internal/llm"
	"github.com/sevigo/gitgrant/internal/server"
	"github.com/sevigo/gitgrant/internal/workflow"
)

// App holds the main application components.
type App struct {
	Cfg           *config.Config
	GitHub        github.Client
	Issues        core.IssueSource
	Evaluator     core.Evaluator
	Rater         core.Rater
	Contributions *llm.ContributionAgent
	Ledger        *ledger.Client
	Workflow      core.WorkflowRunner

	server *server.Server
	logger *slog.Logger
}

// NewApp bundles the already constructed services.
func NewApp(
	cfg *config.Config,
	ghClient github.Client,
	issues *github.IssueFetcher,
	evaluator *llm.IssueEvaluator,
	rater *llm.IssueRater,
	contributions *llm.ContributionAgent,
	ledgerClient *ledger.Client,
	orchestrator *workflow.Orchestrator,
	srv *server.Server,
	logger *slog.Logger,
) *App {
	logger.Info("gitgrant application initialized",
		"llm_provider", cfg.AI.LLMProvider,
		"generator_model", cfg.AI.GeneratorModel,
		"chain_id", cfg.Ledger.ChainID,
		"step_limit", cfg.Workflow.StepLimit)

	return &App{
		Cfg:           cfg,
		GitHub:        ghClient,
		Issues:        issues,
		Evaluator:     evaluator,
		Rater:         rater,
		Contributions: contributions,
		Ledger:        ledgerClient,
		Workflow:      orchestrator,
		server:        srv,
		logger:        logger,
	}
}

// Start runs the HTTP server. It blocks until the server stops.
func (a *App) Start() error {
	a.logger.Info("starting gitgrant", "server_port", a.Cfg.Server.Port)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts the HTTP server down. A workflow run in progress is allowed to
// finish within the shutdown timeout.
func (a *App) Stop() error {
	a.logger.Info("shutting down gitgrant")

	if err := a.server.Stop(); err != nil {
		a.logger.Error("gitgrant stopped with errors", "error", err)
		return err
	}

	a.logger.Info("gitgrant stopped successfully")
	return nil
}
