package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v73/github"

	"github.com/sevigo/gitgrant/internal/config"
)

// NewAppClient creates a GitHub client that is authenticated as a specific
// application installation. Installation tokens are refreshed by the
// transport when they expire.
func NewAppClient(cfg config.GitHubConfig, logger *slog.Logger) (Client, error) {
	logger.Info("creating GitHub installation client", "app_id", cfg.AppID, "installation_id", cfg.InstallationID)

	transport, err := ghinstallation.NewKeyFromFile(http.DefaultTransport, cfg.AppID, cfg.InstallationID, cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub App transport from %s: %w", cfg.PrivateKeyPath, err)
	}

	client := github.NewClient(&http.Client{Transport: transport})
	if cfg.BaseURL != "" {
		transport.BaseURL = cfg.BaseURL
		if client, err = client.WithEnterpriseURLs(cfg.BaseURL, cfg.BaseURL); err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", cfg.BaseURL, err)
		}
	}
	return NewGitHubClient(client, logger), nil
}

// NewClientFromConfig picks personal access token or App installation
// authentication, whichever the configuration provides.
func NewClientFromConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Client, error) {
	if err := cfg.GitHub.Validate(); err != nil {
		return nil, err
	}
	if cfg.GitHub.UsesApp() {
		return NewAppClient(cfg.GitHub, logger)
	}

	logger.Info("creating GitHub client with personal access token")
	client := NewPATClient(ctx, cfg.GitHub.Token, logger)
	if cfg.GitHub.BaseURL == "" {
		return client, nil
	}

	gc := client.(*gitHubClient)
	enterprise, err := gc.client.WithEnterpriseURLs(cfg.GitHub.BaseURL, cfg.GitHub.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", cfg.GitHub.BaseURL, err)
	}
	return NewGitHubClient(enterprise, logger), nil
}
