// Package config loads gitgrant settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"

	"github.com/sevigo/gitgrant/internal/logger"
)

var (
	ErrMissingGitHubAuth = errors.New("either GITHUB_TOKEN or GITHUB_APP_ID with GITHUB_INSTALLATION_ID must be set")
	ErrInvalidProvider   = errors.New("unsupported LLM provider")
)

var supportedProviders = []string{"gemini", "ollama"}

// Config holds the application's configuration values.
type Config struct {
	Server   ServerConfig
	AI       AIConfig
	GitHub   GitHubConfig
	Ledger   LedgerConfig
	Workflow WorkflowConfig
	Logging  logger.Config
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// Requests waiting behind the running workflow before /invoke answers 429.
	InvokeBacklog int
}

type AIConfig struct {
	LLMProvider    string
	GeneratorModel string
	GeminiAPIKey   string
	OllamaHost     string
}

type GitHubConfig struct {
	Token          string
	AppID          int64
	InstallationID int64
	PrivateKeyPath string
	// BaseURL overrides the public API endpoint, for GitHub Enterprise.
	BaseURL string
}

type LedgerConfig struct {
	RPCURL             string
	ChainID            int64
	ABIPath            string
	AddressPath        string
	WalletKeyPath      string
	KeystorePassphrase string
	ReceiptTimeout     time.Duration
}

type WorkflowConfig struct {
	StepLimit int
}

// Validate reports an error when the AI settings cannot produce a model.
func (c *AIConfig) Validate() error {
	if !slices.Contains(supportedProviders, c.LLMProvider) {
		return fmt.Errorf("%w: %q", ErrInvalidProvider, c.LLMProvider)
	}
	if c.LLMProvider == "gemini" && c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY must be set for the gemini provider")
	}
	if c.GeneratorModel == "" {
		return fmt.Errorf("GENERATOR_MODEL_NAME must be set")
	}
	return nil
}

// Validate checks that one complete authentication method is configured.
func (c *GitHubConfig) Validate() error {
	if c.Token != "" {
		return nil
	}
	if c.AppID == 0 || c.InstallationID == 0 {
		return ErrMissingGitHubAuth
	}
	if c.PrivateKeyPath == "" {
		return fmt.Errorf("GITHUB_PRIVATE_KEY_PATH must be set for GitHub App authentication")
	}
	return nil
}

// UsesApp reports whether the client should authenticate as an App installation.
func (c *GitHubConfig) UsesApp() bool {
	return c.Token == "" && c.AppID != 0
}

// Validate checks the settings needed to reach the contract.
func (c *LedgerConfig) Validate() error {
	if c.RPCURL == "" {
		return fmt.Errorf("LEDGER_RPC_URL must be set")
	}
	if c.ChainID <= 0 {
		return fmt.Errorf("LEDGER_CHAIN_ID must be positive, got %d", c.ChainID)
	}
	if c.AddressPath == "" {
		return fmt.Errorf("LEDGER_ADDRESS_PATH must be set")
	}
	if c.WalletKeyPath == "" {
		return fmt.Errorf("LEDGER_WALLET_KEY_PATH must be set")
	}
	if c.ReceiptTimeout <= 0 {
		return fmt.Errorf("LEDGER_RECEIPT_TIMEOUT must be positive")
	}
	return nil
}

// ValidateAddress is a convenience for commands that take a wallet address
// on the command line.
func ValidateAddress(address string) error {
	if !common.IsHexAddress(address) {
		return fmt.Errorf("invalid wallet address %q", address)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "5000")
	viper.SetDefault("SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "15m")
	viper.SetDefault("SERVER_IDLE_TIMEOUT", "120s")
	viper.SetDefault("SERVER_INVOKE_BACKLOG", 8)

	viper.SetDefault("LLM_PROVIDER", "ollama")
	viper.SetDefault("GENERATOR_MODEL_NAME", "gemma3:latest")
	viper.SetDefault("OLLAMA_HOST", "http://localhost:11434")

	viper.SetDefault("GITHUB_PRIVATE_KEY_PATH", "keys/gitgrant-app.private-key.pem")

	viper.SetDefault("LEDGER_RPC_URL", "https://sepolia.base.org")
	viper.SetDefault("LEDGER_CHAIN_ID", 84532)
	viper.SetDefault("LEDGER_ABI_PATH", "")
	viper.SetDefault("LEDGER_ADDRESS_PATH", "contract_address.txt")
	viper.SetDefault("LEDGER_WALLET_KEY_PATH", "wallet.key")
	viper.SetDefault("LEDGER_RECEIPT_TIMEOUT", "2m")

	viper.SetDefault("WORKFLOW_STEP_LIMIT", 100)

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("LOG_OUTPUT", "stdout")
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets sensible defaults, and validates the settings every command needs.
// Collaborator-specific sections are validated by the constructors that use
// them, so commands that never touch the chain do not need ledger settings.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			slog.Error("failed to read config file", "error", err)
		}
	}

	provider := strings.ToLower(viper.GetString("LLM_PROVIDER"))
	generatorModel := viper.GetString("GENERATOR_MODEL_NAME")
	// Special handling for Gemini generator model name.
	if provider == "gemini" {
		generatorModel = viper.GetString("GEMINI_GENERATOR_MODEL_NAME")
		if generatorModel == "" {
			generatorModel = "gemini-2.5-flash"
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:          viper.GetString("SERVER_PORT"),
			ReadTimeout:   viper.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:  viper.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:   viper.GetDuration("SERVER_IDLE_TIMEOUT"),
			InvokeBacklog: viper.GetInt("SERVER_INVOKE_BACKLOG"),
		},
		AI: AIConfig{
			LLMProvider:    provider,
			GeneratorModel: generatorModel,
			GeminiAPIKey:   viper.GetString("GEMINI_API_KEY"),
			OllamaHost:     viper.GetString("OLLAMA_HOST"),
		},
		GitHub: GitHubConfig{
			Token:          viper.GetString("GITHUB_TOKEN"),
			AppID:          viper.GetInt64("GITHUB_APP_ID"),
			InstallationID: viper.GetInt64("GITHUB_INSTALLATION_ID"),
			PrivateKeyPath: viper.GetString("GITHUB_PRIVATE_KEY_PATH"),
			BaseURL:        viper.GetString("GITHUB_API_URL"),
		},
		Ledger: LedgerConfig{
			RPCURL:             viper.GetString("LEDGER_RPC_URL"),
			ChainID:            viper.GetInt64("LEDGER_CHAIN_ID"),
			ABIPath:            viper.GetString("LEDGER_ABI_PATH"),
			AddressPath:        viper.GetString("LEDGER_ADDRESS_PATH"),
			WalletKeyPath:      viper.GetString("LEDGER_WALLET_KEY_PATH"),
			KeystorePassphrase: viper.GetString("LEDGER_KEYSTORE_PASSPHRASE"),
			ReceiptTimeout:     viper.GetDuration("LEDGER_RECEIPT_TIMEOUT"),
		},
		Workflow: WorkflowConfig{
			StepLimit: viper.GetInt("WORKFLOW_STEP_LIMIT"),
		},
		Logging: logger.Config{
			Level:  strings.ToLower(viper.GetString("LOG_LEVEL")),
			Format: strings.ToLower(viper.GetString("LOG_FORMAT")),
			Output: viper.GetString("LOG_OUTPUT"),
		},
	}

	if err := cfg.AI.Validate(); err != nil {
		return nil, err
	}
	if cfg.Workflow.StepLimit <= 0 {
		return nil, fmt.Errorf("WORKFLOW_STEP_LIMIT must be positive, got %d", cfg.Workflow.StepLimit)
	}
	if cfg.Server.InvokeBacklog < 0 {
		return nil, fmt.Errorf("SERVER_INVOKE_BACKLOG must not be negative")
	}
	if _, err := logger.ParseLevel(cfg.Logging.Level); err != nil {
		slog.Warn("unrecognized log level, defaulting to info", "provided", cfg.Logging.Level)
		cfg.Logging.Level = "info"
	}

	return cfg, nil
}

// viper reports a missing explicit config file as a plain fs error rather
// than ConfigFileNotFoundError.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
