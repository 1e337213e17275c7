package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sevigo/gitgrant/internal/core"
	"github.com/sevigo/gitgrant/internal/gitutil"
)

var invokeFlags struct {
	stateFile string
	action    string
	username  string
	address   string
}

var invokeCmd = &cobra.Command{
	Use:   "invoke [owner/repo]",
	Short: "Run the grant workflow once",
	Long: `Run the grant workflow once and print the resulting state.

The starting state is read from --state (a JSON file, or - for stdin) or built
from the repository argument and flags.

Examples:
  gitgrant-cli invoke acme/widgets --action fetch
  gitgrant-cli invoke acme/widgets --action "register user" --username octocat --address 0x...
  gitgrant-cli invoke --state state.json --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInvoke,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	invokeCmd.Flags().StringVarP(&invokeFlags.stateFile, "state", "s", "", "JSON state file, - for stdin")
	invokeCmd.Flags().StringVarP(&invokeFlags.action, "action", "a", string(core.ActionFetch), "Workflow action")
	invokeCmd.Flags().StringVarP(&invokeFlags.username, "username", "u", "", "GitHub username")
	invokeCmd.Flags().StringVar(&invokeFlags.address, "address", "", "Wallet address")
	rootCmd.AddCommand(invokeCmd)
}

func runInvoke(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	state, err := initialState(args)
	if err != nil {
		return err
	}

	a, cleanup, err := initApp(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if !outputJSON {
		titleColor.Printf("Running %q for %s\n", state.Action, state.RepoID())
	}
	final, err := a.Workflow.Run(ctx, state)
	if err != nil {
		return fmt.Errorf("error while invoking workflow: %w", err)
	}
	return printState(final)
}

func initialState(args []string) (*core.State, error) {
	if invokeFlags.stateFile != "" {
		return readState(invokeFlags.stateFile)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("either a repository or --state is required")
	}

	owner, repo, err := gitutil.ParseRepository(args[0])
	if err != nil {
		return nil, err
	}
	action, err := core.ParseAction(invokeFlags.action)
	if err != nil {
		return nil, err
	}
	return &core.State{
		Owner:    owner,
		Repo:     repo,
		Username: invokeFlags.username,
		Address:  invokeFlags.address,
		Action:   action,
		Issues:   core.IssueRatings{},
	}, nil
}

func readState(path string) (*core.State, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open state file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var state core.State
	if err := json.NewDecoder(r).Decode(&state); err != nil {
		return nil, fmt.Errorf("invalid state JSON: %w", err)
	}
	return &state, nil
}
