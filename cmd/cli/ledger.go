package main

import (
	"context"
	"fmt"
	"math/big"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sevigo/gitgrant/internal/config"
	"github.com/sevigo/gitgrant/internal/core"
	"github.com/sevigo/gitgrant/internal/gitutil"
)

var resolveRating int

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Read and administer the on-chain grant ledger",
}

var ledgerOwnerCmd = &cobra.Command{
	Use:   "owner",
	Short: "Print the contract owner address",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx := context.Background()
		a, cleanup, err := initApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		owner, err := a.Ledger.Owner(ctx)
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(map[string]string{"owner": owner})
		}
		infoColor.Println(owner)
		return nil
	},
}

var ledgerRepoStateCmd = &cobra.Command{
	Use:   "repo-state [owner/repo]",
	Short: "Show the on-chain state of a repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()
		owner, repo, err := gitutil.ParseRepository(args[0])
		if err != nil {
			return err
		}
		a, cleanup, err := initApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		state, err := a.Ledger.GetRepoState(ctx, core.RepoID(owner, repo))
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(state)
		}
		if !state.Registered() {
			warnColor.Printf("%s/%s is not registered\n", owner, repo)
			return nil
		}
		titleColor.Printf("%s/%s\n", state.OwnerName, state.RepoName)
		infoColor.Printf("Remaining budget: %s wei\n", state.RemainingBudget)
		infoColor.Printf("Rating sum:       %s\n", state.RatingSum)
		return nil
	},
}

var ledgerUserCmd = &cobra.Command{
	Use:   "user [username]",
	Short: "Print the wallet registered for a GitHub user",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()
		a, cleanup, err := initApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		wallet, err := a.Ledger.GetContributorAddress(ctx, args[0])
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(map[string]string{"username": args[0], "address": wallet})
		}
		if wallet == "" {
			warnColor.Printf("%s has no registered wallet\n", args[0])
			return nil
		}
		infoColor.Println(wallet)
		return nil
	},
}

var ledgerRegisterUserCmd = &cobra.Command{
	Use:   "register-user [username] [wallet]",
	Short: "Link a GitHub username to a wallet address",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		if err := config.ValidateAddress(args[1]); err != nil {
			return err
		}
		return runWorkflow(&core.State{
			Username: args[0],
			Address:  args[1],
			Action:   core.ActionRegisterUser,
		})
	},
}

var ledgerRegisterRepoCmd = &cobra.Command{
	Use:   "register-repo [owner/repo]",
	Short: "Register a repository for grants",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		owner, repo, err := gitutil.ParseRepository(args[0])
		if err != nil {
			return err
		}
		return runWorkflow(&core.State{Owner: owner, Repo: repo, Action: core.ActionRegisterRepo})
	},
}

var ledgerResolveCmd = &cobra.Command{
	Use:   "resolve [owner/repo] [issue] [username]",
	Short: "Pay a contributor for a resolved issue",
	Long: `Pay a contributor for a resolved issue.

The payout is the issue's share of the remaining budget, computed from its
difficulty rating and the repository's rating sum on chain.

Example:
  gitgrant-cli ledger resolve acme/widgets 12 octocat --rating 40`,
	Args: cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		owner, repo, err := gitutil.ParseRepository(args[0])
		if err != nil {
			return err
		}
		issue, err := strconv.Atoi(args[1])
		if err != nil || issue <= 0 {
			return fmt.Errorf("invalid issue number %q", args[1])
		}
		if resolveRating <= 0 {
			return fmt.Errorf("--rating must be positive, got %d", resolveRating)
		}

		state := &core.State{
			Owner:    owner,
			Repo:     repo,
			Username: args[2],
			Action:   core.ActionResolve,
			Issues:   core.IssueRatings{issue: resolveRating},
		}
		state.SelectIssue(issue)
		return runWorkflow(state)
	},
}

var ledgerDepositCmd = &cobra.Command{
	Use:   "deposit [owner/repo] [amount-wei]",
	Short: "Add funds to a repository's budget",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()
		owner, repo, err := gitutil.ParseRepository(args[0])
		if err != nil {
			return err
		}
		amount, ok := new(big.Int).SetString(args[1], 10)
		if !ok || amount.Sign() <= 0 {
			return fmt.Errorf("invalid amount %q", args[1])
		}

		a, cleanup, err := initApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := a.Ledger.DepositFunds(ctx, core.RepoID(owner, repo), amount); err != nil {
			return err
		}
		successColor.Printf("Deposited %s wei to %s/%s\n", amount, owner, repo)
		return nil
	},
}

func runWorkflow(state *core.State) error {
	ctx := context.Background()
	a, cleanup, err := initApp(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	final, err := a.Workflow.Run(ctx, state)
	if err != nil {
		return fmt.Errorf("error while invoking workflow: %w", err)
	}
	return printState(final)
}

func init() { //nolint:gochecknoinits // Cobra command registration
	ledgerResolveCmd.Flags().IntVarP(&resolveRating, "rating", "r", 0, "Difficulty rating of the issue")
	_ = ledgerResolveCmd.MarkFlagRequired("rating")

	ledgerCmd.AddCommand(
		ledgerOwnerCmd,
		ledgerRepoStateCmd,
		ledgerUserCmd,
		ledgerRegisterUserCmd,
		ledgerRegisterRepoCmd,
		ledgerResolveCmd,
		ledgerDepositCmd,
	)
	rootCmd.AddCommand(ledgerCmd)
}
