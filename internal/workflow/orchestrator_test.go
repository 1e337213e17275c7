package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/gitgrant/internal/core"
	"github.com/sevigo/gitgrant/mocks"
)

var bigIntComparer = cmp.Comparer(func(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
})

type harness struct {
	issues    *mocks.MockIssueSource
	evaluator *mocks.MockEvaluator
	rater     *mocks.MockRater
	ledger    *mocks.MockLedger
	metrics   *Metrics
	registry  *prometheus.Registry
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	reg := prometheus.NewRegistry()
	return &harness{
		issues:    mocks.NewMockIssueSource(ctrl),
		evaluator: mocks.NewMockEvaluator(ctrl),
		rater:     mocks.NewMockRater(ctrl),
		ledger:    mocks.NewMockLedger(ctrl),
		metrics:   MustNewMetrics(reg),
		registry:  reg,
	}
}

func (h *harness) orchestrator(stepLimit int) *Orchestrator {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewOrchestrator(h.issues, h.evaluator, h.rater, h.ledger, h.metrics, stepLimit, logger)
}

func registeredRepo(budget int64, ratingSum int64) *core.RepoState {
	return &core.RepoState{
		OwnerName:       "acme",
		RepoName:        "widgets",
		RemainingBudget: big.NewInt(budget),
		RatingSum:       big.NewInt(ratingSum),
	}
}

func intPtr(n int) *int { return &n }

func TestRun_EmptyActionTerminates(t *testing.T) {
	h := newHarness(t)
	in := &core.State{
		Owner:     "acme",
		Repo:      "widgets",
		Issues:    core.IssueRatings{1: 20, 2: 40},
		RatingSum: 60,
		Message:   "rated 2 issues for acme/widgets, rating sum 60",
	}

	out, err := h.orchestrator(DefaultStepLimit).Run(context.Background(), in)
	require.NoError(t, err)

	if diff := cmp.Diff(in, out, bigIntComparer); diff != "" {
		t.Errorf("state changed (-want +got):\n%s", diff)
	}
	assert.NotSame(t, in, out)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.nodeRuns.WithLabelValues("route", "ok")))
}

func TestRun_FetchEvaluatesInAscendingOrder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.ledger.EXPECT().GetRepoState(gomock.Any(), "acme/widgets").Return(registeredRepo(1000, 0), nil)
	h.issues.EXPECT().RepoConfig(gomock.Any(), "acme", "widgets").
		Return(&core.RepoConfig{CustomInstructions: []string{"be brief"}, ExcludeLabels: []string{"wontfix"}}, nil)
	h.issues.EXPECT().OpenIssues(gomock.Any(), "acme", "widgets").Return([]core.IssueDetails{
		{Number: 9, Labels: []string{"bug"}},
		{Number: 3},
		{Number: 5, Labels: []string{"WontFix"}},
		{Number: 7},
	}, nil)

	ratings := map[int]int{3: 10, 7: 30, 9: 60}
	var order []int
	for _, n := range []int{3, 7, 9} {
		ref := core.IssueRef{Owner: "acme", Repo: "widgets", Number: n}
		h.evaluator.EXPECT().Evaluate(gomock.Any(), ref, []string{"be brief"}).
			DoAndReturn(func(_ context.Context, ref core.IssueRef, _ []string) (string, error) {
				order = append(order, ref.Number)
				return "steps for " + ref.String(), nil
			})
		h.rater.EXPECT().Rate(gomock.Any(), "steps for "+ref.String()).Return(ratings[n], nil)
	}
	h.ledger.EXPECT().UpdateIssues(gomock.Any(), "acme/widgets",
		[]core.IssueRating{{Number: 3, Rating: 10}, {Number: 7, Rating: 30}, {Number: 9, Rating: 60}}, 100).
		Return(nil)

	in := &core.State{Owner: "acme", Repo: "widgets", Action: core.ActionFetch}
	out, err := h.orchestrator(DefaultStepLimit).Run(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, []int{3, 7, 9}, order)
	want := &core.State{
		Owner:           "acme",
		Repo:            "widgets",
		RemainingBudget: big.NewInt(1000),
		Action:          core.ActionNone,
		Issues:          core.IssueRatings{3: 10, 7: 30, 9: 60},
		RatingSum:       100,
		Message:         "rated 3 issues for acme/widgets, rating sum 100",
	}
	if diff := cmp.Diff(want, out, bigIntComparer); diff != "" {
		t.Errorf("final state mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, out.Issues.Unrated())
	assert.Equal(t, core.ActionFetch, in.Action, "input state must not be modified")
	assert.Equal(t, 3.0, testutil.ToFloat64(h.metrics.nodeRuns.WithLabelValues("rate", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.runs.WithLabelValues("fetch", "ok")))
}

func TestRun_FetchKeepsExistingRatings(t *testing.T) {
	h := newHarness(t)

	h.ledger.EXPECT().GetRepoState(gomock.Any(), "acme/widgets").Return(registeredRepo(500, 0), nil)
	h.issues.EXPECT().RepoConfig(gomock.Any(), "acme", "widgets").Return(core.DefaultRepoConfig(), nil)
	h.issues.EXPECT().OpenIssues(gomock.Any(), "acme", "widgets").Return([]core.IssueDetails{{Number: 1}, {Number: 2}}, nil)
	h.evaluator.EXPECT().Evaluate(gomock.Any(), core.IssueRef{Owner: "acme", Repo: "widgets", Number: 2}, []string{}).Return("items", nil)
	h.rater.EXPECT().Rate(gomock.Any(), "items").Return(15, nil)
	h.ledger.EXPECT().UpdateIssues(gomock.Any(), "acme/widgets", []core.IssueRating{{Number: 1, Rating: 25}, {Number: 2, Rating: 15}}, 40).Return(nil)

	out, err := h.orchestrator(DefaultStepLimit).Run(context.Background(), &core.State{
		Owner: "acme", Repo: "widgets", Action: core.ActionFetch, Issues: core.IssueRatings{1: 25},
	})
	require.NoError(t, err)
	assert.Equal(t, core.IssueRatings{1: 25, 2: 15}, out.Issues)
	assert.Equal(t, 40, out.RatingSum)
}

func TestRun_FetchRequiresRegisteredRepo(t *testing.T) {
	h := newHarness(t)
	h.ledger.EXPECT().GetRepoState(gomock.Any(), "acme/widgets").Return(&core.RepoState{}, nil)

	_, err := h.orchestrator(DefaultStepLimit).Run(context.Background(), &core.State{
		Owner: "acme", Repo: "widgets", Action: core.ActionFetch,
	})
	assert.ErrorIs(t, err, ErrRepoNotRegistered)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.runs.WithLabelValues("fetch", "error")))
}

func TestRun_NoIssuesFinalizesImmediately(t *testing.T) {
	h := newHarness(t)

	out, err := h.orchestrator(DefaultStepLimit).Run(context.Background(), &core.State{
		Owner: "acme", Repo: "widgets", Action: core.ActionEvaluate,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out.RatingSum)
	assert.Equal(t, core.ActionNone, out.Action)
	assert.Nil(t, out.CurrentIssue)
	assert.Equal(t, "rated 0 issues for acme/widgets, rating sum 0", out.Message)
}

func TestRun_FinalizationIsIdempotent(t *testing.T) {
	h := newHarness(t)
	rated := core.IssueRatings{4: 50, 8: 25}
	h.ledger.EXPECT().UpdateIssues(gomock.Any(), "acme/widgets", rated.Sorted(), 75).Return(nil).Times(2)

	orch := h.orchestrator(DefaultStepLimit)
	first, err := orch.Run(context.Background(), &core.State{
		Owner: "acme", Repo: "widgets", Action: core.ActionEvaluate, Issues: rated,
	})
	require.NoError(t, err)

	again := first.Clone()
	again.Action = core.ActionEvaluate
	second, err := orch.Run(context.Background(), again)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second, bigIntComparer); diff != "" {
		t.Errorf("second finalization changed the state (-first +second):\n%s", diff)
	}

	third, err := orch.Run(context.Background(), second)
	require.NoError(t, err)
	if diff := cmp.Diff(second, third, bigIntComparer); diff != "" {
		t.Errorf("re-invocation without action changed the state:\n%s", diff)
	}
}

func TestRun_StepLimitExceeded(t *testing.T) {
	h := newHarness(t)
	h.evaluator.EXPECT().Evaluate(gomock.Any(), gomock.Any(), gomock.Any()).Return("items", nil).AnyTimes()
	h.rater.EXPECT().Rate(gomock.Any(), "items").Return(10, nil).AnyTimes()
	h.issues.EXPECT().RepoConfig(gomock.Any(), "acme", "widgets").Return(core.DefaultRepoConfig(), nil).AnyTimes()

	issues := core.IssueRatings{}
	for n := 1; n <= 10; n++ {
		issues[n] = 0
	}

	// route + 10 * (evaluate, rate, route) needs 31 steps.
	_, err := h.orchestrator(12).Run(context.Background(), &core.State{
		Owner: "acme", Repo: "widgets", Action: core.ActionEvaluate, Issues: issues,
	})
	require.ErrorIs(t, err, ErrStepLimitExceeded)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.runs.WithLabelValues("evaluate", "error")))
}

func TestRun_EvaluatesCurrentIssueFirst(t *testing.T) {
	h := newHarness(t)
	h.issues.EXPECT().RepoConfig(gomock.Any(), "acme", "widgets").Return(core.DefaultRepoConfig(), nil)
	gomock.InOrder(
		h.evaluator.EXPECT().Evaluate(gomock.Any(), core.IssueRef{Owner: "acme", Repo: "widgets", Number: 12}, gomock.Any()).Return("a", nil),
		h.evaluator.EXPECT().Evaluate(gomock.Any(), core.IssueRef{Owner: "acme", Repo: "widgets", Number: 2}, gomock.Any()).Return("b", nil),
	)
	h.rater.EXPECT().Rate(gomock.Any(), "a").Return(70, nil)
	h.rater.EXPECT().Rate(gomock.Any(), "b").Return(30, nil)
	h.ledger.EXPECT().UpdateIssues(gomock.Any(), "acme/widgets", gomock.Len(2), 100).Return(nil)

	out, err := h.orchestrator(DefaultStepLimit).Run(context.Background(), &core.State{
		Owner: "acme", Repo: "widgets", Action: core.ActionEvaluate,
		CurrentIssue: intPtr(12), Issues: core.IssueRatings{2: 0, 12: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, core.IssueRatings{2: 30, 12: 70}, out.Issues)
}

func TestRun_RatingErrorPropagates(t *testing.T) {
	h := newHarness(t)
	h.issues.EXPECT().RepoConfig(gomock.Any(), "acme", "widgets").Return(core.DefaultRepoConfig(), nil)
	h.evaluator.EXPECT().Evaluate(gomock.Any(), gomock.Any(), gomock.Any()).Return("items", nil)
	h.rater.EXPECT().Rate(gomock.Any(), "items").Return(0, errors.New("no rating found"))

	_, err := h.orchestrator(DefaultStepLimit).Run(context.Background(), &core.State{
		Owner: "acme", Repo: "widgets", Action: core.ActionEvaluate, Issues: core.IssueRatings{1: 0},
	})
	assert.ErrorContains(t, err, "rate node")
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.nodeRuns.WithLabelValues("rate", "error")))
}

func TestRun_RegisterUser(t *testing.T) {
	h := newHarness(t)
	h.ledger.EXPECT().RegisterUser(gomock.Any(), "octocat", "0xabc").Return(nil)

	out, err := h.orchestrator(DefaultStepLimit).Run(context.Background(), &core.State{
		Username: "octocat", Address: "0xabc", Action: core.ActionRegisterUser,
	})
	require.NoError(t, err)
	assert.Equal(t, core.ActionNone, out.Action)
	assert.Equal(t, "registered user octocat with wallet 0xabc", out.Message)

	_, err = h.orchestrator(DefaultStepLimit).Run(context.Background(), &core.State{
		Username: "octocat", Action: core.ActionRegisterUser,
	})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestRun_RegisterRepo(t *testing.T) {
	t.Run("new repository", func(t *testing.T) {
		h := newHarness(t)
		h.ledger.EXPECT().CheckRepoRegistration(gomock.Any(), "acme/widgets").Return(false, nil)
		h.ledger.EXPECT().RegisterRepo(gomock.Any(), "acme", "widgets").Return(nil)
		h.ledger.EXPECT().GetRepoState(gomock.Any(), "acme/widgets").Return(registeredRepo(0, 0), nil)

		out, err := h.orchestrator(DefaultStepLimit).Run(context.Background(), &core.State{
			Owner: "acme", Repo: "widgets", Action: core.ActionRegisterRepo,
		})
		require.NoError(t, err)
		assert.Equal(t, "registered repository acme/widgets", out.Message)
		assert.Equal(t, int64(0), out.RemainingBudget.Int64())
	})

	t.Run("already registered only refreshes budget", func(t *testing.T) {
		h := newHarness(t)
		h.ledger.EXPECT().CheckRepoRegistration(gomock.Any(), "acme/widgets").Return(true, nil)
		h.ledger.EXPECT().GetRepoState(gomock.Any(), "acme/widgets").Return(registeredRepo(750, 10), nil)

		out, err := h.orchestrator(DefaultStepLimit).Run(context.Background(), &core.State{
			Owner: "acme", Repo: "widgets", Action: core.ActionRegisterRepo,
		})
		require.NoError(t, err)
		assert.Equal(t, "repository acme/widgets is already registered", out.Message)
		assert.Equal(t, int64(750), out.RemainingBudget.Int64())
	})
}

func TestRun_Resolve(t *testing.T) {
	h := newHarness(t)
	h.ledger.EXPECT().GetContributorAddress(gomock.Any(), "octocat").Return("0x00000000000000000000000000000000000000aa", nil)
	h.ledger.EXPECT().GetRepoState(gomock.Any(), "acme/widgets").Return(registeredRepo(1000, 90), nil)
	// 1000 * 40 / 90 = 444 with integer division.
	h.ledger.EXPECT().ResolveIssue(gomock.Any(), "acme/widgets", 5, "octocat", big.NewInt(444)).Return(nil)

	out, err := h.orchestrator(DefaultStepLimit).Run(context.Background(), &core.State{
		Owner: "acme", Repo: "widgets", Username: "octocat", Action: core.ActionResolve,
		CurrentIssue: intPtr(5), Issues: core.IssueRatings{5: 40, 6: 50}, RatingSum: 90,
	})
	require.NoError(t, err)

	want := &core.State{
		Owner:           "acme",
		Repo:            "widgets",
		Username:        "octocat",
		RemainingBudget: big.NewInt(556),
		Issues:          core.IssueRatings{6: 50},
		RatingSum:       50,
		Message:         "resolved issue #5 for acme/widgets, paid 444 wei to octocat",
	}
	if diff := cmp.Diff(want, out, bigIntComparer); diff != "" {
		t.Errorf("resolve state mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ResolveErrors(t *testing.T) {
	base := func() *core.State {
		return &core.State{
			Owner: "acme", Repo: "widgets", Username: "octocat", Action: core.ActionResolve,
			CurrentIssue: intPtr(5), Issues: core.IssueRatings{5: 40},
		}
	}

	t.Run("missing issue", func(t *testing.T) {
		h := newHarness(t)
		s := base()
		s.CurrentIssue = nil
		_, err := h.orchestrator(DefaultStepLimit).Run(context.Background(), s)
		assert.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("unrated issue", func(t *testing.T) {
		h := newHarness(t)
		s := base()
		s.Issues[5] = 0
		_, err := h.orchestrator(DefaultStepLimit).Run(context.Background(), s)
		assert.ErrorIs(t, err, ErrIssueNotRated)
	})

	t.Run("unregistered user", func(t *testing.T) {
		h := newHarness(t)
		h.ledger.EXPECT().GetContributorAddress(gomock.Any(), "octocat").Return("", nil)
		_, err := h.orchestrator(DefaultStepLimit).Run(context.Background(), base())
		assert.ErrorIs(t, err, ErrUserNotRegistered)
	})

	t.Run("zero rating sum", func(t *testing.T) {
		h := newHarness(t)
		h.ledger.EXPECT().GetContributorAddress(gomock.Any(), "octocat").Return("0xaa", nil)
		h.ledger.EXPECT().GetRepoState(gomock.Any(), "acme/widgets").Return(registeredRepo(1000, 0), nil)
		_, err := h.orchestrator(DefaultStepLimit).Run(context.Background(), base())
		assert.ErrorIs(t, err, core.ErrNoRatingSum)
	})

	t.Run("rating above ledger sum", func(t *testing.T) {
		h := newHarness(t)
		h.ledger.EXPECT().GetContributorAddress(gomock.Any(), "octocat").Return("0xaa", nil)
		h.ledger.EXPECT().GetRepoState(gomock.Any(), "acme/widgets").Return(registeredRepo(1000, 50), nil)
		s := base()
		s.Issues[5] = 90
		// No ResolveIssue expectation: gomock fails the test if it is sent.
		_, err := h.orchestrator(DefaultStepLimit).Run(context.Background(), s)
		assert.ErrorIs(t, err, core.ErrRatingExceedsSum)
	})

	t.Run("negative rating", func(t *testing.T) {
		h := newHarness(t)
		s := base()
		s.Issues[6] = -5
		_, err := h.orchestrator(DefaultStepLimit).Run(context.Background(), s)
		assert.ErrorIs(t, err, core.ErrInvalidIssueRating)
	})
}

func TestRun_RejectsInvalidRatingsBeforeLedgerWrites(t *testing.T) {
	tests := []struct {
		name   string
		issues core.IssueRatings
	}{
		{name: "negative rating", issues: core.IssueRatings{1: -5, 2: 0}},
		{name: "non-positive issue number", issues: core.IssueRatings{-1: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			_, err := h.orchestrator(DefaultStepLimit).Run(context.Background(), &core.State{
				Owner: "acme", Repo: "widgets", Action: core.ActionEvaluate, Issues: tt.issues,
			})
			assert.ErrorIs(t, err, core.ErrInvalidIssueRating)
		})
	}
}

func TestRun_EmptyActionKeepsNilIssues(t *testing.T) {
	h := newHarness(t)
	var in core.State
	require.NoError(t, json.Unmarshal([]byte(`{"owner":"acme","repo":"widgets","action":"","issues":null}`), &in))

	out, err := h.orchestrator(DefaultStepLimit).Run(context.Background(), &in)
	require.NoError(t, err)
	assert.Nil(t, out.Issues)

	body, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"issues":null`)
}

func TestRun_Cancelled(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.orchestrator(DefaultStepLimit).Run(ctx, &core.State{Action: core.ActionFetch})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_UnknownActionFailsDecoding(t *testing.T) {
	var s core.State
	err := json.Unmarshal([]byte(`{"owner": "acme", "action": "deploy"}`), &s)
	assert.ErrorIs(t, err, core.ErrUnknownAction)

	h := newHarness(t)
	_, err = h.orchestrator(DefaultStepLimit).Run(context.Background(), &core.State{Action: "deploy"})
	assert.ErrorIs(t, err, core.ErrUnknownAction)
}

func TestMustNewMetrics_ReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := MustNewMetrics(reg)
	second := MustNewMetrics(reg)
	assert.Same(t, first.nodeRuns, second.nodeRuns)
	assert.Same(t, first.runs, second.runs)
}
