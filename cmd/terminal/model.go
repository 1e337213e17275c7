package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/sevigo/gitgrant/internal/app"
	"github.com/sevigo/gitgrant/internal/config"
	"github.com/sevigo/gitgrant/internal/core"
	"github.com/sevigo/gitgrant/internal/gitutil"
)

const banner = `
  ┌─┐┬┌┬┐┌─┐┬─┐┌─┐┌┐┌┌┬┐
  │ ┬│ │ │ ┬├┬┘├─┤│││ │
  └─┘┴ ┴ └─┘┴└─┴ ┴┘└┘ ┴
  difficulty-weighted grants for open issues
`

const helpText = `
  /repo [owner/repo]          Select a repository and read its on-chain state.
  /fetch                      Fetch open issues and rate every unrated one.
  /issues                     Show the ratings collected in this session.
  /evaluate [number]          Evaluate and rate a single issue without the ledger.
  /rate [text]                Rate free text, or the last evaluation when empty.
  /register-user [name] [0x]  Link a GitHub user to a wallet.
  /register-repo              Register the selected repository.
  /resolve [number] [user]    Pay a contributor for a rated issue.
  /pr [url]                   Show the author and linked issue of a pull request.
  /help                       Show this help message.
  /exit, /quit                Exit gitgrant.`

type model struct {
	styles styles
	app    *app.App
	// releases the ledger connection and log file on exit
	cleanup func()

	viewport  viewport.Model
	textarea  textarea.Model
	spinner   spinner.Model
	markdown  *glamour.TermRenderer
	isLoading bool

	// session is the workflow state carried between commands.
	session *core.State
	// lastItems holds the action items of the latest /evaluate.
	lastItems string
	history []string
}

func initialModel(theme ThemeName) *model {
	s := GetTheme(theme)
	ta := textarea.New()
	ta.Placeholder = "Enter a command, /help for the list..."
	ta.Focus()
	ta.Prompt = s.prompt.Render("$ ")
	ta.CharLimit = 300
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.accent

	return &model{
		styles:    s,
		textarea:  ta,
		spinner:   sp,
		isLoading: true,
		session:   &core.State{Issues: core.IssueRatings{}},
		history:   []string{s.banner.Render(banner), "", "Connecting to GitHub, the LLM and the ledger..."},
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(initializeAppCmd(), m.spinner.Tick)
}

func (m *model) print(lines ...string) {
	m.history = append(m.history, lines...)
	m.viewport.SetContent(strings.Join(m.history, "\n"))
	m.viewport.GotoBottom()
}

func (m *model) fail(err error) {
	m.print("", m.styles.error.Render("ERROR: "+err.Error()))
}

func (m *model) quit() tea.Cmd {
	if m.cleanup != nil {
		m.cleanup()
		m.cleanup = nil
	}
	return tea.Quit
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	m.spinner, spCmd = m.spinner.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, m.quit()
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" || m.isLoading {
				return m, nil
			}
			return m, m.processCommand(input)
		}

	case appInitializedMsg:
		m.isLoading = false
		if msg.err != nil {
			m.fail(msg.err)
			return m, nil
		}
		m.app = msg.app
		m.cleanup = msg.cleanup
		m.print("", m.styles.success.Render("READY"), "Select a repository with /repo owner/repo. Type /help for commands.")
		return m, nil

	case repoLoadedMsg:
		m.isLoading = false
		if msg.err != nil {
			m.fail(msg.err)
			return m, nil
		}
		m.session = &core.State{Owner: msg.owner, Repo: msg.repo, Issues: core.IssueRatings{}}
		if !msg.state.Registered() {
			m.print("", m.styles.warning.Render(fmt.Sprintf("%s is not registered. Use /register-repo first.", m.session.RepoID())))
			return m, nil
		}
		m.session.RemainingBudget = msg.state.RemainingBudget
		m.print("", m.styles.success.Render("Selected "+m.session.RepoID()),
			fmt.Sprintf("Remaining budget %s wei, rating sum %s", msg.state.RemainingBudget, msg.state.RatingSum))
		return m, nil

	case workflowDoneMsg:
		m.isLoading = false
		if msg.err != nil {
			m.fail(msg.err)
			return m, nil
		}
		m.print("", m.styles.success.Render(msg.state.Message))
		// User registration runs carry no repository and leave the session alone.
		if msg.state.Owner == "" {
			return m, nil
		}
		m.session = msg.state
		if len(msg.state.Issues) > 0 {
			m.print(m.ratingsTable())
		}
		return m, nil

	case evaluationMsg:
		m.isLoading = false
		if msg.err != nil {
			m.fail(fmt.Errorf("evaluating %s: %w", msg.ref, msg.err))
			return m, nil
		}
		m.lastItems = msg.items
		m.print("", m.styles.accent.Render("Action items for "+msg.ref.String()), m.renderMarkdown(msg.items),
			m.styles.success.Render(fmt.Sprintf("Difficulty rating: %d", msg.rating)))
		return m, nil

	case ratingMsg:
		m.isLoading = false
		if msg.err != nil {
			m.fail(msg.err)
			return m, nil
		}
		m.print("", m.styles.success.Render(fmt.Sprintf("Difficulty rating: %d", msg.rating)))
		return m, nil

	case contributionMsg:
		m.isLoading = false
		if msg.err != nil {
			m.fail(msg.err)
			return m, nil
		}
		c := msg.contribution
		linked := "none"
		if c.LinkedIssue != 0 {
			linked = fmt.Sprintf("#%d (%s)", c.LinkedIssue, c.IssueState)
		}
		m.print("", m.styles.accent.Render("Pull request "+msg.ref.String()),
			fmt.Sprintf("  author %s, state %s, merged %t, linked issue %s", c.Author, c.PRState, c.Merged, linked))
		return m, nil

	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 8
		m.textarea.SetWidth(msg.Width - 10)
		if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(msg.Width-8)); err == nil {
			m.markdown = r
		}
		m.viewport.SetContent(strings.Join(m.history, "\n"))
	}

	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

func (m *model) renderMarkdown(md string) string {
	if m.markdown == nil {
		return md
	}
	out, err := m.markdown.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func (m *model) ratingsTable() string {
	var b strings.Builder
	for _, r := range m.session.Issues.Sorted() {
		rating := m.styles.inactive.Render("unrated")
		if r.Rating > 0 {
			rating = strconv.Itoa(r.Rating)
		}
		fmt.Fprintf(&b, "  #%-6d %s\n", r.Number, rating)
	}
	b.WriteString(m.styles.inactive.Render(fmt.Sprintf("  rating sum %d", m.session.RatingSum)))
	return b.String()
}

func (m *model) View() string {
	if m.app == nil && m.isLoading {
		return fmt.Sprintf("\n  %s starting gitgrant...\n\n", m.spinner.View())
	}

	var statusParts []string
	if m.session.Owner != "" {
		statusParts = append(statusParts, "REPO: "+m.session.RepoID())
	} else {
		statusParts = append(statusParts, "REPO: none")
	}
	if m.session.RemainingBudget != nil {
		statusParts = append(statusParts, fmt.Sprintf("BUDGET: %s wei", m.session.RemainingBudget))
	}
	statusParts = append(statusParts, fmt.Sprintf("ISSUES: %d", len(m.session.Issues)))
	if m.app != nil {
		statusParts = append(statusParts, fmt.Sprintf("%s (%s)", m.app.Cfg.AI.GeneratorModel, m.app.Cfg.AI.LLMProvider))
	}
	status := m.styles.inactive.Render(strings.Join(statusParts, " │ "))

	var loadingIndicator string
	if m.isLoading {
		loadingIndicator = " " + m.spinner.View() + " " + m.styles.accent.Render("working...")
	}

	return m.styles.app.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.styles.viewport.Render(m.viewport.View()),
			m.styles.footer.Render(
				lipgloss.JoinHorizontal(lipgloss.Left,
					m.textarea.View(),
					loadingIndicator,
				),
			),
			status,
		),
	)
}

func (m *model) usage(text string) tea.Cmd {
	m.print("", m.styles.error.Render("USAGE: "+text))
	return nil
}

func (m *model) requireRepo() bool {
	if m.session.Owner == "" {
		m.print("", m.styles.error.Render("No repository is selected. Use /repo owner/repo first."))
		return false
	}
	return true
}

func (m *model) start(note string, cmd tea.Cmd) tea.Cmd {
	m.isLoading = true
	m.print("", m.styles.command.Render("→ "+note))
	return tea.Batch(m.spinner.Tick, cmd)
}

func (m *model) processCommand(input string) tea.Cmd {
	m.print(m.styles.prompt.Render("$ ") + input)

	parts := strings.Fields(input)
	command, args := parts[0], parts[1:]

	switch command {
	case "/exit", "/quit":
		return m.quit()
	case "/help", "/h":
		m.print("", m.styles.success.Render("AVAILABLE COMMANDS:")+helpText)
		return nil
	}

	if m.app == nil {
		m.print("", m.styles.error.Render("gitgrant failed to start; only /help and /exit are available."))
		return nil
	}

	switch command {
	case "/repo":
		if len(args) != 1 {
			return m.usage("/repo [owner/repo]")
		}
		owner, repo, err := gitutil.ParseRepository(args[0])
		if err != nil {
			m.fail(err)
			return nil
		}
		return m.start("Reading ledger state for "+core.RepoID(owner, repo), loadRepoCmd(m.app, owner, repo))

	case "/fetch":
		if !m.requireRepo() {
			return nil
		}
		state := m.session.Clone()
		state.Action = core.ActionFetch
		return m.start("Fetching and rating issues, this may take a while", runWorkflowCmd(m.app, state))

	case "/issues":
		if len(m.session.Issues) == 0 {
			m.print("", m.styles.inactive.Render("No issues in this session. Run /fetch first."))
			return nil
		}
		m.print("", m.ratingsTable())
		return nil

	case "/evaluate":
		if !m.requireRepo() {
			return nil
		}
		number, err := strconv.Atoi(strings.TrimPrefix(strings.Join(args, ""), "#"))
		if len(args) != 1 || err != nil || number <= 0 {
			return m.usage("/evaluate [number]")
		}
		ref := core.IssueRef{Owner: m.session.Owner, Repo: m.session.Repo, Number: number}
		return m.start("Evaluating "+ref.String(), evaluateIssueCmd(m.app, ref))

	case "/rate":
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			text = m.lastItems
		}
		if text == "" {
			return m.usage("/rate [text], or /evaluate an issue first")
		}
		return m.start("Rating", rateCmd(m.app, text))

	case "/register-user":
		if len(args) != 2 {
			return m.usage("/register-user [name] [wallet]")
		}
		if err := config.ValidateAddress(args[1]); err != nil {
			m.fail(err)
			return nil
		}
		state := &core.State{Username: args[0], Address: args[1], Action: core.ActionRegisterUser}
		return m.start("Registering "+args[0], runWorkflowCmd(m.app, state))

	case "/register-repo":
		if !m.requireRepo() {
			return nil
		}
		state := m.session.Clone()
		state.Action = core.ActionRegisterRepo
		return m.start("Registering "+state.RepoID(), runWorkflowCmd(m.app, state))

	case "/resolve":
		if !m.requireRepo() {
			return nil
		}
		if len(args) != 2 {
			return m.usage("/resolve [number] [username]")
		}
		number, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
		if err != nil || number <= 0 {
			return m.usage("/resolve [number] [username]")
		}
		state := m.session.Clone()
		state.Action = core.ActionResolve
		state.Username = args[1]
		state.SelectIssue(number)
		return m.start(fmt.Sprintf("Resolving #%d for %s", number, args[1]), runWorkflowCmd(m.app, state))

	case "/pr":
		if len(args) != 1 {
			return m.usage("/pr [url]")
		}
		ref, err := gitutil.ParsePullRequestURL(args[0])
		if err != nil {
			m.fail(err)
			return nil
		}
		return m.start("Inspecting "+ref.String(), contributionCmd(m.app, ref))

	default:
		m.print("", m.styles.error.Render("UNKNOWN COMMAND: "+command), m.styles.inactive.Render("Type /help for assistance."))
		return nil
	}
}
