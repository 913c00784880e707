package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/datascope/datascope-cli/internal/api"
	"github.com/datascope/datascope-cli/internal/config"
	"github.com/datascope/datascope-cli/internal/i18n"
	"github.com/datascope/datascope-cli/internal/result"
	"github.com/datascope/datascope-cli/internal/session"
)

// feedbackBannerDuration is how long the thank-you banner stays up
// after feedback is accepted.
const feedbackBannerDuration = 3 * time.Second

type State int

const (
	StateLogin State = iota
	StateSignup
	StateAuthing
	StateCompose
	StateSubmitting
	StateResult
	StateHistory
	StateLoadingHistory
	StateFeedback
	StateSendingFeedback
	StateMessage
)

func (s State) String() string {
	switch s {
	case StateLogin:
		return "Login"
	case StateSignup:
		return "Signup"
	case StateAuthing:
		return "Authing"
	case StateCompose:
		return "Compose"
	case StateSubmitting:
		return "Submitting"
	case StateResult:
		return "Result"
	case StateHistory:
		return "History"
	case StateLoadingHistory:
		return "LoadingHistory"
	case StateFeedback:
		return "Feedback"
	case StateSendingFeedback:
		return "SendingFeedback"
	case StateMessage:
		return "Message"
	default:
		return "Unknown"
	}
}

type Model struct {
	state  State
	width  int
	height int
	styles Styles
	keys   KeyMap

	themeIndex int
	showHelp   bool
	lang       i18n.Lang

	cfg    *config.Config
	sess   *session.Store
	client *api.Client

	spinner       spinner.Model
	statusMessage string
	messageType   string

	loginResult    LoginResult
	loginForm      *huh.Form
	signupResult   SignupResult
	signupForm     *huh.Form
	composeResult  ComposeResult
	composeForm    *huh.Form
	feedbackResult FeedbackResult
	feedbackForm   *huh.Form
	formError      string

	analysis     *result.Analysis
	feedbackSent bool
	history      HistoryView

	// reqSeq tags analysis requests so a stale response (an earlier
	// request resolving after a later one) is discarded instead of
	// overwriting the newest result.
	reqSeq int

	sessionExpired bool
}

// NewModel wires the UI to its dependencies. Session, config and API
// client are passed in explicitly; nothing in the UI reaches into
// globals for them.
func NewModel(cfg *config.Config, sess *session.Store, client *api.Client) *Model {
	themeNames := GetThemeNames()
	themeName := cfg.Theme
	themeIndex := -1
	for i, name := range themeNames {
		if name == themeName {
			themeIndex = i
			break
		}
	}
	if themeIndex == -1 {
		themeName = "default"
		for i, name := range themeNames {
			if name == themeName {
				themeIndex = i
				break
			}
		}
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(Themes[themeName].Primary))

	m := &Model{
		styles:     NewStyles(Themes[themeName]),
		keys:       DefaultKeyMap(),
		themeIndex: themeIndex,
		lang:       i18n.ParseLang(cfg.Language),
		cfg:        cfg,
		sess:       sess,
		client:     client,
		spinner:    s,
		history:    NewHistoryView(80, 24),
	}

	return m
}

func (m *Model) Init() tea.Cmd {
	var entry tea.Cmd
	if m.sess.Authenticated() {
		entry = m.enterCompose()
	} else {
		entry = m.enterLogin()
	}
	return tea.Batch(m.spinner.Tick, entry)
}

// --- state entry helpers (forms are rebuilt on entry so they always
// reflect the current language) ---

func (m *Model) enterLogin() tea.Cmd {
	m.state = StateLogin
	m.loginResult = LoginResult{}
	m.loginForm = NewLoginForm(m.lang, &m.loginResult)
	return m.loginForm.Init()
}

func (m *Model) enterSignup() tea.Cmd {
	m.state = StateSignup
	m.signupResult = SignupResult{}
	m.signupForm = NewSignupForm(m.lang, &m.signupResult)
	return m.signupForm.Init()
}

func (m *Model) enterCompose() tea.Cmd {
	m.state = StateCompose
	m.formError = ""
	m.composeResult = ComposeResult{Language: string(m.lang)}
	m.composeForm = NewComposeForm(m.lang, &m.composeResult)
	return m.composeForm.Init()
}

func (m *Model) enterFeedback() tea.Cmd {
	if m.analysis == nil {
		return nil
	}
	m.state = StateFeedback
	m.formError = ""
	m.feedbackResult = FeedbackResult{}
	m.feedbackForm = NewFeedbackForm(m.lang, &m.feedbackResult)
	return m.feedbackForm.Init()
}

func (m *Model) enterHistory() tea.Cmd {
	m.state = StateLoadingHistory
	return func() tea.Msg {
		entries, err := m.client.GetHistory()
		return HistoryLoadedMsg{Entries: entries, Err: err}
	}
}

// --- messages ---

type AuthFinishedMsg struct {
	Username string
	Tokens   api.TokenPair
	Err      error
}

type SignupFinishedMsg struct {
	Username string
	Password string
	Err      error
}

type AnalysisReadyMsg struct {
	Seq      int
	Analysis result.Analysis
	Err      error
}

type HistoryLoadedMsg struct {
	Entries []result.HistoryEntry
	Err     error
}

type FeedbackFinishedMsg struct {
	Err error
}

type feedbackClearMsg struct{}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.history.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case AuthFinishedMsg:
		if msg.Err != nil {
			m.statusMessage = msg.Err.Error()
			m.messageType = "error"
			return m, m.enterLogin()
		}
		m.sessionExpired = false
		m.statusMessage = ""
		if err := m.sess.Set(msg.Tokens.Access, msg.Tokens.Refresh, msg.Username); err != nil {
			m.statusMessage = err.Error()
			m.messageType = "error"
		}
		m.client.SetToken(msg.Tokens.Access)
		return m, m.enterCompose()

	case SignupFinishedMsg:
		if msg.Err != nil {
			m.statusMessage = msg.Err.Error()
			m.messageType = "error"
			return m, m.enterSignup()
		}
		// Account created: log in with the same credentials
		return m, m.startLogin(msg.Username, msg.Password)

	case AnalysisReadyMsg:
		if msg.Seq != m.reqSeq {
			// A newer request was issued after this one; drop it
			return m, nil
		}
		if errors.Is(msg.Err, api.ErrSessionExpired) {
			return m, m.expireSession()
		}
		if msg.Err != nil {
			m.statusMessage = msg.Err.Error()
			m.messageType = "error"
			m.state = StateMessage
			return m, nil
		}
		analysis := msg.Analysis
		m.analysis = &analysis
		m.feedbackSent = false
		m.state = StateResult
		return m, nil

	case HistoryLoadedMsg:
		if errors.Is(msg.Err, api.ErrSessionExpired) {
			return m, m.expireSession()
		}
		if msg.Err != nil {
			m.statusMessage = msg.Err.Error()
			m.messageType = "error"
			m.state = StateMessage
			return m, nil
		}
		m.history.SetEntries(msg.Entries)
		m.state = StateHistory
		return m, nil

	case FeedbackFinishedMsg:
		if errors.Is(msg.Err, api.ErrSessionExpired) {
			return m, m.expireSession()
		}
		if msg.Err != nil {
			cmd := m.enterFeedback()
			m.formError = msg.Err.Error()
			return m, cmd
		}
		// One-shot: the form resets and a transient banner shows for 3s
		m.feedbackSent = true
		m.feedbackResult = FeedbackResult{}
		m.state = StateResult
		return m, tea.Tick(feedbackBannerDuration, func(t time.Time) tea.Msg {
			return feedbackClearMsg{}
		})

	case feedbackClearMsg:
		m.feedbackSent = false
		return m, nil
	}

	return m.updateForm(msg)
}

// expireSession clears the local session and routes to login with a
// contextual message. Clearing is idempotent, so racing 401s are fine.
func (m *Model) expireSession() tea.Cmd {
	_ = m.sess.Clear()
	m.client.SetToken("")
	m.sessionExpired = true
	m.statusMessage = i18n.T(m.lang,
		"Your session has expired. Please log in again.",
		"Votre session a expiré. Merci de vous reconnecter.")
	m.messageType = "error"
	return m.enterLogin()
}

// --- commands ---

func (m *Model) startLogin(username, password string) tea.Cmd {
	m.state = StateAuthing
	return func() tea.Msg {
		tokens, err := m.client.Login(username, password)
		return AuthFinishedMsg{Username: username, Tokens: tokens, Err: err}
	}
}

func (m *Model) startSignup(res SignupResult) tea.Cmd {
	m.state = StateAuthing
	return func() tea.Msg {
		err := m.client.Register(res.Username, res.Email, res.Password)
		return SignupFinishedMsg{Username: res.Username, Password: res.Password, Err: err}
	}
}

// startSubmission validates locally, then posts the article and fetches
// the finished analysis as one command. The sequence number makes sure
// only the latest-initiated request may publish its result.
func (m *Model) startSubmission(res ComposeResult) tea.Cmd {
	if err := i18n.ValidateSubmission(res.Text, res.FilePath != "", i18n.ParseLang(res.Language)); err != nil {
		m.formError = err.Error()
		return m.reopenCompose(res)
	}

	m.reqSeq++
	seq := m.reqSeq
	m.state = StateSubmitting

	return func() tea.Msg {
		sub := api.Submission{
			Language: res.Language,
			Text:     res.Text,
		}
		if res.FilePath != "" {
			f, err := os.Open(res.FilePath)
			if err != nil {
				return AnalysisReadyMsg{Seq: seq, Err: fmt.Errorf("failed to open file: %w", err)}
			}
			defer f.Close()
			sub.Filename = filepath.Base(res.FilePath)
			sub.File = f
		}

		id, err := m.client.SubmitAnalysis(sub)
		if err != nil {
			return AnalysisReadyMsg{Seq: seq, Err: err}
		}
		analysis, err := m.client.GetAnalysis(id)
		return AnalysisReadyMsg{Seq: seq, Analysis: analysis, Err: err}
	}
}

// reopenCompose rebuilds the compose form keeping what the user typed,
// so a validation error does not wipe the draft.
func (m *Model) reopenCompose(res ComposeResult) tea.Cmd {
	m.state = StateCompose
	m.composeResult = res
	m.composeForm = NewComposeForm(m.lang, &m.composeResult)
	return m.composeForm.Init()
}

func (m *Model) startViewing(id int64) tea.Cmd {
	m.reqSeq++
	seq := m.reqSeq
	m.state = StateSubmitting
	return func() tea.Msg {
		analysis, err := m.client.GetAnalysis(id)
		return AnalysisReadyMsg{Seq: seq, Analysis: analysis, Err: err}
	}
}

func (m *Model) startFeedback(res FeedbackResult) tea.Cmd {
	if err := res.Ratings().Validate(); err != nil {
		cmd := m.enterFeedback()
		if errors.Is(err, api.ErrNoRating) {
			m.formError = i18n.T(m.lang,
				"Please rate at least one criterion.",
				"Veuillez noter au moins un critère.")
		} else {
			m.formError = err.Error()
		}
		return cmd
	}

	m.state = StateSendingFeedback
	analysisID := m.analysis.ID
	return func() tea.Msg {
		err := m.client.SubmitFeedback(analysisID, res.Ratings(), res.Message)
		return FeedbackFinishedMsg{Err: err}
	}
}

// --- key handling ---

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.state {
	case StateLogin:
		if msg.String() == "ctrl+n" {
			return m, m.enterSignup()
		}
		return m.updateForm(msg)

	case StateSignup:
		if keyMatches(msg, m.keys.Back) {
			return m, m.enterLogin()
		}
		return m.updateForm(msg)

	case StateCompose:
		if keyMatches(msg, m.keys.Back) {
			if m.analysis != nil {
				m.state = StateResult
				return m, nil
			}
			return m, m.enterHistory()
		}
		return m.updateForm(msg)

	case StateFeedback:
		if keyMatches(msg, m.keys.Back) {
			m.state = StateResult
			return m, nil
		}
		return m.updateForm(msg)

	case StateSubmitting, StateAuthing, StateSendingFeedback, StateLoadingHistory:
		// A request is in flight; resubmission is disabled until it
		// settles. Esc abandons waiting for an analysis, taking a fresh
		// sequence number so the orphaned response is discarded when it
		// eventually resolves.
		if m.state == StateSubmitting && keyMatches(msg, m.keys.Back) {
			m.reqSeq++
			return m, m.enterCompose()
		}
		return m, nil

	case StateMessage:
		if keyMatches(msg, m.keys.Enter) || keyMatches(msg, m.keys.Back) {
			if m.analysis != nil {
				m.state = StateResult
			} else {
				return m, m.enterCompose()
			}
		}
		return m, nil

	case StateResult:
		return m.handleResultKeys(msg)

	case StateHistory:
		return m.handleHistoryKeys(msg)
	}

	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Quit):
		return m, tea.Quit
	case keyMatches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case keyMatches(msg, m.keys.NewAnalysis):
		return m, m.enterCompose()
	case keyMatches(msg, m.keys.History):
		return m, m.enterHistory()
	case keyMatches(msg, m.keys.Feedback):
		return m, m.enterFeedback()
	case keyMatches(msg, m.keys.CopyLinks):
		m.copyLinks()
	case keyMatches(msg, m.keys.Export):
		m.exportResult()
	case keyMatches(msg, m.keys.ToggleLang):
		m.toggleLanguage()
	case keyMatches(msg, m.keys.CycleTheme):
		m.cycleTheme()
	case keyMatches(msg, m.keys.Logout):
		return m, m.logout()
	}
	return m, nil
}

func (m *Model) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Quit):
		return m, tea.Quit
	case keyMatches(msg, m.keys.Up):
		m.history.MoveCursor(-1)
	case keyMatches(msg, m.keys.Down):
		m.history.MoveCursor(1)
	case keyMatches(msg, m.keys.Enter):
		if entry := m.history.Selected(); entry != nil {
			return m, m.startViewing(entry.ID)
		}
	case keyMatches(msg, m.keys.Refresh):
		return m, m.enterHistory()
	case keyMatches(msg, m.keys.NewAnalysis), keyMatches(msg, m.keys.Back):
		return m, m.enterCompose()
	case keyMatches(msg, m.keys.ToggleLang):
		m.toggleLanguage()
	case keyMatches(msg, m.keys.CycleTheme):
		m.cycleTheme()
	case keyMatches(msg, m.keys.Logout):
		return m, m.logout()
	}
	return m, nil
}

func (m *Model) logout() tea.Cmd {
	_ = m.sess.Clear()
	m.client.SetToken("")
	m.analysis = nil
	m.sessionExpired = false
	m.statusMessage = ""
	return m.enterLogin()
}

func (m *Model) toggleLanguage() {
	if m.lang == i18n.FR {
		m.lang = i18n.EN
	} else {
		m.lang = i18n.FR
	}
	m.cfg.Language = string(m.lang)
	_ = m.cfg.Save()
}

func (m *Model) cycleTheme() {
	themeNames := GetThemeNames()
	m.themeIndex = (m.themeIndex + 1) % len(themeNames)
	newTheme := themeNames[m.themeIndex]
	m.styles = NewStyles(Themes[newTheme])
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(Themes[newTheme].Primary))

	m.cfg.Theme = newTheme
	_ = m.cfg.Save()
}

// --- form plumbing ---

func (m *Model) activeForm() **huh.Form {
	switch m.state {
	case StateLogin:
		return &m.loginForm
	case StateSignup:
		return &m.signupForm
	case StateCompose:
		return &m.composeForm
	case StateFeedback:
		return &m.feedbackForm
	}
	return nil
}

func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	slot := m.activeForm()
	if slot == nil || *slot == nil {
		return m, nil
	}

	updated, cmd := (*slot).Update(msg)
	if f, ok := updated.(*huh.Form); ok {
		*slot = f
	}

	if (*slot).State == huh.StateCompleted {
		switch m.state {
		case StateLogin:
			m.formError = ""
			return m, m.startLogin(m.loginResult.Username, m.loginResult.Password)
		case StateSignup:
			m.formError = ""
			return m, m.startSignup(m.signupResult)
		case StateCompose:
			m.formError = ""
			return m, m.startSubmission(m.composeResult)
		case StateFeedback:
			return m, m.startFeedback(m.feedbackResult)
		}
	}

	return m, cmd
}
