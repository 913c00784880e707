package ui

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/datascope/datascope-cli/internal/api"
	"github.com/datascope/datascope-cli/internal/config"
	"github.com/datascope/datascope-cli/internal/i18n"
	"github.com/datascope/datascope-cli/internal/result"
	"github.com/datascope/datascope-cli/internal/session"
)

func TestMain(m *testing.M) {
	// Point the config path at a throwaway dir so tests never touch the
	// real session or config files.
	tmpDir, err := os.MkdirTemp("", "datascope-ui-test")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)
	os.Setenv("DATASCOPE_CONFIG", filepath.Join(tmpDir, "config.yaml"))

	os.Exit(m.Run())
}

type stubHTTPClient struct {
	statusCode int
	body       string
	err        error
	requests   []*http.Request
}

func (s *stubHTTPClient) Do(req *http.Request) (*http.Response, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return &http.Response{
		StatusCode: s.statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(s.body)),
		Header:     make(http.Header),
	}, nil
}

func newTestModel(t *testing.T) (*Model, *session.Store) {
	t.Helper()

	sess, err := session.Load()
	if err != nil {
		t.Fatalf("failed to load session: %v", err)
	}
	t.Cleanup(func() { sess.Clear() })

	cfg := &config.Config{APIBaseURL: "http://localhost:8000", Language: "en"}
	client := api.NewClient(api.WithHTTPClient(&stubHTTPClient{statusCode: 500}))

	return NewModel(cfg, sess, client), sess
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func sampleAnalysis(id int64) result.Analysis {
	score := result.DeriveScore(79)
	return result.Analysis{
		ID:    id,
		Score: &score,
		Title: "Sample article",
	}
}

func TestInitIsLoginWhenAnonymous(t *testing.T) {
	m, _ := newTestModel(t)
	m.Init()

	if m.state != StateLogin {
		t.Errorf("expected StateLogin, got %v", m.state)
	}
}

func TestInitIsComposeWhenAuthenticated(t *testing.T) {
	m, sess := newTestModel(t)
	if err := sess.Set("token", "refresh", "alice"); err != nil {
		t.Fatalf("failed to set session: %v", err)
	}
	m.Init()

	if m.state != StateCompose {
		t.Errorf("expected StateCompose, got %v", m.state)
	}
}

func TestStaleAnalysisResponseIsDiscarded(t *testing.T) {
	m, _ := newTestModel(t)
	m.state = StateSubmitting
	m.reqSeq = 2

	// A response for request 1 arrives after request 2 was issued. It
	// must not replace the awaited result nor change the state.
	m.Update(AnalysisReadyMsg{Seq: 1, Analysis: sampleAnalysis(1)})

	if m.analysis != nil {
		t.Error("stale response should not populate the analysis")
	}
	if m.state != StateSubmitting {
		t.Errorf("stale response should not change state, got %v", m.state)
	}

	m.Update(AnalysisReadyMsg{Seq: 2, Analysis: sampleAnalysis(2)})

	if m.analysis == nil || m.analysis.ID != 2 {
		t.Errorf("latest response should win, got %+v", m.analysis)
	}
	if m.state != StateResult {
		t.Errorf("expected StateResult, got %v", m.state)
	}
}

func TestStaleErrorIsAlsoDiscarded(t *testing.T) {
	m, _ := newTestModel(t)
	m.state = StateResult
	m.analysis = ptrAnalysis(sampleAnalysis(7))
	m.reqSeq = 3

	m.Update(AnalysisReadyMsg{Seq: 1, Err: errors.New("boom")})

	if m.state != StateResult {
		t.Errorf("stale error should not change state, got %v", m.state)
	}
	if m.statusMessage != "" {
		t.Errorf("stale error should not surface a message, got %q", m.statusMessage)
	}
}

func ptrAnalysis(a result.Analysis) *result.Analysis {
	return &a
}

func TestAbandonedSubmissionResponseIsDiscarded(t *testing.T) {
	m, _ := newTestModel(t)
	m.state = StateSubmitting
	m.reqSeq = 1

	// Esc abandons the wait; the response of the abandoned request must
	// not drag the user away from the compose screen.
	m.handleKeyPress(tea.KeyMsg{Type: tea.KeyEsc})

	if m.state != StateCompose {
		t.Fatalf("expected StateCompose after abandoning, got %v", m.state)
	}

	m.Update(AnalysisReadyMsg{Seq: 1, Analysis: sampleAnalysis(4)})

	if m.state != StateCompose {
		t.Errorf("abandoned response should not change state, got %v", m.state)
	}
	if m.analysis != nil {
		t.Error("abandoned response should not populate the analysis")
	}

	m.Update(AnalysisReadyMsg{Seq: 1, Err: errors.New("timeout")})
	if m.state != StateCompose || m.statusMessage != "" {
		t.Error("abandoned error should be dropped silently")
	}
}

func TestSessionExpiredRoutesToLogin(t *testing.T) {
	m, sess := newTestModel(t)
	if err := sess.Set("token", "refresh", "alice"); err != nil {
		t.Fatalf("failed to set session: %v", err)
	}
	m.Init()
	m.reqSeq = 1

	m.Update(AnalysisReadyMsg{Seq: 1, Err: api.ErrSessionExpired})

	if m.state != StateLogin {
		t.Errorf("expected StateLogin after 401, got %v", m.state)
	}
	if sess.Authenticated() {
		t.Error("session should be cleared after expiry")
	}
	if m.statusMessage == "" {
		t.Error("expected an expiry message on the login screen")
	}
}

func TestHistoryExpiredRoutesToLogin(t *testing.T) {
	m, sess := newTestModel(t)
	sess.Set("token", "refresh", "alice")
	m.Init()

	m.Update(HistoryLoadedMsg{Err: api.ErrSessionExpired})

	if m.state != StateLogin {
		t.Errorf("expected StateLogin, got %v", m.state)
	}
}

func TestHistoryLoaded(t *testing.T) {
	m, _ := newTestModel(t)
	m.state = StateLoadingHistory

	m.Update(HistoryLoadedMsg{Entries: []result.HistoryEntry{{ID: 1, Title: "One"}}})

	if m.state != StateHistory {
		t.Errorf("expected StateHistory, got %v", m.state)
	}
	if m.history.Selected() == nil || m.history.Selected().ID != 1 {
		t.Error("history entries should be loaded into the view")
	}
}

func TestFeedbackSuccessShowsTransientBanner(t *testing.T) {
	m, _ := newTestModel(t)
	m.analysis = ptrAnalysis(sampleAnalysis(5))
	m.state = StateSendingFeedback

	_, cmd := m.Update(FeedbackFinishedMsg{})

	if m.state != StateResult {
		t.Errorf("expected StateResult after feedback, got %v", m.state)
	}
	if !m.feedbackSent {
		t.Error("banner flag should be set on success")
	}
	if cmd == nil {
		t.Error("a reset tick should be scheduled")
	}

	view := m.View()
	if !strings.Contains(view, "Thank you") {
		t.Errorf("expected thank-you banner in view, got:\n%s", view)
	}

	m.Update(feedbackClearMsg{})
	if m.feedbackSent {
		t.Error("banner flag should clear after the tick")
	}
}

func TestFeedbackWithoutRatingReopensForm(t *testing.T) {
	m, _ := newTestModel(t)
	m.analysis = ptrAnalysis(sampleAnalysis(5))

	cmd := m.startFeedback(FeedbackResult{Message: "only a comment"})

	if m.state != StateFeedback {
		t.Errorf("expected to stay on the feedback form, got %v", m.state)
	}
	if m.formError == "" {
		t.Error("expected a localized rating error")
	}
	if cmd == nil {
		t.Error("expected the form init command")
	}
}

func TestSubmissionValidationFailsBeforeNetwork(t *testing.T) {
	m, _ := newTestModel(t)
	stub := &stubHTTPClient{statusCode: 500}
	m.client = api.NewClient(api.WithHTTPClient(stub), api.WithToken("token"))

	m.startSubmission(ComposeResult{Language: "en", Text: "way too short"})

	if m.state != StateCompose {
		t.Errorf("expected to stay on compose, got %v", m.state)
	}
	if m.formError == "" {
		t.Error("expected a validation error")
	}
	if len(stub.requests) != 0 {
		t.Errorf("no network call should be made, got %d", len(stub.requests))
	}
}

func TestSubmissionIncrementsSequence(t *testing.T) {
	m, _ := newTestModel(t)
	text := strings.Repeat("the quick brown fox jumps over the lazy dog ", 5)

	m.startSubmission(ComposeResult{Language: "en", Text: text})
	first := m.reqSeq
	m.state = StateCompose
	m.startSubmission(ComposeResult{Language: "en", Text: text})

	if m.reqSeq != first+1 {
		t.Errorf("each submission should take a fresh sequence number, got %d then %d", first, m.reqSeq)
	}
	if m.state != StateSubmitting {
		t.Errorf("expected StateSubmitting, got %v", m.state)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	m, sess := newTestModel(t)
	sess.Set("token", "refresh", "alice")
	m.Init()
	m.analysis = ptrAnalysis(sampleAnalysis(9))
	m.state = StateResult

	m.handleResultKeys(tea.KeyMsg{Type: tea.KeyCtrlD})

	if m.state != StateLogin {
		t.Errorf("expected StateLogin after logout, got %v", m.state)
	}
	if sess.Authenticated() {
		t.Error("session should be cleared on logout")
	}
	if m.analysis != nil {
		t.Error("the displayed result should be dropped on logout")
	}
}

func TestToggleLanguagePersists(t *testing.T) {
	m, _ := newTestModel(t)
	m.state = StateResult
	m.analysis = ptrAnalysis(sampleAnalysis(1))

	m.handleResultKeys(keyPress('L'))

	if m.lang != i18n.FR {
		t.Errorf("expected FR after toggle, got %v", m.lang)
	}
	if m.cfg.Language != "fr" {
		t.Errorf("language should persist to config, got %q", m.cfg.Language)
	}

	m.handleResultKeys(keyPress('L'))
	if m.lang != i18n.EN {
		t.Errorf("expected EN after second toggle, got %v", m.lang)
	}
}

func TestCycleThemePersists(t *testing.T) {
	m, _ := newTestModel(t)
	m.state = StateResult
	m.analysis = ptrAnalysis(sampleAnalysis(1))
	before := m.cfg.Theme

	m.handleResultKeys(keyPress('t'))

	if m.cfg.Theme == before {
		t.Error("cycling should change the persisted theme name")
	}
	if _, ok := Themes[m.cfg.Theme]; !ok {
		t.Errorf("persisted theme %q is not a known theme", m.cfg.Theme)
	}
}

func TestAuthFailureReturnsToLogin(t *testing.T) {
	m, _ := newTestModel(t)
	m.state = StateAuthing

	m.Update(AuthFinishedMsg{Err: errors.New("No active account found with the given credentials")})

	if m.state != StateLogin {
		t.Errorf("expected StateLogin after failed auth, got %v", m.state)
	}
	if m.statusMessage == "" {
		t.Error("the auth error should be surfaced")
	}
}

func TestAuthSuccessArmsClientAndSession(t *testing.T) {
	m, sess := newTestModel(t)
	m.state = StateAuthing

	m.Update(AuthFinishedMsg{
		Username: "alice",
		Tokens:   api.TokenPair{Access: "acc", Refresh: "ref"},
	})

	if m.state != StateCompose {
		t.Errorf("expected StateCompose after login, got %v", m.state)
	}
	if !sess.Authenticated() || sess.Username() != "alice" {
		t.Errorf("session should hold the new identity, got %+v", sess.Current())
	}
}

func TestMessageStateReturnsToResult(t *testing.T) {
	m, _ := newTestModel(t)
	m.analysis = ptrAnalysis(sampleAnalysis(3))
	m.state = StateMessage

	m.handleKeyPress(tea.KeyMsg{Type: tea.KeyEnter})

	if m.state != StateResult {
		t.Errorf("expected StateResult, got %v", m.state)
	}
}
