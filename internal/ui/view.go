package ui

import (
	"fmt"
	"strings"

	"github.com/datascope/datascope-cli/internal/i18n"
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("DataScope"))
	if user := m.sess.Username(); user != "" {
		b.WriteString(m.styles.Help.Render("  " + user))
	}
	b.WriteString("\n")

	if m.statusMessage != "" {
		style := m.styles.Success
		if m.messageType == "error" {
			style = m.styles.Error
		}
		b.WriteString(style.Render(m.statusMessage))
		b.WriteString("\n\n")
	}

	switch m.state {
	case StateLogin:
		b.WriteString(m.styles.Section.Render(i18n.T(m.lang, "Log in", "Connexion")))
		b.WriteString("\n")
		if m.loginForm != nil {
			b.WriteString(m.loginForm.View())
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render(i18n.T(m.lang,
			"ctrl+n: create an account · ctrl+c: quit",
			"ctrl+n : créer un compte · ctrl+c : quitter")))

	case StateSignup:
		b.WriteString(m.styles.Section.Render(i18n.T(m.lang, "Create an account", "Créer un compte")))
		b.WriteString("\n")
		if m.signupForm != nil {
			b.WriteString(m.signupForm.View())
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render(i18n.T(m.lang,
			"esc: back to login", "esc : retour à la connexion")))

	case StateAuthing:
		b.WriteString(fmt.Sprintf("%s %s", m.spinner.View(),
			m.styles.Normal.Render(i18n.T(m.lang, "Signing in...", "Connexion en cours..."))))

	case StateCompose:
		b.WriteString(m.styles.Section.Render(i18n.T(m.lang, "New analysis", "Nouvelle analyse")))
		b.WriteString("\n")
		if m.formError != "" {
			b.WriteString(m.styles.Error.Render(m.formError))
			b.WriteString("\n")
		}
		if m.composeForm != nil {
			b.WriteString(m.composeForm.View())
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render(i18n.T(m.lang,
			"esc: back", "esc : retour")))

	case StateSubmitting:
		b.WriteString(fmt.Sprintf("%s %s", m.spinner.View(),
			m.styles.Normal.Render(i18n.T(m.lang,
				"Analyzing the article...",
				"Analyse de l'article en cours..."))))

	case StateResult:
		b.WriteString(RenderResult(m.analysis, m.lang, StatusReady, m.styles))
		if m.feedbackSent {
			b.WriteString("\n")
			b.WriteString(m.styles.Success.Render(i18n.T(m.lang,
				"Thank you, your feedback was recorded.",
				"Merci, votre retour a bien été enregistré.")))
		}
		b.WriteString("\n")
		b.WriteString(m.renderFooter())

	case StateLoadingHistory:
		b.WriteString(fmt.Sprintf("%s %s", m.spinner.View(),
			m.styles.Normal.Render(i18n.T(m.lang,
				"Loading your history...",
				"Chargement de votre historique..."))))

	case StateHistory:
		b.WriteString(m.styles.Section.Render(i18n.T(m.lang, "Past analyses", "Analyses passées")))
		b.WriteString("\n")
		b.WriteString(m.history.View(m.lang, m.styles))
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render(i18n.T(m.lang,
			"↑/↓: move · enter: open · r: refresh · n: new analysis · esc: back",
			"↑/↓ : naviguer · entrée : ouvrir · r : actualiser · n : nouvelle analyse · esc : retour")))

	case StateFeedback:
		b.WriteString(m.styles.Section.Render(i18n.T(m.lang, "Give feedback", "Donner votre avis")))
		b.WriteString("\n")
		if m.formError != "" {
			b.WriteString(m.styles.Error.Render(m.formError))
			b.WriteString("\n")
		}
		if m.feedbackForm != nil {
			b.WriteString(m.feedbackForm.View())
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render(i18n.T(m.lang,
			"esc: back to result", "esc : retour au résultat")))

	case StateSendingFeedback:
		b.WriteString(fmt.Sprintf("%s %s", m.spinner.View(),
			m.styles.Normal.Render(i18n.T(m.lang,
				"Sending your feedback...",
				"Envoi de votre retour..."))))

	case StateMessage:
		b.WriteString(m.styles.Help.Render(i18n.T(m.lang,
			"Press enter to continue", "Appuyez sur entrée pour continuer")))
	}

	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderFooter() string {
	if m.showHelp {
		keys := []struct{ key, en, fr string }{
			{"n", "new analysis", "nouvelle analyse"},
			{"h", "history", "historique"},
			{"f", "feedback", "avis"},
			{"c", "copy links", "copier les liens"},
			{"e", "export JSON", "exporter JSON"},
			{"L", "en/fr", "en/fr"},
			{"t", "theme", "thème"},
			{"ctrl+d", "log out", "déconnexion"},
			{"q", "quit", "quitter"},
		}
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k.key, i18n.T(m.lang, k.en, k.fr)))
		}
		return m.styles.Help.Render(strings.Join(parts, " · "))
	}
	return m.styles.Help.Render(i18n.T(m.lang, "?: help", "? : aide"))
}
