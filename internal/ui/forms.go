package ui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/datascope/datascope-cli/internal/api"
	"github.com/datascope/datascope-cli/internal/i18n"
)

// Form wrappers in the style of the rest of the app: each form owns a
// result struct that huh writes into, and the model polls form state.

// LoginResult contains the credentials entered in the login form
type LoginResult struct {
	Username string
	Password string
}

// NewLoginForm builds the login form
func NewLoginForm(lang i18n.Lang, result *LoginResult) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(i18n.T(lang, "Username", "Nom d'utilisateur")).
				Value(&result.Username).
				Validate(required(lang)),

			huh.NewInput().
				Title(i18n.T(lang, "Password", "Mot de passe")).
				EchoMode(huh.EchoModePassword).
				Value(&result.Password).
				Validate(required(lang)),
		),
	)
}

// SignupResult contains the values entered in the signup form
type SignupResult struct {
	Username string
	Email    string
	Password string
}

// NewSignupForm builds the account creation form
func NewSignupForm(lang i18n.Lang, result *SignupResult) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(i18n.T(lang, "Username", "Nom d'utilisateur")).
				Value(&result.Username).
				Validate(required(lang)),

			huh.NewInput().
				Title(i18n.T(lang, "Email", "Email")).
				Value(&result.Email).
				Validate(required(lang)),

			huh.NewInput().
				Title(i18n.T(lang, "Password", "Mot de passe")).
				EchoMode(huh.EchoModePassword).
				Value(&result.Password).
				Validate(required(lang)),
		),
	)
}

// ComposeResult contains an analysis submission being drafted
type ComposeResult struct {
	Language string
	Text     string
	FilePath string
}

// NewComposeForm builds the article submission form. Validation of the
// text itself (length, detected language) happens on submit, not per
// keystroke, so the localized error can point at the whole submission.
func NewComposeForm(lang i18n.Lang, result *ComposeResult) *huh.Form {
	if result.Language == "" {
		result.Language = string(lang)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(i18n.T(lang, "Article language", "Langue de l'article")).
				Options(
					huh.NewOption("English", "en"),
					huh.NewOption("Français", "fr"),
				).
				Value(&result.Language),

			huh.NewText().
				Title(i18n.T(lang, "Article text", "Texte de l'article")).
				Placeholder(i18n.T(lang,
					"Paste the article to analyze...",
					"Collez l'article à analyser...")).
				Value(&result.Text),

			huh.NewInput().
				Title(i18n.T(lang, "Or a file to upload (path, optional)", "Ou un fichier à envoyer (chemin, facultatif)")).
				Value(&result.FilePath),
		),
	)
}

// FeedbackResult contains the feedback form values
type FeedbackResult struct {
	Relevance   int
	Angles      int
	Sources     int
	Reusability int
	Message     string
}

// Ratings converts the form values to the API type.
func (f FeedbackResult) Ratings() api.Ratings {
	return api.Ratings{
		Relevance:   f.Relevance,
		Angles:      f.Angles,
		Sources:     f.Sources,
		Reusability: f.Reusability,
	}
}

// NewFeedbackForm builds the analysis feedback form: four 0-5 criteria
// plus an optional comment. At least one criterion must be rated; that
// check runs on submit so the user can fill the criteria in any order.
func NewFeedbackForm(lang i18n.Lang, result *FeedbackResult) *huh.Form {
	criterion := func(title string, value *int) *huh.Select[int] {
		return huh.NewSelect[int]().
			Title(title).
			Options(
				huh.NewOption(i18n.T(lang, "Not rated", "Non noté"), 0),
				huh.NewOption("★", 1),
				huh.NewOption("★★", 2),
				huh.NewOption("★★★", 3),
				huh.NewOption("★★★★", 4),
				huh.NewOption("★★★★★", 5),
			).
			Value(value)
	}

	return huh.NewForm(
		huh.NewGroup(
			criterion(i18n.T(lang, "Relevance of the analysis", "Pertinence de l'analyse"), &result.Relevance),
			criterion(i18n.T(lang, "Quality of editorial angles", "Qualité des angles éditoriaux"), &result.Angles),
			criterion(i18n.T(lang, "Relevance of suggested sources", "Pertinence des sources suggérées"), &result.Sources),
			criterion(i18n.T(lang, "Reusability potential", "Potentiel de réutilisation"), &result.Reusability),

			huh.NewText().
				Title(i18n.T(lang, "Comment (optional)", "Commentaire (facultatif)")).
				Placeholder(i18n.T(lang,
					"Explain your rating, flag any inconsistency, or leave a suggestion.",
					"Expliquez votre note, signalez une incohérence, ou partagez une remarque.")).
				Value(&result.Message),
		),
	)
}

func required(lang i18n.Lang) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s", i18n.T(lang, "required", "obligatoire"))
		}
		return nil
	}
}
