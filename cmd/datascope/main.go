package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/datascope/datascope-cli/internal/api"
	"github.com/datascope/datascope-cli/internal/config"
	"github.com/datascope/datascope-cli/internal/i18n"
	"github.com/datascope/datascope-cli/internal/session"
	"github.com/datascope/datascope-cli/internal/ui"
)

var version = "dev"

var (
	cfg  *config.Config
	sess *session.Store
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "datascope",
	Short:   "Datafication analysis for news articles",
	Long:    "DataScope scores articles for datafication potential and suggests datasets, editorial angles and visualization ideas, in English or French.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		sess, err = session.Load()
		if err != nil {
			return fmt.Errorf("loading session: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		model := ui.NewModel(cfg, sess, newClient())
		p := tea.NewProgram(model, tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(feedbackCmd)
}

func newClient() *api.Client {
	return api.NewClient(
		api.WithBaseURL(cfg.APIBaseURL),
		api.WithToken(sess.AccessToken()),
	)
}

func uiLang() i18n.Lang {
	return i18n.ParseLang(cfg.Language)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("datascope", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/datascope/",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SaveExampleConfig(); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		configDir, err := config.GetConfigDir()
		if err != nil {
			return err
		}
		fmt.Printf("Config ready: %s\n", filepath.Join(configDir, "config.yaml"))
		fmt.Println("Edit it to set the backend URL, language, and theme.")
		return nil
	},
}

// --- login / logout ---

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the DataScope backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		lang := uiLang()

		var creds ui.LoginResult
		if err := ui.NewLoginForm(lang, &creds).Run(); err != nil {
			return err
		}

		client := newClient()
		tokens, err := client.Login(creds.Username, creds.Password)
		if err != nil {
			return err
		}
		if err := sess.Set(tokens.Access, tokens.Refresh, creds.Username); err != nil {
			return err
		}

		fmt.Println(i18n.T(lang,
			"Logged in as "+creds.Username,
			"Connecté en tant que "+creds.Username))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sess.Clear(); err != nil {
			return err
		}
		fmt.Println(i18n.T(uiLang(), "Logged out.", "Déconnecté."))
		return nil
	},
}

// --- analyze command ---

var analyzeLang string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Submit an article and print its analysis",
	Long:  "Reads the article from the given file, or from stdin when no file is passed, submits it for analysis and prints the scored result.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lang := uiLang()
		if analyzeLang != "" {
			lang = i18n.ParseLang(analyzeLang)
		}

		sub := api.Submission{Language: string(lang)}
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			sub.Filename = filepath.Base(args[0])
			sub.File = f
		} else {
			text, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			sub.Text = string(text)
			if err := i18n.ValidateSubmission(sub.Text, false, lang); err != nil {
				return err
			}
		}

		client := newClient()
		id, err := client.SubmitAnalysis(sub)
		if err != nil {
			return sessionHint(err, lang)
		}

		analysis, err := client.GetAnalysis(id)
		if err != nil {
			return sessionHint(err, lang)
		}

		fmt.Println(ui.RenderResult(&analysis, lang, ui.StatusReady, ui.DefaultStyles()))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeLang, "lang", "l", "", "Article language (en or fr)")
}

// --- history command ---

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List your past analyses",
	RunE: func(cmd *cobra.Command, args []string) error {
		lang := uiLang()

		entries, err := newClient().GetHistory()
		if err != nil {
			return sessionHint(err, lang)
		}

		view := ui.NewHistoryView(100, len(entries)+2)
		view.SetEntries(entries)
		fmt.Println(view.View(lang, ui.DefaultStyles()))
		return nil
	},
}

// --- feedback command ---

var (
	feedbackRelevance   int
	feedbackAngles      int
	feedbackSources     int
	feedbackReusability int
	feedbackMessage     string
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback [analysis-id]",
	Short: "Rate an analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lang := uiLang()

		var id int64
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid analysis ID: %s", args[0])
		}

		ratings := api.Ratings{
			Relevance:   feedbackRelevance,
			Angles:      feedbackAngles,
			Sources:     feedbackSources,
			Reusability: feedbackReusability,
		}
		if err := newClient().SubmitFeedback(id, ratings, feedbackMessage); err != nil {
			return sessionHint(err, lang)
		}

		fmt.Println(i18n.T(lang,
			"Feedback recorded, thank you.",
			"Retour enregistré, merci."))
		return nil
	},
}

func init() {
	feedbackCmd.Flags().IntVar(&feedbackRelevance, "relevance", 0, "Relevance rating (1-5)")
	feedbackCmd.Flags().IntVar(&feedbackAngles, "angles", 0, "Editorial angles rating (1-5)")
	feedbackCmd.Flags().IntVar(&feedbackSources, "sources", 0, "Suggested sources rating (1-5)")
	feedbackCmd.Flags().IntVar(&feedbackReusability, "reusability", 0, "Reusability rating (1-5)")
	feedbackCmd.Flags().StringVarP(&feedbackMessage, "message", "m", "", "Optional comment")
}

// sessionHint turns an expired-session error into an actionable message
// for one-shot commands, where there is no login screen to fall back to.
func sessionHint(err error, lang i18n.Lang) error {
	if errors.Is(err, api.ErrSessionExpired) {
		return errors.New(i18n.T(lang,
			"your session has expired, run 'datascope login' first",
			"votre session a expiré, lancez d'abord 'datascope login'"))
	}
	return err
}
