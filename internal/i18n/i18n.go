package i18n

import (
	"fmt"
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Lang is a UI language tag. The product is bilingual EN/FR and every
// rendering function takes the language as an explicit parameter; nothing
// reads it from ambient state.
type Lang string

const (
	EN Lang = "en"
	FR Lang = "fr"
)

// ParseLang normalizes a stored language preference, defaulting to EN.
func ParseLang(s string) Lang {
	if strings.EqualFold(strings.TrimSpace(s), "fr") {
		return FR
	}
	return EN
}

// T picks the string for the given language.
func T(lang Lang, en, fr string) string {
	if lang == FR {
		return fr
	}
	return en
}

// MinWords is the minimum article length accepted for analysis when the
// submission is text rather than a file.
const MinWords = 30

// Detected is the outcome of the submission language sniff.
type Detected string

const (
	DetectedEN    Detected = "en"
	DetectedFR    Detected = "fr"
	DetectedLatin Detected = "latin"
	DetectedOther Detected = "other"
)

// DetectLang sniffs the language of a text. Placeholder text
// ("lorem ipsum") is flagged as Latin before any detection runs, and
// texts under 20 characters are too short to judge. Everything else goes
// through trigram detection; only English, French and Latin are
// meaningful outcomes, any other detected language comes back as other.
func DetectLang(text string) Detected {
	clean := strings.ToLower(strings.TrimSpace(text))

	if strings.Contains(clean, "lorem ipsum") {
		return DetectedLatin
	}
	if len(clean) < 20 {
		return DetectedOther
	}

	switch whatlanggo.Detect(text).Lang {
	case whatlanggo.Fra:
		return DetectedFR
	case whatlanggo.Eng:
		return DetectedEN
	default:
		return DetectedOther
	}
}

// ValidateSubmission applies the pre-network checks on an analysis
// submission: something must be provided, pasted text must be long enough,
// and its detected language must not contradict the selected one. A
// returned error carries the localized message and means no request may
// be issued.
func ValidateSubmission(text string, hasFile bool, lang Lang) error {
	text = strings.TrimSpace(text)

	if text == "" && !hasFile {
		return fmt.Errorf("%s", T(lang,
			"Please enter text or upload a file.",
			"Veuillez saisir un texte ou charger un fichier."))
	}

	if text != "" {
		if len(strings.Fields(text)) < MinWords {
			return fmt.Errorf("%s", T(lang,
				"The text is too short to analyze.",
				"Le texte est trop court pour être analysé."))
		}

		switch detected := DetectLang(text); {
		case detected == DetectedLatin:
			return fmt.Errorf("%s", T(lang,
				"The text looks like placeholder text.",
				"Le texte ressemble à un texte de remplissage."))
		case detected == DetectedFR && lang == EN:
			return fmt.Errorf("%s", T(lang,
				"The text appears to be in French. Switch the language to French.",
				"Le texte semble être en français. Passez la langue en français."))
		case detected == DetectedEN && lang == FR:
			return fmt.Errorf("%s", T(lang,
				"The text appears to be in English. Switch the language to English.",
				"Le texte semble être en anglais. Passez la langue en anglais."))
		}
	}

	return nil
}
