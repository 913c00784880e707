package i18n

import (
	"strings"
	"testing"
)

func TestParseLang(t *testing.T) {
	tests := []struct {
		input string
		want  Lang
	}{
		{"fr", FR},
		{"FR", FR},
		{" fr ", FR},
		{"en", EN},
		{"", EN},
		{"de", EN},
	}

	for _, tt := range tests {
		if got := ParseLang(tt.input); got != tt.want {
			t.Errorf("ParseLang(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDetectLang(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Detected
	}{
		{
			name: "english",
			text: "The city council approved the budget for the next year and it is expected that spending on public transport will rise.",
			want: DetectedEN,
		},
		{
			name: "french",
			text: "Le conseil municipal a approuvé le budget de la ville pour les prochaines années et les dépenses dans les transports vont augmenter.",
			want: DetectedFR,
		},
		{
			name: "lorem ipsum",
			text: "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt.",
			want: DetectedLatin,
		},
		{
			name: "too short",
			text: "hello world",
			want: DetectedOther,
		},
		{
			name: "third language is other",
			text: "Der Stadtrat hat den Haushalt für das kommende Jahr verabschiedet und die Ausgaben für den öffentlichen Nahverkehr werden deutlich steigen.",
			want: DetectedOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLang(tt.text); got != tt.want {
				t.Errorf("DetectLang = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateSubmission(t *testing.T) {
	longEnglish := strings.Repeat("the council approved a new budget for public transport this year ", 5)
	longFrench := strings.Repeat("le conseil a approuvé un nouveau budget pour les transports de la ville ", 5)

	tests := []struct {
		name    string
		text    string
		hasFile bool
		lang    Lang
		wantErr bool
	}{
		{
			name:    "empty submission",
			text:    "",
			lang:    EN,
			wantErr: true,
		},
		{
			name:    "file only is fine",
			text:    "",
			hasFile: true,
			lang:    EN,
			wantErr: false,
		},
		{
			name:    "ten words is too short",
			text:    "one two three four five six seven eight nine ten",
			lang:    EN,
			wantErr: true,
		},
		{
			name:    "long english with english selected",
			text:    longEnglish,
			lang:    EN,
			wantErr: false,
		},
		{
			name:    "long french with english selected",
			text:    longFrench,
			lang:    EN,
			wantErr: true,
		},
		{
			name:    "long english with french selected",
			text:    longEnglish,
			lang:    FR,
			wantErr: true,
		},
		{
			name:    "lorem ipsum rejected",
			text:    strings.Repeat("lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod ", 5),
			lang:    EN,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubmission(tt.text, tt.hasFile, tt.lang)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSubmission() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidationMessagesAreLocalized(t *testing.T) {
	errEN := ValidateSubmission("", false, EN)
	errFR := ValidateSubmission("", false, FR)

	if errEN == nil || errFR == nil {
		t.Fatal("expected validation errors")
	}
	if errEN.Error() == errFR.Error() {
		t.Errorf("expected distinct localized messages, got %q twice", errEN.Error())
	}
}
