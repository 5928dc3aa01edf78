package models

// Word is a single curriculum word built around a lesson's target sound.
// Prefix + sound + Suffix spells Text.
type Word struct {
	ID           string    `json:"id" yaml:"id"`
	Text         string    `json:"word" yaml:"word"`
	Prefix       string    `json:"prefix" yaml:"prefix"`
	Suffix       string    `json:"suffix" yaml:"suffix"`
	Translations Localized `json:"translations" yaml:"translations"`
	Syllables    int       `json:"syllables" yaml:"syllables"`
}

// IsStandalone reports whether the word is just the bare sound. Such entries
// introduce the sound and are never quizzed.
func (w Word) IsStandalone(sound string) bool {
	return w.Text == sound
}
