package services

import (
	"sync"

	"github.com/pemistahl/lingua-go"
)

var (
	languageDetector     lingua.LanguageDetector
	languageDetectorOnce sync.Once
)

// DetectLanguage guesses the ISO 639-1 code of a piece of content. The
// detector model is large, so it is built once on first use.
func DetectLanguage(content string) string {
	languageDetectorOnce.Do(func() {
		languageDetector = lingua.NewLanguageDetectorBuilder().
			FromAllSpokenLanguages().
			Build()
	})

	if language, ok := languageDetector.DetectLanguageOf(content); ok {
		return language.IsoCode639_1().String()
	}
	return "unknown"
}
