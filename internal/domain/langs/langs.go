// Package langs validates the language codes passed to transcription and
// translation providers.
package langs

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Parse accepts BCP 47 codes in any case, with "_" or "-" separators
// ("zh-cn", "zh_CN", "en").
func Parse(code string) (language.Tag, error) {
	c := strings.TrimSpace(code)
	if c == "" {
		return language.Und, fmt.Errorf("language code is empty")
	}
	tag, err := language.Parse(strings.ReplaceAll(c, "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("invalid language code %q: %w", code, err)
	}
	return tag, nil
}

// SpeechCode returns the two-letter base language used as a speech-recognition
// hint: "zh-cn" -> "zh", "en-US" -> "en".
func SpeechCode(code string) (string, error) {
	tag, err := Parse(code)
	if err != nil {
		return "", err
	}
	base, conf := tag.Base()
	if conf == language.No {
		return "", fmt.Errorf("language code %q has no base language", code)
	}
	return base.String(), nil
}
