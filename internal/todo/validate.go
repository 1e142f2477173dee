package todo

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	// MaxTextLen is the longest task text accepted for submission, in characters.
	MaxTextLen = 200

	// ConfirmTextLen is the text length above which removal asks for confirmation.
	ConfirmTextLen = 50

	// WarnTextLen is the input length at which the UI starts warning about MaxTextLen.
	WarnTextLen = 180
)

var (
	ErrEmptyText   = errors.New("task text is required")
	ErrTextTooLong = errors.New("task text is too long")
)

// ValidateText trims text and checks it against the submission rules, in order: empty first,
// then length.
func ValidateText(text string) (string, error) {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return "", ErrEmptyText
	}
	if textLen(clean) > MaxTextLen {
		return "", ErrTextTooLong
	}
	return clean, nil
}

func textLen(s string) int { return utf8.RuneCountInString(s) }

// TextLen counts characters the way the length rules do.
func TextLen(s string) int { return textLen(s) }
