package server

import (
	"fmt"
	"strings"
)

const (
	maxNameLength   = 20
	maxGuessLength  = 60
	maxAnswerLength = 140
	maxDrawingBytes = 250 * 1024
)

// validateRoomCode normalizes a join code to upper case. Codes are short
// alphanumeric tokens typed from a shared screen.
func validateRoomCode(code string) (string, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if trimmed == "" {
		return "", fmt.Errorf("room code is required")
	}
	if len(trimmed) > 12 {
		return "", fmt.Errorf("room code must be 12 characters or fewer")
	}
	for _, r := range trimmed {
		if r >= 'A' && r <= 'Z' {
			continue
		}
		if r >= '0' && r <= '9' {
			continue
		}
		return "", fmt.Errorf("room code contains unsupported characters")
	}
	return trimmed, nil
}

func validateName(name string) (string, error) {
	return validateText("name", name, maxNameLength)
}

func validateGuess(text string) (string, error) {
	return validateText("guess", text, maxGuessLength)
}

func validateAnswer(text string) (string, error) {
	return validateText("answer", text, maxAnswerLength)
}

func validateText(label, text string, maxLen int) (string, error) {
	trimmed := normalizeText(text)
	if trimmed == "" {
		return "", fmt.Errorf("%s is required", label)
	}
	if len(trimmed) > maxLen {
		return "", fmt.Errorf("%s must be %d characters or fewer", label, maxLen)
	}
	if !isSafeText(trimmed) {
		return "", fmt.Errorf("%s contains unsupported characters", label)
	}
	return trimmed, nil
}

// normalizeText collapses interior whitespace and trims the ends.
func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}

// normalizeAnswer is the comparison form of a guess or answer.
func normalizeAnswer(text string) string {
	return strings.ToLower(normalizeText(text))
}

func isSafeText(text string) bool {
	for _, r := range text {
		if r > 127 {
			return false
		}
		if r >= 'a' && r <= 'z' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			continue
		}
		if r >= '0' && r <= '9' {
			continue
		}
		switch r {
		case ' ', '-', '_', '\'', '"', '.', ',', '!', '?', ':', ';', '&', '(', ')', '/':
			continue
		default:
			return false
		}
	}
	return true
}
