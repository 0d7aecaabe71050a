// ABOUTME: Shared CLI helpers for ids, dates, and column output.
// ABOUTME: Resolves short id prefixes against the user's records.
package main

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/harperreed/healthlog/internal/models"
)

// shortID is the id prefix shown in list output.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// resolveID expands a full id or unique prefix against ids.
func resolveID(prefix string, ids []string) (string, error) {
	var match string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			if match != "" {
				return "", fmt.Errorf("ambiguous id prefix: %s", prefix)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("not found: %s", prefix)
	}
	return match, nil
}

// parseDate validates a YYYY-MM-DD date, defaulting an empty string to today.
func parseDate(s, today string) (string, error) {
	if s == "" {
		return today, nil
	}
	if _, err := time.Parse(models.DateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", s)
	}
	return s, nil
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	n := utf8.RuneCountInString(s)
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}
