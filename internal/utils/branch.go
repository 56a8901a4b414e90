package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
)

// Slugify lowercases the input and collapses anything that is not a letter
// or digit into single hyphens, suitable for a git branch segment.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) && r < unicode.MaxASCII || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// GenerateBranchName builds a branch name for a task in the format
// task-<id>-<slug>-<suffix>. The random suffix avoids collisions when a
// branch for the same task is created more than once.
func GenerateBranchName(taskID uint64, title string) (string, error) {
	bytes := make([]byte, 3)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	slug := Slugify(title)
	if slug == "" {
		slug = "task"
	}
	if len(slug) > 40 {
		slug = strings.Trim(slug[:40], "-")
	}

	return fmt.Sprintf("task-%d-%s-%s", taskID, slug, hex.EncodeToString(bytes)), nil
}
