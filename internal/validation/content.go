package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxPostLen is the maximum post content length in runes
	MaxPostLen = 4000
	// MaxCommentLen is the maximum comment length in runes
	MaxCommentLen = 1000
)

// ValidatePostContent checks post content before it is accepted for an
// optimistic create or edit. These are the programmer-error-class
// rejections: network conditions never fail a submit.
func ValidatePostContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("post content cannot be empty")
	}
	if utf8.RuneCountInString(content) > MaxPostLen {
		return fmt.Errorf("post content must not exceed %d characters", MaxPostLen)
	}
	return nil
}

// ValidateCommentText checks comment text before it is queued.
func ValidateCommentText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("comment text cannot be empty")
	}
	if utf8.RuneCountInString(text) > MaxCommentLen {
		return fmt.Errorf("comment text must not exceed %d characters", MaxCommentLen)
	}
	return nil
}
