package types

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// Field limits, counted in Unicode scalar values (runes), not bytes.
const (
	MaxTopicLength   = 50
	MaxContentLength = 280
)

// Tweet validation errors.
var (
	ErrTopicTooLong   = errors.New("the provided topic should be 50 characters long maximum")
	ErrContentTooLong = errors.New("the provided content should be 280 characters long maximum")

	// ErrInvalidText also matches ErrInvalidData.
	ErrInvalidText = fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidData)
)

// Tweet is the record stored in a slot. Owner, Seed, CreatedAt and Bump are
// fixed at creation; Topic, Content and UpdatedAt change on update.
type Tweet struct {
	Owner     Pubkey `json:"owner"`
	Seed      Seed   `json:"seed"`
	CreatedAt int64  `json:"created_at"` // Unix seconds.
	UpdatedAt int64  `json:"updated_at"` // Unix seconds, never before CreatedAt.
	Topic     string `json:"topic"`
	Content   string `json:"content"`
	Bump      uint8  `json:"bump"` // Address proof found during derivation.
}

// ValidateText checks topic and content against their rune limits. The
// topic is checked first.
func ValidateText(topic, content string) error {
	if utf8.RuneCountInString(topic) > MaxTopicLength {
		return ErrTopicTooLong
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return ErrContentTooLong
	}
	if !utf8.ValidString(topic) || !utf8.ValidString(content) {
		return ErrInvalidText
	}
	return nil
}

// Created returns CreatedAt as a time.Time in UTC.
func (t *Tweet) Created() time.Time {
	return time.Unix(t.CreatedAt, 0).UTC()
}

// Updated returns UpdatedAt as a time.Time in UTC.
func (t *Tweet) Updated() time.Time {
	return time.Unix(t.UpdatedAt, 0).UTC()
}

// Edited reports whether the tweet has been updated since creation.
func (t *Tweet) Edited() bool {
	return t.UpdatedAt != t.CreatedAt
}
