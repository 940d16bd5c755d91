package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		content string
		wantErr error
	}{
		{name: "empty topic and content", topic: "", content: ""},
		{name: "short text", topic: "veganism", content: "Hummus, am I right?"},
		{name: "topic at limit", topic: strings.Repeat("x", 50), content: "gm"},
		{name: "content at limit", topic: "", content: strings.Repeat("x", 280)},
		{
			name:    "topic one over limit",
			topic:   strings.Repeat("x", 51),
			content: "gm",
			wantErr: ErrTopicTooLong,
		},
		{
			name:    "content one over limit",
			topic:   "veganism",
			content: strings.Repeat("x", 281),
			wantErr: ErrContentTooLong,
		},
		{
			name:    "four-byte runes count once",
			topic:   strings.Repeat("😀", 50),
			content: strings.Repeat("𝄞", 280),
		},
		{
			name:    "four-byte runes over limit",
			topic:   strings.Repeat("😀", 51),
			content: "",
			wantErr: ErrTopicTooLong,
		},
		{
			name:    "invalid UTF-8 topic",
			topic:   "bad\xff",
			content: "",
			wantErr: ErrInvalidText,
		},
		{
			name:    "invalid UTF-8 content",
			topic:   "",
			content: "\xc3\x28",
			wantErr: ErrInvalidData,
		},
		{
			name:    "topic checked before content",
			topic:   strings.Repeat("x", 51),
			content: strings.Repeat("x", 281),
			wantErr: ErrTopicTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.topic, tt.content)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTweetTimestamps(t *testing.T) {
	tw := &Tweet{CreatedAt: 1700000000, UpdatedAt: 1700000000}
	assert.False(t, tw.Edited())
	assert.Equal(t, int64(1700000000), tw.Created().Unix())

	tw.UpdatedAt = 1700000060
	assert.True(t, tw.Edited())
	assert.Equal(t, int64(1700000060), tw.Updated().Unix())
}
