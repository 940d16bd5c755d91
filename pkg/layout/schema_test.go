package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/tweetbox/pkg/types"
)

func TestTweetSize(t *testing.T) {
	assert.Equal(t, 8+32+8+8+(4+200)+(4+1120)+16+1, TweetSize)
	assert.Equal(t, 1401, TweetSize)
	assert.Equal(t, TweetSize, TweetSchema.Size(), "schema and constant must agree")
	assert.Equal(t, TweetSize, offEnd, "offsets must cover the whole slot")
}

func TestWidthsFollowTypes(t *testing.T) {
	assert.Equal(t, types.PubkeyLength, PubkeyLength)
	assert.Equal(t, types.SeedLength, SeedLength)
	assert.Equal(t, types.MaxTopicLength*MaxBytesPerRune, MaxTopicBytes)
	assert.Equal(t, types.MaxContentLength*MaxBytesPerRune, MaxContentBytes)
}

func TestSchemaSize(t *testing.T) {
	tests := []struct {
		name   string
		schema Schema
		want   int
	}{
		{
			name:   "empty schema",
			schema: Schema{},
			want:   0,
		},
		{
			name:   "discriminator only",
			schema: Schema{DiscriminatorWidth: 8},
			want:   8,
		},
		{
			name: "fixed fields only",
			schema: Schema{
				DiscriminatorWidth: 8,
				Fixed:              []Field{{Name: "a", Width: 32}, {Name: "b", Width: 8}},
			},
			want: 48,
		},
		{
			name: "text field with zero runes still reserves its prefix",
			schema: Schema{
				LengthPrefixWidth: 4,
				BytesPerRune:      4,
				Text:              []TextField{{Name: "empty", MaxRunes: 0}},
			},
			want: 4,
		},
		{
			name: "original schema without seed and bump",
			schema: Schema{
				DiscriminatorWidth: 8,
				LengthPrefixWidth:  4,
				BytesPerRune:       4,
				Fixed:              []Field{{Name: "author", Width: 32}, {Name: "timestamp", Width: 8}},
				Text:               []TextField{{Name: "topic", MaxRunes: 50}, {Name: "content", MaxRunes: 280}},
			},
			want: 1376,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.schema.Size())
		})
	}
}

func TestSchemaSizeIgnoresFieldOrder(t *testing.T) {
	reordered := TweetSchema
	reordered.Fixed = []Field{
		TweetSchema.Fixed[4],
		TweetSchema.Fixed[2],
		TweetSchema.Fixed[0],
		TweetSchema.Fixed[3],
		TweetSchema.Fixed[1],
	}
	reordered.Text = []TextField{TweetSchema.Text[1], TweetSchema.Text[0]}
	assert.Equal(t, TweetSize, reordered.Size())
}

func TestMinimumBalance(t *testing.T) {
	assert.Equal(t, uint64(128*3480*2), MinimumBalance(0))
	assert.Equal(t, uint64(10641840), MinimumBalance(TweetSize))
	assert.Equal(t, MinimumBalance(TweetSize), uint64(TweetDeposit))
}

func TestTweetSpansContiguous(t *testing.T) {
	offset := 0
	for _, s := range TweetSpans {
		assert.Equal(t, offset, s.Offset, "span %s", s.Name)
		offset += s.Width
	}
	assert.Equal(t, TweetSize, offset)
}
