// Package layout sizes and encodes tweet slots.
//
// A slot is allocated once at its worst-case size and never grows. The size
// is a pure function of the schema: a discriminator, the fixed-width fields,
// and for every text field a length prefix plus room for the maximum number
// of runes at four bytes each.
package layout

import "github.com/mesh-intelligence/tweetbox/pkg/types"

// Widths of the tweet slot sections, in bytes.
const (
	DiscriminatorLength = 8
	PubkeyLength        = types.PubkeyLength
	TimestampLength     = 8
	StringPrefixLength  = 4
	SeedLength          = types.SeedLength
	BumpLength          = 1

	// MaxBytesPerRune covers the full Unicode range in UTF-8.
	MaxBytesPerRune = 4

	MaxTopicRunes   = types.MaxTopicLength
	MaxContentRunes = types.MaxContentLength

	MaxTopicBytes   = MaxTopicRunes * MaxBytesPerRune
	MaxContentBytes = MaxContentRunes * MaxBytesPerRune
)

// TweetSize is the fixed size of every tweet slot.
const TweetSize = DiscriminatorLength +
	PubkeyLength + // owner
	TimestampLength + // created_at
	TimestampLength + // updated_at
	StringPrefixLength + MaxTopicBytes + // topic
	StringPrefixLength + MaxContentBytes + // content
	SeedLength + // seed
	BumpLength // bump

// Field is a fixed-width field.
type Field struct {
	Name  string
	Width int
}

// TextField is a variable-length UTF-8 field bounded by a rune count.
type TextField struct {
	Name     string
	MaxRunes int
}

// Schema describes a slot layout for sizing. Fixed and Text are summed
// independently, so their order does not affect Size.
type Schema struct {
	DiscriminatorWidth int
	LengthPrefixWidth  int
	BytesPerRune       int
	Fixed              []Field
	Text               []TextField
}

// Size returns the number of bytes a slot described by s must reserve. The
// result is an upper bound for any valid record.
func (s Schema) Size() int {
	n := s.DiscriminatorWidth
	for _, f := range s.Fixed {
		n += f.Width
	}
	for _, f := range s.Text {
		n += s.LengthPrefixWidth + f.MaxRunes*s.BytesPerRune
	}
	return n
}

// TweetSchema is the schema of a tweet slot. TweetSchema.Size() equals
// TweetSize.
var TweetSchema = Schema{
	DiscriminatorWidth: DiscriminatorLength,
	LengthPrefixWidth:  StringPrefixLength,
	BytesPerRune:       MaxBytesPerRune,
	Fixed: []Field{
		{Name: "owner", Width: PubkeyLength},
		{Name: "created_at", Width: TimestampLength},
		{Name: "updated_at", Width: TimestampLength},
		{Name: "seed", Width: SeedLength},
		{Name: "bump", Width: BumpLength},
	},
	Text: []TextField{
		{Name: "topic", MaxRunes: MaxTopicRunes},
		{Name: "content", MaxRunes: MaxContentRunes},
	},
}
