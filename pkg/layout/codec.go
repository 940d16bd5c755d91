package layout

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/mesh-intelligence/tweetbox/pkg/types"
)

// Byte offsets of each section in a tweet slot.
const (
	offDiscriminator = 0
	offOwner         = offDiscriminator + DiscriminatorLength
	offCreatedAt     = offOwner + PubkeyLength
	offUpdatedAt     = offCreatedAt + TimestampLength
	offTopicLen      = offUpdatedAt + TimestampLength
	offTopic         = offTopicLen + StringPrefixLength
	offContentLen    = offTopic + MaxTopicBytes
	offContent       = offContentLen + StringPrefixLength
	offSeed          = offContent + MaxContentBytes
	offBump          = offSeed + SeedLength
	offEnd           = offBump + BumpLength
)

// Span locates one section of a slot.
type Span struct {
	Name   string `json:"name"`
	Offset int    `json:"offset"`
	Width  int    `json:"width"`
}

// TweetSpans lists the sections of a tweet slot in storage order.
var TweetSpans = []Span{
	{"discriminator", offDiscriminator, DiscriminatorLength},
	{"owner", offOwner, PubkeyLength},
	{"created_at", offCreatedAt, TimestampLength},
	{"updated_at", offUpdatedAt, TimestampLength},
	{"topic_len", offTopicLen, StringPrefixLength},
	{"topic", offTopic, MaxTopicBytes},
	{"content_len", offContentLen, StringPrefixLength},
	{"content", offContent, MaxContentBytes},
	{"seed", offSeed, SeedLength},
	{"bump", offBump, BumpLength},
}

// TweetDiscriminator tags a slot as holding a tweet: the first eight bytes
// of sha256("account:Tweet").
var TweetDiscriminator = Discriminator("Tweet")

// Discriminator returns the 8-byte tag for a record type name.
func Discriminator(name string) [DiscriminatorLength]byte {
	sum := sha256.Sum256([]byte("account:" + name))
	var d [DiscriminatorLength]byte
	copy(d[:], sum[:DiscriminatorLength])
	return d
}

// EncodeTweet serializes t into a new TweetSize-byte slot image. Text beyond
// its recorded length is zero padded. Returns ErrTopicTooLong or
// ErrContentTooLong if the text does not fit and ErrInvalidText if it is not
// UTF-8.
func EncodeTweet(t *types.Tweet) ([]byte, error) {
	if err := types.ValidateText(t.Topic, t.Content); err != nil {
		return nil, err
	}

	buf := make([]byte, TweetSize)
	copy(buf[offDiscriminator:offOwner], TweetDiscriminator[:])
	copy(buf[offOwner:offCreatedAt], t.Owner[:])
	binary.LittleEndian.PutUint64(buf[offCreatedAt:offUpdatedAt], uint64(t.CreatedAt))
	binary.LittleEndian.PutUint64(buf[offUpdatedAt:offTopicLen], uint64(t.UpdatedAt))
	binary.LittleEndian.PutUint32(buf[offTopicLen:offTopic], uint32(len(t.Topic)))
	copy(buf[offTopic:offContentLen], t.Topic)
	binary.LittleEndian.PutUint32(buf[offContentLen:offContent], uint32(len(t.Content)))
	copy(buf[offContent:offSeed], t.Content)
	copy(buf[offSeed:offBump], t.Seed[:])
	buf[offBump] = t.Bump
	return buf, nil
}

// DecodeTweet parses a slot image produced by EncodeTweet. Any structural
// problem is reported as ErrInvalidData.
func DecodeTweet(data []byte) (*types.Tweet, error) {
	if len(data) != TweetSize {
		return nil, fmt.Errorf("%w: slot is %d bytes, want %d", types.ErrInvalidData, len(data), TweetSize)
	}
	if !bytes.Equal(data[offDiscriminator:offOwner], TweetDiscriminator[:]) {
		return nil, fmt.Errorf("%w: discriminator mismatch", types.ErrInvalidData)
	}

	topicLen := binary.LittleEndian.Uint32(data[offTopicLen:offTopic])
	if topicLen > MaxTopicBytes {
		return nil, fmt.Errorf("%w: topic length %d exceeds %d", types.ErrInvalidData, topicLen, MaxTopicBytes)
	}
	contentLen := binary.LittleEndian.Uint32(data[offContentLen:offContent])
	if contentLen > MaxContentBytes {
		return nil, fmt.Errorf("%w: content length %d exceeds %d", types.ErrInvalidData, contentLen, MaxContentBytes)
	}

	t := &types.Tweet{
		CreatedAt: int64(binary.LittleEndian.Uint64(data[offCreatedAt:offUpdatedAt])),
		UpdatedAt: int64(binary.LittleEndian.Uint64(data[offUpdatedAt:offTopicLen])),
		Topic:     string(data[offTopic : offTopic+int(topicLen)]),
		Content:   string(data[offContent : offContent+int(contentLen)]),
		Bump:      data[offBump],
	}
	copy(t.Owner[:], data[offOwner:offCreatedAt])
	copy(t.Seed[:], data[offSeed:offBump])

	if !utf8.ValidString(t.Topic) || !utf8.ValidString(t.Content) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", types.ErrInvalidData)
	}
	if err := types.ValidateText(t.Topic, t.Content); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidData, err)
	}
	return t, nil
}
