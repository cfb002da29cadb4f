package embed

import (
	"context"
	"hash/fnv"
	"math"
	"regexp"
	"strings"

	"github.com/kiran3035/healthai-assistant/internal/domain"
)

// HashingBackend embeds text by hashing word unigrams and bigrams into a
// fixed number of buckets and L2-normalizing the result. Identical text
// always yields an identical vector, which keeps retrieval reproducible
// without any external model service.
type HashingBackend struct {
	dimension    int
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewHashingBackend builds the tokenizer state up front so Embed calls are
// allocation-light afterwards.
func NewHashingBackend(dimension int) (*HashingBackend, error) {
	if dimension <= 0 {
		return nil, domain.ErrInvalidDimension
	}
	return &HashingBackend{
		dimension:    dimension,
		tokenPattern: regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}]+)*`),
		stopwords:    defaultStopwords(),
	}, nil
}

// EmbedOne embeds a single text.
func (b *HashingBackend) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyText
	}
	return b.embed(text), nil
}

// EmbedMany embeds texts in input order.
func (b *HashingBackend) EmbedMany(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vector, err := b.EmbedOne(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, vector)
	}
	return vectors, nil
}

func (b *HashingBackend) embed(text string) []float32 {
	vec := make([]float64, b.dimension)

	tokens := b.tokenize(text)
	for i, tok := range tokens {
		b.accumulate(vec, tok)
		if i+1 < len(tokens) {
			b.accumulate(vec, tok+" "+tokens[i+1])
		}
	}

	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	out := make([]float32, b.dimension)
	if norm == 0 {
		return out
	}
	for i, v := range vec {
		out[i] = float32(v / norm)
	}
	return out
}

// accumulate applies the hashing trick: one hash picks the bucket, a second
// bit picks the sign so colliding features partially cancel instead of
// compounding.
func (b *HashingBackend) accumulate(vec []float64, feature string) {
	h := fnv.New64a()
	h.Write([]byte(feature))
	sum := h.Sum64()

	bucket := int(sum % uint64(b.dimension))
	if (sum>>63)&1 == 1 {
		vec[bucket] -= 1
	} else {
		vec[bucket] += 1
	}
}

func (b *HashingBackend) tokenize(text string) []string {
	matches := b.tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(matches))
	for _, tok := range matches {
		if _, skip := b.stopwords[tok]; skip {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "and", "are", "as", "at", "be", "but", "by", "for",
		"if", "in", "into", "is", "it", "no", "not", "of", "on", "or",
		"such", "that", "the", "their", "then", "there", "these", "they",
		"this", "to", "was", "will", "with",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
