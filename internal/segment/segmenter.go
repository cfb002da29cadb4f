package segment

import (
	"log"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/kiran3035/healthai-assistant/internal/domain"
)

// separators are tried in priority order so that cuts land on paragraph,
// line, sentence, and word boundaries before falling back to raw runes.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// Config controls segmentation. OverlapSize runes of each chunk's tail are
// repeated at the head of the next chunk from the same document.
type Config struct {
	TargetSize  int
	OverlapSize int
}

// DefaultConfig provides sane defaults for embedding-sized chunks.
func DefaultConfig() Config {
	return Config{
		TargetSize:  500,
		OverlapSize: 50,
	}
}

func validate(cfg Config) error {
	if cfg.TargetSize <= 0 || cfg.OverlapSize < 0 || cfg.OverlapSize >= cfg.TargetSize {
		return domain.ErrInvalidChunkConfig
	}
	return nil
}

// Segmenter splits documents into overlapping chunks sized for embedding.
// It is safe for concurrent use; UpdateConfig affects subsequent calls only.
type Segmenter struct {
	mu  sync.RWMutex
	cfg Config
}

// New creates a Segmenter, rejecting configurations where the overlap does
// not fit inside the target size.
func New(cfg Config) (*Segmenter, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return &Segmenter{cfg: cfg}, nil
}

// UpdateConfig swaps the configuration used by all subsequent Segment calls.
// Already-produced chunks are unaffected.
func (s *Segmenter) UpdateConfig(cfg Config) error {
	if err := validate(cfg); err != nil {
		return err
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}

// Config returns the currently active configuration.
func (s *Segmenter) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Segment splits each document into chunks of at most TargetSize runes,
// stitched together with OverlapSize runes of shared text. An empty input
// yields an empty output, not an error.
func (s *Segmenter) Segment(docs []domain.Document) []domain.Chunk {
	if len(docs) == 0 {
		log.Println("segment: no documents provided")
		return nil
	}

	cfg := s.Config()
	chunks := make([]domain.Chunk, 0, len(docs))
	for _, doc := range docs {
		for _, piece := range segmentText(doc.Content, cfg) {
			chunks = append(chunks, domain.Chunk{Content: piece, Origin: doc.Origin})
		}
	}
	return chunks
}

func segmentText(text string, cfg Config) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= cfg.TargetSize {
		return []string{text}
	}
	parts := split(text, separators, cfg.TargetSize)
	return pack(parts, cfg.TargetSize, cfg.OverlapSize)
}

// split recursively breaks text into parts no longer than size runes,
// descending the separator priority list until everything fits.
func split(text string, seps []string, size int) []string {
	if utf8.RuneCountInString(text) <= size {
		return []string{text}
	}

	sep, rest := pickSeparator(text, seps)
	if sep == "" {
		return splitRunes(text, size)
	}

	var parts []string
	for _, piece := range strings.SplitAfter(text, sep) {
		if piece == "" {
			continue
		}
		if utf8.RuneCountInString(piece) <= size {
			parts = append(parts, piece)
			continue
		}
		parts = append(parts, split(piece, rest, size)...)
	}
	return parts
}

func pickSeparator(text string, seps []string) (string, []string) {
	for i, sep := range seps {
		if sep == "" {
			return "", nil
		}
		if strings.Contains(text, sep) {
			return sep, seps[i+1:]
		}
	}
	return "", nil
}

func splitRunes(text string, size int) []string {
	runes := []rune(text)
	parts := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		parts = append(parts, string(runes[start:end]))
	}
	return parts
}

// pack greedily joins parts into chunks of at most target runes. Each chunk
// after the first is seeded with the previous chunk's overlap-sized tail,
// shrunk when the next part alone would push the chunk past the target.
func pack(parts []string, target, overlap int) []string {
	var chunks []string
	var cur strings.Builder
	curLen := 0

	for _, part := range parts {
		plen := utf8.RuneCountInString(part)
		if curLen > 0 && curLen+plen > target {
			chunk := cur.String()
			if strings.TrimSpace(chunk) != "" {
				chunks = append(chunks, chunk)
			}

			seed := ""
			if n := min(overlap, target-plen); n > 0 {
				seed = tail(chunk, n)
			}
			cur.Reset()
			cur.WriteString(seed)
			curLen = utf8.RuneCountInString(seed)
		}
		cur.WriteString(part)
		curLen += plen
	}

	if last := cur.String(); strings.TrimSpace(last) != "" {
		chunks = append(chunks, last)
	}
	return chunks
}

func tail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
