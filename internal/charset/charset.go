package charset

import (
	"strings"

	"github.com/saintfish/chardet"
)

// DefaultLabel is used when detection fails or the sample is empty.
const DefaultLabel = "utf-8"

// DefaultSampleBytes bounds how much of a file is handed to the detector.
const DefaultSampleBytes = 10000

// DefaultFallbacks lists the regionally common encodings tried after the
// detected label, in order.
var DefaultFallbacks = []string{"gbk", "gb2312", "utf-8-sig", "latin1", "cp1252"}

// Guess is the detector's verdict for a byte sample.
type Guess struct {
	Label      string `json:"label"`
	Confidence int    `json:"confidence"`
	Language   string `json:"language,omitempty"`
	// Detected is false when Label is the fallback default.
	Detected bool `json:"detected"`
}

// Detect returns the best-guess encoding for sample. Callers bound the sample
// (see Sample); the detector's cost grows with its length.
func Detect(sample []byte) Guess {
	return DetectWithDefault(sample, DefaultLabel)
}

// DetectWithDefault is Detect with a caller-chosen fallback label.
func DetectWithDefault(sample []byte, fallback string) Guess {
	fallback = strings.TrimSpace(fallback)
	if fallback == "" {
		fallback = DefaultLabel
	}
	if len(sample) == 0 {
		return Guess{Label: fallback}
	}
	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || result == nil || strings.TrimSpace(result.Charset) == "" {
		return Guess{Label: fallback}
	}
	return Guess{
		Label:      result.Charset,
		Confidence: result.Confidence,
		Language:   result.Language,
		Detected:   true,
	}
}

// Sample returns at most limit leading bytes of data. A non-positive limit
// means DefaultSampleBytes.
func Sample(data []byte, limit int) []byte {
	if limit <= 0 {
		limit = DefaultSampleBytes
	}
	if len(data) > limit {
		return data[:limit]
	}
	return data
}

// Candidates returns the ordered labels to attempt: the guess first, then
// fallbacks. Labels are deduplicated by their normalized form; the first
// spelling wins.
func Candidates(guess Guess, fallbacks []string) []string {
	out := make([]string, 0, len(fallbacks)+1)
	seen := make(map[string]struct{}, len(fallbacks)+1)
	add := func(label string) {
		label = strings.TrimSpace(label)
		if label == "" {
			return
		}
		key := NormalizeLabel(label)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, label)
	}
	add(guess.Label)
	for _, label := range fallbacks {
		add(label)
	}
	return out
}

// NormalizeLabel lowercases and trims a label and folds underscores to
// hyphens so "UTF_8" and "utf-8" compare equal.
func NormalizeLabel(label string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), "_", "-")
}
