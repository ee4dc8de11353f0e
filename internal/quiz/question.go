package quiz

import (
	"crypto/sha1"
	"encoding/hex"
	"html"
	"math/rand"
	"strings"

	"github.com/hoanglm/quizforge/internal/trivia"
)

// OptionCount is the number of answer slots per question (labels A-D).
const OptionCount = 4

// idPrefixLen bounds how much of the normalized prompt feeds the identifier.
// Two distinct questions sharing the same first 50 normalized characters will
// collide; this matches the upstream duplicate-detection behavior and is kept
// as-is rather than widened.
const idPrefixLen = 50

type Option struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Question is a fully built multiple-choice question. Option order is fixed at
// build time and never reshuffled.
type Question struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"prompt"`
	Options      []Option `json:"options"`
	CorrectLabel string   `json:"correct_label"`
	Category     string   `json:"category"`
	Difficulty   string   `json:"difficulty"`
}

// Build turns a raw provider question into a Question: entity-decodes all
// text, shuffles the four options with an unbiased permutation and records
// which slot ended up holding the correct answer.
func Build(raw trivia.RawQuestion) Question {
	texts := make([]string, 0, OptionCount)
	texts = append(texts, html.UnescapeString(raw.CorrectAnswer))
	for _, incorrect := range raw.IncorrectAnswers {
		texts = append(texts, html.UnescapeString(incorrect))
	}
	correctIdx := 0

	rand.Shuffle(len(texts), func(i, j int) {
		texts[i], texts[j] = texts[j], texts[i]
		switch correctIdx {
		case i:
			correctIdx = j
		case j:
			correctIdx = i
		}
	})

	options := make([]Option, len(texts))
	for idx, text := range texts {
		options[idx] = Option{Label: string(rune('A' + idx)), Text: text}
	}

	prompt := html.UnescapeString(raw.Question)
	return Question{
		ID:           QuestionID(prompt),
		Prompt:       prompt,
		Options:      options,
		CorrectLabel: options[correctIdx].Label,
		Category:     html.UnescapeString(raw.Category),
		Difficulty:   raw.Difficulty,
	}
}

// BuildAll transforms a raw batch, dropping any entry that cannot form four
// options.
func BuildAll(raw []trivia.RawQuestion) []Question {
	questions := make([]Question, 0, len(raw))
	for _, item := range raw {
		if len(item.IncorrectAnswers) != OptionCount-1 {
			continue
		}
		questions = append(questions, Build(item))
	}
	return questions
}

// QuestionID derives a stable identifier from the normalized prompt text, so
// the same content fetched twice maps to the same ID.
func QuestionID(prompt string) string {
	normalized := normalizePrompt(prompt)
	if len(normalized) > idPrefixLen {
		normalized = normalized[:idPrefixLen]
	}
	sum := sha1.Sum([]byte(normalized))
	return "q_" + hex.EncodeToString(sum[:])[:12]
}

func normalizePrompt(prompt string) string {
	return strings.Join(strings.Fields(strings.ToLower(prompt)), " ")
}

// NormalizeLabel canonicalizes a user-supplied option label ("a " -> "A").
// Returns "" when the input is not a single letter.
func NormalizeLabel(label string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(label))
	if len(trimmed) != 1 || trimmed[0] < 'A' || trimmed[0] > 'A'+OptionCount-1 {
		return ""
	}
	return trimmed
}
