package notekit

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sethvargo/go-retry"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Summarizer extracts a structured note from a chunk of raw content.
// A (nil, nil) return means the chunk is not relevant to the topic and
// should be skipped without error.
type Summarizer interface {
	Summarize(ctx context.Context, chunk string, topic Topic, strict bool) (*Note, error)
}

// TopicDetector classifies content against a set of known topic keys.
type TopicDetector interface {
	DetectTopics(ctx context.Context, content string, known []string) ([]string, error)
	DetectSection(ctx context.Context, content string, sections map[string]string) (string, error)
}

// VisionDescriber extracts text and technical detail from an image.
type VisionDescriber interface {
	DescribeImage(ctx context.Context, data []byte, mimeType string) (string, error)
}

// Sample caps keep classification prompts cheap on large inputs.
const (
	topicSampleLimit   = 10000
	sectionSampleLimit = 5000
)

var (
	fenceOpen  = regexp.MustCompile("^```(?:json)?\n?")
	fenceClose = regexp.MustCompile("\n?```$")
)

// LLMClient implements Summarizer, TopicDetector, and VisionDescriber on
// top of OpenAI chat models via langchaingo. Text analysis uses the cheap
// model; vision requests use the vision model.
type LLMClient struct {
	text    llms.Model
	vision  llms.Model
	retries uint64
	backoff time.Duration
}

// NewLLMClient creates a client authenticating with apiKey. Empty model
// names fall back to sensible defaults.
func NewLLMClient(apiKey, model, visionModel string) (*LLMClient, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if visionModel == "" {
		visionModel = "gpt-4o"
	}
	text, err := openai.New(openai.WithToken(apiKey), openai.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSummarize, err)
	}
	vision, err := openai.New(openai.WithToken(apiKey), openai.WithModel(visionModel))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSummarize, err)
	}
	return &LLMClient{text: text, vision: vision, retries: 3, backoff: time.Second}, nil
}

// NewLLMClientWithModels wires pre-built models, used by tests to inject fakes.
func NewLLMClientWithModels(text, vision llms.Model) *LLMClient {
	return &LLMClient{text: text, vision: vision, retries: 3, backoff: time.Millisecond}
}

// Summarize asks the model for a structured note about chunk. When strict
// is false the model may declare the chunk irrelevant to the topic, in
// which case Summarize returns (nil, nil).
func (c *LLMClient) Summarize(ctx context.Context, chunk string, topic Topic, strict bool) (*Note, error) {
	var prompt string
	if strict {
		prompt = fmt.Sprintf(`Extract learning content from this text and format it for a %s knowledge base.

CONTENT:
%s

RESPOND IN JSON FORMAT:
{
    "title": "Clear section title",
    "summary": "2-3 sentence summary of the content",
    "key_points": ["point 1", "point 2", "point 3"],
    "code_examples": [
        {"description": "what it does", "language": "bash/yaml/python", "code": "the code"}
    ],
    "commands": [
        {"command": "the command", "description": "what it does"}
    ],
    "tips": ["practical tip 1", "practical tip 2"],
    "best_practices": ["practice 1", "practice 2"]
}

Extract all useful information. If no code/commands exist, use empty arrays.`, topic.Name, chunk)
	} else {
		prompt = fmt.Sprintf(`Analyze this content and extract information related to %s.

CONTENT:
%s

RESPOND IN JSON FORMAT:
{
    "relevant": true/false,
    "title": "Section title if relevant",
    "summary": "2-3 sentence summary",
    "key_points": ["point 1", "point 2"],
    "code_examples": [
        {"description": "what it does", "language": "bash/yaml/python", "code": "the code"}
    ],
    "commands": [
        {"command": "the command", "description": "what it does"}
    ],
    "tips": ["tip 1", "tip 2"],
    "best_practices": ["practice 1"]
}

If content is not relevant to %s, set "relevant": false and leave other fields empty.`, topic.Name, chunk, topic.Name)
	}

	raw, err := c.complete(ctx, c.text,
		"You extract learning content and format it as JSON. Always respond with valid JSON.",
		prompt, llms.WithTemperature(0.2))
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Relevant *bool `json:"relevant"`
		Note
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadModelOutput, err)
	}
	if !strict && (parsed.Relevant == nil || !*parsed.Relevant) {
		return nil, nil
	}
	if parsed.Note.Empty() {
		return nil, nil
	}
	note := parsed.Note
	return &note, nil
}

// DetectTopics identifies which known topic keys the content covers.
// Unknown keys in the model output are discarded; an empty result falls
// back to ["misc"].
func (c *LLMClient) DetectTopics(ctx context.Context, content string, known []string) ([]string, error) {
	sample := truncate(content, topicSampleLimit)
	prompt := fmt.Sprintf(`Identify ALL topics present in this content.

AVAILABLE TOPICS: %s

CONTENT:
%s

Respond with ONLY a JSON array of matching topic keys, e.g.: ["kubernetes", "docker"]
If content doesn't match any specific topic, use ["misc"]`, strings.Join(known, ", "), sample)

	raw, err := c.complete(ctx, c.text,
		"You identify technical topics in content. Respond with ONLY a JSON array of topic keys.",
		prompt, llms.WithTemperature(0.1))
	if err != nil {
		return nil, err
	}

	var keys []string
	if err := json.Unmarshal([]byte(stripFences(raw)), &keys); err != nil {
		return []string{"misc"}, nil
	}
	valid := keys[:0]
	for _, k := range keys {
		for _, want := range known {
			if k == want {
				valid = append(valid, k)
				break
			}
		}
	}
	if len(valid) == 0 {
		return []string{"misc"}, nil
	}
	return valid, nil
}

// DetectSection picks the best-fitting section ID for content, or suggests
// a new kebab-case ID when nothing fits.
func (c *LLMClient) DetectSection(ctx context.Context, content string, sections map[string]string) (string, error) {
	pairs := make([]string, 0, len(sections))
	for k, v := range sections {
		pairs = append(pairs, k+": "+v)
	}
	sample := truncate(content, sectionSampleLimit)
	prompt := fmt.Sprintf(`Which section does this content belong to?

AVAILABLE SECTIONS:
%s

CONTENT:
%s

Respond with ONLY the section ID (e.g., "git-advanced", "docker", "kubernetes").
If it doesn't fit any section, suggest a new section ID in kebab-case.`, strings.Join(pairs, ", "), sample)

	raw, err := c.complete(ctx, c.text,
		"You identify which section content belongs to. Respond with only the section ID.",
		prompt, llms.WithTemperature(0.1))
	if err != nil {
		return "", err
	}
	id := strings.ToLower(strings.Trim(strings.TrimSpace(raw), `"`))
	if id == "" {
		return "", fmt.Errorf("%w: empty section ID", ErrBadModelOutput)
	}
	return id, nil
}

// DescribeImage extracts text and technical content from an image via the
// vision model.
func (c *LLMClient) DescribeImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	msg := llms.MessageContent{
		Role: llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{
			llms.TextPart("Extract all text and technical information from this image. " +
				"If it's a diagram, describe the architecture and components. " +
				"If it contains code, extract the code. Provide detailed technical content."),
			llms.BinaryPart(mimeType, data),
		},
	}
	var out string
	err := c.withRetry(ctx, func(ctx context.Context) error {
		resp, err := c.vision.GenerateContent(ctx, []llms.MessageContent{msg}, llms.WithMaxTokens(4096))
		if err != nil {
			return retry.RetryableError(err)
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("%w: no choices returned", ErrBadModelOutput)
		}
		out = resp.Choices[0].Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummarize, err)
	}
	return out, nil
}

func (c *LLMClient) complete(ctx context.Context, model llms.Model, system, user string, opts ...llms.CallOption) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}
	var out string
	err := c.withRetry(ctx, func(ctx context.Context) error {
		resp, err := model.GenerateContent(ctx, messages, opts...)
		if err != nil {
			return retry.RetryableError(err)
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("%w: no choices returned", ErrBadModelOutput)
		}
		out = resp.Choices[0].Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummarize, err)
	}
	return strings.TrimSpace(out), nil
}

func (c *LLMClient) withRetry(ctx context.Context, fn func(context.Context) error) error {
	backoff := retry.WithMaxRetries(c.retries, retry.NewExponential(c.backoff))
	return retry.Do(ctx, backoff, fn)
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = fenceOpen.ReplaceAllString(s, "")
	return fenceClose.ReplaceAllString(s, "")
}

// truncate cuts s to at most limit bytes, backing up to a rune boundary
// so the sample never ends in a partial multi-byte sequence.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
