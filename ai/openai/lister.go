// Copyright 2025 Parthenon Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/parthenonlabs/repoassist/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// maxParseAttempts bounds retries when the model returns malformed JSON.
const maxParseAttempts = 3

// QuestionLister implements ai.QuestionLister using OpenAI-compatible chat
// APIs in JSON mode.
type QuestionLister struct {
	client llms.Model
	logger *slog.Logger
}

// questionList matches the JSON shape the model is instructed to return:
// an object with a single "questions" key holding an array of strings.
type questionList struct {
	Questions []string `json:"questions"`
}

// newQuestionLister is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newQuestionLister(config *ai.Config) (*QuestionLister, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.PlannerModel),
	)
	if err != nil {
		return nil, err
	}

	return &QuestionLister{
		client: client,
		logger: slog.Default().With("component", "openai-lister"),
	}, nil
}

// NewQuestionLister creates a new question lister using the provided
// configuration.
//
// Returns ai.QuestionLister interface to enforce abstraction.
func NewQuestionLister(config *ai.Config) (ai.QuestionLister, error) {
	return newQuestionLister(config)
}

// ListQuestions sends the prompt in JSON mode and returns the parsed list.
// Malformed or empty output is reported as ai.ErrMalformedOutput after up to
// three parse attempts.
func (l *QuestionLister) ListQuestions(ctx context.Context, prompt string) ([]string, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	var lastErr error
	for attempt := 0; attempt < maxParseAttempts; attempt++ {
		response, err := l.client.GenerateContent(ctx, content,
			llms.WithTemperature(answerTemperature), llms.WithJSONMode())
		if err != nil {
			l.logger.Error("failed to generate question list", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			return nil, ai.ErrEmptyResponse
		}

		questions, err := parseQuestionList(response.Choices[0].Content)
		if err != nil {
			lastErr = err
			l.logger.Warn("error parsing question list",
				"attempt", attempt+1,
				"response", response.Choices[0].Content,
				"err", err)
			continue
		}

		return questions, nil
	}

	return nil, fmt.Errorf("%w: %v", ai.ErrMalformedOutput, lastErr)
}

// parseQuestionList parses the model's JSON-mode response into a list of
// questions, tolerating markdown code fences and common JSON defects.
func parseQuestionList(text string) ([]string, error) {
	// Strip markdown code fences if present
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	// Try to repair common JSON issues
	text = repairJSON(text)

	var result questionList
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, err
	}

	if len(result.Questions) == 0 {
		return nil, fmt.Errorf("questions array is empty")
	}
	for _, q := range result.Questions {
		if strings.TrimSpace(q) == "" {
			return nil, fmt.Errorf("questions array contains an empty entry")
		}
	}

	return result.Questions, nil
}
