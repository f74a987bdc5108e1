package bwvalidators

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/sourcegraph/conc/pool"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
	"github.com/blockwatch-dev/blockwatch/pkg/stringutil"
)

// maxAIMessageLength caps how much of a model's reply is carried into a
// violation's message and data fields.
const maxAIMessageLength = 500

const checkAISystemPrompt = `You are a strict validator. You are given a CONDITION and a BLOCK.
- If the BLOCK satisfies the CONDITION, reply with exactly: OK
- If the BLOCK violates the CONDITION, reply ONLY with a short, meaningful, and actionable error message describing what must be changed.
- Do not include quotes, labels, or extra text.`

// AIClient checks one block's content against a natural-language
// condition, returning the empty string if it passes or a short
// explanation of the failure otherwise.
type AIClient interface {
	CheckBlock(ctx context.Context, condition, blockContent string) (string, error)
}

// CheckAIValidator sends each "check-ai"-tagged block's content to an
// AIClient alongside its condition attribute.
type CheckAIValidator struct {
	client AIClient
}

func NewCheckAIValidator(client AIClient) *CheckAIValidator {
	return &CheckAIValidator{client: client}
}

func (*CheckAIValidator) Code() string { return "check-ai" }

func (v *CheckAIValidator) Validate(ctx context.Context, vctx *bwcore.ValidationContext) (map[string][]bwcore.Violation, error) {
	type job struct {
		file    string
		block   bwcore.Block
		content string
	}
	var jobs []job

	for _, file := range sortedFiles(vctx) {
		fb := vctx.BlocksByFile[file]
		for _, bc := range fb.BlocksWithContext {
			condition, ok := bc.Block.Attributes.Get("check-ai")
			if !ok {
				continue
			}
			conditionTrimmed := strings.TrimSpace(condition)
			if conditionTrimmed == "" {
				return nil, fmt.Errorf("check-ai requires a non-empty condition in %s:%s at line %d",
					file, blockNameDisplay(bc.Block), bc.Block.StartsAtLine)
			}
			content, err := checkAIBlockContent(bc.Block, fb)
			if err != nil {
				return nil, err
			}
			if content == "" {
				continue
			}
			jobs = append(jobs, job{file: file, block: bc.Block, content: content})
		}
	}

	p := pool.New().WithContext(ctx).WithCancelOnError()
	results := make([]*bwcore.Violation, len(jobs))
	for i, j := range jobs {
		i, j := i, j
		p.Go(func(ctx context.Context) error {
			condition, _ := j.block.Attributes.Get("check-ai")
			msg, err := v.client.CheckBlock(ctx, strings.TrimSpace(condition), j.content)
			if err != nil {
				return fmt.Errorf("check-ai API error in %s:%s at line %d: %w",
					j.file, blockNameDisplay(j.block), j.block.StartsAtLine, err)
			}
			if msg == "" {
				return nil
			}
			violation, err := checkAIViolation(j.file, j.block, condition, msg)
			if err != nil {
				return err
			}
			results[i] = &violation
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	violations := map[string][]bwcore.Violation{}
	for i, j := range jobs {
		if results[i] != nil {
			violations[j.file] = append(violations[j.file], *results[i])
		}
	}
	return violations, nil
}

func checkAIBlockContent(b bwcore.Block, fb *bwcore.FileBlocks) (string, error) {
	content := fb.ContentText(b)
	if pattern, ok := b.Attributes.Get("check-ai-pattern"); ok {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return "", fmt.Errorf("check-ai-pattern is not a valid regex: %w", err)
		}
		loc := re.FindStringSubmatchIndex(content)
		if loc == nil {
			return "", nil
		}
		for i, name := range re.SubexpNames() {
			if name == "value" && loc[2*i] >= 0 {
				return content[loc[2*i]:loc[2*i+1]], nil
			}
		}
		return content[loc[0]:loc[1]], nil
	}
	return strings.TrimSpace(content), nil
}

func checkAIViolation(file string, b bwcore.Block, condition, aiMessage string) (bwcore.Violation, error) {
	message := fmt.Sprintf("Block %s:%s defined at line %d failed AI check: %s",
		file, blockNameDisplay(b), b.StartsAtLine, aiMessage)
	data, err := json.Marshal(struct {
		Condition string `json:"condition"`
		AIMessage string `json:"ai_message,omitempty"`
	}{strings.TrimSpace(condition), aiMessage})
	if err != nil {
		return bwcore.Violation{}, err
	}
	severity, ok := b.Severity()
	if !ok {
		return bwcore.Violation{}, fmt.Errorf("invalid severity attribute on block %s:%s at line %d", file, blockNameDisplay(b), b.StartsAtLine)
	}
	return bwcore.Violation{
		Range: bwcore.PositionRange{
			Start: bwcore.Position{Line: b.StartsAtLine, Character: 1},
			End:   bwcore.Position{Line: b.EndsAtLine, Character: 1},
		},
		Code:     "check-ai",
		Message:  message,
		Severity: severity,
		Data:     data,
	}, nil
}

// openAIClient is the default AIClient, talking to an OpenAI-compatible
// chat completions endpoint configured entirely through environment
// variables so the binary needs no flags for AI-backed validation.
type openAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClientFromEnv builds the default AIClient from
// BLOCKWATCH_AI_API_URL, BLOCKWATCH_AI_API_KEY, and BLOCKWATCH_AI_MODEL.
func NewOpenAIClientFromEnv() AIClient {
	model := os.Getenv("BLOCKWATCH_AI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}
	opts := []option.RequestOption{option.WithAPIKey(os.Getenv("BLOCKWATCH_AI_API_KEY"))}
	if base := os.Getenv("BLOCKWATCH_AI_API_URL"); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}
	return &openAIClient{client: openai.NewClient(opts...), model: model}
}

func (c *openAIClient) CheckBlock(ctx context.Context, condition, blockContent string) (string, error) {
	if os.Getenv("BLOCKWATCH_AI_API_KEY") == "" {
		return "", fmt.Errorf("API key is empty. Is BLOCKWATCH_AI_API_KEY env variable set?")
	}

	user := fmt.Sprintf("CONDITION:\n%s\n\nBLOCK (preserve formatting):\n%s", condition, blockContent)
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(checkAISystemPrompt),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	reply := strings.TrimSpace(stringutil.StripANSI(resp.Choices[0].Message.Content))
	if strings.EqualFold(reply, "OK") || strings.EqualFold(reply, "OK.") {
		return "", nil
	}
	return stringutil.Truncate(reply, maxAIMessageLength), nil
}
