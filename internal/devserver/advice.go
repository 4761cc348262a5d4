package devserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/goabroadai/goabroad/internal/llm"
	"github.com/goabroadai/goabroad/internal/store"
)

const adviceSystemPrompt = `You are GoAbroadAI, a friendly and precise study abroad consultant. You advise one student using their profile. Recommend realistic universities, programs, scholarships, visa steps and cost estimates that fit the student's background, budget and preferred countries. Answer in Markdown. Keep answers focused and under 300 words unless the student asks for more detail.`

// AdviceSchema is the structured reply the advisor must return.
var AdviceSchema = &llm.Schema{
	Name:        "advisor-reply",
	Description: "Answer to a student's study abroad question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"response": map[string]any{
				"type":        "string",
				"description": "The answer in Markdown",
			},
		},
		"required":             []any{"response"},
		"additionalProperties": false,
	},
}

// Advisor answers chat questions with an LLM provider.
type Advisor struct {
	provider  llm.Provider
	maxTokens int
}

// NewAdvisor creates an Advisor. maxTokens <= 0 uses 1024.
func NewAdvisor(provider llm.Provider, maxTokens int) *Advisor {
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &Advisor{provider: provider, maxTokens: maxTokens}
}

type adviceOutput struct {
	Response string `json:"response"`
}

// Answer asks the provider about question on behalf of p.
func (a *Advisor) Answer(ctx context.Context, p *store.ProfileRecord, question string) (string, error) {
	ctx = llm.WithPurpose(ctx, "advice")

	req := llm.Prompt(adviceSystemPrompt, buildAdviceUserMessage(p, question))
	req.Schema = AdviceSchema
	req.MaxTokens = a.maxTokens
	req.Temperature = 0.3

	reply, err := a.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("generate advice: %w", err)
	}

	var out adviceOutput
	if err := reply.Decode(&out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.Response) == "" {
		return "", fmt.Errorf("decode advice: empty response")
	}
	return out.Response, nil
}

func buildAdviceUserMessage(p *store.ProfileRecord, question string) string {
	var b strings.Builder

	b.WriteString("Student Profile:\n")
	fmt.Fprintf(&b, "Name: %s\n", p.FullName)
	fmt.Fprintf(&b, "Nationality: %s\n", p.Nationality)
	fmt.Fprintf(&b, "Living in: %s\n", p.CurrentLivingCountry)
	if len(p.PreferredCountries) > 0 {
		fmt.Fprintf(&b, "Preferred countries: %s\n", strings.Join(p.PreferredCountries, ", "))
	}
	fmt.Fprintf(&b, "Budget: %d - %d BDT (prefers %s)\n", p.BudgetMinBDT, p.BudgetMaxBDT, p.PreferredCurrency)
	if p.PreferredIntake != "" {
		fmt.Fprintf(&b, "Preferred intake: %s\n", p.PreferredIntake)
	}

	b.WriteString("\nEducation:\n")
	if len(p.Education) == 0 {
		b.WriteString("None given\n")
	}
	for _, e := range p.Education {
		line := e.Level
		if e.Field != "" {
			line += ", " + e.Field
		}
		if e.Institution != "" {
			line += " at " + e.Institution
		}
		if e.GPA != nil {
			line += fmt.Sprintf(", GPA %.2f", *e.GPA)
		}
		if e.YearCompleted != nil {
			line += fmt.Sprintf(", completed %d", *e.YearCompleted)
		}
		fmt.Fprintf(&b, "- %s\n", line)
	}
	if p.Resume != nil {
		fmt.Fprintf(&b, "\nResume on file: %s\n", p.Resume.Filename)
	}

	fmt.Fprintf(&b, "\nQuestion:\n%s\n", question)
	return b.String()
}
