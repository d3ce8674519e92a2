// Package gemini implements an explain.Explainer backed by Google's Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash-lite"

const systemPrompt = "You are an expert college football analyst in a parallel universe where games are decided by competitions between the teams' mascots. " +
	"The parameters of the contest are as follows: Each mascot has a unique set of skills and attributes that reflect the spirit and culture of their respective teams. " +
	"The mascots will engage in a series of challenges that test their agility, strength, intelligence, and teamwork. " +
	"Your analysis should consider these factors and provide a clear rationale for your prediction. " +
	"Given two college football teams, provide a prediction as to why one team would defeat the other in under 150 words"

// Explainer asks Gemini for a mascot-contest rationale.
type Explainer struct {
	client *genai.Client
	model  string
}

// New creates a Gemini explainer. An empty model selects DefaultModel.
func New(ctx context.Context, apiKey, model string) (*Explainer, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Explainer{client: client, model: model}, nil
}

// Prompt returns the user prompt sent for a matchup.
func Prompt(victor, loser string) string {
	return fmt.Sprintf("Explain why %s would defeat %s in a college football game.", victor, loser)
}

// Explain implements explain.Explainer.
func (e *Explainer) Explain(ctx context.Context, victor, loser string) (string, error) {
	resp, err := e.client.Models.GenerateContent(ctx,
		e.model,
		genai.Text(Prompt(victor, loser)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		},
	)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("GenAI returned an empty response")
	}

	return text, nil
}

// Model returns the configured model name.
func (e *Explainer) Model() string {
	return e.model
}
