package llm

import (
	"context"
	"errors"
	"fleet-dispatch-service/internal/domain"
	"fleet-dispatch-service/internal/platform/obs"
	"fleet-dispatch-service/internal/ports"
	"strings"
	"time"

	"fmt"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// GeminiCollaborator implements the route-optimization and roster-availability
// ports against the Gemini API. Structured output is enforced through response
// schemas so a single call handles both the manifest parsing and the route
// sequencing; this service performs no pathfinding of its own.
type GeminiCollaborator struct {
	client *genai.Client
	model  string
}

func NewGeminiCollaborator(ctx context.Context, apiKey, model string) (*GeminiCollaborator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key is empty")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("new gemini collaborator: %w", err)
	}

	return &GeminiCollaborator{client: client, model: model}, nil
}

// OptimizeManifest asks the model to extract the delivery stops from the raw
// manifest and sequence them into an optimized visiting order in one call.
func (g *GeminiCollaborator) OptimizeManifest(ctx context.Context, manifest string) (_ *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "gemini.optimizeManifest")(&err)

	prompt := manifestPrompt + manifest

	text, err := g.generateJSON(ctx, prompt, routePlanSchema())
	if err != nil {
		return nil, fmt.Errorf("optimize manifest: %w", err)
	}

	plan, err := decodeRoutePlan(text)
	if err != nil {
		return nil, fmt.Errorf("optimize manifest: %w", err)
	}

	return plan, nil
}

// ParseAvailability asks the model for the people marked unavailable in the
// raw schedule text. An empty result is valid: nobody is off today.
func (g *GeminiCollaborator) ParseAvailability(ctx context.Context, schedule string) (_ []ports.Absence, err error) {
	defer obs.Time(ctx, "gemini.parseAvailability")(&err)

	prompt := availabilityPrompt + schedule

	text, err := g.generateJSON(ctx, prompt, availabilitySchema())
	if err != nil {
		return nil, fmt.Errorf("parse availability: %w", err)
	}

	absences, err := decodeAbsences(text)
	if err != nil {
		return nil, fmt.Errorf("parse availability: %w", err)
	}

	return absences, nil
}

// generateJSON runs one structured-output completion, retrying transient
// failures with exponential backoff while respecting context cancellation.
func (g *GeminiCollaborator) generateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	const maxAttempts = 3
	backoff := 500 * time.Millisecond

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
		if err == nil {
			text := resp.Text()
			if text == "" {
				return "", errors.New("empty completion")
			}
			return text, nil
		}
		lastErr = err

		if attempt == maxAttempts {
			break
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}

	return "", lastErr
}
