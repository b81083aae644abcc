// Package advisor selects a micro-intervention for a stuck task by asking
// an OpenAI-compatible chat endpoint. The returned payload is advisory:
// callers store it as-is and must tolerate techniques outside the local
// hint tables. Every failure path degrades to a per-pattern fallback, so
// Choose never leaves the user without an intervention.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/julianstephens/unstick/internal/constants"
	"github.com/julianstephens/unstick/internal/logger"
	"github.com/julianstephens/unstick/internal/models"
)

const systemPrompt = `You are an emotion-first micro-intervention selector for task initiation.
Given: physical sensation, internal narrative, and an emotion label, you will:
1) Identify primary barrier pattern: perfectionism | overwhelm | decision_fatigue | anxiety_dread.
2) Select one technique: permission_protocol | single_next_action | choice_elimination | one_minute_entry.
3) Return JSON: {"pattern":"...","technique_id":"...","message":"...","duration_seconds":...}
Techniques:
- permission_protocol: for perfectionism/fear of failure; duration 300s with gentle framing.
- single_next_action: for overwhelm; duration 0 (user-initiated) or 60 if timer is useful.
- choice_elimination: for decision fatigue; duration 300s but include a 10s lead-in.
- one_minute_entry: for anxiety/task dread; duration 60s.`

// fallbacks provides a canned intervention per barrier pattern, used
// whenever the remote call fails or returns an incomplete payload.
var fallbacks = map[constants.Pattern]models.Intervention{
	constants.PatternPerfectionism: {
		Pattern:         constants.PatternPerfectionism,
		TechniqueID:     constants.TechniquePermissionProtocol,
		Message:         "Your only goal for 5 minutes: create it imperfectly. Make it worse than you think it should be.",
		DurationSeconds: 300,
	},
	constants.PatternOverwhelm: {
		Pattern:         constants.PatternOverwhelm,
		TechniqueID:     constants.TechniqueSingleNextAction,
		Message:         "What's the smallest physical action? e.g., just open the doc and type a title.",
		DurationSeconds: 60,
	},
	constants.PatternDecisionFatigue: {
		Pattern:         constants.PatternDecisionFatigue,
		TechniqueID:     constants.TechniqueChoiceElimination,
		Message:         "Don't choose. Do this next: open the file and write 3 bullets. Starting in 10 seconds.",
		DurationSeconds: 300,
	},
	constants.PatternAnxietyDread: {
		Pattern:         constants.PatternAnxietyDread,
		TechniqueID:     constants.TechniqueOneMinuteEntry,
		Message:         "Commit to 60 seconds only. Full permission to stop after. Timer set.",
		DurationSeconds: 60,
	},
}

var defaultEmotionLabels = []string{"Fear of judgment", "Perfectionism anxiety", "Performance pressure"}

// Fallback returns the canned intervention for a pattern. Unknown patterns
// resolve to the anxiety_dread fallback. Useful when no API key is
// configured and calling out is pointless.
func Fallback(pattern constants.Pattern) models.Intervention {
	if iv, ok := fallbacks[pattern]; ok {
		return iv
	}
	return fallbacks[constants.PatternAnxietyDread]
}

// DefaultEmotionLabels returns the static emotion label suggestions.
func DefaultEmotionLabels() []string {
	labels := make([]string, len(defaultEmotionLabels))
	copy(labels, defaultEmotionLabels)
	return labels
}

// Request is the context handed to the advisor for a selection.
type Request struct {
	TaskDescription   string `json:"task_description"`
	PhysicalSensation string `json:"physical_sensation"`
	InternalNarrative string `json:"internal_narrative"`
	EmotionLabel      string `json:"emotion_label"`
}

// Advisor calls an OpenAI-compatible chat completions endpoint.
type Advisor struct {
	APIKey   string
	Model    string
	Endpoint string
	Client   *http.Client
}

// New creates an advisor with the default model and endpoint.
func New(apiKey string) *Advisor {
	return &Advisor{
		APIKey:   apiKey,
		Model:    constants.AdvisorDefaultModel,
		Endpoint: constants.AdvisorEndpoint,
		Client:   &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Choose selects an intervention for the given request. On any transport,
// status, or parse failure it falls back to the anxiety_dread canned
// intervention rather than returning an error.
func (a *Advisor) Choose(ctx context.Context, req Request) models.Intervention {
	userContext, _ := json.Marshal(req)
	content, err := a.complete(ctx, []chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf("Context:\n%s\nReturn ONLY JSON.", userContext)},
	}, 0.7)
	if err != nil {
		logger.Error("Advisor call failed, using fallback", "error", err)
		return fallbacks[constants.PatternAnxietyDread]
	}

	var parsed struct {
		Pattern         constants.Pattern   `json:"pattern"`
		TechniqueID     constants.Technique `json:"technique_id"`
		Message         string              `json:"message"`
		DurationSeconds int                 `json:"duration_seconds"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		logger.Error("Advisor returned malformed JSON, using fallback", "error", err)
		return fallbacks[constants.PatternAnxietyDread]
	}

	pattern := parsed.Pattern
	fallback, known := fallbacks[pattern]
	if !known {
		pattern = constants.PatternAnxietyDread
		fallback = fallbacks[pattern]
	}

	choice := models.Intervention{
		Pattern:         pattern,
		TechniqueID:     parsed.TechniqueID,
		Message:         parsed.Message,
		DurationSeconds: parsed.DurationSeconds,
	}
	// Fill gaps from the pattern's fallback rather than rejecting the
	// response outright.
	if choice.TechniqueID == "" {
		choice.TechniqueID = fallback.TechniqueID
	}
	if choice.Message == "" {
		choice.Message = fallback.Message
	}
	if choice.DurationSeconds <= 0 {
		choice.DurationSeconds = fallback.DurationSeconds
	}
	return choice
}

// EmotionLabels suggests 2-3 concise emotion labels for the intake form.
// Falls back to a static set on any failure.
func (a *Advisor) EmotionLabels(ctx context.Context, req Request) []string {
	prompt := fmt.Sprintf(`Suggest 2-3 concise emotion labels based on:
- physical_sensation: %s
- internal_narrative: %s
- task: %s
Return ONLY a JSON object with this format: {"labels": ["emotion1", "emotion2", "emotion3"]}`,
		req.PhysicalSensation, req.InternalNarrative, req.TaskDescription)

	content, err := a.complete(ctx, []chatMessage{{Role: "user", Content: prompt}}, 0.2)
	if err != nil {
		logger.Warn("Emotion label call failed, using defaults", "error", err)
		return defaultEmotionLabels
	}

	var parsed struct {
		Labels []string `json:"labels"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil || len(parsed.Labels) == 0 {
		return defaultEmotionLabels
	}
	if len(parsed.Labels) > 3 {
		parsed.Labels = parsed.Labels[:3]
	}
	return parsed.Labels
}

// complete performs a chat completion with bounded retries and returns the
// first choice's content.
func (a *Advisor) complete(ctx context.Context, messages []chatMessage, temperature float64) (string, error) {
	body := chatRequest{
		Model:       a.Model,
		Messages:    messages,
		Temperature: temperature,
	}
	body.ResponseFormat.Type = "json_object"

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 1; attempt <= constants.AdvisorMaxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(constants.AdvisorRetryDelay):
			}
		}

		content, err := a.completeOnce(ctx, payload)
		if err == nil {
			return content, nil
		}
		lastErr = err
		logger.Debug("Advisor attempt failed", "attempt", attempt, "error", err)
	}
	return "", lastErr
}

func (a *Advisor) completeOnce(ctx context.Context, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.APIKey)

	res, err := a.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("advisor request failed with status %d", res.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode advisor response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("advisor response contained no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
