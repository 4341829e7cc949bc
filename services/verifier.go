package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"greengoals/config"
	"greengoals/models"
)

const (
	verifierModel   = "gemini-1.5-flash"
	verifierTimeout = 10 * time.Second
)

var verifierClient *genai.Client

// InitVerifierService creates the Gemini client used for advisory
// evidence checks. Without an API key the verifier stays disabled and
// every submission is marked indeterminate for human review.
func InitVerifierService(cfg *config.Config) {
	if cfg.Gemini.ApiKey == "" {
		log.Warn("Gemini API key not configured; evidence verifier disabled")
		return
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.Gemini.ApiKey))
	if err != nil {
		log.WithError(err).Error("Failed to initialize Gemini client; evidence verifier disabled")
		return
	}
	verifierClient = client
}

// VerifyEvidence runs the advisory image check against a bounded
// context. It never fails the request: any verifier problem yields an
// indeterminate verdict, and the verdict never awards points on its
// own. Human review is always the gate.
func VerifyEvidence(ctx context.Context, image string, challenge models.Challenge) *models.VerifierVerdict {
	if verifierClient == nil {
		return indeterminate("Automated verification not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, verifierTimeout)
	defer cancel()

	verdict, err := classifyImage(ctx, image, challenge)
	if err != nil {
		log.WithError(err).WithField("challenge", challenge.Name).Warn("Evidence verification failed")
		return indeterminate("Automated verification unavailable")
	}
	return verdict
}

func classifyImage(ctx context.Context, image string, challenge models.Challenge) (*models.VerifierVerdict, error) {
	data, err := loadImage(ctx, image)
	if err != nil {
		return nil, err
	}

	model := verifierClient.GenerativeModel(verifierModel)
	resp, err := model.GenerateContent(ctx,
		genai.Text(verificationPrompt(challenge)),
		genai.ImageData("jpeg", data),
	)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("empty model response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return parseVerdict(sb.String())
}

// loadImage accepts either an http(s) URL or a base64 payload, with or
// without a data: prefix.
func loadImage(ctx context.Context, image string) ([]byte, error) {
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, image, nil)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("image fetch returned status %d", resp.StatusCode)
		}
		return io.ReadAll(io.LimitReader(resp.Body, 20<<20))
	}

	payload := image
	if idx := strings.Index(payload, "base64,"); idx != -1 {
		payload = payload[idx+len("base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image payload: %w", err)
	}
	return data, nil
}

func verificationPrompt(challenge models.Challenge) string {
	return fmt.Sprintf(`You verify whether images show evidence of completing eco-friendly challenges.
Does this image show evidence of completing the challenge %q - %s?
Respond with only a JSON object: {"approved": true/false, "confidence": "high"/"medium"/"low", "reason": "brief explanation"}.
Be encouraging but fair. If the image reasonably shows effort toward the challenge, approve it.`,
		challenge.Name, challenge.Description)
}

// parseVerdict decodes the model's JSON reply, falling back to a
// keyword scan over free-form text.
func parseVerdict(text string) (*models.VerifierVerdict, error) {
	cleaned := cleanModelOutput(text)
	if cleaned == "" {
		return nil, errors.New("empty model output")
	}

	var verdict models.VerifierVerdict
	if err := json.Unmarshal([]byte(cleaned), &verdict); err == nil {
		if verdict.Confidence == "" {
			verdict.Confidence = "medium"
		}
		return &verdict, nil
	}

	lower := strings.ToLower(cleaned)
	return &models.VerifierVerdict{
		Approved:   strings.Contains(lower, "approved") || strings.Contains(lower, "yes") || strings.Contains(lower, "true"),
		Confidence: "low",
		Reason:     cleaned,
	}, nil
}

func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

func indeterminate(reason string) *models.VerifierVerdict {
	return &models.VerifierVerdict{
		Approved:   false,
		Confidence: "indeterminate",
		Reason:     reason,
	}
}
