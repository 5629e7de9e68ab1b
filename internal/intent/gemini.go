package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"google.golang.org/genai"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

// Parser превращает запрос на естественном языке в структурированный конверт интента.
type Parser interface {
	Parse(ctx context.Context, query string) (*models.IntentEnvelope, error)
}

// GeminiParser — парсер интентов на Gemini со строгой JSON-схемой ответа.
type GeminiParser struct {
	client *genai.Client
	model  string
}

const systemPrompt = `You are the intent parser of a banking assistant.
Classify the user's request into one of the known intents and extract the
entities. Amounts keep their original currency code if one is mentioned.
Answer only with the JSON object.`

func NewGeminiParser(ctx context.Context) (*GeminiParser, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("переменная окружения GEMINI_API_KEY не задана")
	}
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания клиента Gemini: %v", err)
	}

	return &GeminiParser{client: client, model: model}, nil
}

// envelopeSchema — JSON-схема конверта, которую Gemini обязан соблюдать.
func envelopeSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"intent", "entities", "confidence"},
		Properties: map[string]*genai.Schema{
			"intent": {
				Type: genai.TypeString,
				Enum: models.KnownIntents,
			},
			"entities": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"amount": {
						Type:     genai.TypeObject,
						Required: []string{"value"},
						Properties: map[string]*genai.Schema{
							"value":    {Type: genai.TypeNumber},
							"currency": {Type: genai.TypeString},
						},
					},
					"recipient_name":       {Type: genai.TypeString},
					"recipient_account_id": {Type: genai.TypeString},
					"recipient_routing_id": {Type: genai.TypeString},
					"contact_label":        {Type: genai.TypeString},
					"budget_category":      {Type: genai.TypeString},
					"time_period": {
						Type: genai.TypeString,
						Enum: []string{"daily", "weekly", "monthly"},
					},
					"description": {Type: genai.TypeString},
				},
			},
			"confidence": {Type: genai.TypeNumber},
		},
	}
}

func (p *GeminiParser) Parse(ctx context.Context, query string) (*models.IntentEnvelope, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    envelopeSchema(),
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(query), config)
	if err != nil {
		return nil, fmt.Errorf("ошибка вызова Gemini: %v", err)
	}

	raw := resp.Text()
	if raw == "" {
		return nil, fmt.Errorf("пустой ответ Gemini")
	}

	envelope := &models.IntentEnvelope{}
	if err := json.Unmarshal([]byte(raw), envelope); err != nil {
		return nil, fmt.Errorf("ошибка разбора ответа Gemini: %v", err)
	}
	envelope.RawLlm = []byte(raw)

	if err := envelope.Validate(); err != nil {
		return nil, fmt.Errorf("ответ Gemini не прошёл валидацию: %v", err)
	}

	log.Printf("Интент распознан: %s (confidence=%.2f)", envelope.Intent, envelope.Confidence)
	return envelope, nil
}
