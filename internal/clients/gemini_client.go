package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

const systemInstructionTemplate = `
You are "Gabby", the intelligent sales assistant for GabNork Tech.
Your goal is to help customers find the perfect tech products, answer questions about specs, and guide them to checkout.

Context:
We are a premium tech retailer in Nigeria.
All prices are in Naira (NGN).
We offer installment payments and pay-on-delivery for orders under ₦200,000.

Our Product Catalog:
%s

Guidelines:
1. Be polite, professional, and tech-savvy.
2. Recommend products from our catalog based on user needs.
3. If a user asks for a product we don't have, politely suggest the closest alternative from our catalog.
4. Keep responses concise (under 100 words) unless a detailed comparison is asked.
5. Use formatting (bullet points) for readability.
`

type catalogEntry struct {
	Name        string          `json:"name"`
	Price       int64           `json:"price"`
	Category    domain.Category `json:"category"`
	ID          string          `json:"id"`
	Description string          `json:"description"`
}

// SystemInstruction embeds the catalog into the assistant's standing
// instructions.
func SystemInstruction(products []domain.Product) (string, error) {
	entries := make([]catalogEntry, 0, len(products))
	for _, p := range products {
		entries = append(entries, catalogEntry{
			Name:        p.Name,
			Price:       p.Price,
			Category:    p.Category,
			ID:          p.ID,
			Description: p.Description,
		})
	}
	catalog, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("failed to encode catalog: %w", err)
	}
	return fmt.Sprintf(systemInstructionTemplate, catalog), nil
}

// contentGenerator is satisfied by (*genai.Client).Models.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiChatClient struct {
	models      contentGenerator
	model       string
	instruction string
	log         *logrus.Logger
}

func NewGeminiChatClient(ctx context.Context, apiKey, model string, products []domain.Product, logger *logrus.Logger) (domain.ChatCollaborator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return newGeminiChatClient(client.Models, model, products, logger)
}

func newGeminiChatClient(models contentGenerator, model string, products []domain.Product, logger *logrus.Logger) (*geminiChatClient, error) {
	if model == "" {
		model = DefaultGeminiModel
	}
	instruction, err := SystemInstruction(products)
	if err != nil {
		return nil, err
	}
	return &geminiChatClient{
		models:      models,
		model:       model,
		instruction: instruction,
		log:         logger,
	}, nil
}

func toContents(history []domain.ChatTurn, message string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		var role genai.Role = genai.RoleUser
		if turn.Role == domain.ChatRoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	return append(contents, genai.NewContentFromText(message, genai.RoleUser))
}

func (c *geminiChatClient) Reply(ctx context.Context, history []domain.ChatTurn, message string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(c.instruction, genai.RoleUser),
	}
	resp, err := c.models.GenerateContent(ctx, c.model, toContents(history, message), config)
	if err != nil {
		c.log.Errorf("Gemini Client: GenerateContent failed: %v", err)
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}
