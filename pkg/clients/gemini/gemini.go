package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	baseURL      = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel = "gemini-3-flash-preview"
)

// Client defines the interface for slip image analysis.
type Client interface {
	AnalyzeTicketImage(ctx context.Context, base64Image string) (TicketExtraction, error)
}

// TicketExtraction is the structured field set the vision model reads off
// a weighbridge slip. Fields the model cannot find come back empty or 0;
// the caller coerces them into a candidate ticket.
type TicketExtraction struct {
	TicketNumber  string  `json:"ticketNumber"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	NetWeightKg   float64 `json:"netWeightKg"`
	GrossWeightKg float64 `json:"grossWeightKg"`
	TareWeightKg  float64 `json:"tareWeightKg"`
	LicensePlate  string  `json:"licensePlate"`
	VendorName    string  `json:"vendorName"`
	ProductName   string  `json:"productName"`
}

type geminiClient struct {
	httpClient *resty.Client
	model      string
}

// NewClient creates a configured Gemini client.
func NewClient(apiKey, model string) Client {
	if model == "" {
		model = defaultModel
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("x-goog-api-key", apiKey).
		SetHeader("content-type", "application/json").
		SetTimeout(30 * time.Second)

	return &geminiClient{httpClient: client, model: model}
}

const extractionPrompt = `Analyze this weighbridge ticket (ใบชั่งน้ำหนัก) image from a sugar factory.
Extract the following information carefully in Thai.
Ensure 'netWeightKg' is a number (remove commas).

Fields to find:
- Ticket Number (เลขที่ใบชั่ง)
- Date (วัน เดือน ปี)
- Time (เวลา)
- Net Weight (น้ำหนักสุทธิ) in KG
- Gross Weight (น้ำหนักรวม) in KG
- Tare Weight (น้ำหนักรถ) in KG
- License Plate (ทะเบียนรถ)
- Vendor/Farmer Name (ชื่อลูกค้า/ชาวไร่)
- Product Name (ชื่อสินค้า)

If a field is not found, use an empty string or 0.
Respond with ONLY a JSON object using keys: ticketNumber, date, time,
netWeightKg, grossWeightKg, tareWeightKg, licensePlate, vendorName, productName.`

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType string `json:"response_mime_type"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

var dataURLPrefix = regexp.MustCompile(`^data:image/(png|jpg|jpeg|webp);base64,`)

func (c *geminiClient) AnalyzeTicketImage(ctx context.Context, base64Image string) (TicketExtraction, error) {
	cleaned := dataURLPrefix.ReplaceAllString(base64Image, "")
	if cleaned == "" {
		return TicketExtraction{}, fmt.Errorf("empty image payload")
	}

	reqBody := generateRequest{
		Contents: []content{{
			Parts: []part{
				{InlineData: &inlineData{MimeType: "image/jpeg", Data: cleaned}},
				{Text: extractionPrompt},
			},
		}},
		GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
	}

	var respBody generateResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(fmt.Sprintf("/models/%s:generateContent", c.model))
	if err != nil {
		return TicketExtraction{}, fmt.Errorf("gemini api call: %w", err)
	}
	if resp.IsError() {
		return TicketExtraction{}, fmt.Errorf("gemini api error: %s", resp.String())
	}
	if len(respBody.Candidates) == 0 || len(respBody.Candidates[0].Content.Parts) == 0 {
		return TicketExtraction{}, fmt.Errorf("empty response from vision model")
	}

	text := strings.TrimSpace(respBody.Candidates[0].Content.Parts[0].Text)
	text = stripCodeFence(text)

	var out TicketExtraction
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return TicketExtraction{}, fmt.Errorf("failed to unmarshal vision response: %w. Response was: %s", err, text)
	}
	return out, nil
}

// stripCodeFence removes markdown code fences the model occasionally wraps
// JSON output in.
func stripCodeFence(s string) string {
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSuffix(s, "```")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
