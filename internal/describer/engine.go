package describer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/akulov/shot2site/internal/segmenter"
)

const maxAttempts = 3

// Engine calls the Gemini API for region description, page assembly and
// component code generation. A nil Engine is valid and means offline
// mode; callers fall back to local merging and template scaffolds.
type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

// DescribeRegion crops the region out of the page image and asks the
// vision model for a structured section description. This is the Region
// Describer side of the segmentation contract, invoked once per leaf.
func (e *Engine) DescribeRegion(ctx context.Context, img image.Image, r segmenter.Region) (Section, error) {
	crop, err := encodePNG(cropForModel(img, r.Rect))
	if err != nil {
		return Section{}, fmt.Errorf("encode crop %s: %w", r.Name(), err)
	}

	user := fmt.Sprintf("Section %s at (%d,%d)-(%d,%d), depth %d. Respond with the JSON only.",
		r.Name(), r.Rect.Min.X, r.Rect.Min.Y, r.Rect.Max.X, r.Rect.Max.Y, r.Depth)

	raw, err := e.generate(ctx, describeSystem, []genai.Part{
		genai.Text(user),
		&genai.Blob{MIMEType: "image/png", Data: crop},
	})
	if err != nil {
		return Section{}, err
	}
	return parseSection(raw)
}

// CombineSections is the Assembler side of the contract: it merges child
// descriptions (in child order) into the parent's. layout is "stack" or
// "columns" depending on the split direction that produced the children;
// the caller reads it off the tree. Interior nodes merge locally; only
// the root, whose summary becomes the page specification, is worth a
// model round-trip.
func (e *Engine) CombineSections(ctx context.Context, r segmenter.Region, layout string, children []Section) (Section, error) {
	if e == nil || r.Depth > 0 {
		return Merge(children, layout), nil
	}

	payload, err := json.Marshal(children)
	if err != nil {
		return Section{}, err
	}
	raw, err := e.generate(ctx, combineSystem, []genai.Part{
		genai.Text("Top-level sections, top to bottom:\n" + string(payload)),
	})
	if err != nil {
		// The local merge is a serviceable page description; keep the
		// pipeline moving and let the caller log the failure.
		return Merge(children, layout), err
	}
	return parseSection(raw)
}

// GenerateComponent asks the model for the full source of one project
// file described by sec.
func (e *Engine) GenerateComponent(ctx context.Context, file string, sec Section) (string, error) {
	payload, err := json.Marshal(sec)
	if err != nil {
		return "", err
	}
	raw, err := e.generateWith(ctx, generateSystem, []genai.Part{
		genai.Text(fmt.Sprintf("File: %s\nSection description:\n%s", file, payload)),
	}, "text/plain")
	if err != nil {
		return "", err
	}
	code := StripCodeFences(raw)
	if code == "" {
		return "", fmt.Errorf("empty code for %s", file)
	}
	return code, nil
}

func (e *Engine) generate(ctx context.Context, system string, parts []genai.Part) (string, error) {
	return e.generateWith(ctx, system, parts, "application/json")
}

func (e *Engine) generateWith(ctx context.Context, system string, parts []genai.Part, mime string) (string, error) {
	if e == nil || e.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	if e.Model == "" {
		return "", errors.New("model name is empty")
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: mime,
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	// Retries cover transient 5xx failures only; cancellation stops the
	// loop immediately.
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := m.GenerateContent(ctx, parts...)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			time.Sleep(time.Duration(attempt) * 300 * time.Millisecond)
			continue
		}
		txt := firstText(resp)
		if txt == "" {
			return "", fmt.Errorf("empty response from %s", e.Model)
		}
		return txt, nil
	}
	return "", fmt.Errorf("gemini: %d attempts failed: %w", maxAttempts, lastErr)
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
