package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"symptom-drift/internal/domain/severity"
	"symptom-drift/internal/domain/symptoms"
	"symptom-drift/internal/platform/httpclient"
	"symptom-drift/internal/ports/extraction"
)

var ErrUpstream = errors.New("gemini upstream error")

const defaultBaseURL = "https://generativelanguage.googleapis.com"

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Extractor implementa extraction.Extractor con la API generateContent.
type Extractor struct {
	http    *httpclient.Client
	cfg     Config
	catalog *symptoms.Catalog
}

func New(client *httpclient.Client, catalog *symptoms.Catalog, cfg Config) *Extractor {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Extractor{http: client, cfg: cfg, catalog: catalog}
}

func (e *Extractor) IsConfigured() bool {
	return e != nil && e.http != nil && e.catalog != nil && e.cfg.APIKey != "" && e.cfg.Model != ""
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type extractedPayload struct {
	Symptoms  []string `json:"symptoms"`
	Intensity string   `json:"intensity"`
}

func (e *Extractor) Extract(ctx context.Context, text string) (extraction.Extraction, error) {
	if !e.IsConfigured() {
		return extraction.Extraction{}, extraction.ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		e.cfg.BaseURL, url.PathEscape(e.cfg.Model), url.QueryEscape(e.cfg.APIKey))

	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(text, e.catalog.Names())}}}},
	}

	var resp generateResponse
	if err := e.http.DoJSON(ctx, http.MethodPost, endpoint, nil, req, &resp); err != nil {
		return extraction.Extraction{}, fmt.Errorf("%w: %v", ErrUpstream, redactKey(err, e.cfg.APIKey))
	}

	raw := candidateText(resp)
	return parseExtraction(raw, e.catalog), nil
}

func candidateText(resp generateResponse) string {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return resp.Candidates[0].Content.Parts[0].Text
}

// parseExtraction toma el primer "{" hasta el último "}" del texto del modelo.
// Sin JSON válido el resultado es vacío con intensidad none.
func parseExtraction(raw string, catalog *symptoms.Catalog) extraction.Extraction {
	empty := extraction.Extraction{Symptoms: []string{}, Intensity: string(severity.IntensityNone)}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return empty
	}

	var p extractedPayload
	if err := json.Unmarshal([]byte(raw[start:end+1]), &p); err != nil {
		return empty
	}

	out := extraction.Extraction{
		Symptoms:  make([]string, 0, len(p.Symptoms)),
		Intensity: string(severity.ParseIntensity(p.Intensity)),
	}
	seen := map[string]struct{}{}
	for _, s := range p.Symptoms {
		sym, err := catalog.Lookup(s)
		if err != nil {
			continue
		}
		if _, ok := seen[sym.Name]; ok {
			continue
		}
		seen[sym.Name] = struct{}{}
		out.Symptoms = append(out.Symptoms, sym.Name)
	}
	return out
}

func buildPrompt(text string, vocabulary []string) string {
	var sb strings.Builder
	sb.WriteString("You are a medical symptom normalization system.\n\n")
	sb.WriteString("User text:\n")
	sb.WriteString(fmt.Sprintf("%q\n\n", text))
	sb.WriteString("Map the description to the closest matching symptom(s) from the official list below.\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- Handle synonyms and infer meaning (high temperature -> high_fever).\n")
	sb.WriteString("- Only return symptoms that exist in the list. Do not invent new ones.\n")
	sb.WriteString("- If nothing matches, return an empty array.\n\n")
	sb.WriteString("Official symptom list:\n")
	sb.WriteString(strings.Join(vocabulary, ", "))
	sb.WriteString("\n\nAlso detect intensity: mild, severe or none.\n\n")
	sb.WriteString("Return ONLY JSON:\n")
	sb.WriteString(`{"symptoms": [], "intensity": "mild/severe/none"}`)
	return sb.String()
}

// redactKey evita que la API key termine en logs vía mensajes de error con la URL.
func redactKey(err error, key string) string {
	msg := err.Error()
	if key == "" {
		return msg
	}
	msg = strings.ReplaceAll(msg, url.QueryEscape(key), "REDACTED")
	return strings.ReplaceAll(msg, key, "REDACTED")
}
