package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/diillson/finance-tracker-go/internal/shared/types"
	"github.com/google/uuid"
)

// Logger recebe as mensagens de debug do cliente HTTP.
type Logger interface {
	LogDebug(format string, a ...interface{})
}

type nopLogger struct{}

func (nopLogger) LogDebug(string, ...interface{}) {}

// Client é o cliente HTTP compartilhado pelos clientes de cada recurso.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     Logger
	userAgent  string
}

// Option configura o Client.
type Option func(*Client)

// WithHTTPClient substitui o http.Client padrão.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout define o timeout de cada requisição.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger define onde as mensagens de debug são escritas.
func WithLogger(l Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithUserAgent define o cabeçalho User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient cria um cliente para a API em baseURL (ex.: http://localhost:8080/api/).
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme must be http or https", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: time.Duration(types.DefaultHTTPTimeout) * time.Second},
		logger:     nopLogger{},
		userAgent:  "finance-tracker",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// request descreve uma chamada à API. body é codificado como JSON, a menos
// que textBody esteja definido.
type request struct {
	method   string
	path     string
	query    url.Values
	body     interface{}
	textBody *string
}

// IsRetryable informa se vale a pena repetir uma chamada que falhou.
// Erros 4xx são definitivos; falhas de transporte e 5xx não.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *types.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return true
}

func (c *Client) resolve(path string, query url.Values) string {
	u := c.baseURL.ResolveReference(&url.URL{Path: strings.TrimPrefix(path, "/")})
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do executa a requisição e decodifica a resposta em out (quando não nil).
// Corpos vazios ou "null" deixam out intocado e retornam found=false.
func (c *Client) do(ctx context.Context, r request, out interface{}) (bool, error) {
	var body io.Reader
	contentType := ""
	switch {
	case r.textBody != nil:
		body = strings.NewReader(*r.textBody)
		contentType = "text/plain"
	case r.body != nil:
		payload, err := json.Marshal(r.body)
		if err != nil {
			return false, fmt.Errorf("error encoding %s %s body: %w", r.method, r.path, err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	target := c.resolve(r.path, r.query)
	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return false, fmt.Errorf("error building %s %s: %w", r.method, r.path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	c.logger.LogDebug("-> %s %s (request %s)", r.method, target, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("error reading %s %s response: %w", r.method, r.path, err)
	}
	c.logger.LogDebug("<- %s %s %d in %s (%d bytes)", r.method, r.path, resp.StatusCode, time.Since(start).Round(time.Millisecond), len(data))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, &types.APIError{
			StatusCode: resp.StatusCode,
			Method:     r.method,
			Path:       r.path,
			Message:    errorMessage(data),
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false, nil
	}
	if out == nil {
		return true, nil
	}

	// Alguns endpoints respondem texto puro em vez de uma string JSON.
	if s, ok := out.(*string); ok && trimmed[0] != '"' {
		*s = string(trimmed)
		return true, nil
	}

	if err := json.Unmarshal(trimmed, out); err != nil {
		return false, fmt.Errorf("error decoding %s %s response: %w", r.method, r.path, err)
	}
	return true, nil
}

const maxMessageRunes = 200

// errorMessage extrai a mensagem de erro enviada pelo backend.
func errorMessage(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		return payload.Error
	}
	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		return text
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return ""
	}
	// Corta por runas para não quebrar caracteres multibyte.
	if runes := []rune(string(trimmed)); len(runes) > maxMessageRunes {
		return string(runes[:maxMessageRunes-3]) + "..."
	}
	return string(trimmed)
}
