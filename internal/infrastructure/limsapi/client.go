package limsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/google/uuid"

	"github.com/urufarma/lims-web/internal/domain"
	"github.com/urufarma/lims-web/pkg/logger"
)

// RequestIDHeader header con el id de correlación de cada request al backend.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody límite de lectura del cuerpo de una respuesta de error.
const maxErrorBody = 64 * 1024

// TokenSource provee el token actual; lo implementa auth.SessionStore.
type TokenSource interface {
	Token() string
}

// Client cliente HTTP del API REST del LIMS. Sin reintentos, caché ni deduplicación:
// cada llamada es exactamente un request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        *logger.Logger
}

// NewClient construye el cliente. baseURL incluye el prefijo /api (ej. http://localhost:8000/api).
// timeout 0 deja el límite al contexto de cada llamada.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Component("limsapi"),
	}
}

// WithToken copia del cliente que firma los requests con el token de ts.
// Comparte el *http.Client (y su pool de conexiones).
func (c *Client) WithToken(ts TokenSource) *Client {
	cp := *c
	cp.tokens = ts
	return &cp
}

// BaseURL dirección base configurada.
func (c *Client) BaseURL() string { return c.baseURL }

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

// response cuerpo y headers de una respuesta 2xx.
type response struct {
	header http.Header
	body   []byte
}

func (c *Client) send(ctx context.Context, r request) (*response, error) {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return nil, fmt.Errorf("limsapi: crear request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("limsapi: %s %s cancelado: %w", r.method, r.path, ctx.Err())
		}
		c.log.Warn().Err(err).Str("method", r.method).Str("path", r.path).Str("request_id", reqID).Msg("backend inaccesible")
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrUnavailable, r.method, r.path, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Str("request_id", reqID).
		Msg("backend")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{
			Status:  resp.StatusCode,
			Method:  r.method,
			Path:    r.path,
			Message: parseErrorMessage(raw),
		}
		c.log.Warn().Int("status", resp.StatusCode).Str("path", r.path).Str("request_id", reqID).Str("detail", apiErr.Message).Msg("backend rechazó la petición")
		return nil, apiErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("limsapi: leer respuesta %s: %w", r.path, err)
	}
	return &response{header: resp.Header, body: body}, nil
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	resp, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("limsapi: deserializar %s: %w", r.path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params any, out any) error {
	var q url.Values
	if params != nil {
		v, err := query.Values(params)
		if err != nil {
			return fmt.Errorf("limsapi: codificar query: %w", err)
		}
		q = v
	}
	return c.do(ctx, request{method: http.MethodGet, path: path, query: q}, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("limsapi: serializar request: %w", err)
	}
	return c.do(ctx, request{method: method, path: path, body: bytes.NewReader(body), contentType: "application/json"}, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.sendJSON(ctx, http.MethodPost, path, in, out)
}

func (c *Client) put(ctx context.Context, path string, in, out any) error {
	return c.sendJSON(ctx, http.MethodPut, path, in, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: path}, nil)
}

// postForm envía in codificado como application/x-www-form-urlencoded (tags url).
func (c *Client) postForm(ctx context.Context, path string, in, out any) error {
	v, err := query.Values(in)
	if err != nil {
		return fmt.Errorf("limsapi: codificar formulario: %w", err)
	}
	return c.do(ctx, request{
		method:      http.MethodPost,
		path:        path,
		body:        strings.NewReader(v.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}, out)
}

// raw GET de un binario (descargas, CSV).
func (c *Client) raw(ctx context.Context, path string) (*response, error) {
	return c.send(ctx, request{method: http.MethodGet, path: path})
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, id)
}
