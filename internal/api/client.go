package api

// Package api implements the HTTP client for the remote RemoveBG Pro
// service: authentication, profile, background removal, gated downloads,
// checkout sessions, and API key management. The service itself is a black
// box; this package only maps its wire formats and failure signals onto the
// domain error taxonomy.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/amreinch/removebg-pro/internal/model"
)

const (
	// DefaultTimeout bounds every remote call. Background removal on large
	// images is the slowest operation the client waits for.
	DefaultTimeout = 90 * time.Second

	// maxErrorBodySize caps how much of an error response body gets read
	maxErrorBodySize = 64 * 1024
)

// Client talks to the remote service. Safe for concurrent use.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *logrus.Entry
}

// NewClient creates a client for the service at baseURL
func NewClient(baseURL string, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: DefaultTimeout},
		log:     logger.WithField("component", "api"),
	}
}

// BaseURL returns the configured service root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Resolve turns a server-relative path (e.g. "/outputs/x.png") into an
// absolute URL. Absolute inputs pass through unchanged.
func (c *Client) Resolve(ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return c.baseURL + ref
}

// Login exchanges credentials for a bearer token
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{"email": email, "password": password}

	var tok tokenResponse
	if err := c.postJSON(ctx, "/api/auth/login", "", payload, &tok); err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// Signup registers a new account and returns its bearer token. The server
// decides the starting credit allotment; the client never assumes one.
func (c *Client) Signup(ctx context.Context, email, password, fullName string) (string, error) {
	payload := map[string]any{"email": email, "password": password}
	if fullName != "" {
		payload["full_name"] = fullName
	}

	var tok tokenResponse
	if err := c.postJSON(ctx, "/api/auth/signup", "", payload, &tok); err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// Profile fetches the account snapshot for the given token. A 401-class
// response maps to model.ErrUnauthenticated.
func (c *Client) Profile(ctx context.Context, token string) (*model.UserProfile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/auth/me", token, nil)
	if err != nil {
		return nil, err
	}

	var profile model.UserProfile
	if err := c.do(req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Process uploads the selected file for background removal and returns the
// preview/download references. The response's credits_remaining field, when
// present, is the authoritative post-call balance.
func (c *Client) Process(ctx context.Context, token string, file *model.SelectedFile, format model.OutputFormat) (*model.ProcessingResult, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	header.Set("Content-Type", file.MIMEType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if err := mw.WriteField("format", string(format)); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/remove-background", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	var resp processResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}

	outputFormat, err := model.ParseOutputFormat(resp.Format)
	if err != nil {
		outputFormat = format
	}

	return &model.ProcessingResult{
		FileID:           resp.FileID,
		PreviewURL:       c.Resolve(resp.OutputURL),
		DownloadURL:      resp.DownloadURL,
		OriginalSize:     resp.OriginalSize,
		OutputSize:       resp.OutputSize,
		Format:           outputFormat,
		HasWatermark:     resp.HasWatermark,
		RemainingCredits: resp.CreditsRemaining,
	}, nil
}

// Download fetches the clean image behind downloadRef. The server deducts a
// credit on success; a depleted balance maps to model.ErrOutOfCredits.
func (c *Client) Download(ctx context.Context, token, downloadRef string) (*Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Resolve(downloadRef), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &model.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.mapError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.TransportError{Err: err}
	}

	return &Asset{Data: data, Filename: dispositionFilename(resp.Header.Get("Content-Disposition"))}, nil
}

// CreateCheckout requests a hosted checkout session for a credit pack and
// returns the redirect URL. No local state changes; the purchased balance is
// observed on the next profile refresh.
func (c *Client) CreateCheckout(ctx context.Context, token string, tier model.CheckoutTier) (string, error) {
	var resp checkoutResponse
	if err := c.postJSON(ctx, "/api/create-checkout-session", token, map[string]string{"tier": string(tier)}, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// Health pings the service. Used for a startup reachability log line only.
func (c *Client) Health(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/health", "", nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// CreateAPIKey creates a programmatic access key. The plain key value is
// returned exactly once.
func (c *Client) CreateAPIKey(ctx context.Context, token, name string) (*CreatedAPIKey, error) {
	form := url.Values{"name": {name}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/keys/create", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)

	var created CreatedAPIKey
	if err := c.do(req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListAPIKeys returns the metadata of all keys on the account
func (c *Client) ListAPIKeys(ctx context.Context, token string) ([]model.APIKey, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/keys/list", token, nil)
	if err != nil {
		return nil, err
	}

	var list keyListResponse
	if err := c.do(req, &list); err != nil {
		return nil, err
	}
	return list.Keys, nil
}

// RevokeAPIKey deletes a key by ID
func (c *Client) RevokeAPIKey(ctx context.Context, token, keyID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/keys/"+keyID, token, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// postJSON issues a JSON POST and decodes the response into out
func (c *Client) postJSON(ctx context.Context, path, token string, payload, out any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, token, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// newRequest builds a request against the service root with optional auth
func (c *Client) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do executes the request, maps failures onto the domain taxonomy, and
// decodes a successful JSON body into out when out is non-nil.
func (c *Client) do(req *http.Request, out any) error {
	started := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.WithError(err).WithField("url", req.URL.Path).Warn("request failed")
		return &model.TransportError{Err: err}
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"method":   req.Method,
		"path":     req.URL.Path,
		"status":   resp.StatusCode,
		"duration": time.Since(started).Round(time.Millisecond).String(),
	}).Debug("request completed")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.mapError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &model.TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// mapError converts a non-2xx response into a domain error: 401 becomes the
// silent unauthenticated signal, credit exhaustion becomes ErrOutOfCredits,
// anything else keeps the server's message verbatim.
func (c *Client) mapError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

	var body errorBody
	_ = json.Unmarshal(raw, &body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return model.ErrUnauthenticated
	case resp.StatusCode == http.StatusPaymentRequired, mentionsCredits(body.Detail):
		return model.ErrOutOfCredits
	}

	return &model.RemoteError{StatusCode: resp.StatusCode, Message: body.Detail}
}

// mentionsCredits detects credit-exhaustion messages the server sends with a
// generic status code
func mentionsCredits(detail string) bool {
	return strings.Contains(strings.ToLower(detail), "credit")
}

// dispositionFilename extracts the suggested filename from a
// Content-Disposition header, or returns "" when absent
func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}
