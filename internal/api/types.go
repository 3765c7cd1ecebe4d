package api

import "github.com/amreinch/removebg-pro/internal/model"

// Wire formats for the remote service. Field names follow the server's JSON.

// tokenResponse is returned by the login and signup endpoints
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// processResponse is returned by the background-removal endpoint. The
// output_url points at the watermarked preview; download_url at the clean
// image behind the credit gate.
type processResponse struct {
	Success          bool   `json:"success"`
	FileID           string `json:"file_id"`
	OutputURL        string `json:"output_url"`
	DownloadURL      string `json:"download_url"`
	OriginalFilename string `json:"original_filename"`
	OutputFilename   string `json:"output_filename"`
	OriginalSize     int64  `json:"original_size"`
	OutputSize       int64  `json:"output_size"`
	Format           string `json:"format"`
	HasWatermark     bool   `json:"has_watermark"`
	CreditsRemaining *int   `json:"credits_remaining"`
}

// checkoutResponse is returned by the checkout-session endpoint
type checkoutResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// keyListResponse wraps the API key listing
type keyListResponse struct {
	Keys []model.APIKey `json:"keys"`
}

// errorBody is the error envelope used by the server on non-2xx responses
type errorBody struct {
	Detail string `json:"detail"`
}

// Asset is a downloaded binary payload plus its suggested file name
type Asset struct {
	Data     []byte
	Filename string
}

// CreatedAPIKey carries the one-time plain key value returned at creation
type CreatedAPIKey struct {
	KeyID    string `json:"key_id"`
	Name     string `json:"name"`
	PlainKey string `json:"api_key"`
	Warning  string `json:"warning"`
}
