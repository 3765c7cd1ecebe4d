package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amreinch/removebg-pro/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, nil)
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["email"] != "a@b.c" || body["password"] != "hunter22" {
			t.Errorf("unexpected credentials: %v", body)
		}

		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1", "token_type": "bearer"})
	})

	token, err := client.Login(context.Background(), "a@b.c", "hunter22")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token != "tok-1" {
		t.Errorf("expected token tok-1, got %s", token)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect email or password"})
	})

	_, err := client.Login(context.Background(), "a@b.c", "wrong")
	if !model.IsUnauthenticated(err) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestProfile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("expected bearer token header, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":                  "u1",
			"email":               "a@b.c",
			"credits_balance":     3,
			"subscription_tier":   "free",
			"api_access_unlocked": false,
		})
	})

	profile, err := client.Profile(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if profile.Email != "a@b.c" {
		t.Errorf("expected email a@b.c, got %s", profile.Email)
	}
	if profile.CreditsBalance != 3 {
		t.Errorf("expected balance 3, got %d", profile.CreditsBalance)
	}
	if profile.SubscriptionTier != model.TierFree {
		t.Errorf("expected free tier, got %s", profile.SubscriptionTier)
	}
}

func TestProfile_ExpiredToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Profile(context.Background(), "stale")
	if !model.IsUnauthenticated(err) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestProcess(t *testing.T) {
	remaining := 3
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/remove-background" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("format"); got != "png" {
			t.Errorf("expected format png, got %q", got)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		defer file.Close()
		if header.Filename != "cat.png" {
			t.Errorf("expected filename cat.png, got %s", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "image/png" {
			t.Errorf("expected file part content type image/png, got %s", ct)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"success":           true,
			"file_id":           "f1",
			"output_url":        "/outputs/f1_preview.png",
			"download_url":      "/api/download/f1",
			"original_size":     2048,
			"output_size":       1024,
			"format":            "png",
			"has_watermark":     true,
			"credits_remaining": remaining,
		})
	})

	file := &model.SelectedFile{Name: "cat.png", MIMEType: "image/png", Size: 4, Data: []byte("data")}
	result, err := client.Process(context.Background(), "tok-1", file, model.FormatPNG)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if result.FileID != "f1" {
		t.Errorf("expected file id f1, got %s", result.FileID)
	}
	if result.DownloadURL != "/api/download/f1" {
		t.Errorf("unexpected download url: %s", result.DownloadURL)
	}
	if result.PreviewURL != client.BaseURL()+"/outputs/f1_preview.png" {
		t.Errorf("preview url not resolved against base: %s", result.PreviewURL)
	}
	if !result.HasWatermark {
		t.Error("expected watermarked preview")
	}
	if result.RemainingCredits == nil || *result.RemainingCredits != 3 {
		t.Errorf("expected remaining credits 3, got %v", result.RemainingCredits)
	}
}

func TestProcess_RemoteErrorMessageVerbatim(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Processing error: model unavailable"})
	})

	file := &model.SelectedFile{Name: "cat.png", MIMEType: "image/png", Data: []byte("x")}
	_, err := client.Process(context.Background(), "tok-1", file, model.FormatPNG)

	var remote *model.RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected *model.RemoteError, got %v", err)
	}
	if remote.Message != "Processing error: model unavailable" {
		t.Errorf("expected verbatim server message, got %q", remote.Message)
	}
}

func TestDownload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/download/f1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("expected bearer token header, got %q", got)
		}
		w.Header().Set("Content-Disposition", `attachment; filename="removebg-pro-f1.png"`)
		w.Write([]byte("binary-image"))
	})

	asset, err := client.Download(context.Background(), "tok-1", "/api/download/f1")
	if err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	if string(asset.Data) != "binary-image" {
		t.Errorf("unexpected payload: %q", asset.Data)
	}
	if asset.Filename != "removebg-pro-f1.png" {
		t.Errorf("expected filename from disposition header, got %q", asset.Filename)
	}
}

func TestDownload_OutOfCredits(t *testing.T) {
	tests := []struct {
		name   string
		status int
		detail string
	}{
		{"payment required status", http.StatusPaymentRequired, "No credits remaining"},
		{"credit message with generic status", http.StatusForbidden, "No credits remaining. Buy more credits to continue!"},
	}

	for _, test := range tests {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(test.status)
			json.NewEncoder(w).Encode(map[string]string{"detail": test.detail})
		})

		_, err := client.Download(context.Background(), "tok-1", "/api/download/f1")
		if !model.IsOutOfCredits(err) {
			t.Errorf("%s: expected ErrOutOfCredits, got %v", test.name, err)
		}
	}
}

func TestCreateCheckout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/create-checkout-session" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["tier"] != "pro" {
			t.Errorf("expected tier pro, got %q", body["tier"])
		}
		json.NewEncoder(w).Encode(map[string]string{"session_id": "cs_1", "url": "https://checkout.example/cs_1"})
	})

	redirect, err := client.CreateCheckout(context.Background(), "tok-1", model.CheckoutPro)
	if err != nil {
		t.Fatalf("CreateCheckout returned error: %v", err)
	}
	if redirect != "https://checkout.example/cs_1" {
		t.Errorf("unexpected redirect url: %s", redirect)
	}
}

func TestTransportError(t *testing.T) {
	// Point at a closed server to force a connection failure.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := NewClient(server.URL, nil)

	err := client.Health(context.Background())

	var transport *model.TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected *model.TransportError, got %v", err)
	}
}

func TestListAPIKeys(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"keys": []map[string]any{
				{"id": "k1", "name": "ci", "prefix": "rbp_live_abc", "is_active": true},
			},
		})
	})

	keys, err := client.ListAPIKeys(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("ListAPIKeys returned error: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("expected 1 key, got %d", len(keys))
	}
	if keys[0].Prefix != "rbp_live_abc" {
		t.Errorf("unexpected key prefix: %s", keys[0].Prefix)
	}
}

func TestResolve(t *testing.T) {
	client := NewClient("http://svc.example/", nil)

	tests := []struct {
		input    string
		expected string
	}{
		{"/outputs/a.png", "http://svc.example/outputs/a.png"},
		{"outputs/a.png", "http://svc.example/outputs/a.png"},
		{"https://cdn.example/a.png", "https://cdn.example/a.png"},
	}

	for _, test := range tests {
		if got := client.Resolve(test.input); got != test.expected {
			t.Errorf("Resolve(%q) = %s, expected %s", test.input, got, test.expected)
		}
	}
}
