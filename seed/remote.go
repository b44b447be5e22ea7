package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"nexusmatch/models"
)

// Remote pulls seed collections from a backend instead of inventing them:
// GET <BaseURL>/seed/<collection> returning a JSON array. Any failure falls
// back to Fallback so first run always has content.
type Remote struct {
	BaseURL      string
	ServiceToken string
	HTTPClient   *http.Client
	Fallback     Generator
}

func NewRemote(baseURL, serviceToken string, fallback Generator) *Remote {
	return &Remote{
		BaseURL:      baseURL,
		ServiceToken: serviceToken,
		Fallback:     fallback,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (r *Remote) Matches(ctx context.Context) ([]models.MatchRequest, error) {
	var out []models.MatchRequest
	if err := r.fetch(ctx, "matches", &out); err != nil {
		log.Printf("[SEED] ⚠️ Remote matches unavailable, using fallback: %v", err)
		return r.Fallback.Matches(ctx)
	}
	return out, nil
}

func (r *Remote) Connections(ctx context.Context) ([]models.Connection, error) {
	var out []models.Connection
	if err := r.fetch(ctx, "connections", &out); err != nil {
		log.Printf("[SEED] ⚠️ Remote connections unavailable, using fallback: %v", err)
		return r.Fallback.Connections(ctx)
	}
	return out, nil
}

func (r *Remote) Conversations(ctx context.Context) ([]models.Conversation, error) {
	var out []models.Conversation
	if err := r.fetch(ctx, "conversations", &out); err != nil {
		log.Printf("[SEED] ⚠️ Remote conversations unavailable, using fallback: %v", err)
		return r.Fallback.Conversations(ctx)
	}
	return out, nil
}

func (r *Remote) Tournaments(ctx context.Context) ([]models.Tournament, error) {
	var out []models.Tournament
	if err := r.fetch(ctx, "tournaments", &out); err != nil {
		log.Printf("[SEED] ⚠️ Remote tournaments unavailable, using fallback: %v", err)
		return r.Fallback.Tournaments(ctx)
	}
	return out, nil
}

func (r *Remote) fetch(ctx context.Context, collection string, dst any) error {
	base, err := url.Parse(r.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid seed service URL '%s': %w", r.BaseURL, err)
	}
	endpoint := base.JoinPath("seed", collection).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request to %s: %w", endpoint, err)
	}
	if r.ServiceToken != "" {
		req.Header.Set("X-Service-Token", r.ServiceToken)
	}

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request to seed service failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("seed service returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode seed service response: %w", err)
	}
	log.Printf("[SEED] 📥 Fetched %s from %s", collection, endpoint)
	return nil
}
