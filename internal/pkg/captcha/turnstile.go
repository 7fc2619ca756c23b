package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/colloq/colloq/internal/pkg/apperrors"
	"github.com/colloq/colloq/internal/pkg/logger"
)

const siteverifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// devKeyPrefix marks Cloudflare's dummy secret keys used for local development.
const devKeyPrefix = "1x0000"

// Verifier validates a CAPTCHA response token.
type Verifier interface {
	Verify(ctx context.Context, token string) error
}

// TurnstileVerifier verifies tokens against the Cloudflare Turnstile API.
type TurnstileVerifier struct {
	secretKey string
	client    *http.Client
}

var _ Verifier = (*TurnstileVerifier)(nil)

// NewTurnstileVerifier creates a verifier with a bounded request timeout.
func NewTurnstileVerifier(secretKey string) *TurnstileVerifier {
	return &TurnstileVerifier{
		secretKey: secretKey,
		client:    &http.Client{Timeout: 5 * time.Second},
	}
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks the token with Cloudflare. Dummy development keys skip the
// remote call entirely.
func (v *TurnstileVerifier) Verify(ctx context.Context, token string) error {
	if strings.HasPrefix(v.secretKey, devKeyPrefix) {
		logger.Warn().Msg("Using dummy Turnstile verification (development mode)")
		return nil
	}

	form := url.Values{}
	form.Set("secret", v.secretKey)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, siteverifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	var result siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode siteverify response: %w", err)
	}

	if !result.Success {
		logger.Warn().Strs("errorCodes", result.ErrorCodes).Msg("Turnstile verification rejected token")
		return apperrors.ErrCaptchaFailed
	}

	return nil
}
