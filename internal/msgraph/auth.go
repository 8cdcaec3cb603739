package msgraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

var requiredScopes = []string{
	"https://graph.microsoft.com/Calendars.Read",
	"offline_access",
}

func msEndpoint(tenantID, path string) string {
	return "https://login.microsoftonline.com/" + tenantID + "/oauth2/v2.0/" + path
}

// oauth2Config returns the oauth2.Config for Microsoft Graph using the
// provided tenant and client IDs.
func oauth2Config(tenantID, clientID string) *oauth2.Config {
	return &oauth2.Config{
		ClientID: clientID,
		Scopes:   requiredScopes,
		Endpoint: oauth2.Endpoint{
			DeviceAuthURL: msEndpoint(tenantID, "devicecode"),
			TokenURL:      msEndpoint(tenantID, "token"),
			AuthStyle:     oauth2.AuthStyleInParams,
		},
	}
}

// TokenStore persists OAuth2 tokens as JSON at Path.
type TokenStore struct {
	Path string
}

// Load returns the saved token, or nil if none has been saved yet.
func (s TokenStore) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("corrupt token file (delete %s to re-authenticate): %w", s.Path, err)
	}
	return &tok, nil
}

// Save writes tok atomically, readable only by the user.
func (s TokenStore) Save(tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("creating auth directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}
	tmpPath := s.Path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving token file: %w", err)
	}
	return nil
}

// Auth describes how to obtain a Microsoft Graph token.
type Auth struct {
	TenantID string
	ClientID string
	Store    TokenStore
	// Prompt receives the device code sign-in instructions.
	Prompt io.Writer
	Log    *zap.Logger
}

// Token loads saved tokens, refreshes them if needed, or runs a new device
// code flow if no valid token is available.
func (a Auth) Token(ctx context.Context) (*oauth2.Token, *oauth2.Config, error) {
	log := a.Log
	if log == nil {
		log = zap.NewNop()
	}
	cfg := oauth2Config(a.TenantID, a.ClientID)

	tok, err := a.Store.Load()
	if err != nil {
		// Corrupt token, re-auth.
		log.Warn("ignoring stored token", zap.Error(err))
		tok = nil
	}

	if tok != nil && tok.Valid() {
		return tok, cfg, nil
	}

	if tok != nil && tok.RefreshToken != "" {
		refreshed, err := cfg.TokenSource(ctx, tok).Token()
		if err == nil {
			if err := a.Store.Save(refreshed); err != nil {
				log.Warn("could not save refreshed token", zap.Error(err))
			}
			return refreshed, cfg, nil
		}
		log.Warn("token refresh failed, re-authenticating", zap.Error(err))
	}

	resp, err := cfg.DeviceAuth(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("device auth request failed: %w", err)
	}

	fmt.Fprintln(a.Prompt)
	fmt.Fprintln(a.Prompt, "To sign in, use a web browser to open the page:")
	fmt.Fprintf(a.Prompt, "  %s\n", resp.VerificationURI)
	fmt.Fprintf(a.Prompt, "Enter the code: %s\n", resp.UserCode)
	fmt.Fprintln(a.Prompt)

	newTok, err := cfg.DeviceAccessToken(ctx, resp)
	if err != nil {
		return nil, nil, fmt.Errorf("device authentication failed: %w", err)
	}

	if err := a.Store.Save(newTok); err != nil {
		log.Warn("could not save token", zap.Error(err))
	}
	return newTok, cfg, nil
}
