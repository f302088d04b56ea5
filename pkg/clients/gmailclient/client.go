// Package gmailclient sends roster notification email through the Gmail
// API. It implements the services.Mailer interface.
package gmailclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// ScopeGmailSend is the only Google API scope this application needs
const ScopeGmailSend = "https://www.googleapis.com/auth/gmail.send"

// Client wraps the Gmail API service
type Client struct {
	service      *gmail.Service
	lastSendTime time.Time
	sendMutex    sync.Mutex
}

// NewClient creates a Gmail client from an OAuth token source. The token
// must carry the gmail.send scope.
func NewClient(ctx context.Context, tokenSource oauth2.TokenSource) (*Client, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &Client{service: service}, nil
}
