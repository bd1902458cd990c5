package osu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/oszget/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	osuTokenURL = "https://osu.ppy.sh/oauth/token"
	osuBaseURL  = "https://osu.ppy.sh/api/v2"

	pageSize   = 100
	apiTimeout = 30 * time.Second

	// pause between score pages, a courtesy to the upstream rate limit
	pageInterval = 200 * time.Millisecond
)

// Client talks to the osu! v2 API using a client-credentials token.
type Client struct {
	creds      *clientcredentials.Config
	token      *oauth2.Token
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// NewClient creates a Client with the given OAuth2 credentials.
func NewClient(clientID, clientSecret string) (*Client, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: client id", shared.ErrMissingCredentials)
	}
	if clientSecret == "" {
		return nil, fmt.Errorf("%w: client secret", shared.ErrMissingCredentials)
	}

	creds := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     osuTokenURL,
		Scopes:       []string{"public"},
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	return &Client{
		creds:      creds,
		httpClient: &http.Client{Timeout: apiTimeout},
		limiter:    rate.NewLimiter(rate.Every(pageInterval), 1),
		baseURL:    osuBaseURL,
	}, nil
}

// Authenticate exchanges the client credentials for a bearer token.
// Any failure is fatal to the run; there is no retry.
func (c *Client) Authenticate(ctx context.Context) error {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	token, err := c.creds.Token(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	if token.AccessToken == "" {
		return fmt.Errorf("%w: no access_token in response", shared.ErrAuthFailed)
	}

	c.token = token
	return nil
}

// doRequest performs an authenticated GET against the osu! API and decodes
// the JSON response into result.
func (c *Client) doRequest(ctx context.Context, endpoint string, result any) error {
	if c.token == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	apiURL := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d from %s", shared.ErrAPIRequest, resp.StatusCode, endpoint)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: unexpected response shape: %v", shared.ErrAPIRequest, err)
		}
	}

	return nil
}

// TopScores fetches up to total of the user's best scores for the given
// mode, in the API's order (descending performance). Pages of up to 100 are
// requested with advancing offsets until the ceiling is reached or a page
// comes back empty; the upstream caps the total near 200 regardless of the
// requested ceiling.
func (c *Client) TopScores(ctx context.Context, userID int, mode Mode, total int) ([]Score, error) {
	var scores []Score
	offset := 0

	for offset < total {
		if err := c.limiter.Wait(ctx); err != nil {
			return scores, err
		}

		limit := pageSize
		if remaining := total - offset; remaining < limit {
			limit = remaining
		}

		endpoint := fmt.Sprintf(
			"/users/%d/scores/best?mode=%s&limit=%d&offset=%d&legacy_only=0&include_fails=0",
			userID, mode, limit, offset,
		)

		var page []Score
		if err := c.doRequest(ctx, endpoint, &page); err != nil {
			return nil, err
		}

		if len(page) == 0 {
			break
		}

		scores = append(scores, page...)
		offset += len(page)
	}

	return scores, nil
}
