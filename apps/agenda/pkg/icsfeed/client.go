package icsfeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"

	"agenda.xdoubleu.com/apps/agenda/pkg/netguard"
)

type client struct {
	httpClient   *http.Client
	allowPrivate bool
}

// New returns a client for remote calendars. Unless allowPrivate is set,
// hosts on loopback or private networks are refused.
func New(allowPrivate bool) Client {
	return client{
		httpClient:   netguard.NewClient(allowPrivate),
		allowPrivate: allowPrivate,
	}
}

func (client client) Fetch(ctx context.Context, url string) ([]byte, error) {
	parsed, err := neturl.Parse(url)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar url: %w", err)
	}

	if err = netguard.CheckURL(parsed, client.allowPrivate); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("User-Agent", "agenda.xdoubleu.com/1.0")
	req.Header.Set("Accept", "text/calendar")

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 from calendar: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
