package tablesource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"agenda.xdoubleu.com/apps/agenda/pkg/extract"
	"agenda.xdoubleu.com/apps/agenda/pkg/netguard"
)

type csvClient struct {
	httpClient *http.Client
	opts       Options
}

// NewCSV reads a single table from an http(s) url, or from a file when
// opts.AllowFiles is set.
func NewCSV(opts Options) Client {
	return csvClient{
		httpClient: netguard.NewClient(opts.AllowPrivate),
		opts:       opts,
	}
}

func (client csvClient) Tables(
	ctx context.Context,
	source string,
) ([]extract.Table, error) {
	rc, err := client.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	reader := csv.NewReader(rc)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv %s: %w", source, err)
	}

	return []extract.Table{records}, nil
}

func (client csvClient) open(
	ctx context.Context,
	source string,
) (io.ReadCloser, error) {
	target, err := resolve(source, client.opts)
	if err != nil {
		return nil, err
	}

	if target.Scheme == "file" {
		return os.Open(filepath.FromSlash(target.Path))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("non-200 from %s: %d", source, resp.StatusCode)
	}

	return resp.Body, nil
}
