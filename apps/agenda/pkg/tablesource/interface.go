package tablesource

import (
	"context"
	"errors"
	"fmt"
	neturl "net/url"
	"path/filepath"
	"strings"

	"agenda.xdoubleu.com/apps/agenda/pkg/extract"
	"agenda.xdoubleu.com/apps/agenda/pkg/netguard"
)

var ErrFilesNotAllowed = errors.New("local files are not allowed")

type Client interface {
	Tables(ctx context.Context, source string) ([]extract.Table, error)
}

// Options widens what a client may read. The zero value only reaches
// public http(s) urls.
type Options struct {
	AllowPrivate bool
	AllowFiles   bool
}

// resolve turns a source into a url the client may fetch. Plain paths
// become file urls.
func resolve(source string, opts Options) (*neturl.URL, error) {
	if !strings.Contains(source, "://") {
		if !opts.AllowFiles {
			return nil, fmt.Errorf("%w: %s", ErrFilesNotAllowed, source)
		}

		abs, err := filepath.Abs(source)
		if err != nil {
			return nil, err
		}

		//nolint:exhaustruct //other fields are optional
		return &neturl.URL{Scheme: "file", Path: filepath.ToSlash(abs)}, nil
	}

	u, err := neturl.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("invalid source url: %w", err)
	}

	if u.Scheme == "file" {
		if !opts.AllowFiles {
			return nil, fmt.Errorf("%w: %s", ErrFilesNotAllowed, source)
		}
		return u, nil
	}

	if err = netguard.CheckURL(u, opts.AllowPrivate); err != nil {
		return nil, err
	}

	return u, nil
}
