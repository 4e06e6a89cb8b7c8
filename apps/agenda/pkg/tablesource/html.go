package tablesource

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"agenda.xdoubleu.com/apps/agenda/pkg/extract"
	"agenda.xdoubleu.com/apps/agenda/pkg/netguard"
	"github.com/gocolly/colly/v2"
)

type htmlClient struct {
	logger *slog.Logger
	opts   Options
}

// NewHTML scrapes every <table> of a page. Sources are http(s) urls, and
// file urls or plain paths when opts.AllowFiles is set.
func NewHTML(logger *slog.Logger, opts Options) Client {
	return htmlClient{
		logger: logger,
		opts:   opts,
	}
}

func (client htmlClient) Tables(
	ctx context.Context,
	source string,
) ([]extract.Table, error) {
	target, err := resolve(source, client.opts)
	if err != nil {
		return nil, err
	}

	t := netguard.Transport(client.opts.AllowPrivate)
	if client.opts.AllowFiles {
		t.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))
	}

	c := colly.NewCollector(colly.StdlibContext(ctx))
	c.WithTransport(t)
	c.SetRedirectHandler(netguard.CheckRedirect(client.opts.AllowPrivate))

	tables := []extract.Table{}
	c.OnHTML("table", func(h *colly.HTMLElement) {
		table := extract.Table{}

		h.ForEach("tr", func(_ int, row *colly.HTMLElement) {
			cells := []string{}
			row.ForEach("th, td", func(_ int, cell *colly.HTMLElement) {
				for range span(cell.Attr("colspan")) {
					cells = append(cells, cell.Text)
				}
			})
			table = append(table, cells)
		})

		client.logger.Debug(fmt.Sprintf("found table with %d rows", len(table)))
		tables = append(tables, table)
	})

	err = c.Visit(target.String())
	if err != nil {
		return nil, fmt.Errorf("failed to scrape %s: %w", source, err)
	}

	return tables, nil
}

func span(attr string) int {
	n, err := strconv.Atoi(attr)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
