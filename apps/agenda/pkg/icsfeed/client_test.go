package icsfeed_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"agenda.xdoubleu.com/apps/agenda/pkg/icsfeed"
	"agenda.xdoubleu.com/apps/agenda/pkg/netguard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/calendar", r.Header.Get("Accept"))
		fmt.Fprint(w, "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")
	}))
	defer srv.Close()

	data, err := icsfeed.New(true).Fetch(context.Background(), srv.URL)
	require.Nil(t, err)
	assert.Equal(t, "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n", string(data))
}

func TestFetchNon200(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := icsfeed.New(true).Fetch(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "non-200")
}

func TestFetchRejectsPrivateHosts(t *testing.T) {
	client := icsfeed.New(false)

	for _, url := range []string{
		"http://localhost/cal.ics",
		"http://127.0.0.1:8080/cal.ics",
		"https://10.0.0.4/cal.ics",
		"https://192.168.1.10/cal.ics",
		"https://172.16.0.1/cal.ics",
	} {
		_, err := client.Fetch(context.Background(), url)
		assert.ErrorIs(t, err, netguard.ErrPrivateHost, url)
	}
}

func TestFetchRejectsOtherSchemes(t *testing.T) {
	_, err := icsfeed.New(true).Fetch(context.Background(), "file:///etc/passwd")
	assert.ErrorIs(t, err, netguard.ErrScheme)
}

func TestFetchRefusesRedirectToPrivateHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "http://169.254.169.254/latest/meta-data", http.StatusFound)
	}))
	defer srv.Close()

	_, err := icsfeed.New(false).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, netguard.ErrPrivateHost)
}
