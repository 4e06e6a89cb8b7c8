// Package netguard builds HTTP clients for user supplied URLs. Unless
// private hosts are allowed, they only reach public http(s) addresses,
// including after redirects and DNS resolution.
package netguard

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	neturl "net/url"
	"strings"
	"syscall"
	"time"
)

const maxRedirects = 10

var (
	ErrScheme      = errors.New("only http and https urls are allowed")
	ErrPrivateHost = errors.New("private hosts are not allowed")
)

// CheckURL refuses non-http(s) urls and, unless allowPrivate is set,
// urls naming a loopback or private host.
func CheckURL(u *neturl.URL, allowPrivate bool) error {
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %s", ErrScheme, u.Scheme)
	}

	if !allowPrivate && IsPrivateHost(u.Hostname()) {
		return fmt.Errorf("%w: %s", ErrPrivateHost, u.Hostname())
	}

	return nil
}

func IsPrivateHost(host string) bool {
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}

	return IsPrivateAddr(addr)
}

func IsPrivateAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	return addr.IsLoopback() || addr.IsPrivate() ||
		addr.IsLinkLocalUnicast() || addr.IsLinkLocalMulticast() ||
		addr.IsUnspecified()
}

// CheckRedirect applies CheckURL to every hop.
func CheckRedirect(allowPrivate bool) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		return CheckURL(req.URL, allowPrivate)
	}
}

// Transport dials only public addresses unless allowPrivate is set. The
// check runs on the resolved address, so hostnames pointing at private
// networks are refused too.
func Transport(allowPrivate bool) *http.Transport {
	//nolint:mnd //no magic number
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	if !allowPrivate {
		dialer.Control = func(_ string, address string, _ syscall.RawConn) error {
			addrPort, err := netip.ParseAddrPort(address)
			if err != nil {
				return err
			}
			if IsPrivateAddr(addrPort.Addr()) {
				return fmt.Errorf("%w: %s", ErrPrivateHost, addrPort.Addr())
			}
			return nil
		}
	}

	t, _ := http.DefaultTransport.(*http.Transport)
	t = t.Clone()
	t.Proxy = nil
	t.DialContext = dialer.DialContext

	return t
}

func NewClient(allowPrivate bool) *http.Client {
	return &http.Client{
		Transport:     Transport(allowPrivate),
		CheckRedirect: CheckRedirect(allowPrivate),
		Timeout:       10 * time.Second, //nolint:mnd //no magic number
	}
}
