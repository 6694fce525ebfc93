package api

import (
	"bytes"
	"io"
	"net/url"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/bandwidth"
)

// fakeHTTP stands in for the tls-client transport. It answers every
// request with the canned response and remembers the last one.
type fakeHTTP struct {
	resp *fhttp.Response
	err  error

	calls       int
	lastRequest *fhttp.Request
	lastBody    []byte
	idleClosed  bool
}

var _ tls_client.HttpClient = (*fakeHTTP)(nil)

func replyWith(body []byte, status int) *fakeHTTP {
	return &fakeHTTP{resp: &fhttp.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Header:     make(fhttp.Header),
	}}
}

func failWith(err error) *fakeHTTP {
	return &fakeHTTP{err: err}
}

func (f *fakeHTTP) Do(req *fhttp.Request) (*fhttp.Response, error) {
	f.calls++
	f.lastRequest = req
	f.lastBody = nil
	if req.Body != nil {
		f.lastBody, _ = io.ReadAll(req.Body)
	}
	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	return f.resp, f.err
}

func (f *fakeHTTP) CloseIdleConnections() { f.idleClosed = true }

// unused by Client
func (f *fakeHTTP) Get(string) (*fhttp.Response, error)  { return f.resp, f.err }
func (f *fakeHTTP) Head(string) (*fhttp.Response, error) { return f.resp, f.err }
func (f *fakeHTTP) Post(string, string, io.Reader) (*fhttp.Response, error) {
	return f.resp, f.err
}
func (f *fakeHTTP) GetCookies(*url.URL) []*fhttp.Cookie             { return nil }
func (f *fakeHTTP) SetCookies(*url.URL, []*fhttp.Cookie)            {}
func (f *fakeHTTP) SetCookieJar(fhttp.CookieJar)                    {}
func (f *fakeHTTP) GetCookieJar() fhttp.CookieJar                   { return nil }
func (f *fakeHTTP) SetProxy(string) error                           { return nil }
func (f *fakeHTTP) GetProxy() string                                { return "" }
func (f *fakeHTTP) SetFollowRedirect(bool)                          {}
func (f *fakeHTTP) GetFollowRedirect() bool                         { return false }
func (f *fakeHTTP) GetBandwidthTracker() bandwidth.BandwidthTracker { return nil }
