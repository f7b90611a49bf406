package apiclient

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"golang.org/x/net/publicsuffix"
)

// credentialJar is a cookie jar that can be emptied on logout.
type credentialJar struct {
	mu    sync.RWMutex
	inner *cookiejar.Jar
}

var _ http.CookieJar = (*credentialJar)(nil)

func newCredentialJar() (*credentialJar, error) {
	j := &credentialJar{}
	if err := j.reset(); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *credentialJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	j.inner.SetCookies(u, cookies)
}

func (j *credentialJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.inner.Cookies(u)
}

func (j *credentialJar) reset() error {
	inner, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return err
	}
	j.mu.Lock()
	j.inner = inner
	j.mu.Unlock()
	return nil
}
