package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc builds the Proxy callback for an http.Transport from
// explicit proxy URLs. With neither URL set, the standard environment
// lookup (HTTP_PROXY, HTTPS_PROXY, NO_PROXY) applies; an explicit URL
// wins over the environment for its scheme.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
