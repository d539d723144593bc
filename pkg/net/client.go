package net

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/pkg/errors"
)

const (
	maxIdleConns     = 10
	timeoutInSeconds = 60
	clientAgent      = "featscale (github.com/tapilab/featscale)"
)

var reqTransport = &http.Transport{
	MaxIdleConns:          maxIdleConns,
	IdleConnTimeout:       timeoutInSeconds * time.Second,
	DisableCompression:    true,
	DisableKeepAlives:     false,
	ResponseHeaderTimeout: time.Duration(timeoutInSeconds) * time.Second,
}

// GetHTTPClient returns an HTTP client configured for archive downloads.
func GetHTTPClient() (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "error creating cookie jar")
	}

	return &http.Client{
		Transport: reqTransport,
		Timeout:   timeoutInSeconds * time.Second,
		Jar:       jar,
	}, nil
}

func getResp(url string) (*http.Response, error) {
	c, err := GetHTTPClient()
	if err != nil {
		return nil, errors.Wrap(err, "error creating HTTP client")
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "error creating HTTP Get request")
	}

	req.Header.Set("User-Agent", clientAgent)

	return c.Do(req)
}
