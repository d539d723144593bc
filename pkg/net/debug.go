package net

import (
	"net/http"
	"net/http/httputil"

	log "github.com/sirupsen/logrus"
)

// PrintHTTPResponse dumps the response headers at debug level.
func PrintHTTPResponse(resp *http.Response) {
	if resp == nil {
		return
	}
	if !log.IsLevelEnabled(log.DebugLevel) {
		return
	}
	if respDump, err := httputil.DumpResponse(resp, false); err == nil {
		log.Debugf("%s", respDump)
	}
}
