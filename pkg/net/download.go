package net

import (
	"io"
	"net/http"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrorURLNotFound indicates the remote archive does not exist.
var ErrorURLNotFound = errors.New("URL not found")

// Download retrieves the content at url into the file at filepath.
// The destination file is created (or truncated) first, so a failed
// download leaves a partial file behind for the caller to clean up.
func Download(url string, filepath string) (retErr error) {
	out, err := os.Create(filepath)
	if err != nil {
		return errors.Wrapf(err, "error creating download target: %s", filepath)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && retErr == nil {
			retErr = errors.Wrap(cerr, "closing file")
		}
	}()

	log.Debugf("downloading %s to %s", url, filepath)

	resp, err := getResp(url)
	if err != nil {
		return errors.Wrapf(err, "error executing HTTP Get: %s", url)
	}
	defer resp.Body.Close()

	PrintHTTPResponse(resp)

	if resp.StatusCode == http.StatusNotFound {
		return ErrorURLNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("error downloading file (status: %d - %s): %s",
			resp.StatusCode, resp.Status, url)
	}

	n, err := io.Copy(out, resp.Body)
	if err != nil {
		return errors.Wrap(err, "error saving downloaded content to file")
	}
	log.Debugf("downloaded %d bytes", n)

	return nil
}
