package pipeline

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/spacelayout/pkg/cache"
	"github.com/matzehuels/spacelayout/pkg/errors"
	"github.com/matzehuels/spacelayout/pkg/layout"
)

// Request file formats.
const (
	RequestJSON = "json"
	RequestTOML = "toml"
)

// ReadRequestFile reads a layout request from path. Files ending in .toml
// are decoded as TOML, everything else as JSON. The path "-" reads JSON
// from stdin.
func ReadRequestFile(path string) (layout.Request, error) {
	if path == "-" {
		return ReadRequest(os.Stdin, RequestJSON)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return layout.Request{}, errors.New(errors.ErrCodeFileNotFound, "request file %s not found", path)
		}
		return layout.Request{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadRequest(f, RequestFormat(path))
}

// RequestFormat returns the request format implied by a file name.
func RequestFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return RequestTOML
	}
	return RequestJSON
}

// ReadRequest decodes a layout request in the given format. Unknown JSON
// fields are rejected so typos in option names do not pass silently.
func ReadRequest(r io.Reader, format string) (layout.Request, error) {
	var req layout.Request
	switch format {
	case RequestTOML:
		md, err := toml.NewDecoder(r).Decode(&req)
		if err != nil {
			return layout.Request{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode TOML request")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return layout.Request{}, errors.New(errors.ErrCodeInvalidFormat, "unknown request key %q", undecoded[0].String())
		}
	case RequestJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return layout.Request{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON request")
		}
	default:
		return layout.Request{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported request format %q", format)
	}
	return req, nil
}

// HashRequest returns the content hash of req used for cache keys.
func HashRequest(req layout.Request) string {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(req)
	return cache.Hash(buf.Bytes())
}
