// resources.go implements MCP resource handlers for report access.
//
// Resource URIs follow the pattern qgate://reports/{key}. The key may be a
// report key or a batch reference, which resolves to the batch's latest
// report as qgate_report does.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/qgate/internal/format"
	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyKey indicates a missing report key in a resource URI.
	ErrEmptyKey = errors.New("empty report key")
)

const reportPrefix = "qgate://reports/"

// readReport handles qgate://reports/{key} resource requests.
func (h *handlers) readReport(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if h.svc == nil {
		return nil, errors.New(ErrNotInitialised)
	}

	uri := req.Params.URI
	key, err := parseReportURI(uri)
	if err != nil {
		return nil, err
	}

	r, err := h.svc.Show(ctx, key)
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("Report %s (batch %s)", r.Key, r.BatchKey)
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     format.Markdown(r.Result(), title),
		},
	}, nil
}

// parseReportURI extracts the key from a report URI.
func parseReportURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, reportPrefix) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	key := strings.TrimPrefix(uri, reportPrefix)
	if key == "" {
		return "", ErrEmptyKey
	}
	if strings.Contains(key, "/") {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	return key, nil
}
