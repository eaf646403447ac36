package driven

import (
	"context"
	"encoding/json"

	"github.com/foliohq/folio-cli/internal/core/domain"
)

// Payload is the decoded envelope every API response arrives in. Data
// holds the raw entity or list body and is unmarshalled by the caller,
// which knows the expected shape.
type Payload struct {
	// OK mirrors the server's success flag.
	OK bool `json:"ok"`

	// Status is the HTTP status the server reports in the body.
	Status int `json:"status"`

	// Data is the raw entity or list payload, nil when absent.
	Data json.RawMessage `json:"data"`

	// Pagination describes the window of a listing response.
	Pagination *domain.Pagination `json:"pagination,omitempty"`
}

// HasData reports whether the response carried a usable data payload.
// A missing or JSON-null data field counts as absent.
func (p *Payload) HasData() bool {
	return p != nil && len(p.Data) > 0 && string(p.Data) != "null"
}

// Transport executes RPC calls against the workspace API.
// Implementations own authentication and rate limiting at the HTTP
// layer; callers see only the decoded envelope or an error.
type Transport interface {
	// Post sends body as JSON to the named RPC endpoint.
	Post(ctx context.Context, path string, body any) (*Payload, error)

	// Get issues a query-parameter request to the named endpoint.
	Get(ctx context.Context, path string, params map[string]string) (*Payload, error)
}
