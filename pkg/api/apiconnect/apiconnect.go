// Package apiconnect wires the api messages to Connect handlers and clients.
//
// Every service lives under /saakhtemaan.v1.<Service>/ and speaks the Connect
// unary protocol with a JSON codec, so browsers can call it with a plain
// fetch: POST /saakhtemaan.v1.ChargeService/PreviewAllocation with
// Content-Type application/json.
package apiconnect

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// PackagePrefix is the path prefix shared by every RPC route.
const PackagePrefix = "/saakhtemaan.v1."

// JSONCodec encodes api messages with encoding/json.
type JSONCodec struct{}

var _ connect.Codec = JSONCodec{}

// Name implements connect.Codec.
func (JSONCodec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (JSONCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (JSONCodec) Unmarshal(data []byte, v any) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// WithJSON is the codec option every handler and client must use.
func WithJSON() connect.Option {
	return connect.WithCodec(JSONCodec{})
}

type route struct {
	procedure string
	handler   http.Handler
}

func unary[Req, Res any](
	procedure string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) route {
	return route{procedure: procedure, handler: connect.NewUnaryHandler(procedure, fn, opts...)}
}

// mount builds the mux entry for one service.
func mount(servicePath string, routes ...route) (string, http.Handler) {
	table := make(map[string]http.Handler, len(routes))
	for _, r := range routes {
		table[r.procedure] = r.handler
	}
	return servicePath, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := table[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{WithJSON()}, opts...)
}

func client[Req, Res any](httpClient connect.HTTPClient, baseURL, procedure string, opts []connect.ClientOption) *connect.Client[Req, Res] {
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return connect.NewClient[Req, Res](httpClient, strings.TrimRight(baseURL, "/")+procedure, opts...)
}
