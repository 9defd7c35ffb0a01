package httpcache

import "net/http"

// NopClient is the `Cache` of the node without cache adapter.
type NopClient struct{}

func NewNopClient() *NopClient {
	return &NopClient{}
}

func (NopClient) WrapHandlerFunc(next http.HandlerFunc) http.HandlerFunc {
	return next
}
