package httpcache

import (
	lru "github.com/hashicorp/golang-lru"
)

// MemCacheAdapter keeps at most `size` responses in the node memory; the
// least recently used is evicted first.
type MemCacheAdapter struct {
	responses *lru.Cache
}

func NewMemCacheAdapter(size int) (*MemCacheAdapter, error) {
	responses, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &MemCacheAdapter{responses: responses}, nil
}

func (a *MemCacheAdapter) Get(key string) (*Response, bool) {
	if v, found := a.responses.Get(key); found {
		resp, ok := v.(*Response)
		return resp, ok
	}
	return nil, false
}

func (a *MemCacheAdapter) Set(key string, resp *Response) {
	a.responses.Add(key, resp)
}

func (a *MemCacheAdapter) Remove(key string) {
	a.responses.Remove(key)
}
