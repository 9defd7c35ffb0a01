package httputils

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/storage"
)

// PageQuery parses `cursor`, `limit` and `reverse` of list requests.
type PageQuery struct {
	request  *http.Request
	cursor   []byte
	reverse  bool
	limit    uint64
	maxLimit uint64
}

func NewPageQuery(r *http.Request, maxLimit uint64) (*PageQuery, error) {
	p := &PageQuery{
		request:  r,
		limit:    maxLimit,
		maxLimit: maxLimit,
	}
	err := p.parseRequest()
	return p, err
}

func (p *PageQuery) Limit() uint64 {
	return p.limit
}

func (p *PageQuery) Reverse() bool {
	return p.reverse
}

func (p *PageQuery) Cursor() []byte {
	return p.cursor
}

func (p *PageQuery) SelfLink() string {
	return p.request.URL.String()
}

func (p *PageQuery) NextLink(cursor []byte) string {
	return fmt.Sprintf("%s?%s", p.request.URL.Path, p.urlValues(cursor, p.reverse).Encode())
}

func (p *PageQuery) ListOptions() *storage.DefaultListOptions {
	return storage.NewDefaultListOptions(p.Reverse(), p.Cursor(), p.Limit())
}

func (p *PageQuery) parseRequest() error {
	q := p.request.URL.Query()
	if r := q.Get("reverse"); r != "" {
		reverse, err := common.ParseBoolQueryString(r)
		if err != nil {
			return errors.BadRequestParameter.Clone().SetData("reverse", r)
		}
		p.reverse = reverse
	}

	if c := q.Get("cursor"); c != "" {
		p.cursor = []byte(c)
	}

	if l := q.Get("limit"); l != "" {
		limit, err := strconv.ParseUint(l, 10, 64)
		if err != nil || limit < 1 {
			return errors.BadRequestParameter.Clone().SetData("limit", l)
		}
		if p.maxLimit > 0 && limit > p.maxLimit {
			limit = p.maxLimit
		}
		p.limit = limit
	}

	return nil
}

func (p PageQuery) urlValues(cursor []byte, reverse bool) url.Values {
	v := url.Values{
		"reverse": []string{strconv.FormatBool(reverse)},
	}

	if len(cursor) > 0 {
		v.Set("cursor", string(cursor))
	}
	if p.limit > 0 {
		v.Set("limit", strconv.FormatUint(p.limit, 10))
	}

	return v
}
