package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	neturl "net/url"
	"strconv"
	"strings"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/common/observer"
	"boscoin.io/minidao/lib/network/httputils"
	"boscoin.io/minidao/lib/transaction"
)

const (
	UrlPrefixForAPIV1 = "/api/v1"

	UrlAccount      = "/accounts/{id}"
	UrlDAO          = "/daos/{id}"
	UrlDAOVoters    = "/daos/{id}/voters"
	UrlDAOVoter     = "/daos/{id}/voters/{voter}"
	UrlDAOProposals = "/daos/{id}/proposals"
	UrlDAOProposal  = "/daos/{id}/proposals/{index}"
	UrlDAOEvents    = "/daos/{id}/events"
	UrlEvents       = "/events"
	UrlTransactions = "/transactions"
)

type QueryKey string

func (qk QueryKey) String() string {
	return string(qk)
}

const (
	QueryLimit   QueryKey = "limit"
	QueryReverse QueryKey = "reverse"
	QueryCursor  QueryKey = "cursor"
)

type Q struct {
	Key   QueryKey
	Value string
}

type Queries []Q

func (qs Queries) toQueryString() string {
	if len(qs) == 0 {
		return ""
	}

	urlValues := neturl.Values{}
	for _, q := range qs {
		switch q.Key {
		case QueryLimit, QueryReverse, QueryCursor:
			urlValues.Add(q.Key.String(), q.Value)
		}
	}
	return "?" + urlValues.Encode()
}

type Client struct {
	URL string

	HTTP *common.HTTP2Client
}

// NewClient retries the failed queries `retries` times; the submissions and
// the event streams are sent once.
func NewClient(url string, retries int) (*Client, error) {
	var retrySetting *common.RetrySetting
	if retries > 0 {
		retrySetting = common.NewRetrySetting(retries)
	}

	httpClient, err := common.NewPersistentHTTP2Client(0, 0, true, retrySetting)
	if err != nil {
		return nil, err
	}

	return &Client{
		URL:  strings.TrimRight(url, "/"),
		HTTP: httpClient,
	}, nil
}

func (c *Client) toResponse(resp *http.Response, response interface{}) (err error) {
	defer resp.Body.Close()
	decoder := json.NewDecoder(resp.Body)

	if !(resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices) {
		var p httputils.Problem
		if err = decoder.Decode(&p); err != nil {
			return
		}
		if p.Status == 0 {
			p.Status = resp.StatusCode
		}
		return Error{Problem: p}
	}

	return decoder.Decode(response)
}

func (c *Client) Get(path string, headers http.Header) (response *http.Response, err error) {
	return c.HTTP.Get(c.URL+UrlPrefixForAPIV1+path, headers)
}

func (c *Client) Post(path string, body []byte, headers http.Header) (response *http.Response, err error) {
	return c.HTTP.Post(c.URL+UrlPrefixForAPIV1+path, body, headers)
}

func (c *Client) load(path string, response interface{}, queries ...Q) error {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	resp, err := c.Get(path+Queries(queries).toQueryString(), headers)
	if err != nil {
		return err
	}

	return c.toResponse(resp, response)
}

func (c *Client) LoadAccount(id string) (account Account, err error) {
	err = c.load(strings.Replace(UrlAccount, "{id}", id, -1), &account)
	return
}

func (c *Client) LoadDAO(id string) (d DAO, err error) {
	err = c.load(strings.Replace(UrlDAO, "{id}", id, -1), &d)
	return
}

func (c *Client) LoadVoter(id, voter string) (v Voter, err error) {
	url := strings.NewReplacer("{id}", id, "{voter}", voter).Replace(UrlDAOVoter)
	err = c.load(url, &v)
	return
}

func (c *Client) LoadVoters(id string, queries ...Q) (page VotersPage, err error) {
	err = c.load(strings.Replace(UrlDAOVoters, "{id}", id, -1), &page, queries...)
	return
}

func (c *Client) LoadProposal(id string, index uint32) (p Proposal, err error) {
	url := strings.NewReplacer(
		"{id}", id,
		"{index}", strconv.FormatUint(uint64(index), 10),
	).Replace(UrlDAOProposal)
	err = c.load(url, &p)
	return
}

func (c *Client) LoadProposals(id string, queries ...Q) (page ProposalsPage, err error) {
	err = c.load(strings.Replace(UrlDAOProposals, "{id}", id, -1), &page, queries...)
	return
}

// SubmitTransaction sends the signed transaction and returns the result of
// the contract call.
func (c *Client) SubmitTransaction(tx transaction.Transaction) (result Result, err error) {
	var body []byte
	if body, err = tx.Serialize(); err != nil {
		return
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	resp, err := c.Post(UrlTransactions, body, headers)
	if err != nil {
		return
	}

	err = c.toResponse(resp, &result)
	return
}

// Stream calls `handler` with the payload of every message of the event
// stream until `ctx` is done or the stream ends.
func (c *Client) Stream(ctx context.Context, path string, handler func(data []byte) error) (err error) {
	req, err := http.NewRequest("GET", c.URL+UrlPrefixForAPIV1+path, nil)
	if err != nil {
		return
	}
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.HTTP.DoOnce(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return
	}

	if resp.StatusCode != http.StatusOK {
		return c.toResponse(resp, nil)
	}
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		line = bytes.TrimSpace(line)
		if !bytes.HasPrefix(line, []byte("data:")) {
			continue
		}

		if err = handler(bytes.TrimSpace(line[len("data:"):])); err != nil {
			return err
		}
	}
}

// StreamDAOEvents receives the current DAO first and then its events.
func (c *Client) StreamDAOEvents(ctx context.Context, id string, daoHandler func(DAO), handler func(observer.Event)) error {
	var started bool
	return c.Stream(ctx, strings.Replace(UrlDAOEvents, "{id}", id, -1), func(b []byte) error {
		if !started {
			started = true
			var d DAO
			if err := json.Unmarshal(b, &d); err != nil {
				return err
			}
			daoHandler(d)
			return nil
		}

		var e observer.Event
		if err := json.Unmarshal(b, &e); err != nil {
			return err
		}
		handler(e)
		return nil
	})
}

// StreamEvents receives the events of every DAO.
func (c *Client) StreamEvents(ctx context.Context, handler func(observer.Event)) error {
	var started bool
	return c.Stream(ctx, UrlEvents, func(b []byte) error {
		if !started { // empty message of the stream start
			started = true
			return nil
		}

		var e observer.Event
		if err := json.Unmarshal(b, &e); err != nil {
			return err
		}
		handler(e)
		return nil
	})
}
