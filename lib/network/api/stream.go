package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/GianlucaGuarini/go-observable"

	"boscoin.io/minidao/lib/common/observer"
	"boscoin.io/minidao/lib/metrics"
	"boscoin.io/minidao/lib/network/api/resource"
	"boscoin.io/minidao/lib/network/httputils"
)

const (
	EventStreamContentType = "text/event-stream"

	// EventStreamBufferSize is the number of events kept for a slow client;
	// the events over it are dropped.
	EventStreamBufferSize = 64
)

// GetDAOEventsHandler streams the events of one DAO. The first message is
// the current DAO resource.
func (api NetworkHandlerAPI) GetDAOEventsHandler(w http.ResponseWriter, r *http.Request) {
	d, err := api.loadDAO(r)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	count, err := d.ProposalCount()
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	es := NewDefaultEventStream(w, r)
	run := es.Start(observer.DAOObserver, observer.Topic(d.Address()))
	es.Render(resource.NewDAO(d.Address(), d.Name(), count).Resource())
	run()
}

// GetAllDAOEventsHandler streams the events of every DAO.
func (api NetworkHandlerAPI) GetAllDAOEventsHandler(w http.ResponseWriter, r *http.Request) {
	es := NewDefaultEventStream(w, r)
	es.Run(observer.DAOObserver, observer.Topic(observer.ConditionAll))
}

// EventStream writes the triggered events of an observable as
// server-sent events.
type EventStream struct {
	renderFunc RenderFunc
	request    *http.Request
	writer     http.ResponseWriter
	flusher    http.Flusher
	err        error
	rendered   bool
	stop       chan struct{}
	stopOnce   sync.Once
}

type RenderFunc func(v interface{}) ([]byte, error)

var RenderJSONFunc = func(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func NewDefaultEventStream(w http.ResponseWriter, r *http.Request) *EventStream {
	return NewEventStream(w, r, RenderJSONFunc)
}

// NewEventStream makes *EventStream and checks http.Flusher by type assertion.
func NewEventStream(w http.ResponseWriter, r *http.Request, renderFunc RenderFunc) *EventStream {
	es := &EventStream{
		request:    r,
		writer:     w,
		renderFunc: renderFunc,
		stop:       make(chan struct{}),
	}

	if flusher, ok := w.(http.Flusher); !ok {
		es.err = fmt.Errorf("http: can't do chunked response")
	} else {
		es.flusher = flusher
	}

	return es
}

func (s *EventStream) Err() error {
	return s.err
}

func (s *EventStream) render(v interface{}) []byte {
	payload, err := s.renderFunc(v)
	if err != nil {
		return s.errMessage(err)
	}
	return payload
}

func (s *EventStream) write(payload []byte) {
	if !s.rendered {
		s.writer.Header().Set("Content-Type", EventStreamContentType)
		s.writer.Header().Set("Cache-Control", "no-cache")
		s.writer.WriteHeader(http.StatusOK)
		s.rendered = true
	}

	fmt.Fprintf(s.writer, "data: %s\n\n", payload)
	s.flusher.Flush()
}

// Render writes `v` immediately.
func (s *EventStream) Render(v interface{}) {
	if s.err != nil {
		return
	}

	s.write(s.render(v))
}

// Run writes every event triggered for `event` until the request is done.
func (s *EventStream) Run(ob *observable.Observable, event string) {
	s.Start(ob, event)()
}

// Start registers the listener and returns the func which writes the
// events; in most cases use Run.
func (s *EventStream) Start(ob *observable.Observable, event string) func() {
	if s.err != nil {
		httputils.WriteError(s.writer, s.err)
		return func() {}
	}

	msg := make(chan []byte, EventStreamBufferSize)

	onFunc := func(args ...interface{}) {
		if len(args) < 1 {
			return
		}

		payload := s.render(args[0])
		select {
		case <-s.stop:
		case msg <- payload:
		default:
			metrics.API.DroppedEvents.Add(1)
			log.Warn("event stream is full; event dropped", "event", event, "remote", s.request.RemoteAddr)
		}
	}
	ob.On(event, onFunc)

	return func() {
		metrics.API.OpenStreams.Add(1)
		defer metrics.API.OpenStreams.Add(-1)
		defer ob.Off(event, onFunc)

		if !s.rendered {
			s.write([]byte("{}"))
		}

		for {
			select {
			case payload := <-msg:
				s.write(payload)
			case <-s.request.Context().Done():
				s.Stop()
				return
			case <-s.stop:
				return
			}
		}
	}
}

func (s *EventStream) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *EventStream) errMessage(err error) []byte {
	b, err := json.Marshal(httputils.NewErrorProblem(err, httputils.StatusCode(err)))
	if err != nil {
		return []byte("{}")
	}
	return b
}
