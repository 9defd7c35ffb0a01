package resource

import (
	"strings"

	"github.com/nvellon/hal"
)

type Resource interface {
	LinkSelf() string
	Resource() *hal.Resource
	GetMap() hal.Entry
}

// ResourceList is the page of resources; the items are embedded as
// `records` and the `next` link is omitted on the last page.
type ResourceList struct {
	items []Resource
	self  string
	next  string
}

func NewResourceList(items []Resource, self, next string) *ResourceList {
	return &ResourceList{items: items, self: self, next: next}
}

func (l ResourceList) Resource() *hal.Resource {
	r := hal.NewResource(l, l.self)

	records := make(hal.ResourceCollection, 0, len(l.items))
	for _, item := range l.items {
		records = append(records, item.Resource())
	}
	r.EmbedCollection("records", records)

	if len(l.next) > 0 {
		r.AddLink("next", hal.NewLink(l.next))
	}

	return r
}

func (l ResourceList) LinkSelf() string {
	return l.self
}

func (l ResourceList) GetMap() hal.Entry {
	return hal.Entry{}
}

func replaceURL(url string, pairs ...string) string {
	return strings.NewReplacer(pairs...).Replace(url)
}
