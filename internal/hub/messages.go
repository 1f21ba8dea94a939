package hub

import (
	"encoding/json"
	"time"

	"github.com/psidex/citygraph/internal/lib"
	"github.com/psidex/citygraph/internal/store"
)

const (
	typeHello      = "hello"
	typeSubscribed = "subscribed"
)

// message is everything the hub writes to a client.
type message struct {
	ID     string            `json:"id,omitempty"`
	Type   string            `json:"type"`
	Client string            `json:"client,omitempty"`
	Types  []store.EventType `json:"types,omitempty"`
	Entry  *store.Entry      `json:"entry,omitempty"`
	Ping   *lib.Duration     `json:"ping,omitempty"`
	Time   time.Time         `json:"time"`
}

// subscribe is the only message a client sends. An empty Types list means every
// event; Ping sets how often the hub pings the client, unset meaning the default.
type subscribe struct {
	Types []store.EventType `json:"types"`
	Ping  lib.Duration      `json:"ping"`
}

func (m message) encode() []byte {
	b, err := json.Marshal(m)
	if err != nil {
		// Every field marshals; this cannot happen.
		panic(err)
	}
	return b
}
