package contract

import (
	"fmt"
	"strings"

	"github.com/CosmWasm/tinyjson"
	"github.com/CosmWasm/tinyjson/jlexer"
	"github.com/CosmWasm/tinyjson/jwriter"
	"github.com/google/uuid"

	"zetasbox/sdk"
)

// EventTopic is the bus topic every lifecycle event is published on.
const EventTopic = "zetasbox:ledger"

// EventType is the short tag leading each log line.
type EventType string

const (
	EventProjectCreated EventType = "pc"
	EventDonorOpened    EventType = "do"
	EventDonated        EventType = "dn"
	EventPoolSeeded     EventType = "ps"
	EventProjectClaimed EventType = "pj"
	EventDonorClaimed   EventType = "dc"
	EventRefunded       EventType = "rf"
	EventPlatformInit   EventType = "pi"
	EventPlatformUpdate EventType = "pu"
)

// Attr is one key:value pair of an event, kept in emit order.
type Attr struct {
	Key   string
	Value string
}

// Event is published after the operation that raised it committed.
type Event struct {
	ID      string
	Type    EventType
	Subject sdk.Address
	Attrs   []Attr
}

var (
	_ tinyjson.Marshaler   = Event{}
	_ tinyjson.Unmarshaler = (*Event)(nil)
)

// newEvent starts an event about subject. The id is assigned on publish.
func newEvent(t EventType, subject sdk.Address) Event {
	return Event{Type: t, Subject: subject}
}

// with appends an attribute and returns the event so calls chain.
func (e Event) with(key string, v any) Event {
	e.Attrs = append(e.Attrs, Attr{Key: key, Value: fmt.Sprint(v)})
	return e
}

// Attr returns the value of key, empty when missing.
func (e Event) Attr(key string) string {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// String renders the terse pipe form, e.g. "dn|id:<project>|by:<donor>|am:100".
func (e Event) String() string {
	var b strings.Builder
	b.WriteString(string(e.Type))
	b.WriteString("|id:")
	b.WriteString(e.Subject.String())
	for _, a := range e.Attrs {
		b.WriteByte('|')
		b.WriteString(a.Key)
		b.WriteByte(':')
		b.WriteString(a.Value)
	}
	return b.String()
}

func (e Event) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"id":`)
	w.String(e.ID)
	w.RawString(`,"type":`)
	w.String(string(e.Type))
	w.RawString(`,"subject":`)
	w.String(e.Subject.String())
	w.RawString(`,"attrs":{`)
	for i, a := range e.Attrs {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(a.Key)
		w.RawByte(':')
		w.String(a.Value)
	}
	w.RawString(`}}`)
}

func (e *Event) UnmarshalTinyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "id":
			e.ID = l.String()
		case "type":
			e.Type = EventType(l.String())
		case "subject":
			addr, err := sdk.AddressFromString(l.String())
			if err != nil {
				l.AddError(err)
				return
			}
			e.Subject = addr
		case "attrs":
			l.Delim('{')
			for !l.IsDelim('}') {
				k := l.String()
				l.WantColon()
				e.Attrs = append(e.Attrs, Attr{Key: k, Value: l.String()})
				l.WantComma()
			}
			l.Delim('}')
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
	l.Consumed()
}

// MarshalJSON lets encoding/json callers reuse the tinyjson writer.
func (e Event) MarshalJSON() ([]byte, error) {
	return tinyjson.Marshal(e)
}

// UnmarshalJSON mirrors MarshalJSON.
func (e *Event) UnmarshalJSON(data []byte) error {
	return tinyjson.Unmarshal(data, e)
}

// stampEvent gives the event its unique id.
func stampEvent(e Event) Event {
	e.ID = uuid.NewString()
	return e
}
