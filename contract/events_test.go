package contract

import (
	"encoding/json"
	"testing"

	"github.com/CosmWasm/tinyjson/jlexer"
	"github.com/CosmWasm/tinyjson/jwriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zetasbox/sdk"
)

func TestEventString(t *testing.T) {
	subject := sdk.NewAddress()
	donor := sdk.NewAddress()
	ev := newEvent(EventDonated, subject).with("by", donor).with("am", uint64(100))

	assert.Equal(t, "dn|id:"+subject.String()+"|by:"+donor.String()+"|am:100", ev.String())
	assert.Equal(t, "100", ev.Attr("am"))
	assert.Empty(t, ev.Attr("missing"))
}

// TestEventJSON checks the tinyjson form keeps attribute order so we dont break it again.
func TestEventJSON(t *testing.T) {
	subject := sdk.NewAddress()
	ev := stampEvent(newEvent(EventRefunded, subject).with("by", "x").with("am", 50))
	require.NotEmpty(t, ev.ID)

	w := &jwriter.Writer{}
	ev.MarshalTinyJSON(w)
	raw, err := w.BuildBytes()
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+ev.ID+`","type":"rf","subject":"`+subject.String()+`","attrs":{"by":"x","am":"50"}}`, string(raw))

	var back Event
	l := &jlexer.Lexer{Data: raw}
	back.UnmarshalTinyJSON(l)
	require.NoError(t, l.Error())
	assert.Equal(t, ev, back)

	// encoding/json goes through the same writer
	std, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(std))

	var viaStd Event
	require.NoError(t, json.Unmarshal(std, &viaStd))
	assert.Equal(t, ev, viaStd)
}

func TestEventJSONRejectsBadSubject(t *testing.T) {
	var ev Event
	err := json.Unmarshal([]byte(`{"id":"1","type":"dn","subject":"not an address","attrs":{}}`), &ev)
	require.Error(t, err)
}

func TestEventIDsAreUnique(t *testing.T) {
	ev := newEvent(EventPoolSeeded, sdk.NewAddress())
	assert.NotEqual(t, stampEvent(ev).ID, stampEvent(ev).ID)
}
