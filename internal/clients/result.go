package clients

// Attribute is a key/value pair of an emitted event
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is an event emitted while executing a transaction
type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

// MessageLog holds the events emitted by one message of a transaction
type MessageLog struct {
	MsgIndex int     `json:"msg_index"`
	Log      string  `json:"log"`
	Events   []Event `json:"events"`
}

// TxResult mirrors cosmos.base.abci.v1beta1.TxResponse as served by the LCD
type TxResult struct {
	Height    int64        `json:"height,string"`
	TxHash    string       `json:"txhash"`
	Codespace string       `json:"codespace"`
	Code      uint32       `json:"code"`
	Data      string       `json:"data,omitempty"`
	RawLog    string       `json:"raw_log"`
	Logs      []MessageLog `json:"logs"`
	Info      string       `json:"info,omitempty"`
	GasWanted int64        `json:"gas_wanted,string"`
	GasUsed   int64        `json:"gas_used,string"`
	Timestamp string       `json:"timestamp,omitempty"`
	Events    []Event      `json:"events,omitempty"`
}

// Success reports whether the chain accepted the transaction
func (r *TxResult) Success() bool {
	return r.Code == 0
}

// EventsByType groups the attributes of the first message's events as
// type -> key -> values. Nodes that no longer fill per-message logs only
// return top-level events, which are used instead.
func (r *TxResult) EventsByType() map[string]map[string][]string {
	events := r.Events
	if len(r.Logs) > 0 {
		events = r.Logs[0].Events
	}

	byType := make(map[string]map[string][]string)
	for _, ev := range events {
		attrs, ok := byType[ev.Type]
		if !ok {
			attrs = make(map[string][]string)
			byType[ev.Type] = attrs
		}
		for _, attr := range ev.Attributes {
			attrs[attr.Key] = append(attrs[attr.Key], attr.Value)
		}
	}
	return byType
}

// FindEventAttribute returns the first value of the given event attribute
func (r *TxResult) FindEventAttribute(key EventKey) (string, bool) {
	values := r.EventsByType()[key.Type][key.Attribute]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}
