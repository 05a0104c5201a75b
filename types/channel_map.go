package types

import (
	"encoding/json"
	"fmt"
)

// ChannelEntry assigns Value to every channel from Channel up to the next entry.
//
// On the wire an entry is a two-element JSON array: [channel, value].
type ChannelEntry[T any] struct {
	Channel int
	Value   T
}

// ChannelMap is a sparse channel-indexed routing table (output host, port or
// link) sorted by channel.
type ChannelMap[T any] []ChannelEntry[T]

// MarshalJSON encodes the entry as [channel, value].
func (e ChannelEntry[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.Channel, e.Value})
}

// UnmarshalJSON decodes an entry from [channel, value].
func (e *ChannelEntry[T]) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("channel map entry: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("channel map entry: expected [channel, value], got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &e.Channel); err != nil {
		return fmt.Errorf("channel map entry channel: %w", err)
	}
	if err := json.Unmarshal(raw[1], &e.Value); err != nil {
		return fmt.Errorf("channel map entry value: %w", err)
	}

	return nil
}

// Clone returns a copy of the map that shares no backing array with m.
func (m ChannelMap[T]) Clone() ChannelMap[T] {
	if m == nil {
		return nil
	}
	out := make(ChannelMap[T], len(m))
	copy(out, m)

	return out
}
