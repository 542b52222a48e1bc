package models

import "encoding/json"

// TimelineEvent is one entry of an issue timeline. Entries are
// heterogeneous so only the event name is decoded eagerly.
type TimelineEvent struct {
	raw   json.RawMessage
	event string
	actor *User
}

func (e *TimelineEvent) UnmarshalJSON(data []byte) error {
	var head struct {
		Event string `json:"event"`
		Actor *User  `json:"actor"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	e.raw = append(json.RawMessage(nil), data...)
	e.event = head.Event
	e.actor = head.Actor
	return nil
}

func (e TimelineEvent) MarshalJSON() ([]byte, error) {
	if e.raw == nil {
		return []byte("null"), nil
	}
	return e.raw, nil
}

// Event returns the timeline event name, e.g. "labeled" or "reviewed".
func (e TimelineEvent) Event() string {
	return e.event
}

// Actor returns the user who triggered the event, if any.
func (e TimelineEvent) Actor() *User {
	return e.actor
}

// Raw returns the undecoded payload.
func (e TimelineEvent) Raw() json.RawMessage {
	return e.raw
}

// Decode unmarshals the full payload into v.
func (e TimelineEvent) Decode(v any) error {
	return json.Unmarshal(e.raw, v)
}
