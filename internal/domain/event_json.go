package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// UnmarshalJSON accepts the layout written by the browser-only version of the
// app as well as our own: ids may be numbers, maxVolunteers may be a quoted
// string, and requirements may be null.
func (e *Event) UnmarshalJSON(data []byte) error {
	type alias Event
	aux := struct {
		*alias
		ID            json.RawMessage `json:"id"`
		MaxVolunteers json.RawMessage `json:"maxVolunteers"`
		Volunteers    json.RawMessage `json:"volunteers"`
	}{alias: (*alias)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	id, err := looseString(aux.ID)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	e.ID = id
	if e.MaxVolunteers, err = looseInt(aux.MaxVolunteers); err != nil {
		return fmt.Errorf("maxVolunteers: %w", err)
	}
	if e.Volunteers, err = looseInt(aux.Volunteers); err != nil {
		return fmt.Errorf("volunteers: %w", err)
	}
	if e.Requirements == nil {
		e.Requirements = Requirements{}
	}
	return nil
}

func looseString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

func looseInt(raw json.RawMessage) (int, error) {
	s, err := looseString(raw)
	if err != nil {
		return 0, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
