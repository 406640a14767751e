// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bureau-foundation/barcamp-bot/lib/ref"
)

// PowerLevel is a single power level value. Room versions before 10
// allow levels encoded as strings ("50"), and some clients write
// integral floats (50.0); both decode to the same integer. Fractional
// or non-numeric values are rejected.
type PowerLevel int

// UnmarshalJSON implements json.Unmarshaler.
func (level *PowerLevel) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var number json.Number
	if bytes.HasPrefix(data, []byte(`"`)) {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		number = json.Number(strings.TrimSpace(text))
	} else {
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&number); err != nil {
			return fmt.Errorf("power level %s: %w", data, err)
		}
	}

	if integer, err := strconv.ParseInt(number.String(), 10, 64); err == nil {
		*level = PowerLevel(integer)
		return nil
	}
	float, err := strconv.ParseFloat(number.String(), 64)
	if err != nil || float != math.Trunc(float) || math.IsInf(float, 0) {
		return fmt.Errorf("power level %s is not an integer", data)
	}
	*level = PowerLevel(float)
	return nil
}

// PowerLevels is the typed content of m.room.power_levels. Only the
// fields relevant to sending events are modelled.
//
// Pointer fields distinguish "not set" (nil) from "explicitly 0" so
// that the Matrix defaults apply only when the room leaves a field out.
type PowerLevels struct {
	Users         map[string]PowerLevel `json:"users,omitempty"`
	UsersDefault  *PowerLevel           `json:"users_default,omitempty"`
	Events        map[string]PowerLevel `json:"events,omitempty"`
	EventsDefault *PowerLevel           `json:"events_default,omitempty"`
	StateDefault  *PowerLevel           `json:"state_default,omitempty"`
}

// UserLevel returns the user's explicit level, else users_default,
// else 0.
func (powerLevels *PowerLevels) UserLevel(userID ref.UserID) int {
	if level, ok := powerLevels.Users[userID.String()]; ok {
		return int(level)
	}
	if powerLevels.UsersDefault != nil {
		return int(*powerLevels.UsersDefault)
	}
	return 0
}

// EventLevel returns the level required to send a non-state event of
// eventType: the explicit events entry, else events_default, else 0.
func (powerLevels *PowerLevels) EventLevel(eventType ref.EventType) int {
	if level, ok := powerLevels.Events[string(eventType)]; ok {
		return int(level)
	}
	if powerLevels.EventsDefault != nil {
		return int(*powerLevels.EventsDefault)
	}
	return 0
}

// CanSendEvent reports whether userID may send a non-state event of
// eventType under these power levels.
func (powerLevels *PowerLevels) CanSendEvent(userID ref.UserID, eventType ref.EventType) bool {
	return powerLevels.UserLevel(userID) >= powerLevels.EventLevel(eventType)
}
