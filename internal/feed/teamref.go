package feed

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ezBadminton/bracketdesk/core"
)

// The team object shape of the tournament API
type teamObject struct {
	MongoId  string `json:"_id"`
	Id       string `json:"id"`
	Name     string `json:"name"`
	TeamName string `json:"teamName"`
}

// Resolves a raw team reference of the API into a [core.TeamRef].
//
// The API delivers a team either as a raw id string, as a populated
// object or as null for undetermined slots.
func decodeTeamRef(raw json.RawMessage) (core.TeamRef, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	switch raw[0] {
	case '"':
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return nil, fmt.Errorf("%w: team id: %w", ErrMalformed, err)
		}
		return core.NewTeamRef(id, ""), nil
	case '{':
		var obj teamObject
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("%w: team object: %w", ErrMalformed, err)
		}
		id := obj.MongoId
		if id == "" {
			id = obj.Id
		}
		name := obj.Name
		if name == "" {
			name = obj.TeamName
		}
		return core.NewTeamRef(id, name), nil
	}

	return nil, fmt.Errorf("%w: unexpected team reference %s", ErrMalformed, raw)
}
