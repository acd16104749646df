package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID holds an identifier the backend may emit as a JSON string or number.
type ID string

// UnmarshalJSON accepts both "42" and 42.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Identity is the signed-in operator as derived from a token.
type Identity struct {
	ID          string
	Email       string
	DisplayName string
	Role        Role
}

// LoginResult is what a successful credential exchange yields.
type LoginResult struct {
	Token string
	User  Identity
}
