package catalogapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies a record on the data service. Servers disagree on whether
// ids are JSON numbers or strings, so both decode into the same decimal
// string form and compare equal.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits numeric ids as JSON numbers and anything else as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseUint(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string { return string(id) }

type Category struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID         ID      `json:"id"`
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	ImportDate string  `json:"importDate"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	CategoryID ID      `json:"categoryId"`
}

// NewProduct is the body of a create request; the service assigns the id.
type NewProduct struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	ImportDate string  `json:"importDate"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	CategoryID ID      `json:"categoryId"`
}
