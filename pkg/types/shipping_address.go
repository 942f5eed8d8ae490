package types

import (
	"database/sql/driver"
	"encoding/json"
)

// ShippingAddress is the delivery destination frozen onto an order at
// submission time. Later edits to the customer's address book never
// change it.
type ShippingAddress struct {
	SiteName    string `json:"site_name"`
	Address     string `json:"address"`
	ContactName string `json:"contact_name,omitempty"`
}

// Value serializes the snapshot to JSON.
func (s ShippingAddress) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan decodes JSONB into the snapshot.
func (s *ShippingAddress) Scan(value interface{}) error {
	if value == nil {
		*s = ShippingAddress{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, s)
}

// JSONMap stores an arbitrary JSON object inside a JSONB column.
type JSONMap map[string]any

// Value serializes the map to JSON.
func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(j)
}

// Scan decodes JSONB into the map.
func (j *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	decoded := make(JSONMap)
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*j = decoded
	return nil
}
