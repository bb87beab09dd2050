package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTripsEveryCode(t *testing.T) {
	for _, code := range []string{"admin", "manager", "driver", "receiver"} {
		r, err := ParseRole(code)
		require.NoError(t, err)
		assert.Equal(t, code, r.String())
	}
	for _, code := range []string{"active", "inactive"} {
		s, err := ParseUserStatus(code)
		require.NoError(t, err)
		assert.Equal(t, code, s.String())
	}
	for _, code := range []string{"electronics", "furniture", "clothing", "others"} {
		c, err := ParseCategory(code)
		require.NoError(t, err)
		assert.Equal(t, code, c.String())
	}
	for _, code := range []string{"pending", "in_transit", "delivered", "cancelled"} {
		s, err := ParseShipmentStatus(code)
		require.NoError(t, err)
		assert.Equal(t, code, s.String())
	}
}

func TestParseRejectsLabelsAndUnknownCodes(t *testing.T) {
	_, err := ParseShipmentStatus("In Transit")
	assert.ErrorIs(t, err, ErrUnknownCode)

	_, err = ParseRole("superuser")
	assert.ErrorIs(t, err, ErrUnknownCode)

	_, err = ParseCategory("")
	assert.ErrorIs(t, err, ErrUnknownCode)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "In Transit", ShipmentInTransit.Label())
	assert.Equal(t, "Receiver", RoleReceiver.Label())
}

func TestZeroValueHasNoCode(t *testing.T) {
	var r Role
	assert.Equal(t, "", r.String())

	_, err := json.Marshal(struct {
		Role Role `json:"role"`
	}{})
	assert.ErrorIs(t, err, ErrUnknownCode)
}

func TestTextMarshalingUsesCodes(t *testing.T) {
	s := Shipment{ID: 1, ItemID: 2, Status: ShipmentInTransit, TrackingCode: "T1"}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"in_transit"`)
	assert.Contains(t, string(data), `"driver":null`)

	var back Shipment
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s, back)
}
