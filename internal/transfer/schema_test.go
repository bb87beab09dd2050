package transfer

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipment-tracking/internal/models"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	return verr.Fields
}

func TestItemDecodeExamplePayload(t *testing.T) {
	body := `{"owner_id":"o-1","barcode":"X1","name":"Box","description":"d","weight":"1.50","category":"others"}`

	var it models.Item
	require.NoError(t, Items.Decode([]byte(body), &it, false))

	assert.Equal(t, "X1", it.Barcode)
	assert.Equal(t, "1.50", it.Weight.StringFixed(2))
	assert.Equal(t, models.CategoryOthers, it.Category)

	it.ID = 12
	out, err := Items.Encode(&it)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":12,"owner_id":"o-1","barcode":"X1","name":"Box","description":"d","weight":"1.50","category":"others"}`,
		string(out))
}

func TestEncodeKeepsSchemaOrder(t *testing.T) {
	s := models.Shipment{ID: 1, ItemID: 2, Status: models.ShipmentPending, Receiver: "r", Sender: "s", TrackingCode: "T"}

	out, err := Shipments.Encode(&s)
	require.NoError(t, err)
	assert.Equal(t,
		`{"id":1,"item":2,"driver":null,"status":"pending","receiver":"r","sender":"s","tracking_code":"T"}`,
		string(out))
}

func TestRoundTrip(t *testing.T) {
	dp := int64(4)
	driver := int64(9)

	t.Run("user", func(t *testing.T) {
		u := models.User{ID: 3, DockingPointID: &dp, Email: "a@example.com", PhoneNumber: "+123", Password: "pw", Role: models.RoleManager, Status: models.UserInactive}
		out, err := Users.Encode(&u)
		require.NoError(t, err)

		var back models.User
		require.NoError(t, Users.Decode(out, &back, false))
		back.ID = u.ID
		assert.Equal(t, u, back)
	})

	t.Run("shipment", func(t *testing.T) {
		s := models.Shipment{ID: 5, ItemID: 2, DriverID: &driver, Status: models.ShipmentDelivered, Receiver: "r", Sender: "s", TrackingCode: "T-5"}
		out, err := Shipments.Encode(&s)
		require.NoError(t, err)

		var back models.Shipment
		require.NoError(t, Shipments.Decode(out, &back, false))
		back.ID = s.ID
		assert.Equal(t, s, back)
	})

	t.Run("item", func(t *testing.T) {
		it := models.Item{ID: 8, OwnerID: "o", Barcode: "B", Name: "n", Description: "d", Weight: decimal.RequireFromString("12345678.99"), Category: models.CategoryElectronics}
		out, err := Items.Encode(&it)
		require.NoError(t, err)

		var back models.Item
		require.NoError(t, Items.Decode(out, &back, false))
		back.ID = it.ID

		again, err := Items.Encode(&back)
		require.NoError(t, err)
		assert.JSONEq(t, string(out), string(again))
	})

	t.Run("notification", func(t *testing.T) {
		n := models.Notification{ID: 1, UserID: 3, Message: "hi", Read: true}
		out, err := Notifications.Encode(&n)
		require.NoError(t, err)

		var back models.Notification
		require.NoError(t, Notifications.Decode(out, &back, false))
		back.ID = n.ID
		assert.Equal(t, n, back)
	})
}

func TestDecodeReportsEveryMissingField(t *testing.T) {
	var s models.Shipment
	fields := fieldErrors(t, Shipments.Decode([]byte(`{}`), &s, false))

	for _, name := range []string{"item", "status", "receiver", "sender", "tracking_code"} {
		assert.Equal(t, msgRequired, fields[name], name)
	}
	assert.NotContains(t, fields, "driver")
	assert.NotContains(t, fields, "id")
}

func TestPartialDecodeTouchesOnlyPresentFields(t *testing.T) {
	s := models.Shipment{ID: 5, ItemID: 2, Status: models.ShipmentPending, Receiver: "r", Sender: "s", TrackingCode: "T"}

	require.NoError(t, Shipments.Decode([]byte(`{"status":"in_transit"}`), &s, true))

	assert.Equal(t, models.ShipmentInTransit, s.Status)
	assert.Equal(t, int64(2), s.ItemID)
	assert.Equal(t, "T", s.TrackingCode)
}

func TestDecodeIgnoresID(t *testing.T) {
	p := models.DockingPoint{ID: 7}
	require.NoError(t, DockingPoints.Decode([]byte(`{"id":99,"name":"n","location":"l","manager":"m"}`), &p, false))
	assert.Equal(t, int64(7), p.ID)
}

func TestDecodeFieldErrors(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		field   string
		message string
	}{
		{"unknown enum", `{"role":"pilot"}`, "role", `"pilot" is not a valid choice.`},
		{"label instead of code", `{"status":"Active"}`, "status", `"Active" is not a valid choice.`},
		{"blank", `{"phone_number":""}`, "phone_number", msgBlank},
		{"too long", `{"phone_number":"1234567890123456"}`, "phone_number", "Ensure this field has no more than 15 characters."},
		{"bad email", `{"email":"nope"}`, "email", "Enter a valid email address."},
		{"null text", `{"password":null}`, "password", msgNull},
		{"wrong type", `{"email":5}`, "email", "Not a valid string."},
		{"unknown key", `{"nickname":"x"}`, "nickname", msgUnknown},
		{"bad pk", `{"docking_point":"abc"}`, "docking_point", "Incorrect type. Expected pk value, received str."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var u models.User
			fields := fieldErrors(t, Users.Decode([]byte(tc.body), &u, true))
			assert.Equal(t, tc.message, fields[tc.field])
		})
	}
}

func TestNullableRef(t *testing.T) {
	dp := int64(3)
	u := models.User{DockingPointID: &dp}

	require.NoError(t, Users.Decode([]byte(`{"docking_point":null}`), &u, true))
	assert.Nil(t, u.DockingPointID)

	require.NoError(t, Users.Decode([]byte(`{"docking_point":"8"}`), &u, true))
	require.NotNil(t, u.DockingPointID)
	assert.Equal(t, int64(8), *u.DockingPointID)
}

func TestRefRejectsNull(t *testing.T) {
	var s models.Shipment
	fields := fieldErrors(t, Shipments.Decode([]byte(`{"item":null}`), &s, true))
	assert.Equal(t, msgNull, fields["item"])
}

func TestDecimalRules(t *testing.T) {
	cases := []struct {
		body    string
		want    string
		message string
	}{
		{`{"weight":"1.5"}`, "1.50", ""},
		{`{"weight":2}`, "2.00", ""},
		{`{"weight":0.25}`, "0.25", ""},
		{`{"weight":"1.234"}`, "", "Ensure that there are no more than 2 decimal places."},
		{`{"weight":"123456789"}`, "", "Ensure that there are no more than 8 digits before the decimal point."},
		{`{"weight":"heavy"}`, "", "A valid number is required."},
		{`{"weight":true}`, "", "A valid number is required."},
	}

	for _, tc := range cases {
		t.Run(tc.body, func(t *testing.T) {
			var it models.Item
			err := Items.Decode([]byte(tc.body), &it, true)
			if tc.message == "" {
				require.NoError(t, err)
				assert.Equal(t, tc.want, it.Weight.StringFixed(2))
				return
			}
			assert.Equal(t, tc.message, fieldErrors(t, err)["weight"])
		})
	}
}

func TestDecodeRejectsNonObject(t *testing.T) {
	for _, body := range []string{`[]`, `"x"`, `null`, `{`} {
		var it models.Item
		fields := fieldErrors(t, Items.Decode([]byte(body), &it, false))
		assert.Contains(t, fields, NonField, body)
	}
}

func TestEncodeAllEmptyIsArray(t *testing.T) {
	out, err := Items.EncodeAll(nil)
	require.NoError(t, err)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	err := &ValidationError{Entity: "item", Fields: map[string]string{"weight": "w", "barcode": "b"}}
	assert.Equal(t, "invalid item: barcode: b; weight: w", err.Error())
}
