package models

type Role uint8

const (
	RoleAdmin Role = iota + 1
	RoleManager
	RoleDriver
	RoleReceiver
)

var roles = newEnum("role", map[Role]variant{
	RoleAdmin:    {"admin", "Admin"},
	RoleManager:  {"manager", "Manager"},
	RoleDriver:   {"driver", "Driver"},
	RoleReceiver: {"receiver", "Receiver"},
})

func ParseRole(code string) (Role, error) { return roles.parse(code) }

func (r Role) String() string { return roles.code(r) }
func (r Role) Label() string  { return roles.label(r) }

func (r Role) MarshalText() ([]byte, error) { return roles.marshal(r) }

func (r *Role) UnmarshalText(b []byte) error {
	v, err := roles.parse(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

type UserStatus uint8

const (
	UserActive UserStatus = iota + 1
	UserInactive
)

var userStatuses = newEnum("user status", map[UserStatus]variant{
	UserActive:   {"active", "Active"},
	UserInactive: {"inactive", "Inactive"},
})

func ParseUserStatus(code string) (UserStatus, error) { return userStatuses.parse(code) }

func (s UserStatus) String() string { return userStatuses.code(s) }
func (s UserStatus) Label() string  { return userStatuses.label(s) }

func (s UserStatus) MarshalText() ([]byte, error) { return userStatuses.marshal(s) }

func (s *UserStatus) UnmarshalText(b []byte) error {
	v, err := userStatuses.parse(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

type Category uint8

const (
	CategoryElectronics Category = iota + 1
	CategoryFurniture
	CategoryClothing
	CategoryOthers
)

var categories = newEnum("category", map[Category]variant{
	CategoryElectronics: {"electronics", "Electronics"},
	CategoryFurniture:   {"furniture", "Furniture"},
	CategoryClothing:    {"clothing", "Clothing"},
	CategoryOthers:      {"others", "Others"},
})

func ParseCategory(code string) (Category, error) { return categories.parse(code) }

func (c Category) String() string { return categories.code(c) }
func (c Category) Label() string  { return categories.label(c) }

func (c Category) MarshalText() ([]byte, error) { return categories.marshal(c) }

func (c *Category) UnmarshalText(b []byte) error {
	v, err := categories.parse(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ShipmentStatus is stored as given; no transition between values is enforced.
type ShipmentStatus uint8

const (
	ShipmentPending ShipmentStatus = iota + 1
	ShipmentInTransit
	ShipmentDelivered
	ShipmentCancelled
)

var shipmentStatuses = newEnum("shipment status", map[ShipmentStatus]variant{
	ShipmentPending:   {"pending", "Pending"},
	ShipmentInTransit: {"in_transit", "In Transit"},
	ShipmentDelivered: {"delivered", "Delivered"},
	ShipmentCancelled: {"cancelled", "Cancelled"},
})

func ParseShipmentStatus(code string) (ShipmentStatus, error) { return shipmentStatuses.parse(code) }

func (s ShipmentStatus) String() string { return shipmentStatuses.code(s) }
func (s ShipmentStatus) Label() string  { return shipmentStatuses.label(s) }

func (s ShipmentStatus) MarshalText() ([]byte, error) { return shipmentStatuses.marshal(s) }

func (s *ShipmentStatus) UnmarshalText(b []byte) error {
	v, err := shipmentStatuses.parse(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
