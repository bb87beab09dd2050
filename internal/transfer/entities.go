package transfer

import (
	"github.com/shopspring/decimal"

	"shipment-tracking/internal/models"
)

var Users = Schema[models.User]{
	Entity: "user",
	Fields: []Field[models.User]{
		ID(func(u *models.User) *int64 { return &u.ID }),
		NullableRef("docking_point", func(u *models.User) **int64 { return &u.DockingPointID }),
		Text("email", "required,email,max=254", func(u *models.User) *string { return &u.Email }),
		Text("phone_number", "required,max=15", func(u *models.User) *string { return &u.PhoneNumber }),
		Text("password", "required,max=255", func(u *models.User) *string { return &u.Password }),
		Enum("role", models.ParseRole, func(u *models.User) *models.Role { return &u.Role }),
		Enum("status", models.ParseUserStatus, func(u *models.User) *models.UserStatus { return &u.Status }),
	},
}

var DockingPoints = Schema[models.DockingPoint]{
	Entity: "docking point",
	Fields: []Field[models.DockingPoint]{
		ID(func(p *models.DockingPoint) *int64 { return &p.ID }),
		Text("name", "required,max=255", func(p *models.DockingPoint) *string { return &p.Name }),
		Text("location", "required,max=255", func(p *models.DockingPoint) *string { return &p.Location }),
		Text("manager", "required,max=255", func(p *models.DockingPoint) *string { return &p.Manager }),
	},
}

var Items = Schema[models.Item]{
	Entity: "item",
	Fields: []Field[models.Item]{
		ID(func(it *models.Item) *int64 { return &it.ID }),
		Text("owner_id", "required,max=255", func(it *models.Item) *string { return &it.OwnerID }),
		Text("barcode", "required,max=100", func(it *models.Item) *string { return &it.Barcode }),
		Text("name", "required,max=255", func(it *models.Item) *string { return &it.Name }),
		Text("description", "required", func(it *models.Item) *string { return &it.Description }),
		Decimal("weight", 10, 2, func(it *models.Item) *decimal.Decimal { return &it.Weight }),
		Enum("category", models.ParseCategory, func(it *models.Item) *models.Category { return &it.Category }),
	},
}

var Shipments = Schema[models.Shipment]{
	Entity: "shipment",
	Fields: []Field[models.Shipment]{
		ID(func(s *models.Shipment) *int64 { return &s.ID }),
		Ref("item", func(s *models.Shipment) *int64 { return &s.ItemID }),
		NullableRef("driver", func(s *models.Shipment) **int64 { return &s.DriverID }),
		Enum("status", models.ParseShipmentStatus, func(s *models.Shipment) *models.ShipmentStatus { return &s.Status }),
		Text("receiver", "required,max=255", func(s *models.Shipment) *string { return &s.Receiver }),
		Text("sender", "required,max=255", func(s *models.Shipment) *string { return &s.Sender }),
		Text("tracking_code", "required,max=100", func(s *models.Shipment) *string { return &s.TrackingCode }),
	},
}

var Notifications = Schema[models.Notification]{
	Entity: "notification",
	Fields: []Field[models.Notification]{
		ID(func(n *models.Notification) *int64 { return &n.ID }),
		Ref("user", func(n *models.Notification) *int64 { return &n.UserID }),
		Text("message", "required", func(n *models.Notification) *string { return &n.Message }),
		Bool("status", func(n *models.Notification) *bool { return &n.Read }),
	},
}
