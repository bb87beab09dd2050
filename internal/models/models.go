package models

import "github.com/shopspring/decimal"

type User struct {
	ID             int64      `json:"id"`
	DockingPointID *int64     `json:"docking_point"`
	Email          string     `json:"email"`
	PhoneNumber    string     `json:"phone_number"`
	Password       string     `json:"password"`
	Role           Role       `json:"role"`
	Status         UserStatus `json:"status"`
}

type DockingPoint struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Manager  string `json:"manager"`
}

// Item.OwnerID is free text and does not reference any table.
type Item struct {
	ID          int64           `json:"id"`
	OwnerID     string          `json:"owner_id"`
	Barcode     string          `json:"barcode"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Weight      decimal.Decimal `json:"weight"`
	Category    Category        `json:"category"`
}

type Shipment struct {
	ID           int64          `json:"id"`
	ItemID       int64          `json:"item"`
	DriverID     *int64         `json:"driver"`
	Status       ShipmentStatus `json:"status"`
	Receiver     string         `json:"receiver"`
	Sender       string         `json:"sender"`
	TrackingCode string         `json:"tracking_code"`
}

type Notification struct {
	ID      int64  `json:"id"`
	UserID  int64  `json:"user"`
	Message string `json:"message"`
	Read    bool   `json:"status"`
}
