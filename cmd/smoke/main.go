package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shipment-tracking/internal/config"
	"shipment-tracking/internal/database"
	"shipment-tracking/internal/logger"
	"shipment-tracking/internal/models"
	"shipment-tracking/internal/repository"
)

// smoke runs the repositories against a live database and checks the
// delete policies end to end. Rows are tagged so repeated runs do not collide.
func main() {
	cfg := config.LoadConfig()

	zl, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatal("failed to init logger: ", err)
	}
	defer zl.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.ConnectDB(ctx, cfg.Database)
	if err != nil {
		zl.Fatal("failed to connect database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, zl); err != nil {
		zl.Fatal("migrations failed", zap.Error(err))
	}

	var now time.Time
	if err := pool.QueryRow(ctx, "SELECT NOW()").Scan(&now); err != nil {
		zl.Fatal("query failed", zap.Error(err))
	}
	fmt.Println("Current database time:", now)

	tag := uuid.NewString()[:8]
	testCascades(ctx, pool, tag)
	fmt.Println("\nAll checks passed")
}

func must(err error, what string) {
	if err != nil {
		log.Fatalf("❌ %s: %v", what, err)
	}
	fmt.Println("✅", what)
}

func expect(ok bool, what string) {
	if !ok {
		log.Fatal("❌ ", what)
	}
	fmt.Println("✅", what)
}

func testCascades(ctx context.Context, pool *pgxpool.Pool, tag string) {
	points := repository.NewDockingPointRepository(pool)
	users := repository.NewUserRepository(pool)
	items := repository.NewItemRepository(pool)
	shipments := repository.NewShipmentRepository(pool)
	notifications := repository.NewNotificationRepository(pool)

	fmt.Println("\n=== Setting up rows ===")

	point := &models.DockingPoint{Name: "Dock " + tag, Location: "Pier 4", Manager: "M. Ito"}
	must(points.Create(ctx, point), "create docking point")

	driver := &models.User{
		DockingPointID: &point.ID,
		Email:          "driver-" + tag + "@example.com",
		PhoneNumber:    "5550100",
		Password:       "secret",
		Role:           models.RoleDriver,
		Status:         models.UserActive,
	}
	must(users.Create(ctx, driver), "create driver")

	item := &models.Item{
		OwnerID:     "owner-" + tag,
		Barcode:     "BC-" + tag,
		Name:        "Box",
		Description: "smoke test",
		Weight:      decimal.RequireFromString("1.50"),
		Category:    models.CategoryOthers,
	}
	must(items.Create(ctx, item), "create item")

	shipment := &models.Shipment{
		ItemID:       item.ID,
		DriverID:     &driver.ID,
		Status:       models.ShipmentPending,
		Receiver:     "R",
		Sender:       "S",
		TrackingCode: "TC-" + tag,
	}
	must(shipments.Create(ctx, shipment), "create shipment")

	note := &models.Notification{UserID: driver.ID, Message: "assigned"}
	must(notifications.Create(ctx, note), "create notification")

	fmt.Println("\n=== Constraint errors ===")

	dup := *driver
	dup.ID = 0
	err := users.Create(ctx, &dup)
	var ferr *repository.FieldError
	expect(errors.As(err, &ferr) && ferr.Field == "email", "duplicate email names the email field")

	orphan := *shipment
	orphan.ID = 0
	orphan.ItemID = 1 << 40
	orphan.TrackingCode = "TC-orphan-" + tag
	err = shipments.Create(ctx, &orphan)
	expect(errors.As(err, &ferr) && ferr.Field == "item", "unknown item names the item field")

	_, err = items.GetByID(ctx, 1<<40)
	expect(errors.Is(err, repository.ErrNotFound), "missing item returns ErrNotFound")

	fmt.Println("\n=== Delete policies ===")

	must(points.Delete(ctx, point.ID), "delete docking point")
	got, err := users.GetByID(ctx, driver.ID)
	must(err, "driver still exists")
	expect(got.DockingPointID == nil, "driver docking point is null")

	must(users.Delete(ctx, driver.ID), "delete driver")
	s, err := shipments.GetByID(ctx, shipment.ID)
	must(err, "shipment still exists")
	expect(s.DriverID == nil, "shipment driver is null")
	_, err = notifications.GetByID(ctx, note.ID)
	expect(errors.Is(err, repository.ErrNotFound), "notification deleted with its user")

	must(items.Delete(ctx, item.ID), "delete item")
	_, err = shipments.GetByID(ctx, shipment.ID)
	expect(errors.Is(err, repository.ErrNotFound), "shipment deleted with its item")
}
