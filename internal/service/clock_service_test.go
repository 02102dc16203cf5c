package service

import (
	"errors"
	"testing"

	"pmupro/config"
	"pmupro/internal/models"
	"pmupro/internal/repository"
)

func newClockFixture(t *testing.T, geofenceMeters float64) (*ClockService, uint) {
	t.Helper()
	db := newTestDB(t)
	if err := db.AutoMigrate(&models.TimeEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	user := &models.User{Name: "Ava Artist", Email: "ava@example.com", PasswordHash: "x", Active: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	svc := NewClockService(repository.NewTimeEntryRepository(db), config.StudioConfig{
		Latitude:       40.7128,
		Longitude:      -74.0060,
		GeofenceMeters: geofenceMeters,
	})
	return svc, user.ID
}

func TestClockInWithinGeofence(t *testing.T) {
	svc, userID := newClockFixture(t, 150)

	e, err := svc.ClockIn(userID, 40.7129, -74.0061)
	if err != nil {
		t.Fatalf("clock in: %v", err)
	}
	if e.ClockInAt.IsZero() {
		t.Error("ClockInAt not set")
	}
	if e.DistanceM > 150 {
		t.Errorf("distance = %.1f m, expected inside the fence", e.DistanceM)
	}

	if _, err := svc.ClockIn(userID, 40.7129, -74.0061); !errors.Is(err, ErrAlreadyClockedIn) {
		t.Errorf("second clock in: err = %v, want ErrAlreadyClockedIn", err)
	}

	out, err := svc.ClockOut(userID)
	if err != nil {
		t.Fatalf("clock out: %v", err)
	}
	if out.ClockOutAt == nil {
		t.Error("ClockOutAt not set")
	}
}

func TestClockInOutsideGeofence(t *testing.T) {
	svc, userID := newClockFixture(t, 150)

	// roughly a kilometre north of the studio
	if _, err := svc.ClockIn(userID, 40.7228, -74.0060); !errors.Is(err, ErrOutsideGeofence) {
		t.Errorf("err = %v, want ErrOutsideGeofence", err)
	}
}

func TestClockInGeofenceDisabled(t *testing.T) {
	svc, userID := newClockFixture(t, 0)

	if _, err := svc.ClockIn(userID, 51.5074, -0.1278); err != nil {
		t.Errorf("zero radius should skip the distance check, got %v", err)
	}
}

func TestClockOutWithoutOpenEntry(t *testing.T) {
	svc, userID := newClockFixture(t, 150)

	if _, err := svc.ClockOut(userID); !errors.Is(err, ErrNotClockedIn) {
		t.Errorf("err = %v, want ErrNotClockedIn", err)
	}
}
