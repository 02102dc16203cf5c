package service

import (
	"errors"
	"time"

	"pmupro/config"
	"pmupro/internal/models"
	"pmupro/internal/repository"
	"pmupro/pkg/location"

	"gorm.io/gorm"
)

var (
	ErrOutsideGeofence  = errors.New("outside the studio geofence")
	ErrAlreadyClockedIn = errors.New("already clocked in")
	ErrNotClockedIn     = errors.New("no open time entry")
)

// ClockService records geofenced clock-in/out for staff.
type ClockService struct {
	entries *repository.TimeEntryRepository
	studio  config.StudioConfig
}

func NewClockService(entries *repository.TimeEntryRepository, studio config.StudioConfig) *ClockService {
	return &ClockService{entries: entries, studio: studio}
}

// ClockIn opens a time entry when the reported position is within the studio
// geofence. A zero geofence radius disables the check (e.g. mobile artists).
func (s *ClockService) ClockIn(userID uint, lat, lng float64) (*models.TimeEntry, error) {
	if _, err := s.entries.GetOpen(userID); err == nil {
		return nil, ErrAlreadyClockedIn
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	dist := location.HaversineMeters(s.studio.Latitude, s.studio.Longitude, lat, lng)
	if s.studio.GeofenceMeters > 0 && dist > s.studio.GeofenceMeters {
		return nil, ErrOutsideGeofence
	}
	e := &models.TimeEntry{
		UserID:    userID,
		ClockInAt: time.Now(),
		Latitude:  lat,
		Longitude: lng,
		DistanceM: dist,
	}
	if err := s.entries.Create(e); err != nil {
		return nil, err
	}
	return e, nil
}

// ClockOut closes the user's open entry.
func (s *ClockService) ClockOut(userID uint) (*models.TimeEntry, error) {
	e, err := s.entries.GetOpen(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotClockedIn
		}
		return nil, err
	}
	now := time.Now()
	e.ClockOutAt = &now
	if err := s.entries.Update(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ClockService) History(userID uint, limit, offset int) ([]models.TimeEntry, error) {
	return s.entries.ListByUserID(userID, limit, offset)
}
