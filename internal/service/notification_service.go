package service

import (
	"encoding/json"
	"fmt"

	"pmupro/internal/models"
	"pmupro/internal/repository"
)

// NotificationService writes in-app notifications for staff.
type NotificationService struct {
	repo *repository.NotificationRepository
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Notify(userID uint, notifType, title, body string, data map[string]interface{}) error {
	var dataJSON string
	if data != nil {
		b, _ := json.Marshal(data)
		dataJSON = string(b)
	}
	return s.repo.Create(&models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Data:   dataJSON,
	})
}

func (s *NotificationService) NotifyDepositPaid(userID, depositID uint, clientName string, amountCents int64) error {
	body := fmt.Sprintf("%s paid their deposit of %d.%02d", clientName, amountCents/100, amountCents%100)
	return s.Notify(userID, "DEPOSIT_PAID", "Deposit received", body, map[string]interface{}{"deposit_id": depositID})
}

func (s *NotificationService) NotifyDocumentSigned(userID, documentID uint, clientName string) error {
	return s.Notify(userID, "DOCUMENT_SIGNED", "Document signed", clientName+" signed a document", map[string]interface{}{"document_id": documentID})
}

func (s *NotificationService) NotifyAppointmentBooked(userID, appointmentID uint, clientName string) error {
	return s.Notify(userID, "APPOINTMENT_BOOKED", "Appointment booked", "New appointment for "+clientName, map[string]interface{}{"appointment_id": appointmentID})
}
