package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/cafeteca/cafeteca-server/internal/domain"
	"github.com/cafeteca/cafeteca-server/internal/webserver"
	"github.com/cafeteca/cafeteca-server/pkg/common"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func registerEventRoutes() {
	webserver.ApiGET("/events", listEvents)
	webserver.ApiGET("/events/:id", getEvent)
	webserver.ApiPOST("/events", createEvent)
	webserver.ApiPUT("/events/:id", updateEvent)
	webserver.ApiDELETE("/events/:id", deleteEvent)
}

type eventPayload struct {
	Title        string `json:"title" form:"title"`
	Description  string `json:"description" form:"description"`
	Date         string `json:"date" form:"date"`
	Time         string `json:"time" form:"time"`
	Location     string `json:"location" form:"location"`
	ImageURL     string `json:"image_url" form:"image_url"`
	Capacity     *int   `json:"capacity" form:"capacity"`
	ContactPhone string `json:"contact_phone" form:"contact_phone"`
	ContactEmail string `json:"contact_email" form:"contact_email"`
	IsFeatured   bool   `json:"is_featured" form:"is_featured"`
	IsActive     *bool  `json:"is_active" form:"is_active"`
}

// normalizeEventDate accepts the usual date spellings and stores YYYY-MM-DD.
func normalizeEventDate(s string) (string, error) {
	t, err := dateparse.ParseAny(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02"), nil
}

func validateEventPayload(payload *eventPayload) string {
	payload.Title = strings.TrimSpace(payload.Title)
	payload.Location = strings.TrimSpace(payload.Location)
	if payload.Title == "" || payload.Date == "" || payload.Time == "" || payload.Location == "" {
		return "Titlul, data, ora si locatia sunt obligatorii"
	}
	date, err := normalizeEventDate(payload.Date)
	if err != nil {
		return "Data evenimentului este invalida"
	}
	payload.Date = date
	if _, err := time.Parse("15:04", payload.Time); err != nil {
		return "Ora evenimentului este invalida (HH:MM)"
	}
	if payload.Capacity != nil && *payload.Capacity < 0 {
		return "Capacitatea nu poate fi negativa"
	}
	return ""
}

func listEvents(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))

	db := GetDB(c).Model(&domain.Event{})
	db = whereTextMatch(db, q, "title", "description", "location")

	var rows []domain.Event
	if err := db.Order("date ASC, time ASC").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la incarcarea evenimentelor")
	}
	return ok(c, rows)
}

func getEvent(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Identificator invalid")
	}
	var ev domain.Event
	if err := GetDB(c).Where("id = ?", id).First(&ev).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Evenimentul nu a fost gasit")
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la preluarea evenimentului")
	}
	return ok(c, ev)
}

func createEvent(c echo.Context) error {
	var payload eventPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Cerere invalida")
	}
	if msg := validateEventPayload(&payload); msg != "" {
		return fail(c, http.StatusBadRequest, "VALIDATION", msg)
	}

	now := time.Now()
	ev := domain.Event{
		ID:           common.UUIDint64(),
		Title:        payload.Title,
		Description:  payload.Description,
		Date:         payload.Date,
		Time:         payload.Time,
		Location:     payload.Location,
		ImageURL:     strings.TrimSpace(payload.ImageURL),
		Capacity:     payload.Capacity,
		ContactPhone: payload.ContactPhone,
		ContactEmail: payload.ContactEmail,
		IsFeatured:   payload.IsFeatured,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if payload.IsActive != nil {
		ev.IsActive = *payload.IsActive
	}
	if err := GetDB(c).Create(&ev).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la salvarea evenimentului")
	}
	publishChange(c, "event.create", ev.Title)
	return created(c, ev)
}

func updateEvent(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Identificator invalid")
	}
	var ev domain.Event
	if err := GetDB(c).Where("id = ?", id).First(&ev).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Evenimentul nu a fost gasit")
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la preluarea evenimentului")
	}

	var payload eventPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Cerere invalida")
	}
	if msg := validateEventPayload(&payload); msg != "" {
		return fail(c, http.StatusBadRequest, "VALIDATION", msg)
	}

	newImage := strings.TrimSpace(payload.ImageURL)
	if ev.ImageURL != "" && ev.ImageURL != newImage {
		storageDeleteEventImage(ev.ImageURL)
	}

	ev.Title = payload.Title
	ev.Description = payload.Description
	ev.Date = payload.Date
	ev.Time = payload.Time
	ev.Location = payload.Location
	ev.ImageURL = newImage
	ev.Capacity = payload.Capacity
	ev.ContactPhone = payload.ContactPhone
	ev.ContactEmail = payload.ContactEmail
	ev.IsFeatured = payload.IsFeatured
	if payload.IsActive != nil {
		ev.IsActive = *payload.IsActive
	}
	ev.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&ev).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la salvarea evenimentului")
	}
	publishChange(c, "event.update", ev.Title)
	return ok(c, ev)
}

func deleteEvent(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Identificator invalid")
	}
	var ev domain.Event
	if err := GetDB(c).Where("id = ?", id).First(&ev).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Evenimentul nu a fost gasit")
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la stergerea evenimentului")
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Event{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la stergerea evenimentului")
	}
	if ev.ImageURL != "" {
		storageDeleteEventImage(ev.ImageURL)
	}
	publishChange(c, "event.delete", ev.Title)
	return ok(c, map[string]interface{}{"id": id})
}
