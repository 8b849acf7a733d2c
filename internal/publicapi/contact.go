package publicapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/cafeteca/cafeteca-server/internal/domain"
	"github.com/cafeteca/cafeteca-server/pkg/common"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type contactPayload struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone" form:"phone"`
	Message string `json:"message" form:"message"`
}

func validateContactPayload(payload *contactPayload) string {
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	payload.Message = strings.TrimSpace(payload.Message)
	if payload.Name == "" || payload.Email == "" || payload.Message == "" {
		return "Numele, emailul si mesajul sunt obligatorii"
	}
	if !strings.Contains(payload.Email, "@") {
		return "Adresa de email este invalida"
	}
	if len(payload.Message) > 5000 {
		return "Mesajul este prea lung"
	}
	return ""
}

// contact stores the submission first, then dispatches mail and webhook in
// the background so a slow SMTP server never blocks the visitor.
func contact(c echo.Context) error {
	var payload contactPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Cerere invalida")
	}
	if msg := validateContactPayload(&payload); msg != "" {
		return fail(c, http.StatusBadRequest, "VALIDATION", msg)
	}

	row := domain.ContactMessage{
		ID:        common.UUIDint64(),
		Name:      payload.Name,
		Email:     payload.Email,
		Phone:     payload.Phone,
		Message:   payload.Message,
		CreatedAt: time.Now(),
	}
	if err := GetDB(c).Create(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la trimiterea mesajului")
	}

	if err := appCtx.Submit(func() {
		dispatcher.SendContactMail(row)
		dispatcher.PostContactWebhook(row)
	}); err != nil {
		zap.L().Warn("contact dispatch submit failed", zap.Error(err))
	}

	return c.JSON(http.StatusCreated, map[string]string{"message": "Mesajul a fost trimis"})
}
