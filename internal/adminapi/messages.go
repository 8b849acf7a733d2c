package adminapi

import (
	"errors"
	"net/http"

	"github.com/cafeteca/cafeteca-server/internal/domain"
	"github.com/cafeteca/cafeteca-server/internal/webserver"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func registerMessageRoutes() {
	webserver.ApiGET("/contact-messages", listContactMessages)
	webserver.ApiDELETE("/contact-messages/:id", deleteContactMessage)
}

func listContactMessages(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.ContactMessage{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la incarcarea mesajelor")
	}
	var rows []domain.ContactMessage
	if err := db.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la incarcarea mesajelor")
	}
	return paged(c, rows, total, page, pageSize)
}

func deleteContactMessage(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Identificator invalid")
	}
	var msg domain.ContactMessage
	if err := GetDB(c).Where("id = ?", id).First(&msg).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Mesajul nu a fost gasit")
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la stergerea mesajului")
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.ContactMessage{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la stergerea mesajului")
	}
	publishChange(c, "contact_message.delete", msg.Email)
	return ok(c, map[string]interface{}{"id": id})
}
