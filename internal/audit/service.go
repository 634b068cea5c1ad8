package audit

import (
	"encoding/json"
	"fmt"

	"pasteleria-backend/internal/database"
	"pasteleria-backend/internal/models"

	"github.com/google/uuid"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// WriteLog persiste un evento de auditoría con instantáneas antes/después en
// JSON. Un error aquí nunca debe tumbar la operación de negocio; el llamador
// decide si lo registra y sigue.
func WriteLog(opts LogOptions) error {
	// jsonb no admite cadena vacía, el valor por defecto es el JSON null
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		EventID:     uuid.NewString(),
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("no se pudo guardar el log de auditoría: %w", err)
	}

	return nil
}
