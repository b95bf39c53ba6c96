package services

import (
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fintrack/internal/logger"
	"fintrack/internal/models"
)

// auditService writes an AuditLog row for every ledger mutation.
type auditService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db, log: logger.Named("audit")}
}

// Log records a mutation. Failures are logged and swallowed so the request
// that triggered the entry still succeeds.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      s.encodeChanges(action, changes),
	}

	if err := s.db.Create(entry).Error; err != nil {
		s.log.Errorw("audit entry not written",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource", resourceType+"/"+resourceID,
		)
		return
	}
	s.log.Debugw("audit entry written", "action", action, "resource", resourceType+"/"+resourceID)
}

// encodeChanges drops nil values and returns "" when nothing remains.
func (s *auditService) encodeChanges(action string, changes map[string]any) string {
	kept := make(map[string]any, len(changes))
	for k, v := range changes {
		if v != nil {
			kept[k] = v
		}
	}
	if len(kept) == 0 {
		return ""
	}

	data, err := json.Marshal(kept)
	if err != nil {
		s.log.Warnw("audit changes not serialisable", "error", err, "action", action)
		return "{}"
	}
	return string(data)
}
