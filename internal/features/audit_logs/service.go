package audit_logs

import (
	"time"

	"itconnect-backend/internal/util/logger"

	"github.com/google/uuid"
)

var log = logger.GetLogger()

type AuditLogService struct {
	auditLogRepository *AuditLogRepository
}

// WriteAuditLog persists an audit entry, failures are logged and swallowed
// so callers never fail their own operation over audit bookkeeping.
func (s *AuditLogService) WriteAuditLog(
	message string,
	userID *uuid.UUID,
	workspaceID *uuid.UUID,
) {
	auditLog := &AuditLog{
		ID:          uuid.New(),
		UserID:      userID,
		WorkspaceID: workspaceID,
		Message:     message,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.auditLogRepository.CreateAuditLog(auditLog); err != nil {
		log.Error("failed to write audit log", "message", message, "error", err)
	}
}

func (s *AuditLogService) GetWorkspaceAuditLogs(
	workspaceID uuid.UUID,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	limit := request.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	offset := request.Offset
	if offset < 0 {
		offset = 0
	}

	logs, total, err := s.auditLogRepository.GetWorkspaceAuditLogs(
		workspaceID,
		limit,
		offset,
		request.BeforeDate,
	)
	if err != nil {
		return nil, err
	}

	return &GetAuditLogsResponse{
		AuditLogs: logs,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}
