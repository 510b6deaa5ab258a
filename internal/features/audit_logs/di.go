package audit_logs

import (
	users_services "itconnect-backend/internal/features/users/services"
)

var auditLogRepository = &AuditLogRepository{}
var auditLogService = &AuditLogService{auditLogRepository}

func GetAuditLogService() *AuditLogService {
	return auditLogService
}

// SetupDependencies wires the audit log writer into features that cannot
// import this package directly.
func SetupDependencies() {
	users_services.GetUserService().SetAuditLogWriter(auditLogService)
}
