package boards

import (
	audit_logs "itconnect-backend/internal/features/audit_logs"
	workspaces_services "itconnect-backend/internal/features/workspaces/services"
)

var boardRepository = &BoardRepository{}

var boardService = &BoardService{
	boardRepository,
	workspaces_services.GetWorkspaceService(),
	audit_logs.GetAuditLogService(),
}

var boardController = &BoardController{boardService}

func GetBoardService() *BoardService {
	return boardService
}

func GetBoardController() *BoardController {
	return boardController
}

// SetupDependencies registers cross-feature listeners.
func SetupDependencies() {
	workspaces_services.GetWorkspaceService().AddWorkspaceDeletionListener(boardService)
}
