package boards

import (
	"errors"
	"fmt"

	audit_logs "itconnect-backend/internal/features/audit_logs"
	users_models "itconnect-backend/internal/features/users/models"
	workspaces_access "itconnect-backend/internal/features/workspaces/access"
	workspaces_services "itconnect-backend/internal/features/workspaces/services"

	"github.com/google/uuid"
)

type BoardService struct {
	boardRepository  *BoardRepository
	workspaceService *workspaces_services.WorkspaceService
	auditLogService  *audit_logs.AuditLogService
}

func (s *BoardService) CreateBoard(
	request *CreateBoardRequestDTO,
	creator *users_models.User,
) (*BoardResponseDTO, error) {
	standing, workspace, err := s.workspaceService.ResolveStanding(
		request.WorkspaceID,
		creator.ID,
	)
	if err != nil {
		return nil, err
	}

	if workspace == nil {
		return nil, errors.New("workspace not found")
	}

	if !workspaces_access.CanCreateBoard(standing) {
		return nil, errors.New("insufficient permissions to create boards")
	}

	board := &Board{
		WorkspaceID: request.WorkspaceID,
		Name:        request.Name,
		BoardData:   request.BoardData,
		CreatedBy:   creator.ID,
	}

	if err := s.boardRepository.CreateBoard(board); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Board created: %s", board.Name),
		&creator.ID,
		&board.WorkspaceID,
	)

	return s.toDTO(board, standing), nil
}

func (s *BoardService) GetBoard(
	boardID uuid.UUID,
	user *users_models.User,
) (*BoardResponseDTO, error) {
	board, err := s.boardRepository.GetBoardByID(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	if board == nil {
		return nil, errors.New("board not found")
	}

	standing, _, err := s.workspaceService.ResolveStanding(board.WorkspaceID, user.ID)
	if err != nil {
		return nil, err
	}

	if !workspaces_access.CanReadWorkspace(standing) {
		return nil, errors.New("board not found")
	}

	return s.toDTO(board, standing), nil
}

func (s *BoardService) GetBoardsByWorkspace(
	workspaceID uuid.UUID,
	user *users_models.User,
) ([]*BoardResponseDTO, error) {
	standing, workspace, err := s.workspaceService.ResolveStanding(workspaceID, user.ID)
	if err != nil {
		return nil, err
	}

	if workspace == nil || !workspaces_access.CanReadWorkspace(standing) {
		return nil, errors.New("workspace not found")
	}

	boards, err := s.boardRepository.GetBoardsByWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get boards: %w", err)
	}

	result := make([]*BoardResponseDTO, len(boards))
	for i, board := range boards {
		result[i] = s.toDTO(board, standing)
	}

	return result, nil
}

func (s *BoardService) GetUserBoards(user *users_models.User) ([]*BoardResponseDTO, error) {
	boards, err := s.boardRepository.GetUserBoards(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get boards: %w", err)
	}

	result := make([]*BoardResponseDTO, 0, len(boards))
	for _, board := range boards {
		standing, _, err := s.workspaceService.ResolveStanding(board.WorkspaceID, user.ID)
		if err != nil {
			return nil, err
		}

		result = append(result, s.toDTO(board, standing))
	}

	return result, nil
}

func (s *BoardService) UpdateBoard(
	boardID uuid.UUID,
	request *UpdateBoardRequestDTO,
	user *users_models.User,
) (*BoardResponseDTO, error) {
	board, err := s.boardRepository.GetBoardByID(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	if board == nil {
		return nil, errors.New("board not found")
	}

	standing, _, err := s.workspaceService.ResolveStanding(board.WorkspaceID, user.ID)
	if err != nil {
		return nil, err
	}

	if !workspaces_access.CanReadWorkspace(standing) {
		return nil, errors.New("board not found")
	}

	if !workspaces_access.CanEditBoard(standing) {
		return nil, errors.New("insufficient permissions to edit board")
	}

	// absent fields keep their previous values
	if request.Name != nil && *request.Name != "" {
		board.Name = *request.Name
	}
	if request.BoardData != nil {
		board.BoardData = *request.BoardData
	}

	if err := s.boardRepository.UpdateBoard(board); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Board updated: %s", board.Name),
		&user.ID,
		&board.WorkspaceID,
	)

	return s.toDTO(board, standing), nil
}

func (s *BoardService) DeleteBoard(boardID uuid.UUID, user *users_models.User) error {
	board, err := s.boardRepository.GetBoardByID(boardID)
	if err != nil {
		return fmt.Errorf("failed to get board: %w", err)
	}

	if board == nil {
		return errors.New("board not found")
	}

	standing, _, err := s.workspaceService.ResolveStanding(board.WorkspaceID, user.ID)
	if err != nil {
		return err
	}

	if !workspaces_access.CanReadWorkspace(standing) {
		return errors.New("board not found")
	}

	if !workspaces_access.CanDeleteBoard(standing) {
		return errors.New("insufficient permissions to delete board")
	}

	if err := s.boardRepository.DeleteBoard(boardID); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Board deleted: %s", board.Name),
		&user.ID,
		&board.WorkspaceID,
	)

	return nil
}

// OnBeforeWorkspaceDeletion removes all boards belonging to the workspace.
func (s *BoardService) OnBeforeWorkspaceDeletion(workspaceID uuid.UUID) error {
	return s.boardRepository.DeleteWorkspaceBoards(workspaceID)
}

func (s *BoardService) toDTO(board *Board, standing workspaces_access.Standing) *BoardResponseDTO {
	return &BoardResponseDTO{
		ID:          board.ID,
		WorkspaceID: board.WorkspaceID,
		Name:        board.Name,
		BoardData:   board.BoardData,
		CreatedBy:   board.CreatedBy,
		CreatedAt:   board.CreatedAt,
		UpdatedAt:   board.UpdatedAt,
		CanEdit:     workspaces_access.CanEditBoard(standing),
	}
}
