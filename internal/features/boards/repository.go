package boards

import (
	"errors"
	"time"

	"itconnect-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct{}

func (r *BoardRepository) CreateBoard(board *Board) error {
	if board.ID == uuid.Nil {
		board.ID = uuid.New()
	}

	if board.BoardData == "" {
		board.BoardData = "{}"
	}

	if board.CreatedAt.IsZero() {
		board.CreatedAt = time.Now().UTC()
	}
	board.UpdatedAt = board.CreatedAt

	return storage.GetDb().Create(board).Error
}

func (r *BoardRepository) GetBoardByID(boardID uuid.UUID) (*Board, error) {
	var board Board

	if err := storage.GetDb().Where("id = ?", boardID).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &board, nil
}

func (r *BoardRepository) GetBoardsByWorkspace(workspaceID uuid.UUID) ([]*Board, error) {
	var boards []*Board

	err := storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&boards).Error

	return boards, err
}

// GetUserBoards returns boards in every workspace the user can read.
func (r *BoardRepository) GetUserBoards(userID uuid.UUID) ([]*Board, error) {
	var boards []*Board

	err := storage.GetDb().
		Distinct("boards.*").
		Joins("JOIN workspaces w ON boards.workspace_id = w.id").
		Joins("LEFT JOIN workspace_memberships wm ON w.id = wm.workspace_id").
		Where("w.owner_id = ? OR wm.user_id = ?", userID, userID).
		Order("boards.created_at ASC").
		Find(&boards).Error

	return boards, err
}

func (r *BoardRepository) UpdateBoard(board *Board) error {
	board.UpdatedAt = time.Now().UTC()
	return storage.GetDb().Save(board).Error
}

func (r *BoardRepository) DeleteBoard(boardID uuid.UUID) error {
	return storage.GetDb().Delete(&Board{}, boardID).Error
}

func (r *BoardRepository) DeleteWorkspaceBoards(workspaceID uuid.UUID) error {
	return storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Delete(&Board{}).Error
}
