package files

import (
	chats_services "itconnect-backend/internal/features/chats/services"
)

var fileService = &FileService{chats_services.GetChatService()}

var fileController = &FileController{fileService}

func GetFileService() *FileService {
	return fileService
}

func GetFileController() *FileController {
	return fileController
}
