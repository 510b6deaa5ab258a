package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"itconnect-backend/internal/config"
	chats_services "itconnect-backend/internal/features/chats/services"
	users_models "itconnect-backend/internal/features/users/models"
	"itconnect-backend/internal/util/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var log = logger.GetLogger()

var (
	minioClient *minio.Client
	minioOnce   sync.Once
	minioErr    error
)

func getMinioClient() (*minio.Client, error) {
	minioOnce.Do(func() {
		env := config.GetEnv()

		client, err := minio.New(env.S3Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(env.S3AccessKey, env.S3SecretKey, ""),
			Secure: env.S3UseSSL,
		})
		if err != nil {
			minioErr = fmt.Errorf("failed to create s3 client: %w", err)
			return
		}

		ctx := context.Background()
		exists, err := client.BucketExists(ctx, env.S3Bucket)
		if err != nil {
			minioErr = fmt.Errorf("failed to check s3 bucket: %w", err)
			return
		}

		if !exists {
			if err := client.MakeBucket(ctx, env.S3Bucket, minio.MakeBucketOptions{}); err != nil {
				minioErr = fmt.Errorf("failed to create s3 bucket: %w", err)
				return
			}

			log.Info("Created s3 bucket", "bucket", env.S3Bucket)
		}

		minioClient = client
	})

	return minioClient, minioErr
}

type FileService struct {
	chatService *chats_services.ChatService
}

// UploadFile stores the file under a fresh object key. The content is
// never inspected.
func (s *FileService) UploadFile(
	ctx context.Context,
	fileHeader *multipart.FileHeader,
) (*UploadFileResponseDTO, error) {
	client, err := getMinioClient()
	if err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	env := config.GetEnv()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := "chat/" + uuid.New().String() + filepath.Ext(fileHeader.Filename)

	_, err = client.PutObject(
		ctx,
		env.S3Bucket,
		objectName,
		file,
		fileHeader.Size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	scheme := "http"
	if env.S3UseSSL {
		scheme = "https"
	}

	return &UploadFileResponseDTO{
		URL:  fmt.Sprintf("%s://%s/%s/%s", scheme, env.S3Endpoint, env.S3Bucket, objectName),
		Name: fileHeader.Filename,
		Type: contentType,
		Size: fileHeader.Size,
	}, nil
}

// DownloadAttachment streams the attachment of a chat message. Callers
// without access to the chat get the same error as a missing file.
func (s *FileService) DownloadAttachment(
	ctx context.Context,
	messageID uuid.UUID,
	user *users_models.User,
) (io.ReadCloser, *UploadFileResponseDTO, error) {
	message, err := s.chatService.GetMessageByID(messageID)
	if err != nil {
		return nil, nil, err
	}

	if message == nil || message.FileURL == nil {
		return nil, nil, errors.New("file not found")
	}

	canAccess, err := s.chatService.CanAccessChat(message.ChatID, user.ID)
	if err != nil {
		return nil, nil, err
	}

	if !canAccess {
		return nil, nil, errors.New("file not found")
	}

	client, err := getMinioClient()
	if err != nil {
		return nil, nil, err
	}

	env := config.GetEnv()

	objectName, err := objectNameFromURL(*message.FileURL, env.S3Bucket)
	if err != nil {
		return nil, nil, err
	}

	stat, err := client.StatObject(ctx, env.S3Bucket, objectName, minio.StatObjectOptions{})
	if err != nil {
		return nil, nil, errors.New("file not found")
	}

	object, err := client.GetObject(ctx, env.S3Bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get file: %w", err)
	}

	name := objectName
	if message.FileName != nil {
		name = *message.FileName
	}

	contentType := stat.ContentType
	if message.FileType != nil {
		contentType = *message.FileType
	}

	return object, &UploadFileResponseDTO{
		URL:  *message.FileURL,
		Name: name,
		Type: contentType,
		Size: stat.Size,
	}, nil
}

func objectNameFromURL(fileURL string, bucket string) (string, error) {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("invalid file url: %w", err)
	}

	objectName := strings.TrimPrefix(parsed.Path, "/"+bucket+"/")
	if objectName == "" || objectName == parsed.Path {
		return "", errors.New("file not found")
	}

	return objectName, nil
}
