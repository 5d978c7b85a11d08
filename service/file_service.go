package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/tieubaoca/pdf-ask/logger"
	"github.com/tieubaoca/pdf-ask/types"
	"github.com/tieubaoca/pdf-ask/utils"
)

// ErrFileNotFound is returned by Open when the requested upload does not exist.
var ErrFileNotFound = errors.New("file not found")

var allowedExtensions = []string{"pdf"}

type FileService struct {
	uploadDir string
}

func NewFileService(uploadDir string) (*FileService, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FileService{
		uploadDir: uploadDir,
	}, nil
}

func (s *FileService) UploadDir() string {
	return s.uploadDir
}

// SaveUpload persists an uploaded PDF under its sanitized name.
// It returns (nil, nil) when the file is skipped because of its name;
// an error means the file was acceptable but could not be written.
func (s *FileService) SaveUpload(file *multipart.FileHeader) (*types.UploadedFile, error) {
	if file == nil || !s.accepts(file.Filename) {
		return nil, nil
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	return s.Save(file.Filename, src)
}

// Save writes r to the upload directory under the sanitized form of filename,
// with the same skip rules as SaveUpload.
func (s *FileService) Save(filename string, r io.Reader) (*types.UploadedFile, error) {
	if !s.accepts(filename) {
		return nil, nil
	}
	name := utils.SecureFilename(filename)

	size, err := utils.WriteFileAtomic(s.uploadDir, name, r)
	if err != nil {
		return nil, err
	}

	return &types.UploadedFile{
		Name: name,
		Path: filepath.Join(s.uploadDir, name),
		Size: size,
	}, nil
}

func (s *FileService) accepts(filename string) bool {
	if !utils.AllowedFile(filename, allowedExtensions...) {
		logger.WithFields(logrus.Fields{"filename": filename}).Debug("Skipping upload with disallowed extension")
		return false
	}
	if utils.SecureFilename(filename) == "" {
		logger.WithFields(logrus.Fields{"filename": filename}).Debug("Skipping upload with unusable filename")
		return false
	}
	return true
}

// Open resolves a previously uploaded file by name. Names that are not already
// in sanitized form never match, which keeps lookups inside the upload directory.
func (s *FileService) Open(name string) (*types.UploadedFile, error) {
	if name == "" || utils.SecureFilename(name) != name {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	path := filepath.Join(s.uploadDir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	return &types.UploadedFile{
		Name: name,
		Path: path,
		Size: info.Size(),
	}, nil
}
