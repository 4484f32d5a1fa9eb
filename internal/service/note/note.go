// Package note keeps private notes on course content with file attachments.
package note

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/lmsforge/lms-backend/internal/apperr"
	"github.com/lmsforge/lms-backend/internal/db/models"
	"github.com/lmsforge/lms-backend/internal/db/paginate"
	"github.com/lmsforge/lms-backend/internal/filestore"
	"github.com/lmsforge/lms-backend/internal/service/course"
)

var (
	// ErrNoteNotFound is returned when the note does not exist.
	ErrNoteNotFound = apperr.NotFound("Note not found")
	// ErrFileNotFound is returned when the attachment does not exist.
	ErrFileNotFound = apperr.NotFound("File not found")
	// ErrNotAuthor is returned when the caller did not write the note.
	ErrNotAuthor = apperr.Forbidden("Only the author can change this note")
	// ErrFileTooLarge is returned for uploads above the configured limit.
	ErrFileTooLarge = apperr.Validation("File exceeds the maximum upload size")
	// ErrEmptyFile is returned for zero byte uploads.
	ErrEmptyFile = apperr.Validation("File is empty")
)

// Options configures attachment handling.
type Options struct {
	Store         filestore.Store
	BasePath      string
	MaxUploadSize int64
	PresignExpiry time.Duration
}

// Service implements the note operations.
type Service struct {
	db   *gorm.DB
	opts Options
}

// New creates a note Service.
func New(db *gorm.DB, opts Options) *Service {
	if opts.Store == nil {
		opts.Store = filestore.NewMemory()
	}

	if opts.PresignExpiry <= 0 {
		opts.PresignExpiry = 15 * time.Minute
	}

	return &Service{db: db, opts: opts}
}

// Upload is an attachment to store.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

func findOwned(tx *gorm.DB, noteID, userID uint64) (*models.Note, error) {
	var n models.Note

	err := tx.First(&n, noteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoteNotFound
	}

	if err != nil {
		return nil, err
	}

	if n.UserID != userID {
		return nil, ErrNotAuthor
	}

	return &n, nil
}

func findFile(tx *gorm.DB, fileID, userID uint64) (*models.NoteFile, error) {
	var f models.NoteFile

	err := tx.First(&f, fileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFileNotFound
	}

	if err != nil {
		return nil, err
	}

	if f.UserID != userID {
		return nil, ErrNotAuthor
	}

	return &f, nil
}

// Create writes a note of userID on contentID.
func (s *Service) Create(ctx context.Context, userID, contentID uint64, text string) (*models.Note, error) {
	db := s.db.WithContext(ctx)

	if _, err := course.FindContent(db, contentID); err != nil {
		return nil, err
	}

	n := &models.Note{UserID: userID, ContentID: contentID, Text: text}
	if err := db.Create(n).Error; err != nil {
		return nil, err
	}

	return n, nil
}

// Update replaces the text of a note written by userID.
func (s *Service) Update(ctx context.Context, userID, noteID uint64, text string) (*models.Note, error) {
	db := s.db.WithContext(ctx)

	n, err := findOwned(db, noteID, userID)
	if err != nil {
		return nil, err
	}

	n.Text = text
	if err = db.Save(n).Error; err != nil {
		return nil, err
	}

	return n, nil
}

// Delete removes a note of userID with its file rows, then its stored objects.
// Object removal failures are logged and do not fail the call.
func (s *Service) Delete(ctx context.Context, userID, noteID uint64) error {
	var files []models.NoteFile

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := findOwned(tx, noteID, userID)
		if err != nil {
			return err
		}

		if err = tx.Where("note_id = ?", n.ID).Find(&files).Error; err != nil {
			return err
		}

		if err = tx.Where("note_id = ?", n.ID).Delete(&models.NoteFile{}).Error; err != nil {
			return err
		}

		return tx.Delete(n).Error
	})
	if err != nil {
		return err
	}

	for _, f := range files {
		s.removeObject(ctx, f.ObjectKey)
	}

	return nil
}

func (s *Service) removeObject(ctx context.Context, key string) {
	if err := s.opts.Store.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("object_key", key).Msg("failed to remove stored attachment")
	}
}

// ByContent returns the notes of userID on contentID with their files.
func (s *Service) ByContent(ctx context.Context, userID, contentID uint64) ([]models.Note, error) {
	out := make([]models.Note, 0)

	err := s.db.WithContext(ctx).
		Preload("Files").
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Order("id").
		Find(&out).Error

	return out, err
}

// List returns a page of the notes of userID, newest first.
func (s *Service) List(ctx context.Context, userID uint64, p paginate.Params) (paginate.Result[models.Note], error) {
	q := s.db.WithContext(ctx).Preload("Files").Where("user_id = ?", userID).Order("id DESC")

	return paginate.Find[models.Note](q, p)
}

// AttachFile stores up as an attachment of a note written by userID.
func (s *Service) AttachFile(ctx context.Context, userID, noteID uint64, up Upload) (*models.NoteFile, error) {
	if up.Size <= 0 {
		return nil, ErrEmptyFile
	}

	if s.opts.MaxUploadSize > 0 && up.Size > s.opts.MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	db := s.db.WithContext(ctx)

	n, err := findOwned(db, noteID, userID)
	if err != nil {
		return nil, err
	}

	f := &models.NoteFile{
		NoteID:    n.ID,
		UserID:    userID,
		FileName:  up.FileName,
		MimeType:  up.ContentType,
		Size:      up.Size,
		ObjectKey: filestore.ObjectKey(s.opts.BasePath, userID, up.FileName),
	}

	if err = s.opts.Store.Put(ctx, f.ObjectKey, up.Body, up.Size, up.ContentType); err != nil {
		return nil, err
	}

	if err = db.Create(f).Error; err != nil {
		s.removeObject(ctx, f.ObjectKey)
		return nil, err
	}

	return f, nil
}

// DeleteFile removes an attachment of userID.
func (s *Service) DeleteFile(ctx context.Context, userID, fileID uint64) error {
	db := s.db.WithContext(ctx)

	f, err := findFile(db, fileID, userID)
	if err != nil {
		return err
	}

	if err = db.Delete(f).Error; err != nil {
		return err
	}

	s.removeObject(ctx, f.ObjectKey)

	return nil
}

// FileURL returns a time limited download URL for an attachment of userID.
func (s *Service) FileURL(ctx context.Context, userID, fileID uint64) (string, error) {
	f, err := findFile(s.db.WithContext(ctx), fileID, userID)
	if err != nil {
		return "", err
	}

	return s.opts.Store.PresignedURL(ctx, f.ObjectKey, s.opts.PresignExpiry)
}
