package models

import "time"

// Note is a user's private annotation on a course content row.
type Note struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"userId"`
	ContentID uint64    `gorm:"not null;index" json:"contentId"`
	Text      string    `gorm:"type:text" json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Files []NoteFile `gorm:"foreignKey:NoteID" json:"files,omitempty"`
}

// TableName specifies the database table name for the Note model.
func (Note) TableName() string {
	return "notes"
}

// NoteFile is the metadata of an attachment stored in the object store.
type NoteFile struct {
	// ID is the unique identifier for the attachment.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// NoteID is the owning note.
	NoteID uint64 `gorm:"not null;index" json:"noteId"`
	// UserID duplicates the note author for ownership checks.
	UserID uint64 `gorm:"not null;index" json:"userId"`
	// FileName is the client supplied file name.
	FileName string `gorm:"size:255;not null" json:"fileName"`
	// MimeType is the content type reported on upload.
	MimeType string `gorm:"size:100" json:"mimeType"`
	// Size is the object size in bytes.
	Size int64 `json:"size"`
	// ObjectKey locates the object in the store.
	ObjectKey string    `gorm:"size:500;not null;uniqueIndex" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the database table name for the NoteFile model.
func (NoteFile) TableName() string {
	return "note_files"
}
