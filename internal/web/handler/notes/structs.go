package notes

type createInput struct {
	ContentID uint64 `json:"contentId" validate:"required"`
	Text      string `json:"text" validate:"required,max=20000"`
}

type updateInput struct {
	NoteID uint64 `json:"noteId" validate:"required"`
	Text   string `json:"text" validate:"required,max=20000"`
}

type noteRef struct {
	NoteID uint64 `json:"noteId" validate:"required"`
}

type fileRef struct {
	FileID uint64 `json:"fileId" validate:"required"`
}

type fileURL struct {
	URL string `json:"url"`
}
