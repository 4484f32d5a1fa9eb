// Package notes provides the personal note and attachment endpoints.
package notes

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	noteservice "github.com/lmsforge/lms-backend/internal/service/note"
	"github.com/lmsforge/lms-backend/internal/web/handler"
)

const (
	// Path is the base path of the note endpoints.
	Path = handler.RootPath + "notes"

	// Routes.
	RouteCreate     = Path + "/create"
	RouteUpdate     = Path + "/update"
	RouteDelete     = Path + "/delete"
	RouteByContent  = Path + "/getByContent/:contentId"
	RouteList       = Path + "/getAll"
	RouteUploadFile = Path + "/uploadFile"
	RouteDeleteFile = Path + "/deleteFile"
	RouteFileURL    = Path + "/fileUrl/:fileId"

	// Multipart form fields of RouteUploadFile.
	FormNoteID = "noteId"
	FormFile   = "file"
)

var (
	// ErrInvalidNoteID is returned when the noteId form field is missing or malformed.
	ErrInvalidNoteID = fiber.NewError(fiber.StatusBadRequest, "noteId is required")
	// ErrFileRequired is returned when the upload carries no file part.
	ErrFileRequired = fiber.NewError(fiber.StatusBadRequest, "file is required")
)

// Service is the notes handler service.
type Service struct {
	notes *noteservice.Service
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, env *handler.Env) {
	if app == nil || env == nil {
		log.Fatal().Msg(handler.ErrNilEnvFatalLogMsg)
		return
	}

	s.notes = noteservice.New(env.DB, noteservice.Options{
		Store:         env.Files,
		BasePath:      env.Config.Storage.BasePath,
		MaxUploadSize: env.Config.Storage.MaxUploadSize,
		PresignExpiry: env.Config.Storage.PresignExpiry,
	})

	app.Post(RouteCreate, env.RequireAuth, s.Create)
	app.Post(RouteUpdate, env.RequireAuth, s.Update)
	app.Post(RouteDelete, env.RequireAuth, s.Delete)
	app.Get(RouteByContent, env.RequireAuth, s.ByContent)
	app.Get(RouteList, env.RequireAuth, s.List)
	app.Post(RouteUploadFile, env.RequireAuth, s.UploadFile)
	app.Post(RouteDeleteFile, env.RequireAuth, s.DeleteFile)
	app.Get(RouteFileURL, env.RequireAuth, s.FileURL)
}

// Create handles POST /notes/create.
func (s *Service) Create(c *fiber.Ctx) error {
	var in createInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	note, err := s.notes.Create(c.UserContext(), handler.UserID(c), in.ContentID, in.Text)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.Created(c, "Note created successfully", note)
}

// Update handles POST /notes/update.
func (s *Service) Update(c *fiber.Ctx) error {
	var in updateInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	note, err := s.notes.Update(c.UserContext(), handler.UserID(c), in.NoteID, in.Text)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Note updated successfully", note)
}

// Delete handles POST /notes/delete.
func (s *Service) Delete(c *fiber.Ctx) error {
	var in noteRef
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	if err := s.notes.Delete(c.UserContext(), handler.UserID(c), in.NoteID); err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Note deleted successfully", nil)
}

// ByContent handles GET /notes/getByContent/:contentId.
func (s *Service) ByContent(c *fiber.Ctx) error {
	contentID, err := handler.ParamID(c, "contentId")
	if err != nil {
		return handler.SendError(c, err)
	}

	notes, err := s.notes.ByContent(c.UserContext(), handler.UserID(c), contentID)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Notes retrieved", notes)
}

// List handles GET /notes/getAll.
func (s *Service) List(c *fiber.Ctx) error {
	res, err := s.notes.List(c.UserContext(), handler.UserID(c), handler.PageParams(c))
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Notes retrieved", res)
}

// UploadFile handles the multipart POST /notes/uploadFile.
func (s *Service) UploadFile(c *fiber.Ctx) error {
	noteID, err := strconv.ParseUint(c.FormValue(FormNoteID), 10, 64)
	if err != nil || noteID == 0 {
		return handler.SendError(c, ErrInvalidNoteID)
	}

	fh, err := c.FormFile(FormFile)
	if err != nil {
		return handler.SendError(c, ErrFileRequired)
	}

	f, err := fh.Open()
	if err != nil {
		return handler.SendError(c, err)
	}
	defer f.Close()

	contentType := fh.Header.Get(fiber.HeaderContentType)
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}

	file, err := s.notes.AttachFile(c.UserContext(), handler.UserID(c), noteID, noteservice.Upload{
		FileName:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.Created(c, "File uploaded successfully", file)
}

// DeleteFile handles POST /notes/deleteFile.
func (s *Service) DeleteFile(c *fiber.Ctx) error {
	var in fileRef
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	if err := s.notes.DeleteFile(c.UserContext(), handler.UserID(c), in.FileID); err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "File deleted successfully", nil)
}

// FileURL handles GET /notes/fileUrl/:fileId.
func (s *Service) FileURL(c *fiber.Ctx) error {
	fileID, err := handler.ParamID(c, "fileId")
	if err != nil {
		return handler.SendError(c, err)
	}

	url, err := s.notes.FileURL(c.UserContext(), handler.UserID(c), fileID)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "File URL generated", fileURL{URL: url})
}
