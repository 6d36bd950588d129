package services

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/btmxh/dersflix/internal/db"
	"github.com/google/uuid"
)

const MaxNoteLength = 500

var ErrEmptyNote = errors.New("Note must not be empty.")
var ErrNoteTooLong = errors.New("Note must be at most 500 characters long.")
var ErrNoteNotFound = errors.New("Note not found.")

type Note struct {
	Id               uuid.UUID
	VideoId          uuid.UUID
	Text             string
	Completed        bool
	CreatedTimestamp time.Time
}

func ValidateNoteText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return text, ErrEmptyNote
	}
	if utf8.RuneCountInString(text) > MaxNoteLength {
		return text, ErrNoteTooLong
	}
	return text, nil
}

func AddNote(tx *db.Tx, video uuid.UUID, text string) (id uuid.UUID, hasErr bool) {
	text, err := ValidateNoteText(text)
	if err != nil {
		tx.PublicError(http.StatusUnprocessableEntity, err)
		return id, true
	}

	id = uuid.New()
	hasErr = tx.Exec(nil, "INSERT INTO notes (id, video, text) VALUES ($1, $2, $3)", id, video, text)
	return id, hasErr
}

func ToggleNote(tx *db.Tx, video, note uuid.UUID) (hasErr bool) {
	return tx.ExecAffected(ErrNoteNotFound, "UPDATE notes SET completed = NOT completed WHERE id = $1 AND video = $2", note, video)
}

func DeleteNote(tx *db.Tx, video, note uuid.UUID) (hasErr bool) {
	return tx.ExecAffected(ErrNoteNotFound, "DELETE FROM notes WHERE id = $1 AND video = $2", note, video)
}

func NoteExists(tx *db.Tx, video, note uuid.UUID) (exists bool, hasErr bool) {
	var dummy int
	hasErr = tx.QueryRow("SELECT 1 FROM notes WHERE id = $1 AND video = $2", note, video).Scan(&exists, &dummy)
	return exists, hasErr
}

func ListNotes(tx *db.Tx, video uuid.UUID) (notes []Note, hasErr bool) {
	var rows *sql.Rows
	if tx.Query(&rows, "SELECT id, video, text, completed, created_timestamp FROM notes WHERE video = $1 ORDER BY created_timestamp, id", video) {
		return nil, true
	}

	hasErr = tx.ScanRows(rows, func(rows *sql.Rows) error {
		var note Note
		if err := rows.Scan(&note.Id, &note.VideoId, &note.Text, &note.Completed, &note.CreatedTimestamp); err != nil {
			return err
		}
		notes = append(notes, note)
		return nil
	})
	return notes, hasErr
}
