package stores

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const NoteIdKey = "note-id"

func SetNoteId(c *gin.Context, id uuid.UUID) {
	c.Set(NoteIdKey, id)
}

func GetNoteId(c *gin.Context) uuid.UUID {
	if value, ok := c.Get(NoteIdKey); ok && value != nil {
		id, ok := value.(uuid.UUID)
		if ok {
			return id
		}
	}

	panic("Note ID not set, please check the usage of SetNoteId")
}
