package stores

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const VideoIdKey = "video-id"

func SetVideoId(c *gin.Context, id uuid.UUID) {
	c.Set(VideoIdKey, id)
}

func GetVideoId(c *gin.Context) uuid.UUID {
	if value, ok := c.Get(VideoIdKey); ok && value != nil {
		id, ok := value.(uuid.UUID)
		if ok {
			return id
		}
	}

	panic("Video ID not set, please check the usage of SetVideoId")
}
