package mailer

import (
	"encoding/json"
	"html/template"
	"net/mail"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FSMailer writes every mail as a JSON file under Dir/<address>/.
type FSMailer struct {
	Dir string
}

func InitFSMailer(dir string) {
	DefaultMailer = &FSMailer{Dir: dir}
}

func (mailer *FSMailer) SendMail(to *mail.Address, subject string, body template.HTML) error {
	dirName := filepath.Join(mailer.Dir, strings.ReplaceAll(to.Address, "@", "_at_"))

	if err := os.MkdirAll(dirName, 0755); err != nil {
		return err
	}

	filename := filepath.Join(dirName, uuid.NewString()+".json")
	content, err := json.Marshal(gin.H{
		"subject": subject,
		"body":    string(body),
	})
	if err != nil {
		return err
	}

	return os.WriteFile(filename, content, 0644)
}
