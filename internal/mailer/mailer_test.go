package mailer

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMemoryMailer(t *testing.T) {
	mailer := NewMemoryMailer()
	to := &mail.Address{Address: "alice@example.com"}

	if _, ok := mailer.LastMail(to.Address); ok {
		t.Fatal("Empty inbox has a last mail")
	}

	mailer.SendMail(to, "first", "<p>1</p>")
	mailer.SendMail(to, "second", "<p>2</p>")

	last, ok := mailer.LastMail(to.Address)
	if !ok || last.Subject != "second" || last.Body != "<p>2</p>" {
		t.Errorf("LastMail() = %+v, %v", last, ok)
	}
}

func TestSendMailTemplated(t *testing.T) {
	memory := NewMemoryMailer()
	DefaultMailer = memory
	defer func() { DefaultMailer = nil }()

	tmpl := template.Must(template.New("mail").Parse(`{{define "layout"}}<p>code: {{.}}</p>{{end}}`))
	to := &mail.Address{Address: "bob@example.com"}
	if err := SendMailTemplated(to, "Confirm your email", tmpl, "abc<def>"); err != nil {
		t.Fatalf("Unable to send templated mail: %v", err)
	}

	last, ok := memory.LastMail(to.Address)
	if !ok {
		t.Fatal("No mail delivered")
	}
	if last.Body != "<p>code: abc&lt;def&gt;</p>" {
		t.Errorf("Body = %q", last.Body)
	}
}

func TestFSMailer(t *testing.T) {
	dir := t.TempDir()
	mailer := &FSMailer{Dir: dir}
	if err := mailer.SendMail(&mail.Address{Address: "carol@example.com"}, "Recover your account", "<a>link</a>"); err != nil {
		t.Fatalf("Unable to send fs mail: %v", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "carol_at_example.com", "*.json"))
	if err != nil || len(files) != 1 {
		t.Fatalf("Expected one mail file, got %v (%v)", files, err)
	}

	content, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatalf("Unable to read mail file: %v", err)
	}

	var decoded map[string]string
	if err := json.NewDecoder(bytes.NewReader(content)).Decode(&decoded); err != nil {
		t.Fatalf("Mail file is not JSON: %v", err)
	}
	if decoded["subject"] != "Recover your account" || !strings.Contains(decoded["body"], "link") {
		t.Errorf("Decoded mail = %v", decoded)
	}
}

func TestNewMessageHeaders(t *testing.T) {
	m := newMessage(&mail.Address{Address: "dave@example.com"}, "Hello", "<p>hi</p>")
	if got := m.GetHeader("To"); len(got) != 1 || got[0] != "dave@example.com" {
		t.Errorf("To header = %v", got)
	}
	if got := m.GetHeader("From"); len(got) != 1 || got[0] != Sender {
		t.Errorf("From header = %v", got)
	}
}

func TestInitMailerRejectsUnknownMode(t *testing.T) {
	t.Setenv("MAIL_MODE", "carrier-pigeon")
	if err := InitMailer(); err == nil {
		t.Error("InitMailer accepted an unknown mode")
	}
}
