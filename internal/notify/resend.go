package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const defaultBaseURL = "https://api.resend.com"

// Mailer sends the confirmation document through the Resend email API.
type Mailer struct {
	hc      *http.Client
	apiKey  string
	from    string
	baseURL string
}

func New(apiKey, from string) *Mailer {
	return &Mailer{
		hc:      &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		from:    from,
		baseURL: defaultBaseURL,
	}
}

type attachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"` // base64
}

type message struct {
	From        string       `json:"from"`
	To          []string     `json:"to"`
	Subject     string       `json:"subject"`
	HTML        string       `json:"html"`
	Attachments []attachment `json:"attachments,omitempty"`
}

// SendArtifact mails artifactPath to each recipient independently. A failed
// recipient is logged and does not stop the rest; the return value reports
// whether at least one send went through.
func (m *Mailer) SendArtifact(ctx context.Context, recipients []string, visitDate, artifactPath string) bool {
	b, err := os.ReadFile(artifactPath)
	if err != nil {
		log.Printf("notify: read artifact: %v", err)
		return false
	}
	att := attachment{
		Filename: filepath.Base(artifactPath),
		Content:  base64.StdEncoding.EncodeToString(b),
	}

	subject := fmt.Sprintf("Turno confirmado para el %s", visitDate)
	body := fmt.Sprintf(
		"<p>Se gener&oacute; el turno de visita para el <strong>%s</strong>.</p><p>El comprobante va adjunto.</p>",
		visitDate)

	sent := 0
	for _, to := range recipients {
		msg := message{
			From:        m.from,
			To:          []string{to},
			Subject:     subject,
			HTML:        body,
			Attachments: []attachment{att},
		}
		if err := m.send(ctx, msg); err != nil {
			log.Printf("notify: send to %s failed: %v", to, err)
			continue
		}
		log.Printf("notify: sent confirmation to %s", to)
		sent++
	}
	return sent > 0
}

func (m *Mailer) send(ctx context.Context, msg message) error {
	jb, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(jb))
	if err != nil {
		return err
	}
	req.Header.Add("authorization", "Bearer "+m.apiKey)
	req.Header.Add("content-type", "application/json")

	res, err := m.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(res.Body)
		var r struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &r)
		if r.Message != "" {
			return fmt.Errorf("resend: %s (status=%d)", r.Message, res.StatusCode)
		}
		return fmt.Errorf("resend: status=%d", res.StatusCode)
	}
	return nil
}
