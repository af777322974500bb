// Package email alerts the lab inbox about new pickup requests.
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/labfetch/labfetch-api/internal/model"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
}

// Enabled reports whether enough is configured to send mail.
func (c Config) Enabled() bool {
	return c.Host != "" && c.From != "" && len(c.To) > 0
}

var alertTemplate = template.Must(template.New("alert").Parse(`<h2>Nueva solicitud de recogida #{{.ID}}</h2>
<ul>
<li><b>Mascota:</b> {{.PetName}}</li>
<li><b>Contacto:</b> {{.Contact}}</li>
<li><b>Dirección:</b> {{.FullAddress}}</li>
{{if .PreferredDate}}<li><b>Fecha preferida:</b> {{.PreferredDate}} ({{.PreferredShift}})</li>{{end}}
</ul>`))

// Alerter mails one message per new pickup.
type Alerter struct {
	cfg    Config
	sender func() (gomail.SendCloser, error)
}

func NewAlerter(cfg Config) *Alerter {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &Alerter{cfg: cfg, sender: d.Dial}
}

// Deliver has the shape of a hub sink callback. Events other than new
// pickups are ignored.
func (a *Alerter) Deliver(ctx context.Context, event model.Event) error {
	p, ok := event.Data.(*model.Pickup)
	if event.Type != model.EventNewPickup || !ok {
		return nil
	}

	msg, err := a.message(p)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s, err := a.sender()
	if err != nil {
		return fmt.Errorf("failed to connect to smtp: %w", err)
	}
	defer s.Close()

	if err := gomail.Send(s, msg); err != nil {
		return fmt.Errorf("failed to send pickup alert: %w", err)
	}
	return nil
}

func (a *Alerter) message(p *model.Pickup) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := alertTemplate.Execute(&body, p); err != nil {
		return nil, fmt.Errorf("failed to render pickup alert: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", a.cfg.From)
	m.SetHeader("To", a.cfg.To...)
	m.SetHeader("Subject", fmt.Sprintf("Nueva recogida #%d - %s", p.ID, p.City))
	m.SetBody("text/html", body.String())
	return m, nil
}
