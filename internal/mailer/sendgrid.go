package mailer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendGridHost     = "https://api.sendgrid.com"
	sendGridEndpoint = "/v3/mail/send"
)

// ErrDeliveryFailed is returned when SendGrid answers with an error status.
var ErrDeliveryFailed = errors.New("mail delivery failed")

// SendGrid sends messages through the SendGrid v3 API.
type SendGrid struct {
	key        string
	host       string
	from       *sgmail.Email
	subjPrefix string
}

// NewSendGrid creates a SendGrid mailer.
func NewSendGrid(key, appName, fromName, fromEmail string) *SendGrid {
	if fromName == "" {
		fromName = appName
	}

	return &SendGrid{
		key:        key,
		host:       sendGridHost,
		from:       sgmail.NewEmail(fromName, fromEmail),
		subjPrefix: "[" + appName + "] ",
	}
}

func (s *SendGrid) build(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = s.subjPrefix + msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToEmail))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", msg.PlainText))

	if msg.HTML != "" {
		m.AddContent(sgmail.NewContent("text/html", msg.HTML))
	}

	return m
}

// Send posts msg to SendGrid.
func (s *SendGrid) Send(_ context.Context, msg Message) error {
	req := sendgrid.GetRequest(s.key, sendGridEndpoint, s.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(s.build(msg))

	res, err := sendgrid.API(req)
	if err != nil {
		return errors.Wrap(err, "sendgrid request")
	}

	if res.StatusCode >= http.StatusBadRequest {
		return errors.Wrap(ErrDeliveryFailed, fmt.Sprintf("sendgrid status %d: %s", res.StatusCode, res.Body))
	}

	return nil
}
