package utils

import (
	"booking_manager/config"
	"booking_manager/model"
	"bytes"
	"fmt"
	"html/template"
	"io"

	"gopkg.in/gomail.v2"
)

const ticketEmailHTML = `
<html>
  <body style="font-family:sans-serif">
    <h2>You're in! 🎉</h2>
    <p>Hi {{.CustomerName}}, your booking for <b>{{.EventName}}</b> is confirmed.</p>
    <p>
      Reference number: <b>{{.ReferenceNumber}}</b><br>
      Ticket: {{.TicketLabel}} × {{.TicketCount}}<br>
      Amount paid: ₹{{.TotalAmount}}
    </p>
    <p>Show the attached QR code at the entrance.</p>
    <p><a href="{{.DetailLink}}">View your booking</a></p>
  </body>
</html>`

const failureEmailHTML = `
<html>
  <body style="font-family:sans-serif">
    <h2>Payment failed</h2>
    <p>Hi {{.CustomerName}}, your payment for <b>{{.EventName}}</b> did not go through.</p>
    {{if .Reason}}<p>Gateway message: {{.Reason}}</p>{{end}}
    <p>Your invite code <b>{{.InviteCode}}</b> becomes reusable a few minutes
    after the failed attempt, so you can simply book again.</p>
  </body>
</html>`

var (
	ticketTmpl  = template.Must(template.New("ticket").Parse(ticketEmailHTML))
	failureTmpl = template.Must(template.New("failure").Parse(failureEmailHTML))
)

// Mailer sends ticket and payment-failure emails over SMTP.
type Mailer struct {
	cfg config.App
}

func NewMailer(cfg config.App) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) SendTicket(b model.Booking) error {
	ticketType, _ := model.TicketTypeByName(b.TicketType)
	label := ticketType.Label
	if label == "" {
		label = b.TicketType
	}

	var body bytes.Buffer
	err := ticketTmpl.Execute(&body, map[string]interface{}{
		"CustomerName":    b.CustomerName,
		"EventName":       m.cfg.EventName,
		"ReferenceNumber": b.ReferenceNumber,
		"TicketLabel":     label,
		"TicketCount":     b.TicketCount,
		"TotalAmount":     b.TotalAmount.StringFixed(2),
		"DetailLink":      fmt.Sprintf("%s/%s/booking/%s", m.cfg.AppURL, m.cfg.EventSlug(), b.ID),
	})
	if err != nil {
		return err
	}

	qr, err := TicketQR(b.ReferenceNumber)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SMTPFrom)
	msg.SetHeader("To", b.CustomerEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Your ticket for %s — %s", m.cfg.EventName, b.ReferenceNumber))
	msg.SetBody("text/html", body.String())
	msg.Attach("ticket-qr.png", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(qr)
		return err
	}))

	return m.dial().DialAndSend(msg)
}

func (m *Mailer) SendPaymentFailed(b model.Booking, reason string) error {
	var body bytes.Buffer
	err := failureTmpl.Execute(&body, map[string]interface{}{
		"CustomerName": b.CustomerName,
		"EventName":    m.cfg.EventName,
		"InviteCode":   b.InviteCode,
		"Reason":       reason,
	})
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SMTPFrom)
	msg.SetHeader("To", b.CustomerEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Payment failed for %s", m.cfg.EventName))
	msg.SetBody("text/html", body.String())

	return m.dial().DialAndSend(msg)
}

func (m *Mailer) dial() *gomail.Dialer {
	return gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUsername, m.cfg.SMTPPassword)
}
