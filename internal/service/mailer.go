package service

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"medibook/config"
	"medibook/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

// Dispatcher sends appointment notifications. Send reports success or
// failure only; callers treat false as telemetry, never as a reason to
// roll back a state transition.
type Dispatcher interface {
	Send(ctx context.Context, appointment *entity.Appointment) bool
}

// SMTPDispatcher delivers confirmation mail over plain SMTP with
// STARTTLS (the net/smtp default when the server advertises it).
type SMTPDispatcher struct {
	cfg config.MailConfig
	log *logrus.Logger
}

func NewSMTPDispatcher(cfg config.MailConfig, log *logrus.Logger) Dispatcher {
	if cfg.Host == "" || cfg.Username == "" || cfg.Password == "" {
		log.Warn("Mail not configured, appointment confirmations will not be sent")
		return &noopDispatcher{log: log}
	}
	return &SMTPDispatcher{cfg: cfg, log: log}
}

func (d *SMTPDispatcher) Send(ctx context.Context, appointment *entity.Appointment) bool {
	patient := appointment.Patient
	if patient.Email == "" {
		d.log.Warnf("Cannot send confirmation for appointment %s: patient email missing", appointment.ID)
		return false
	}

	msg := d.buildMessage(appointment)
	addr := fmt.Sprintf("%s:%s", d.cfg.Host, d.cfg.Port)
	auth := smtp.PlainAuth("", d.cfg.Username, d.cfg.Password, d.cfg.Host)

	// net/smtp has no context support; honour cancellation at least at
	// the entry point.
	select {
	case <-ctx.Done():
		d.log.Warnf("Confirmation for appointment %s skipped: %v", appointment.ID, ctx.Err())
		return false
	default:
	}

	if err := smtp.SendMail(addr, auth, d.cfg.Sender, []string{patient.Email}, msg); err != nil {
		d.log.Warnf("Failed to send confirmation for appointment %s: %+v", appointment.ID, err)
		return false
	}

	d.log.Infof("Confirmation email sent for appointment %s to %s", appointment.ID, patient.Email)
	return true
}

func (d *SMTPDispatcher) buildMessage(appointment *entity.Appointment) []byte {
	doctorName := "your doctor"
	if appointment.Doctor.User.Name != "" {
		doctorName = appointment.Doctor.User.Name
	}

	var body strings.Builder
	fmt.Fprintf(&body, "From: MediBook <%s>\r\n", d.cfg.Sender)
	fmt.Fprintf(&body, "To: %s\r\n", appointment.Patient.Email)
	body.WriteString("Subject: Appointment Confirmed - MediBook\r\n")
	body.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n")
	fmt.Fprintf(&body, "Dear %s,\r\n\r\n", appointment.Patient.Name)
	fmt.Fprintf(&body, "Your appointment with %s on %s has been confirmed.\r\n",
		doctorName, appointment.DateTime.Format("Monday, 2 January 2006 at 15:04"))
	if appointment.Type == entity.ConsultationOnline && appointment.MeetingLink != "" {
		fmt.Fprintf(&body, "\r\nJoin your online consultation here: %s\r\n", appointment.MeetingLink)
	}
	body.WriteString("\r\nThank you for using MediBook.\r\n")

	return []byte(body.String())
}

// noopDispatcher is used when mail is unconfigured; every send is a
// reported failure so operators see the warning.
type noopDispatcher struct {
	log *logrus.Logger
}

func (d *noopDispatcher) Send(_ context.Context, appointment *entity.Appointment) bool {
	d.log.Warnf("Mail disabled, confirmation for appointment %s not sent", appointment.ID)
	return false
}
