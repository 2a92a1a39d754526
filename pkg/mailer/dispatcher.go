package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hexagonal-users/pkg/mailer/templates"
)

// Outcome tells the consumer what to do with a delivery.
type Outcome int

const (
	Ack     Outcome = iota
	Requeue         // transient failure, try again later
	Drop            // payload can never succeed
)

func (o Outcome) String() string {
	switch o {
	case Ack:
		return "ack"
	case Requeue:
		return "requeue"
	default:
		return "drop"
	}
}

var ErrBadJob = errors.New("bad email job")

// Dispatcher renders queued jobs and hands them to a Sender.
type Dispatcher struct {
	Sender Sender
	Logger *logrus.Logger
}

// Handle processes one raw queue message.
func (d *Dispatcher) Handle(ctx context.Context, body []byte) Outcome {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		d.Logger.WithError(err).Warn("bad message")
		return Drop
	}
	subject, text, html, err := Prepare(job)
	if err != nil {
		d.Logger.WithError(err).WithField("template", job.Template).Warn("cannot prepare email")
		return Drop
	}
	if err := d.Sender.Send(ctx, job.To, subject, text, html); err != nil {
		d.Logger.WithError(err).WithField("template", job.Template).Error("send failed")
		return Requeue
	}
	d.Logger.WithField("template", job.Template).Info("email sent")
	return Ack
}

// Prepare resolves the subject and bodies of a job, rendering its template if set.
func Prepare(job EmailJob) (subject, text, html string, err error) {
	if strings.TrimSpace(job.To) == "" {
		return "", "", "", fmt.Errorf("%w: missing recipient", ErrBadJob)
	}
	if job.Template != "" {
		s, t, h, err := templates.Render(job.Template, job.Data)
		if err != nil {
			return "", "", "", fmt.Errorf("%w: %v", ErrBadJob, err)
		}
		return strings.TrimSpace(s), t, h, nil
	}
	if job.Subject == "" || (job.Text == "" && job.HTML == "") {
		return "", "", "", fmt.Errorf("%w: either template or subject with text/html is required", ErrBadJob)
	}
	return job.Subject, job.Text, job.HTML, nil
}
