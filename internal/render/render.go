package render

import (
	"bytes"
	"fmt"
	"text/template"
)

// TemplateID names a registered message template.
type TemplateID string

const (
	TemplateRegistrationCode  TemplateID = "registration_code"
	TemplateLoginCode         TemplateID = "login_code"
	TemplatePasswordResetCode TemplateID = "password_reset_code"
	TemplateVerificationCode  TemplateID = "verification_code"
	TemplateMechanicAssigned  TemplateID = "mechanic_assigned"
	TemplateStatusChanged     TemplateID = "status_changed"
	TemplatePaymentReceived   TemplateID = "payment_received"
)

type templateDef struct {
	subject string
	body    string
}

var registry = map[TemplateID]templateDef{
	TemplateRegistrationCode: {
		subject: "Confirm your registration",
		body:    "Your RoadAssist registration code is {{.code}}. It expires in {{.ttl_minutes}} minutes.",
	},
	TemplateLoginCode: {
		subject: "Your login code",
		body:    "Your RoadAssist login code is {{.code}}. It expires in {{.ttl_minutes}} minutes. Never share this code.",
	},
	TemplatePasswordResetCode: {
		subject: "Password reset code",
		body:    "Your RoadAssist password reset code is {{.code}}. It expires in {{.ttl_minutes}} minutes. If you did not request a reset, ignore this message.",
	},
	TemplateVerificationCode: {
		subject: "Verification code",
		body:    "Your RoadAssist verification code is {{.code}}. It expires in {{.ttl_minutes}} minutes.",
	},
	TemplateMechanicAssigned: {
		subject: "Mechanic assigned",
		body:    "{{.mechanic_name}} is on the way to you. ETA {{.eta_minutes}} minutes. Vehicle: {{.vehicle}}.",
	},
	TemplateStatusChanged: {
		subject: "Request status update",
		body:    "Your request {{.request_id}} is now {{.status}}.",
	},
	TemplatePaymentReceived: {
		subject: "Payment received",
		body:    "We received your payment of {{.amount}} for request {{.request_id}}. Thank you!",
	},
}

// Renderer maps (template id, data) to a rendered message. It holds only
// parsed templates and is safe for concurrent use.
type Renderer struct {
	subjects map[TemplateID]*template.Template
	bodies   map[TemplateID]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{
		subjects: make(map[TemplateID]*template.Template, len(registry)),
		bodies:   make(map[TemplateID]*template.Template, len(registry)),
	}

	for id, def := range registry {
		subject, err := parse(string(id)+"_subject", def.subject)
		if err != nil {
			return nil, err
		}
		body, err := parse(string(id)+"_body", def.body)
		if err != nil {
			return nil, err
		}

		r.subjects[id] = subject
		r.bodies[id] = body
	}

	return r, nil
}

// Render executes the template with the given data. Missing keys render as
// empty strings rather than failing.
func (r *Renderer) Render(id TemplateID, data map[string]string) (subject string, body string, err error) {
	subjectTmpl, ok := r.subjects[id]
	if !ok {
		return "", "", fmt.Errorf("unknown template %q", id)
	}
	bodyTmpl := r.bodies[id]

	subject, err = execute(subjectTmpl, data)
	if err != nil {
		return "", "", err
	}

	body, err = execute(bodyTmpl, data)
	if err != nil {
		return "", "", err
	}

	return subject, body, nil
}

func parse(name, text string) (*template.Template, error) {
	t, err := template.New(name).Option("missingkey=zero").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template %s failed: %w", name, err)
	}
	return t, nil
}

func execute(t *template.Template, data map[string]string) (string, error) {
	if data == nil {
		data = map[string]string{}
	}

	buf := new(bytes.Buffer)
	if err := t.Execute(buf, data); err != nil {
		return "", fmt.Errorf("execute template %s failed: %w", t.Name(), err)
	}

	return buf.String(), nil
}
