package mailer

import (
	"github.com/oksasatya/go-recipe-profile/internal/domain/entity"
	"github.com/oksasatya/go-recipe-profile/pkg/mailer/templates"
)

// EmailJob is a rendered message ready for Mailgun. Text is the fallback
// when HTML is empty.
type EmailJob struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Text     string `json:"text,omitempty"`
	HTML     string `json:"html,omitempty"`
	Template string `json:"template,omitempty"`
}

// ProfileUpdatedJob renders the profile_updated mail for ev.
func ProfileUpdatedJob(appName string, ev entity.ProfileEvent) (EmailJob, error) {
	data := templates.ProfileUpdatedData{
		AppName:  appName,
		Username: ev.Username,
		Email:    ev.Email,
		Changes:  ev.Changes,
		TimeAt:   ev.OccurredAt,
	}
	subject, text, html, err := templates.Render(templates.ProfileUpdated, data)
	if err != nil {
		return EmailJob{}, err
	}
	return EmailJob{To: ev.Email, Subject: subject, Text: text, HTML: html, Template: templates.ProfileUpdated}, nil
}
