package user_usecases

import (
	"atmsecurity.io/entities"
	"atmsecurity.io/infrastructure/env"
	"atmsecurity.io/infrastructure/logger"
	"atmsecurity.io/infrastructure/messaging/emails"
)

// sendEmail delivers a registration email. Registration never fails because
// an email could not be sent.
func sendEmail(to string, subject string, template string, opts map[string]any) {
	if !env.Settings.SendRegistrationEmails {
		return
	}
	if !emails.EmailService.SendEmail(to, subject, template, opts) {
		logger.Warning("registration email was not delivered", logger.LoggerOptions{
			Key:  "template",
			Data: template,
		})
	}
}

func sendWelcomeEmail(user *entities.User) {
	sendEmail(user.Email, "Welcome to "+env.Settings.SiteName, "welcome", map[string]any{
		"SiteName":  env.Settings.SiteName,
		"FirstName": user.FirstName,
		"Username":  user.Username,
		"HasFace":   user.HasFaceEncoding(),
	})
}

func sendCredentialsEmail(user *entities.User, password string) {
	sendEmail(user.Email, "Your "+env.Settings.SiteName+" account", "credentials", map[string]any{
		"SiteName":  env.Settings.SiteName,
		"FirstName": user.FirstName,
		"Username":  user.Username,
		"Password":  password,
	})
}
