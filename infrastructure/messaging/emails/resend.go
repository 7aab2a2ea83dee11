package emails

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"os"

	"atmsecurity.io/infrastructure/env"
	"atmsecurity.io/infrastructure/logger"
	"github.com/resend/resend-go/v2"
)

//go:embed templates/*.html
var bundledTemplates embed.FS

// ResendService delivers html emails through resend. Templates are read from
// TemplateDir when it is set, otherwise from the copies built into the binary.
type ResendService struct {
	TemplateDir string
}

func (rs *ResendService) templates() fs.FS {
	if rs.TemplateDir != "" {
		return os.DirFS(rs.TemplateDir)
	}
	sub, _ := fs.Sub(bundledTemplates, "templates")
	return sub
}

// SendEmail renders <templateName>.html with opts and sends it. Failures are
// logged and reported as false.
func (rs *ResendService) SendEmail(toEmail string, subject string, templateName string, opts interface{}) bool {
	if env.Settings.ResendAPIKey == "" {
		logger.Warning("resend api key missing, skipping email", logger.LoggerOptions{
			Key:  "templateName",
			Data: templateName,
		})
		return false
	}

	html := rs.loadTemplates(templateName, opts)
	if html == nil {
		return false
	}

	client := resend.NewClient(env.Settings.ResendAPIKey)
	sent, err := client.Emails.Send(&resend.SendEmailRequest{
		From:    env.Settings.ResendDefaultEmail,
		To:      []string{toEmail},
		Subject: subject,
		Html:    *html,
	})
	if err != nil {
		logger.Error("resend rejected the email", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "templateName",
			Data: templateName,
		})
		return false
	}
	logger.Info("email sent", logger.LoggerOptions{
		Key:  "emailID",
		Data: sent.Id,
	}, logger.LoggerOptions{
		Key:  "templateName",
		Data: templateName,
	})
	return true
}

func (rs *ResendService) loadTemplates(templateName string, opts interface{}) *string {
	tmpl, err := template.ParseFS(rs.templates(), templateName+".html")
	if err != nil {
		logger.Error("email template could not be parsed", logger.LoggerOptions{
			Key:  "templateName",
			Data: templateName,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil
	}
	var out bytes.Buffer
	if err := tmpl.Execute(&out, opts); err != nil {
		logger.Error("email template could not be rendered", logger.LoggerOptions{
			Key:  "templateName",
			Data: templateName,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil
	}
	rendered := out.String()
	return &rendered
}
