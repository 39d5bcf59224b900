package mailer

import (
	"fmt"

	"lms/models"
	courseModels "lms/models/course"
)

// CertificateNotifier turns issued certificates into email messages and hands
// them to the dispatcher. Satisfies certificate.Notifier.
type CertificateNotifier struct {
	dispatcher   *Dispatcher
	platformName string
	baseURL      string
}

// NewCertificateNotifier creates the email collaborator for the issuance
// engine.
func NewCertificateNotifier(d *Dispatcher, platformName, baseURL string) *CertificateNotifier {
	return &CertificateNotifier{
		dispatcher:   d,
		platformName: platformName,
		baseURL:      baseURL,
	}
}

// NotifyCertificateIssued enqueues the congratulation email with the rendered
// PDF attached. Fire-and-forget: the issuer does not see delivery results.
func (n *CertificateNotifier) NotifyCertificateIssued(user models.User, course courseModels.Course, cert courseModels.Certificate, pdf []byte) {
	verifyURL := fmt.Sprintf("%s/certificates/verify/%s", n.baseURL, cert.CertificateID)

	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Congratulations! You have successfully completed <strong>%s</strong>.</p>
		<p>Your certificate is attached to this email. Anyone can confirm its
		authenticity at the link below:</p>
		<p><a href="%s">%s</a></p>
		<div class="info-box">Certificate ID: %s</div>`,
		user.Name, course.Title, verifyURL, verifyURL, cert.CertificateID)

	msg := Message{
		ToName:   user.Name,
		ToEmail:  user.Email,
		Subject:  fmt.Sprintf("Your certificate for %s", course.Title),
		HTMLBody: wrapEmailTemplate(n.platformName, "Your Certificate is Ready!", body),
	}
	if len(pdf) > 0 {
		msg.Attachments = []Attachment{{
			Filename:    fmt.Sprintf("certificate_%s.pdf", cert.CertificateID),
			ContentType: "application/pdf",
			Data:        pdf,
		}}
	}

	n.dispatcher.Enqueue(msg)
}

// wrapEmailTemplate wraps body content in the platform HTML email shell.
func wrapEmailTemplate(platformName, title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #294767; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #294767; line-height: 1.6; }
			.content h2 { color: #294767; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #294767; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				You are receiving this email because you completed a course on %s.
			</div>
		</div>
	</body>
	</html>
	`, platformName, title, bodyContent, platformName)
}
