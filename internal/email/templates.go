package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

const passwordResetSubject = "Reset Your SprintIndex Password"

var passwordResetHTML = htmltemplate.Must(htmltemplate.New("passwordResetHTML").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; background-color: #f9f9f9; margin: 0; padding: 0; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; background-color: #ffffff; border-radius: 8px; }
        .header { text-align: center; padding: 20px 0; border-bottom: 2px solid #FF8C00; }
        .logo { font-size: 28px; font-weight: bold; }
        .index { color: #FF8C00; }
        .content { padding: 30px 0; }
        .button-container { text-align: center; margin: 30px 0; }
        .reset-button { display: inline-block; background-color: #FF8C00; color: white; padding: 14px 40px; text-decoration: none; border-radius: 6px; font-weight: bold; }
        .expiry-notice { background-color: #f0f0f0; padding: 15px; border-radius: 4px; text-align: center; font-size: 14px; color: #666; margin: 20px 0; }
        .warning { background-color: #fff3cd; border-left: 4px solid #ffc107; padding: 15px; margin: 20px 0; border-radius: 4px; }
        .link-text { font-size: 12px; color: #0066cc; word-break: break-all; background-color: #f5f5f5; padding: 10px; border-radius: 4px; font-family: monospace; }
        .footer { text-align: center; color: #999; font-size: 12px; margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="logo">Sprint<span class="index">Index</span></div>
        </div>
        <div class="content">
            <h2 style="margin-top: 0;">Reset Your Password</h2>
            <p>Hello,</p>
            <p>We received a request to reset your password for your SprintIndex account. Click the button below to create a new password:</p>
            <div class="button-container">
                <a href="{{.ResetURL}}" class="reset-button">Reset Password</a>
            </div>
            <div class="expiry-notice">This link will expire in 1 hour</div>
            <p style="font-size: 14px; color: #666;">If the button above doesn't work, copy and paste this link in your browser:</p>
            <div class="link-text">{{.ResetURL}}</div>
            <div class="warning">
                <strong>Didn't request a password reset?</strong><br>
                If you didn't request this, please ignore this email or contact our support team if you have concerns about your account security.
            </div>
            <p>Best regards,<br><strong>The SprintIndex Team</strong></p>
        </div>
        <div class="footer">
            <p>This is an automated message, please do not reply to this email.</p>
            <p>Questions? Contact support@sprintindex.com</p>
        </div>
    </div>
</body>
</html>
`))

var passwordResetText = texttemplate.Must(texttemplate.New("passwordResetText").Parse(`Reset Your Password

Hello,

We received a request to reset your password for your SprintIndex account. Click the link below to create a new password:

{{.ResetURL}}

This link will expire in 1 hour.

Didn't request a password reset?
If you didn't request this, please ignore this email or contact our support team if you have concerns about your account security.

Best regards,
The SprintIndex Team

---
This is an automated message, please do not reply to this email.
Questions? Contact support@sprintindex.com
`))

type passwordResetData struct {
	ResetURL string
}

func renderPasswordReset(resetURL string) (html, plain string, err error) {
	data := passwordResetData{ResetURL: resetURL}

	var htmlBuf bytes.Buffer
	if err := passwordResetHTML.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to render html body: %w", err)
	}
	var textBuf bytes.Buffer
	if err := passwordResetText.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to render text body: %w", err)
	}
	return htmlBuf.String(), textBuf.String(), nil
}
