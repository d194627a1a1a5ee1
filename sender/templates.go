package sender

import (
	"fmt"
	"strings"
)

// Shared HTML shell for outbound mail.
func wrapEmailHTML(intro, label, code, expiry string) string {
	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #faf5f3; margin: 0; padding: 0; }
        .container { max-width: 600px; margin: 50px auto; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); overflow: hidden; }
        .header { background: linear-gradient(135deg, #c94b7c 0%%, #8e44ad 100%%); padding: 30px; text-align: center; color: white; }
        .header h1 { margin: 0; font-size: 28px; }
        .content { padding: 30px; color: #333; }
        .content p { font-size: 16px; line-height: 1.6; margin: 10px 0; }
        .code-box { background-color: #f8f9fa; border-left: 4px solid #c94b7c; padding: 20px; margin: 30px 0; border-radius: 4px; }
        .code-box .label { font-size: 12px; color: #666; text-transform: uppercase; letter-spacing: 1px; margin-bottom: 10px; }
        .code-box .code { font-size: 32px; font-weight: bold; color: #c94b7c; letter-spacing: 4px; text-align: center; font-family: 'Courier New', monospace; }
        .footer { background-color: #faf5f3; padding: 20px; text-align: center; font-size: 12px; color: #999; border-top: 1px solid #e0e0e0; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Roopshree</h1>
        </div>
        <div class="content">
            <p>Hello,</p>
            <p>%s</p>
            <div class="code-box">
                <div class="label">%s</div>
                <div class="code">%s</div>
            </div>
            <p>This code will expire in <strong>%s</strong>.</p>
            <p>Never share this code with anyone. Roopshree staff will never ask for it.</p>
            <p>Best regards,<br><strong>The Roopshree Team</strong></p>
        </div>
        <div class="footer">
            <p>This is an automated message, please do not reply directly to this email.</p>
        </div>
    </div>
</body>
</html>
`, intro, label, code, expiry)
	return strings.TrimSpace(html)
}

// BuildDeliveryOtpEmail renders the delivery-confirmation mail sent to the
// customer when their delivery agent requests a handover code.
func BuildDeliveryOtpEmail(code string) (subject, body string) {
	subject = "Delivery Confirmation Code - Roopshree"
	body = wrapEmailHTML(
		"Your order is out for delivery. Share the code below with your delivery agent <strong>only at handover</strong> to confirm you received it:",
		"Your Delivery Code",
		code,
		"5 minutes",
	)
	return subject, body
}

// BuildVerificationEmail renders the signup email-verification mail.
func BuildVerificationEmail(code string) (subject, body string) {
	subject = "Email Verification - Roopshree"
	body = wrapEmailHTML(
		"Thank you for creating an account with <strong>Roopshree</strong>. To complete your registration, please verify your email address using the code below:",
		"Your Verification Code",
		code,
		"15 minutes",
	)
	return subject, body
}
