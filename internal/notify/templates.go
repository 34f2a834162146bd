package notify

import "fmt"

// Template subjects for the two lifecycle messages.
const (
	SubjectCodeIssued    = "Email Verification - Documount Scholarship Program"
	SubjectDocumentReady = "Your Hall Ticket is Ready - Documount Scholarship Program"
)

// CodeIssuedBody renders the one-time-code mail, greeting the applicant by
// display name.
func CodeIssuedBody(name, code string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; background:#f4f6f9; padding:20px;">
  <div style="max-width:600px;margin:auto;background:white;border-radius:8px;border:1px solid #ddd;padding:20px;">
    <h2 style="color:#003366;text-align:center;">Documount Scholarship Verification</h2>
    <p>Dear <b>%s</b>,</p>
    <p>Your One-Time Password (OTP) for email verification is:</p>
    <div style="font-size:24px;font-weight:bold;color:#0066cc;text-align:center;">%s</div>
    <p>This OTP will expire in 10 minutes. Please do not share it with anyone.</p>
    <hr>
    <p style="font-size:13px;color:#777;text-align:center;">Documount Technologies Pvt Ltd | Hyderabad, Telangana</p>
  </div>
</div>`, name, code)
}

// DocumentReadyBody renders the hall-ticket-issued mail.
func DocumentReadyBody(name, ticketID, documentURL string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; background:#f4f6f9; padding:20px;">
  <div style="max-width:600px;margin:auto;background:white;border-radius:8px;border:1px solid #ddd;padding:20px;">
    <h2 style="color:#003366;text-align:center;">Documount Scholarship Program</h2>
    <p>Dear <b>%s</b>,</p>
    <p>Your payment was received and your Hall Ticket <b>%s</b> has been issued.</p>
    <p style="text-align:center;"><a href="%s" style="color:#0066cc;font-weight:bold;">Download your Hall Ticket</a></p>
    <p>Please bring a valid photo ID and this Hall Ticket to the examination center.</p>
    <hr>
    <p style="font-size:13px;color:#777;text-align:center;">Documount Technologies Pvt Ltd | Hyderabad, Telangana</p>
  </div>
</div>`, name, ticketID, documentURL)
}
