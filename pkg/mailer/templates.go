package mailer

import "fmt"

// Render produces the subject and plain-text body for a named template.
// Unknown templates fall back to the job's raw subject/text.
func Render(job EmailJob) (subject, text string) {
	get := func(k string) string {
		if job.Data == nil {
			return ""
		}
		v, _ := job.Data[k].(string)
		return v
	}

	switch job.Template {
	case "welcome":
		return "Welcome to ClassTalk",
			fmt.Sprintf("Welcome to ClassTalk. Your account has been created with email id: %s", get("email"))
	case "verify_otp":
		return "Account Verification OTP",
			fmt.Sprintf("Your OTP is %s. Verify your account using this code.", get("code"))
	case "reset_otp":
		return "Password Reset OTP",
			fmt.Sprintf("Your OTP is %s. Reset your password using this code.", get("code"))
	default:
		return job.Subject, job.Text
	}
}
