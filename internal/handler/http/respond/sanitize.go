package respond

import (
	"regexp"
)

var (
	// user:password@ in postgres, mongodb and elasticsearch URLs
	dsnPasswordPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)

	// key=value passwords in libpq style DSNs
	kvPasswordPattern = regexp.MustCompile(`(?i)(password|passwd|pwd)=([^\s&]+)`)

	// bearer tokens echoed back in error messages
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+`)
)

// SanitizeError returns the error message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dsnPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = kvPasswordPattern.ReplaceAllString(msg, "$1=****")
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")
	return msg
}
