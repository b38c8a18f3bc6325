package authfront

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/nyaruka/phonenumbers"
)

// MobilePhonePattern is the regional mobile format the backend enforces:
// 01X-XXXX-XXXX.
const MobilePhonePattern = `^01[0-9]-\d{4}-\d{4}$`

const phoneRegion = "KR"

var mobilePhoneRegex = regexp.MustCompile(MobilePhonePattern)

// NormalizePhoneNumber reformats raw digit input into the canonical dashed
// form, e.g. "01012345678" becomes "010-1234-5678". Input that is not a bare
// 11-digit mobile number is run through the phone number library as a
// fallback (so "+82 10 1234 5678" also normalizes); anything unparseable is
// returned trimmed but otherwise untouched, and left for validation to
// reject.
func NormalizePhoneNumber(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	digits := stripNonDigits(trimmed)
	if len(digits) == 11 && strings.HasPrefix(digits, "01") {
		return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
	}

	if num, err := phonenumbers.Parse(trimmed, phoneRegion); err == nil && phonenumbers.IsValidNumber(num) {
		return phonenumbers.Format(num, phonenumbers.NATIONAL)
	}

	return trimmed
}

// ValidateMobileNumber applies the fixed regional format check. This is a
// pre-flight guard; the server remains authoritative.
func ValidateMobileNumber(phone string) error {
	return validation.Validate(phone,
		validation.Required,
		validation.Match(mobilePhoneRegex),
	)
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatValidationErrorToMap flattens an ozzo validation error into a
// field-to-message map for template rendering.
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	if errs, ok := err.(validation.Errors); ok {
		for field, ferr := range errs {
			if ferr != nil {
				out[field] = ferr.Error()
			}
		}
		return out
	}

	out["validation"] = err.Error()
	return out
}
