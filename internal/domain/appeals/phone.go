package appeals

import "regexp"

// Узбекский мобильный номер: 998 + код оператора 9x + 7 цифр.
const countryPrefix = "998"

var (
	nonDigitRe   = regexp.MustCompile(`\D`)
	cleanPhoneRe = regexp.MustCompile(`^9989\d{8}$`)
)

// CleanPhone убирает из номера всё, кроме цифр.
func CleanPhone(raw string) string {
	return nonDigitRe.ReplaceAllString(raw, "")
}

// ValidatePhoneClean проверяет уже очищенный номер (только цифры).
func ValidatePhoneClean(digits string) bool {
	return cleanPhoneRe.MatchString(digits)
}

// NormalizePhone чистит произвольный ввод и приводит его к виду +998XXXXXXXXX.
// Национальный номер без кода страны (9 цифр) дополняется префиксом —
// Telegram в contact-share иногда отдаёт номер без кода.
func NormalizePhone(raw string) (string, bool) {
	digits := CleanPhone(raw)
	if len(digits) == 9 {
		digits = countryPrefix + digits
	}
	if !ValidatePhoneClean(digits) {
		return "", false
	}
	return "+" + digits, true
}
