// Package phone нормализация клиентских номеров телефона к международному формату.
package phone

import (
	"errors"
	"strings"
)

const (
	minDigits = 10
	maxDigits = 15

	// localTrunkPrefix префикс локального формата ("0501234567")
	localTrunkPrefix = "0"
)

var (
	// ErrTooShort возвращается, когда в номере меньше 10 цифр
	ErrTooShort = errors.New("phone: number has too few digits")

	// ErrTooLong возвращается, когда в номере больше 15 цифр
	ErrTooLong = errors.New("phone: number has too many digits")
)

// Normalize приводит номер к виду "+<цифры>":
//   - отбрасывает все символы, кроме цифр;
//   - требует от 10 до 15 цифр;
//   - локальный формат из 10 цифр с ведущим нулем дополняется кодом страны
//     ("0501234567" + "380" -> "+380501234567").
func Normalize(raw string, countryCode string) (string, error) {
	digits := stripNonDigits(raw)

	if len(digits) < minDigits {
		return "", ErrTooShort
	}
	if len(digits) > maxDigits {
		return "", ErrTooLong
	}

	if len(digits) == minDigits && strings.HasPrefix(digits, localTrunkPrefix) {
		digits = countryCode + digits[len(localTrunkPrefix):]
	}

	return "+" + digits, nil
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
