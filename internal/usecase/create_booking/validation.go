package create_booking

import (
	"regexp"
	"time"

	"github.com/WingorOsnova/BarbershopPP/internal/domain"
	"github.com/WingorOsnova/BarbershopPP/internal/phone"
)

// Сообщения об ошибках по полям (как в клиентской форме)
const (
	msgNameRequired    = "Введите ваше имя, чтобы мы смогли подтвердить запись."
	msgPhoneRequired   = "Укажите номер телефона для связи."
	msgPhoneInvalid    = "Укажите корректный номер телефона (от 10 до 15 цифр)."
	msgEmailInvalid    = "Введите корректный email или оставьте поле пустым."
	msgBarberRequired  = "Выберите барбера, к которому хотите записаться."
	msgServiceRequired = "Выберите услугу, которую хотите получить."
	msgDateRequired    = "Укажите дату визита."
	msgDateInPast      = "Нельзя записаться на прошедшую дату."
	msgTimeRequired    = "Укажите удобное время."
	msgTimeInvalid     = "Введите время в корректном формате."
	msgNameTooLong     = "Имя слишком длинное."
	msgMessageTooLong  = "Сообщение слишком длинное."
)

// emailPattern грубая проверка формы "что-то@домен.зона", без RFC-экзотики
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// validateRequest проверяет обязательные поля, нормализует телефон и валидирует
// дату и время запроса. Возвращает нормализованный телефон и ошибки по полям.
// Ошибки собираются по всем полям сразу, чтобы клиент увидел полный список.
func validateRequest(req *Request, now time.Time, countryCode string) (string, *ValidationError) {
	verr := newValidationError()

	if req.ClientName == "" {
		verr.add("client_name", msgNameRequired)
	} else if len(req.ClientName) > domain.MaxClientNameLength {
		verr.add("client_name", msgNameTooLong)
	}

	normalizedPhone := ""
	if req.ClientPhone == "" {
		verr.add("client_phone", msgPhoneRequired)
	} else {
		var err error
		normalizedPhone, err = phone.Normalize(req.ClientPhone, countryCode)
		if err != nil {
			verr.add("client_phone", msgPhoneInvalid)
		}
	}

	if req.ClientEmail != nil && *req.ClientEmail != "" && !emailPattern.MatchString(*req.ClientEmail) {
		verr.add("client_email", msgEmailInvalid)
	}

	if req.BarberID <= 0 {
		verr.add("barber", msgBarberRequired)
	}

	if req.ServiceID <= 0 {
		verr.add("service", msgServiceRequired)
	}

	if req.Date.IsZero() {
		verr.add("booking_date", msgDateRequired)
	} else if domain.IsDateInPast(req.Date, now) {
		verr.add("booking_date", msgDateInPast)
	}

	if req.Time.IsZero() {
		verr.add("booking_time", msgTimeRequired)
	} else if err := req.Time.Validate(); err != nil {
		verr.add("booking_time", msgTimeInvalid)
	}

	if req.Message != nil && len(*req.Message) > domain.MaxMessageLength {
		verr.add("message", msgMessageTooLong)
	}

	if verr.hasErrors() {
		return "", verr
	}
	return normalizedPhone, nil
}
