package practicum

import (
	"errors"
	"fmt"

	"homework_bot/internal/apperr"
)

type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

var verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Verdict возвращает фразу для известного статуса.
func Verdict(s Status) (string, bool) {
	v, ok := verdicts[s]
	return v, ok
}

// ParseStatus собирает сообщение для чата по одной записи о работе.
func ParseStatus(record any) (string, error) {
	hw, ok := record.(map[string]any)
	if !ok {
		return "", apperr.Data("parse status", fmt.Errorf("homework is %T, not an object", record))
	}

	name, ok := hw["homework_name"]
	if !ok || name == nil {
		return "", apperr.Data("parse status", errors.New(`no "homework_name" in homework`))
	}

	raw, ok := hw["status"]
	if !ok || raw == nil {
		return "", apperr.Data("parse status", errors.New(`no "status" in homework`))
	}
	status, _ := raw.(string)
	verdict, ok := Verdict(Status(status))
	if !ok {
		return "", apperr.Data("parse status", fmt.Errorf("unknown homework status %v", raw))
	}

	return fmt.Sprintf("Изменился статус проверки работы \"%v\". %s", name, verdict), nil
}
