package practicum

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"homework_bot/internal/apperr"
)

// Response - проверенный ответ API. Гарантировано только поле homeworks.
type Response map[string]any

// CheckResponse требует JSON объект со списком в "homeworks".
// Элементы списка не проверяются.
func CheckResponse(raw any) (Response, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, apperr.Schema("check response", fmt.Errorf("response is %T, not an object", raw))
	}
	hw, ok := m["homeworks"]
	if !ok {
		return nil, apperr.Schema("check response", errors.New(`no "homeworks" key in response`))
	}
	if _, ok := hw.([]any); !ok {
		return nil, apperr.Schema("check response", fmt.Errorf(`"homeworks" is %T, not a list`, hw))
	}
	return Response(m), nil
}

func (r Response) Homeworks() []any {
	hw, _ := r["homeworks"].([]any)
	return hw
}

// CurrentDate возвращает метку времени сервера для следующего запроса.
func (r Response) CurrentDate() (int64, bool) {
	switch v := r["current_date"].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return floatToUnix(f)
	case float64:
		return floatToUnix(v)
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

// floatToUnix принимает только целые значения, помещающиеся в int64
func floatToUnix(f float64) (int64, bool) {
	if f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
