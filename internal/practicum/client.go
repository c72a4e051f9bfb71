package practicum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"homework_bot/internal/apperr"
	"homework_bot/internal/config"
)

// Client ходит в API статусов домашних работ
type Client struct {
	HTTP     *http.Client
	endpoint string
	token    string
	log      zerolog.Logger
}

func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	return &Client{
		HTTP:     &http.Client{Timeout: cfg.RequestTimeout},
		endpoint: cfg.Endpoint,
		token:    cfg.PracticumToken,
		log:      log.With().Str("component", "practicum").Logger(),
	}
}

// GetStatus запрашивает статусы, изменившиеся после from, и возвращает JSON как есть.
func (c *Client) GetStatus(ctx context.Context, from int64) (any, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, apperr.API("build request", err)
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(from, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, apperr.API("build request", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.log.Error().Err(err).Msg("Получили ошибку при запросе")
		return nil, apperr.API("request failed", err)
	}
	defer resp.Body.Close()
	c.log.Debug().Int("status", resp.StatusCode).Msg("Получили ответ от API Практикума")

	if resp.StatusCode != http.StatusOK {
		c.log.Error().Int("status", resp.StatusCode).Msg("Мы получили плохой ответ")
		return nil, apperr.API("bad response", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		c.log.Error().Err(err).Msg("Не удалось разобрать ответ API")
		return nil, apperr.API("decode response", err)
	}
	if dec.More() {
		err := errors.New("trailing data after JSON value")
		c.log.Error().Err(err).Msg("Не удалось разобрать ответ API")
		return nil, apperr.API("decode response", err)
	}
	return body, nil
}
