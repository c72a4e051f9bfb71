package poller

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"homework_bot/internal/apperr"
	"homework_bot/internal/config"
	"homework_bot/internal/practicum"
)

const failurePrefix = "Сбой в работе программы: "

// Fetcher возвращает сырой ответ API со статусами, изменившимися после from.
type Fetcher interface {
	GetStatus(ctx context.Context, from int64) (any, error)
}

// Notifier доставляет сообщение; ошибки отправки вызывающему не видны.
type Notifier interface {
	Notify(text string)
}

type Poller struct {
	fetcher  Fetcher
	notifier Notifier
	log      zerolog.Logger
	schedule cron.Schedule
	now      func() time.Time
	cursor   int64
}

type Option func(*Poller)

// WithSchedule заменяет расписание с фиксированным периодом.
func WithSchedule(s cron.Schedule) Option {
	return func(p *Poller) { p.schedule = s }
}

func WithClock(now func() time.Time) Option {
	return func(p *Poller) { p.now = now }
}

// WithCursor задаёт начальный from_date вместо текущего времени.
func WithCursor(ts int64) Option {
	return func(p *Poller) { p.cursor = ts }
}

func New(cfg *config.Config, f Fetcher, n Notifier, log zerolog.Logger, opts ...Option) *Poller {
	p := &Poller{
		fetcher:  f,
		notifier: n,
		log:      log.With().Str("component", "poller").Logger(),
		schedule: cron.Every(cfg.RetryPeriod),
		now:      time.Now,
		cursor:   -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.cursor < 0 {
		p.cursor = p.now().Unix()
	}
	return p
}

func (p *Poller) Cursor() int64 { return p.cursor }

// Run повторяет цикл опроса до отмены ctx. Пауза между циклами одинакова
// после успеха и после ошибки.
func (p *Poller) Run(ctx context.Context) error {
	p.log.Debug().Int64("from_date", p.cursor).Msg("Запуск бота")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		_ = p.Cycle(ctx)

		now := p.now()
		wait := p.schedule.Next(now).Sub(now)
		p.log.Debug().Dur("wait", wait).Msg("Засыпаем до следующей проверки")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			p.log.Debug().Msg("Остановка опроса")
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Cycle выполняет один цикл: запрос, проверка, уведомление. Ошибка цикла
// отправляется в чат и возвращается вызывающему.
func (p *Poller) Cycle(ctx context.Context) error {
	err := p.cycle(ctx)
	if err != nil {
		p.report(ctx, err)
	}
	return err
}

func (p *Poller) cycle(ctx context.Context) error {
	raw, err := p.fetcher.GetStatus(ctx, p.cursor)
	if err != nil {
		return err
	}

	resp, err := practicum.CheckResponse(raw)
	if err != nil {
		return err
	}

	// Сообщаем только о самой свежей работе
	if homeworks := resp.Homeworks(); len(homeworks) > 0 {
		text, err := practicum.ParseStatus(homeworks[0])
		if err != nil {
			return err
		}
		p.notifier.Notify(text)
	} else {
		p.log.Debug().Msg("Новых статусов нет")
	}

	if ts, ok := resp.CurrentDate(); ok {
		p.cursor = ts
	} else {
		p.log.Warn().Interface("current_date", resp["current_date"]).Msg("В ответе нет current_date, курсор не изменён")
	}
	return nil
}

func (p *Poller) report(ctx context.Context, err error) {
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		p.log.Debug().Err(err).Msg("Цикл прерван остановкой")
		return
	}

	kind := apperr.KindOf(err)
	var msg string
	switch kind {
	case apperr.KindAPI:
		msg = "Ошибка запроса к API"
	case apperr.KindSchema:
		msg = "Неожиданная структура ответа API"
	case apperr.KindData:
		msg = "Неправильное наполнение словаря с результатами ДЗ"
	case apperr.KindNotify:
		// уже залогировано ботом, повторная отправка зациклится
		return
	default:
		msg = "Сбой в работе программы"
	}
	p.log.Error().Err(err).Stringer("kind", kind).Msg(msg)

	p.notifier.Notify(failurePrefix + err.Error())
}
