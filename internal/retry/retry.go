package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy описывает политику повторов: жесткая граница по числу попыток
// и экспоненциальная задержка между ними.
type Policy struct {
	MaxAttempts int           // всего попыток, включая первую
	BaseDelay   time.Duration // начальная задержка
	MaxDelay    time.Duration // потолок задержки (0 - по умолчанию backoff)
}

// Do выполняет op до первого успеха или исчерпания попыток.
// op получает номер текущей попытки, начиная с 1; любой возвращенный
// не-nil error считается неудачей попытки. После последней неудачной
// попытки возвращается ее ошибка - четвертой попытки не бывает.
func Do(ctx context.Context, p Policy, op func(attempt int) error) error {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}

	b := backoff.NewExponentialBackOff()
	if p.BaseDelay > 0 {
		b.InitialInterval = p.BaseDelay
	}
	if p.MaxDelay > 0 {
		b.MaxInterval = p.MaxDelay
	}
	// Ограничиваемся только числом попыток, не временем.
	b.MaxElapsedTime = 0

	attempt := 0
	operation := func() error {
		attempt++
		return op(attempt)
	}

	return backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, uint64(p.MaxAttempts-1)), ctx))
}
