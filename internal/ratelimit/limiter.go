// Package ratelimit ограничение частоты запросов на создание бронирования.
//
// Счетчики эфемерные (только в памяти процесса): фиксированное окно на каждую
// клиентскую идентичность (IP-адрес или аутентифицированный пользователь).
// Текущее время передается явно, чтобы лимитер был тестируемым без sleep'ов.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter лимитер с фиксированным окном на идентичность
type Limiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	counters map[string]*counter
}

type counter struct {
	count       int
	windowStart time.Time
}

// New создает лимитер: не более limit запросов за window на одну идентичность
func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:    limit,
		window:   window,
		counters: make(map[string]*counter),
	}
}

// Allow возвращает true, если запрос от identity укладывается в лимит,
// и учитывает его в счетчике текущего окна. Просроченные окна перезапускаются.
func (l *Limiter) Allow(identity string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.counters[identity]
	if !ok || now.Sub(c.windowStart) >= l.window {
		l.counters[identity] = &counter{count: 1, windowStart: now}
		return true
	}

	if c.count >= l.limit {
		return false
	}
	c.count++
	return true
}

// Reset очищает все счетчики (для тестов и ручного сброса)
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counters = make(map[string]*counter)
}

// Cleanup удаляет счетчики с истекшими окнами, чтобы карта не росла бесконечно
func (l *Limiter) Cleanup(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for identity, c := range l.counters {
		if now.Sub(c.windowStart) >= l.window {
			delete(l.counters, identity)
		}
	}
}
