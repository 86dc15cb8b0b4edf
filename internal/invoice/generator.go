// Package invoice генерация номеров счетов для бронирований
package invoice

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Формат номеров счетов
const (
	datePrefixFormat = "20060102"

	// MaxRetries максимальное число перегенераций при коллизии номера
	// Дата-зависимый формат несёт случайный трёхзначный суффикс,
	// вероятность коллизии ~1/1000 в пределах одного дня
	MaxRetries = 3
)

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Generator генерирует номера счетов вида INV-YYYYMMDD-NNN
// Уникальность гарантируется уникальным индексом в хранилище:
// при нарушении вызывающая сторона перегенерирует номер (до MaxRetries раз)
//
// Один экземпляр разделяется всеми обработчиками, *rand.Rand сам по себе
// не потокобезопасен - доступ к нему сериализуется мьютексом
type Generator struct {
	timeProvider TimeProvider

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator создает генератор с источником случайности от текущего времени
func NewGenerator() *Generator {
	return &Generator{
		timeProvider: &RealTimeProvider{},
		rnd:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewGeneratorWithSource создает генератор с фиксированными зависимостями (для тестов)
func NewGeneratorWithSource(tp TimeProvider, seed int64) *Generator {
	return &Generator{
		timeProvider: tp,
		rnd:          rand.New(rand.NewSource(seed)),
	}
}

// Next возвращает номер счета, привязанный к текущей дате: INV-YYYYMMDD-NNN
func (g *Generator) Next() string {
	date := g.timeProvider.Now().Format(datePrefixFormat)

	g.mu.Lock()
	suffix := g.rnd.Intn(1000)
	g.mu.Unlock()

	return fmt.Sprintf("INV-%s-%03d", date, suffix)
}

// FormatSequence возвращает номер счета из сквозной последовательности: INV-NNNNNN
// Используется там, где последовательность ведёт само хранилище
func FormatSequence(seq int64) string {
	return fmt.Sprintf("INV-%06d", seq)
}
