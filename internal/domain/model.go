package domain

import "context"

// Базовые доменные сущности

// Market — торговая пара на CEX: основная монета и валюта котировки.
// Неизменяемое значение, сравнивается по полям, используется как ключ.
type Market struct {
	Major string
	Minor string
}

func (m Market) String() string { return m.Major + "/" + m.Minor }

// OrderBook — сырой стакан: цена -> объём в основной монете.
// Строится заново на каждый запрос и после построения не меняется.
type OrderBook struct {
	Bids map[float64]float64
	Asks map[float64]float64
}

// Параметры запроса стаканов
type Config struct {
	Limit   int `json:"limit"`
	DelayMS int `json:"delay_ms"`
}

// Контракт адаптера биржи: отдаёт уже разобранный стакан по паре.
// Вся специфика эндпоинтов и форматов полей остаётся внутри адаптера.
type BookSource interface {
	Name() string
	FetchOrderBook(ctx context.Context, m Market) (*OrderBook, error)
}
