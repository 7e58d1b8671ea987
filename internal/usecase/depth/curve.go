// Пакет depth превращает состояние площадки (стакан CEX или снимок пула DEX)
// в кривую глубины: сколько основной монеты торгуется между текущей ценой и
// целевой. Все построители — чистые функции над уже полученным снимком,
// сетевых вызовов здесь нет.
package depth

import "errors"

// Curve — кривая глубины: опорная цена снимка и чистая функция цена -> объём.
// Повторный вызов DepthAt с той же ценой обязан вернуть то же значение.
type Curve interface {
	Price() float64
	DepthAt(target float64) float64
}

// ErrNoLiquidity — стакан или пул пуст, кривую строить не из чего.
// Площадка должна пропустить такую пару/пул, а не падать целиком.
var ErrNoLiquidity = errors.New("нет ликвидности")
