package format

import (
	"fmt"
	"math"
	"strings"
)

// FloatRU возвращает строку в формате "100.000.000,00".
// Глубина дальних уровней бывает астрономической — такие значения печатаем
// в экспоненциальной записи, чтобы не раздувать таблицу.
func FloatRU(v float64) string {
	if math.Abs(v) >= 1e15 {
		return fmt.Sprintf("%.3e", v)
	}

	// Сначала печатаем строго 5 знаков
	s := fmt.Sprintf("%.5f", v)
	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}

	// Убираем лишние нули справа, но оставляем хотя бы один знак
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		frac = "0"
	}

	// Форматируем целую часть с разделителями тысяч
	var out []byte
	cnt := 0
	for i := len(intPart) - 1; i >= 0; i-- {
		out = append(out, intPart[i])
		cnt++
		if cnt%3 == 0 && i != 0 {
			out = append(out, '.')
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return string(out) + "," + frac
}

// Pct печатает относительное смещение цены: "+5%" / "-10%"
func Pct(off float64) string {
	return fmt.Sprintf("%+.0f%%", off*100)
}
