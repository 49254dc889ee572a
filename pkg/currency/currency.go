// Package currency formatea montos decimales con las reglas de moneda de go-money.
package currency

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Default moneda usada cuando el código está vacío.
const Default = "USD"

// Normalize devuelve el código ISO en mayúsculas, o Default si está vacío.
func Normalize(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Default
	}
	return code
}

// IsKnown indica si go-money conoce el código.
func IsKnown(code string) bool {
	return money.GetCurrency(Normalize(code)) != nil
}

// Format representa amount en la moneda dada (ej. "$1,234.50"), redondeando a la fracción de la moneda.
func Format(amount decimal.Decimal, code string) string {
	cur := *money.New(0, Normalize(code)).Currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
