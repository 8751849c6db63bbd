package domain

import "github.com/shopspring/decimal"

// Product описывает продукт каталога. Справочные данные, не меняются во время работы.
type Product struct {
	ID           string
	Name         string
	Tagline      string
	ImageURL     string
	Badges       []string
	Category     Category
	Price        decimal.Decimal
	MonthlyPrice decimal.Decimal // цена подписки в месяц
	Rating       int
	ReviewCount  int
}
