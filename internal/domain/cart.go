package domain

import "github.com/shopspring/decimal"

// CartItem — позиция корзины: продукт и его количество (всегда >= 1).
type CartItem struct {
	Product  Product
	Quantity int
}

// Cart хранит позиции в порядке добавления, не более одной позиции на продукт.
type Cart struct {
	items []CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

// Add добавляет продукт. Если продукт уже в корзине, его количество увеличивается на 1.
func (c *Cart) Add(product Product) CartItem {
	for i := range c.items {
		if c.items[i].Product.ID == product.ID {
			c.items[i] = CartItem{Product: product, Quantity: c.items[i].Quantity + 1}
			return c.items[i]
		}
	}

	item := CartItem{Product: product, Quantity: 1}
	c.items = append(c.items, item)
	return item
}

// Remove удаляет позицию целиком. Отсутствующий id — не ошибка, возвращается false.
func (c *Cart) Remove(productID string) bool {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}

	return false
}

// Items возвращает копию позиций в порядке добавления.
func (c *Cart) Items() []CartItem {
	items := make([]CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// Count — сумма количеств по всем позициям.
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}

	return count
}

// Subtotal — сумма price * quantity по всем позициям. Валюта у всех продуктов одна.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total
}
