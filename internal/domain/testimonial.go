package domain

// Testimonial описывает отзыв клиента для карусели на главной.
type Testimonial struct {
	ID     string
	Author string
	Role   string
	Quote  string
	Rating int
}
