package e

import "fmt"

var (
	// Внутренние ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// Ошибки каталога
	ErrCatalogEmpty        = fmt.Errorf("catalog has no products")
	ErrNoQuestions         = fmt.Errorf("catalog has no quiz questions")
	ErrDuplicateProductID  = fmt.Errorf("duplicate product id")
	ErrDuplicateQuestionID = fmt.Errorf("duplicate question id")
	ErrQuestionNoOptions   = fmt.Errorf("question has no options")

	// Ошибки сервиса рекомендаций (никогда не показываются пользователю)
	ErrRecommenderNotConfigured = fmt.Errorf("recommendation service is not configured")
	ErrEmptyRecommendation      = fmt.Errorf("empty response from recommendation service")
	ErrMalformedRecommendation  = fmt.Errorf("malformed recommendation response")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")
	ErrInvalidCategory  = fmt.Errorf("invalid category")
	ErrInvalidPrice     = fmt.Errorf("invalid price")
	ErrMissingFields    = fmt.Errorf("missing required fields")
	ErrUnknownOption    = fmt.Errorf("unknown quiz option")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")
	ErrSessionNotFound = fmt.Errorf("session not found")
	ErrQuizNotStarted  = fmt.Errorf("quiz is not started")

	// 409 Conflict
	ErrQuizBusy     = fmt.Errorf("recommendation is being prepared")
	ErrQuizFinished = fmt.Errorf("quiz is already finished")
	ErrQuizNotDone  = fmt.Errorf("quiz is not finished yet")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
