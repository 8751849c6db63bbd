package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

type QuizHandler struct {
	quizUsecase usecase.QuizUC
	logger      logger.Logger
}

func NewQuizHandler(quizUsecase usecase.QuizUC, logger logger.Logger) *QuizHandler {
	return &QuizHandler{quizUsecase: quizUsecase, logger: logger}
}

// startQuiz
//
//	@Summary		Открыть квиз
//	@Description	Открывает квиз с первого вопроса; уже открытый квиз возвращается как есть
//	@Tags			quiz
//	@Produce		json
//	@Success		200	{object}	QuizResponse
//	@Router			/quiz [post]
func (h *QuizHandler) startQuiz(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK)(h.quizUsecase.StartQuiz(r.Context(), sessionID(r)))
}

// getQuiz
//
//	@Summary		Состояние квиза
//	@Description	Клиент опрашивает, пока status = analyzing
//	@Tags			quiz
//	@Produce		json
//	@Success		200	{object}	QuizResponse
//	@Failure		404	{object}	ErrorResponse	"Квиз не открыт"
//	@Router			/quiz [get]
func (h *QuizHandler) getQuiz(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK)(h.quizUsecase.GetQuiz(r.Context(), sessionID(r)))
}

// answer
//
//	@Summary		Ответ на текущий вопрос
//	@Description	Ответ на последний вопрос переводит квиз в analyzing
//	@Tags			quiz
//	@Accept			json
//	@Produce		json
//	@Param			body	body		AnswerRequest	true	"Значение варианта"
//	@Success		200		{object}	QuizResponse
//	@Failure		400		{object}	ErrorResponse	"Неизвестный вариант"
//	@Failure		409		{object}	ErrorResponse	"Квиз анализируется или завершён"
//	@Router			/quiz/answers [post]
func (h *QuizHandler) answer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}
	if req.Value == "" {
		WriteError(w, e.Wrap("value", e.ErrMissingFields))
		return
	}

	h.respond(w, r, http.StatusOK)(h.quizUsecase.Answer(r.Context(), usecase.NewAnswerReq(sessionID(r), req.Value)))
}

// restart
//
//	@Summary	Пройти квиз заново
//	@Tags		quiz
//	@Produce	json
//	@Success	200	{object}	QuizResponse
//	@Failure	409	{object}	ErrorResponse	"Квиз ещё не завершён"
//	@Router		/quiz/restart [post]
func (h *QuizHandler) restart(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK)(h.quizUsecase.Restart(r.Context(), sessionID(r)))
}

// closeQuiz
//
//	@Summary		Закрыть квиз
//	@Description	Закрывает квиз в любом состоянии; незавершённый анализ отбрасывается
//	@Tags			quiz
//	@Success		204
//	@Router			/quiz [delete]
func (h *QuizHandler) closeQuiz(w http.ResponseWriter, r *http.Request) {
	if err := h.quizUsecase.CloseQuiz(r.Context(), sessionID(r)); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *QuizHandler) respond(w http.ResponseWriter, r *http.Request, status int) func(*usecase.QuizView, error) {
	return func(view *usecase.QuizView, err error) {
		if err != nil {
			h.logger.Warnf("%s %s: %s", r.Method, r.URL.Path, err.Error())
			WriteError(w, err)
			return
		}

		WriteSuccess(w, status, toQuizResponse(view))
	}
}
