package domain

import "github.com/DRSN-tech/storefront/pkg/e"

// DriverTypeQuestionID — вопрос, по которому работает локальный fallback.
const DriverTypeQuestionID = "driver_type"

type Option struct {
	Label string
	Value string
}

// Question — вопрос квиза со взаимоисключающими вариантами ответа.
type Question struct {
	ID      string
	Text    string
	Options []Option
}

// HasOption сообщает, есть ли у вопроса вариант со значением value.
func (q Question) HasOption(value string) bool {
	for _, o := range q.Options {
		if o.Value == value {
			return true
		}
	}

	return false
}

// Answers — ответы квиза: id вопроса -> выбранное значение.
type Answers map[string]string

func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}

	return out
}

type QuizStatus string

const (
	QuizAsking    QuizStatus = "asking"
	QuizAnalyzing QuizStatus = "analyzing"
	QuizDone      QuizStatus = "done"
)

// Quiz — конечный автомат квиза: asking(step) -> analyzing -> done, restart из done в asking(0).
// Run увеличивается при каждом переходе в analyzing, чтобы отбрасывать запоздавшие результаты.
type Quiz struct {
	questions      []Question
	step           int
	answers        Answers
	status         QuizStatus
	run            uint64
	recommendation *Recommendation
}

func NewQuiz(questions []Question) *Quiz {
	return &Quiz{
		questions: questions,
		answers:   Answers{},
		status:    QuizAsking,
	}
}

func (q *Quiz) Status() QuizStatus { return q.status }
func (q *Quiz) Step() int          { return q.step }
func (q *Quiz) Total() int         { return len(q.questions) }
func (q *Quiz) Run() uint64        { return q.run }
func (q *Quiz) Answers() Answers   { return q.answers.Clone() }

// Recommendation возвращает рекомендацию в состоянии done.
func (q *Quiz) Recommendation() (Recommendation, bool) {
	if q.status != QuizDone || q.recommendation == nil {
		return Recommendation{}, false
	}

	return *q.recommendation, true
}

// Current возвращает текущий вопрос, если квиз в состоянии asking.
func (q *Quiz) Current() (Question, bool) {
	if q.status != QuizAsking || q.step >= len(q.questions) {
		return Question{}, false
	}

	return q.questions[q.step], true
}

// Answer записывает ответ на текущий вопрос и продвигает квиз.
// Возвращает true, если это был последний вопрос и квиз перешёл в analyzing.
func (q *Quiz) Answer(value string) (bool, error) {
	switch q.status {
	case QuizAnalyzing:
		return false, e.ErrQuizBusy
	case QuizDone:
		return false, e.ErrQuizFinished
	}

	question, ok := q.Current()
	if !ok {
		return false, e.ErrQuizFinished
	}

	if !question.HasOption(value) {
		return false, e.Wrap(question.ID, e.ErrUnknownOption)
	}

	q.answers[question.ID] = value

	if q.step < len(q.questions)-1 {
		q.step++
		return false, nil
	}

	q.status = QuizAnalyzing
	q.run++
	return true, nil
}

// Resolve переводит квиз из analyzing в done. Результат чужого запуска игнорируется.
func (q *Quiz) Resolve(run uint64, rec Recommendation) bool {
	if q.status != QuizAnalyzing || q.run != run {
		return false
	}

	q.recommendation = &rec
	q.status = QuizDone
	return true
}

// Restart возвращает квиз к первому вопросу и очищает ответы. Доступен только из done.
func (q *Quiz) Restart() error {
	if q.status != QuizDone {
		return e.ErrQuizNotDone
	}

	q.step = 0
	q.answers = Answers{}
	q.recommendation = nil
	q.status = QuizAsking
	return nil
}
