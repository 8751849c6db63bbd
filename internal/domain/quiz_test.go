package domain

import (
	"testing"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionsFixture() []Question {
	return []Question{
		{ID: "driver_type", Options: []Option{{Value: "daily"}, {Value: "fleet"}, {Value: "ev"}}},
		{ID: "vehicle_age", Options: []Option{{Value: "new"}, {Value: "mature"}, {Value: "classic"}}},
		{ID: "primary_concern", Options: []Option{{Value: "safety"}, {Value: "maintenance"}, {Value: "battery"}}},
	}
}

func answerAll(t *testing.T, q *Quiz, values ...string) {
	t.Helper()
	for i, v := range values {
		done, err := q.Answer(v)
		require.NoError(t, err)
		assert.Equal(t, i == len(values)-1, done)
	}
}

func TestQuizStepsThroughQuestions(t *testing.T) {
	q := NewQuiz(questionsFixture())

	current, ok := q.Current()
	require.True(t, ok)
	assert.Equal(t, "driver_type", current.ID)

	done, err := q.Answer("fleet")
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 1, q.Step())
	assert.Equal(t, QuizAsking, q.Status())

	done, err = q.Answer("new")
	require.NoError(t, err)
	assert.False(t, done)

	done, err = q.Answer("safety")
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, QuizAnalyzing, q.Status())
	assert.Equal(t, 2, q.Step())
	assert.Equal(t, Answers{"driver_type": "fleet", "vehicle_age": "new", "primary_concern": "safety"}, q.Answers())

	_, ok = q.Current()
	assert.False(t, ok)
}

func TestQuizRejectsUnknownOption(t *testing.T) {
	q := NewQuiz(questionsFixture())

	_, err := q.Answer("submarine")
	require.ErrorIs(t, err, e.ErrUnknownOption)
	assert.Equal(t, 0, q.Step())
	assert.Empty(t, q.Answers())
}

func TestQuizNoInputWhileAnalyzing(t *testing.T) {
	q := NewQuiz(questionsFixture())
	answerAll(t, q, "ev", "new", "battery")

	_, err := q.Answer("daily")
	require.ErrorIs(t, err, e.ErrQuizBusy)

	require.ErrorIs(t, q.Restart(), e.ErrQuizNotDone)
}

func TestQuizResolveIgnoresStaleRun(t *testing.T) {
	q := NewQuiz(questionsFixture())
	answerAll(t, q, "ev", "new", "battery")
	run := q.Run()

	assert.False(t, q.Resolve(run+1, Recommendation{ProductID: "x"}))
	assert.Equal(t, QuizAnalyzing, q.Status())

	assert.True(t, q.Resolve(run, Recommendation{ProductID: "ev-battery-suite"}))
	rec, ok := q.Recommendation()
	require.True(t, ok)
	assert.Equal(t, "ev-battery-suite", rec.ProductID)

	assert.False(t, q.Resolve(run, Recommendation{ProductID: "again"}))

	_, err := q.Answer("daily")
	require.ErrorIs(t, err, e.ErrQuizFinished)
}

func TestQuizRestartClearsAnswers(t *testing.T) {
	q := NewQuiz(questionsFixture())
	answerAll(t, q, "daily", "classic", "maintenance")
	require.True(t, q.Resolve(q.Run(), Recommendation{ProductID: "astra-ai-coach"}))

	require.NoError(t, q.Restart())

	assert.Equal(t, QuizAsking, q.Status())
	assert.Equal(t, 0, q.Step())
	assert.Empty(t, q.Answers())
	_, ok := q.Recommendation()
	assert.False(t, ok)

	current, ok := q.Current()
	require.True(t, ok)
	assert.Equal(t, "driver_type", current.ID)
}
