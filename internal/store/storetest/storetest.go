// Package storetest provides a conformance suite that every implementation of
// the store interfaces must pass.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/qa-api/internal/domain"
	"github.com/phrazzld/qa-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a pair of empty stores. It is called once per subtest;
// any cleanup should be registered on t.
type Factory func(t *testing.T) store.Stores

// Options tunes the suite to a backend.
type Options struct {
	// InsertionOrder requires lists to come back in creation order.
	InsertionOrder bool
	// Concurrency is the number of goroutines used by the concurrent create
	// test. Zero skips the test.
	Concurrency int
}

var malformedIdentifiers = []string{
	"",
	"not-a-uuid",
	"1234",
	"zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz",
	"123e4567-e89b-12d3-a456-42661417400",
}

// Run executes the conformance suite against the stores built by newStores.
func Run(t *testing.T, newStores Factory, opts Options) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, s store.Stores, opts Options)
	}{
		{"CreateQuestionReturnsInput", testCreateQuestionReturnsInput},
		{"CreateQuestionAssignsUniqueIdentifiers", testCreateQuestionUniqueIdentifiers},
		{"ListQuestionsEmpty", testListQuestionsEmpty},
		{"ListQuestionsReturnsLiveRecords", testListQuestionsLiveRecords},
		{"CreatedAtNonDecreasing", testCreatedAtNonDecreasing},
		{"QuestionRoundTrip", testQuestionRoundTrip},
		{"QuestionScenario", testQuestionScenario},
		{"DeleteQuestionMalformed", testDeleteQuestionMalformed},
		{"DeleteQuestionUnknown", testDeleteQuestionUnknown},
		{"DeleteQuestionKeepsAnswers", testDeleteQuestionKeepsAnswers},
		{"AnswerScenario", testAnswerScenario},
		{"CreateAnswerMalformed", testCreateAnswerMalformed},
		{"ListAnswersFiltersByQuestion", testListAnswersFilters},
		{"ListAnswersMalformed", testListAnswersMalformed},
		{"ListAnswersUnknownQuestion", testListAnswersUnknownQuestion},
		{"DeleteAnswerMalformed", testDeleteAnswerMalformed},
		{"DeleteAnswerUnknown", testDeleteAnswerUnknown},
		{"CanonicalIdentifiers", testCanonicalIdentifiers},
		{"CancelledContext", testCancelledContext},
		{"ConcurrentCreates", testConcurrentCreates},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStores(t), opts)
		})
	}
}

func createQuestion(t *testing.T, s store.Stores, title, description string) domain.QuestionDetail {
	t.Helper()
	detail, err := s.Questions.Create(context.Background(), domain.Question{Title: title, Description: description})
	require.NoError(t, err)
	return detail
}

func createAnswer(t *testing.T, s store.Stores, questionUUID, content string) domain.AnswerDetail {
	t.Helper()
	detail, err := s.Answers.Create(context.Background(), domain.Answer{QuestionUUID: questionUUID, Content: content})
	require.NoError(t, err)
	return detail
}

func listQuestions(t *testing.T, s store.Stores) []domain.QuestionDetail {
	t.Helper()
	list, err := s.Questions.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list, "list must be non-nil")
	return list
}

func listAnswers(t *testing.T, s store.Stores, questionUUID string) []domain.AnswerDetail {
	t.Helper()
	list, err := s.Answers.ListByQuestion(context.Background(), questionUUID)
	require.NoError(t, err)
	require.NotNil(t, list, "list must be non-nil")
	return list
}

func questionIDs(list []domain.QuestionDetail) []string {
	ids := make([]string, len(list))
	for i, q := range list {
		ids[i] = q.QuestionUUID
	}
	return ids
}

func answerIDs(list []domain.AnswerDetail) []string {
	ids := make([]string, len(list))
	for i, a := range list {
		ids[i] = a.AnswerUUID
	}
	return ids
}

func testCreateQuestionReturnsInput(t *testing.T, s store.Stores, _ Options) {
	inputs := []domain.Question{
		{Title: "T", Description: "D"},
		{Title: "some_title", Description: ""},
		{Title: "  padded  ", Description: "multi\nline ünïcödé"},
	}

	for _, in := range inputs {
		detail := createQuestion(t, s, in.Title, in.Description)
		assert.Equal(t, in.Title, detail.Title)
		assert.Equal(t, in.Description, detail.Description)
		assert.False(t, detail.CreatedAt.IsZero(), "created_at must be assigned")
		_, err := uuid.Parse(detail.QuestionUUID)
		assert.NoError(t, err, "identifier must be a uuid")
	}
}

func testCreateQuestionUniqueIdentifiers(t *testing.T, s store.Stores, _ Options) {
	seen := make(map[string]bool)
	for i := 0; i < 25; i++ {
		detail := createQuestion(t, s, fmt.Sprintf("title %d", i), "d")
		assert.False(t, seen[detail.QuestionUUID], "duplicate identifier %s", detail.QuestionUUID)
		seen[detail.QuestionUUID] = true
	}
}

func testListQuestionsEmpty(t *testing.T, s store.Stores, _ Options) {
	assert.Empty(t, listQuestions(t, s))
}

func testListQuestionsLiveRecords(t *testing.T, s store.Stores, opts Options) {
	var created []string
	for i := 0; i < 5; i++ {
		created = append(created, createQuestion(t, s, fmt.Sprintf("q%d", i), "").QuestionUUID)
	}

	require.NoError(t, s.Questions.Delete(context.Background(), created[1]))
	require.NoError(t, s.Questions.Delete(context.Background(), created[3]))
	want := []string{created[0], created[2], created[4]}

	got := questionIDs(listQuestions(t, s))
	if opts.InsertionOrder {
		assert.Equal(t, want, got)
	} else {
		assert.ElementsMatch(t, want, got)
	}
}

func testCreatedAtNonDecreasing(t *testing.T, s store.Stores, _ Options) {
	for i := 0; i < 10; i++ {
		createQuestion(t, s, fmt.Sprintf("q%d", i), "")
	}

	list := listQuestions(t, s)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.Before(list[i-1].CreatedAt),
			"created_at went backwards at position %d", i)
	}
}

func testQuestionRoundTrip(t *testing.T, s store.Stores, _ Options) {
	created := createQuestion(t, s, "T", "D")

	matches := 0
	for _, q := range listQuestions(t, s) {
		if q.QuestionUUID == created.QuestionUUID {
			matches++
			assert.Equal(t, "T", q.Title)
			assert.Equal(t, "D", q.Description)
			assert.True(t, created.CreatedAt.Equal(q.CreatedAt), "created_at must round-trip")
		}
	}
	assert.Equal(t, 1, matches)

	require.NoError(t, s.Questions.Delete(context.Background(), created.QuestionUUID))
	assert.NotContains(t, questionIDs(listQuestions(t, s)), created.QuestionUUID)
}

func testQuestionScenario(t *testing.T, s store.Stores, _ Options) {
	assert.Empty(t, listQuestions(t, s))

	created := createQuestion(t, s, "some_title", "some description")
	assert.Equal(t, "some_title", created.Title)

	require.NoError(t, s.Questions.Delete(context.Background(), created.QuestionUUID))
	assert.Empty(t, listQuestions(t, s))
}

func testDeleteQuestionMalformed(t *testing.T, s store.Stores, _ Options) {
	existing := createQuestion(t, s, "keep", "me")

	for _, id := range malformedIdentifiers {
		err := s.Questions.Delete(context.Background(), id)
		require.Error(t, err, "identifier %q", id)
		assert.ErrorIs(t, err, store.ErrInvalidIdentifier)
		assert.Equal(t, store.KindInvalidIdentifier, store.KindOf(err))

		var invalid *store.InvalidIdentifierError
		if assert.ErrorAs(t, err, &invalid) {
			assert.Equal(t, id, invalid.Value)
		}
	}

	assert.Equal(t, []string{existing.QuestionUUID}, questionIDs(listQuestions(t, s)))
}

func testDeleteQuestionUnknown(t *testing.T, s store.Stores, _ Options) {
	existing := createQuestion(t, s, "keep", "me")
	before := listQuestions(t, s)

	err := s.Questions.Delete(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, store.ErrQuestionNotFound)
	assert.Equal(t, store.KindNotFound, store.KindOf(err))

	after := listQuestions(t, s)
	assert.Equal(t, questionIDs(before), questionIDs(after))
	assert.Contains(t, questionIDs(after), existing.QuestionUUID)

	// Deleting twice reports the second call as a miss.
	require.NoError(t, s.Questions.Delete(context.Background(), existing.QuestionUUID))
	assert.ErrorIs(t, s.Questions.Delete(context.Background(), existing.QuestionUUID), store.ErrNotFound)
}

func testDeleteQuestionKeepsAnswers(t *testing.T, s store.Stores, _ Options) {
	question := createQuestion(t, s, "parent", "")
	answer := createAnswer(t, s, question.QuestionUUID, "orphan to be")

	require.NoError(t, s.Questions.Delete(context.Background(), question.QuestionUUID))

	assert.Equal(t, []string{answer.AnswerUUID}, answerIDs(listAnswers(t, s, question.QuestionUUID)))
}

func testAnswerScenario(t *testing.T, s store.Stores, _ Options) {
	questionUUID := uuid.NewString()

	created := createAnswer(t, s, questionUUID, "some answer")
	assert.Equal(t, questionUUID, created.QuestionUUID)
	assert.Equal(t, "some answer", created.Content)
	assert.False(t, created.CreatedAt.IsZero())
	_, err := uuid.Parse(created.AnswerUUID)
	assert.NoError(t, err)

	require.NoError(t, s.Answers.Delete(context.Background(), created.AnswerUUID))
	assert.Empty(t, listAnswers(t, s, questionUUID))
}

func testCreateAnswerMalformed(t *testing.T, s store.Stores, _ Options) {
	question := createQuestion(t, s, "q", "")

	for _, id := range malformedIdentifiers {
		_, err := s.Answers.Create(context.Background(), domain.Answer{QuestionUUID: id, Content: "lost"})
		assert.ErrorIs(t, err, store.ErrInvalidIdentifier, "identifier %q", id)
	}

	assert.Empty(t, listAnswers(t, s, question.QuestionUUID))
}

func testListAnswersFilters(t *testing.T, s store.Stores, opts Options) {
	first := createQuestion(t, s, "first", "")
	second := createQuestion(t, s, "second", "")

	a1 := createAnswer(t, s, first.QuestionUUID, "a1")
	b1 := createAnswer(t, s, second.QuestionUUID, "b1")
	a2 := createAnswer(t, s, first.QuestionUUID, "a2")

	gotFirst := answerIDs(listAnswers(t, s, first.QuestionUUID))
	gotSecond := answerIDs(listAnswers(t, s, second.QuestionUUID))

	if opts.InsertionOrder {
		assert.Equal(t, []string{a1.AnswerUUID, a2.AnswerUUID}, gotFirst)
	} else {
		assert.ElementsMatch(t, []string{a1.AnswerUUID, a2.AnswerUUID}, gotFirst)
	}
	assert.Equal(t, []string{b1.AnswerUUID}, gotSecond)
}

func testListAnswersMalformed(t *testing.T, s store.Stores, _ Options) {
	_, err := s.Answers.ListByQuestion(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, store.ErrInvalidIdentifier)
}

func testListAnswersUnknownQuestion(t *testing.T, s store.Stores, _ Options) {
	createAnswer(t, s, uuid.NewString(), "elsewhere")
	assert.Empty(t, listAnswers(t, s, uuid.NewString()))
}

func testDeleteAnswerMalformed(t *testing.T, s store.Stores, _ Options) {
	questionUUID := uuid.NewString()
	existing := createAnswer(t, s, questionUUID, "keep")

	for _, id := range malformedIdentifiers {
		assert.ErrorIs(t, s.Answers.Delete(context.Background(), id), store.ErrInvalidIdentifier, "identifier %q", id)
	}

	assert.Equal(t, []string{existing.AnswerUUID}, answerIDs(listAnswers(t, s, questionUUID)))
}

func testDeleteAnswerUnknown(t *testing.T, s store.Stores, _ Options) {
	questionUUID := uuid.NewString()
	existing := createAnswer(t, s, questionUUID, "keep")

	err := s.Answers.Delete(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, store.ErrAnswerNotFound)

	assert.Equal(t, []string{existing.AnswerUUID}, answerIDs(listAnswers(t, s, questionUUID)))
}

// Identifiers are accepted in any form uuid.Parse understands and are always
// returned in canonical lowercase form.
func testCanonicalIdentifiers(t *testing.T, s store.Stores, _ Options) {
	id := uuid.New()
	upper := "{" + strings.ToUpper(id.String()) + "}"

	answer := createAnswer(t, s, upper, "braced")
	assert.Equal(t, id.String(), answer.QuestionUUID)
	assert.Equal(t, []string{answer.AnswerUUID}, answerIDs(listAnswers(t, s, id.String())))

	question := createQuestion(t, s, "q", "")
	parsed := uuid.MustParse(question.QuestionUUID)
	require.NoError(t, s.Questions.Delete(context.Background(), "urn:uuid:"+parsed.String()))
	assert.Empty(t, listQuestions(t, s))
}

func testCancelledContext(t *testing.T, s store.Stores, _ Options) {
	existing := createQuestion(t, s, "keep", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Questions.Create(ctx, domain.Question{Title: "late"})
	assertOther(t, err)

	_, err = s.Questions.List(ctx)
	assertOther(t, err)

	err = s.Questions.Delete(ctx, existing.QuestionUUID)
	assertOther(t, err)

	_, err = s.Answers.Create(ctx, domain.Answer{QuestionUUID: existing.QuestionUUID, Content: "late"})
	assertOther(t, err)

	assert.Equal(t, []string{existing.QuestionUUID}, questionIDs(listQuestions(t, s)))
}

func assertOther(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrOther)
	assert.Equal(t, store.KindOther, store.KindOf(err))
	assert.False(t, errors.Is(err, context.Canceled), "engine errors must not leak")
}

func testConcurrentCreates(t *testing.T, s store.Stores, opts Options) {
	if opts.Concurrency == 0 {
		t.Skip("backend does not run the concurrent create test")
	}

	questionUUID := uuid.NewString()
	var wg sync.WaitGroup
	errs := make(chan error, opts.Concurrency*2)

	for i := 0; i < opts.Concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := s.Questions.Create(context.Background(), domain.Question{Title: fmt.Sprintf("q%d", i)}); err != nil {
				errs <- err
			}
			if _, err := s.Answers.Create(context.Background(), domain.Answer{QuestionUUID: questionUUID, Content: "a"}); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent create failed: %v", err)
	}

	assert.Len(t, listQuestions(t, s), opts.Concurrency)
	assert.Len(t, listAnswers(t, s, questionUUID), opts.Concurrency)
}
