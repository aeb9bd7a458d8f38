package importer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dish-quiz/internal/domain"
	"dish-quiz/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockQuestionRepository struct {
	mock.Mock
	saved []domain.Question
}

func (m *MockQuestionRepository) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) CountQuestions(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockQuestionRepository) SaveQuestion(ctx context.Context, question *domain.Question) error {
	args := m.Called(ctx, question)
	if args.Error(0) == nil {
		m.saved = append(m.saved, *question)
	}
	return args.Error(0)
}

func (m *MockQuestionRepository) DeleteAllQuestions(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// inlineTx runs the unit of work directly and records whether it failed.
type inlineTx struct {
	calls  int
	failed bool
}

func (tx *inlineTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	err := fn(ctx)
	tx.failed = err != nil
	return err
}

var sampleRows = [][]string{
	{"question", "options", "correct_answer", "explanation"},
	{"Where was Butter Chicken invented?", "Delhi | Lahore|Mumbai", "Delhi", "Moti Mahal, 1950s."},
	{"", "", "", ""},
	{"Broken row", "Only one", "Only one", ""},
	{"Which city gave us Pizza Margherita?", "Rome|Naples|Milan", "Naples", ""},
	{"Wrong answer row", "A|B", "C"},
}

func TestParseRow(t *testing.T) {
	q, err := ParseRow([]string{" What? ", "a | b |  | c", "b", " why "})
	require.NoError(t, err)
	assert.Equal(t, "What?", q.Text)
	assert.Equal(t, []string{"a", "b", "c"}, q.Options)
	assert.Equal(t, "b", q.CorrectOption)
	assert.Equal(t, "why", q.Explanation)
	assert.Equal(t, 1, q.CorrectIndex())

	_, err = ParseRow([]string{"Short row"})
	assert.Error(t, err)

	_, err = ParseRow([]string{"Dupes", "a|a", "a"})
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInvalidQuestion, domainErr.Code)
}

func TestImport_AppendsAfterExistingQuestions(t *testing.T) {
	repo := new(MockQuestionRepository)
	repo.On("CountQuestions", mock.Anything).Return(10, nil)
	repo.On("SaveQuestion", mock.Anything, mock.Anything).Return(nil)
	tx := &inlineTx{}

	result, err := New(repo, tx).Import(context.Background(), sampleRows, Config{})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Processed)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.Errors, 2)
	assert.True(t, strings.HasPrefix(result.Errors[0], "Row 4:"))
	assert.True(t, strings.HasPrefix(result.Errors[1], "Row 6:"))

	require.Len(t, repo.saved, 2)
	assert.Equal(t, 11, repo.saved[0].Position)
	assert.Equal(t, []string{"Delhi", "Lahore", "Mumbai"}, repo.saved[0].Options)
	assert.Equal(t, 12, repo.saved[1].Position)
	assert.Equal(t, 1, tx.calls)
	repo.AssertNotCalled(t, "DeleteAllQuestions", mock.Anything)
}

func TestImport_Replace(t *testing.T) {
	repo := new(MockQuestionRepository)
	repo.On("DeleteAllQuestions", mock.Anything).Return(nil)
	repo.On("SaveQuestion", mock.Anything, mock.Anything).Return(nil)

	result, err := New(repo, &inlineTx{}).Import(context.Background(), sampleRows, Config{Replace: true})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, repo.saved[0].Position)
	assert.Equal(t, 2, repo.saved[1].Position)
	repo.AssertCalled(t, "DeleteAllQuestions", mock.Anything)
	repo.AssertNotCalled(t, "CountQuestions", mock.Anything)
}

func TestImport_SaveFailureRollsBack(t *testing.T) {
	repo := new(MockQuestionRepository)
	repo.On("CountQuestions", mock.Anything).Return(0, nil)
	repo.On("SaveQuestion", mock.Anything, mock.Anything).Return(errors.New("disk full"))
	tx := &inlineTx{}

	result, err := New(repo, tx).Import(context.Background(), sampleRows, Config{})
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.True(t, tx.failed)
}

func TestImport_NothingValid(t *testing.T) {
	repo := new(MockQuestionRepository)
	tx := &inlineTx{}

	result, err := New(repo, tx).Import(context.Background(), sampleRows[:1], Config{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 0, tx.calls)
}

func TestImport_StartRow(t *testing.T) {
	repo := new(MockQuestionRepository)
	repo.On("CountQuestions", mock.Anything).Return(0, nil)
	repo.On("SaveQuestion", mock.Anything, mock.Anything).Return(nil)

	result, err := New(repo, &inlineTx{}).Import(context.Background(), sampleRows[1:], Config{StartRow: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
}

func TestReadCSV(t *testing.T) {
	doc := "question,options,correct_answer,explanation\n" +
		"\"Tacos, where from?\",Mexico|Spain,Mexico,\"Corn tortillas, pre-Hispanic.\"\n" +
		"Short,row\n"

	rows, err := ReadCSV(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Tacos, where from?", rows[1][0])
	assert.Equal(t, "Corn tortillas, pre-Hispanic.", rows[1][3])
	assert.Len(t, rows[2], 2)
}

func TestWorkbookRoundTrip(t *testing.T) {
	bank, err := repository.DefaultQuestions()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, bank))

	rows, err := ReadWorkbook(bytes.NewReader(buf.Bytes()), "")
	require.NoError(t, err)
	require.Len(t, rows, len(bank)+1)
	assert.Equal(t, header, rows[0])

	for i, q := range bank {
		parsed, err := ParseRow(rows[i+1])
		require.NoError(t, err)
		assert.Equal(t, q.Text, parsed.Text)
		assert.Equal(t, q.Options, parsed.Options)
		assert.Equal(t, q.CorrectOption, parsed.CorrectOption)
	}
}

func TestReadWorkbook_MissingSheet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, nil))

	_, err := ReadWorkbook(bytes.NewReader(buf.Bytes()), "NoSuchSheet")
	assert.Error(t, err)
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "bank.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("question,options,correct_answer\nQ1,a|b,a\n"), 0o644))

	repo := new(MockQuestionRepository)
	repo.On("CountQuestions", mock.Anything).Return(0, nil)
	repo.On("SaveQuestion", mock.Anything, mock.Anything).Return(nil)
	im := New(repo, &inlineTx{})

	result, err := im.ImportFile(context.Background(), Config{FilePath: csvPath})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)

	txtPath := filepath.Join(dir, "bank.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("x"), 0o644))
	_, err = im.ImportFile(context.Background(), Config{FilePath: txtPath})
	assert.ErrorContains(t, err, "unsupported")

	_, err = im.ImportFile(context.Background(), Config{FilePath: filepath.Join(dir, "missing.xlsx")})
	assert.Error(t, err)
}
