package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"dish-quiz/internal/domain"
	"dish-quiz/internal/logger"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// OptionSeparator splits the options cell into individual options
const OptionSeparator = "|"

var header = []string{"question", "options", "correct_answer", "explanation"}

// Config defines one import run
type Config struct {
	FilePath string // .xlsx or .csv
	Sheet    string // workbook sheet, defaults to the first sheet
	StartRow int    // 1-based first data row, defaults to 2
	Replace  bool   // soft-delete the current bank before importing
}

// Result holds the outcome of an import
type Result struct {
	Processed int
	Imported  int
	Skipped   int
	Errors    []string
}

// Importer loads question rows from spreadsheets into the repository
type Importer struct {
	repo domain.QuestionRepository
	tx   domain.TransactionManager
}

func New(repo domain.QuestionRepository, tx domain.TransactionManager) *Importer {
	return &Importer{repo: repo, tx: tx}
}

// ImportFile reads cfg.FilePath and imports its rows
func (im *Importer) ImportFile(ctx context.Context, cfg Config) (*Result, error) {
	f, err := os.Open(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	var rows [][]string
	switch strings.ToLower(filepath.Ext(cfg.FilePath)) {
	case ".csv":
		rows, err = ReadCSV(f)
	case ".xlsx", ".xlsm":
		rows, err = ReadWorkbook(f, cfg.Sheet)
	default:
		return nil, fmt.Errorf("unsupported import file type: %s", filepath.Ext(cfg.FilePath))
	}
	if err != nil {
		return nil, err
	}
	return im.Import(ctx, rows, cfg)
}

// Import validates rows and stores the valid ones in a single transaction.
// Invalid rows are skipped and reported in Result.Errors.
func (im *Importer) Import(ctx context.Context, rows [][]string, cfg Config) (*Result, error) {
	startRow := cfg.StartRow
	if startRow < 1 {
		startRow = 2
	}

	result := &Result{Errors: make([]string, 0)}
	var questions []domain.Question
	for i, row := range rows {
		rowNum := i + 1
		if rowNum < startRow || isBlank(row) {
			continue
		}
		result.Processed++

		q, err := ParseRow(row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return result, nil
	}

	err := im.tx.WithTransaction(ctx, func(ctx context.Context) error {
		offset := 0
		if cfg.Replace {
			if err := im.repo.DeleteAllQuestions(ctx); err != nil {
				return err
			}
		} else {
			count, err := im.repo.CountQuestions(ctx)
			if err != nil {
				return err
			}
			offset = count
		}

		for i := range questions {
			questions[i].Position = offset + i + 1
			if err := im.repo.SaveQuestion(ctx, &questions[i]); err != nil {
				return fmt.Errorf("failed to save question %q: %w", questions[i].Text, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Imported = len(questions)
	logger.Get().Info("Questions imported",
		zap.Int("processed", result.Processed),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
		zap.Bool("replace", cfg.Replace),
	)
	return result, nil
}

// ParseRow turns a question, options, correct answer, explanation row into
// a validated question.
func ParseRow(row []string) (domain.Question, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	options := lo.FilterMap(strings.Split(cell(1), OptionSeparator), func(o string, _ int) (string, bool) {
		o = strings.TrimSpace(o)
		return o, o != ""
	})
	q := domain.Question{
		Text:          cell(0),
		Options:       options,
		CorrectOption: cell(2),
		Explanation:   cell(3),
	}
	if err := q.Validate(); err != nil {
		return domain.Question{}, err
	}
	return q, nil
}

// ReadCSV reads every record of a CSV document
func ReadCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}
	return rows, nil
}

// ReadWorkbook reads the rows of sheet, or of the first sheet when empty
func ReadWorkbook(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows of sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// WriteWorkbook writes questions in the import layout, header included
func WriteWorkbook(w io.Writer, questions []domain.Question) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, q := range questions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := Row(q)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	_, err := f.WriteTo(w)
	return err
}

// Row renders q in the import column layout
func Row(q domain.Question) []string {
	return []string{q.Text, strings.Join(q.Options, OptionSeparator), q.CorrectOption, q.Explanation}
}

func isBlank(row []string) bool {
	return lo.EveryBy(row, func(c string) bool { return strings.TrimSpace(c) == "" })
}
