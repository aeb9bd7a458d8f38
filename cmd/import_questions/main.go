package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"dish-quiz/internal/adapter"
	"dish-quiz/internal/cache"
	"dish-quiz/internal/config"
	"dish-quiz/internal/database"
	"dish-quiz/internal/domain"
	"dish-quiz/internal/importer"
	"dish-quiz/internal/logger"
	"dish-quiz/internal/repository"
	"dish-quiz/internal/service"

	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "", "question file to import (.xlsx or .csv)")
	sheet := flag.String("sheet", "", "workbook sheet, defaults to the first one")
	startRow := flag.Int("start-row", 2, "first data row (1-based)")
	replace := flag.Bool("replace", false, "replace the current question bank")
	seed := flag.Bool("seed", false, "load the built-in dish questions instead of a file")
	export := flag.String("export", "", "write the current bank to this .xlsx file and exit")
	flag.Parse()

	if *file == "" && !*seed && *export == "" {
		fmt.Fprintln(os.Stderr, "one of -file, -seed or -export is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	l := logger.Get()
	ctx := context.Background()

	db, err := database.Open(cfg)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := database.Migrate(db.DB, cfg.DB.Driver, database.Up); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}

	repo := repository.NewQuestionDatabaseAdapter(db)

	if *export != "" {
		if err := exportBank(ctx, repo, *export); err != nil {
			l.Fatal("Failed to export question bank", zap.Error(err))
		}
		l.Info("Question bank exported", zap.String("file", *export))
		return
	}

	im := importer.New(repo, repository.NewTransactionManagerAdapter(db))
	icfg := importer.Config{FilePath: *file, Sheet: *sheet, StartRow: *startRow, Replace: *replace}

	var result *importer.Result
	if *seed {
		result, err = seedDefaults(ctx, im, icfg)
	} else {
		result, err = im.ImportFile(ctx, icfg)
	}
	if err != nil {
		l.Fatal("Import failed", zap.Error(err))
	}
	for _, msg := range result.Errors {
		l.Warn("Row skipped", zap.String("reason", msg))
	}

	// Drop the cached bank so running servers pick up the new questions.
	if cfg.Redis.Address != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			l.Warn("Redis unavailable, cached bank not invalidated", zap.Error(err))
		} else {
			defer client.Close()
			bank := service.NewQuestionBankService(config.SourceDatabase, repo, adapter.NewRedisCacheAdapter(client), cfg.Cache.QuestionBankTTL)
			if err := bank.Invalidate(ctx); err != nil {
				l.Warn("Failed to invalidate cached bank", zap.Error(err))
			}
		}
	}

	l.Info("Import finished",
		zap.Int("processed", result.Processed),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
	)
}

func seedDefaults(ctx context.Context, im *importer.Importer, cfg importer.Config) (*importer.Result, error) {
	questions, err := repository.DefaultQuestions()
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, importer.Row(q))
	}
	cfg.StartRow = 1
	return im.Import(ctx, rows, cfg)
}

func exportBank(ctx context.Context, repo domain.QuestionRepository, path string) error {
	questions, err := repo.ListQuestions(ctx)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := importer.WriteWorkbook(f, questions); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
