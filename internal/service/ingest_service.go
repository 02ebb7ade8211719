package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/model"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/timetable"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IngestOptions - параметры импорта
type IngestOptions struct {
	// Force импортирует файл, даже если его хеш уже встречался
	Force bool
}

// IngestResult - итог импорта одного файла
type IngestResult struct {
	File          string
	Hash          string
	RunID         uuid.UUID
	Skipped       bool // файл уже импортировался
	Groups        int
	SkippedGroups []string // номера групп, не прошедшие проверку
	Report        timetable.Report
}

type IngestService struct {
	schedules ScheduleStore
	documents DocumentStore
	readGrids GridReader
	logger    *zap.Logger
}

func NewIngestService(schedules ScheduleStore, documents DocumentStore, readGrids GridReader, logger *zap.Logger) *IngestService {
	return &IngestService{
		schedules: schedules,
		documents: documents,
		readGrids: readGrids,
		logger:    logger,
	}
}

// ContentHash - SHA-256 содержимого файла в hex
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// IngestDir импортирует все *.pdf каталога по алфавиту.
// Ошибка одного файла не останавливает остальные.
func (s *IngestService) IngestDir(ctx context.Context, dir string, opts IngestOptions) ([]*IngestResult, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	sort.Strings(paths)

	var (
		results []*IngestResult
		errs    []error
	)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := s.IngestFile(ctx, path, opts)
		if err != nil {
			s.logger.Error("Failed to ingest schedule", zap.String("file", path), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		results = append(results, res)
	}

	return results, errors.Join(errs...)
}

// IngestFile читает файл с диска и импортирует его
func (s *IngestService) IngestFile(ctx context.Context, path string, opts IngestOptions) (*IngestResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s.Ingest(ctx, filepath.Base(path), data, opts)
}

// Ingest импортирует содержимое файла.
// Хеш сохраняется только после записи всех групп, так что упавший импорт повторится целиком.
func (s *IngestService) Ingest(ctx context.Context, name string, data []byte, opts IngestOptions) (*IngestResult, error) {
	res := &IngestResult{
		File:  name,
		Hash:  ContentHash(data),
		RunID: uuid.New(),
	}

	if !opts.Force {
		seen, err := s.documents.Exists(ctx, res.Hash)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", name, err)
		}
		if seen {
			res.Skipped = true
			s.logger.Info("Schedule already ingested", zap.String("file", name), zap.String("hash", res.Hash))
			return res, nil
		}
	}

	grids, err := s.readGrids(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	table, report := timetable.Extract(grids)
	res.Report = report
	if report.Unrecognized > 0 || report.Orphaned > 0 || report.Replaced > 0 {
		s.logger.Debug("Skipped table rows",
			zap.String("file", name),
			zap.Int("unrecognized", report.Unrecognized),
			zap.Int("orphaned", report.Orphaned),
			zap.Int("replaced_days", report.Replaced),
		)
	}
	if report.Recognized == 0 {
		s.logger.Warn("No schedule tables recognized", zap.String("file", name), zap.Int("pages", report.Pages))
	}

	written, skipped, err := s.Import(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", name, err)
	}
	res.Groups = written
	res.SkippedGroups = skipped

	_, err = s.documents.Add(ctx, &model.Document{
		Hash:     res.Hash,
		Filename: name,
		RunID:    res.RunID,
		Groups:   written,
	})
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", name, err)
	}

	s.logger.Info("Schedule ingested",
		zap.String("file", name),
		zap.String("run_id", res.RunID.String()),
		zap.Int("groups", written),
		zap.Int("skipped_groups", len(skipped)),
		zap.Int("pages", report.Pages),
	)
	return res, nil
}

// Import записывает обе чётности каждой группы с корректным номером.
// Неделя группы заменяется целиком.
func (s *IngestService) Import(ctx context.Context, table timetable.Timetable) (int, []string, error) {
	var (
		written int
		skipped []string
	)

	for _, group := range table.Groups() {
		if !model.IsValidGroupNumber(group) {
			skipped = append(skipped, group)
			continue
		}

		for _, odd := range []bool{false, true} {
			week := timetable.ResolveWeek(table[group], odd)
			if err := s.schedules.WriteWeek(ctx, group, odd, encodeWeek(week)); err != nil {
				return written, skipped, fmt.Errorf("write %s: %w", group, err)
			}
		}
		written++
	}

	if len(skipped) > 0 {
		s.logger.Debug("Skipped invalid group numbers", zap.Strings("groups", skipped))
	}
	return written, skipped, nil
}

func encodeWeek(week model.Week) [7][]string {
	var days [7][]string
	for d, lessons := range week {
		days[d] = model.EncodeLessons(lessons)
	}
	return days
}
