package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/model"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

// DocumentRepository - множество хешей уже импортированных файлов
type DocumentRepository struct {
	pool base.DB
}

func NewDocumentRepository(pool base.DB) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

// Exists проверяет, импортировался ли файл с таким хешем
func (r *DocumentRepository) Exists(ctx context.Context, hash string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM ingested_documents WHERE hash = $1)
	`, hash).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check document: %w", err)
	}
	return exists, nil
}

// Add записывает хеш. Повторная запись того же хеша ничего не меняет.
func (r *DocumentRepository) Add(ctx context.Context, doc *model.Document) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO ingested_documents (hash, filename, run_id, groups, ingested_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (hash) DO NOTHING
	`, doc.Hash, doc.Filename, doc.RunID, doc.Groups)
	if err != nil {
		return false, fmt.Errorf("add document: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List возвращает импортированные файлы, новые первыми
func (r *DocumentRepository) List(ctx context.Context, limit int) ([]model.Document, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT hash, filename, run_id, groups, ingested_at
		FROM ingested_documents
		ORDER BY ingested_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Document, error) {
		var d model.Document
		err := row.Scan(&d.Hash, &d.Filename, &d.RunID, &d.Groups, &d.IngestedAt)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan documents: %w", err)
	}
	return docs, nil
}
