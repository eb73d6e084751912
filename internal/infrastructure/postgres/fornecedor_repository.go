package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/wmartins/fornecedores-api/internal/domain/entity"
	"github.com/wmartins/fornecedores-api/internal/domain/repository"
)

var _ repository.FornecedorRepository = (*FornecedorRepo)(nil)

// FornecedorRepo implementação do porto FornecedorRepository sobre PostgreSQL (usável com pool ou tx).
type FornecedorRepo struct {
	q Querier
}

// NewFornecedorRepository constrói o adaptador de persistência para fornecedores. Passar pool ou tx (Querier).
func NewFornecedorRepository(q Querier) *FornecedorRepo {
	return &FornecedorRepo{q: q}
}

const fornecedorColumns = `id, nome, documento, ativo, enderecos, created_at, updated_at`

// List devolve todos os fornecedores (full scan, sem paginação).
func (r *FornecedorRepo) List(ctx context.Context) ([]*entity.Fornecedor, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+fornecedorColumns+` FROM fornecedores ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list fornecedores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Fornecedor
	for rows.Next() {
		var f entity.Fornecedor
		if err := rows.Scan(&f.ID, &f.Nome, &f.Documento, &f.Ativo, &f.Enderecos, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan fornecedor: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// GetByID obtém um fornecedor por ID. Devolve nil, nil quando não existe.
func (r *FornecedorRepo) GetByID(ctx context.Context, id string) (*entity.Fornecedor, error) {
	var f entity.Fornecedor
	err := r.q.QueryRow(ctx,
		`SELECT `+fornecedorColumns+` FROM fornecedores WHERE id = $1`, id).
		Scan(&f.ID, &f.Nome, &f.Documento, &f.Ativo, &f.Enderecos, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fornecedor: %w", err)
	}
	return &f, nil
}

// Create insere um fornecedor e devolve as linhas afetadas.
func (r *FornecedorRepo) Create(ctx context.Context, f *entity.Fornecedor) (int64, error) {
	query := `
		INSERT INTO fornecedores (` + fornecedorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	cmd, err := r.q.Exec(ctx, query,
		f.ID, f.Nome, f.Documento, f.Ativo, f.Enderecos, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert fornecedor: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// Update substitui todas as colunas pelos valores do payload (sem merge).
func (r *FornecedorRepo) Update(ctx context.Context, f *entity.Fornecedor) (int64, error) {
	query := `
		UPDATE fornecedores SET nome = $2, documento = $3, ativo = $4, enderecos = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		f.ID, f.Nome, f.Documento, f.Ativo, f.Enderecos, f.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("update fornecedor: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// Delete remove um fornecedor por ID e devolve as linhas afetadas.
func (r *FornecedorRepo) Delete(ctx context.Context, id string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM fornecedores WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete fornecedor: %w", err)
	}
	return cmd.RowsAffected(), nil
}
