package repository

import (
	"context"

	"github.com/wmartins/fornecedores-api/internal/domain/entity"
)

// FornecedorRepository define o porto de persistência para Fornecedor.
// Mutações devolvem o número de linhas afetadas para que o caso de uso
// trate o commit vazio como falha genérica.
type FornecedorRepository interface {
	List(ctx context.Context) ([]*entity.Fornecedor, error)
	// GetByID devolve nil, nil quando o id não existe (leitura sem tracking).
	GetByID(ctx context.Context, id string) (*entity.Fornecedor, error)
	Create(ctx context.Context, f *entity.Fornecedor) (int64, error)
	// Update substitui todas as colunas pelo payload (sem merge).
	Update(ctx context.Context, f *entity.Fornecedor) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
