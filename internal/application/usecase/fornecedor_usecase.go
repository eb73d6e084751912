package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wmartins/fornecedores-api/internal/application/dto"
	"github.com/wmartins/fornecedores-api/internal/domain"
	"github.com/wmartins/fornecedores-api/internal/domain/entity"
	"github.com/wmartins/fornecedores-api/internal/domain/repository"
)

// TxRunner porto para executar mutações dentro de uma transação.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.FornecedorRepository) error) error
}

// FornecedorUseCase casos de uso CRUD de Fornecedor. Leituras vão direto ao
// repositório; cada mutação roda numa transação própria da requisição.
type FornecedorUseCase struct {
	repo repository.FornecedorRepository
	tx   TxRunner
}

// NewFornecedorUseCase constrói o caso de uso.
func NewFornecedorUseCase(repo repository.FornecedorRepository, tx TxRunner) *FornecedorUseCase {
	return &FornecedorUseCase{repo: repo, tx: tx}
}

// List devolve todos os fornecedores.
func (uc *FornecedorUseCase) List(ctx context.Context) ([]dto.FornecedorResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FornecedorResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toFornecedorResponse(f))
	}
	return out, nil
}

// GetByID devolve o fornecedor ou nil se não existir.
func (uc *FornecedorUseCase) GetByID(ctx context.Context, id string) (*dto.FornecedorResponse, error) {
	f, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, nil
	}
	resp := toFornecedorResponse(f)
	return &resp, nil
}

// Create insere um fornecedor novo. O cliente pode fornecer o UUID; sem ele o
// servidor gera um. Commit sem linhas afetadas vira ErrNothingPersisted.
func (uc *FornecedorUseCase) Create(ctx context.Context, in dto.FornecedorRequest) (*dto.FornecedorResponse, error) {
	now := time.Now()
	id := in.ID
	if id == "" {
		id = uuid.New().String()
	}
	f := &entity.Fornecedor{
		ID:        id,
		Nome:      in.Nome,
		Documento: in.Documento,
		Ativo:     in.Ativo,
		Enderecos: normalizeEnderecos(in.Enderecos),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.tx.Run(ctx, func(repo repository.FornecedorRepository) error {
		rows, err := repo.Create(ctx, f)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNothingPersisted
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toFornecedorResponse(f)
	return &resp, nil
}

// Update substitui o fornecedor por inteiro (sem merge com a linha antiga).
// A leitura prévia serve apenas para o 404; os valores gravados vêm todos do
// payload.
func (uc *FornecedorUseCase) Update(ctx context.Context, id string, in dto.FornecedorRequest) error {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	f := &entity.Fornecedor{
		ID:        id,
		Nome:      in.Nome,
		Documento: in.Documento,
		Ativo:     in.Ativo,
		Enderecos: normalizeEnderecos(in.Enderecos),
		UpdatedAt: time.Now(),
	}
	return uc.tx.Run(ctx, func(repo repository.FornecedorRepository) error {
		rows, err := repo.Update(ctx, f)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNothingPersisted
		}
		return nil
	})
}

// Delete remove o fornecedor por ID.
func (uc *FornecedorUseCase) Delete(ctx context.Context, id string) error {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.tx.Run(ctx, func(repo repository.FornecedorRepository) error {
		rows, err := repo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNothingPersisted
		}
		return nil
	})
}

// normalizeEnderecos troca nil por slice vazio: enderecos é NOT NULL no banco,
// e um []string nil seria gravado como SQL NULL pelo pgx.
func normalizeEnderecos(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func toFornecedorResponse(f *entity.Fornecedor) dto.FornecedorResponse {
	return dto.FornecedorResponse{
		ID:        f.ID,
		Nome:      f.Nome,
		Documento: f.Documento,
		Ativo:     f.Ativo,
		Enderecos: normalizeEnderecos(f.Enderecos),
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
