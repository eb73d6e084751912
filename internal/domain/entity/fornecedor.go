package entity

import "time"

// Fornecedor entidade de negócio gerida pelas rotas CRUD.
// O ID é imutável depois de criado; Documento é o documento de comércio
// (CNPJ, 14 dígitos); Enderecos é uma lista livre de endereços.
type Fornecedor struct {
	ID        string
	Nome      string
	Documento string
	Ativo     bool
	Enderecos []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
