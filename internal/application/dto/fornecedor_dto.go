package dto

import "time"

// FornecedorRequest payload de criação/substituição de fornecedor.
// Documento é o número do documento de comércio (CNPJ): 14 dígitos exatos.
// No create o ID é opcional (o servidor gera um se ausente); no update o ID
// vem da rota e o do corpo é ignorado.
type FornecedorRequest struct {
	ID        string   `json:"id" validate:"omitempty,uuid4"`
	Nome      string   `json:"nome" validate:"required,min=3,max=100"`
	Documento string   `json:"documento" validate:"required,len=14,numeric"`
	Ativo     bool     `json:"ativo"`
	Enderecos []string `json:"enderecos" validate:"omitempty,dive,max=300"`
}

// FornecedorResponse saída de um fornecedor.
type FornecedorResponse struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Documento string    `json:"documento"`
	Ativo     bool      `json:"ativo"`
	Enderecos []string  `json:"enderecos"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
