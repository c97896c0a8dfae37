package usecase

import "errors"

var (
	ErrEmpresaNaoEncontrada  = errors.New("empresa não encontrada")
	ErrClienteNaoEncontrado  = errors.New("cliente não encontrado")
	ErrProdutoNaoEncontrado  = errors.New("produto não encontrado")
	ErrNotaNaoEncontrada     = errors.New("nota fiscal não encontrada")
	ErrNotaSemItens          = errors.New("nota fiscal deve ter pelo menos um item")
	ErrNotaInvalida          = errors.New("nota fiscal reprovada na validação")
	ErrTipoNotaInvalido      = errors.New("tipo de nota fiscal inválido")
	ErrDocumentoInvalido     = errors.New("documento deve ter 11 (CPF) ou 14 (CNPJ) dígitos")
)
