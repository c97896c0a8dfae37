package notafiscal

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/company"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/customer"
)

const (
	limiteItensNota    = 990
	limiteValorNFe     = 999999999.99
	limiteValorNFSe    = 99999999.99
	limiteAvisoValor   = 100000.0
	limiteTextoLivre   = 5000
	toleranciaCentavos = 0.02
)

// ResultadoValidacao acumula erros e avisos de um grupo de regras.
// Erros impedem o envio; avisos são apenas informativos.
type ResultadoValidacao struct {
	Valida bool     `json:"valida"`
	Erros  []string `json:"erros"`
	Avisos []string `json:"avisos"`
}

func novoResultado(erros, avisos []string) ResultadoValidacao {
	if erros == nil {
		erros = []string{}
	}
	if avisos == nil {
		avisos = []string{}
	}
	return ResultadoValidacao{
		Valida: len(erros) == 0,
		Erros:  erros,
		Avisos: avisos,
	}
}

// ValidadorNFe concentra as regras de negócio que decidem se uma nota
// em rascunho pode ser transmitida. Nenhum grupo interrompe os demais:
// o resultado final agrega tudo o que foi encontrado.
type ValidadorNFe struct{}

// NewValidadorNFe cria um validador de NF-e
func NewValidadorNFe() *ValidadorNFe {
	return &ValidadorNFe{}
}

// ValidarDadosObrigatorios verifica empresa, cliente e dados mínimos da nota
func (v *ValidadorNFe) ValidarDadosObrigatorios(nota *NotaFiscal, empresa *company.Company, cliente *customer.Customer) ResultadoValidacao {
	var erros, avisos []string

	if !empresa.IsActive {
		erros = append(erros, "Empresa deve estar ativa para emissão de NF-e")
	}
	if !empresa.PodeEmitirNFe() {
		erros = append(erros, "Empresa não está configurada para emitir NF-e")
	}
	if empresa.CertificadoPrecisaRenovar() {
		erros = append(erros, "Certificado digital próximo ao vencimento")
	}

	if !cliente.IsActive {
		avisos = append(avisos, "Cliente está inativo")
	}
	if !cliente.PodeSerDestinatarioNFe() {
		erros = append(erros, "Cliente deve ter endereço cadastrado")
	}
	if cliente.NecessitaIE() && cliente.StateRegistration == "" {
		erros = append(erros, "Cliente pessoa jurídica contribuinte deve ter inscrição estadual")
	}

	if nota.Status != StatusRascunho {
		erros = append(erros, "Nota fiscal deve estar em rascunho para validação")
	}
	if len(nota.Itens) == 0 {
		erros = append(erros, "Nota fiscal deve ter pelo menos um item")
	}
	if nota.ValorTotal <= 0 {
		erros = append(erros, "Valor total da nota fiscal deve ser maior que zero")
	}

	return novoResultado(erros, avisos)
}

// ValidarItens verifica o conjunto de itens: quantidade máxima,
// numeração sequencial e as regras individuais de cada item
func (v *ValidadorNFe) ValidarItens(itens []*ItemNotaFiscal) ResultadoValidacao {
	var erros, avisos []string

	if len(itens) == 0 {
		erros = append(erros, "Nota fiscal deve ter pelo menos um item")
		return novoResultado(erros, avisos)
	}

	if len(itens) > limiteItensNota {
		erros = append(erros, fmt.Sprintf("Nota fiscal não pode ter mais de %d itens", limiteItensNota))
	}

	// a numeração precisa ser exatamente 1..N; o primeiro furo encerra
	// a verificação de sequência, as demais regras continuam
	numeros := make([]int, len(itens))
	for i, item := range itens {
		numeros[i] = item.NumeroItem
	}
	sort.Ints(numeros)
	for i, numero := range numeros {
		if numero != i+1 {
			erros = append(erros, fmt.Sprintf(
				"Numeração dos itens deve ser sequencial. Item %d esperado, mas encontrado %d", i+1, numero))
			break
		}
	}

	for idx, item := range itens {
		resultado := v.ValidarItem(item, idx+1)
		erros = append(erros, resultado.Erros...)
		avisos = append(avisos, resultado.Avisos...)
	}

	return novoResultado(erros, avisos)
}

// ValidarItem verifica as regras individuais de um item
func (v *ValidadorNFe) ValidarItem(item *ItemNotaFiscal, numeroEsperado int) ResultadoValidacao {
	var erros, avisos []string

	if item.NumeroItem != numeroEsperado {
		erros = append(erros, fmt.Sprintf("Item %d: Numeração deve ser sequencial", item.NumeroItem))
	}
	if item.Quantidade <= 0 {
		erros = append(erros, fmt.Sprintf("Item %d: Quantidade deve ser maior que zero", item.NumeroItem))
	}
	if item.ValorUnitario < 0 {
		erros = append(erros, fmt.Sprintf("Item %d: Valor unitário não pode ser negativo", item.NumeroItem))
	}
	if item.ValorTotal <= 0 {
		erros = append(erros, fmt.Sprintf("Item %d: Valor total deve ser maior que zero", item.NumeroItem))
	}
	if item.ValorDesconto > item.ValorBruto() {
		erros = append(erros, fmt.Sprintf("Item %d: Desconto não pode ser maior que o valor bruto", item.NumeroItem))
	}
	if item.CalcularTotalTributos() > item.ValorTotal {
		erros = append(erros, fmt.Sprintf("Item %d: Valor total dos tributos não pode ser maior que o valor do item", item.NumeroItem))
	}

	if item.EhProduto() {
		v.validarItemProduto(item, &erros, &avisos)
	} else if item.EhServico() {
		v.validarItemServico(item, &erros, &avisos)
	}

	return novoResultado(erros, avisos)
}

func (v *ValidadorNFe) validarItemProduto(item *ItemNotaFiscal, erros, avisos *[]string) {
	if len(somenteDigitos(item.NCM)) != 8 {
		*erros = append(*erros, fmt.Sprintf("Item %d: NCM deve ter 8 dígitos para produtos", item.NumeroItem))
	}
	if len(somenteDigitos(item.CFOP)) != 4 {
		*erros = append(*erros, fmt.Sprintf("Item %d: CFOP deve ter 4 dígitos", item.NumeroItem))
		return
	}

	// CFOPs de 1000 a 6999 cobrem as operações usuais de entrada e
	// saída; fora dessa faixa o código merece conferência
	cfopNumero, err := strconv.Atoi(somenteDigitos(item.CFOP))
	if err != nil || cfopNumero < 1000 || cfopNumero >= 7000 {
		*avisos = append(*avisos, fmt.Sprintf("Item %d: CFOP %s pode não ser adequado para produtos", item.NumeroItem, item.CFOP))
	}
}

func (v *ValidadorNFe) validarItemServico(item *ItemNotaFiscal, erros, avisos *[]string) {
	if item.Tributos.ISSQN != nil {
		aliquota := item.Tributos.ISSQN.Aliquota
		if aliquota <= 0 || aliquota > 5 {
			*avisos = append(*avisos, fmt.Sprintf("Item %d: Alíquota de ISSQN fora da faixa normal (0-5%%)", item.NumeroItem))
		}
	}

	if item.NCM == "" {
		*avisos = append(*avisos, fmt.Sprintf("Item %d: NCM não informado para serviço", item.NumeroItem))
	}
}

// ValidarLimites verifica os tetos de valor e o tamanho dos textos livres
func (v *ValidadorNFe) ValidarLimites(nota *NotaFiscal) ResultadoValidacao {
	var erros, avisos []string

	limite := limiteValorNFe
	if nota.Tipo == TipoNFSe {
		limite = limiteValorNFSe
	}
	if nota.ValorTotal > limite {
		erros = append(erros, fmt.Sprintf("Valor total (%.2f) excede o limite máximo de R$ %.2f", nota.ValorTotal, limite))
	}

	if nota.ValorTotal > limiteAvisoValor {
		avisos = append(avisos, "Nota fiscal com valor alto - verificar se está correto")
	}

	if len(nota.Observacoes) > limiteTextoLivre {
		erros = append(erros, fmt.Sprintf("Observações não podem exceder %d caracteres", limiteTextoLivre))
	}
	if len(nota.InformacoesAdicionais) > limiteTextoLivre {
		erros = append(erros, fmt.Sprintf("Informações adicionais não podem exceder %d caracteres", limiteTextoLivre))
	}

	return novoResultado(erros, avisos)
}

// ValidarCoerencia confere os totais declarados contra a soma dos itens,
// com tolerância de dois centavos para arredondamentos
func (v *ValidadorNFe) ValidarCoerencia(nota *NotaFiscal, itens []*ItemNotaFiscal) ResultadoValidacao {
	var erros, avisos []string

	valorTotalItens := 0.0
	valorTributosItens := 0.0
	itensDeOutraNota := 0
	for _, item := range itens {
		valorTotalItens += item.ValorTotal
		valorTributosItens += item.CalcularTotalTributos()
		if item.NotaFiscalID != nota.ID {
			itensDeOutraNota++
		}
	}

	if math.Abs(nota.ValorTotal-valorTotalItens) > toleranciaCentavos {
		erros = append(erros, fmt.Sprintf(
			"Valor total da nota (%.2f) não confere com a soma dos itens (%.2f)", nota.ValorTotal, valorTotalItens))
	}
	if math.Abs(nota.ValorTributos-valorTributosItens) > toleranciaCentavos {
		erros = append(erros, fmt.Sprintf(
			"Valor total dos tributos (%.2f) não confere com a soma dos tributos dos itens (%.2f)", nota.ValorTributos, valorTributosItens))
	}
	if itensDeOutraNota > 0 {
		erros = append(erros, fmt.Sprintf("%d item(ns) não pertencem a esta nota fiscal", itensDeOutraNota))
	}

	return novoResultado(erros, avisos)
}

// ValidarParaEnvio executa todos os grupos de validação e agrega os
// resultados. Todos os grupos rodam mesmo quando um deles falha.
func (v *ValidadorNFe) ValidarParaEnvio(
	nota *NotaFiscal,
	empresa *company.Company,
	cliente *customer.Customer,
	itens []*ItemNotaFiscal,
) ResultadoValidacao {
	resultados := []ResultadoValidacao{
		v.ValidarDadosObrigatorios(nota, empresa, cliente),
		v.ValidarItens(itens),
		v.ValidarLimites(nota),
		v.ValidarCoerencia(nota, itens),
	}

	var erros, avisos []string
	for _, r := range resultados {
		erros = append(erros, r.Erros...)
		avisos = append(avisos, r.Avisos...)
	}

	return novoResultado(erros, avisos)
}
