package notafiscal

import (
	"fmt"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/company"
)

// RetencoesNFSe descreve os tributos retidos na fonte de uma NFS-e
type RetencoesNFSe struct {
	ISSQNRetido       bool    `json:"issqn_retido"`
	ValorISSQNRetido  float64 `json:"valor_issqn_retido,omitempty"`
	ValorIRRetido     float64 `json:"valor_ir_retido,omitempty"`
	ValorPISRetido    float64 `json:"valor_pis_retido,omitempty"`
	ValorCOFINSRetido float64 `json:"valor_cofins_retido,omitempty"`
	ValorCSLLRetido   float64 `json:"valor_csll_retido,omitempty"`
	ValorINSSRetido   float64 `json:"valor_inss_retido,omitempty"`
}

// DadosNFSe agrega as informações específicas da nota de serviço que
// não fazem parte do agregado da nota
type DadosNFSe struct {
	Retencoes               RetencoesNFSe `json:"retencoes"`
	CodigoMunicipioServico  string        `json:"codigo_municipio_servico,omitempty"`
	RegimeTributarioEspecial string       `json:"regime_tributario_especial,omitempty"`
}

// codigosServicoLC116 lista os códigos de serviço aceitos, conforme os
// primeiros grupos da LC 116/2003
var codigosServicoLC116 = map[string]bool{
	"01.01": true, "01.02": true, "01.03": true, "01.04": true, "01.05": true,
	"01.06": true, "01.07": true, "01.08": true, "01.09": true,
	"02.01": true, "02.02": true, "02.03": true, "02.04": true, "02.05": true,
	"02.06": true, "02.07": true, "02.08": true, "02.09": true,
	"03.01": true, "03.02": true, "03.03": true, "03.04": true, "03.05": true,
	"04.01": true, "04.02": true, "04.03": true, "04.04": true, "04.05": true,
	"04.06": true, "04.07": true, "04.08": true, "04.09": true,
	"05.01": true, "05.02": true, "05.03": true, "05.04": true, "05.05": true,
	"05.06": true, "05.07": true, "05.08": true, "05.09": true,
}

// ValidadorNFSe concentra as regras específicas da nota fiscal de serviço
type ValidadorNFSe struct{}

// NewValidadorNFSe cria um validador de NFS-e
func NewValidadorNFSe() *ValidadorNFSe {
	return &ValidadorNFSe{}
}

// ValidarDadosObrigatorios verifica os requisitos da empresa e da nota
// para emissão de NFS-e
func (v *ValidadorNFSe) ValidarDadosObrigatorios(nota *NotaFiscal, empresa *company.Company) ResultadoValidacao {
	var erros, avisos []string

	if nota.Tipo != TipoNFSe {
		erros = append(erros, "Nota fiscal deve ser do tipo NFS-e")
	}
	if !empresa.PodeEmitirNFSe() {
		erros = append(erros, "Empresa não está configurada para emitir NFS-e")
	}
	if empresa.MunicipalRegistration == "" {
		erros = append(erros, "Inscrição municipal é obrigatória para emissão de NFS-e")
	}
	if empresa.Address.CodigoIbge() == "" {
		erros = append(erros, "Código IBGE do município é obrigatório para NFS-e")
	}

	if nota.ValorTotal > limiteValorNFSe {
		erros = append(erros, fmt.Sprintf("Valor total excede o limite para NFS-e: R$ %.2f", limiteValorNFSe))
	}

	return novoResultado(erros, avisos)
}

// ValidarServicos verifica que todos os itens são serviços com código
// da LC 116/2003 e ISSQN dentro da faixa legal
func (v *ValidadorNFSe) ValidarServicos(itens []*ItemNotaFiscal) ResultadoValidacao {
	var erros, avisos []string

	for _, item := range itens {
		if item.EhProduto() {
			erros = append(erros, "NFS-e só pode conter serviços, produtos não são permitidos")
			break
		}
	}

	for idx, item := range itens {
		if item.CodigoServico == "" {
			erros = append(erros, fmt.Sprintf("Item %d: Código de serviço é obrigatório para NFS-e", idx+1))
		} else if !codigosServicoLC116[item.CodigoServico] {
			erros = append(erros, fmt.Sprintf("Item %d: Código de serviço inválido", idx+1))
		}

		if item.Tributos.ISSQN == nil {
			erros = append(erros, fmt.Sprintf("Item %d: ISSQN é obrigatório para serviços", idx+1))
		} else {
			aliquota := item.Tributos.ISSQN.Aliquota
			if aliquota <= 0 || aliquota > 5 {
				erros = append(erros, fmt.Sprintf("Item %d: Alíquota de ISSQN deve estar entre 0,01%% e 5%%", idx+1))
			}
		}
	}

	return novoResultado(erros, avisos)
}

// ValidarRetencoes verifica a consistência dos tributos retidos na fonte
func (v *ValidadorNFSe) ValidarRetencoes(nota *NotaFiscal, dados DadosNFSe) ResultadoValidacao {
	var erros, avisos []string
	ret := dados.Retencoes

	if ret.ISSQNRetido {
		if ret.ValorISSQNRetido <= 0 {
			erros = append(erros, "Valor do ISSQN retido deve ser informado quando há retenção")
		}
		if ret.ValorISSQNRetido > nota.ValorTotal {
			erros = append(erros, "Valor do ISSQN retido não pode ser maior que o valor total")
		}
	}

	outras := []struct {
		nome  string
		valor float64
	}{
		{"IR", ret.ValorIRRetido},
		{"PIS", ret.ValorPISRetido},
		{"COFINS", ret.ValorCOFINSRetido},
		{"CSLL", ret.ValorCSLLRetido},
		{"INSS", ret.ValorINSSRetido},
	}
	for _, r := range outras {
		if r.valor > nota.ValorTotal {
			erros = append(erros, fmt.Sprintf("Valor do %s retido não pode ser maior que o valor total", r.nome))
		}
	}

	return novoResultado(erros, avisos)
}

// ValidarRegimeTributacao verifica a compatibilidade do regime
// tributário da empresa com a emissão de NFS-e
func (v *ValidadorNFSe) ValidarRegimeTributacao(empresa *company.Company, dados DadosNFSe) ResultadoValidacao {
	var erros, avisos []string

	switch empresa.TaxRegime {
	case company.TaxRegimeSimplesNacional:
		if dados.RegimeTributarioEspecial == "" {
			avisos = append(avisos, "Empresa do Simples Nacional deve informar regime tributário especial se aplicável")
		}
	case company.TaxRegimeMEI:
		avisos = append(avisos, "MEI tem limitações para emissão de NFS-e, verificar valores e atividades")
	case company.TaxRegimeLucroPresumido, company.TaxRegimeLucroReal:
		// regimes normais, sem restrições especiais
	default:
		erros = append(erros, "Regime tributário não reconhecido para emissão de NFS-e")
	}

	return novoResultado(erros, avisos)
}

// ValidarMunicipioServico confere o município de prestação do serviço
func (v *ValidadorNFSe) ValidarMunicipioServico(codigoMunicipioEmpresa, codigoMunicipioServico string) ResultadoValidacao {
	var erros, avisos []string

	if codigoMunicipioServico == "" {
		erros = append(erros, "Código do município de prestação do serviço é obrigatório")
	}
	if codigoMunicipioServico != "" && codigoMunicipioEmpresa != codigoMunicipioServico {
		avisos = append(avisos, "Serviço prestado em município diferente da empresa - verificar regras específicas")
	}

	return novoResultado(erros, avisos)
}

// ValidarCompleta executa todos os grupos de validação de NFS-e e
// agrega os resultados
func (v *ValidadorNFSe) ValidarCompleta(
	nota *NotaFiscal,
	empresa *company.Company,
	itens []*ItemNotaFiscal,
	dados DadosNFSe,
) ResultadoValidacao {
	municipioServico := dados.CodigoMunicipioServico
	if municipioServico == "" {
		municipioServico = empresa.Address.CodigoIbge()
	}

	resultados := []ResultadoValidacao{
		v.ValidarDadosObrigatorios(nota, empresa),
		v.ValidarServicos(itens),
		v.ValidarRetencoes(nota, dados),
		v.ValidarRegimeTributacao(empresa, dados),
		v.ValidarMunicipioServico(empresa.Address.CodigoIbge(), municipioServico),
	}

	var erros, avisos []string
	for _, r := range resultados {
		erros = append(erros, r.Erros...)
		avisos = append(avisos, r.Avisos...)
	}

	return novoResultado(erros, avisos)
}
