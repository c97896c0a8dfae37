package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/company"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/customer"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/notafiscal"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/product"
	"github.com/GuiEstevamCorrea/AxFisco/pkg/logger"
)

// ItemEmissao descreve um item solicitado na emissão
type ItemEmissao struct {
	ProdutoID     string  `json:"produto_id"`
	Quantidade    float64 `json:"quantidade"`
	ValorUnitario float64 `json:"valor_unitario,omitempty"`
	ValorDesconto float64 `json:"valor_desconto,omitempty"`
	CodigoServico string  `json:"codigo_servico,omitempty"`
}

// EmitirNotaFiscalInput agrega os dados necessários para emitir uma nota
type EmitirNotaFiscalInput struct {
	EmpresaID   string                  `json:"empresa_id"`
	ClienteID   string                  `json:"cliente_id"`
	Tipo        notafiscal.TipoNotaFiscal `json:"tipo"`
	Itens       []ItemEmissao           `json:"itens"`
	Observacoes string                  `json:"observacoes,omitempty"`
}

// NotaFiscalEmitida é o resultado da emissão
type NotaFiscalEmitida struct {
	ID            string                      `json:"id"`
	Numero        int64                       `json:"numero"`
	Serie         int                         `json:"serie"`
	ChaveAcesso   string                      `json:"chave_acesso"`
	Status        notafiscal.StatusNotaFiscal `json:"status"`
	DataEmissao   time.Time                   `json:"data_emissao"`
	ValorTotal    float64                     `json:"valor_total"`
	ValorTributos float64                     `json:"valor_tributos"`
	Protocolo     string                      `json:"protocolo,omitempty"`
	Motivo        string                      `json:"motivo,omitempty"`
	Avisos        []string                    `json:"avisos,omitempty"`
}

// EmitirNotaFiscalUseCase orquestra a emissão completa de uma nota:
// montagem dos itens com tributos, numeração, chave de acesso,
// validação, geração e assinatura do XML e transmissão
type EmitirNotaFiscalUseCase struct {
	companyRepo  company.Repository
	customerRepo customer.Repository
	productRepo  product.Repository
	notaRepo     notafiscal.Repository
	itemRepo     notafiscal.ItemRepository
	calculadora  *notafiscal.CalculadoraTributos
	validadorNFe *notafiscal.ValidadorNFe
	validadorNFSe *notafiscal.ValidadorNFSe
	xmlGateway   notafiscal.XMLGateway
	sefazGateway notafiscal.SefazGateway
	fonteCodigo  notafiscal.FonteCodigoNumerico

	// gateway opcional para transmissão de NFS-e via prefeitura,
	// ver ComGatewayNFSe
	nfseGateway notafiscal.NFSeGateway

	// gateways opcionais de pós-processamento, ver ComPosProcessamento
	pdfGateway     notafiscal.PDFGateway
	emailGateway   notafiscal.EmailGateway
	storageGateway notafiscal.StorageGateway

	logger logger.Logger
}

// ComGatewayNFSe direciona a transmissão de notas de serviço para o
// webservice municipal. Sem ele, a NFS-e segue pelo gateway padrão.
func (uc *EmitirNotaFiscalUseCase) ComGatewayNFSe(nfseGateway notafiscal.NFSeGateway) *EmitirNotaFiscalUseCase {
	uc.nfseGateway = nfseGateway
	return uc
}

// ComPosProcessamento habilita a geração do DANFE, o arquivamento dos
// documentos e o envio por e-mail após a autorização. As etapas rodam
// em segundo plano e falhas são apenas registradas, sem afetar o
// resultado da emissão.
func (uc *EmitirNotaFiscalUseCase) ComPosProcessamento(
	pdfGateway notafiscal.PDFGateway,
	emailGateway notafiscal.EmailGateway,
	storageGateway notafiscal.StorageGateway,
) *EmitirNotaFiscalUseCase {
	uc.pdfGateway = pdfGateway
	uc.emailGateway = emailGateway
	uc.storageGateway = storageGateway
	return uc
}

// NewEmitirNotaFiscalUseCase cria o caso de uso de emissão
func NewEmitirNotaFiscalUseCase(
	companyRepo company.Repository,
	customerRepo customer.Repository,
	productRepo product.Repository,
	notaRepo notafiscal.Repository,
	itemRepo notafiscal.ItemRepository,
	xmlGateway notafiscal.XMLGateway,
	sefazGateway notafiscal.SefazGateway,
	fonteCodigo notafiscal.FonteCodigoNumerico,
	log logger.Logger,
) *EmitirNotaFiscalUseCase {
	return &EmitirNotaFiscalUseCase{
		companyRepo:   companyRepo,
		customerRepo:  customerRepo,
		productRepo:   productRepo,
		notaRepo:      notaRepo,
		itemRepo:      itemRepo,
		calculadora:   notafiscal.NewCalculadoraTributos(),
		validadorNFe:  notafiscal.NewValidadorNFe(),
		validadorNFSe: notafiscal.NewValidadorNFSe(),
		xmlGateway:    xmlGateway,
		sefazGateway:  sefazGateway,
		fonteCodigo:   fonteCodigo,
		logger:        log,
	}
}

// Execute emite uma nota fiscal de ponta a ponta
func (uc *EmitirNotaFiscalUseCase) Execute(ctx context.Context, input EmitirNotaFiscalInput) (*NotaFiscalEmitida, error) {
	if input.Tipo != notafiscal.TipoNFe && input.Tipo != notafiscal.TipoNFSe {
		return nil, ErrTipoNotaInvalido
	}
	if len(input.Itens) == 0 {
		return nil, ErrNotaSemItens
	}

	empresa, err := uc.companyRepo.FindByID(ctx, input.EmpresaID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar empresa: %w", err)
	}
	if empresa == nil {
		return nil, ErrEmpresaNaoEncontrada
	}

	cliente, err := uc.customerRepo.FindByID(ctx, input.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}
	if cliente == nil {
		return nil, ErrClienteNaoEncontrado
	}

	// numeração sequencial da empresa, persistida antes da emissão
	var numero int64
	var serie int
	if input.Tipo == notafiscal.TipoNFe {
		numero = empresa.ProximoNumeroNFe()
		serie = empresa.SerieNFe
	} else {
		numero = empresa.ProximoNumeroNFSe()
		serie = empresa.SerieNFSe
	}
	if err := uc.companyRepo.Update(ctx, empresa); err != nil {
		return nil, fmt.Errorf("erro ao atualizar numeração da empresa: %w", err)
	}

	nota, err := notafiscal.NewNotaFiscal(
		numero, serie, input.Tipo, empresa.ID, cliente.ID, 0, 0,
		notafiscal.FinalidadeNormal,
	)
	if err != nil {
		return nil, err
	}
	if input.Observacoes != "" {
		if err := nota.AtualizarObservacoes(input.Observacoes); err != nil {
			return nil, err
		}
	}

	itens, err := uc.montarItens(ctx, nota, input.Itens)
	if err != nil {
		return nil, err
	}

	valorTotal := 0.0
	valorTributos := 0.0
	for _, item := range itens {
		valorTotal += item.ValorTotal
		valorTributos += item.CalcularTotalTributos()
		if err := nota.AdicionarItem(item.ID); err != nil {
			return nil, err
		}
	}
	nota.ValorTotal = valorTotal
	nota.ValorTributos = valorTributos

	if _, err := nota.GerarChaveAcesso(empresa.Address.State(), empresa.CNPJ.Value(), uc.fonteCodigo); err != nil {
		return nil, fmt.Errorf("erro ao gerar chave de acesso: %w", err)
	}

	resultado := uc.validadorNFe.ValidarParaEnvio(nota, empresa, cliente, itens)
	if input.Tipo == notafiscal.TipoNFSe {
		resultadoNFSe := uc.validadorNFSe.ValidarCompleta(nota, empresa, itens, notafiscal.DadosNFSe{})
		resultado.Erros = append(resultado.Erros, resultadoNFSe.Erros...)
		resultado.Avisos = append(resultado.Avisos, resultadoNFSe.Avisos...)
		resultado.Valida = len(resultado.Erros) == 0
	}
	if !resultado.Valida {
		uc.logger.Warn("nota fiscal reprovada na validação",
			"empresa_id", empresa.ID, "erros", resultado.Erros)
		return nil, fmt.Errorf("%w: %v", ErrNotaInvalida, resultado.Erros)
	}

	if err := uc.notaRepo.Create(ctx, nota); err != nil {
		return nil, fmt.Errorf("erro ao salvar nota fiscal: %w", err)
	}
	for _, item := range itens {
		if err := uc.itemRepo.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("erro ao salvar item da nota: %w", err)
		}
	}

	if err := uc.transmitir(ctx, nota, itens, empresa); err != nil {
		return nil, err
	}

	if err := uc.notaRepo.Update(ctx, nota); err != nil {
		return nil, fmt.Errorf("erro ao atualizar nota fiscal: %w", err)
	}

	uc.logger.Info("nota fiscal emitida",
		"nota_id", nota.ID, "chave_acesso", nota.ChaveAcesso, "status", nota.Status)

	if nota.EstaAutorizada() {
		go uc.posProcessar(context.Background(), nota, itens, cliente.Email)
	}

	return &NotaFiscalEmitida{
		ID:            nota.ID,
		Numero:        nota.Numero,
		Serie:         nota.Serie,
		ChaveAcesso:   nota.ChaveAcesso,
		Status:        nota.Status,
		DataEmissao:   nota.DataEmissao,
		ValorTotal:    nota.ValorTotal,
		ValorTributos: nota.ValorTributos,
		Protocolo:     nota.ProtocoloAutorizacao,
		Motivo:        nota.MotivoRejeicao,
		Avisos:        resultado.Avisos,
	}, nil
}

func (uc *EmitirNotaFiscalUseCase) montarItens(ctx context.Context, nota *notafiscal.NotaFiscal, pedidos []ItemEmissao) ([]*notafiscal.ItemNotaFiscal, error) {
	itens := make([]*notafiscal.ItemNotaFiscal, 0, len(pedidos))
	for idx, pedido := range pedidos {
		produto, err := uc.productRepo.FindByID(ctx, pedido.ProdutoID)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar produto: %w", err)
		}
		if produto == nil {
			return nil, fmt.Errorf("%w: %s", ErrProdutoNaoEncontrado, pedido.ProdutoID)
		}

		item, err := uc.calculadora.MontarItem(nota.ID, idx+1, produto, pedido.Quantidade, pedido.ValorUnitario)
		if err != nil {
			return nil, err
		}
		if pedido.ValorDesconto > 0 {
			if err := item.AplicarDesconto(pedido.ValorDesconto); err != nil {
				return nil, err
			}
		}
		if pedido.CodigoServico != "" {
			item.DefinirCodigoServico(pedido.CodigoServico)
		}
		itens = append(itens, item)
	}
	return itens, nil
}

// transmitir gera e assina o XML, envia para a SEFAZ e aplica o
// resultado na máquina de estados da nota
func (uc *EmitirNotaFiscalUseCase) transmitir(ctx context.Context, nota *notafiscal.NotaFiscal, itens []*notafiscal.ItemNotaFiscal, empresa *company.Company) error {
	xml, err := uc.xmlGateway.GerarXML(nota, itens)
	if err != nil {
		return fmt.Errorf("erro ao gerar XML: %w", err)
	}
	if err := nota.DefinirXMLOriginal(xml); err != nil {
		return err
	}

	xmlAssinado := xml
	if empresa.TemCertificadoValido() {
		xmlAssinado, err = uc.xmlGateway.AssinarXML(xml, empresa.Certificado)
		if err != nil {
			return fmt.Errorf("erro ao assinar XML: %w", err)
		}
	}

	if err := nota.PrepararParaEnvio(); err != nil {
		return err
	}
	if err := nota.MarcarComoEnviada(); err != nil {
		return err
	}

	if nota.Tipo == notafiscal.TipoNFSe && uc.nfseGateway != nil {
		return uc.transmitirNFSe(ctx, nota, xmlAssinado)
	}

	resposta, err := uc.sefazGateway.AutorizarNFe(ctx, xmlAssinado)
	if err != nil {
		return fmt.Errorf("erro na comunicação com a SEFAZ: %w", err)
	}

	if resposta.Sucesso {
		return nota.Autorizar(resposta.Protocolo, xmlAssinado)
	}

	motivo := resposta.Mensagem
	if len(resposta.Erros) > 0 {
		motivo = resposta.Erros[0]
	}
	return nota.Rejeitar(motivo)
}

// transmitirNFSe envia a nota de serviço para o webservice municipal.
// O código de verificação devolvido pela prefeitura vale como protocolo.
func (uc *EmitirNotaFiscalUseCase) transmitirNFSe(ctx context.Context, nota *notafiscal.NotaFiscal, xmlAssinado string) error {
	resposta, err := uc.nfseGateway.AutorizarNFSe(ctx, xmlAssinado)
	if err != nil {
		return fmt.Errorf("erro na comunicação com a prefeitura: %w", err)
	}

	if resposta.Sucesso {
		protocolo := resposta.CodigoVerificacao
		if protocolo == "" {
			protocolo = resposta.Numero
		}
		return nota.Autorizar(protocolo, xmlAssinado)
	}

	motivo := resposta.Mensagem
	if len(resposta.Erros) > 0 {
		motivo = resposta.Erros[0]
	}
	return nota.Rejeitar(motivo)
}

// posProcessar arquiva o XML autorizado, gera o DANFE e envia os
// documentos ao destinatário. Nenhuma falha aqui reverte a autorização.
func (uc *EmitirNotaFiscalUseCase) posProcessar(ctx context.Context, nota *notafiscal.NotaFiscal, itens []*notafiscal.ItemNotaFiscal, emailDestinatario string) {
	if uc.storageGateway != nil {
		if _, err := uc.storageGateway.ArmazenarXML(ctx, nota.ChaveAcesso, nota.XMLAssinado); err != nil {
			uc.logger.Warn("falha ao arquivar XML da nota",
				"nota_id", nota.ID, "error", err)
		}
	}

	var danfe []byte
	if uc.pdfGateway != nil {
		var err error
		danfe, err = uc.pdfGateway.GerarDANFE(ctx, nota, itens)
		if err != nil {
			uc.logger.Warn("falha ao gerar DANFE",
				"nota_id", nota.ID, "error", err)
			danfe = nil
		} else if uc.storageGateway != nil {
			if _, err := uc.storageGateway.ArmazenarDANFE(ctx, nota.ChaveAcesso, danfe); err != nil {
				uc.logger.Warn("falha ao arquivar DANFE",
					"nota_id", nota.ID, "error", err)
			}
		}
	}

	if uc.emailGateway != nil && emailDestinatario != "" {
		if err := uc.emailGateway.EnviarNotaFiscal(ctx, emailDestinatario, nota, nota.XMLAssinado, danfe); err != nil {
			uc.logger.Warn("falha ao enviar nota por e-mail",
				"nota_id", nota.ID, "destinatario", emailDestinatario, "error", err)
		}
	}
}
