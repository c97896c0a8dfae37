package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuiEstevamCorrea/AxFisco/internal/application/usecase"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/notafiscal"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/product"
)

type nfseGatewayFake struct {
	autoriza bool
	mensagem string
}

func (g nfseGatewayFake) AutorizarNFSe(context.Context, string) (*notafiscal.RespostaNFSe, error) {
	if g.autoriza {
		return &notafiscal.RespostaNFSe{
			Sucesso: true, Numero: "2024000001",
			CodigoVerificacao: "ABC123XYZ", Mensagem: "NFS-e emitida",
		}, nil
	}
	return &notafiscal.RespostaNFSe{
		Sucesso: false, Mensagem: g.mensagem, Erros: []string{g.mensagem},
	}, nil
}

func (g nfseGatewayFake) CancelarNFSe(context.Context, string, string, string) (*notafiscal.RespostaNFSe, error) {
	return &notafiscal.RespostaNFSe{Sucesso: g.autoriza, Mensagem: g.mensagem}, nil
}

func (g nfseGatewayFake) ConsultarStatusNFSe(context.Context, string) (*notafiscal.RespostaNFSe, error) {
	return &notafiscal.RespostaNFSe{Sucesso: true, Mensagem: "NFS-e normal"}, nil
}

// gateways de pós-processamento que sinalizam cada etapa executada

type pdfGatewayFake struct{ chamado chan struct{} }

func (g pdfGatewayFake) GerarDANFE(context.Context, *notafiscal.NotaFiscal, []*notafiscal.ItemNotaFiscal) ([]byte, error) {
	g.chamado <- struct{}{}
	return []byte("danfe"), nil
}

type emailGatewayFake struct{ destinatarios chan string }

func (g emailGatewayFake) EnviarNotaFiscal(_ context.Context, destinatario string, _ *notafiscal.NotaFiscal, _ string, _ []byte) error {
	g.destinatarios <- destinatario
	return nil
}

type storageGatewayFake struct{ arquivos chan string }

func (g storageGatewayFake) ArmazenarXML(_ context.Context, chaveAcesso, _ string) (string, error) {
	g.arquivos <- chaveAcesso + ".xml"
	return chaveAcesso + ".xml", nil
}

func (g storageGatewayFake) ArmazenarDANFE(_ context.Context, chaveAcesso string, _ []byte) (string, error) {
	g.arquivos <- chaveAcesso + "-danfe.pdf"
	return chaveAcesso + "-danfe.pdf", nil
}

func novoServico(t *testing.T) *product.Product {
	t.Helper()
	p, err := product.NewProduct(
		"Consultoria fiscal", "Consultoria em apuração de tributos", "SRV-001",
		"00000000", "5933", "UN", 200.00, product.TypeService,
		product.TaxInfo{ISSRate: 2, CSTPIS: "01", CSTCOFINS: "01"},
	)
	require.NoError(t, err)
	return p
}

func TestEmitirNotaFiscal_NFSeAutorizada(t *testing.T) {
	c := novoCenario(t)
	servico := novoServico(t)
	c.productRepo.produtos[servico.ID] = servico

	uc := c.emissor(true, "").ComGatewayNFSe(nfseGatewayFake{autoriza: true})

	resultado, err := uc.Execute(context.Background(), usecase.EmitirNotaFiscalInput{
		EmpresaID: c.empresa.ID,
		ClienteID: c.cliente.ID,
		Tipo:      notafiscal.TipoNFSe,
		Itens: []usecase.ItemEmissao{
			{ProdutoID: servico.ID, Quantidade: 2, CodigoServico: "01.07"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, notafiscal.StatusAutorizada, resultado.Status)
	// o código de verificação da prefeitura vale como protocolo
	assert.Equal(t, "ABC123XYZ", resultado.Protocolo)
	assert.InDelta(t, 400.00, resultado.ValorTotal, 0.001)

	// numeração de serviço independente da numeração de NF-e
	assert.Equal(t, int64(1), c.empresa.UltimoNumeroNFSe)
	assert.Equal(t, int64(0), c.empresa.UltimoNumeroNFe)
}

func TestEmitirNotaFiscal_NFSeRejeitada(t *testing.T) {
	c := novoCenario(t)
	servico := novoServico(t)
	c.productRepo.produtos[servico.ID] = servico

	uc := c.emissor(true, "").
		ComGatewayNFSe(nfseGatewayFake{autoriza: false, mensagem: "Inscrição municipal irregular"})

	resultado, err := uc.Execute(context.Background(), usecase.EmitirNotaFiscalInput{
		EmpresaID: c.empresa.ID,
		ClienteID: c.cliente.ID,
		Tipo:      notafiscal.TipoNFSe,
		Itens: []usecase.ItemEmissao{
			{ProdutoID: servico.ID, Quantidade: 1, CodigoServico: "01.07"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, notafiscal.StatusRejeitada, resultado.Status)
	assert.Equal(t, "Inscrição municipal irregular", resultado.Motivo)
}

func TestEmitirNotaFiscal_PosProcessamento(t *testing.T) {
	c := novoCenario(t)

	pdf := pdfGatewayFake{chamado: make(chan struct{}, 1)}
	email := emailGatewayFake{destinatarios: make(chan string, 1)}
	armazem := storageGatewayFake{arquivos: make(chan string, 2)}

	uc := c.emissor(true, "").ComPosProcessamento(pdf, email, armazem)

	resultado, err := uc.Execute(context.Background(), usecase.EmitirNotaFiscalInput{
		EmpresaID: c.empresa.ID,
		ClienteID: c.cliente.ID,
		Tipo:      notafiscal.TipoNFe,
		Itens:     []usecase.ItemEmissao{{ProdutoID: c.produto.ID, Quantidade: 1}},
	})
	require.NoError(t, err)
	require.Equal(t, notafiscal.StatusAutorizada, resultado.Status)

	esperar := func(nome string, recebe func() bool) {
		t.Helper()
		prazo := time.After(2 * time.Second)
		for {
			select {
			case <-prazo:
				t.Fatalf("pós-processamento não executou: %s", nome)
			default:
				if recebe() {
					return
				}
				time.Sleep(10 * time.Millisecond)
			}
		}
	}

	esperar("geração do DANFE", func() bool {
		select {
		case <-pdf.chamado:
			return true
		default:
			return false
		}
	})
	esperar("envio de e-mail", func() bool {
		select {
		case destinatario := <-email.destinatarios:
			assert.Equal(t, c.cliente.Email, destinatario)
			return true
		default:
			return false
		}
	})

	arquivados := map[string]bool{}
	esperar("arquivamento dos documentos", func() bool {
		select {
		case nome := <-armazem.arquivos:
			arquivados[nome] = true
		default:
		}
		return len(arquivados) == 2
	})
	assert.True(t, arquivados[resultado.ChaveAcesso+".xml"])
	assert.True(t, arquivados[resultado.ChaveAcesso+"-danfe.pdf"])
}
