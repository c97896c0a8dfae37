package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/GuiEstevamCorrea/AxFisco/internal/application/usecase"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/company"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/customer"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/notafiscal"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/product"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/valueobject"
	"github.com/GuiEstevamCorrea/AxFisco/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repositórios em memória usados pelos testes dos casos de uso

type companyRepoMem struct {
	company.Repository
	empresas map[string]*company.Company
}

func (r *companyRepoMem) FindByID(_ context.Context, id string) (*company.Company, error) {
	return r.empresas[id], nil
}

func (r *companyRepoMem) Update(_ context.Context, c *company.Company) error {
	r.empresas[c.ID] = c
	return nil
}

type customerRepoMem struct {
	customer.Repository
	clientes map[string]*customer.Customer
}

func (r *customerRepoMem) FindByID(_ context.Context, id string) (*customer.Customer, error) {
	return r.clientes[id], nil
}

func (r *customerRepoMem) Create(_ context.Context, c *customer.Customer) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *customerRepoMem) ExistsByDocument(_ context.Context, document string) (bool, error) {
	for _, c := range r.clientes {
		if c.Document.Value() == document {
			return true, nil
		}
	}
	return false, nil
}

type productRepoMem struct {
	product.Repository
	produtos map[string]*product.Product
}

func (r *productRepoMem) FindByID(_ context.Context, id string) (*product.Product, error) {
	return r.produtos[id], nil
}

type notaRepoMem struct {
	notafiscal.Repository
	notas map[string]*notafiscal.NotaFiscal
}

func (r *notaRepoMem) Create(_ context.Context, n *notafiscal.NotaFiscal) error {
	r.notas[n.ID] = n
	return nil
}

func (r *notaRepoMem) Update(_ context.Context, n *notafiscal.NotaFiscal) error {
	r.notas[n.ID] = n
	return nil
}

func (r *notaRepoMem) FindByID(_ context.Context, id string) (*notafiscal.NotaFiscal, error) {
	return r.notas[id], nil
}

func (r *notaRepoMem) List(_ context.Context, empresaID string, limit, offset int) ([]*notafiscal.NotaFiscal, error) {
	var out []*notafiscal.NotaFiscal
	for _, n := range r.notas {
		if n.EmpresaID == empresaID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *notaRepoMem) Count(_ context.Context, empresaID string) (int, error) {
	total := 0
	for _, n := range r.notas {
		if n.EmpresaID == empresaID {
			total++
		}
	}
	return total, nil
}

type itemRepoMem struct {
	notafiscal.ItemRepository
	itens map[string]*notafiscal.ItemNotaFiscal
}

func (r *itemRepoMem) Create(_ context.Context, item *notafiscal.ItemNotaFiscal) error {
	r.itens[item.ID] = item
	return nil
}

// gateways simulados

type xmlGatewayFake struct{}

func (xmlGatewayFake) GerarXML(n *notafiscal.NotaFiscal, _ []*notafiscal.ItemNotaFiscal) (string, error) {
	return fmt.Sprintf("<NFe><infNFe Id=\"NFe%s\"/></NFe>", n.ChaveAcesso), nil
}

func (xmlGatewayFake) AssinarXML(xml string, _ valueobject.CertificadoDigital) (string, error) {
	return xml + "<Signature/>", nil
}

func (xmlGatewayFake) ValidarXML(string, string) (bool, error) { return true, nil }

type sefazGatewayFake struct {
	autoriza bool
	mensagem string
}

func (g sefazGatewayFake) AutorizarNFe(context.Context, string) (*notafiscal.RespostaSefaz, error) {
	if g.autoriza {
		return &notafiscal.RespostaSefaz{
			Sucesso: true, Protocolo: "135230000000001",
			Mensagem: "Autorizado o uso da NF-e",
		}, nil
	}
	return &notafiscal.RespostaSefaz{
		Sucesso: false, Mensagem: g.mensagem,
		Erros: []string{g.mensagem},
	}, nil
}

func (g sefazGatewayFake) CancelarNFe(context.Context, string, string) (*notafiscal.RespostaSefaz, error) {
	if g.autoriza {
		return &notafiscal.RespostaSefaz{Sucesso: true, Mensagem: "Cancelamento homologado"}, nil
	}
	return &notafiscal.RespostaSefaz{Sucesso: false, Mensagem: g.mensagem}, nil
}

func (g sefazGatewayFake) ConsultarStatusNFe(context.Context, string) (*notafiscal.RespostaSefaz, error) {
	return &notafiscal.RespostaSefaz{
		Sucesso: true, Mensagem: "100 - Autorizado o uso da NF-e",
	}, nil
}

type fonteFixa struct{ codigo int }

func (f fonteFixa) CodigoNumerico() int { return f.codigo }

// fixtures

func novaEmpresa(t *testing.T) *company.Company {
	t.Helper()
	cnpj, err := valueobject.NewCNPJ("11444777000161")
	require.NoError(t, err)
	addr, err := valueobject.NewAddress(
		"Avenida Paulista", "1578", "", "Bela Vista",
		"São Paulo", "SP", "01310200", "Brasil", "3550308")
	require.NoError(t, err)

	c, err := company.NewCompany(
		"ACME Comércio Ltda", "ACME", cnpj, "110042490114",
		addr, "fiscal@acme.com.br", "11 4002-8922",
		company.TaxRegimeLucroPresumido, "12345")
	require.NoError(t, err)
	return c
}

func novoCliente(t *testing.T) *customer.Customer {
	t.Helper()
	cpf, err := valueobject.NewCPF("52998224725")
	require.NoError(t, err)
	addr, err := valueobject.NewAddress(
		"Rua das Laranjeiras", "100", "", "Centro",
		"São Paulo", "SP", "01310100", "", "3550308")
	require.NoError(t, err)

	c, err := customer.NewCustomer(
		"Maria da Silva", "maria@exemplo.com",
		customer.NewDocumentoCPF(cpf), customer.IndicadorNaoContribuinte,
		"", addr, "",
	)
	require.NoError(t, err)
	return c
}

func novoProduto(t *testing.T) *product.Product {
	t.Helper()
	p, err := product.NewProduct(
		"Arroz Tipo 1 5kg", "Arroz branco polido", "ARZ-001",
		"10063021", "5102", "UN", 50.00, product.TypeProduct,
		product.TaxInfo{
			ICMSRate: 18, PISRate: 1.65, COFINSRate: 7.6,
			CSTICMS: "00", CSTPIS: "01", CSTCOFINS: "01",
		},
	)
	require.NoError(t, err)
	return p
}

type cenario struct {
	companyRepo  *companyRepoMem
	customerRepo *customerRepoMem
	productRepo  *productRepoMem
	notaRepo     *notaRepoMem
	itemRepo     *itemRepoMem
	empresa      *company.Company
	cliente      *customer.Customer
	produto      *product.Product
}

func novoCenario(t *testing.T) *cenario {
	t.Helper()
	c := &cenario{
		companyRepo:  &companyRepoMem{empresas: map[string]*company.Company{}},
		customerRepo: &customerRepoMem{clientes: map[string]*customer.Customer{}},
		productRepo:  &productRepoMem{produtos: map[string]*product.Product{}},
		notaRepo:     &notaRepoMem{notas: map[string]*notafiscal.NotaFiscal{}},
		itemRepo:     &itemRepoMem{itens: map[string]*notafiscal.ItemNotaFiscal{}},
		empresa:      novaEmpresa(t),
		cliente:      novoCliente(t),
		produto:      novoProduto(t),
	}
	c.companyRepo.empresas[c.empresa.ID] = c.empresa
	c.customerRepo.clientes[c.cliente.ID] = c.cliente
	c.productRepo.produtos[c.produto.ID] = c.produto
	return c
}

func (c *cenario) emissor(autoriza bool, mensagem string) *usecase.EmitirNotaFiscalUseCase {
	return usecase.NewEmitirNotaFiscalUseCase(
		c.companyRepo, c.customerRepo, c.productRepo, c.notaRepo, c.itemRepo,
		xmlGatewayFake{}, sefazGatewayFake{autoriza: autoriza, mensagem: mensagem},
		fonteFixa{codigo: 42}, logger.NewNopLogger(),
	)
}

func TestEmitirNotaFiscal_Autorizada(t *testing.T) {
	c := novoCenario(t)
	uc := c.emissor(true, "")

	resultado, err := uc.Execute(context.Background(), usecase.EmitirNotaFiscalInput{
		EmpresaID: c.empresa.ID,
		ClienteID: c.cliente.ID,
		Tipo:      notafiscal.TipoNFe,
		Itens: []usecase.ItemEmissao{
			{ProdutoID: c.produto.ID, Quantidade: 10},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resultado.Numero)
	assert.Equal(t, 1, resultado.Serie)
	assert.Len(t, resultado.ChaveAcesso, 44)
	assert.Equal(t, "35", resultado.ChaveAcesso[:2])
	assert.Equal(t, notafiscal.StatusAutorizada, resultado.Status)
	assert.Equal(t, "135230000000001", resultado.Protocolo)
	assert.InDelta(t, 500.00, resultado.ValorTotal, 0.001)
	// ICMS 18% + PIS 1,65% + COFINS 7,6% sobre 500
	assert.InDelta(t, 136.25, resultado.ValorTributos, 0.001)

	// contador da empresa avançou e a nota ficou persistida
	assert.Equal(t, int64(1), c.empresa.UltimoNumeroNFe)
	nota := c.notaRepo.notas[resultado.ID]
	require.NotNil(t, nota)
	assert.True(t, nota.EstaAutorizada())
	assert.NotEmpty(t, nota.XMLOriginal)
}

func TestEmitirNotaFiscal_Rejeitada(t *testing.T) {
	c := novoCenario(t)
	uc := c.emissor(false, "Rejeição 539: duplicidade de NF-e")

	resultado, err := uc.Execute(context.Background(), usecase.EmitirNotaFiscalInput{
		EmpresaID: c.empresa.ID,
		ClienteID: c.cliente.ID,
		Tipo:      notafiscal.TipoNFe,
		Itens:     []usecase.ItemEmissao{{ProdutoID: c.produto.ID, Quantidade: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, notafiscal.StatusRejeitada, resultado.Status)
	assert.Equal(t, "Rejeição 539: duplicidade de NF-e", resultado.Motivo)
}

func TestEmitirNotaFiscal_Erros(t *testing.T) {
	c := novoCenario(t)
	uc := c.emissor(true, "")
	ctx := context.Background()

	_, err := uc.Execute(ctx, usecase.EmitirNotaFiscalInput{
		EmpresaID: "inexistente", ClienteID: c.cliente.ID,
		Tipo:  notafiscal.TipoNFe,
		Itens: []usecase.ItemEmissao{{ProdutoID: c.produto.ID, Quantidade: 1}},
	})
	assert.ErrorIs(t, err, usecase.ErrEmpresaNaoEncontrada)

	_, err = uc.Execute(ctx, usecase.EmitirNotaFiscalInput{
		EmpresaID: c.empresa.ID, ClienteID: "inexistente",
		Tipo:  notafiscal.TipoNFe,
		Itens: []usecase.ItemEmissao{{ProdutoID: c.produto.ID, Quantidade: 1}},
	})
	assert.ErrorIs(t, err, usecase.ErrClienteNaoEncontrado)

	_, err = uc.Execute(ctx, usecase.EmitirNotaFiscalInput{
		EmpresaID: c.empresa.ID, ClienteID: c.cliente.ID,
		Tipo:  notafiscal.TipoNFe,
		Itens: []usecase.ItemEmissao{{ProdutoID: "inexistente", Quantidade: 1}},
	})
	assert.ErrorIs(t, err, usecase.ErrProdutoNaoEncontrado)

	_, err = uc.Execute(ctx, usecase.EmitirNotaFiscalInput{
		EmpresaID: c.empresa.ID, ClienteID: c.cliente.ID,
		Tipo: notafiscal.TipoNFe,
	})
	assert.ErrorIs(t, err, usecase.ErrNotaSemItens)

	_, err = uc.Execute(ctx, usecase.EmitirNotaFiscalInput{
		EmpresaID: c.empresa.ID, ClienteID: c.cliente.ID,
		Tipo:  notafiscal.TipoNotaFiscal("CTE"),
		Itens: []usecase.ItemEmissao{{ProdutoID: c.produto.ID, Quantidade: 1}},
	})
	assert.ErrorIs(t, err, usecase.ErrTipoNotaInvalido)
}

func TestEmitirNotaFiscal_ReprovadaNaValidacao(t *testing.T) {
	c := novoCenario(t)
	c.empresa.Deactivate()
	uc := c.emissor(true, "")

	_, err := uc.Execute(context.Background(), usecase.EmitirNotaFiscalInput{
		EmpresaID: c.empresa.ID, ClienteID: c.cliente.ID,
		Tipo:  notafiscal.TipoNFe,
		Itens: []usecase.ItemEmissao{{ProdutoID: c.produto.ID, Quantidade: 1}},
	})
	assert.ErrorIs(t, err, usecase.ErrNotaInvalida)
}

func TestValidarDadosNotaFiscal(t *testing.T) {
	c := novoCenario(t)
	uc := usecase.NewValidarDadosNotaFiscalUseCase(
		c.companyRepo, c.customerRepo, c.productRepo, logger.NewNopLogger())

	resultado, err := uc.Execute(context.Background(), usecase.ValidarDadosInput{
		EmpresaID: c.empresa.ID,
		ClienteID: c.cliente.ID,
		Tipo:      notafiscal.TipoNFe,
		Itens:     []usecase.ItemEmissao{{ProdutoID: c.produto.ID, Quantidade: 10}},
	})
	require.NoError(t, err)

	assert.True(t, resultado.Valida)
	assert.InDelta(t, 500.00, resultado.ValorTotal, 0.001)
	assert.InDelta(t, 136.25, resultado.ValorTributos, 0.001)
}

func TestConsultarStatusNotaFiscal(t *testing.T) {
	c := novoCenario(t)
	uc := c.emissor(true, "")
	ctx := context.Background()

	emitida, err := uc.Execute(ctx, usecase.EmitirNotaFiscalInput{
		EmpresaID: c.empresa.ID, ClienteID: c.cliente.ID,
		Tipo:  notafiscal.TipoNFe,
		Itens: []usecase.ItemEmissao{{ProdutoID: c.produto.ID, Quantidade: 1}},
	})
	require.NoError(t, err)

	consulta := usecase.NewConsultarStatusNotaFiscalUseCase(
		c.notaRepo, sefazGatewayFake{autoriza: true}, logger.NewNopLogger())

	status, err := consulta.Execute(ctx, emitida.ID)
	require.NoError(t, err)
	assert.Equal(t, notafiscal.StatusAutorizada, status.Status)
	assert.Equal(t, "100 - Autorizado o uso da NF-e", status.SituacaoSefaz)

	_, err = consulta.Execute(ctx, "inexistente")
	assert.ErrorIs(t, err, usecase.ErrNotaNaoEncontrada)
}

func TestCancelarNotaFiscal(t *testing.T) {
	c := novoCenario(t)
	uc := c.emissor(true, "")
	ctx := context.Background()

	emitida, err := uc.Execute(ctx, usecase.EmitirNotaFiscalInput{
		EmpresaID: c.empresa.ID, ClienteID: c.cliente.ID,
		Tipo:  notafiscal.TipoNFe,
		Itens: []usecase.ItemEmissao{{ProdutoID: c.produto.ID, Quantidade: 1}},
	})
	require.NoError(t, err)

	cancelar := usecase.NewCancelarNotaFiscalUseCase(
		c.notaRepo, sefazGatewayFake{autoriza: true}, logger.NewNopLogger())

	nota, err := cancelar.Execute(ctx, emitida.ID, "erro de digitação")
	require.NoError(t, err)
	assert.True(t, nota.EstaCancelada())

	// nota já cancelada não pode ser cancelada de novo
	_, err = cancelar.Execute(ctx, emitida.ID, "outro motivo")
	assert.ErrorIs(t, err, notafiscal.ErrNotaNaoAutorizada)
}

func TestListarNotasFiscais(t *testing.T) {
	c := novoCenario(t)
	uc := c.emissor(true, "")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := uc.Execute(ctx, usecase.EmitirNotaFiscalInput{
			EmpresaID: c.empresa.ID, ClienteID: c.cliente.ID,
			Tipo:  notafiscal.TipoNFe,
			Itens: []usecase.ItemEmissao{{ProdutoID: c.produto.ID, Quantidade: 1}},
		})
		require.NoError(t, err)
	}

	listar := usecase.NewListarNotasFiscaisUseCase(c.notaRepo, logger.NewNopLogger())
	listagem, err := listar.Execute(ctx, usecase.ListarNotasInput{EmpresaID: c.empresa.ID})
	require.NoError(t, err)

	assert.Equal(t, 3, listagem.Total)
	assert.Len(t, listagem.Notas, 3)
}

func TestCreateCustomer(t *testing.T) {
	c := novoCenario(t)
	uc := usecase.NewCreateCustomerUseCase(c.customerRepo, logger.NewNopLogger())
	ctx := context.Background()

	cliente, err := uc.Execute(ctx, usecase.CreateCustomerInput{
		Name:        "Distribuidora Alfa Ltda",
		Email:       "fiscal@alfa.com.br",
		Document:    "11.222.333/0001-81",
		IndicadorIE: string(customer.IndicadorContribuinte),
		StateRegistration: "110042490114",
	})
	require.NoError(t, err)
	assert.True(t, cliente.IsLegalEntity())

	// documento duplicado é rejeitado
	_, err = uc.Execute(ctx, usecase.CreateCustomerInput{
		Name:        "Outra Empresa",
		Email:       "outra@exemplo.com",
		Document:    "11222333000181",
		IndicadorIE: string(customer.IndicadorNaoContribuinte),
	})
	assert.ErrorIs(t, err, usecase.ErrClienteJaCadastrado)

	_, err = uc.Execute(ctx, usecase.CreateCustomerInput{
		Name:        "Documento curto",
		Email:       "doc@exemplo.com",
		Document:    "123",
		IndicadorIE: string(customer.IndicadorNaoContribuinte),
	})
	assert.ErrorIs(t, err, usecase.ErrDocumentoInvalido)
}
