package sefaz

import (
	"context"
	"testing"

	"github.com/GuiEstevamCorrea/AxFisco/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_AmbientePadrao(t *testing.T) {
	c := NewClient("qualquer-coisa", logger.NewNopLogger())
	assert.Equal(t, ambienteHomologacao, c.ambiente)
	assert.Equal(t, baseURLHomologacao, c.baseURL)

	p := NewClient("producao", logger.NewNopLogger())
	assert.Equal(t, ambienteProducao, p.ambiente)
	assert.Equal(t, baseURLProducao, p.baseURL)
}

func TestAutorizarNFe_Homologacao(t *testing.T) {
	c := NewClient("homologacao", logger.NewNopLogger())

	resposta, err := c.AutorizarNFe(context.Background(), "<NFe/>")
	require.NoError(t, err)

	assert.True(t, resposta.Sucesso)
	assert.Equal(t, "Autorizado o uso da NF-e", resposta.Mensagem)
	assert.NotEmpty(t, resposta.Protocolo)
	assert.Contains(t, resposta.Protocolo, "SP")
}

func TestCancelarNFe_Homologacao(t *testing.T) {
	c := NewClient("homologacao", logger.NewNopLogger())

	resposta, err := c.CancelarNFe(context.Background(),
		"35230811444777000161550010000001231123456785", "erro de digitação")
	require.NoError(t, err)

	assert.True(t, resposta.Sucesso)
	assert.Equal(t, "Cancelamento de NF-e homologado", resposta.Mensagem)
}

func TestConsultarStatusNFe_Homologacao(t *testing.T) {
	c := NewClient("homologacao", logger.NewNopLogger())

	resposta, err := c.ConsultarStatusNFe(context.Background(),
		"35230811444777000161550010000001231123456785")
	require.NoError(t, err)

	assert.True(t, resposta.Sucesso)
	assert.Equal(t, "Autorizado o uso da NF-e", resposta.Mensagem)
}

func TestInterpretarAutorizacao(t *testing.T) {
	c := NewClient("producao", logger.NewNopLogger())

	autorizada := c.interpretarAutorizacao(
		`<retEnviNFe><cStat>100</cStat><nProt>135230000000099</nProt></retEnviNFe>`)
	assert.True(t, autorizada.Sucesso)
	assert.Equal(t, "135230000000099", autorizada.Protocolo)

	rejeitada := c.interpretarAutorizacao(
		`<retEnviNFe><cStat>539</cStat><xMotivo>Rejeição 539: duplicidade</xMotivo></retEnviNFe>`)
	assert.False(t, rejeitada.Sucesso)
	assert.Equal(t, "Rejeição 539: duplicidade", rejeitada.Mensagem)
	assert.Equal(t, []string{"Rejeição 539: duplicidade"}, rejeitada.Erros)
}

func TestExtrairTag(t *testing.T) {
	assert.Equal(t, "100", extrairTag("<a><cStat>100</cStat></a>", "cStat"))
	assert.Equal(t, "", extrairTag("<a><cStat>100</cStat></a>", "nProt"))
	assert.Equal(t, "", extrairTag("<a><cStat>100", "cStat"))
}

func TestNFSeClient_Homologacao(t *testing.T) {
	c := NewNFSeClient("homologacao", logger.NewNopLogger())
	ctx := context.Background()

	emitida, err := c.AutorizarNFSe(ctx, "<Rps/>")
	require.NoError(t, err)
	assert.True(t, emitida.Sucesso)
	assert.NotEmpty(t, emitida.Numero)
	assert.Len(t, emitida.CodigoVerificacao, 8)

	cancelada, err := c.CancelarNFSe(ctx, emitida.Numero, emitida.CodigoVerificacao, "erro")
	require.NoError(t, err)
	assert.True(t, cancelada.Sucesso)

	situacao, err := c.ConsultarStatusNFSe(ctx, emitida.Numero)
	require.NoError(t, err)
	assert.True(t, situacao.Sucesso)
}
