package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"os"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/notafiscal"
	"github.com/GuiEstevamCorrea/AxFisco/pkg/logger"
)

// Mailer envia a nota fiscal autorizada ao destinatário por SMTP.
// Sem SMTP_HOST configurado, o envio é apenas registrado no log.
type Mailer struct {
	host     string
	port     string
	from     string
	password string
	logger   logger.Logger
}

// NewMailerFromEnv cria o mailer a partir das variáveis de ambiente
// SMTP_HOST, SMTP_PORT, SMTP_FROM e SMTP_PASSWORD
func NewMailerFromEnv(log logger.Logger) *Mailer {
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	return &Mailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		from:     os.Getenv("SMTP_FROM"),
		password: os.Getenv("SMTP_PASSWORD"),
		logger:   log,
	}
}

// EnviarNotaFiscal implementa notafiscal.EmailGateway
func (m *Mailer) EnviarNotaFiscal(ctx context.Context, destinatario string, nota *notafiscal.NotaFiscal, xmlAssinado string, danfe []byte) error {
	if m.host == "" {
		m.logger.Info("envio de e-mail ignorado, SMTP não configurado",
			"destinatario", destinatario, "chave_acesso", nota.ChaveAcesso)
		return nil
	}

	assunto := fmt.Sprintf("Nota fiscal %d autorizada", nota.Numero)
	corpo := fmt.Sprintf(
		"Sua nota fiscal foi autorizada.\r\n\r\nChave de acesso: %s\r\nProtocolo: %s\r\nValor total: R$ %.2f\r\n\r\nO XML autorizado segue abaixo.\r\n\r\n%s\r\n",
		nota.ChaveAcesso, nota.ProtocoloAutorizacao, nota.ValorTotal, xmlAssinado,
	)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		m.from, destinatario, assunto, corpo,
	))

	auth := smtp.PlainAuth("", m.from, m.password, m.host)
	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.from, []string{destinatario}, msg); err != nil {
		return fmt.Errorf("erro ao enviar e-mail: %w", err)
	}

	m.logger.Info("nota fiscal enviada por e-mail",
		"destinatario", destinatario, "chave_acesso", nota.ChaveAcesso)
	return nil
}
