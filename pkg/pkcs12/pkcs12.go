package pkcs12

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"

	"software.sslmate.com/src/go-pkcs12"
)

// ErrChavePrivadaInvalida indica que o arquivo não contém uma chave RSA
var ErrChavePrivadaInvalida = errors.New("certificado não contém chave privada RSA")

// Decode extrai a chave privada RSA e o certificado de um arquivo
// PKCS12, como usados na assinatura de documentos fiscais
func Decode(pfxData []byte, password string) (*rsa.PrivateKey, *x509.Certificate, error) {
	privateKey, certificate, _, err := pkcs12.DecodeChain(pfxData, password)
	if err != nil {
		return nil, nil, err
	}

	rsaKey, ok := privateKey.(*rsa.PrivateKey)
	if !ok {
		return nil, nil, ErrChavePrivadaInvalida
	}

	return rsaKey, certificate, nil
}

// ToPEM converte um certificado PKCS12 para blocos PEM
func ToPEM(pfxData []byte, password string) ([]*pem.Block, error) {
	// Decodificar o arquivo PKCS12
	privateKey, certificate, caCerts, err := pkcs12.DecodeChain(pfxData, password)
	if err != nil {
		return nil, err
	}

	// Criar slice para armazenar os blocos PEM
	var blocks []*pem.Block

	// Adicionar o certificado principal
	if certificate != nil {
		blocks = append(blocks, &pem.Block{
			Type:  "CERTIFICATE",
			Bytes: certificate.Raw,
		})
	}

	// Adicionar certificados da cadeia (CA)
	for _, cert := range caCerts {
		blocks = append(blocks, &pem.Block{
			Type:  "CERTIFICATE",
			Bytes: cert.Raw,
		})
	}

	// Adicionar chave privada se disponível
	if privateKey != nil {
		pkData, err := x509.MarshalPKCS8PrivateKey(privateKey)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, &pem.Block{
			Type:  "PRIVATE KEY",
			Bytes: pkData,
		})
	}

	return blocks, nil
}
