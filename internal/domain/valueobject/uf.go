package valueobject

import (
	"fmt"
	"strings"
)

// codigosUF mapeia as 27 unidades federativas para seus códigos IBGE,
// usados no endereço e na composição da chave de acesso da NF-e.
var codigosUF = map[string]string{
	"AC": "12", "AL": "27", "AP": "16", "AM": "13", "BA": "29", "CE": "23",
	"DF": "53", "ES": "32", "GO": "52", "MA": "21", "MT": "51", "MS": "50",
	"MG": "31", "PA": "15", "PB": "25", "PR": "41", "PE": "26", "PI": "22",
	"RJ": "33", "RN": "24", "RS": "43", "RO": "11", "RR": "14", "SC": "42",
	"SP": "35", "SE": "28", "TO": "17",
}

// UFValida verifica se a sigla informada é uma das 27 unidades federativas
func UFValida(uf string) bool {
	_, ok := codigosUF[strings.ToUpper(strings.TrimSpace(uf))]
	return ok
}

// CodigoUF retorna o código IBGE de duas posições da unidade federativa
func CodigoUF(uf string) (string, error) {
	codigo, ok := codigosUF[strings.ToUpper(strings.TrimSpace(uf))]
	if !ok {
		return "", fmt.Errorf("UF inválida: %s", uf)
	}
	return codigo, nil
}
