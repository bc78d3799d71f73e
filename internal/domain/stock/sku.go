package stock

import (
	"fmt"
	"strconv"
	"strings"
)

// SKUPrefix prefixo dos SKUs gerados automaticamente.
const SKUPrefix = "ND-"

// NextSKU devolve o próximo SKU sequencial no formato ND-### (três dígitos,
// zeros à esquerda): varre os SKUs existentes com o prefixo, extrai o maior
// sufixo numérico (0 se nenhum) e soma 1. Deve rodar dentro da mesma
// transação que insere o item; a unicidade canônica é a constraint da
// tabela, e uma violação vira ErrConflict para o chamador repetir.
func NextSKU(existing []string) string {
	max := 0
	for _, sku := range existing {
		if !strings.HasPrefix(sku, SKUPrefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(sku, SKUPrefix))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%03d", SKUPrefix, max+1)
}
