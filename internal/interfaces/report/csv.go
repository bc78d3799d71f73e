// Package report gera os relatórios CSV de estoque, pedidos e auditoria.
//
// O formato segue a planilha esperada pelo setor de compras: BOM UTF-8 para o
// Excel reconhecer acentos, ponto e vírgula como separador e campos com
// delimitador ou quebra de linha entre aspas duplas.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/grupond/compras-api/internal/application/dto"
)

const utf8BOM = "\uFEFF"

// Filename monta o nome do arquivo: Relatorio_<Tipo>_AAAA-MM-DD.csv.
func Filename(kind string, now time.Time) string {
	return fmt.Sprintf("Relatorio_%s_%s.csv", kind, now.Format("2006-01-02"))
}

// StockCSV gera o relatório de estoque a partir da listagem com status de
// exibição derivado.
func StockCSV(items []dto.ItemResponse) ([]byte, error) {
	rows := [][]string{
		{"SKU", "Item", "Categoria", "Qtd Atual", "Unidade", "Preço Unit", "Valor Total", "Status"},
	}
	for _, item := range items {
		total := item.Price.Mul(decimal.NewFromInt(int64(item.CurrentQty)))
		rows = append(rows, []string{
			item.SKU,
			item.Name,
			item.Category,
			strconv.Itoa(item.CurrentQty),
			item.Unit,
			item.Price.StringFixed(2),
			total.StringFixed(2),
			item.DisplayStatus,
		})
	}
	return render(rows)
}

// OrdersCSV gera o relatório de solicitações de compra.
func OrdersCSV(reqs []dto.RequestResponse) ([]byte, error) {
	rows := [][]string{
		{"ID", "Data", "Solicitante", "Item", "Categoria", "Qtd", "Preço Unit", "Valor Total", "Status", "Observacao"},
	}
	for _, req := range reqs {
		total := req.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
		rows = append(rows, []string{
			req.ID,
			req.Date.Format("02/01/2006"),
			req.RequesterName,
			req.ItemName,
			req.ItemCategory,
			strconv.Itoa(req.Quantity),
			req.UnitPrice.StringFixed(2),
			total.StringFixed(2),
			req.Status,
			req.Observation,
		})
	}
	return render(rows)
}

// LogsCSV gera o relatório da trilha de auditoria.
func LogsCSV(logs []dto.LogResponse) ([]byte, error) {
	rows := [][]string{
		{"Data Hora", "Usuario", "Acao", "Descricao"},
	}
	for _, log := range logs {
		rows = append(rows, []string{
			log.Timestamp.Format("02/01/2006 15:04:05"),
			log.UserName,
			log.Action,
			log.Description,
		})
	}
	return render(rows)
}

func render(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	w := csv.NewWriter(&buf)
	w.Comma = ';'
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("escrever csv: %w", err)
	}
	return buf.Bytes(), nil
}
