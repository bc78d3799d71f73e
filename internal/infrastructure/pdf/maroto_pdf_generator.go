// Package pdf implementa a geração da Ordem de Compra em PDF a partir de uma
// solicitação aprovada.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Grupo ND — Compras  │  N° Pedido + Data            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SOLICITANTE: Nome + ID                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Qtd | Item | Preço Unit | Total                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  STATUS + OBSERVAÇÃO                                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	apprequests "github.com/grupond/compras-api/internal/application/requests"
	"github.com/grupond/compras-api/internal/domain/entity"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ptBR formata valores monetários com separadores brasileiros (1.234,56).
var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa requests.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

var _ apprequests.PDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator constrói o gerador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateRequestPDF gera a ordem de compra e devolve seus bytes.
func (g *MarotoPDFGenerator) GenerateRequestPDF(
	_ context.Context,
	req *entity.PurchaseRequest,
	itemName string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ordem de Compra", true).
		WithAuthor("Grupo ND", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(req))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(requesterRow(req))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRow(req, itemName))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(req))

	m.AddRows(line.NewRow(3))
	for _, r := range statusRows(req) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: título do documento (esq) e número do pedido + data (dir).
func headerRow(req *entity.PurchaseRequest) core.Row {
	data := req.Date.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("GRUPO ND — COMPRAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Ordem de Compra", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PEDIDO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(req.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+data, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// requesterRow: dados do solicitante.
func requesterRow(req *entity.PurchaseRequest) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("SOLICITANTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(req.RequesterName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
		),
	)
}

// tableHeaderRow: cabeçalho da tabela do item solicitado.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtd.", 1, align.Center),
		h("Item", 6, align.Left),
		h("Preço Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

// itemRow: linha única com o item da solicitação.
func itemRow(req *entity.PurchaseRequest, itemName string) core.Row {
	total := req.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
	return row.New(7).Add(
		col.New(1).Add(text.New(
			fmt.Sprintf("%d", req.Quantity),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(6).Add(text.New(
			itemName,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			formatBRL(req.UnitPrice),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(3).Add(text.New(
			formatBRL(total),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// totalRow: valor total do pedido alinhado à direita.
func totalRow(req *entity.PurchaseRequest) core.Row {
	total := req.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("VALOR TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatBRL(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// statusRows: status atual e observação/motivo quando existem.
func statusRows(req *entity.PurchaseRequest) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("Status: "+req.Status, props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	if req.Observation != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Observação: "+req.Observation, props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}),
		)))
	}
	if req.RejectionReason != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Motivo da rejeição: "+req.RejectionReason, props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatBRL formata um decimal como moeda brasileira: R$ 1.234,56.
func formatBRL(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return ptBR.Sprintf("R$ %.2f", f)
}

// shortID devolve o prefixo legível do UUID do pedido.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
