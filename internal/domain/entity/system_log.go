package entity

import "time"

// Ações registradas na trilha de auditoria. Os textos seguem os usados nas
// telas do sistema e são imutáveis depois de gravados.
const (
	LogNovaSolicitacao   = "Nova Solicitação"
	LogAtualizacaoPedido = "Atualização Pedido"
	LogNovoItem          = "Novo Item"
	LogEdicaoItem        = "Edição de Item"
	LogExclusaoItem      = "Exclusão de Item"
	LogSaidaEstoque      = "Saída de Estoque"
	LogNovoUsuario       = "Novo Usuário"
	LogUsuarioDesativado = "Usuário Desativado"
	LogUsuarioReativado  = "Usuário Reativado"
	LogRedefinicaoSenha  = "Redefinição de Senha"
)

// SystemLog entrada append-only da trilha de auditoria. Toda operação de
// escrita gera uma; nenhuma é atualizada ou removida.
type SystemLog struct {
	ID             string
	Action         string
	Description    string
	UserName       string
	UserID         string
	PreviousStatus string // opcional: status anterior em transições
	Timestamp      time.Time
}
