package dispatch

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Fixed reply texts. Anything the user sees lives here or in the handler
// that formats it; raw error strings never do.
const (
	replyNotRegistered = "Você ainda não está cadastrado. Peça ao administrador para liberar seu acesso. 🙂"
	replyApology       = "😕 Tive um problema para processar sua mensagem. Tente novamente em instantes."
	replyGreeting      = "Olá! 👋 Eu sou seu assistente financeiro.\n" +
		"Você pode me contar um gasto (\"gastei 25 no mercado\"), registrar uma renda, " +
		"agendar e pagar contas, definir metas por categoria e pedir relatórios " +
		"(\"quanto gastei essa semana?\")."
	replyAskAmount      = "Não entendi o valor. 🤔 Pode repetir informando quanto foi?"
	replyAskCategory    = "Não entendi a categoria. Pode repetir dizendo em que foi o gasto?"
	replyAskBank        = "Em qual banco você recebeu? Me conta o nome da conta."
	replyAskDescription = "Qual conta você quer pagar? Me diga a descrição dela."
)

var monthNamesPT = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// monthName returns the Portuguese name of t's month, lower-cased.
func monthName(t time.Time) string {
	return monthNamesPT[int(t.Month())-1]
}

// money formats an amount in the local currency with two decimal places.
func money(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

// capitalize upper-cases the first rune, for displaying stored
// lower-cased labels.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// joinLines joins reply fragments, skipping empties.
func joinLines(lines ...string) string {
	parts := lines[:0]
	for _, l := range lines {
		if l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, "\n")
}
