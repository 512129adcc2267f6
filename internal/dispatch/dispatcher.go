// Package dispatch turns one classified utterance into ledger mutations
// and a user-facing reply. Handle never returns an error: every failure
// path ends in a fixed reply, and store or classifier internals are
// logged, never echoed back to the chat.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "finbot/internal/errors"
	"finbot/internal/intent"
	"finbot/internal/logger"
	"finbot/internal/models"
	"finbot/internal/services"
)

// Deps holds the collaborators the dispatcher orchestrates.
type Deps struct {
	Users        services.UserServicer
	Transactions services.TransactionServicer
	Accounts     services.AccountServicer
	Bills        services.BillServicer
	Reports      services.ReportServicer
	Goals        services.GoalServicer
	Classifier   intent.Classifier
	Location     *time.Location
}

// Dispatcher validates classifier output, selects a handler, and composes
// the reply.
type Dispatcher struct {
	deps Deps
}

// New creates a Dispatcher.
func New(deps Deps) *Dispatcher {
	return &Dispatcher{deps: deps}
}

// Handle processes one inbound utterance for a chat and returns the reply
// text. Unregistered chats get a fixed reply without a classifier call;
// classification failures degrade to the chat fallback.
func (d *Dispatcher) Handle(ctx context.Context, chatID int64, text string) string {
	user, err := d.deps.Users.GetUserByChatID(chatID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotRegistered) {
			return replyNotRegistered
		}
		return d.fail("resolving user", chatID, err)
	}

	in, err := d.deps.Classifier.Classify(ctx, text)
	if err != nil {
		logger.Get().Warnw("classification failed, falling back to chat",
			"chat_id", chatID,
			"error", err.Error(),
		)
		in = &intent.Intent{Action: intent.ActionChat}
	}

	switch in.Action {
	case intent.ActionAddExpense:
		return d.addExpense(user, in)
	case intent.ActionAddIncome:
		return d.addIncome(user, in)
	case intent.ActionGetBalance:
		return d.getBalance(user, in)
	case intent.ActionAddBill:
		return d.addBill(user, in)
	case intent.ActionListBills:
		return d.listBills(user, in)
	case intent.ActionPayBill:
		return d.payBill(user, in)
	case intent.ActionGetReport:
		return d.getReport(user, in)
	case intent.ActionReportCategory:
		return d.reportCategory(user, in)
	case intent.ActionTopCategory:
		return d.topCategory(user, in)
	case intent.ActionListCategories:
		return d.listCategories(user)
	case intent.ActionSetGoal:
		return d.setGoal(user, in)
	default:
		return replyGreeting
	}
}

func (d *Dispatcher) addExpense(user *models.User, in *intent.Intent) string {
	if !in.HasAmount() {
		return replyAskAmount
	}
	if in.Category == "" {
		return replyAskCategory
	}

	res, err := d.deps.Transactions.AddExpense(user.ID, in.Amount, in.Category, in.Description, in.Bank)
	if err != nil {
		return d.fail("adding expense", user.TelegramChatID, err)
	}

	reply := fmt.Sprintf("✅ Gasto registrado: %s em %s", money(res.Transaction.Amount), res.Transaction.Category)
	if res.Account != nil {
		reply += fmt.Sprintf("\n🏦 %s: saldo %s", res.Account.BankName, money(res.Account.Balance))
	}
	return joinLines(reply, d.goalNote(user, in.Category))
}

// goalNote appends budget progress when a goal exists for the category.
// Failures here never spoil an already-recorded expense.
func (d *Dispatcher) goalNote(user *models.User, category string) string {
	prog, err := d.deps.Goals.Progress(user.ID, category)
	if err != nil {
		if !errors.Is(err, apperrors.ErrGoalNotFound) {
			logger.Get().Warnw("goal progress lookup failed", "chat_id", user.TelegramChatID, "error", err.Error())
		}
		return ""
	}
	label := capitalize(strings.ToLower(strings.TrimSpace(category)))
	if prog.Remaining.IsNegative() {
		return fmt.Sprintf("🚨 Meta de %s estourada em %s!", label, money(prog.Remaining.Neg()))
	}
	return fmt.Sprintf("🎯 Meta de %s: restam %s esse mês.", label, money(prog.Remaining))
}

func (d *Dispatcher) addIncome(user *models.User, in *intent.Intent) string {
	if !in.HasAmount() {
		return replyAskAmount
	}
	if in.Bank == "" {
		return replyAskBank
	}

	account, err := d.deps.Accounts.AddIncome(user.ID, in.Bank, in.Amount)
	if err != nil {
		return d.fail("adding income", user.TelegramChatID, err)
	}
	return fmt.Sprintf("💰 %s recebidos no %s. Saldo atual: %s",
		money(in.Amount), account.BankName, money(account.Balance))
}

func (d *Dispatcher) getBalance(user *models.User, in *intent.Intent) string {
	accounts, err := d.deps.Accounts.GetAccounts(user.ID, in.Bank)
	if err != nil {
		return d.fail("listing accounts", user.TelegramChatID, err)
	}
	if len(accounts) == 0 {
		return "Você ainda não tem contas cadastradas. Registre uma renda para criar a primeira. 🙂"
	}

	lines := make([]string, 0, len(accounts)+1)
	lines = append(lines, "🏦 Saldos:")
	for _, a := range accounts {
		lines = append(lines, fmt.Sprintf("• %s: %s", a.BankName, money(a.Balance)))
	}
	return strings.Join(lines, "\n")
}

func (d *Dispatcher) addBill(user *models.User, in *intent.Intent) string {
	if !in.HasAmount() {
		return replyAskAmount
	}
	if in.Description == "" {
		return replyAskDescription
	}

	bill, err := d.deps.Bills.AddBill(user.ID, in.Amount, in.Description, in.DueDay)
	if err != nil {
		return d.fail("adding bill", user.TelegramChatID, err)
	}

	reply := fmt.Sprintf("📌 Conta agendada: %s — %s", bill.Description, money(bill.Amount))
	if bill.DueDay > 0 {
		reply += fmt.Sprintf(" (vence dia %d)", bill.DueDay)
	}
	return reply
}

func (d *Dispatcher) listBills(user *models.User, in *intent.Intent) string {
	month := in.Month
	if month == "" {
		month = monthName(time.Now().In(d.deps.Location))
	}

	bills, err := d.deps.Bills.ListBills(user.ID, month)
	if err != nil {
		return d.fail("listing bills", user.TelegramChatID, err)
	}
	if len(bills) == 0 {
		return fmt.Sprintf("🙌 Não encontrei faturas pendentes para %s.", capitalize(month))
	}

	lines := make([]string, 0, len(bills)+1)
	lines = append(lines, fmt.Sprintf("⏳ Faturas pendentes (%s):", capitalize(month)))
	for _, b := range bills {
		lines = append(lines, fmt.Sprintf("• %s: %s", b.Description, money(b.Amount)))
	}
	return strings.Join(lines, "\n")
}

func (d *Dispatcher) payBill(user *models.User, in *intent.Intent) string {
	if in.Description == "" {
		return replyAskDescription
	}

	res, err := d.deps.Bills.PayBill(user.ID, in.Description, in.Month, in.Bank)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrBillNotFound):
			return fmt.Sprintf("Não encontrei nenhuma fatura pendente parecida com \"%s\".", in.Description)
		case errors.Is(err, apperrors.ErrAccountNotFound):
			return fmt.Sprintf("Não encontrei a conta do banco \"%s\" — a fatura continua pendente.", in.Bank)
		default:
			return d.fail("paying bill", user.TelegramChatID, err)
		}
	}

	reply := fmt.Sprintf("✅ Fatura paga: %s — %s", res.Bill.Description, money(res.Bill.Amount))
	if res.Account != nil {
		reply += fmt.Sprintf("\n🏦 Debitado do %s. Saldo: %s", res.Account.BankName, money(res.Account.Balance))
	}
	return reply
}

func (d *Dispatcher) getReport(user *models.User, in *intent.Intent) string {
	w := services.ParseWindow(in.Period)
	total, err := d.deps.Reports.SumExpenses(user.ID, w)
	if err != nil {
		return d.fail("summing expenses", user.TelegramChatID, err)
	}
	return fmt.Sprintf("📊 Você gastou %s %s.", money(total), w.Label())
}

func (d *Dispatcher) reportCategory(user *models.User, in *intent.Intent) string {
	w := services.ParseWindow(in.Period)
	rows, err := d.deps.Reports.SumByCategory(user.ID, w)
	if err != nil {
		return d.fail("summing by category", user.TelegramChatID, err)
	}
	if len(rows) == 0 {
		return fmt.Sprintf("Nenhum gasto registrado %s. 🎉", w.Label())
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, fmt.Sprintf("📊 Gastos por categoria (%s):", w.Label()))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("• %s: %s", capitalize(r.Category), money(r.Total)))
	}
	return strings.Join(lines, "\n")
}

func (d *Dispatcher) topCategory(user *models.User, in *intent.Intent) string {
	w := services.ParseWindow(in.Period)
	top, err := d.deps.Reports.TopCategory(user.ID, w)
	if err != nil {
		return d.fail("finding top category", user.TelegramChatID, err)
	}
	if top == nil {
		return fmt.Sprintf("Nenhum gasto registrado %s. 🎉", w.Label())
	}
	return fmt.Sprintf("🏆 Maior gasto %s: %s (%s)", w.Label(), capitalize(top.Category), money(top.Total))
}

func (d *Dispatcher) listCategories(user *models.User) string {
	categories, err := d.deps.Transactions.ListCategories(user.ID)
	if err != nil {
		return d.fail("listing categories", user.TelegramChatID, err)
	}
	if len(categories) == 0 {
		return "Você ainda não registrou gastos, então não há categorias por aqui."
	}

	display := make([]string, len(categories))
	for i, c := range categories {
		display[i] = capitalize(c)
	}
	return "🗂 Suas categorias: " + strings.Join(display, ", ")
}

func (d *Dispatcher) setGoal(user *models.User, in *intent.Intent) string {
	if !in.HasAmount() {
		return replyAskAmount
	}
	if in.Category == "" {
		return replyAskCategory
	}

	goal, err := d.deps.Goals.SetGoal(user.ID, in.Category, in.Amount)
	if err != nil {
		return d.fail("setting goal", user.TelegramChatID, err)
	}
	return fmt.Sprintf("🎯 Meta definida: %s por mês em %s.", money(goal.GoalAmount), capitalize(goal.Category))
}

// fail logs the underlying error and returns the generic apology. The
// raw error text, including any database details, stays in the logs.
func (d *Dispatcher) fail(op string, chatID int64, err error) string {
	logger.Get().Errorw("handler failed",
		"op", op,
		"chat_id", chatID,
		"error", err.Error(),
	)
	return replyApology
}
