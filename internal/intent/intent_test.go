package intent

import (
	"testing"
)

func TestParseAction(t *testing.T) {
	cases := []struct {
		in   string
		want Action
	}{
		{"add_expense", ActionAddExpense},
		{"  PAY_BILL ", ActionPayBill},
		{"set_goal", ActionSetGoal},
		{"chat", ActionChat},
		{"", ActionChat},
		{"drop_tables", ActionChat},
		{"add-expense", ActionChat},
	}
	for _, tc := range cases {
		if got := ParseAction(tc.in); got != tc.want {
			t.Errorf("ParseAction(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDecode(t *testing.T) {
	t.Run("full_expense", func(t *testing.T) {
		in, err := Decode([]byte(`{"action":"add_expense","amount":25.5,"category":"Mercado","description":"compras","bank":"Itaú"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.Action != ActionAddExpense {
			t.Errorf("expected add_expense, got %q", in.Action)
		}
		if in.Amount.StringFixed(2) != "25.50" {
			t.Errorf("expected amount 25.50, got %s", in.Amount.String())
		}
		if in.Category != "Mercado" || in.Bank != "Itaú" {
			t.Errorf("unexpected fields: %+v", in)
		}
	})

	t.Run("fenced_json", func(t *testing.T) {
		raw := "```json\n{\"action\":\"get_report\",\"period\":\"week\"}\n```"
		in, err := Decode([]byte(raw))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.Action != ActionGetReport || in.Period != "week" {
			t.Errorf("unexpected intent: %+v", in)
		}
	})

	t.Run("quoted_amount_with_comma", func(t *testing.T) {
		in, err := Decode([]byte(`{"action":"add_income","amount":"1200,50","bank":"Nubank"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.Amount.StringFixed(2) != "1200.50" {
			t.Errorf("expected amount 1200.50, got %s", in.Amount.String())
		}
	})

	t.Run("unparseable_amount_treated_as_absent", func(t *testing.T) {
		in, err := Decode([]byte(`{"action":"add_expense","amount":"uns cinquenta","category":"Mercado"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.HasAmount() {
			t.Errorf("expected absent amount, got %s", in.Amount.String())
		}
	})

	t.Run("null_amount_treated_as_absent", func(t *testing.T) {
		in, err := Decode([]byte(`{"action":"add_expense","amount":null,"category":"Mercado"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.HasAmount() {
			t.Errorf("expected absent amount, got %s", in.Amount.String())
		}
	})

	t.Run("unknown_action_degrades_to_chat", func(t *testing.T) {
		in, err := Decode([]byte(`{"action":"transfer_everything"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.Action != ActionChat {
			t.Errorf("expected chat, got %q", in.Action)
		}
	})

	t.Run("non_json_rejected", func(t *testing.T) {
		if _, err := Decode([]byte("I'm sorry, I can't classify that.")); err == nil {
			t.Fatal("expected error for non-JSON payload")
		}
	})

	t.Run("empty_rejected", func(t *testing.T) {
		if _, err := Decode([]byte("  ")); err == nil {
			t.Fatal("expected error for empty payload")
		}
	})
}
