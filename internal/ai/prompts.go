package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/carson-networks/neofin-server/internal/service"
)

const chatContextSize = 50

func parsePrompt(input string, mode Mode) string {
	source := "Extract the data from the provided file"
	if input != "" {
		source = fmt.Sprintf("Convert this text: %q", input)
	}

	if mode == ModeDebt {
		return fmt.Sprintf(`Act as a personal debt parser. %s into STRICT JSON format.

Return ONLY raw JSON (no markdown, no backticks):
{
  "transactionType": "debt",
  "text": "short description",
  "person": "name of the other person",
  "amount": positive number,
  "debtType": "lent" or "borrowed",
  "date": "ISO date string"
}

Rules:
- amount must be a positive number
- "lent" means the user gave money, "borrowed" means the user received it
- Use sensible defaults if unclear`, source)
	}

	return fmt.Sprintf(`Act as a financial transaction parser. %s into STRICT JSON format.

Return ONLY raw JSON (no markdown, no backticks):
{
  "text": "description of transaction",
  "amount": positive number,
  "category": %s,
  "type": "income" or "expense",
  "isFreelance": true or false,
  "date": "ISO date string"
}

Rules:
- amount must be positive number
- type determines income vs expense
- isFreelance is true for business/work/client transactions
- if the input describes money lent to or borrowed from a person, return instead
  {"transactionType": "debt", "text": "...", "person": "...", "amount": positive number, "debtType": "lent" or "borrowed", "date": "ISO date string"}
- Use sensible defaults if unclear`, source, quotedCategories())
}

func quotedCategories() string {
	quoted := make([]string, len(service.Categories))
	for i, c := range service.Categories {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return strings.Join(quoted, " or ")
}

// expenseLines renders expense rows as "text | amount | YYYY-MM".
func expenseLines(txs []TransactionDigest) []string {
	lines := make([]string, 0, len(txs))
	for _, tx := range txs {
		if tx.Type != string(service.TransactionTypeExpense) && !tx.Amount.IsNegative() {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s | %s | %s", tx.Text, tx.Amount.Abs().String(), tx.Date.UTC().Format("2006-01")))
	}
	return lines
}

func subscriptionsPrompt(lines []string) string {
	return `Analyze these transactions and identify RECURRING SUBSCRIPTIONS.
Look for: same name in multiple months, keywords (Netflix, Spotify, Premium).

Return ONLY raw JSON array (no markdown):
[
  { "name": "Netflix", "amount": 649, "frequency": "monthly" }
]

If none, return [].

Transactions:
` + strings.Join(lines, "\n")
}

type chatRow struct {
	Text     string      `json:"text"`
	Amount   json.Number `json:"amount"`
	Category string      `json:"category"`
	Type     string      `json:"type"`
	Date     string      `json:"date"`
}

func chatPrompt(message string, txs []TransactionDigest) (string, error) {
	if len(txs) > chatContextSize {
		txs = txs[len(txs)-chatContextSize:]
	}
	rows := make([]chatRow, len(txs))
	for i, tx := range txs {
		rows[i] = chatRow{
			Text:     tx.Text,
			Amount:   json.Number(tx.Amount.String()),
			Category: tx.Category,
			Type:     tx.Type,
			Date:     tx.Date.UTC().Format("2006-01-02"),
		}
	}
	summary, err := json.Marshal(rows)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`You are "NeoFin AI Buddy", a helpful and witty financial assistant.
You have access to the user's recent transaction data below.
Answer the user's questions accurately based on this data.

Guidelines:
- If asked about spending, calculate the totals.
- Be proactive with financial advice.
- Keep responses concise but friendly.
- If the data doesn't contain the answer, say "I don't have enough data to be sure about that yet, but..."
- Treat income as positive and expenses as negative numbers.

Recent User Transactions (JSON):
%s

User Question: %q`, summary, message), nil
}
