// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/scribe-engine/pkg/types"
)

// amountNum accepts a thousands-grouped number ("1,234.56") ahead of the
// plain decimal forms ("12.50", "12,50").
const amountNum = `\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?|\d+(?:[.,]\d{1,2})?`

// Amount patterns tried in priority order: prefix currency symbol, suffix
// currency symbol, bare decimal.
var (
	amountPrefixRe = regexp.MustCompile(`([$€£¥])\s?(` + amountNum + `)`)
	amountSuffixRe = regexp.MustCompile(`(` + amountNum + `)\s?([$€£¥])`)
	amountBareRe   = regexp.MustCompile(`\b(?:\d{1,3}(?:,\d{3})+\.\d{2}|\d+[.,]\d{2})\b`)
	expenseDateRe  = regexp.MustCompile(`(?i)\b(?:\d{1,2}[/.\-]\d{1,2}(?:[/.\-]\d{2,4})?|\d{4}-\d{2}-\d{2})\b`)
)

var currencyBySymbol = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
	"¥": "JPY",
}

type keywordRule struct {
	keyword string
	value   string
}

// paymentMethods maps keywords to the canonical payment method. Slice order
// fixes which keyword wins when several appear, keeping output stable.
var paymentMethods = []keywordRule{
	{"cash", "cash"},
	{"credit", "credit"},
	{"debit", "debit"},
	{"visa", "credit"},
	{"mastercard", "credit"},
	{"amex", "credit"},
	{"card", "credit"},
	{"paypal", "paypal"},
	{"venmo", "venmo"},
}

// expenseCategories maps merchant or item keywords to a spending category.
var expenseCategories = []keywordRule{
	{"diner", "dining"},
	{"restaurant", "dining"},
	{"cafe", "dining"},
	{"coffee", "dining"},
	{"pizza", "dining"},
	{"bar", "dining"},
	{"grocery", "groceries"},
	{"market", "groceries"},
	{"gas", "transport"},
	{"fuel", "transport"},
	{"uber", "transport"},
	{"taxi", "transport"},
	{"parking", "transport"},
	{"hotel", "travel"},
	{"airline", "travel"},
	{"pharmacy", "health"},
	{"clinic", "health"},
}

// HeuristicExpense fills ExpenseData from currency-anchored amount regexes
// and keyword lookup tables. The first line that is not an amount or a
// payment keyword becomes the merchant.
func HeuristicExpense(content string) types.ExpenseData {
	var data types.ExpenseData

	data.Amount, data.Currency = findAmount(content)

	lower := strings.ToLower(content)
	for _, rule := range paymentMethods {
		if containsWord(lower, rule.keyword) {
			data.PaymentMethod = rule.value
			break
		}
	}
	for _, rule := range expenseCategories {
		if strings.Contains(lower, rule.keyword) {
			data.Category = rule.value
			break
		}
	}

	if m := expenseDateRe.FindString(content); m != "" {
		data.Date = m
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if amountPrefixRe.MatchString(trimmed) || amountSuffixRe.MatchString(trimmed) || amountBareRe.MatchString(trimmed) {
			continue
		}
		if isPaymentKeyword(strings.ToLower(trimmed)) {
			continue
		}
		data.Merchant = trimmed
		break
	}

	return data
}

// findAmount tries the amount patterns in priority order and returns the
// parsed value with its inferred currency.
func findAmount(content string) (*float64, string) {
	if m := amountPrefixRe.FindStringSubmatch(content); m != nil {
		return parseAmount(m[2]), currencyBySymbol[m[1]]
	}
	if m := amountSuffixRe.FindStringSubmatch(content); m != nil {
		return parseAmount(m[1]), currencyBySymbol[m[2]]
	}
	if m := amountBareRe.FindString(content); m != "" {
		return parseAmount(m), ""
	}
	return nil, ""
}

// parseAmount handles decimal-comma ("12,50") and thousands-grouped
// ("1,234.56") forms. A comma counts as the decimal point only when it is
// followed by exactly two digits at the end of the number; every other
// comma is a grouping separator.
func parseAmount(s string) *float64 {
	if i := strings.LastIndex(s, ","); i >= 0 && len(s)-i-1 == 2 && !strings.Contains(s, ".") {
		s = s[:i] + "." + s[i+1:]
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func isPaymentKeyword(s string) bool {
	for _, rule := range paymentMethods {
		if s == rule.keyword {
			return true
		}
	}
	return false
}

// containsWord reports whether lower contains keyword as a whole word.
func containsWord(lower, keyword string) bool {
	idx := 0
	for {
		i := strings.Index(lower[idx:], keyword)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(keyword)
		beforeOK := start == 0 || !isWordByte(lower[start-1])
		afterOK := end == len(lower) || !isWordByte(lower[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
