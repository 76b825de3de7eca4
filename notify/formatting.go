package notify

import (
	"fmt"
	"math"
	"strings"

	"caseodds/models"
)

// FormatThousands formats an integer with thousand separators
func FormatThousands(n int64) string {
	str := fmt.Sprintf("%d", n)
	sign := ""
	if n < 0 {
		sign, str = "-", str[1:]
	}

	digits := len(str)
	if digits <= 3 {
		return sign + str
	}

	var result strings.Builder
	result.WriteString(sign)
	for i, digit := range str {
		if i > 0 && (digits-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}
	return result.String()
}

// FormatMoney formats a decimal amount with two decimals and thousand separators
func FormatMoney(amount float64) string {
	cents := int64(math.Round(amount * 100))
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	return fmt.Sprintf("%s%s.%02d", sign, FormatThousands(cents/100), cents%100)
}

// SummaryLines renders the report summary as the lines printed after a run
func SummaryLines(report *models.Report) []string {
	s := report.Summary
	return []string{
		fmt.Sprintf("You opened %d %s cases.", s.CasesOpened, s.CaseName),
		fmt.Sprintf("You spent %s $", FormatMoney(s.TotalSpent)),
		fmt.Sprintf("You earned %s $", FormatMoney(s.TotalEarned)),
		fmt.Sprintf("Profits: %s $", FormatMoney(s.NetProfit)),
		fmt.Sprintf("Expected return per '%s' case: %s $", s.CaseName, FormatMoney(s.ExpectedReturn)),
		fmt.Sprintf("Expected profit per case: %s $", FormatMoney(s.ExpectedProfit)),
		fmt.Sprintf("Return ratio: %.2f%%", s.ReturnRatioPercent),
	}
}
