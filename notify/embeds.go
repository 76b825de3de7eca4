package notify

import (
	"fmt"
	"strings"
	"time"

	"caseodds/models"

	"github.com/bwmarrin/discordgo"
)

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorDanger  = 0xED4245 // Red
	ColorWarning = 0xFEE75C // Yellow
)

const topDropsInEmbed = 5

// BuildSummaryEmbed creates the run summary embed. Green when the case pays
// back on average, red otherwise.
func BuildSummaryEmbed(report *models.Report) *discordgo.MessageEmbed {
	s := report.Summary

	color := ColorDanger
	if s.ExpectedProfit >= 0 {
		color = ColorSuccess
	}

	fields := []*discordgo.MessageEmbedField{
		{
			Name: "💰 Simulation",
			Value: fmt.Sprintf("Spent: **%s $**\nEarned: **%s $**\nProfit: **%s $**",
				FormatMoney(s.TotalSpent),
				FormatMoney(s.TotalEarned),
				FormatMoney(s.NetProfit)),
			Inline: true,
		},
		{
			Name: "📈 Expected",
			Value: fmt.Sprintf("Return: **%s $**\nProfit: **%s $**\nRatio: **%.2f%%**",
				FormatMoney(s.ExpectedReturn),
				FormatMoney(s.ExpectedProfit),
				s.ReturnRatioPercent),
			Inline: true,
		},
	}

	if len(report.DropRates) > 0 {
		var lines []string
		for i, rate := range report.DropRates {
			if i == topDropsInEmbed {
				break
			}
			lines = append(lines, fmt.Sprintf("• %s (%s $): %d × (%.3f%% listed)",
				rate.Name, FormatMoney(rate.Price), rate.ObservedCount, rate.ExpectedRate*100))
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "🔪 Top Drops",
			Value:  strings.Join(lines, "\n"),
			Inline: false,
		})
	}

	fit := report.Fit
	if fit.DegreesOfFreedom > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "🎲 Fit",
			Value:  fmt.Sprintf("χ² = %.2f (df %d), p = %.3f", fit.ChiSquare, fit.DegreesOfFreedom, fit.PValue),
			Inline: false,
		})
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🎰 %s", s.CaseName),
		Description: fmt.Sprintf("Opened **%s** cases in *%s* at **%s $** each\n%d drops beat the case price",
			FormatThousands(int64(s.CasesOpened)), s.SectionName, FormatMoney(s.CasePrice), s.ProfitableDrops),
		Color:     color,
		Fields:    fields,
		Timestamp: report.GeneratedAt.Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Run " + report.RunID,
		},
	}
}
