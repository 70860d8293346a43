package main

import (
	"fmt"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/utils"
	"adminhub/internal/views"

	"github.com/spf13/cobra"
)

func dashboardCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "dashboard", Aliases: []string{"ozet"}, Short: "Özet panolar"}

	cmd.AddCommand(&cobra.Command{
		Use:   "inventory",
		Short: "Envanter özeti",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := views.NewInventoryDashboardPage(a.api, a.caller)
			defer p.Close()
			if err := load(cmd.Context(), p); err != nil {
				return err
			}
			d := p.Dashboard()
			out := cmd.OutOrStdout()
			if err := writeStats(out,
				stat{"Toplam demirbaş", d.TotalAssets},
				stat{"Müsait", d.AvailableAssets},
				stat{"Zimmetli", d.AssignedAssets},
				stat{"Bakımda", d.MaintenanceAssets},
				stat{"Arızalı", d.DamagedAssets},
				stat{"Kategori", d.TotalCategories},
				stat{"Kullanıcı", d.TotalUsers},
				stat{"Toplam değer", fmtMoney(d.TotalValue)},
			); err != nil {
				return err
			}
			fmt.Fprintln(out, "\nSon hareketler:")
			return writeTable(out, d.RecentAssignments, assignmentColumns())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "sports",
		Short: "Spor özeti",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := views.NewSportsDashboardPage(a.api, a.caller)
			defer p.Close()
			if err := load(cmd.Context(), p); err != nil {
				return err
			}
			d := p.Dashboard()
			out := cmd.OutOrStdout()
			if err := writeStats(out,
				stat{"Müsabaka", d.TotalCompetitions},
				stat{"Aktif müsabaka", d.ActiveCompetitions},
				stat{"Katılımcı", d.TotalParticipants},
				stat{"Maç", d.TotalMatches},
				stat{"Tamamlanan maç", d.CompletedMatches},
				stat{"Tesis", d.TotalVenues},
				stat{"Aktif tesis", d.ActiveVenues},
			); err != nil {
				return err
			}
			fmt.Fprintln(out, "\nSon müsabakalar:")
			if err := writeTable(out, d.RecentCompetitions, []column[models.Competition]{
				col("AD", func(c models.Competition) string { return c.Name }),
				col("BAŞLANGIÇ", func(c models.Competition) string { return utils.FormatDate(c.StartDate) }),
				col("DURUM", func(c models.Competition) string { return domain.CompetitionStatuses.Label(c.Status) }),
			}); err != nil {
				return err
			}
			fmt.Fprintln(out, "\nYaklaşan maçlar:")
			return writeTable(out, d.UpcomingMatches, []column[models.Match]{
				col("TARİH", func(m models.Match) string { return utils.FormatDateTime(m.MatchDate) }),
				col("EŞLEŞME", func(m models.Match) string { return sideRef(m.Participant1) + " - " + sideRef(m.Participant2) }),
				col("MÜSABAKA", func(m models.Match) string { return orDash(m.CompetitionName) }),
			})
		},
	})
	return cmd
}
