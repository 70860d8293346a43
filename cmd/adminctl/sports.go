package main

import (
	"fmt"
	"strconv"
	"time"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/utils"
	"adminhub/internal/views"

	"github.com/spf13/cobra"
)

func venuesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "venues", Aliases: []string{"tesis"}, Short: "Spor tesisleri"}
	open := func(cmd *cobra.Command) *views.VenuesPage {
		return views.NewVenuesPage(a.api, a.caller, a.confirmer(cmd))
	}

	cmd.AddCommand(listCmd(views.VenueSpec,
		func(cmd *cobra.Command) lister[models.Venue] { return open(cmd) },
		[]column[models.Venue]{
			col("ID", func(v models.Venue) string { return fmtID(v.ID) }),
			col("AD", func(v models.Venue) string { return v.Name }),
			col("ŞEHİR", func(v models.Venue) string { return v.City }),
			col("KAPASİTE", func(v models.Venue) string { return strconv.Itoa(v.Capacity) }),
			col("KAPALI ALAN", func(v models.Venue) string { return yesNo(v.IsIndoor) }),
			col("DURUM", func(v models.Venue) string { return domain.VenueStatuses.Label(v.Status) }),
		},
		func(items []models.Venue) []stat {
			s := views.VenueStatsOf(items)
			return []stat{{"Toplam", s.Total}, {"Aktif", s.Active}, {"Kapalı alan", s.Indoor}, {"Toplam kapasite", s.TotalCapacity}}
		}))

	cmd.AddCommand(statusCmd(domain.VenueStatuses, parseCode(domain.VenueStatuses),
		func(cmd *cobra.Command) statusSetter[domain.VenueStatus] { return open(cmd) }))
	cmd.AddCommand(deleteCmd(func(cmd *cobra.Command) deleter { return open(cmd) }))
	return cmd
}

func competitionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "competitions", Aliases: []string{"musabaka"}, Short: "Müsabakalar"}
	open := func(cmd *cobra.Command) *views.CompetitionsPage {
		return views.NewCompetitionsPage(a.api, a.caller, a.confirmer(cmd))
	}

	cmd.AddCommand(listCmd(views.CompetitionSpec,
		func(cmd *cobra.Command) lister[models.Competition] { return open(cmd) },
		[]column[models.Competition]{
			col("ID", func(c models.Competition) string { return fmtID(c.ID) }),
			col("AD", func(c models.Competition) string { return c.Name }),
			col("BRANŞ", func(c models.Competition) string { return domain.SportTypes.Label(c.SportType) }),
			col("BAŞLANGIÇ", func(c models.Competition) string { return utils.FormatDate(c.StartDate) }),
			col("BİTİŞ", func(c models.Competition) string { return utils.FormatDate(c.EndDate) }),
			col("TESİS", func(c models.Competition) string { return orDash(c.VenueName) }),
			col("KATILIMCI", func(c models.Competition) string {
				if c.MaxParticipants > 0 {
					return fmt.Sprintf("%d/%d", c.ParticipantCount, c.MaxParticipants)
				}
				return strconv.Itoa(c.ParticipantCount)
			}),
			col("DURUM", func(c models.Competition) string { return domain.CompetitionStatuses.Label(c.Status) }),
		},
		func(items []models.Competition) []stat {
			by := views.ByStatus(items)
			out := []stat{{"Toplam", len(items)}}
			for _, s := range domain.CompetitionStatuses.Values() {
				out = append(out, stat{domain.CompetitionStatuses.Label(s), by[s]})
			}
			return out
		}))

	cmd.AddCommand(statusCmd(domain.CompetitionStatuses, parseCode(domain.CompetitionStatuses),
		func(cmd *cobra.Command) statusSetter[domain.CompetitionStatus] { return open(cmd) }))
	cmd.AddCommand(deleteCmd(func(cmd *cobra.Command) deleter { return open(cmd) }))
	return cmd
}

func participantsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "participants", Aliases: []string{"katilimci"}, Short: "Müsabaka katılımcıları"}
	open := func(cmd *cobra.Command) *views.ParticipantsPage {
		return views.NewParticipantsPage(a.api, a.caller, a.confirmer(cmd))
	}

	cmd.AddCommand(listCmd(views.ParticipantSpec,
		func(cmd *cobra.Command) lister[models.Participant] { return open(cmd) },
		[]column[models.Participant]{
			col("ID", func(p models.Participant) string { return fmtID(p.ID) }),
			col("AD SOYAD", func(p models.Participant) string { return p.Name() }),
			col("MÜSABAKA", func(p models.Participant) string { return orDash(p.CompetitionName) }),
			col("KULÜP", func(p models.Participant) string { return orDash(p.ClubName) }),
			col("CİNSİYET", func(p models.Participant) string { return domain.Genders.Label(p.Gender) }),
			col("DURUM", func(p models.Participant) string { return domain.ParticipantStatuses.Label(p.Status) }),
			col("ÖDEME", func(p models.Participant) string { return domain.PaymentStatuses.Label(p.PaymentStatus) }),
		},
		func(items []models.Participant) []stat {
			s := views.ParticipantStatsOf(items)
			return []stat{{"Toplam", s.Total}, {"Onaylı", s.Confirmed}, {"Ödendi", s.Paid}, {"Ödeme bekleyen", s.Pending}}
		}))

	var (
		req    models.ParticipantRequest
		gender string
		userID int64
	)
	register := &cobra.Command{
		Use:   "register",
		Short: "Müsabakaya katılımcı kaydet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Gender = domain.NormalizeCode[domain.Gender](gender)
			if userID > 0 {
				req.UserID = &userID
			}
			p := open(cmd)
			defer p.Close()
			if err := load(cmd.Context(), p); err != nil {
				return err
			}
			return report(cmd, p.Register(cmd.Context(), req))
		},
	}
	fl := register.Flags()
	fl.Int64Var(&req.CompetitionID, "competition", 0, "müsabaka kimliği")
	fl.Int64Var(&userID, "user", 0, "bağlı kullanıcı kimliği")
	fl.StringVar(&req.FirstName, "first-name", "", "ad")
	fl.StringVar(&req.LastName, "last-name", "", "soyad")
	fl.StringVar(&req.Email, "email", "", "e-posta")
	fl.StringVar(&req.ClubName, "club", "", "kulüp")
	fl.StringVar(&req.LicenseNumber, "license", "", "lisans numarası")
	fl.StringVar(&gender, "gender", "", "MALE, FEMALE veya OTHER")
	cmd.AddCommand(register)

	cmd.AddCommand(statusCmd(domain.ParticipantStatuses, parseCode(domain.ParticipantStatuses),
		func(cmd *cobra.Command) statusSetter[domain.ParticipantStatus] { return open(cmd) }))

	cmd.AddCommand(&cobra.Command{
		Use:   "payment <id> <durum>",
		Short: "Ödeme durumunu değiştir",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			status, err := parseCode(domain.PaymentStatuses)(args[1])
			if err != nil {
				return fail(err)
			}
			p := open(cmd)
			defer p.Close()
			return report(cmd, p.SetPayment(cmd.Context(), id, status))
		},
	})
	cmd.AddCommand(deleteCmd(func(cmd *cobra.Command) deleter { return open(cmd) }))
	return cmd
}

func matchesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "matches", Aliases: []string{"mac"}, Short: "Maçlar"}
	open := func(cmd *cobra.Command) *views.MatchesPage {
		return views.NewMatchesPage(a.api, a.caller, a.confirmer(cmd))
	}
	columns := []column[models.Match]{
		col("ID", func(m models.Match) string { return fmtID(m.ID) }),
		col("NO", func(m models.Match) string { return strconv.Itoa(m.MatchNumber) }),
		col("MÜSABAKA", func(m models.Match) string { return orDash(m.CompetitionName) }),
		col("EŞLEŞME", func(m models.Match) string { return sideRef(m.Participant1) + " - " + sideRef(m.Participant2) }),
		col("SKOR", func(m models.Match) string {
			return score(m.ScoreParticipant1) + ":" + score(m.ScoreParticipant2)
		}),
		col("TARİH", func(m models.Match) string { return utils.FormatDateTime(m.MatchDate) }),
		col("HAKEM", func(m models.Match) string { return userRef(m.Referee) }),
		col("DURUM", func(m models.Match) string { return domain.MatchStatuses.Label(m.Status) }),
	}

	cmd.AddCommand(listCmd(views.MatchSpec,
		func(cmd *cobra.Command) lister[models.Match] { return open(cmd) },
		columns,
		func(items []models.Match) []stat {
			s := views.MatchStatsOf(items)
			return []stat{{"Toplam", s.Total}, {"Planlanan", s.Scheduled}, {"Devam eden", s.InProgress}, {"Tamamlanan", s.Completed}}
		}))

	var limit int
	upcoming := &cobra.Command{
		Use:   "upcoming",
		Short: "Yaklaşan maçlar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := open(cmd)
			defer p.Close()
			if err := load(cmd.Context(), p); err != nil {
				return err
			}
			return writeTable(cmd.OutOrStdout(), p.Upcoming(time.Now(), limit), columns)
		},
	}
	upcoming.Flags().IntVarP(&limit, "limit", "n", models.RecentLimit, "en fazla kaç maç")
	cmd.AddCommand(upcoming)

	cmd.AddCommand(statusCmd(domain.MatchStatuses, parseCode(domain.MatchStatuses),
		func(cmd *cobra.Command) statusSetter[domain.MatchStatus] { return open(cmd) }))

	cmd.AddCommand(&cobra.Command{
		Use:   "score <id> <skor1> <skor2>",
		Short: "Maç skorunu gir",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s1, err1 := strconv.Atoi(args[1])
			s2, err2 := strconv.Atoi(args[2])
			if err1 != nil || err2 != nil {
				return fail(domain.ValidationError{Field: "score", Msg: "skor tam sayı olmalı"})
			}
			p := open(cmd)
			defer p.Close()
			if err := load(cmd.Context(), p); err != nil {
				return err
			}
			return report(cmd, p.SetScore(cmd.Context(), id, s1, s2))
		},
	})
	cmd.AddCommand(deleteCmd(func(cmd *cobra.Command) deleter { return open(cmd) }))
	return cmd
}

func yesNo(b bool) string {
	if b {
		return "evet"
	}
	return "hayır"
}
