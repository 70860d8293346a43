package main

import (
	"fmt"
	"strings"
	"time"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/utils"
	"adminhub/internal/views"

	"github.com/spf13/cobra"
)

// parseWhen reads a booking time as RFC3339 or "YYYY-MM-DD HH:MM" local time.
func parseWhen(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", raw, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fail(domain.ValidationError{Field: field,
		Msg: fmt.Sprintf("geçersiz zaman %q (YYYY-MM-DD HH:MM veya RFC3339)", raw)})
}

// slotFlags are the venue and window shared by book and availability.
type slotFlags struct {
	venue      int64
	start, end string
}

func (f *slotFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.Int64Var(&f.venue, "venue", 0, "tesis kimliği")
	fl.StringVar(&f.start, "start", "", "başlangıç (YYYY-MM-DD HH:MM)")
	fl.StringVar(&f.end, "end", "", "bitiş (YYYY-MM-DD HH:MM)")
}

func (f *slotFlags) window() (time.Time, time.Time, error) {
	start, err := parseWhen("startTime", f.start)
	if err != nil {
		return start, start, err
	}
	end, err := parseWhen("endTime", f.end)
	return start, end, err
}

func reservationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "reservations", Aliases: []string{"rezervasyon"}, Short: "Tesis rezervasyonları"}
	open := func(cmd *cobra.Command) *views.ReservationsPage {
		return views.NewReservationsPage(a.api, a.caller, a.confirmer(cmd))
	}
	columns := []column[models.Reservation]{
		col("ID", func(r models.Reservation) string { return fmtID(r.ID) }),
		col("TESİS", func(r models.Reservation) string { return orDash(r.VenueName) }),
		col("KİŞİ", func(r models.Reservation) string { return orDash(r.UserName) }),
		col("BAŞLANGIÇ", func(r models.Reservation) string { return utils.FormatDateTime(r.StartTime) }),
		col("BİTİŞ", func(r models.Reservation) string { return utils.FormatDateTime(r.EndTime) }),
		col("ÜCRET", func(r models.Reservation) string { return fmtMoney(r.TotalPrice) }),
		col("DURUM", func(r models.Reservation) string { return domain.ReservationStatuses.Label(r.Status) }),
	}

	cmd.AddCommand(listCmd(views.ReservationSpec,
		func(cmd *cobra.Command) lister[models.Reservation] { return open(cmd) },
		columns,
		func(items []models.Reservation) []stat {
			s := views.ReservationStatsOf(items)
			return []stat{{"Toplam", s.Total}, {"Onaylı", s.Confirmed}, {"Onay bekleyen", s.Pending},
				{"İptal", s.Cancelled}, {"Gelir", fmtMoney(s.Revenue)}}
		}))

	var (
		slot   slotFlags
		userID int64
		notes  string
	)
	book := &cobra.Command{
		Use:   "book",
		Short: "Tesis için rezervasyon yap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := slot.window()
			if err != nil {
				return err
			}
			req := models.ReservationRequest{VenueID: slot.venue, StartTime: start, EndTime: end, Notes: notes}
			if userID > 0 {
				req.UserID = &userID
			}
			p := open(cmd)
			defer p.Close()
			if err := load(cmd.Context(), p); err != nil {
				return err
			}
			return report(cmd, p.Book(cmd.Context(), req))
		},
	}
	slot.bind(book)
	book.Flags().Int64Var(&userID, "user", 0, "başkası adına rezervasyon (yönetici)")
	book.Flags().StringVar(&notes, "notes", "", "not")
	cmd.AddCommand(book)

	var query slotFlags
	availability := &cobra.Command{
		Use:   "availability",
		Short: "Zaman diliminin müsait olup olmadığını göster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := query.window()
			if err != nil {
				return err
			}
			av, err := a.api.Availability(cmd.Context(), query.venue, start, end)
			if err != nil {
				return fail(err)
			}
			if av.Available {
				fmt.Fprintln(cmd.OutOrStdout(), "Zaman dilimi müsait.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Zaman dilimi dolu:")
			return writeTable(cmd.OutOrStdout(), av.Conflicts, columns)
		},
	}
	query.bind(availability)
	cmd.AddCommand(availability)

	cmd.AddCommand(&cobra.Command{
		Use:   "cancel <id>",
		Short: "Rezervasyonu iptal et",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p := open(cmd)
			defer p.Close()
			if err := load(cmd.Context(), p); err != nil {
				return err
			}
			return report(cmd, p.Cancel(cmd.Context(), id))
		},
	})

	cmd.AddCommand(statusCmd(domain.ReservationStatuses, parseCode(domain.ReservationStatuses),
		func(cmd *cobra.Command) statusSetter[domain.ReservationStatus] { return open(cmd) }))
	cmd.AddCommand(deleteCmd(func(cmd *cobra.Command) deleter { return open(cmd) }))
	return cmd
}
