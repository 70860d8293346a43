package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/listing"
	"adminhub/internal/utils"
	"adminhub/internal/views"

	"github.com/spf13/cobra"
)

func categoriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "categories", Aliases: []string{"kategori"}, Short: "Demirbaş kategorileri"}
	open := func(cmd *cobra.Command) *views.CategoriesPage {
		return views.NewCategoriesPage(a.api, a.caller, a.confirmer(cmd))
	}

	cmd.AddCommand(listCmd(views.CategorySpec,
		func(cmd *cobra.Command) lister[models.Category] { return open(cmd) },
		[]column[models.Category]{
			col("ID", func(c models.Category) string { return fmtID(c.ID) }),
			col("KOD", func(c models.Category) string { return c.Code }),
			col("AD", func(c models.Category) string { return c.Name }),
			col("DEMİRBAŞ", func(c models.Category) string { return fmt.Sprint(c.AssetCount) }),
			col("OLUŞTURULMA", func(c models.Category) string { return utils.FormatDate(c.CreatedDate) }),
		}, nil))

	var req models.CategoryRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Kategori ekle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := open(cmd)
			defer p.Close()
			return report(cmd, p.Create(cmd.Context(), req))
		},
	}
	create.Flags().StringVar(&req.Name, "name", "", "kategori adı")
	create.Flags().StringVar(&req.Code, "code", "", "kategori kodu")
	create.Flags().StringVar(&req.Description, "description", "", "açıklama")
	cmd.AddCommand(create)

	cmd.AddCommand(deleteCmd(func(cmd *cobra.Command) deleter { return open(cmd) }))
	return cmd
}

func assetsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "assets", Aliases: []string{"demirbas"}, Short: "Demirbaşlar"}
	open := func(cmd *cobra.Command) *views.AssetsPage {
		return views.NewAssetsPage(a.api, a.caller, a.confirmer(cmd))
	}

	cmd.AddCommand(listCmd(views.AssetSpec,
		func(cmd *cobra.Command) lister[models.Asset] { return open(cmd) },
		[]column[models.Asset]{
			col("ID", func(x models.Asset) string { return fmtID(x.ID) }),
			col("KOD", func(x models.Asset) string { return x.AssetCode }),
			col("AD", func(x models.Asset) string { return x.Name }),
			col("KATEGORİ", func(x models.Asset) string {
				if x.Category == nil {
					return dash
				}
				return x.Category.Name
			}),
			col("DURUM", func(x models.Asset) string { return x.Status.Label() }),
			col("ZİMMETLİ", func(x models.Asset) string { return userRef(x.CurrentAssignedUser) }),
			col("FİYAT", func(x models.Asset) string { return fmtMoney(x.PurchasePrice) }),
		},
		func(items []models.Asset) []stat {
			s := views.AssetStatsOf(items)
			return []stat{
				{"Toplam", s.Total},
				{"Müsait", s.Available},
				{"Zimmetli", s.Assigned},
				{"Bakımda", s.Maintenance},
				{"Arızalı", s.Damaged},
				{"İmha", s.Disposed},
				{"Toplam değer", fmtMoney(s.TotalValue)},
			}
		}))

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Demirbaş ayrıntısı ve zimmet geçmişi",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p := views.NewAssetDetailPage(a.api, a.caller, id)
			defer p.Close()
			if err := load(cmd.Context(), p); err != nil {
				return err
			}
			d := p.Detail()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", d.Asset.Name, d.Asset.AssetCode)
			holder := dash
			if d.ActiveAssignment != nil {
				holder = fmt.Sprintf("%s, %s tarihinden beri", userRef(d.ActiveAssignment.User), utils.FormatDate(d.ActiveAssignment.AssignmentDate))
			}
			if err := writeStats(out,
				stat{"Durum", d.Asset.Status.Label()},
				stat{"Seri no", orDash(d.Asset.SerialNumber)},
				stat{"Marka/Model", orDash(strings.TrimSpace(d.Asset.Brand + " " + d.Asset.Model))},
				stat{"Konum", orDash(d.Asset.Location)},
				stat{"Zimmetli", holder},
				stat{"Zimmet sayısı", d.AssignmentCount},
				stat{"İade sayısı", d.ReturnCount},
			); err != nil {
				return err
			}
			fmt.Fprintln(out)
			return writeTable(out, d.History, assignmentColumns())
		},
	})

	var req models.AssetRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Demirbaş ekle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := open(cmd)
			defer p.Close()
			return report(cmd, p.Create(cmd.Context(), req))
		},
	}
	fl := create.Flags()
	fl.StringVar(&req.Name, "name", "", "demirbaş adı")
	fl.StringVar(&req.AssetCode, "code", "", "demirbaş kodu")
	fl.Int64Var(&req.CategoryID, "category", 0, "kategori kimliği")
	fl.StringVar(&req.SerialNumber, "serial", "", "seri numarası")
	fl.StringVar(&req.Brand, "brand", "", "marka")
	fl.StringVar(&req.Model, "model", "", "model")
	fl.Float64Var(&req.PurchasePrice, "price", 0, "alış fiyatı")
	fl.StringVar(&req.Location, "location", "", "konum")
	fl.StringVar(&req.Description, "description", "", "açıklama")
	cmd.AddCommand(create)

	cmd.AddCommand(statusCmd(domain.AssetStatuses, domain.ParseAssetStatus,
		func(cmd *cobra.Command) statusSetter[domain.AssetStatus] { return open(cmd) }))
	cmd.AddCommand(deleteCmd(func(cmd *cobra.Command) deleter { return open(cmd) }))
	return cmd
}

func assignmentColumns() []column[models.Assignment] {
	return []column[models.Assignment]{
		col("ID", func(x models.Assignment) string { return fmtID(x.ID) }),
		col("TÜR", func(x models.Assignment) string { return domain.AssignmentTypes.Label(x.Type) }),
		col("DEMİRBAŞ", func(x models.Assignment) string {
			if x.Asset == nil {
				return fmtID(x.AssetID)
			}
			return x.Asset.Name + " (" + x.Asset.AssetCode + ")"
		}),
		col("KULLANICI", func(x models.Assignment) string { return userRef(x.User) }),
		col("TARİH", func(x models.Assignment) string { return utils.FormatDate(x.AssignmentDate) }),
		col("İADE", func(x models.Assignment) string { return utils.FormatDatePtr(x.ReturnDate) }),
		col("DURUM", func(x models.Assignment) string { return orDash(x.Condition) }),
	}
}

func assignmentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "assignments", Aliases: []string{"zimmet"}, Short: "Zimmet ve iade kayıtları"}
	open := func(cmd *cobra.Command) *views.AssignmentsPage {
		return views.NewAssignmentsPage(a.api, a.caller, a.confirmer(cmd))
	}

	cmd.AddCommand(listCmd(views.AssignmentSpec,
		func(cmd *cobra.Command) lister[models.Assignment] { return open(cmd) },
		assignmentColumns(),
		func(items []models.Assignment) []stat {
			s := views.AssignmentStatsOf(items)
			return []stat{{"Toplam", s.Total}, {"Açık zimmet", s.Active}, {"İade", s.Returns}}
		}))

	handover := func(use, short string, run func(*views.AssignmentsPage, *cobra.Command, models.AssignmentRequest) views.Result) *cobra.Command {
		var req models.AssignmentRequest
		c := &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				p := open(cmd)
				defer p.Close()
				if err := load(cmd.Context(), p); err != nil {
					return err
				}
				return report(cmd, run(p, cmd, req))
			},
		}
		c.Flags().Int64Var(&req.AssetID, "asset", 0, "demirbaş kimliği")
		c.Flags().Int64Var(&req.UserID, "user", 0, "kullanıcı kimliği")
		c.Flags().StringVar(&req.Notes, "notes", "", "not")
		c.Flags().StringVar(&req.Condition, "condition", "", "teslim durumu")
		return c
	}
	cmd.AddCommand(
		handover("issue", "Demirbaşı kullanıcıya zimmetle",
			func(p *views.AssignmentsPage, cmd *cobra.Command, req models.AssignmentRequest) views.Result {
				return p.Issue(cmd.Context(), req)
			}),
		handover("return", "Zimmetli demirbaşı iade al",
			func(p *views.AssignmentsPage, cmd *cobra.Command, req models.AssignmentRequest) views.Result {
				return p.Return(cmd.Context(), req)
			}),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "active <demirbaş id>",
		Short: "Demirbaşın açık zimmetini göster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			active, err := a.api.ActiveAssignment(cmd.Context(), id)
			if err != nil {
				return fail(err)
			}
			if active == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Demirbaş kimsede değil.")
				return nil
			}
			return writeTable(cmd.OutOrStdout(), []models.Assignment{*active}, assignmentColumns())
		},
	})

	var output string
	receipt := &cobra.Command{
		Use:   "receipt <zimmet id>",
		Short: "Zimmet tutanağını PDF olarak indir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			pdf, name, err := a.api.Receipt(cmd.Context(), id)
			if err != nil {
				return fail(err)
			}
			path := output
			if path == "" {
				path = name
			}
			if path == "" {
				path = fmt.Sprintf("zimmet-%d.pdf", id)
			}
			if err := os.WriteFile(path, pdf, 0o644); err != nil {
				return fmt.Errorf("tutanak kaydedilemedi: %w", err)
			}
			abs, _ := filepath.Abs(path)
			fmt.Fprintf(cmd.OutOrStdout(), "Tutanak kaydedildi: %s\n", abs)
			return nil
		},
	}
	receipt.Flags().StringVarP(&output, "output", "o", "", "dosya yolu")
	cmd.AddCommand(receipt)
	return cmd
}

func usersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "users", Aliases: []string{"kullanici"}, Short: "Kullanıcılar"}
	open := func(cmd *cobra.Command) *views.UsersPage {
		return views.NewUsersPage(a.api, a.caller, a.confirmer(cmd))
	}

	cmd.AddCommand(listCmd(views.UserSpec,
		func(cmd *cobra.Command) lister[models.User] { return open(cmd) },
		[]column[models.User]{
			col("ID", func(u models.User) string { return fmtID(u.ID) }),
			col("KULLANICI", func(u models.User) string { return u.Username }),
			col("AD SOYAD", func(u models.User) string { return u.FullName() }),
			col("E-POSTA", func(u models.User) string { return u.Email }),
			col("ROL", func(u models.User) string { return domain.UserRoles.Label(u.Role) }),
			col("DURUM", func(u models.User) string { return domain.UserStatuses.Label(u.Status) }),
			col("SON GİRİŞ", func(u models.User) string {
				if u.LastLoginAt == nil {
					return dash
				}
				return utils.FormatDateTime(*u.LastLoginAt)
			}),
		},
		func(items []models.User) []stat {
			by := listing.CountBy(items, func(u models.User) domain.UserStatus { return u.Status })
			return []stat{
				{"Toplam", len(items)},
				{"Aktif", by[domain.UserActive]},
				{"Askıda", by[domain.UserSuspended]},
				{"Beklemede", by[domain.UserPending]},
			}
		}))

	cmd.AddCommand(statusCmd(domain.UserStatuses, parseCode(domain.UserStatuses),
		func(cmd *cobra.Command) statusSetter[domain.UserStatus] { return open(cmd) }))
	cmd.AddCommand(deleteCmd(func(cmd *cobra.Command) deleter { return open(cmd) }))
	return cmd
}
