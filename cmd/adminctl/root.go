package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"adminhub/internal/client"
	"adminhub/internal/config"
	"adminhub/internal/domain"
	"adminhub/internal/utils"
	"adminhub/internal/views"

	"github.com/spf13/cobra"
)

// anonymous marks commands that run without a session.
const anonymous = "anonymous"

type app struct {
	apiURL   string
	token    string
	logLevel string
	yes      bool

	api    *client.Client
	caller domain.RequestContext
}

func rootCmd(cfg config.Console) *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "adminctl",
		Short:         "Envanter ve spor yönetimi konsolu",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.connect(cmd)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&a.apiURL, "api", cfg.APIURL, "API adresi (ADMINHUB_API_URL)")
	f.StringVar(&a.token, "token", cfg.Token, "oturum anahtarı (ADMINHUB_TOKEN)")
	f.StringVar(&a.logLevel, "log-level", cfg.LogLevel, "log seviyesi (debug, info, warn, error)")
	f.BoolVarP(&a.yes, "yes", "y", false, "silme gibi işlemleri sormadan onayla")

	cmd.AddCommand(
		loginCmd(a),
		meCmd(a),
		categoriesCmd(a),
		assetsCmd(a),
		assignmentsCmd(a),
		usersCmd(a),
		venuesCmd(a),
		competitionsCmd(a),
		participantsCmd(a),
		matchesCmd(a),
		reservationsCmd(a),
		dashboardCmd(a),
	)
	return cmd
}

// connect builds the API client and, unless the command is anonymous,
// resolves the caller so pages can offer only what the role allows.
func (a *app) connect(cmd *cobra.Command) error {
	utils.InitLoggerWithWriter(cmd.ErrOrStderr(), a.logLevel, "console")
	a.api = client.New(a.apiURL, client.StaticToken(a.token), client.DefaultConfig())
	if cmd.Annotations[anonymous] != "" {
		return nil
	}
	if strings.TrimSpace(a.token) == "" {
		return errors.New("oturum anahtarı yok, önce 'adminctl login' çalıştırın")
	}
	me, err := a.api.Me(cmd.Context())
	if err != nil {
		return fail(err)
	}
	a.caller = domain.RequestContext{UserID: me.ID, Role: me.Role}
	return nil
}

// confirmer asks on the command's stdin unless --yes was given.
func (a *app) confirmer(cmd *cobra.Command) views.Confirmer {
	if a.yes {
		return views.ConfirmFunc(func(string) bool { return true })
	}
	return views.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(cmd.OutOrStdout(), "%s [e/H]: ", prompt)
		line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "e", "evet", "y", "yes":
			return true
		}
		return false
	})
}

type loader interface {
	Load(ctx context.Context) error
	Close()
}

func load(ctx context.Context, p loader) error {
	if err := p.Load(ctx); err != nil {
		return fail(err)
	}
	return nil
}

// fail turns any error into the single message the console prints.
func fail(err error) error {
	return errors.New(client.Message(err))
}

func report(cmd *cobra.Command, res views.Result) error {
	if res.Err != nil && !res.OK {
		return errors.New(res.Message)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	return nil
}

func parseID(raw string) (domain.ID, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fail(domain.ValidationError{Field: "id", Msg: fmt.Sprintf("geçersiz kimlik: %q", raw)})
	}
	return id, nil
}

func loginCmd(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:         "login <kullanıcı adı veya e-posta>",
		Short:       "Oturum aç ve anahtarı yazdır",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{anonymous: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.Login(cmd.Context(), args[0], password)
			if err != nil {
				return fail(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Hoş geldiniz, %s (%s)\n", res.User.FullName(), domain.UserRoles.Label(res.User.Role))
			fmt.Fprintf(out, "Geçerlilik: %s\n", utils.FormatDateTime(res.ExpiresAt))
			fmt.Fprintf(out, "export ADMINHUB_TOKEN=%s\n", res.Token)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "parola")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func meCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Oturumdaki kullanıcıyı ve yetkilerini göster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.api.Me(cmd.Context())
			if err != nil {
				return fail(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s <%s>\n", me.FullName(), me.Email)
			fmt.Fprintf(out, "Rol: %s\n", domain.UserRoles.Label(me.Role))
			actions := views.CapabilitiesFor(me.Role).Allowed()
			names := make([]string, len(actions))
			for i, act := range actions {
				names[i] = string(act)
			}
			if len(names) == 0 {
				names = []string{"yalnızca görüntüleme"}
			}
			fmt.Fprintf(out, "Yetkiler: %s\n", strings.Join(names, ", "))
			return nil
		},
	}
}
