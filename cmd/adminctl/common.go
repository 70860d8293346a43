package main

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"adminhub/internal/domain"
	"adminhub/internal/listing"
	"adminhub/internal/views"

	"github.com/spf13/cobra"
)

// criteriaFlags are the list filters every list command accepts.
type criteriaFlags struct {
	search    string
	selectors map[string]string
	from      string
	to        string
}

func (f *criteriaFlags) bind(cmd *cobra.Command, keys []string) {
	fl := cmd.Flags()
	fl.StringVarP(&f.search, "search", "q", "", "serbest metin araması")
	fl.StringToStringVarP(&f.selectors, "filter", "f", nil, "alan=değer ("+strings.Join(keys, ", ")+")")
	fl.StringVar(&f.from, "from", "", "başlangıç tarihi (YYYY-MM-DD veya RFC3339)")
	fl.StringVar(&f.to, "to", "", "bitiş tarihi (YYYY-MM-DD veya RFC3339)")
}

// criteria goes through the same parser the API uses for query strings.
func (f *criteriaFlags) criteria(keys []string) (listing.Criteria, error) {
	q := url.Values{}
	q.Set(listing.ParamSearch, f.search)
	for k, v := range f.selectors {
		if !contains(keys, k) {
			return listing.Criteria{}, fail(domain.ValidationError{Field: k, Msg: "bu listede böyle bir filtre yok"})
		}
		q.Set(k, v)
	}
	q.Set(listing.ParamFrom, f.from)
	q.Set(listing.ParamTo, f.to)
	cr, err := listing.ParseCriteria(q, keys...)
	if err != nil {
		return listing.Criteria{}, fail(err)
	}
	return cr, nil
}

func contains(keys []string, k string) bool {
	for _, key := range keys {
		if key == k {
			return true
		}
	}
	return false
}

func selectorKeys[T any](spec listing.Spec[T]) []string {
	keys := make([]string, 0, len(spec.Selectors))
	for k := range spec.Selectors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type lister[T any] interface {
	loader
	Filtered(listing.Criteria) []T
}

// listCmd prints the filtered rows of a page; with --stats it adds the
// summary computed over the same rows.
func listCmd[T any](spec listing.Spec[T], open func(*cobra.Command) lister[T], cols []column[T], stats func([]T) []stat) *cobra.Command {
	var (
		cf        criteriaFlags
		withStats bool
	)
	keys := selectorKeys(spec)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Kayıtları listele",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cr, err := cf.criteria(keys)
			if err != nil {
				return err
			}
			p := open(cmd)
			defer p.Close()
			if err := load(cmd.Context(), p); err != nil {
				return err
			}
			items := p.Filtered(cr)
			if err := writeTable(cmd.OutOrStdout(), items, cols); err != nil {
				return err
			}
			if withStats && stats != nil {
				return writeStats(cmd.OutOrStdout(), stats(items)...)
			}
			return nil
		},
	}
	cf.bind(cmd, keys)
	if stats != nil {
		cmd.Flags().BoolVar(&withStats, "stats", false, "özet istatistikleri de yazdır")
	}
	return cmd
}

type statusSetter[S any] interface {
	loader
	SetStatus(ctx context.Context, id domain.ID, status S) views.Result
	NextStatuses(id domain.ID) []S
}

func statusCmd[S comparable](enum *domain.Enum[S], parse func(string) (S, error), open func(*cobra.Command) statusSetter[S]) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <durum>",
		Short: "Durumu değiştir",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			status, err := parse(args[1])
			if err != nil {
				return fail(err)
			}
			p := open(cmd)
			defer p.Close()
			if err := load(cmd.Context(), p); err != nil {
				return err
			}
			res := p.SetStatus(cmd.Context(), id, status)
			if domain.IsConflict(res.Err) {
				if next := p.NextStatuses(id); len(next) > 0 {
					labels := make([]string, len(next))
					for i, s := range next {
						labels[i] = fmt.Sprintf("%v (%s)", s, enum.Label(s))
					}
					res.Message += "; geçilebilecek durumlar: " + strings.Join(labels, ", ")
				}
			}
			return report(cmd, res)
		},
	}
}

// parseCode reads a string enum the way the API does: trimmed, upper-cased
// and checked against the enum table.
func parseCode[S ~string](enum *domain.Enum[S]) func(string) (S, error) {
	return func(raw string) (S, error) {
		v := domain.NormalizeCode[S](raw)
		if !enum.Valid(v) {
			vals := enum.Values()
			names := make([]string, len(vals))
			for i, s := range vals {
				names[i] = string(s)
			}
			return v, domain.ValidationError{Field: "status",
				Msg: fmt.Sprintf("geçersiz değer %q, olası değerler: %s", raw, strings.Join(names, ", "))}
		}
		return v, nil
	}
}

type deleter interface {
	loader
	Delete(ctx context.Context, id domain.ID) views.Result
}

func deleteCmd(open func(*cobra.Command) deleter) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Kaydı sil",
		Args:    cobra.ExactArgs(1),
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
			return report(cmd, p.Delete(cmd.Context(), id))
		},
	}
}
