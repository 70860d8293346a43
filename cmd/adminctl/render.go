package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
)

const dash = "-"

type column[T any] struct {
	title string
	value func(T) string
}

func col[T any](title string, value func(T) string) column[T] {
	return column[T]{title: title, value: value}
}

func writeTable[T any](w io.Writer, items []T, cols []column[T]) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, c := range cols {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, c.title)
	}
	fmt.Fprintln(tw)
	for _, it := range items {
		for i, c := range cols {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, c.value(it))
		}
		fmt.Fprintln(tw)
	}
	if len(items) == 0 {
		fmt.Fprintln(tw, "(kayıt yok)")
	}
	return tw.Flush()
}

type stat struct {
	label string
	value any
}

func writeStats(w io.Writer, stats ...stat) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintln(tw)
	for _, s := range stats {
		fmt.Fprintf(tw, "%s:\t%v\n", s.label, s.value)
	}
	return tw.Flush()
}

func fmtID(id domain.ID) string { return strconv.FormatInt(id, 10) }

func fmtMoney(v float64) string { return fmt.Sprintf("%.2f ₺", v) }

func orDash(s string) string {
	if s == "" {
		return dash
	}
	return s
}

func userRef(u *models.UserRef) string {
	if u == nil {
		return dash
	}
	return orDash(u.Name)
}

func sideRef(p *models.ParticipantRef) string {
	if p == nil {
		return "?"
	}
	return p.Name
}

func score(v *int) string {
	if v == nil {
		return dash
	}
	return strconv.Itoa(*v)
}
