package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/SscSPs/business_report_engine/internal/apperrors"
	"github.com/SscSPs/business_report_engine/internal/core/domain"
	"github.com/SscSPs/business_report_engine/internal/core/rules"
	"github.com/SscSPs/business_report_engine/internal/utils/numeric"
	"github.com/SscSPs/business_report_engine/migrations"
	"github.com/spf13/cobra"
)

// docFlags are the flags selecting one document instance.
type docFlags struct {
	section string
	period  string
}

func (f *docFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.section, "section", "s", string(domain.SectionReport), "Document section (report, review, review_sub)")
	cmd.Flags().StringVarP(&f.period, "period", "p", "", "Reporting year")
	_ = cmd.MarkFlagRequired("period")
}

func (f *docFlags) parse() (domain.SectionID, domain.Period, error) {
	section, err := domain.ParseSection(f.section)
	if err != nil {
		return "", 0, err
	}
	period, err := domain.ParsePeriod(f.period)
	if err != nil {
		return "", 0, err
	}
	return section, period, nil
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(migrations.Up), string(migrations.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := migrations.Up
			if len(args) == 1 {
				dir = migrations.Direction(args[0])
			}
			return migrations.Run(a.cfg.DatabaseURL, dir, a.logger)
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	var doc docFlags
	var optimize bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the merged working state of a document",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			section, period, err := doc.parse()
			if err != nil {
				return err
			}
			ctx, done := a.operation(cmd.Context(), "show")
			defer func() { done(err) }()

			svc, err := a.services(ctx)
			if err != nil {
				return err
			}
			if err := svc.Visibility.Load(ctx); err != nil {
				a.logger.Warn("Showing every field, visibility mask unavailable", "error", err.Error())
			}
			baseline, err := svc.Editor.Select(ctx, section, period)
			if baseline == nil {
				return err
			}
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			if baseline.DraftRestored {
				fmt.Fprintln(cmd.OutOrStdout(), "Unsaved changes were restored.")
			}
			return printFields(cmd.OutOrStdout(), section, baseline.Fields, func(key string) (bool, bool) {
				return svc.Visibility.IsShown(key, optimize), svc.Visibility.Mask().Suppressed(key)
			})
		},
	}
	doc.register(cmd)
	cmd.Flags().BoolVar(&optimize, "optimize", false, "Show suppressed fields too")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var doc docFlags
	cmd := &cobra.Command{
		Use:   "edit key=value [key=value...]",
		Short: "Apply edits, recompute derived fields and store the draft",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			section, period, err := doc.parse()
			if err != nil {
				return err
			}
			change, err := parseAssignments(args)
			if err != nil {
				return err
			}
			ctx, done := a.operation(cmd.Context(), "edit")
			defer func() { done(err) }()

			svc, err := a.services(ctx)
			if err != nil {
				return err
			}
			if _, err := svc.Editor.Select(ctx, section, period); err != nil {
				// edits to a partially loaded state would shadow the stored data
				return err
			}
			rec, err := svc.Editor.Edit(ctx, change)
			if rec == nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, key := range rec.Rejected {
				fmt.Fprintf(out, "ignored %s: %v\n", key, apperrors.ErrReadOnlyField)
			}
			for _, key := range rec.Touched {
				fmt.Fprintf(out, "%s = %s\n", key, rec.State.Text(key))
			}
			return err
		},
	}
	doc.register(cmd)
	return cmd
}

func newCommitCmd(a *app) *cobra.Command {
	var doc docFlags
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Save the working state of a document to the database",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			section, period, err := doc.parse()
			if err != nil {
				return err
			}
			ctx, done := a.operation(cmd.Context(), "commit")
			defer func() { done(err) }()

			svc, err := a.services(ctx)
			if err != nil {
				return err
			}
			if _, err := svc.Editor.Select(ctx, section, period); err != nil {
				// a partially loaded state is never committed
				return err
			}
			result, err := svc.Editor.Save(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s for %d.\n", result.Section, result.Period)
			if len(result.Unassigned) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Not stored: %s\n", strings.Join(result.Unassigned, ", "))
			}
			return nil
		},
	}
	doc.register(cmd)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the stored report of one period",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			p, err := domain.ParsePeriod(period)
			if err != nil {
				return err
			}
			ctx, done := a.operation(cmd.Context(), "delete")
			defer func() { done(err) }()

			if _, err := a.services(ctx); err != nil {
				return err
			}
			err = a.repos.PeriodReportRepo.DeletePeriodReport(ctx, p)
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("no report stored for %d", p)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted report %d.\n", p)
			return nil
		},
	}
	cmd.Flags().StringVarP(&period, "period", "p", "", "Reporting year")
	_ = cmd.MarkFlagRequired("period")
	return cmd
}

func newPeriodsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "periods",
		Short: "List the reporting years with a stored report",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx, done := a.operation(cmd.Context(), "periods")
			defer func() { done(err) }()

			if _, err := a.services(ctx); err != nil {
				return err
			}
			periods, err := a.repos.PeriodReportRepo.ListPeriods(ctx)
			if err != nil {
				return err
			}
			for _, p := range periods {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

func newToggleFieldCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-field key",
		Short: "Hide or show a field on the editing surface",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx, done := a.operation(cmd.Context(), "toggle-field")
			defer func() { done(err) }()

			store, err := a.openStore()
			if err != nil {
				return err
			}
			vis := newVisibility(store)
			if err := vis.Load(ctx); err != nil {
				return err
			}
			suppressed, err := vis.Toggle(ctx, args[0])
			if err != nil {
				return err
			}
			state := "shown"
			if suppressed {
				state = "hidden"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s.\n", args[0], state)
			return nil
		},
	}
}

func newFieldsCmd(a *app) *cobra.Command {
	var section string
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the fields of a section with their visibility",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			id, err := domain.ParseSection(section)
			if err != nil {
				return err
			}
			ctx, done := a.operation(cmd.Context(), "fields")
			defer func() { done(err) }()

			store, err := a.openStore()
			if err != nil {
				return err
			}
			vis := newVisibility(store)
			if err := vis.Load(ctx); err != nil {
				return err
			}
			return printCatalog(cmd.OutOrStdout(), id, vis.Mask())
		},
	}
	cmd.Flags().StringVarP(&section, "section", "s", string(domain.SectionReport), "Document section (report, review, review_sub)")
	return cmd
}

// parseAssignments turns key=value arguments into a change-set.
func parseAssignments(args []string) (domain.FieldSet, error) {
	change := make(domain.FieldSet, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		if err := rules.CheckItemKey(key); err != nil {
			return nil, err
		}
		change[key] = domain.ParseValue(value)
	}
	return change, nil
}

// printFields writes the catalogued fields of section first, then any other
// stored keys, skipping hidden ones.
func printFields(w io.Writer, section domain.SectionID, fields domain.FieldSet, visible func(key string) (shown, suppressed bool)) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	printed := map[string]bool{}
	emit := func(key string) {
		if printed[key] {
			return
		}
		printed[key] = true
		shown, suppressed := visible(key)
		if !shown {
			return
		}
		marker := ""
		if suppressed {
			marker = "(hidden)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", key, displayValue(fields, key), marker)
	}
	for _, key := range rules.SectionFields(section) {
		emit(key)
	}
	for _, key := range fields.Keys() {
		emit(key)
	}
	return tw.Flush()
}

func displayValue(fields domain.FieldSet, key string) string {
	v, ok := fields[key]
	if !ok || v.IsText() {
		return fields.Text(key)
	}
	return numeric.FormatGrouped(v.Decimal())
}

func printCatalog(w io.Writer, section domain.SectionID, mask domain.VisibilityMask) error {
	sec, err := rules.MustDefaultRegistry().Section(section)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tKIND\tVISIBLE")
	for _, key := range rules.SectionFields(section) {
		kind := "input"
		if sec.IsDerived(key) {
			kind = "derived"
		}
		visible := "yes"
		if mask.Suppressed(key) {
			visible = "no"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", key, kind, visible)
	}
	return tw.Flush()
}
