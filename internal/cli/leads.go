package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"lead_backend/internal/client"
	"lead_backend/internal/feature/lead/domain/entity"
	"lead_backend/internal/feature/lead/transport/http/dto"
)

func (a *App) leadsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Manage leads",
	}
	cmd.AddCommand(a.leadsListCmd(), a.leadsGetCmd(), a.leadsSaveCmd(), a.leadsDeleteCmd())
	return cmd
}

func (a *App) leadsListCmd() *cobra.Command {
	var (
		p         client.ListParams
		status    string
		source    string
		scoreOp   string
		valueOp   string
		createdOp string
		activeOp  string
		qualified string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leads with optional filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p.Status = entity.Status(status)
			p.Source = entity.Source(source)
			p.ScoreOperator = entity.NumberOp(scoreOp)
			p.ValueOperator = entity.NumberOp(valueOp)
			p.CreatedOperator = entity.DateOp(createdOp)
			p.ActivityOperator = entity.DateOp(activeOp)
			if qualified != "" {
				b, err := strconv.ParseBool(qualified)
				if err != nil {
					return fmt.Errorf("--qualified must be true or false")
				}
				p.IsQualified = &b
			}

			page, err := a.client.ListLeads(cmd.Context(), p)
			if err != nil {
				return describe(err)
			}
			a.printLeads(page)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&p.Email, "email", "", "email contains")
	f.StringVar(&p.Company, "company", "", "company contains")
	f.StringVar(&p.City, "city", "", "city contains")
	f.StringVar(&status, "status", "", "status equals")
	f.StringVar(&source, "source", "", "source equals")
	f.StringVar(&p.Score, "score", "", "score value, or min,max with --score-op between")
	f.StringVar(&scoreOp, "score-op", "", "eq, gt, lt or between")
	f.StringVar(&p.LeadValue, "value", "", "lead value, or min,max with --value-op between")
	f.StringVar(&valueOp, "value-op", "", "eq, gt, lt or between")
	f.StringVar(&qualified, "qualified", "", "true or false")
	f.StringVar(&p.CreatedAt, "created", "", "created date, or start,end with --created-op between")
	f.StringVar(&createdOp, "created-op", "", "on, before, after or between")
	f.StringVar(&p.LastActivityAt, "activity", "", "last activity date, or start,end with --activity-op between")
	f.StringVar(&activeOp, "activity-op", "", "on, before, after or between")
	f.IntVar(&p.Page, "page", entity.DefaultPage, "page number")
	f.IntVar(&p.Limit, "limit", entity.DefaultLimit, "leads per page")
	return cmd
}

func (a *App) printLeads(page *client.LeadPage) {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tCOMPANY\tSTATUS\tSOURCE\tSCORE\tVALUE\tCREATED")
	for _, l := range page.Leads {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%s\t%s\t%d\t%.2f\t%s\n",
			l.ID, l.FirstName, l.LastName, l.Email, l.Company, l.Status, l.Source,
			l.Score, l.LeadValue, l.CreatedAt.Format(time.DateOnly))
	}
	_ = tw.Flush()
	pg := page.Pagination
	fmt.Fprintf(a.out, "Page %d of %d (%d leads)\n", pg.Page, pg.TotalPages, pg.Total)
}

func (a *App) leadsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.client.GetLead(cmd.Context(), args[0])
			if err != nil {
				return describe(err)
			}
			a.printLead(l)
			return nil
		},
	}
}

func (a *App) printLead(l *entity.Lead) {
	activity := "-"
	if l.LastActivityAt != nil {
		activity = l.LastActivityAt.Format(time.RFC3339)
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"id", l.ID},
		{"name", l.FirstName + " " + l.LastName},
		{"email", l.Email},
		{"phone", l.Phone},
		{"company", l.Company},
		{"location", strings.Trim(l.City+", "+l.State, ", ")},
		{"source", string(l.Source)},
		{"status", string(l.Status)},
		{"score", strconv.Itoa(l.Score)},
		{"value", strconv.FormatFloat(l.LeadValue, 'f', 2, 64)},
		{"qualified", strconv.FormatBool(l.IsQualified)},
		{"last activity", activity},
		{"created", l.CreatedAt.Format(time.RFC3339)},
		{"updated", l.UpdatedAt.Format(time.RFC3339)},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", r[0], r[1])
	}
	_ = tw.Flush()
}

// leadsSaveCmd creates a lead, or with an id updates it starting from the
// stored values so only the flags given change.
func (a *App) leadsSaveCmd() *cobra.Command {
	var (
		form          client.LeadForm
		source        string
		status        string
		activity      string
		clearActivity bool
	)
	cmd := &cobra.Command{
		Use:   "save [id]",
		Short: "Create a lead, or update the lead with id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			base := client.LeadForm{}
			if len(args) == 1 {
				l, err := a.client.GetLead(ctx, args[0])
				if err != nil {
					return describe(err)
				}
				base = client.FormFromLead(*l)
			}

			changed := cmd.Flags().Changed
			set := func(name string, dst *string, v string) {
				if changed(name) {
					*dst = v
				}
			}
			set("first-name", &base.FirstName, form.FirstName)
			set("last-name", &base.LastName, form.LastName)
			set("email", &base.Email, form.Email)
			set("phone", &base.Phone, form.Phone)
			set("company", &base.Company, form.Company)
			set("city", &base.City, form.City)
			set("state", &base.State, form.State)
			if changed("source") {
				base.Source = entity.Source(source)
			}
			if changed("status") {
				base.Status = entity.Status(status)
			}
			if changed("score") {
				base.Score = form.Score
			}
			if changed("value") {
				base.LeadValue = form.LeadValue
			}
			if changed("qualified") {
				base.IsQualified = form.IsQualified
			}
			if changed("activity") {
				t, err := dto.ParseTime(activity)
				if err != nil {
					return err
				}
				base.LastActivityAt = &t
			}
			if clearActivity {
				base.LastActivityAt = nil
			}

			var (
				l   *entity.Lead
				err error
			)
			if len(args) == 1 {
				l, err = a.client.UpdateLead(ctx, args[0], base.Input())
			} else {
				l, err = a.client.CreateLead(ctx, base.Input())
			}
			if err != nil {
				return describe(err)
			}
			if len(args) == 1 {
				fmt.Fprintln(a.out, "Lead updated successfully")
			} else {
				fmt.Fprintln(a.out, "Lead created successfully")
			}
			a.printLead(l)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.FirstName, "first-name", "", "first name")
	f.StringVar(&form.LastName, "last-name", "", "last name")
	f.StringVar(&form.Email, "email", "", "email address")
	f.StringVar(&form.Phone, "phone", "", "phone number")
	f.StringVar(&form.Company, "company", "", "company")
	f.StringVar(&form.City, "city", "", "city")
	f.StringVar(&form.State, "state", "", "state")
	f.StringVar(&source, "source", "", "website, facebook_ads, google_ads, referral, events or other")
	f.StringVar(&status, "status", "", "new, contacted, qualified, lost or won")
	f.IntVar(&form.Score, "score", 0, "score 0-100")
	f.Float64Var(&form.LeadValue, "value", 0, "lead value")
	f.BoolVar(&form.IsQualified, "qualified", false, "mark as qualified")
	f.StringVar(&activity, "activity", "", "last activity (YYYY-MM-DD or RFC3339)")
	f.BoolVar(&clearActivity, "clear-activity", false, "remove the last activity date")
	cmd.MarkFlagsMutuallyExclusive("activity", "clear-activity")
	return cmd
}

func (a *App) leadsDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := a.confirm(fmt.Sprintf("Delete lead %s?", args[0]))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(a.out, "Aborted")
					return nil
				}
			}
			if err := a.client.DeleteLead(cmd.Context(), args[0]); err != nil {
				return describe(err)
			}
			fmt.Fprintln(a.out, "Lead deleted successfully")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
