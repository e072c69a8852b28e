package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/celeru-survey/cliparse"
	"github.com/danielhkuo/celeru-survey/ids"
	"github.com/danielhkuo/celeru-survey/models"
	"github.com/danielhkuo/celeru-survey/store"
	"github.com/danielhkuo/celeru-survey/templates"
)

func newSeedCmd(cfg *cliparse.Config) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a demo organization with open survey responses",
		Long: "Creates one organization, one survey per built-in template and\n" +
			"a number of open responses per survey, then prints their links.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return errors.New("--count must be at least 1")
			}

			st, err := store.Open(cmd.Context(), *cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			return seed(cmd.Context(), st, cmd.OutOrStdout(), cfg.BaseURL, count)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 3, "Open responses to create per survey")
	return cmd
}

// seed writes one survey link per created response to out
func seed(ctx context.Context, s store.Seeder, out io.Writer, baseURL string, count int) error {
	org := models.Organization{
		Name:         "Celeru Sample Co",
		PrimaryColor: "#0ea5e9",
	}
	if err := s.CreateOrganization(ctx, &org); err != nil {
		return err
	}
	fmt.Fprintf(out, "organization %s (%s)\n", org.Name, org.ID)

	for _, t := range templates.Types() {
		payload, _ := templates.Lookup(t)
		survey := models.Survey{
			OrganizationID: org.ID,
			Name:           "Sample " + string(t) + " Survey",
			Type:           t,
			SurveyJSON:     string(payload),
		}
		if err := s.CreateSurvey(ctx, &survey); err != nil {
			return err
		}
		fmt.Fprintf(out, "survey %s (%s)\n", survey.Name, survey.ID)

		for i := 0; i < count; i++ {
			email := fmt.Sprintf("respondent+%s%d@example.com", t, i+1)
			resp := models.SurveyResponse{
				SurveyID:       survey.ID,
				OrganizationID: org.ID,
				ContactEmail:   &email,
			}
			if err := s.CreateResponse(ctx, &resp); err != nil {
				return err
			}
			fmt.Fprintf(out, "  %s\n", ids.SurveyLink(baseURL, resp.ID))
		}
	}

	fmt.Fprintf(out, "demo %s\n", ids.SurveyLink(baseURL, ids.DemoPrefix+"-demo"))
	return nil
}
