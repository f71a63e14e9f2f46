/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/materials-commons/mcinsight/pkg/insight"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type queryFlags struct {
	tenantID      string
	modelID       string
	caseSensitive bool
	intervalWidth int64
	intervals     int
	format        string
}

var queryOpts queryFlags

// answer is a query result together with its table form.
type answer struct {
	value   interface{}
	headers []string
	rows    [][]string
}

type question struct {
	help string
	ask  func(path string, opts queryFlags) (*answer, error)
}

var questions = map[string]question{
	"purple-tenants": {
		help: "number of tenants with purple in their name",
		ask: func(path string, _ queryFlags) (*answer, error) {
			count, err := insight.GetPurpleTenantsCount(path)
			return scalar("count", count, strconv.FormatInt(count, 10)), err
		},
	},
	"active-tenants": {
		help: "tenants with at least one user that is not deleted",
		ask: func(path string, _ queryFlags) (*answer, error) {
			tenantIDs, err := insight.GetActiveTenants(path)
			return column("tenant", tenantIDs), err
		},
	},
	"largest-tenant-models": {
		help: "number of models of the tenant with the most users",
		ask: func(path string, _ queryFlags) (*answer, error) {
			count, err := insight.GetModelCountOfLargestTenant(path)
			return scalar("models", count, strconv.FormatInt(count, 10)), err
		},
	},
	"heaviest-tenant": {
		help: "tenant with the most revisions",
		ask: func(path string, _ queryFlags) (*answer, error) {
			tenantID, err := insight.GetRevisionHeaviestTenant(path)
			return scalar("tenant", tenantID, tenantID), err
		},
	},
	"heaviest-tenant-latest-model": {
		help: "title of the most recently revised model of the heaviest tenant",
		ask: func(path string, _ queryFlags) (*answer, error) {
			title, err := insight.GetRevisionHeaviestTenantLatestModelTitle(path)
			return scalar("title", title, title), err
		},
	},
	"lazy-users": {
		help: "users that never authored a revision",
		ask: func(path string, _ queryFlags) (*answer, error) {
			userIDs, err := insight.GetLazyUsers(path)
			return column("user", userIDs), err
		},
	},
	"most-active-users": {
		help: "users of --tenant with the most revisions",
		ask: func(path string, opts queryFlags) (*answer, error) {
			users, err := insight.GetMostActiveUsers(path, opts.tenantID)
			if err != nil {
				return nil, err
			}

			a := &answer{value: users, headers: []string{"id", "first name", "last name"}}
			for _, u := range users {
				a.rows = append(a.rows, []string{u.ID, u.FirstName, u.LastName})
			}
			return a, nil
		},
	},
	"revisions": {
		help: "revisions of --model, oldest first",
		ask: func(path string, opts queryFlags) (*answer, error) {
			revisions, err := insight.GetChronologicalModelRevisions(path, opts.modelID)
			if err != nil {
				return nil, err
			}

			a := &answer{value: revisions, headers: []string{"revision", "id", "author", "created"}}
			for _, r := range revisions {
				a.rows = append(a.rows, []string{
					strconv.Itoa(r.RevisionNumber), r.ID, r.AuthorID, strconv.FormatInt(r.CreationDate, 10),
				})
			}
			return a, nil
		},
	},
	"model-titles": {
		help: "sorted titles of the models of --tenant",
		ask: func(path string, opts queryFlags) (*answer, error) {
			titles, err := insight.GetOrderedActiveModelTitles(path, opts.tenantID, opts.caseSensitive)
			return column("title", titles), err
		},
	},
	"forecast": {
		help: "growth ratio of models plus revisions for the next --intervals intervals",
		ask: func(path string, opts queryFlags) (*answer, error) {
			rates, err := insight.GetForecastedModelRevisionGrowthRate(path, opts.intervalWidth, opts.intervals)
			if err != nil {
				return nil, err
			}

			a := &answer{value: rates, headers: []string{"interval", "growth rate"}}
			for i, rate := range rates {
				a.rows = append(a.rows, []string{strconv.Itoa(i + 1), strconv.FormatFloat(rate, 'f', 4, 64)})
			}
			return a, nil
		},
	},
}

func scalar(header string, value interface{}, formatted string) *answer {
	return &answer{value: value, headers: []string{header}, rows: [][]string{{formatted}}}
}

func column(header string, values []string) *answer {
	a := &answer{value: values, headers: []string{header}}
	for _, v := range values {
		a.rows = append(a.rows, []string{v})
	}
	return a
}

func questionNames() []string {
	names := make([]string, 0, len(questions))
	for name := range questions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func questionsHelp() string {
	var b strings.Builder
	for _, name := range questionNames() {
		fmt.Fprintf(&b, "  %-30s %s\n", name, questions[name].help)
	}
	return b.String()
}

var queryCmd = &cobra.Command{
	Use:       "query <question>",
	Short:     "Answer a question about the insight database",
	Long:      "Answer a question about the insight database. Questions:\n\n" + questionsHelp(),
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: questionNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := dbPath()
		if err != nil {
			return err
		}

		a, err := questions[args[0]].ask(path, queryOpts)
		if err != nil {
			return err
		}

		return writeAnswer(cmd.OutOrStdout(), a, queryOpts.format)
	},
}

func writeAnswer(w io.Writer, a *answer, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(a.value)
	case "table":
		table := tablewriter.NewWriter(w)
		defer table.Close()

		table.Header(a.headers)
		for _, row := range a.rows {
			if err := table.Append(row); err != nil {
				return err
			}
		}
		return table.Render()
	default:
		return fmt.Errorf("unknown output format '%s', expected table or json", format)
	}
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVar(&queryOpts.tenantID, "tenant", "", "tenant id for most-active-users and model-titles")
	queryCmd.Flags().StringVar(&queryOpts.modelID, "model", "", "model id for revisions")
	queryCmd.Flags().BoolVar(&queryOpts.caseSensitive, "case-sensitive", false, "sort model-titles case sensitively")
	queryCmd.Flags().Int64Var(&queryOpts.intervalWidth, "interval-width", 10000, "forecast interval width")
	queryCmd.Flags().IntVar(&queryOpts.intervals, "intervals", 5, "number of intervals to forecast")
	queryCmd.Flags().StringVar(&queryOpts.format, "format", "table", "output format, table or json")
}
