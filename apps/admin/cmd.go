package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/trezcool/sanaa/core/profile"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db          *sql.DB
	profileRepo profile.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate - apply pending database migrations")
	fmt.Println("  listprofiles [-search KEYWORD] [-goal GOAL] - list signed-up profiles")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	listProfilesCmd := flag.NewFlagSet("listprofiles", flag.ExitOnError)
	listProfilesSearch := listProfilesCmd.String("search", "", "Keyword matched against name and email.")
	listProfilesGoal := listProfilesCmd.String("goal", "", "Only profiles that selected this goal.")

	switch args[1] {
	case "migrate":
		return cli.migrate()
	case "listprofiles":
		if err := listProfilesCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listProfiles(*listProfilesSearch, *listProfilesGoal)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) listProfiles(search, goal string) error {
	filter := profile.QueryFilter{Search: search}
	if goal != "" {
		filter.Goals = []string{goal}
	}
	filter.Clean()

	profiles, err := cli.profileRepo.FilterProfiles(context.Background(), filter)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 4, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tName\tEmail\tGoals\tExperience\tJoined")
	for _, p := range profiles {
		_, _ = fmt.Fprintf(
			w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.FullName(), p.Email, strings.Join(p.Goals, ","), p.ExperienceLevel,
			p.CreatedAt.Format("2006-01-02"),
		)
	}
	return w.Flush()
}
