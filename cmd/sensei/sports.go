package main

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/mark3labs/sensei/internal/catalog"
	"github.com/mark3labs/sensei/internal/wizard"
	"github.com/spf13/cobra"
)

var sportsFlags struct {
	category string
	subtype  string
}

var sportsCmd = &cobra.Command{
	Use:   "sports",
	Short: "List the sports offered per category",
	Long: `List the sports catalog.

Without flags every group is listed. --category narrows the list; the
disability category also needs --subtype (leg, hand or blind).`,
	RunE: runSports,
}

func init() {
	sportsCmd.Flags().StringVarP(&sportsFlags.category, "category", "c", "", "Category: normal or disability")
	sportsCmd.Flags().StringVarP(&sportsFlags.subtype, "subtype", "s", "", "Disability sub-category: leg, hand or blind")
}

func runSports(cmd *cobra.Command, args []string) error {
	groups, err := selectedGroups()
	if err != nil {
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Group", "ID", "Sport", "Difficulty", "Description")
	for _, g := range groups {
		for _, s := range catalog.SportsFor(g) {
			t.Row(g, s.ID, s.Name, string(s.Difficulty), s.Description)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return nil
}

func selectedGroups() ([]string, error) {
	if sportsFlags.category == "" {
		if sportsFlags.subtype != "" {
			return nil, fmt.Errorf("--subtype requires --category disability")
		}
		return catalog.Groups(), nil
	}

	cat, ok := wizard.ParseCategory(sportsFlags.category)
	if !ok {
		return nil, fmt.Errorf("unknown category %q (want normal or disability)", sportsFlags.category)
	}
	var sub wizard.DisabilityType
	if cat == wizard.CategoryDisability {
		if sub, ok = wizard.ParseDisabilityType(sportsFlags.subtype); !ok {
			return nil, fmt.Errorf("unknown sub-category %q (want leg, hand or blind)", sportsFlags.subtype)
		}
	}

	group := wizard.SportGroup(cat, sub)
	if group == "" {
		return nil, fmt.Errorf("no sports for category %q", cat)
	}
	return []string{group}, nil
}
