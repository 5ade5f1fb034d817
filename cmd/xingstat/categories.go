package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/xingstat/domain"
	"github.com/ludo-technologies/xingstat/service"
)

// CategoriesCommand lists the categories of the loaded table
type CategoriesCommand struct {
	root *rootOptions
	json bool
}

// categoryInfo is the JSON view of one category
type categoryInfo struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	FirstYear int    `json:"first_year"`
	LastYear  int    `json:"last_year"`
	Total     int    `json:"total"`
}

// CreateCobraCommand creates the cobra command for the category listing
func (c *CategoriesCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the categories of the dataset with their selection codes",
		Long: `List every category of the dataset in table order, with the code that
selects it at the category prompt and in --category.

Examples:
  xingstat categories
  xingstat categories --data data/*.xlsx --json`,
		Args: cobra.NoArgs,
		RunE: c.run,
	}
	cmd.Flags().BoolVar(&c.json, "json", false, "Output JSON")
	return cmd
}

func (c *CategoriesCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := c.root.loadConfig(cmd)
	if err != nil {
		return err
	}
	table, err := c.root.loadTable(cmd, cfg)
	if err != nil {
		return err
	}

	infos := describeCategories(table)
	out := cmd.OutOrStdout()

	if c.json {
		return service.WriteJSON(out, infos)
	}

	utils := formatUtils(cfg, out)
	tbl := uitable.New()
	tbl.MaxColWidth = 40
	tbl.AddRow(utils.Heading("CODE"), utils.Heading("NAME"), utils.Heading("YEARS"), utils.Heading("TOTAL"))
	for _, info := range infos {
		tbl.AddRow(info.Code, info.Name, fmt.Sprintf("%d-%d", info.FirstYear, info.LastYear), humanize.Comma(int64(info.Total)))
	}
	_, err = fmt.Fprintln(out, tbl)
	return err
}

func describeCategories(table *domain.Table) []categoryInfo {
	infos := make([]categoryInfo, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		total := 0
		for _, v := range table.Values(i) {
			total += v
		}
		infos = append(infos, categoryInfo{
			Code:      table.Code(i),
			Name:      table.Name(i),
			FirstYear: table.FirstYear(),
			LastYear:  table.LastYear(),
			Total:     total,
		})
	}
	return infos
}

// NewCategoriesCmd creates and returns the categories cobra command
func NewCategoriesCmd(root *rootOptions) *cobra.Command {
	return (&CategoriesCommand{root: root}).CreateCobraCommand()
}
