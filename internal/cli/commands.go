package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/student-records/internal/records"
	"github.com/aanand-mishra/student-records/internal/types"
)

func (a *app) listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "search and page through the student list",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, _ []string) error {
			query, _ := cmd.Flags().GetString("query")
			page, _ := cmd.Flags().GetInt("page")
			size, _ := cmd.Flags().GetInt("size")
			if page < 1 {
				return fmt.Errorf("--page must be at least 1, got %d", page)
			}
			if size < 0 {
				return fmt.Errorf("--size must be positive, got %d", size)
			}
			if size == 0 {
				size = a.cfg.PageSize
			}

			result := a.manager.List(query, page, size)

			out := cmd.OutOrStdout()
			if result.TotalMatches == 0 {
				fmt.Fprintln(out, "no students found")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "INDEX\tNAME\tDEPT\tAGE\tMARKS")
			// INDEX is the position in the full list, which edit and delete
			// take, not the position within the page.
			indices := matchIndices(a.manager.Students(), query)
			start := (result.Page - 1) * result.PageSize
			for i, s := range result.Items {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\n", indices[start+i], s.Name, s.Dept, s.Age, s.Marks)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "page %d of %d (%d matches)\n", result.Page, result.TotalPages, result.TotalMatches)
			return nil
		}),
	}
	cmd.Flags().StringP("query", "q", "", "case-insensitive match on name or dept")
	cmd.Flags().IntP("page", "p", 1, "page number, starting at 1")
	cmd.Flags().IntP("size", "s", 0, "page size (default from config)")
	return cmd
}

func (a *app) addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "append a student",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, _ []string) error {
			candidate, err := studentFromFlags(cmd, types.Student{})
			if err != nil {
				return err
			}

			form := records.NewForm(a.manager)
			if err := form.Submit(cmd.Context(), candidate); err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s at index %d\n", candidate.Name, a.manager.Len()-1)
			return nil
		}),
	}
	studentFlags(cmd)
	return cmd
}

func (a *app) editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [index]",
		Short: "change fields of the student at index",
		Long:  "Only the fields given as flags change; the rest keep their current values.",
		Args:  cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index must be a number: %w", err)
			}

			form := records.NewForm(a.manager)
			current, err := form.BeginEdit(index)
			if err != nil {
				return describe(err)
			}

			candidate, err := studentFromFlags(cmd, current)
			if err != nil {
				return err
			}
			if err := form.Submit(cmd.Context(), candidate); err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated index %d\n", index)
			return nil
		}),
	}
	studentFlags(cmd)
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [index]",
		Short: "remove the student at index (later students move up)",
		Args:  cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index must be a number: %w", err)
			}

			s, err := a.manager.Get(index)
			if err != nil {
				return describe(err)
			}
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				return fmt.Errorf("refusing to delete %s (index %d) without --yes", s.Name, index)
			}

			if err := a.manager.Delete(cmd.Context(), index); err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", s.Name)
			return nil
		}),
	}
	cmd.Flags().BoolP("yes", "y", false, "confirm the deletion")
	return cmd
}

func (a *app) themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [on|off|toggle]",
		Short:     "show or change the dark mode preference",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off", "toggle"},
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			var err error
			if len(args) == 1 {
				switch args[0] {
				case "on":
					err = a.manager.SetDarkMode(cmd.Context(), true)
				case "off":
					err = a.manager.SetDarkMode(cmd.Context(), false)
				case "toggle":
					_, err = a.manager.ToggleDarkMode(cmd.Context())
				}
			}
			if err != nil {
				return describe(err)
			}

			theme := "light"
			if a.manager.DarkMode() {
				theme = "dark"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "theme: %s\n", theme)
			return nil
		}),
	}
}

func studentFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "student name")
	cmd.Flags().String("dept", "", "department")
	cmd.Flags().Int("age", 0, "age in years, greater than 0")
	cmd.Flags().Int("marks", 0, "marks from 0 to 100")
}

// studentFromFlags overlays the flags the user set onto base.
func studentFromFlags(cmd *cobra.Command, base types.Student) (types.Student, error) {
	f := cmd.Flags()
	var err error
	if f.Changed("name") {
		base.Name, err = f.GetString("name")
	}
	if err == nil && f.Changed("dept") {
		base.Dept, err = f.GetString("dept")
	}
	if err == nil && f.Changed("age") {
		base.Age, err = f.GetInt("age")
	}
	if err == nil && f.Changed("marks") {
		base.Marks, err = f.GetInt("marks")
	}
	return base, err
}

// matchIndices returns the list positions of the records Search keeps
// for query, in order.
func matchIndices(all []types.Student, query string) []int {
	var out []int
	for i, s := range all {
		if records.Matches(s, query) {
			out = append(out, i)
		}
	}
	return out
}
