package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pydata-academy/academy/internal/catalog"
)

var (
	coursesLanguage   string
	coursesDifficulty string
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List the courses in the catalog",
	RunE:  runCourses,
}

func runCourses(cmd *cobra.Command, args []string) error {
	courses, err := loadCatalog()
	if err != nil {
		return err
	}

	list := courses.Filter(catalog.Query{
		Language:   catalog.Language(coursesLanguage),
		Difficulty: catalog.Difficulty(coursesDifficulty),
	})
	if len(list) == 0 {
		fmt.Println("No courses match.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tLANGUAGE\tLEVEL\tDURATION\tTITLE")
	for i, c := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1, c.ID, c.Language, c.Difficulty, c.Duration, truncate(c.Title, 60))
	}
	w.Flush()

	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	coursesCmd.Flags().StringVar(&coursesLanguage, "language", "", "Only list courses in this language (Hindi, English)")
	coursesCmd.Flags().StringVar(&coursesDifficulty, "difficulty", "", "Only list courses at this level (Beginner, Advanced)")
	rootCmd.AddCommand(coursesCmd)
}
