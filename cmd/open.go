package cmd

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/pydata-academy/academy/internal/catalog"
	"github.com/pydata-academy/academy/internal/route"
)

var openCmd = &cobra.Command{
	Use:   "open [courseId]",
	Short: "Print (and optionally open) the lesson URL of a course",
	Long:  `Prints the lesson view URL for a course. Without a course id an interactive picker lists the catalog.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	courses, err := loadCatalog()
	if err != nil {
		return err
	}

	var course catalog.Course
	if len(args) == 1 {
		course, err = courses.FindByID(args[0])
		if err != nil {
			return err
		}
	} else {
		course, err = pickCourse(courses.ListAll())
		if err != nil {
			return err
		}
	}

	url := cfg.BaseURL() + route.LessonPath(course.ID)
	fmt.Println(url)

	if launch, _ := cmd.Flags().GetBool("browser"); launch {
		openBrowser(url)
	}
	return nil
}

// pickCourse shows an interactive course selector.
func pickCourse(list []catalog.Course) (catalog.Course, error) {
	if len(list) == 0 {
		return catalog.Course{}, fmt.Errorf("the catalog is empty")
	}

	items := make([]string, len(list))
	for i, c := range list {
		items[i] = fmt.Sprintf("%s [%s · %s · %s]", c.Title, c.Language, c.Difficulty, c.Duration)
	}

	prompt := promptui.Select{
		Label: "Select a course",
		Items: items,
		Size:  len(items),
	}
	idx, _, err := prompt.Run()
	if err != nil {
		return catalog.Course{}, fmt.Errorf("course selection: %w", err)
	}
	return list[idx], nil
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}

func init() {
	openCmd.Flags().Bool("browser", false, "Open the lesson in the default browser")
	rootCmd.AddCommand(openCmd)
}
