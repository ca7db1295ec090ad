package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"swiftmeet/internal/domain"
)

var listQuery = domain.MatchAll()

func init() {
	listEventsCmd.Flags().StringVar(&listQuery.Text, "q", "", "match title or organization (case-insensitive)")
	listEventsCmd.Flags().StringVar(&listQuery.Category, "category", domain.AllValues, "exact category, or \"all\"")
	listEventsCmd.Flags().StringVar(&listQuery.Location, "location", domain.AllValues, "location substring, or \"all\"")
	eventsCmd.AddCommand(listEventsCmd)
	rootCmd.AddCommand(eventsCmd)
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect the stored events",
}

var listEventsCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the events matching the filters",
	RunE:  listEvents,
}

func listEvents(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	q := listQuery
	if q.Category == "" {
		q.Category = domain.AllValues
	}
	if q.Location == "" {
		q.Location = domain.AllValues
	}
	events, err := a.catalog.Search(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}
	printEvents(cmd.OutOrStdout(), events)
	return nil
}

func printEvents(w io.Writer, events []domain.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return
	}
	fmt.Fprintf(w, "%-36s  %-10s  %-5s  %-10s  %-20s  %s\n", "ID", "DATE", "START", "VOLUNTEERS", "CATEGORY", "TITLE")
	for _, e := range events {
		fmt.Fprintf(w, "%-36s  %-10s  %-5s  %-10s  %-20s  %s\n",
			e.ID, e.Date, e.StartTime, fmt.Sprintf("%d/%d", e.Volunteers, e.MaxVolunteers), e.Category, e.Title)
	}
}
