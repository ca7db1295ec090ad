package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"swiftmeet/internal/domain"
)

var seedFile string

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "events.yaml", "YAML file with a list of event drafts")
	rootCmd.AddCommand(seedCmd)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Publish the events listed in a YAML file",
	Long:  "seed creates one event per entry of the YAML list. Entries are validated like any new event; invalid entries are reported and skipped.",
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	f, err := os.Open(seedFile)
	if err != nil {
		return fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	created, err := seedEvents(cmd.Context(), a.lifecycle, f, cmd.OutOrStdout())
	fmt.Fprintf(cmd.OutOrStdout(), "%d event(s) created\n", created)
	return err
}

// seedEvents creates an event for every draft in r and reports each result to out.
// It returns the number created and an error if any draft failed.
func seedEvents(ctx context.Context, svc domain.EventLifecycleService, r io.Reader, out io.Writer) (int, error) {
	var drafts []domain.EventDraft
	if err := yaml.NewDecoder(r).Decode(&drafts); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("parsing seed file: %w", err)
	}

	created, failed := 0, 0
	for i, d := range drafts {
		e, err := svc.Create(ctx, d)
		if err != nil {
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				return created, fmt.Errorf("entry %d: %w", i+1, err)
			}
			failed++
			fmt.Fprintf(out, "entry %d skipped: %v\n", i+1, verr)
			continue
		}
		created++
		fmt.Fprintf(out, "created %s  %s\n", e.ID, e.Title)
	}
	if failed > 0 {
		return created, fmt.Errorf("%d of %d entries were invalid", failed, len(drafts))
	}
	return created, nil
}
