package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/dayplan/internal/app"
	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newScheduleCmd(s *session) *cobra.Command {
	var asJSON, explain bool
	var userID, date string

	cmd := &cobra.Command{
		Use:   "schedule [FILE...]",
		Short: "Plan a day from one or more JSON request files",
		Long: `Reads scheduling requests (user_id, tasks, calendar_events, constraints,
target_date) and prints the planned day. With no file, or "-", the request
is read from stdin. Several files are solved concurrently.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			reqs := make(map[string]app.ScheduleRequest, len(args))
			for _, src := range args {
				req, err := readRequest(cmd.InOrStdin(), src)
				if err != nil {
					return fmt.Errorf("%s: %w", src, err)
				}
				if userID != "" {
					req.UserID = userID
				}
				if date != "" {
					req.TargetDate = &date
				}
				reqs[src] = req
			}

			out := cmd.OutOrStdout()
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if s.app.interactive() && !asJSON {
				stop := formatter.StartSpinner(cmd.ErrOrStderr(), "solving...")
				defer stop()
			}

			if len(reqs) == 1 {
				resp, err := s.app.Schedule.Schedule(ctx, reqs[args[0]])
				if err != nil {
					return err
				}
				return printResponse(out, resp, asJSON, explain)
			}
			return printBatch(out, s.app.Schedule.ScheduleBatch(ctx, reqs), asJSON, explain)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&explain, "explain", false, "Show the objective breakdown and weights")
	cmd.Flags().StringVar(&userID, "user", "", "Override user_id in every request")
	cmd.Flags().StringVar(&date, "date", "", "Override target_date (YYYY-MM-DD) in every request")

	return cmd
}

func readRequest(stdin io.Reader, src string) (app.ScheduleRequest, error) {
	if src == "-" {
		return app.DecodeScheduleRequest(stdin)
	}
	f, err := os.Open(src)
	if err != nil {
		return app.ScheduleRequest{}, err
	}
	defer f.Close()
	return app.DecodeScheduleRequest(f)
}

func printResponse(w io.Writer, resp *app.ScheduleResponse, asJSON, explain bool) error {
	if asJSON {
		return writeJSON(w, resp.Payload())
	}
	_, err := fmt.Fprintln(w, formatter.FormatSchedule(resp, explain))
	return err
}

type batchItemJSON struct {
	Source   string                       `json:"source"`
	Response *app.ScheduleResponsePayload `json:"response,omitempty"`
	Error    string                       `json:"error,omitempty"`
}

func printBatch(w io.Writer, items []app.BatchItem, asJSON, explain bool) error {
	failed := 0
	payload := make([]batchItemJSON, 0, len(items))
	for _, item := range items {
		entry := batchItemJSON{Source: item.Source}
		if item.Err != nil {
			failed++
			entry.Error = item.Err.Error()
		} else {
			p := item.Response.Payload()
			entry.Response = &p
		}
		payload = append(payload, entry)

		if asJSON {
			continue
		}
		if item.Err != nil {
			fmt.Fprint(w, formatter.FormatBatchError(item.Source, item.Err))
			continue
		}
		fmt.Fprintln(w, formatter.Bold(item.Source))
		fmt.Fprintln(w, formatter.FormatSchedule(item.Response, explain))
	}

	if asJSON {
		if err := writeJSON(w, payload); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d requests failed", failed, len(items))
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
