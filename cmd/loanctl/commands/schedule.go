package commands

import (
	"github.com/spf13/cobra"

	servicinggrpc "github.com/harborbank/servicing/internal/presentation/grpc"
)

func scheduleCmd() *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "schedule <loan-id>",
		Short: "Fetch the amortization schedule for a loan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp servicinggrpc.GetScheduleResponse
			err := invoke("GetSchedule", &servicinggrpc.GetScheduleRequest{
				TenantID: tenantID,
				LoanID:   args[0],
			}, &resp)
			if err != nil {
				return err
			}
			if !full {
				// Summary only; the full entry list can run to hundreds of rows.
				resp.Entries = nil
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "include every schedule entry")
	return cmd
}
