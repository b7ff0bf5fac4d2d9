package commands

import (
	"github.com/spf13/cobra"

	servicinggrpc "github.com/harborbank/servicing/internal/presentation/grpc"
)

func prepayCmd() *cobra.Command {
	var (
		amount     string
		prepayDate string
		prepayType string
	)

	cmd := &cobra.Command{
		Use:   "prepay <loan-id>",
		Short: "Evaluate a prepayment scenario for a loan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp servicinggrpc.RecalculatePrepaymentResponse
			err := invoke("RecalculatePrepayment", &servicinggrpc.RecalculatePrepaymentRequest{
				TenantID:         tenantID,
				LoanID:           args[0],
				PrepaymentAmount: amount,
				PrepaymentDate:   prepayDate,
				PrepaymentType:   prepayType,
			}, &resp)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "prepayment amount (e.g. 10000.00)")
	cmd.Flags().StringVar(&prepayDate, "date", "", "prepayment date (RFC 3339, defaults to now)")
	cmd.Flags().StringVar(&prepayType, "type", "REDUCE_TERM", "prepayment type (REDUCE_TERM, REDUCE_PAYMENT)")
	_ = cmd.MarkFlagRequired("amount") //nolint:errcheck
	return cmd
}
