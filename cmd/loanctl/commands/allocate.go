package commands

import (
	"github.com/spf13/cobra"

	servicinggrpc "github.com/harborbank/servicing/internal/presentation/grpc"
)

func allocateCmd() *cobra.Command {
	var (
		amount    string
		fees      string
		penalties string
		escrow    string
		lateFees  string
		otherFees string
	)

	cmd := &cobra.Command{
		Use:   "allocate <loan-id>",
		Short: "Apply a payment to a loan through the allocation waterfall",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp servicinggrpc.AllocatePaymentResponse
			err := invoke("AllocatePayment", &servicinggrpc.AllocatePaymentRequest{
				TenantID:  tenantID,
				LoanID:    args[0],
				Amount:    amount,
				Fees:      fees,
				Penalties: penalties,
				Escrow:    escrow,
				LateFees:  lateFees,
				OtherFees: otherFees,
			}, &resp)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "payment amount (e.g. 1250.00)")
	cmd.Flags().StringVar(&fees, "fees", "", "fees due override")
	cmd.Flags().StringVar(&penalties, "penalties", "", "penalties due")
	cmd.Flags().StringVar(&escrow, "escrow", "", "escrow due override")
	cmd.Flags().StringVar(&lateFees, "late-fees", "", "late fees due")
	cmd.Flags().StringVar(&otherFees, "other-fees", "", "other fees due")
	_ = cmd.MarkFlagRequired("amount") //nolint:errcheck
	return cmd
}
