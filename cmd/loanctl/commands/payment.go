package commands

import (
	"github.com/spf13/cobra"

	servicinggrpc "github.com/harborbank/servicing/internal/presentation/grpc"
)

func paymentCmd() *cobra.Command {
	var (
		principal  string
		annualRate string
		termMonths int
		frequency  string
		loanType   string
	)

	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Quote the periodic payment for a prospective loan",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp servicinggrpc.CalculatePaymentResponse
			err := invoke("CalculatePayment", &servicinggrpc.CalculatePaymentRequest{
				Principal:        principal,
				AnnualRate:       annualRate,
				TermMonths:       termMonths,
				PaymentFrequency: frequency,
				LoanType:         loanType,
			}, &resp)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().StringVar(&principal, "principal", "", "loan principal (e.g. 200000.00)")
	cmd.Flags().StringVar(&annualRate, "rate", "", "annual interest rate percent (e.g. 4.5)")
	cmd.Flags().IntVar(&termMonths, "term", 0, "term in months")
	cmd.Flags().StringVar(&frequency, "frequency", "", "payment frequency (MONTHLY, BIWEEKLY, WEEKLY)")
	cmd.Flags().StringVar(&loanType, "type", "", "loan type (AMORTIZED, SIMPLE_INTEREST, BLENDED)")
	_ = cmd.MarkFlagRequired("principal") //nolint:errcheck
	_ = cmd.MarkFlagRequired("rate")      //nolint:errcheck
	_ = cmd.MarkFlagRequired("term")      //nolint:errcheck
	return cmd
}
