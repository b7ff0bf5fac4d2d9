package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/harborbank/servicing/pkg/tlsutil"
)

const servicePath = "/harborbank.servicing.v1.ServicingService/"

var (
	addr     string
	tenantID string
	token    string
	caFile   string
	timeout  time.Duration
)

// Execute runs the loanctl root command.
func Execute() error {
	root := &cobra.Command{
		Use:           "loanctl",
		Short:         "Loan servicing calculation client",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&addr, "addr", "localhost:9094", "servicing gRPC address")
	root.PersistentFlags().StringVar(&tenantID, "tenant", os.Getenv("SERVICING_TENANT"), "tenant identifier")
	root.PersistentFlags().StringVar(&token, "token", os.Getenv("SERVICING_TOKEN"), "bearer token for authentication")
	root.PersistentFlags().StringVar(&caFile, "ca", "", "CA certificate file for TLS (plaintext when empty)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "per-call timeout")

	root.AddCommand(scheduleCmd(), paymentCmd(), allocateCmd(), prepayCmd())
	return root.Execute()
}

// invoke dials the server and performs a single unary call with the JSON
// content subtype the server registers.
func invoke(method string, req, resp any) error {
	creds := insecure.NewCredentials()
	if caFile != "" {
		tlsCreds, err := tlsutil.ClientTLSConfig(caFile, false)
		if err != nil {
			return err
		}
		creds = tlsCreds
	}

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(creds))
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
	}

	return conn.Invoke(ctx, servicePath+method, req, resp, grpc.CallContentSubtype("json"))
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
