package main

import (
	"fmt"

	"github.com/spf13/cobra"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/psidex/citygraph/internal/errors"
	"github.com/psidex/citygraph/internal/probe"
	"github.com/psidex/citygraph/internal/ui"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Query the gRPC health service of a running server",
	Long: `Ask a running "citygraph serve" for its health. --service "" reports on the
process, the default reports on the data store.`,
	Args: cobra.NoArgs,
	RunE: runHealth,
}

var (
	healthAddr    string
	healthService string
)

func init() {
	healthCmd.Flags().StringVar(&healthAddr, "addr", "", "gRPC address (default server.grpc_address)")
	healthCmd.Flags().StringVar(&healthService, "service", probe.Service, "service to check")
}

func runHealth(cmd *cobra.Command, args []string) error {
	addr := healthAddr
	if addr == "" {
		addr = cfg.Server.GRPCAddress
	}
	if addr == "" {
		return errors.WithHint(errors.InvalidRequestf("no gRPC address"), "pass --addr or set server.grpc_address")
	}

	resp, err := probe.Check(cmd.Context(), addr, healthService)
	if err != nil {
		return err
	}
	out, err := probe.Format(resp)
	if err != nil {
		return err
	}

	serving := resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n%s\n", ui.StatusIcon(serving), addr, out)
	if !serving {
		return errors.Newf("%s is %s", healthService, resp.GetStatus())
	}
	return nil
}
