// Command comanda is a terminal client for the restaurant order service.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"comanda-service/internal/client"
	"comanda-service/internal/config"
	"comanda-service/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	cfg    *config.Client
	log    *zap.Logger
	client *client.Client
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, a := rootCmd()
	err := cmd.ExecuteContext(ctx)
	a.close(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// close ends the session opened by the command, if any.
func (a *app) close(ctx context.Context) {
	if a.client != nil {
		a.client.Logout(ctx)
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func rootCmd() (*cobra.Command, *app) {
	a := &app{}
	var email, password string

	cmd := &cobra.Command{
		Use:   "comanda",
		Short: "Restaurant order client",
		Long: `Run one-shot order operations against the comanda service.

Credentials come from --email/--password or COMANDA_EMAIL/COMANDA_PASSWORD.
Each command logs in, runs, and logs out.

Examples:
  comanda orders list
  comanda orders create --table 4 --party 2 --product 10 --product 11
  comanda work table_asc
  comanda report today
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadClient()
			if err != nil {
				return err
			}
			if email != "" {
				cfg.Email = email
			}
			if password != "" {
				cfg.Password = password
			}
			lg, err := logger.NewConsole(cfg.LogMode)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = lg
			a.client = client.New(cfg.APIURL, cfg.Timeout, client.NewSession(), client.NavigatorFunc(func() {
				lg.Debug("session ended")
			}), lg)
			_, err = a.client.Login(cmd.Context(), cfg.Email, cfg.Password)
			return err
		},
	}

	cmd.PersistentFlags().StringVar(&email, "email", "", "login email")
	cmd.PersistentFlags().StringVar(&password, "password", "", "login password")

	cmd.AddCommand(ordersCmd(a), workCmd(a), deliverCmd(a), reportCmd(a))
	return cmd, a
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
