package main

import (
	"strconv"

	"comanda-service/internal/client"
	"comanda-service/internal/domain"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func ordersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Work with orders",
	}
	cmd.AddCommand(
		ordersListCmd(a),
		ordersShowCmd(a),
		ordersCreateCmd(a),
		ordersCloseCmd(a),
		ordersPayCmd(a),
		ordersUnifyCmd(a),
	)
	return cmd
}

func waiter(a *app) (*client.WaiterDashboard, error) {
	switch d := a.client.DashboardFor().(type) {
	case *client.WaiterDashboard:
		return d, nil
	case *client.AdminDashboard:
		return d.Waiter(), nil
	default:
		return nil, errors.Errorf("role %q cannot take orders", d.Role())
	}
}

func parseIDs(args []string) ([]uint64, error) {
	ids := make([]uint64, len(args))
	for i, s := range args {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil || id == 0 {
			return nil, errors.Errorf("invalid id %q", s)
		}
		ids[i] = id
	}
	return ids, nil
}

func ordersListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List open orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := waiter(a)
			if err != nil {
				return err
			}
			orders, err := w.OpenOrders(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(orders)
		},
	}
}

func ordersShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			order, err := a.client.GetOrder(cmd.Context(), ids[0])
			if err != nil {
				return err
			}
			return printJSON(order)
		},
	}
}

func ordersCreateCmd(a *app) *cobra.Command {
	var (
		draft    domain.OrderDraft
		products []uint
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open an order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := waiter(a)
			if err != nil {
				return err
			}
			for _, p := range products {
				draft.Lines = append(draft.Lines, domain.LineInput{ProductID: uint64(p)})
			}
			order, err := w.Orders().CreateOrder(cmd.Context(), draft)
			if err != nil {
				return err
			}
			return printJSON(order)
		},
	}
	cmd.Flags().StringVar(&draft.Table, "table", "", "table label")
	cmd.Flags().IntVar(&draft.PartySize, "party", 0, "number of diners")
	cmd.Flags().StringVar(&draft.DinerName, "diner", "", "diner name")
	cmd.Flags().StringVar(&draft.Comment, "comment", "", "order comment")
	cmd.Flags().UintSliceVar(&products, "product", nil, "product id, repeatable")
	return cmd
}

func ordersCloseCmd(a *app) *cobra.Command {
	var unified bool
	cmd := &cobra.Command{
		Use:   "close <id>",
		Short: "Close an order and print its ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			w, err := waiter(a)
			if err != nil {
				return err
			}
			var ticket *domain.Ticket
			if unified {
				ticket, err = w.Orders().UnifiedTicket(cmd.Context(), ids[0])
			} else {
				ticket, err = w.Orders().CloseOrder(cmd.Context(), ids[0])
			}
			if err != nil {
				return err
			}
			return printJSON(ticket)
		},
	}
	cmd.Flags().BoolVar(&unified, "unified", false, "id is a unified order")
	return cmd
}

func ordersPayCmd(a *app) *cobra.Command {
	var (
		unified              bool
		cash, card, transfer string
	)
	cmd := &cobra.Command{
		Use:   "pay <id>",
		Short: "Pay a closed order, optionally split across methods",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			var payments []domain.Payment
			for method, amount := range map[domain.PaymentMethod]string{
				domain.PaymentCash:     cash,
				domain.PaymentCard:     card,
				domain.PaymentTransfer: transfer,
			} {
				if amount == "" {
					continue
				}
				d, err := decimal.NewFromString(amount)
				if err != nil {
					return errors.Wrapf(err, "invalid %s amount", method)
				}
				payments = append(payments, domain.Payment{Method: method, Amount: d})
			}
			w, err := waiter(a)
			if err != nil {
				return err
			}
			if unified {
				u, err := w.Orders().PayUnified(cmd.Context(), ids[0], payments)
				if err != nil {
					return err
				}
				return printJSON(u)
			}
			order, err := w.Orders().PayOrder(cmd.Context(), ids[0], payments)
			if err != nil {
				return err
			}
			return printJSON(order)
		},
	}
	cmd.Flags().BoolVar(&unified, "unified", false, "id is a unified order")
	cmd.Flags().StringVar(&cash, "cash", "", "amount paid in cash")
	cmd.Flags().StringVar(&card, "card", "", "amount paid by card")
	cmd.Flags().StringVar(&transfer, "transfer", "", "amount paid by transfer")
	return cmd
}

func ordersUnifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unify <id> <id>...",
		Short: "Group open orders under one bill",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			w, err := waiter(a)
			if err != nil {
				return err
			}
			u, err := w.Orders().Unify(cmd.Context(), ids)
			if err != nil {
				return err
			}
			return printJSON(u)
		},
	}
}
