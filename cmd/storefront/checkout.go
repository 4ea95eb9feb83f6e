package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	checkoutapp "github.com/neeste/storefront/internal/checkout/app"
	checkoutdomain "github.com/neeste/storefront/internal/checkout/domain"
	paymentapp "github.com/neeste/storefront/internal/payment/app"
	paymentdomain "github.com/neeste/storefront/internal/payment/domain"
	"github.com/neeste/storefront/pkg/shutdown"
)

func checkoutCmd(d **deps) *cobra.Command {
	var form checkoutdomain.Form

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Create an order from the cart and pay with mobile money",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := shutdown.WithSignals(cmd.Context())
			defer cancel()

			dd := *d
			if site, err := dd.site.Load(ctx); err == nil && site.StoreName != "" {
				fmt.Printf("== %s ==\n", site.StoreName)
			}

			printQuote(ctx, dd)

			sub, err := dd.checkout.Submit(ctx, form)
			if err != nil {
				return checkoutError(err)
			}

			fmt.Printf("Order %s created. Payment prompt sent to %s.\n", sub.OrderReference, sub.MSISDN)
			fmt.Println("Approve the payment on your phone.")

			return confirmPayment(ctx, dd, sub.ReferenceID)
		},
	}

	cmd.Flags().StringVar(&form.FullName, "name", "", "Full name")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "Phone number (e.g. 0777xxxxxx)")
	cmd.Flags().StringVar(&form.Email, "email", "", "Email (optional)")
	cmd.Flags().StringVar(&form.Address, "address", "", "Delivery address (required for physical items)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("phone")

	return cmd
}

func confirmCmd(d **deps) *cobra.Command {
	return &cobra.Command{
		Use:   "confirm [reference-id]",
		Short: "Re-attach to a pending payment and poll until it settles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := shutdown.WithSignals(cmd.Context())
			defer cancel()

			return confirmPayment(ctx, *d, args[0])
		},
	}
}

// confirmPayment runs the confirmation engine against a gateway
// reference, streaming progress to the terminal. On success it clears
// the cart, lists any download links and counts down before returning
// to the landing view.
func confirmPayment(ctx context.Context, d *deps, referenceID string) error {
	engine := paymentapp.NewEngine(d.gateway, d.cart, paymentapp.Config{
		Interval:    d.cfg.PollInterval,
		MaxAttempts: d.cfg.PollMaxAttempts,
	}, nil, d.log)

	session := engine.Start(ctx, referenceID, paymentapp.Hooks{
		OnUpdate: func(s paymentdomain.Snapshot) {
			fmt.Printf("Waiting for payment... (%s, poll %d)\n", s.MomoStatus, s.Polls)
		},
	})

	select {
	case <-ctx.Done():
		session.Cancel()
		<-session.Done()
		fmt.Println("\nStopped. The payment may still settle; check your order later.")
		return nil
	case <-session.Done():
	}

	result, ok := session.Result()
	if !ok {
		return nil
	}

	fmt.Println(result.State.Message())

	switch result.State {
	case paymentdomain.StateSuccessful:
		if len(result.DownloadLinks) > 0 {
			fmt.Println("Your downloads:")
			for _, l := range result.DownloadLinks {
				fmt.Printf("  %s  %s\n", l.Product, l.URL)
			}
		}

		countdown := paymentapp.StartCountdown(ctx, nil, d.cfg.RedirectSeconds,
			func(remaining int) {
				fmt.Printf("Back to the store in %d...\n", remaining+1)
			},
			func() {
				fmt.Println("Thank you for shopping with us!")
			})

		select {
		case <-ctx.Done():
			countdown.Cancel()
			<-countdown.Done()
		case <-countdown.Done():
		}
	case paymentdomain.StateFailed, paymentdomain.StateTimedOut:
		// Cart kept intact so the user can retry without re-adding items.
	}

	return nil
}

// printQuote re-prices the cart against the live catalog. Display only;
// the backend computes the authoritative order total, so a failed quote
// does not block checkout.
func printQuote(ctx context.Context, d *deps) {
	items, err := d.cart.Items(ctx)
	if err != nil || len(items) == 0 {
		return
	}

	lines := make([]checkoutapp.CartItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, checkoutapp.CartItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	quote, err := d.checkout.Quote(ctx, lines)
	if err != nil {
		d.log.Debug("quote failed", "err", err)
		return
	}

	for _, l := range quote.Lines {
		fmt.Printf("%-30s x%-3d %8d %s\n", l.Name, l.Quantity, l.LineTotal.Amount, l.LineTotal.Currency)
	}
	fmt.Printf("%35s %8d %s\n", "Total:", quote.Total.Amount, quote.Total.Currency)
}

// checkoutError rewrites the service's sentinel errors into the messages
// the storefront shows.
func checkoutError(err error) error {
	switch {
	case errors.Is(err, checkoutapp.ErrEmptyCart):
		return errors.New("your cart is empty; add something first")
	case errors.Is(err, checkoutapp.ErrInvalidPhone):
		return errors.New("enter a valid UG phone number (e.g. 0777xxxxxx or 256777xxxxxx)")
	case errors.Is(err, checkoutapp.ErrOrderCreationFailed):
		return errors.New("failed to create order. Please try again")
	case errors.Is(err, checkoutapp.ErrPaymentInitiationFailed):
		return errors.New("failed to initiate payment. Please try again")
	default:
		return err
	}
}
