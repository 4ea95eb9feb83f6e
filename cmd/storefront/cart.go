package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cartdomain "github.com/neeste/storefront/internal/cart/domain"
)

func cartCmd(d **deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and edit the local cart",
	}

	cmd.AddCommand(cartAddCmd(d))
	cmd.AddCommand(cartListCmd(d))
	cmd.AddCommand(cartSetQtyCmd(d))
	cmd.AddCommand(cartRemoveCmd(d))
	cmd.AddCommand(cartClearCmd(d))

	return cmd
}

func cartAddCmd(d **deps) *cobra.Command {
	var (
		name  string
		price int64
		qty   int32
		kind  string
		image string
	)

	cmd := &cobra.Command{
		Use:   "add [product-id]",
		Short: "Add a product to the cart (merges with an existing line)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k := cartdomain.Kind(strings.ToUpper(kind))
			if k != cartdomain.KindPhysical && k != cartdomain.KindDigital {
				return fmt.Errorf("kind must be PHYSICAL or DIGITAL, got %q", kind)
			}

			items, err := (*d).cart.Add(cmd.Context(), cartdomain.Item{
				ProductID: args[0],
				Name:      name,
				UnitPrice: cartdomain.Money{Currency: cartdomain.DefaultCurrency, Amount: price},
				Quantity:  qty,
				Kind:      k,
				ImageURL:  image,
			})
			if err != nil {
				return err
			}

			printCart(items)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Product name")
	cmd.Flags().Int64VarP(&price, "price", "p", 0, "Unit price in UGX")
	cmd.Flags().Int32VarP(&qty, "qty", "q", 1, "Quantity")
	cmd.Flags().StringVarP(&kind, "kind", "k", "PHYSICAL", "PHYSICAL or DIGITAL")
	cmd.Flags().StringVar(&image, "image", "", "Image URL")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("price")

	return cmd
}

func cartListCmd(d **deps) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := (*d).cart.Items(cmd.Context())
			if err != nil {
				return err
			}
			printCart(items)
			return nil
		},
	}
}

func cartSetQtyCmd(d **deps) *cobra.Command {
	return &cobra.Command{
		Use:   "set-qty [product-id] [qty]",
		Short: "Set a line's quantity (0 removes the line)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.ParseInt(args[1], 10, 32)
			if err != nil {
				return fmt.Errorf("qty must be a number: %w", err)
			}

			items, err := (*d).cart.SetQuantity(cmd.Context(), args[0], int32(qty))
			if err != nil {
				return err
			}

			printCart(items)
			if len(items) == 0 {
				fmt.Println("Cart is empty. Back to the catalog you go.")
			}
			return nil
		},
	}
}

func cartRemoveCmd(d **deps) *cobra.Command {
	return &cobra.Command{
		Use:   "remove [product-id]",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := (*d).cart.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printCart(items)
			return nil
		},
	}
}

func cartClearCmd(d **deps) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*d).cart.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Cart cleared.")
			return nil
		},
	}
}

func printCart(items []cartdomain.Item) {
	if len(items) == 0 {
		fmt.Println("Cart is empty.")
		return
	}

	for _, it := range items {
		lineTotal := it.UnitPrice.Amount * int64(it.Quantity)
		fmt.Printf("%-12s %-30s x%-3d %8d %s  (%s)\n",
			it.ProductID, it.Name, it.Quantity, lineTotal, it.UnitPrice.Currency, it.Kind)
	}

	total := cartdomain.Total(items)
	fmt.Printf("%47s %8d %s\n", "Total:", total.Amount, total.Currency)
}
