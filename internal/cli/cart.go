package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"QKart/internal/storefront"
)

var errNotLoggedIn = errors.New("not logged in: run `storefront login` or set QKART_TOKEN")

func NewCartCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cart",
		Short: "Show the cart with item count and order total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.session().Authenticated() {
				return errNotLoggedIn
			}

			sf, err := opts.open(cmd.Context(), cmd.ErrOrStderr(), storefront.Config{})
			if err != nil {
				return err
			}
			defer sf.Close()

			return printCart(cmd.OutOrStdout(), opts.Format, sf.Items())
		},
	}
}

func NewAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <productId>",
		Short: "Add one unit of a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.mutate(cmd, args[0], 1, storefront.Options{PreventDuplicate: true})
		},
	}
}

func NewSetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <productId> <qty>",
		Short: "Set a product's quantity in the cart; 0 removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil || qty < 0 {
				return fmt.Errorf("invalid qty %q: must be a non-negative integer", args[1])
			}
			return opts.mutate(cmd, args[0], qty, storefront.Options{})
		},
	}
}

func (o *RootOptions) mutate(cmd *cobra.Command, productID string, qty int, mopts storefront.Options) error {
	sf, err := o.open(cmd.Context(), cmd.ErrOrStderr(), storefront.Config{})
	if err != nil {
		return err
	}
	defer sf.Close()

	items, err := sf.AddOrUpdate(cmd.Context(), productID, qty, mopts)
	if err != nil {
		return err
	}

	if p, ok := sf.Product(productID); ok && o.Format == "text" {
		if qty == 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Removed %s from cart\n", p.Name)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: qty %d\n", p.Name, qty)
		}
	}
	return printCart(cmd.OutOrStdout(), o.Format, items)
}
