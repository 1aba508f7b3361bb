package cli

import (
	"github.com/spf13/cobra"

	"QKart/internal/storefront"
)

func NewProductsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := opts.open(cmd.Context(), cmd.ErrOrStderr(), storefront.Config{})
			if err != nil {
				return err
			}
			defer sf.Close()

			return printProducts(cmd.OutOrStdout(), opts.Format, sf.Filtered())
		},
	}
}
