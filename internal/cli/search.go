package cli

import (
	"bufio"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"QKart/internal/catalog"
	"QKart/internal/storefront"
)

// NewSearchCommand searches once for its arguments, or with no arguments
// treats every stdin line as the current contents of the search box and
// lets the throttler decide when to query.
func NewSearchCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search [text]",
		Short: "Search products; reads live query edits from stdin without arguments",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()

			var mu sync.Mutex
			onSearch := func(products []catalog.Product, err error) {
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					fmt.Fprintln(errOut, "error:", storefront.Message(err))
					return
				}
				_ = printProducts(out, opts.Format, products)
			}

			sf, err := opts.open(cmd.Context(), errOut, storefront.Config{OnSearch: onSearch})
			if err != nil {
				return err
			}

			if len(args) > 0 {
				defer sf.Close()
				products, err := sf.Search(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				return printProducts(out, opts.Format, products)
			}

			sc := bufio.NewScanner(cmd.InOrStdin())
			for sc.Scan() {
				sf.OnSearchInput(sc.Text())
			}

			// End of input: the last edit would otherwise be dropped by Close.
			sf.FlushSearch()
			sf.Close()
			return sc.Err()
		},
	}
}
