package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"QKart/internal/catalog"
	"QKart/internal/storefront"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printProducts(w io.Writer, format string, products []catalog.Product) error {
	if format == "json" {
		return writeJSON(w, products)
	}
	if len(products) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("No products found"))
		return err
	}

	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			p.ID,
			p.Name,
			p.Category,
			"$" + strconv.FormatFloat(p.Cost, 'f', -1, 64),
			strconv.FormatFloat(p.Rating, 'f', 1, 64),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(headerRow).
		Headers("ID", "NAME", "CATEGORY", "COST", "RATING").
		Rows(rows...)

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

type cartView struct {
	Items []storefront.LineItem `json:"items"`
	Count int                   `json:"count"`
	Total string                `json:"total"`
}

func printCart(w io.Writer, format string, items []storefront.LineItem) error {
	view := cartView{
		Items: items,
		Count: storefront.ItemCount(items),
		Total: storefront.Total(items).StringFixed(2),
	}
	if format == "json" {
		return writeJSON(w, view)
	}
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("Cart is empty. Add items to cart to checkout"))
		return err
	}

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.ID,
			it.Name,
			strconv.Itoa(it.Qty),
			"$" + strconv.FormatFloat(it.Cost, 'f', -1, 64),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(headerRow).
		Headers("ID", "NAME", "QTY", "COST").
		Rows(rows...)

	_, err := fmt.Fprintf(w, "%s\nItems: %d  Order total: $%s\n", t.Render(), view.Count, view.Total)
	return err
}

func headerRow(row, _ int) lipgloss.Style {
	if row == table.HeaderRow {
		return headerStyle
	}
	return lipgloss.NewStyle()
}
