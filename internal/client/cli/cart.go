package cli

import (
	"context"
	"fmt"
	"strconv"
)

// Products lists the catalog with prices.
func (a *App) Products(ctx context.Context) error {
	products, err := a.client.ListProducts(ctx)
	if err != nil {
		printlnFn(serverText(err))
		return err
	}
	if len(products) == 0 {
		printlnFn("The catalog is empty")
		return nil
	}
	for _, p := range products {
		printlnFn(fmt.Sprintf("%d. %s — %s", p.ProductID, p.ProductName, a.amount(p.Price)))
	}
	return nil
}

// CartAdd puts a product into the cart: add <id> [qty].
func (a *App) CartAdd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: add <id> [qty]")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Usage: add <id> [qty]")
		return nil
	}
	qty := int64(1)
	if len(args) > 1 {
		qty, err = strconv.ParseInt(args[1], 10, 64)
		if err != nil || qty < 1 {
			printlnFn("Usage: add <id> [qty]")
			return nil
		}
	}

	if err := a.cart.Add(ctx, id, qty); err != nil {
		printlnFn("Could not update the cart:", err.Error())
		return err
	}
	printlnFn("Added to cart")
	return nil
}

// CartList shows the cart priced against a fresh catalog fetch.
func (a *App) CartList(ctx context.Context) error {
	summary, err := a.summary.RefreshSummary(ctx)
	if err != nil {
		printlnFn(serverText(err))
		return err
	}
	if len(summary.Items) == 0 {
		printlnFn("Your cart is empty")
		return nil
	}
	for _, item := range summary.Items {
		printlnFn(fmt.Sprintf("%s x%d — %s", item.Name, item.Quantity, a.amount(item.LineTotal)))
	}
	printlnFn("Subtotal:", a.amount(summary.Subtotal))
	return nil
}

// CartClear empties the cart.
func (a *App) CartClear(ctx context.Context) error {
	if err := a.cart.Clear(ctx); err != nil {
		printlnFn("Could not clear the cart:", err.Error())
		return err
	}
	printlnFn("Cart cleared")
	return nil
}

func (a *App) amount(v float64) string {
	return fmt.Sprintf("%.2f %s", v, a.config.CurrencyLabel)
}
