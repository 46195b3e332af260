package client

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pawonbufatim/storefront-server/src/models"
)

// PaymentMethod selects the payment instructions appended to an order
type PaymentMethod string

const (
	// PaymentBankTransfer pays by bank transfer to the shop account
	PaymentBankTransfer PaymentMethod = "bank"
	// PaymentQRIS pays by scanning the shop QRIS code
	PaymentQRIS PaymentMethod = "qris"
)

// CartItem is one line of the browser-held cart
type CartItem struct {
	ProductID int
	Name      string
	Price     float64
	Quantity  int
	ImageURL  string
}

// Cart lives entirely on the client. It is never synchronized to the
// server; checkout hands the content off as a formatted WhatsApp message.
type Cart struct {
	items []CartItem
}

// Add puts a product in the cart, merging with an existing line
func (c *Cart) Add(p models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity += quantity
			return
		}
	}
	item := CartItem{ProductID: p.ID, Name: p.Name, Price: p.Price, Quantity: quantity}
	if p.ImageURL != nil {
		item.ImageURL = *p.ImageURL
	}
	c.items = append(c.items, item)
}

// Remove drops a product's line from the cart
func (c *Cart) Remove(productID int) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// SetQuantity adjusts a line; zero or less removes it
func (c *Cart) SetQuantity(productID, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Items returns a copy of the cart lines
func (c *Cart) Items() []CartItem {
	items := make([]CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.items = nil
}

// Total sums price times quantity over all lines
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// OrderMessage formats the cart as the WhatsApp order text the shop
// expects, payment instructions included
func (c *Cart) OrderMessage(payment PaymentMethod) string {
	var b strings.Builder
	b.WriteString("Halo, saya ingin memesan:\n\n")
	for _, item := range c.items {
		fmt.Fprintf(&b, "%s (%d x Rp %s)\n", item.Name, item.Quantity, formatRupiah(item.Price))
	}
	fmt.Fprintf(&b, "\nTotal: Rp %s\n\n", formatRupiah(c.Total()))

	if payment == PaymentQRIS {
		b.WriteString("Metode Pembayaran: QRIS\nSilakan scan kode QRIS yang tersedia")
	} else {
		b.WriteString("Metode Pembayaran: Transfer Bank\nBank: BRI\nNo. Rekening: 012101119816504\nAtas Nama: HANIFA AMNA FAIZA")
	}

	b.WriteString("\n\nTerima kasih!")
	return b.String()
}

// WhatsAppURL builds the wa.me checkout link carrying the order message
func (c *Cart) WhatsAppURL(number string, payment PaymentMethod) string {
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(c.OrderMessage(payment))
}

// formatRupiah renders an amount with Indonesian thousands separators,
// dropping the fraction the way the storefront displays prices
func formatRupiah(amount float64) string {
	n := int64(amount)
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
