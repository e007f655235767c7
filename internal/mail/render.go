package mail

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/tienda-store/fulfillment/internal/domain"
)

var confirmationHTML = template.Must(template.New("confirmation").Parse(`
<h1>Gracias por tu pedido, {{.Customer.FullName}}</h1>
<p>Pedido <b>{{.ID}}</b> confirmado.</p>
<table border="1" cellpadding="4">
  <tr><th>Producto</th><th>Cantidad</th><th>Precio</th><th>Total</th></tr>
  {{range .Lines}}
  <tr><td>{{.ProductID}}</td><td>{{.Quantity}}</td><td>{{.ProductPrice}} €</td><td>{{.Total}} €</td></tr>
  {{end}}
</table>
<p>Artículos: <b>{{.TotalItems}}</b></p>
<p>Total: <b>{{.Total}} €</b></p>
`))

// RenderOrderConfirmationHTML builds the rich confirmation document.
func RenderOrderConfirmationHTML(o *domain.Order) (string, error) {
	var sb strings.Builder
	if err := confirmationHTML.Execute(&sb, o); err != nil {
		return "", fmt.Errorf("confirmation render error: %w", err)
	}
	return sb.String(), nil
}

// RenderOrderConfirmationPlain builds the plain-text confirmation document.
func RenderOrderConfirmationPlain(o *domain.Order) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Gracias por tu pedido, %s\n\n", o.Customer.FullName)
	fmt.Fprintf(&sb, "Pedido %s confirmado.\n\n", o.ID)
	for _, line := range o.Lines {
		fmt.Fprintf(&sb, "- producto %d x%d a %s € = %s €\n",
			line.ProductID, line.Quantity, line.ProductPrice, line.Total)
	}
	fmt.Fprintf(&sb, "\nArtículos: %d\nTotal: %s €\n", o.TotalItems, o.Total)
	return sb.String()
}

var newArrivalsHTML = template.Must(template.New("novedades").Parse(`
<h1>¡Novedades en la tienda!</h1>
<ul>
  {{range .}}
  <li><strong>{{.Brand}}</strong> - {{.Model}} - {{.Price}} € - {{.Description}}
      <img src="{{.Image}}"></li>
  {{end}}
</ul>
<p>Total de nuevos productos: <b>{{len .}}</b></p>
`))

// RenderNewArrivalsHTML builds the new-arrivals digest.
func RenderNewArrivalsHTML(products []domain.Product) (string, error) {
	var sb strings.Builder
	if err := newArrivalsHTML.Execute(&sb, products); err != nil {
		return "", fmt.Errorf("new arrivals render error: %w", err)
	}
	return sb.String(), nil
}
